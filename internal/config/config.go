package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the marketplace services.
type Config struct {
	Env        string         `mapstructure:"env"`         // Env is the current environment: local, development, production.
	Port       int            `mapstructure:"port"`        // Port is the HTTP server port.
	Geocoder   GeocoderConfig `mapstructure:"geocoder"`    // Geocoder holds the geocoding provider settings.
	Storage    StorageConfig  `mapstructure:"storage"`     // Storage holds the object store settings.
	Database   PostgresConfig `mapstructure:"database"`    // Database holds the postgres database configuration.
	JWTSecret  string         `mapstructure:"jwt_secret"`  // JWTSecret verifies upload bearer tokens.
	CitiesFile string         `mapstructure:"cities_file"` // CitiesFile optionally overrides the compiled-in city list.
}

// GeocoderConfig holds the geocoding provider and backfill settings.
type GeocoderConfig struct {
	Provider string        `mapstructure:"provider"` // Provider specifies which geocoding provider to use.
	APIKey   string        `mapstructure:"api_key"`  // The API key for accessing external services (required for Google).
	Workers  int           `mapstructure:"workers"`  // The number of concurrent workers for the coordinate backfill.
	Interval time.Duration `mapstructure:"interval"` // The duration between backfill polling intervals.
}

// StorageConfig holds the object store connection settings.
type StorageConfig struct {
	BaseURL    string `mapstructure:"base_url"`    // BaseURL is the storage API root, e.g. https://xyz.supabase.co.
	ServiceKey string `mapstructure:"service_key"` // ServiceKey authorizes object mutations.
}

// PostgresConfig struct holds the configuration details for connecting to a
// PostgreSQL database.
type PostgresConfig struct {
	Host     string `mapstructure:"host"`     // Host is the database server address.
	Port     string `mapstructure:"port"`     // Port is the database server port.
	User     string `mapstructure:"user"`     // User is the database user.
	Password string `mapstructure:"password"` // Password is the database user's password.
	Name     string `mapstructure:"name"`     // Name is the name of the database.
}

// Load reads configuration from an optional config file and environment
// variables prefixed with SELFHUB_ (e.g. SELFHUB_DATABASE_HOST).
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("env", "production")
	v.SetDefault("port", 8080)
	v.SetDefault("geocoder.provider", "nominatim")
	v.SetDefault("geocoder.api_key", "")
	v.SetDefault("geocoder.workers", 10)
	v.SetDefault("geocoder.interval", "10m")
	v.SetDefault("storage.base_url", "")
	v.SetDefault("storage.service_key", "")
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("cities_file", "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	v.SetEnvPrefix("SELFHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad loads the configuration and panics on failure. Intended for use
// from main, where a bad configuration should stop the process.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	return cfg
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Sprintf("port must be 1-65535, got %d", c.Port))
	}
	if c.Geocoder.Workers <= 0 {
		errs = append(errs, "geocoder.workers must be positive")
	}
	if c.Geocoder.Interval <= 0 {
		errs = append(errs, "geocoder.interval must be positive")
	}
	if c.Geocoder.Provider == "google" && c.Geocoder.APIKey == "" {
		errs = append(errs, "geocoder.api_key is required for the google provider")
	}
	if c.Storage.BaseURL == "" {
		errs = append(errs, "storage.base_url is required")
	}
	if c.Database.Host == "" {
		errs = append(errs, "database.host is required")
	}
	if c.Database.User == "" {
		errs = append(errs, "database.user is required")
	}
	if c.Database.Name == "" {
		errs = append(errs, "database.name is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
