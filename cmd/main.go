package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nursultantorobaev/selfhub-services/internal/cities"
	"github.com/nursultantorobaev/selfhub-services/internal/config"
	"github.com/nursultantorobaev/selfhub-services/internal/geocoding"
	"github.com/nursultantorobaev/selfhub-services/internal/metrics"
	"github.com/nursultantorobaev/selfhub-services/internal/repository"
	"github.com/nursultantorobaev/selfhub-services/internal/server"
	"github.com/nursultantorobaev/selfhub-services/internal/service"
	"github.com/nursultantorobaev/selfhub-services/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// Initialize the database connection.
	dtb, err := repository.NewDatabase(
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
	)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	// Create a new repository instance using the database connection.
	repo := repository.NewRepository(dtb, logger)

	// The city directory ships with a compiled-in list; deployments can
	// override it with a newline-separated file.
	directory := cities.NewDirectory(logger)
	if cfg.CitiesFile != "" {
		directory, err = cities.NewDirectoryFromFile(logger, cfg.CitiesFile)
		if err != nil {
			log.Fatalf("Failed to load city list: %v", err)
		}
	}
	logger.InfoContext(ctx, "City directory initialized", "cities", directory.Len())

	// Image assets live in the object store behind the asset manager.
	store := storage.NewClient(cfg.Storage.BaseURL, cfg.Storage.ServiceKey, logger)
	assets := storage.NewManager(store, logger)

	// The geocoding provider is constructed lazily on first use, so a
	// misconfigured provider does not stop the API from serving.
	rateLimit := 50
	loader := geocoding.NewLoader(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.Geocoder.Provider),
		APIKey:    cfg.Geocoder.APIKey,
		RateLimit: rateLimit / cfg.Geocoder.Workers,
		Logger:    logger,
	})

	// Init the coordinate backfill using the lazily loaded provider.
	backfill := service.NewBackfillService(
		logger,
		repo,
		loader,
		cfg.Geocoder.Provider, // Provider name for metrics
		appMetrics,
		cfg.Geocoder.Workers,
		cfg.Geocoder.Interval,
	)

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	api := server.New(logger, repo, directory, assets, appMetrics, cfg.JWTSecret)

	// Start the HTTP server in a goroutine to allow main to listen for signals.
	go startHTTPServer(ctx, logger, api, reg, dtb, cfg.Port)

	go backfill.Run(ctx)

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	// Log that a shutdown signal has been received.
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	// Log graceful shutdown completion.
	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// startHTTPServer starts the HTTP server carrying the API routes plus the
// health check and metrics endpoints. It listens on the specified port and
// logs the server's status and any errors encountered.
func startHTTPServer(
	ctx context.Context,
	log *slog.Logger,
	api *server.Server,
	reg *prometheus.Registry,
	dtb *pgxpool.Pool,
	port int,
) {
	mux := http.NewServeMux()
	api.Register(mux)

	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, _ *http.Request) {
		log.DebugContext(ctx, "Performing health checks...")
		status, body := http.StatusOK, "OK"
		if err := dtb.Ping(ctx); err != nil {
			status, body = http.StatusServiceUnavailable, "DB ping failed"
		}
		writer.WriteHeader(status)
		_, err := writer.Write([]byte(body))
		if err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}

		log.DebugContext(ctx, "Health checks completed", "status", status)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	log.InfoContext(ctx, "Starting HTTP server", "port", port)
	readTimeout := 5
	writeTimeout := 30
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.ErrorContext(ctx, "HTTP server failed", "error", err)
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified	 or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
