package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/nursultantorobaev/selfhub-services/internal/models"
	"golang.org/x/time/rate"
)

// NominatimProvider implements the Provider interface using OpenStreetMap's
// Nominatim API. This is a free geocoding service; its usage policy allows
// one request per second and requires a client-identifying User-Agent.
type NominatimProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the Nominatim API
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Fair-use rate limiter
	// userAgent is required by Nominatim usage policy
	userAgent string
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// nominatimResponse represents the JSON response from Nominatim API.
type nominatimResponse struct {
	Lat string `json:"lat"` // Latitude as string
	Lon string `json:"lon"` // Longitude as string
}

// ErrNominatimInvalidCoords is returned when the API responds with
// coordinates that do not parse.
var ErrNominatimInvalidCoords = errors.New("nominatim API returned invalid coordinates")

// NewNominatimProvider creates a new Nominatim geocoding provider.
// Uses the public Nominatim API endpoint by default.
func NewNominatimProvider(log *slog.Logger) *NominatimProvider {
	const timeout = 10
	return &NominatimProvider{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: "https://nominatim.openstreetmap.org/search",
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(1), 1),
		// User-Agent MUST include valid contact info per Nominatim usage policy:
		// https://operations.osmfoundation.org/policies/nominatim/
		userAgent: "SelfHub-Services/1.0 (https://github.com/nursultantorobaev/selfhub-services)",
	}
}

// NewNominatimProviderWithClient creates a Nominatim provider with a custom
// HTTP client and limiter. Useful for testing with mocked HTTP clients.
func NewNominatimProviderWithClient(client HTTPClient, limiter *rate.Limiter, log *slog.Logger) *NominatimProvider {
	return &NominatimProvider{
		client:    client,
		baseURL:   "https://nominatim.openstreetmap.org/search",
		log:       log,
		limiter:   limiter,
		userAgent: "SelfHub-Services/1.0 (https://github.com/nursultantorobaev/selfhub-services)",
	}
}

// Geocode converts an address to geographic coordinates using the Nominatim
// API, taking the first candidate match. It returns ErrNoResults when the
// API finds nothing; no retry or fallback is attempted.
func (np *NominatimProvider) Geocode(ctx context.Context, address string) (*models.GeoPoint, error) {
	if err := np.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	np.log.DebugContext(ctx, "Geocoding using Nominatim", "address", address)

	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1") // Only need the top result
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set required headers per Nominatim usage policy
	req.Header.Set("User-Agent", np.userAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := np.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		np.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var results []nominatimResponse
	if err = json.Unmarshal(body, &results); err != nil {
		np.log.ErrorContext(ctx, "Failed to parse Nominatim response", "error", err, "body", string(body))
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrNoResults
	}

	np.log.DebugContext(ctx, "Nominatim found result", "lat", results[0].Lat, "lon", results[0].Lon)

	var lat, lon float64
	if _, err = fmt.Sscanf(results[0].Lat, "%f", &lat); err != nil {
		return nil, fmt.Errorf("%w: invalid latitude: %s", ErrNominatimInvalidCoords, results[0].Lat)
	}
	if _, err = fmt.Sscanf(results[0].Lon, "%f", &lon); err != nil {
		return nil, fmt.Errorf("%w: invalid longitude: %s", ErrNominatimInvalidCoords, results[0].Lon)
	}

	return &models.GeoPoint{
		Latitude:  lat,
		Longitude: lon,
	}, nil
}
