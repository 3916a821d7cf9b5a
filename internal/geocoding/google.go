package geocoding

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nursultantorobaev/selfhub-services/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider geocodes addresses through the Google Maps Geocoding API.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

// GoogleAPIClient is the slice of the Google Maps client used here,
// extracted for mocking.
type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// NewGoogleProvider wraps an already configured Google Maps client.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Geocode resolves the address through the Google Maps Geocoding API and
// returns the first candidate. An empty response maps to ErrNoResults.
func (gp *GoogleProvider) Geocode(ctx context.Context, address string) (*models.GeoPoint, error) {
	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "address", address)

	req := maps.GeocodingRequest{Address: address}
	geocodeResponse, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}

	if len(geocodeResponse) == 0 {
		return nil, ErrNoResults
	}
	location := geocodeResponse[0].Geometry.Location

	return &models.GeoPoint{Latitude: location.Lat, Longitude: location.Lng}, nil
}
