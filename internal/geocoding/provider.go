package geocoding

import (
	"context"
	"errors"

	"github.com/nursultantorobaev/selfhub-services/internal/models"
)

// Provider is an interface that defines a method for geocoding an address.
// The Geocode method takes a context and an address string as input,
// and returns the corresponding point and an error if any occurs.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.GeoPoint, error)
}

// ErrNoResults is returned when the provider finds no candidate for the
// address. Callers treat it as "no coordinates", not as a hard failure.
var ErrNoResults = errors.New("geocoding returned no results")
