package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/nursultantorobaev/selfhub-services/internal/models"
)

// earthRadiusMiles is the mean Earth radius used by the Haversine formula.
const earthRadiusMiles = 3959.0

// Common errors for distance calculations.
var (
	ErrInvalidCoordinate = errors.New("coordinate is out of range")
	ErrInvalidDistance   = errors.New("distance must be a non-negative number")
)

// NewGeoPoint validates latitude and longitude degree ranges and returns a
// GeoPoint. Latitude must be within [-90, 90] and longitude within
// [-180, 180]; both must be finite.
func NewGeoPoint(lat, lon float64) (models.GeoPoint, error) {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || lat < -90 || lat > 90 {
		return models.GeoPoint{}, fmt.Errorf("%w: latitude %v", ErrInvalidCoordinate, lat)
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) || lon < -180 || lon > 180 {
		return models.GeoPoint{}, fmt.Errorf("%w: longitude %v", ErrInvalidCoordinate, lon)
	}

	return models.GeoPoint{Latitude: lat, Longitude: lon}, nil
}

// Distance computes the great-circle distance in miles between two points
// given in decimal degrees, using the Haversine formula. The result is
// rounded to one decimal place. It returns ErrInvalidCoordinate if either
// pair is outside valid degree ranges.
func Distance(lat1, lon1, lat2, lon2 float64) (float64, error) {
	from, err := NewGeoPoint(lat1, lon1)
	if err != nil {
		return 0, err
	}
	to, err := NewGeoPoint(lat2, lon2)
	if err != nil {
		return 0, err
	}

	return Between(from, to), nil
}

// Between computes the Haversine distance in miles between two already
// validated points, rounded to one decimal place.
func Between(from, to models.GeoPoint) float64 {
	dLat := radians(to.Latitude - from.Latitude)
	dLon := radians(to.Longitude - from.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	haversine := sinLat*sinLat +
		math.Cos(radians(from.Latitude))*math.Cos(radians(to.Latitude))*sinLon*sinLon
	angle := 2 * math.Atan2(math.Sqrt(haversine), math.Sqrt(1-haversine))

	return math.Round(earthRadiusMiles*angle*10) / 10
}

// FormatDistance renders a distance in miles for display:
// below 0.1 miles it reports "< 0.1 mi", below one mile it keeps one decimal
// place, and from one mile up it rounds to whole miles.
// Negative or NaN input returns ErrInvalidDistance.
func FormatDistance(miles float64) (string, error) {
	if math.IsNaN(miles) || miles < 0 {
		return "", fmt.Errorf("%w: %v", ErrInvalidDistance, miles)
	}

	switch {
	case miles < 0.1:
		return "< 0.1 mi", nil
	case miles < 1:
		return fmt.Sprintf("%.1f mi", miles), nil
	default:
		return fmt.Sprintf("%d mi", int(math.Round(miles))), nil
	}
}

// radians converts decimal degrees to radians.
func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
