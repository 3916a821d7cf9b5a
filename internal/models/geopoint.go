package models

// GeoPoint represents a geographical point in decimal degrees.
type GeoPoint struct {
	Latitude  float64 // Latitude of the point, valid range [-90, 90].
	Longitude float64 // Longitude of the point, valid range [-180, 180].
}
