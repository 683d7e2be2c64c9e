package kernel

import (
	"fmt"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the minimum valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in degrees.
	LongitudeMax = 180.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents geographic coordinates attached to a delivery address.
// It is an immutable value object; the zero value is invalid and fails
// validation; use NewGeoPoint to create instances.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(40.4168, -3.7038)
//	if err != nil {
//	    // handle validation error
//	}
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the specified coordinates in degrees.
// Latitude must lie within [-90, 90] and longitude within [-180, 180].
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	return GeoPoint{
		latitude:  latitude,
		longitude: longitude,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Latitude returns the latitude in degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// IsEqual compares two geo points by coordinate values.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.latitude == other.latitude && p.longitude == other.longitude
}

// String returns a human-readable representation, e.g. "GeoPoint(40.4168,-3.7038)".
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%g,%g)", p.latitude, p.longitude)
}

// Validate ensures the GeoPoint was created through NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}
