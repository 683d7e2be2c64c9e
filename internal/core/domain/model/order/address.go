package order

import (
	"errors"
	"fmt"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

// ErrDeliveryAddressIsNotConstructed is returned when a DeliveryAddress was
// not created via the NewDeliveryAddress constructor.
var ErrDeliveryAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"delivery address must be created via NewDeliveryAddress constructor")

// DeliveryAddress is the destination for an order. It is an immutable value
// object: once the order is confirmed the address can no longer change, which
// the aggregate enforces by simply never exposing a setter.
//
// Street, city and postal code are required. Apartment and courier
// instructions are optional free text. Geographic coordinates are optional
// and, when present, validated by kernel.GeoPoint.
type DeliveryAddress struct { //nolint:recvcheck //using for validation
	street       string
	city         string
	postalCode   string
	apartment    string
	instructions string
	geo          *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewDeliveryAddress creates a validated delivery address.
// Pass empty strings for apartment/instructions and nil for geo when absent.
func NewDeliveryAddress(
	street, city, postalCode, apartment, instructions string,
	geo *kernel.GeoPoint,
) (DeliveryAddress, error) {
	address := DeliveryAddress{
		apartment:    apartment,
		instructions: instructions,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		address.setStreet(street),
		address.setCity(city),
		address.setPostalCode(postalCode),
		address.setGeo(geo),
	); err != nil {
		return DeliveryAddress{}, err
	}

	return address, nil
}

// Validate ensures the address was created through the constructor.
func (a DeliveryAddress) Validate() error {
	return a.guard.Validate(ErrDeliveryAddressIsNotConstructed)
}

// Street returns the street line.
func (a DeliveryAddress) Street() string {
	return a.street
}

// City returns the city.
func (a DeliveryAddress) City() string {
	return a.city
}

// PostalCode returns the postal code.
func (a DeliveryAddress) PostalCode() string {
	return a.postalCode
}

// Apartment returns the optional apartment/suite line (empty when absent).
func (a DeliveryAddress) Apartment() string {
	return a.apartment
}

// Instructions returns optional courier instructions (empty when absent).
func (a DeliveryAddress) Instructions() string {
	return a.instructions
}

// Geo returns the optional geographic coordinates, or nil when absent.
func (a DeliveryAddress) Geo() *kernel.GeoPoint {
	return a.geo
}

// IsEqual compares two addresses by value.
func (a DeliveryAddress) IsEqual(other DeliveryAddress) bool {
	if a.street != other.street || a.city != other.city || a.postalCode != other.postalCode ||
		a.apartment != other.apartment || a.instructions != other.instructions {
		return false
	}
	if (a.geo == nil) != (other.geo == nil) {
		return false
	}
	if a.geo != nil && !a.geo.IsEqual(*other.geo) {
		return false
	}
	return true
}

// String returns a single-line rendering of the address.
func (a DeliveryAddress) String() string {
	s := fmt.Sprintf("%s, %s %s", a.street, a.city, a.postalCode)
	if a.apartment != "" {
		s = fmt.Sprintf("%s, Apt/Suite: %s", s, a.apartment)
	}
	return s
}

func (a *DeliveryAddress) setStreet(street string) error {
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *DeliveryAddress) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *DeliveryAddress) setPostalCode(postalCode string) error {
	if postalCode == "" {
		return errs.NewValueIsRequiredError("postalCode")
	}
	a.postalCode = postalCode
	return nil
}

func (a *DeliveryAddress) setGeo(geo *kernel.GeoPoint) error {
	if geo != nil {
		if err := geo.Validate(); err != nil {
			return err
		}
		g := *geo
		a.geo = &g
	}
	return nil
}
