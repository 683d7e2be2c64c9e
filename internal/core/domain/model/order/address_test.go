package order_test

import (
	"errors"
	"testing"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeliveryAddress(t *testing.T) {
	t.Run("should create address with required fields only", func(t *testing.T) {
		address, err := order.NewDeliveryAddress("1 Main St", "Springfield", "12345", "", "", nil)

		require.NoError(t, err)
		assert.Equal(t, "1 Main St", address.Street())
		assert.Equal(t, "Springfield", address.City())
		assert.Equal(t, "12345", address.PostalCode())
		assert.Empty(t, address.Apartment())
		assert.Nil(t, address.Geo())
		assert.NoError(t, address.Validate())
	})

	t.Run("should carry optional fields", func(t *testing.T) {
		geo, err := kernel.NewGeoPoint(40.4168, -3.7038)
		require.NoError(t, err)

		address, err := order.NewDeliveryAddress("1 Main St", "Springfield", "12345", "4B", "leave at door", &geo)

		require.NoError(t, err)
		assert.Equal(t, "4B", address.Apartment())
		assert.Equal(t, "leave at door", address.Instructions())
		require.NotNil(t, address.Geo())
		assert.True(t, address.Geo().IsEqual(geo))
	})

	t.Run("should require street, city and postal code", func(t *testing.T) {
		cases := []struct{ street, city, postalCode string }{
			{"", "Springfield", "12345"},
			{"1 Main St", "", "12345"},
			{"1 Main St", "Springfield", ""},
		}

		for _, c := range cases {
			_, err := order.NewDeliveryAddress(c.street, c.city, c.postalCode, "", "", nil)

			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrValueIsRequired))
		}
	})

	t.Run("should reject unconstructed geo point", func(t *testing.T) {
		var geo kernel.GeoPoint

		_, err := order.NewDeliveryAddress("1 Main St", "Springfield", "12345", "", "", &geo)

		require.Error(t, err)
	})
}

func TestDeliveryAddress_Validate(t *testing.T) {
	t.Run("zero value address is invalid", func(t *testing.T) {
		var address order.DeliveryAddress

		require.Error(t, address.Validate())
	})
}

func TestDeliveryAddress_IsEqual(t *testing.T) {
	a, err := order.NewDeliveryAddress("1 Main St", "Springfield", "12345", "4B", "", nil)
	require.NoError(t, err)
	b, err := order.NewDeliveryAddress("1 Main St", "Springfield", "12345", "4B", "", nil)
	require.NoError(t, err)
	c, err := order.NewDeliveryAddress("2 Main St", "Springfield", "12345", "4B", "", nil)
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestDeliveryAddress_String(t *testing.T) {
	address, err := order.NewDeliveryAddress("1 Main St", "Springfield", "12345", "4B", "", nil)
	require.NoError(t, err)

	assert.Equal(t, "1 Main St, Springfield 12345, Apt/Suite: 4B", address.String())
}
