package order_test

import (
	"testing"

	"orders/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderTotal(t *testing.T) {
	t.Run("should accept non-negative amounts", func(t *testing.T) {
		total, err := order.NewOrderTotal(decimal.RequireFromString("19.99"))

		require.NoError(t, err)
		assert.True(t, total.Amount().Equal(decimal.RequireFromString("19.99")))
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := order.NewOrderTotal(decimal.RequireFromString("-0.01"))

		require.Error(t, err)
	})
}

func TestZeroTotal(t *testing.T) {
	assert.True(t, order.ZeroTotal().Amount().IsZero())
}

func TestOrderTotal_IsEqual(t *testing.T) {
	a, err := order.NewOrderTotal(decimal.RequireFromString("10.00"))
	require.NoError(t, err)
	b, err := order.NewOrderTotal(decimal.RequireFromString("10"))
	require.NoError(t, err)
	c, err := order.NewOrderTotal(decimal.RequireFromString("10.01"))
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestOrderTotal_String(t *testing.T) {
	total, err := order.NewOrderTotal(decimal.RequireFromString("7.5"))
	require.NoError(t, err)

	assert.Equal(t, "7.50", total.String())
}
