package order_test

import (
	"errors"
	"testing"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromString(t *testing.T) {
	t.Run("should parse all valid statuses", func(t *testing.T) {
		cases := map[string]order.Status{
			"Pending":   order.Pending,
			"Confirmed": order.Confirmed,
			"Completed": order.Completed,
			"Cancelled": order.Cancelled,
		}

		for name, want := range cases {
			got, err := order.StatusFromString(name)

			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("should parse case-insensitively", func(t *testing.T) {
		got, err := order.StatusFromString("confirmed")

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, got)
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := order.StatusFromString("Shipped")

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	})

	t.Run("should reject Unknown itself", func(t *testing.T) {
		_, err := order.StatusFromString("Unknown")

		require.Error(t, err)
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should accept lifecycle statuses", func(t *testing.T) {
		for _, s := range []order.Status{order.Pending, order.Confirmed, order.Completed, order.Cancelled} {
			assert.NoError(t, s.Validate())
		}
	})

	t.Run("should reject Unknown and out-of-range values", func(t *testing.T) {
		assert.Error(t, order.Unknown.Validate())
		assert.Error(t, order.Status(99).Validate())
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Pending", order.Pending.String())
	assert.Equal(t, "Confirmed", order.Confirmed.String())
	assert.Equal(t, "Completed", order.Completed.String())
	assert.Equal(t, "Cancelled", order.Cancelled.String())
	assert.Equal(t, "Unknown", order.Unknown.String())
	assert.Equal(t, "Unknown", order.Status(99).String())
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.Confirmed.IsTerminal())
	assert.True(t, order.Completed.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("should allow exactly the lifecycle edges", func(t *testing.T) {
		all := []order.Status{order.Pending, order.Confirmed, order.Completed, order.Cancelled}
		allowed := map[order.Status]map[order.Status]bool{
			order.Pending:   {order.Confirmed: true, order.Cancelled: true},
			order.Confirmed: {order.Completed: true, order.Cancelled: true},
		}

		for _, from := range all {
			for _, to := range all {
				got, err := from.TransitionTo(to)

				if allowed[from][to] {
					require.NoError(t, err, "%s -> %s", from, to)
					assert.Equal(t, to, got)
				} else {
					require.Error(t, err, "%s -> %s", from, to)
					assert.True(t, errors.Is(err, errs.ErrInvalidTransition), "%s -> %s", from, to)
				}
			}
		}
	})

	t.Run("should reject transition to Unknown", func(t *testing.T) {
		_, err := order.Pending.TransitionTo(order.Unknown)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	})

	t.Run("terminal states have no outgoing transitions", func(t *testing.T) {
		for _, from := range []order.Status{order.Completed, order.Cancelled} {
			for _, to := range []order.Status{order.Pending, order.Confirmed, order.Completed, order.Cancelled} {
				assert.False(t, from.CanTransitionTo(to), "%s -> %s", from, to)
			}
		}
	})
}
