package errs_test

import (
	"errors"
	"testing"

	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("quantity")

		assert.Equal(t, "quantity", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: quantity", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("quantity", cause)

		assert.Equal(t, "quantity", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: quantity (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", 150, 1, 100)

		assert.Equal(t, "quantity", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 100, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is quantity, min value is 1, max value is 100", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("attempts", -5, 0, 10, cause)

		assert.Equal(t, "attempts", err.ParamName)
		assert.Equal(t, -5, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 10, err.Max)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -5 is attempts, min value is 0, max value is 10 (cause: validation failed)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("customerId")

		assert.Equal(t, "customerId", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: customerId", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("customerId", cause)

		assert.Equal(t, "customerId", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: customerId (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestVersionIsInvalidError(t *testing.T) {
	t.Run("NewVersionIsInvalidError", func(t *testing.T) {
		err := errs.NewVersionIsInvalidError("version")

		assert.Equal(t, "version", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "version is invalid: version", err.Error())
		assert.Equal(t, errs.ErrVersionIsInvalid, err.Unwrap())
	})

	t.Run("NewVersionIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("negative version")
		err := errs.NewVersionIsInvalidErrorWithCause("version", cause)

		assert.Equal(t, "version", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "version is invalid: version (cause: negative version)", err.Error())
		assert.Equal(t, errs.ErrVersionIsInvalid, err.Unwrap())
	})
}

func TestInvalidStateError(t *testing.T) {
	err := errs.NewInvalidStateError("confirm", "Completed")

	assert.Equal(t, "confirm", err.Operation)
	assert.Equal(t, "Completed", err.Status)
	assert.Equal(t,
		"operation is not allowed in current state: cannot confirm an order in status Completed",
		err.Error())
	assert.Equal(t, errs.ErrInvalidState, err.Unwrap())
}

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError("Completed", "Pending")

	assert.Equal(t, "Completed", err.From)
	assert.Equal(t, "Pending", err.To)
	assert.Equal(t, "status transition is not allowed: Completed -> Pending", err.Error())
	assert.Equal(t, errs.ErrInvalidTransition, err.Unwrap())
}

func TestEmptyOrderError(t *testing.T) {
	err := errs.NewEmptyOrderError("123")

	assert.Equal(t, "123", err.OrderID)
	assert.Equal(t, "order has no items: 123", err.Error())
	assert.Equal(t, errs.ErrEmptyOrder, err.Unwrap())
}

func TestInsufficientInventoryError(t *testing.T) {
	err := errs.NewInsufficientInventoryError([]string{"p1", "p2"})

	assert.Equal(t, []string{"p1", "p2"}, err.Products)
	assert.Equal(t, "insufficient inventory: p1, p2", err.Error())
	assert.Equal(t, errs.ErrInsufficientInventory, err.Unwrap())
}

func TestInventoryUnavailableError(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := errs.NewInventoryUnavailableError(cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "inventory service is unavailable (cause: connection refused)", err.Error())
		assert.Equal(t, errs.ErrInventoryUnavailable, err.Unwrap())
	})

	t.Run("without cause", func(t *testing.T) {
		err := errs.NewInventoryUnavailableError(nil)
		assert.Equal(t, "inventory service is unavailable", err.Error())
	})
}

func TestConcurrencyConflictError(t *testing.T) {
	err := errs.NewConcurrencyConflictError("123", 4)

	assert.Equal(t, "123", err.ObjectID)
	assert.Equal(t, 4, err.Version)
	assert.Equal(t, "concurrent modification detected: 123 at version 4", err.Error())
	assert.Equal(t, errs.ErrConcurrencyConflict, err.Unwrap())
}

func TestSentinelErrors(t *testing.T) {
	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "version is invalid", errs.ErrVersionIsInvalid.Error())
		assert.Equal(t, "operation is not allowed in current state", errs.ErrInvalidState.Error())
		assert.Equal(t, "status transition is not allowed", errs.ErrInvalidTransition.Error())
		assert.Equal(t, "order has no items", errs.ErrEmptyOrder.Error())
		assert.Equal(t, "insufficient inventory", errs.ErrInsufficientInventory.Error())
		assert.Equal(t, "inventory service is unavailable", errs.ErrInventoryUnavailable.Error())
		assert.Equal(t, "concurrent modification detected", errs.ErrConcurrencyConflict.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		require.ErrorIs(t, errs.NewObjectNotFoundError("orderId", "123"), errs.ErrObjectNotFound)
		require.ErrorIs(t, errs.NewValueIsInvalidError("quantity"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, errs.NewValueIsOutOfRangeError("quantity", 150, 1, 100), errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, errs.NewValueIsRequiredError("customerId"), errs.ErrValueIsRequired)
		require.ErrorIs(t, errs.NewVersionIsInvalidError("version"), errs.ErrVersionIsInvalid)
		require.ErrorIs(t, errs.NewInvalidStateError("confirm", "Cancelled"), errs.ErrInvalidState)
		require.ErrorIs(t, errs.NewInvalidTransitionError("Pending", "Completed"), errs.ErrInvalidTransition)
		require.ErrorIs(t, errs.NewEmptyOrderError("123"), errs.ErrEmptyOrder)
		require.ErrorIs(t, errs.NewInsufficientInventoryError(nil), errs.ErrInsufficientInventory)
		require.ErrorIs(t, errs.NewInventoryUnavailableError(nil), errs.ErrInventoryUnavailable)
		require.ErrorIs(t, errs.NewConcurrencyConflictError("123", 1), errs.ErrConcurrencyConflict)
	})
}
