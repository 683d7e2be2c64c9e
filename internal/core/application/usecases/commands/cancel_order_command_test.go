package commands_test

import (
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCancelOrderCommand(t *testing.T) {
	t.Run("should create a valid command", func(t *testing.T) {
		cmd, err := commands.NewCancelOrderCommand(kernel.NewUUID(), "changed my mind")

		require.NoError(t, err)
		assert.Equal(t, "changed my mind", cmd.Reason())
	})

	t.Run("should allow empty reason", func(t *testing.T) {
		cmd, err := commands.NewCancelOrderCommand(kernel.NewUUID(), "")

		require.NoError(t, err)
		assert.Empty(t, cmd.Reason())
	})

	t.Run("should reject invalid order id", func(t *testing.T) {
		var zero kernel.UUID

		_, err := commands.NewCancelOrderCommand(zero, "")

		require.Error(t, err)
	})

	t.Run("zero value command fails validation", func(t *testing.T) {
		var cmd commands.CancelOrderCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrCancelOrderCommandIsNotConstructed)
	})
}
