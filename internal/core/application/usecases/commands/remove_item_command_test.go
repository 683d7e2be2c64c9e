package commands_test

import (
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRemoveItemCommand(t *testing.T) {
	t.Run("should create a valid command", func(t *testing.T) {
		orderID := kernel.NewUUID()
		itemID := kernel.NewUUID()

		cmd, err := commands.NewRemoveItemCommand(orderID, itemID)

		require.NoError(t, err)
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.True(t, cmd.ItemID().IsEqual(itemID))
	})

	t.Run("should reject invalid identifiers", func(t *testing.T) {
		var zero kernel.UUID

		_, err := commands.NewRemoveItemCommand(zero, kernel.NewUUID())
		require.Error(t, err)

		_, err = commands.NewRemoveItemCommand(kernel.NewUUID(), zero)
		require.Error(t, err)
	})

	t.Run("zero value command fails validation", func(t *testing.T) {
		var cmd commands.RemoveItemCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrRemoveItemCommandIsNotConstructed)
	})
}
