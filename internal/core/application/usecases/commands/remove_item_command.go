package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrRemoveItemCommandIsNotConstructed = errors.New(
	"RemoveItemCommand must be created via NewRemoveItemCommand constructor",
)

// RemoveItemCommand represents a request to remove a line from a pending order.
type RemoveItemCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	itemID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveItemCommand creates a command to remove an item from an order.
func NewRemoveItemCommand(orderID, itemID kernel.UUID) (RemoveItemCommand, error) {
	cmd := RemoveItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
	); err != nil {
		return RemoveItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveItemCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c RemoveItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemID returns the line to remove.
func (c RemoveItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c *RemoveItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	c.orderID = orderID
	return nil
}

func (c *RemoveItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("itemId", err)
	}
	c.itemID = itemID
	return nil
}
