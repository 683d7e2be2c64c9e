package commands

import (
	"errors"
	"fmt"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAddItemCommandIsNotConstructed = errors.New(
	"AddItemCommand must be created via NewAddItemCommand constructor",
)

// AddItemCommand represents a request to add units of a product to a pending
// order. The unit price is captured from the command and never re-fetched,
// preserving price-at-order-time semantics.
type AddItemCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	productID kernel.UUID
	name      string
	quantity  int
	unitPrice decimal.Decimal

	guard guard.ConstructorGuard
}

// NewAddItemCommand creates a command to add an item to an order.
// Validates identifiers, name presence, positive quantity and non-negative price.
func NewAddItemCommand(
	orderID, productID kernel.UUID,
	name string,
	quantity int,
	unitPrice decimal.Decimal,
) (AddItemCommand, error) {
	cmd := AddItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setProductID(productID),
		cmd.setName(name),
		cmd.setQuantity(quantity),
		cmd.setUnitPrice(unitPrice),
	); err != nil {
		return AddItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddItemCommand) Validate() error {
	return c.guard.Validate(ErrAddItemCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c AddItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ProductID returns the product to add.
func (c AddItemCommand) ProductID() kernel.UUID {
	return c.productID
}

// Name returns the product name at order time.
func (c AddItemCommand) Name() string {
	return c.name
}

// Quantity returns the number of units to add.
func (c AddItemCommand) Quantity() int {
	return c.quantity
}

// UnitPrice returns the per-unit price at order time.
func (c AddItemCommand) UnitPrice() decimal.Decimal {
	return c.unitPrice
}

func (c *AddItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	c.orderID = orderID
	return nil
}

func (c *AddItemCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productId", err)
	}
	c.productID = productID
	return nil
}

func (c *AddItemCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *AddItemCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	c.quantity = quantity
	return nil
}

func (c *AddItemCommand) setUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%s is negative", unitPrice))
	}
	c.unitPrice = unitPrice
	return nil
}
