package order

import (
	"errors"
	"fmt"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem or RestoreItem factory functions.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

// Item is a line in an order: a product, the quantity ordered, and the unit
// price captured at the moment the line was added. The price is deliberately
// never re-fetched later, preserving price-at-order-time semantics.
//
// Item is a child entity owned exclusively by an Order; its identity is only
// meaningful within its parent order. All mutation goes through the Order
// aggregate to keep the order total consistent.
type Item struct {
	// id identifies the line within its order
	id kernel.UUID

	// productID references the ordered product
	productID kernel.UUID

	// name is the product name captured at add time
	name string

	// quantity is the number of units ordered (always > 0)
	quantity int

	// unitPrice is the per-unit price captured at add time (never negative)
	unitPrice decimal.Decimal

	// isConstructed ensures the item was created via a factory function
	isConstructed bool
}

// NewItem creates a new order line with validation.
//
// Validation rules:
//   - id and productID must be valid UUIDs
//   - name must not be empty
//   - quantity must be greater than 0
//   - unitPrice must not be negative
func NewItem(id, productID kernel.UUID, name string, quantity int, unitPrice decimal.Decimal) (*Item, error) {
	item := &Item{
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setName(name),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem reconstructs an order line from persistence.
// The same validation rules as NewItem apply, so invalid stored data is
// caught at load time rather than surfacing later as a broken invariant.
func RestoreItem(id, productID kernel.UUID, name string, quantity int, unitPrice decimal.Decimal) (*Item, error) {
	return NewItem(id, productID, name, quantity, unitPrice)
}

// Validate ensures the Item was created through a factory function.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the line's identifier within its order.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// ProductID returns the ordered product's identifier.
func (i *Item) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product name captured at add time.
func (i *Item) Name() string {
	return i.name
}

// Quantity returns the number of units ordered.
func (i *Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price captured at add time.
func (i *Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// Subtotal returns quantity × unitPrice. Derived, never stored.
func (i *Item) Subtotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

// addQuantity merges additional units into the line. Used by the Order
// aggregate's additive-merge policy when the same product is added again.
func (i *Item) addQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity += quantity
	return nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("productId", err)
	}
	i.productID = productID
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%s is negative", unitPrice))
	}
	i.unitPrice = unitPrice
	return nil
}
