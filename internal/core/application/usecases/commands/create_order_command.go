package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderAddress carries the delivery destination for a new order.
// Latitude/Longitude are optional; pass nil for both when unknown.
type CreateOrderAddress struct {
	Street       string
	City         string
	PostalCode   string
	Apartment    string
	Instructions string
	Latitude     *float64
	Longitude    *float64
}

// CreateOrderItem carries one requested line for a new order.
// UnitPrice is the price quoted to the customer at order time.
type CreateOrderItem struct {
	ProductID kernel.UUID
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// CreateOrderCommand represents a request to create a new order for a
// customer. The initial item list may be empty; items can be added while the
// order is pending.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(orderID, customerID, address, items, "no onions")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	snapshot, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	address    CreateOrderAddress
	items      []CreateOrderItem
	notes      string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates identifiers and required address fields; the deeper item rules
// (positive quantity, non-negative price) are enforced by the domain model
// when the handler builds the aggregate.
func NewCreateOrderCommand(
	orderID, customerID kernel.UUID,
	address CreateOrderAddress,
	items []CreateOrderItem,
	notes string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		items: items,
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setAddress(address),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the ordering customer's identifier.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Address returns the delivery destination.
func (c CreateOrderCommand) Address() CreateOrderAddress {
	return c.address
}

// Items returns the requested initial lines.
func (c CreateOrderCommand) Items() []CreateOrderItem {
	return c.items
}

// Notes returns the optional customer notes.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setAddress(address CreateOrderAddress) error {
	if address.Street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	if address.City == "" {
		return errs.NewValueIsRequiredError("city")
	}
	if address.PostalCode == "" {
		return errs.NewValueIsRequiredError("postalCode")
	}
	if (address.Latitude == nil) != (address.Longitude == nil) {
		return errs.NewValueIsInvalidError("latitude/longitude")
	}
	c.address = address
	return nil
}
