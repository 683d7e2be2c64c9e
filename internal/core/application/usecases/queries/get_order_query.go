// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read the database directly, bypassing the domain model and
// its unit of work: no invariants can be violated by reading.
package queries

import (
	"errors"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order with its full item list.
//
// Example:
//
//	query, _ := NewGetOrderQuery(orderID)
//	handler := NewGetOrderQueryHandler(db)
//
//	response, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // 404
//	}
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve one order by id.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	query := GetOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return GetOrderQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order's identifier.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	q.orderID = orderID
	return nil
}

// OrderItemResponse represents one order line in query responses.
type OrderItemResponse struct {
	ID        kernel.UUID
	ProductID kernel.UUID
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// OrderAddressResponse represents the delivery destination in query responses.
type OrderAddressResponse struct {
	Street       string
	City         string
	PostalCode   string
	Apartment    string
	Instructions string
	Latitude     *float64
	Longitude    *float64
}

// GetOrderQueryResponse represents a complete order for read clients.
type GetOrderQueryResponse struct {
	ID         kernel.UUID
	CustomerID kernel.UUID
	Status     string
	Address    OrderAddressResponse
	Items      []OrderItemResponse
	Notes      string
	Total      decimal.Decimal
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
