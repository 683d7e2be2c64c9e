package queries

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrGetCustomerOrdersQueryIsNotConstructed = errors.New(
	"GetCustomerOrdersQuery must be created via NewGetCustomerOrdersQuery constructor",
)

// GetCustomerOrdersQuery retrieves all orders placed by one customer,
// newest first, including cancelled ones: cancellation is a terminal state,
// not a deletion, so history stays visible.
type GetCustomerOrdersQuery struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCustomerOrdersQuery creates a query to list a customer's orders.
func NewGetCustomerOrdersQuery(customerID kernel.UUID) (GetCustomerOrdersQuery, error) {
	query := GetCustomerOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setCustomerID(customerID); err != nil {
		return GetCustomerOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerOrdersQueryIsNotConstructed)
}

// CustomerID returns the customer whose orders are requested.
func (q GetCustomerOrdersQuery) CustomerID() kernel.UUID {
	return q.customerID
}

func (q *GetCustomerOrdersQuery) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	q.customerID = customerID
	return nil
}
