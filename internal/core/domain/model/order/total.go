package order

import (
	"fmt"

	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// OrderTotal is the derived monetary total of an order: the sum of the
// subtotals of its current items. It is recomputed by the aggregate on every
// item mutation and never set directly, so it cannot drift from the items.
type OrderTotal struct {
	amount decimal.Decimal
}

// NewOrderTotal creates a total from an amount. Negative amounts are
// rejected; they cannot arise from valid items and indicate corrupted data.
func NewOrderTotal(amount decimal.Decimal) (OrderTotal, error) {
	if amount.IsNegative() {
		return OrderTotal{}, errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("%s is negative", amount))
	}
	return OrderTotal{amount: amount}, nil
}

// ZeroTotal returns the total of an order with no items.
func ZeroTotal() OrderTotal {
	return OrderTotal{amount: decimal.Zero}
}

// totalFromItems derives the total for the given item list.
func totalFromItems(items []*Item) OrderTotal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Subtotal())
	}
	return OrderTotal{amount: sum}
}

// Amount returns the total as a decimal.
func (t OrderTotal) Amount() decimal.Decimal {
	return t.amount
}

// IsEqual compares two totals numerically.
func (t OrderTotal) IsEqual(other OrderTotal) bool {
	return t.amount.Equal(other.amount)
}

// String returns the total formatted with two decimal places.
func (t OrderTotal) String() string {
	return t.amount.StringFixed(2)
}
