package commands

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderSnapshot is the state of an order as a mutation handler committed it.
// Every mutation returns one, built from the saved aggregate, so callers see
// the resulting order (version included) without a follow-up query.
type OrderSnapshot struct {
	ID         kernel.UUID
	CustomerID kernel.UUID
	Status     string
	Address    OrderAddressSnapshot
	Items      []OrderItemSnapshot
	Notes      string
	Total      decimal.Decimal
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderAddressSnapshot is the delivery destination within a snapshot.
type OrderAddressSnapshot struct {
	Street       string
	City         string
	PostalCode   string
	Apartment    string
	Instructions string
	Latitude     *float64
	Longitude    *float64
}

// OrderItemSnapshot is one order line within a snapshot.
type OrderItemSnapshot struct {
	ID        kernel.UUID
	ProductID kernel.UUID
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// snapshotFromAggregate captures the aggregate's externally visible state.
// Called only after a successful commit, when the in-memory version matches
// the persisted row.
func snapshotFromAggregate(aggregate *order.Order) OrderSnapshot {
	items := aggregate.Items()
	itemSnapshots := make([]OrderItemSnapshot, 0, len(items))
	for _, item := range items {
		itemSnapshots = append(itemSnapshots, OrderItemSnapshot{
			ID:        item.ID(),
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
			Subtotal:  item.Subtotal(),
		})
	}

	deliveryAddress := aggregate.DeliveryAddress()
	addressSnapshot := OrderAddressSnapshot{
		Street:       deliveryAddress.Street(),
		City:         deliveryAddress.City(),
		PostalCode:   deliveryAddress.PostalCode(),
		Apartment:    deliveryAddress.Apartment(),
		Instructions: deliveryAddress.Instructions(),
	}
	if geo := deliveryAddress.Geo(); geo != nil {
		lat := geo.Latitude()
		lon := geo.Longitude()
		addressSnapshot.Latitude = &lat
		addressSnapshot.Longitude = &lon
	}

	return OrderSnapshot{
		ID:         aggregate.ID(),
		CustomerID: aggregate.CustomerID(),
		Status:     aggregate.Status().String(),
		Address:    addressSnapshot,
		Items:      itemSnapshots,
		Notes:      aggregate.Notes(),
		Total:      aggregate.Total().Amount(),
		Version:    aggregate.Version(),
		CreatedAt:  aggregate.CreatedAt(),
		UpdatedAt:  aggregate.UpdatedAt(),
	}
}
