package order

import (
	"time"

	"orders/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Event types carried by outbox records and published to the broker.
// Dotted names are part of the external contract with downstream consumers.
const (
	OrderCreatedEventType       = "order.created"
	OrderConfirmedEventType     = "order.confirmed"
	OrderCancelledEventType     = "order.cancelled"
	OrderStatusUpdatedEventType = "order.status_updated"
	OrderItemAddedEventType     = "order.item_added"
	OrderItemRemovedEventType   = "order.item_removed"
)

// DomainEvent is a fact recorded by the Order aggregate when externally
// relevant state changed. The aggregate only records events; transmission is
// the outbox relay's job, which keeps event publication atomic with the
// aggregate save.
//
// EventID is stable across publish retries; consumers deduplicate on it.
type DomainEvent interface {
	// EventID returns the unique identifier of this event occurrence.
	EventID() kernel.UUID

	// EventType returns the dotted event type name, e.g. "order.created".
	EventType() string

	// AggregateID returns the identifier of the order the event belongs to.
	AggregateID() kernel.UUID

	// OccurredAt returns when the event was recorded (UTC).
	OccurredAt() time.Time

	// Payload returns the JSON-serializable snapshot of order state at
	// emission time.
	Payload() any
}

type baseEvent struct {
	eventID     kernel.UUID
	eventType   string
	aggregateID kernel.UUID
	occurredAt  time.Time
}

func newBaseEvent(eventType string, aggregateID kernel.UUID) baseEvent {
	return baseEvent{
		eventID:     kernel.NewUUID(),
		eventType:   eventType,
		aggregateID: aggregateID,
		occurredAt:  time.Now().UTC(),
	}
}

func (e baseEvent) EventID() kernel.UUID     { return e.eventID }
func (e baseEvent) EventType() string        { return e.eventType }
func (e baseEvent) AggregateID() kernel.UUID { return e.aggregateID }
func (e baseEvent) OccurredAt() time.Time    { return e.occurredAt }

// EventItem is the wire representation of one order line inside event payloads.
type EventItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

func eventItemsFrom(items []*Item) []EventItem {
	out := make([]EventItem, 0, len(items))
	for _, item := range items {
		out = append(out, EventItem{
			ID:        item.ID().String(),
			ProductID: item.ProductID().String(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
			Subtotal:  item.Subtotal(),
		})
	}
	return out
}

// OrderCreatedPayload is the payload of an "order.created" event.
type OrderCreatedPayload struct {
	OrderID    string          `json:"order_id"`
	CustomerID string          `json:"customer_id"`
	Status     string          `json:"status"`
	Total      decimal.Decimal `json:"total"`
	Items      []EventItem     `json:"items"`
}

// OrderCreatedEvent is recorded when a new order enters the system.
type OrderCreatedEvent struct {
	baseEvent
	payload OrderCreatedPayload
}

func newOrderCreatedEvent(o *Order) OrderCreatedEvent {
	return OrderCreatedEvent{
		baseEvent: newBaseEvent(OrderCreatedEventType, o.ID()),
		payload: OrderCreatedPayload{
			OrderID:    o.ID().String(),
			CustomerID: o.CustomerID().String(),
			Status:     o.Status().String(),
			Total:      o.Total().Amount(),
			Items:      eventItemsFrom(o.Items()),
		},
	}
}

// Payload returns the order snapshot taken at creation time.
func (e OrderCreatedEvent) Payload() any { return e.payload }

// OrderConfirmedPayload is the payload of an "order.confirmed" event.
// ReservationID references the inventory reservation backing the confirmation.
type OrderConfirmedPayload struct {
	OrderID       string          `json:"order_id"`
	CustomerID    string          `json:"customer_id"`
	Status        string          `json:"status"`
	Total         decimal.Decimal `json:"total"`
	ReservationID string          `json:"reservation_id"`
}

// OrderConfirmedEvent is recorded when an order is confirmed after a
// successful inventory reservation.
type OrderConfirmedEvent struct {
	baseEvent
	payload OrderConfirmedPayload
}

func newOrderConfirmedEvent(o *Order, reservationID string) OrderConfirmedEvent {
	return OrderConfirmedEvent{
		baseEvent: newBaseEvent(OrderConfirmedEventType, o.ID()),
		payload: OrderConfirmedPayload{
			OrderID:       o.ID().String(),
			CustomerID:    o.CustomerID().String(),
			Status:        o.Status().String(),
			Total:         o.Total().Amount(),
			ReservationID: reservationID,
		},
	}
}

// Payload returns the confirmation snapshot.
func (e OrderConfirmedEvent) Payload() any { return e.payload }

// OrderCancelledPayload is the payload of an "order.cancelled" event.
// Consumers use PreviousStatus to decide whether compensation (inventory
// release) is needed: only orders cancelled from Confirmed hold a reservation.
type OrderCancelledPayload struct {
	OrderID        string          `json:"order_id"`
	CustomerID     string          `json:"customer_id"`
	Status         string          `json:"status"`
	Total          decimal.Decimal `json:"total"`
	PreviousStatus string          `json:"previous_status"`
	Reason         string          `json:"reason,omitempty"`
}

// OrderCancelledEvent is recorded when an order is cancelled.
type OrderCancelledEvent struct {
	baseEvent
	payload OrderCancelledPayload
}

func newOrderCancelledEvent(o *Order, previousStatus Status, reason string) OrderCancelledEvent {
	return OrderCancelledEvent{
		baseEvent: newBaseEvent(OrderCancelledEventType, o.ID()),
		payload: OrderCancelledPayload{
			OrderID:        o.ID().String(),
			CustomerID:     o.CustomerID().String(),
			Status:         o.Status().String(),
			Total:          o.Total().Amount(),
			PreviousStatus: previousStatus.String(),
			Reason:         reason,
		},
	}
}

// Payload returns the cancellation snapshot.
func (e OrderCancelledEvent) Payload() any { return e.payload }

// OrderStatusUpdatedPayload is the payload of an "order.status_updated" event.
type OrderStatusUpdatedPayload struct {
	OrderID        string          `json:"order_id"`
	CustomerID     string          `json:"customer_id"`
	Status         string          `json:"status"`
	Total          decimal.Decimal `json:"total"`
	PreviousStatus string          `json:"previous_status"`
}

// OrderStatusUpdatedEvent is recorded on operationally-driven status changes
// made through UpdateStatus.
type OrderStatusUpdatedEvent struct {
	baseEvent
	payload OrderStatusUpdatedPayload
}

func newOrderStatusUpdatedEvent(o *Order, previousStatus Status) OrderStatusUpdatedEvent {
	return OrderStatusUpdatedEvent{
		baseEvent: newBaseEvent(OrderStatusUpdatedEventType, o.ID()),
		payload: OrderStatusUpdatedPayload{
			OrderID:        o.ID().String(),
			CustomerID:     o.CustomerID().String(),
			Status:         o.Status().String(),
			Total:          o.Total().Amount(),
			PreviousStatus: previousStatus.String(),
		},
	}
}

// Payload returns the transition snapshot.
func (e OrderStatusUpdatedEvent) Payload() any { return e.payload }

// OrderItemAddedPayload is the payload of an "order.item_added" event.
type OrderItemAddedPayload struct {
	OrderID    string          `json:"order_id"`
	CustomerID string          `json:"customer_id"`
	Status     string          `json:"status"`
	Total      decimal.Decimal `json:"total"`
	Item       EventItem       `json:"item"`
}

// OrderItemAddedEvent is recorded when a line is added to (or merged into) a
// pending order.
type OrderItemAddedEvent struct {
	baseEvent
	payload OrderItemAddedPayload
}

func newOrderItemAddedEvent(o *Order, item *Item) OrderItemAddedEvent {
	return OrderItemAddedEvent{
		baseEvent: newBaseEvent(OrderItemAddedEventType, o.ID()),
		payload: OrderItemAddedPayload{
			OrderID:    o.ID().String(),
			CustomerID: o.CustomerID().String(),
			Status:     o.Status().String(),
			Total:      o.Total().Amount(),
			Item: EventItem{
				ID:        item.ID().String(),
				ProductID: item.ProductID().String(),
				Name:      item.Name(),
				Quantity:  item.Quantity(),
				UnitPrice: item.UnitPrice(),
				Subtotal:  item.Subtotal(),
			},
		},
	}
}

// Payload returns the snapshot including the affected line.
func (e OrderItemAddedEvent) Payload() any { return e.payload }

// OrderItemRemovedPayload is the payload of an "order.item_removed" event.
type OrderItemRemovedPayload struct {
	OrderID    string          `json:"order_id"`
	CustomerID string          `json:"customer_id"`
	Status     string          `json:"status"`
	Total      decimal.Decimal `json:"total"`
	ItemID     string          `json:"item_id"`
}

// OrderItemRemovedEvent is recorded when a line is removed from a pending order.
type OrderItemRemovedEvent struct {
	baseEvent
	payload OrderItemRemovedPayload
}

func newOrderItemRemovedEvent(o *Order, itemID kernel.UUID) OrderItemRemovedEvent {
	return OrderItemRemovedEvent{
		baseEvent: newBaseEvent(OrderItemRemovedEventType, o.ID()),
		payload: OrderItemRemovedPayload{
			OrderID:    o.ID().String(),
			CustomerID: o.CustomerID().String(),
			Status:     o.Status().String(),
			Total:      o.Total().Amount(),
			ItemID:     itemID.String(),
		},
	}
}

// Payload returns the snapshot including the removed line id.
func (e OrderItemRemovedEvent) Payload() any { return e.payload }
