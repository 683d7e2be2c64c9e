package order

import (
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is the aggregate root for order processing. It owns its items
// exclusively and is the single consistency boundary of this service: every
// invariant below holds whenever no mutation is in flight, and every mutation
// that changes externally relevant state records exactly one domain event for
// the transactional outbox.
//
// Invariants:
//   - total always equals the sum of the current items' subtotals
//   - status only moves along the lifecycle adjacency table (see Status)
//   - items can only be mutated while the order is Pending
//   - an order must have at least one item to be confirmed; an empty Pending
//     order is otherwise valid
//   - version increases by exactly 1 per successful save; a save against a
//     stale version is rejected by the repository
//
// Orders are never deleted: cancellation is a terminal state, which keeps the
// history intact for audit and downstream event consumers.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID identifies the ordering customer
	customerID kernel.UUID

	// items holds the order lines in insertion order
	items []*Item

	// status is the current lifecycle state
	status Status

	// deliveryAddress is the destination; immutable once set
	deliveryAddress DeliveryAddress

	// total is derived from items, recomputed on every item mutation
	total OrderTotal

	// notes is optional free text from the customer
	notes string

	// createdAt / updatedAt are UTC timestamps
	createdAt time.Time
	updatedAt time.Time

	// version backs optimistic concurrency control at the repository
	version int

	// domainEvents buffers events recorded since the last save
	domainEvents []DomainEvent

	// isConstructed ensures the order was created via a factory function
	isConstructed bool
}

// NewOrder creates a new order in Pending status and records an
// "order.created" event. The initial item list may be empty; confirmation is
// what enforces non-emptiness, not creation.
//
// Returns a validation error if any identifier, the address, or any item is
// invalid. Duplicate product lines in the initial list are merged additively,
// matching AddItem's policy.
func NewOrder(
	id, customerID kernel.UUID,
	deliveryAddress DeliveryAddress,
	items []*Item,
	notes string,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        Pending,
		notes:         notes,
		createdAt:     now,
		updatedAt:     now,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setDeliveryAddress(deliveryAddress),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.recalculateTotal()
	o.raise(newOrderCreatedEvent(o))
	return o, nil
}

// RestoreOrder reconstructs an order from persistence as a fully-formed
// aggregate: the complete item graph is supplied eagerly, so no hidden I/O
// can occur during domain logic. No events are recorded, and the total is
// recomputed rather than trusted from storage.
func RestoreOrder(
	id, customerID kernel.UUID,
	deliveryAddress DeliveryAddress,
	items []*Item,
	status Status,
	notes string,
	createdAt, updatedAt time.Time,
	version int,
) (*Order, error) {
	o := &Order{
		notes:         notes,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setDeliveryAddress(deliveryAddress),
		o.setItems(items),
		o.setStatus(status),
		o.setVersion(version),
	); err != nil {
		return nil, err
	}

	o.recalculateTotal()
	return o, nil
}

// Validate ensures the Order was created through a factory function.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the ordering customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Items returns the order lines in insertion order.
// The returned slice is a copy; the lines themselves are owned by the order
// and must only be mutated through aggregate methods.
func (o *Order) Items() []*Item {
	items := make([]*Item, len(o.items))
	copy(items, o.items)
	return items
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// DeliveryAddress returns the destination address.
func (o *Order) DeliveryAddress() DeliveryAddress {
	return o.deliveryAddress
}

// Total returns the derived order total.
func (o *Order) Total() OrderTotal {
	return o.total
}

// Notes returns the optional customer notes.
func (o *Order) Notes() string {
	return o.notes
}

// CreatedAt returns the creation timestamp (UTC).
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last-mutation timestamp (UTC).
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version returns the last persisted version of the aggregate.
func (o *Order) Version() int {
	return o.version
}

// AdvanceVersion moves the in-memory version forward by one. It is called by
// the repository after a successful version-checked save so snapshots built
// from this instance reflect the committed version. Domain logic never calls it.
func (o *Order) AdvanceVersion() {
	o.version++
}

// DomainEvents returns the events recorded since construction or the last
// ClearDomainEvents call, in occurrence order.
func (o *Order) DomainEvents() []DomainEvent {
	events := make([]DomainEvent, len(o.domainEvents))
	copy(events, o.domainEvents)
	return events
}

// ClearDomainEvents empties the event buffer. Called after the events have
// been handed to the outbox in the same transaction as the aggregate save.
func (o *Order) ClearDomainEvents() {
	o.domainEvents = nil
}

// AddItem adds units of a product to the order and records an
// "order.item_added" event.
//
// Allowed only while the order is Pending. If a line for the same product
// already exists the quantity is merged into it additively rather than
// creating a duplicate line. The total is recomputed.
func (o *Order) AddItem(productID kernel.UUID, name string, quantity int, unitPrice decimal.Decimal) error {
	if o.status != Pending {
		return errs.NewInvalidStateError("add an item to", o.status.String())
	}

	for _, existing := range o.items {
		if existing.ProductID().IsEqual(productID) {
			if err := existing.addQuantity(quantity); err != nil {
				return err
			}
			o.recalculateTotal()
			o.touch()
			o.raise(newOrderItemAddedEvent(o, existing))
			return nil
		}
	}

	item, err := NewItem(kernel.NewUUID(), productID, name, quantity, unitPrice)
	if err != nil {
		return err
	}

	o.items = append(o.items, item)
	o.recalculateTotal()
	o.touch()
	o.raise(newOrderItemAddedEvent(o, item))
	return nil
}

// RemoveItem removes a line from the order and records an
// "order.item_removed" event.
//
// Allowed only while the order is Pending. Removing the last item leaves a
// valid empty pending order; non-emptiness is enforced at confirmation, not
// here. Returns an ObjectNotFoundError when no line carries the given id.
func (o *Order) RemoveItem(itemID kernel.UUID) error {
	if o.status != Pending {
		return errs.NewInvalidStateError("remove an item from", o.status.String())
	}

	for i, item := range o.items {
		if item.ID().IsEqual(itemID) {
			o.items = append(o.items[:i], o.items[i+1:]...)
			o.recalculateTotal()
			o.touch()
			o.raise(newOrderItemRemovedEvent(o, itemID))
			return nil
		}
	}

	return errs.NewObjectNotFoundError("item", itemID.String())
}

// ValidateConfirm checks the confirmation preconditions without side effects:
// the order must be Pending and must have at least one item. The application
// service calls this before reserving inventory so a doomed confirmation
// never reaches the inventory service.
func (o *Order) ValidateConfirm() error {
	if o.status != Pending {
		return errs.NewInvalidStateError("confirm", o.status.String())
	}
	if len(o.items) == 0 {
		return errs.NewEmptyOrderError(o.id.String())
	}
	return nil
}

// Confirm transitions the order to Confirmed and records an
// "order.confirmed" event carrying the inventory reservation id.
//
// The caller must have reserved inventory for every item first; a failed
// reservation leaves this aggregate untouched because Confirm is simply never
// called. ValidateConfirm's preconditions are re-checked here.
func (o *Order) Confirm(reservationID string) error {
	if err := o.ValidateConfirm(); err != nil {
		return err
	}

	o.status = Confirmed
	o.touch()
	o.raise(newOrderConfirmedEvent(o, reservationID))
	return nil
}

// Cancel transitions the order to Cancelled and records an
// "order.cancelled" event carrying the reason and the previous status.
//
// Allowed from Pending and Confirmed. The aggregate does not release
// inventory here; compensation is event-driven, performed by a downstream
// consumer of "order.cancelled".
func (o *Order) Cancel(reason string) error {
	if o.status != Pending && o.status != Confirmed {
		return errs.NewInvalidStateError("cancel", o.status.String())
	}

	previous := o.status
	o.status = Cancelled
	o.touch()
	o.raise(newOrderCancelledEvent(o, previous, reason))
	return nil
}

// UpdateStatus performs an operationally-driven transition (for example
// Confirmed -> Completed) and records an "order.status_updated" event.
// The transition is validated against the lifecycle adjacency table and
// rejected with an InvalidTransitionError for any edge outside it.
//
// Confirmed is not a valid target here even though the Pending -> Confirmed
// edge exists: entering Confirmed reserves inventory and raises
// "order.confirmed", which only the Confirm operation does.
func (o *Order) UpdateStatus(newStatus Status) error {
	if newStatus == Confirmed {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("transition to %s requires inventory reservation via the confirm operation", Confirmed))
	}

	next, err := o.status.TransitionTo(newStatus)
	if err != nil {
		return err
	}

	previous := o.status
	o.status = next
	o.touch()
	o.raise(newOrderStatusUpdatedEvent(o, previous))
	return nil
}

func (o *Order) raise(event DomainEvent) {
	o.domainEvents = append(o.domainEvents, event)
}

func (o *Order) recalculateTotal() {
	o.total = totalFromItems(o.items)
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setDeliveryAddress(deliveryAddress DeliveryAddress) error {
	if err := deliveryAddress.Validate(); err != nil {
		return err
	}
	o.deliveryAddress = deliveryAddress
	return nil
}

func (o *Order) setItems(items []*Item) error {
	o.items = make([]*Item, 0, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}

		merged := false
		for _, existing := range o.items {
			if existing.ProductID().IsEqual(item.ProductID()) {
				if err := existing.addQuantity(item.Quantity()); err != nil {
					return err
				}
				merged = true
				break
			}
		}
		if !merged {
			o.items = append(o.items, item)
		}
	}
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setVersion(version int) error {
	if version < 1 {
		return errs.NewVersionIsInvalidErrorWithCause("version",
			fmt.Errorf("%d is not greater than 0", version))
	}
	o.version = version
	return nil
}
