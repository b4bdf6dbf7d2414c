package order

import (
	"errors"
	"fmt"
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrIllegalTransition is returned when an event is presented against a
	// status it is not valid for. The order is left unchanged and no ledger
	// entry is written.
	ErrIllegalTransition = errors.New("illegal order status transition")

	// ErrMultiShopCart is returned when a cart mixes line items from more than
	// one shop. Orders are single-shop; the first item's shop is authoritative.
	ErrMultiShopCart = errors.New("all line items must belong to the order's shop")
)

func newIllegalTransitionError(event string, from Status) error {
	return fmt.Errorf("%w: %s is not accepted in status %s", ErrIllegalTransition, event, from)
}

// Order is the aggregate root for a single checkout tracked through delivery.
//
// Invariants:
//   - The total equals the sum of line-item subtotals at creation time and is
//     never recomputed afterwards.
//   - All line items belong to the order's shop (single-shop carts only).
//   - At most one active agent binding at any time; the binding survives into
//     terminal statuses for audit.
//   - Every accepted event appends exactly one ledger entry; the ledger is
//     append-only and the aggregate is its only writer.
//   - Status transitions follow the table implemented by Apply; duplicate
//     delivery of an already-applied event is a no-op.
//
// Orders are never deleted: terminal statuses are retained for audit.
type Order struct {
	// id is the storage identifier of the order
	id kernel.UUID

	// number is the human-readable order number, distinct from the storage id.
	// Both resolve to the same order.
	number string

	// userID is the student who placed the order
	userID kernel.UUID

	// shopID is the owning shop, taken from the first line item
	shopID kernel.UUID

	// items are the purchased line-item snapshots
	items []Item

	// total is the immutable sum of line-item subtotals
	total kernel.Money

	// address is the delivery destination
	address Address

	// status is the current position in the lifecycle
	status Status

	// agent is the bound delivery agent projection (nil before assignment)
	agent *AgentInfo

	// createdAt is the checkout timestamp
	createdAt time.Time

	// history is the append-only status ledger
	history History

	// version supports optimistic concurrency control in the repositories
	version int

	guard guard.ConstructorGuard
}

// NewOrder creates an order at checkout time.
//
// The cart must contain at least one item and every item must reference the
// same shop as the first one; the total is computed here, once. The order
// starts in Pending with its first ledger entry already written.
func NewOrder(
	id kernel.UUID,
	number string,
	userID kernel.UUID,
	items []Item,
	address Address,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:    Pending,
		createdAt: now,
		version:   1,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setUserID(userID),
		o.setItems(items),
		o.setAddress(address),
	); err != nil {
		return nil, err
	}

	o.history.append(Pending, now, "Order created, waiting for payment")
	return o, nil
}

// RestoreOrder reconstructs an order aggregate from persistent storage,
// including its ledger and its version counter. The restored order behaves
// identically to one that lived through the same transitions in memory.
func RestoreOrder(
	id kernel.UUID,
	number string,
	userID kernel.UUID,
	items []Item,
	address Address,
	total kernel.Money,
	status Status,
	agent *AgentInfo,
	createdAt time.Time,
	history History,
	version int,
) (*Order, error) {
	o := &Order{
		createdAt: createdAt,
		history:   history,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setUserID(userID),
		o.setItems(items),
		o.setAddress(address),
		o.setStatus(status),
		o.setAgent(agent),
		o.setVersion(version),
	); err != nil {
		return nil, err
	}

	// the persisted total is authoritative; it is never recomputed
	o.total = total
	return o, nil
}

// Apply runs one lifecycle event against the order.
//
// Accepted events advance the status and append the matching ledger entry in
// the same mutation. Events presented against an invalid status fail with
// ErrIllegalTransition, leaving status and ledger untouched. An event whose
// effect is already recorded (same destination status on the ledger) is
// treated as a duplicate delivery and dropped without error, because the
// triggering collaborators retry on timeout.
func (o *Order) Apply(event Event, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	switch e := event.(type) {
	case PaymentConfirmed:
		return o.transition(e, Pending, PendingDelivery, now)

	case AssignmentSucceeded:
		if err := e.Agent.Validate(); err != nil {
			return err
		}
		if o.status == Assigned {
			if o.agent != nil && o.agent.ID().IsEqual(e.Agent.ID()) {
				return nil
			}
			return newIllegalTransitionError(e.Name(), o.status)
		}
		if err := o.transition(e, PendingDelivery, Assigned, now); err != nil {
			return err
		}
		if o.status == Assigned && o.agent == nil {
			agent := e.Agent
			o.agent = &agent
		}
		return nil

	case AssignmentFailed:
		// Expected steady state: the order stays queued, nothing is recorded.
		if o.status != PendingDelivery {
			return newIllegalTransitionError(e.Name(), o.status)
		}
		return nil

	case AgentMarkedPickedUp:
		return o.transition(e, Assigned, PickedUp, now)

	case AgentMarkedEnRoute:
		return o.transition(e, PickedUp, OnTheWay, now)

	case AgentMarkedDelivered:
		return o.transition(e, OnTheWay, Delivered, now)

	case OrderCancelled:
		if o.status == Cancelled {
			return nil
		}
		if o.status.IsTerminal() {
			return newIllegalTransitionError(e.Name(), o.status)
		}
		o.status = Cancelled
		o.history.append(Cancelled, now, e.note())
		return nil

	default:
		return errs.NewValueIsInvalidErrorWithCause("event",
			fmt.Errorf("%T is not a known order event", event))
	}
}

// transition moves the order from one status to the next for a single-source
// event, appending the ledger entry. A duplicate (destination already current
// or already on the ledger) is a no-op.
func (o *Order) transition(e Event, from, to Status, now time.Time) error {
	if o.status == to {
		return nil
	}
	if o.status != from {
		if o.history.Contains(to) {
			return nil
		}
		return newIllegalTransitionError(e.Name(), o.status)
	}

	o.status = to
	o.history.append(to, now, e.note())
	return nil
}

// Validate ensures the Order instance was properly constructed through a factory.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their storage identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the storage identifier of the order.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// UserID returns the identifier of the student who placed the order.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// ShopID returns the identifier of the owning shop.
func (o *Order) ShopID() kernel.UUID {
	return o.shopID
}

// Items returns a copy of the purchased line items.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

// Total returns the order total computed at creation time.
func (o *Order) Total() kernel.Money {
	return o.total
}

// Address returns the delivery destination.
func (o *Order) Address() Address {
	return o.address
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Agent returns the bound delivery agent projection, or nil before assignment.
func (o *Order) Agent() *AgentInfo {
	if o.agent == nil {
		return nil
	}
	agent := *o.agent
	return &agent
}

// CreatedAt returns the checkout timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// History returns the status ledger.
func (o *Order) History() History {
	return o.history
}

// Version returns the optimistic-concurrency version the aggregate was loaded at.
func (o *Order) Version() int {
	return o.version
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.number = number
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

// setItems validates the cart, derives the owning shop from the first item,
// and computes the total. Multi-shop carts are rejected.
func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	shopID := items[0].ShopID()
	total := kernel.ZeroMoney()
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if !item.ShopID().IsEqual(shopID) {
			return ErrMultiShopCart
		}
		total = total.Add(item.Subtotal())
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	o.shopID = shopID
	o.total = total
	return nil
}

func (o *Order) setAddress(address Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setAgent enforces consistency between status and agent binding on restore:
// an order holding an active assignment must carry its agent, and an order
// that has not been assigned yet must not.
func (o *Order) setAgent(agent *AgentInfo) error {
	if agent != nil {
		if err := agent.Validate(); err != nil {
			return err
		}
	}

	if o.status.IsActiveAssignment() && agent == nil {
		return errs.NewValueIsRequiredError("agent for an actively assigned order")
	}
	if (o.status == Pending || o.status == PendingDelivery) && agent != nil {
		return errs.NewValueIsInvalidErrorWithCause("agent",
			fmt.Errorf("order in status %s cannot hold an agent", o.status))
	}

	o.agent = agent
	return nil
}

func (o *Order) setVersion(version int) error {
	if version <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("version",
			fmt.Errorf("%d is not greater than 0", version))
	}
	o.version = version
	return nil
}
