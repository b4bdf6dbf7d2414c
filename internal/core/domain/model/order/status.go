package order

import (
	"fmt"

	"campusdelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> PendingDelivery ──> Assigned ──> PickedUp ──> OnTheWay ──> Delivered
//	   │              │                 │            │            │
//	   └──────────────┴─────────────────┴────────────┴────────────┴──> Cancelled
//
// PendingDelivery represents "paid, no agent found yet" and is re-entered when
// assignment fails. Delivered and Cancelled are terminal.
//
// Status is a value object that provides string representations for
// persistence and display; transition legality is enforced by Order.Apply.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order is created and waiting for payment.
	Pending

	// PendingDelivery means payment is confirmed and the order awaits an agent.
	PendingDelivery

	// Assigned means a delivery agent has been reserved for the order.
	Assigned

	// PickedUp means the agent has collected the order from the shop.
	PickedUp

	// OnTheWay means the agent is en route to the delivery address.
	OnTheWay

	// Delivered means the order reached the addressee. Terminal.
	Delivered

	// Cancelled means the order was cancelled before delivery. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "unknown",
		Pending:         "pending",
		PendingDelivery: "pending_delivery",
		Assigned:        "assigned",
		PickedUp:        "picked_up",
		OnTheWay:        "on_the_way",
		Delivered:       "delivered",
		Cancelled:       "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:         "pending",
		PendingDelivery: "pending_delivery",
		Assigned:        "assigned",
		PickedUp:        "picked_up",
		OnTheWay:        "on_the_way",
		Delivered:       "delivered",
		Cancelled:       "cancelled",
	}
}

// StatusFromString parses a status from its persisted string form.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status.
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are accepted from s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsActiveAssignment reports whether an order in this status holds its agent.
// These are the statuses between reservation and release of the agent:
// an agent is Busy if and only if they are bound to at least one order in
// one of these statuses.
func (s Status) IsActiveAssignment() bool {
	return s == Assigned || s == PickedUp || s == OnTheWay
}
