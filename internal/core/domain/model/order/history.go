package order

import (
	"time"
)

// StatusEvent is one ledger entry: a status the order reached, when it was
// reached, and a human-readable note. Entries are immutable once appended.
type StatusEvent struct {
	status     Status
	occurredAt time.Time
	note       string
}

// NewStatusEvent creates a ledger entry. Used when restoring an order from
// persistence; live entries are appended by the aggregate itself.
func NewStatusEvent(status Status, occurredAt time.Time, note string) (StatusEvent, error) {
	if err := status.Validate(); err != nil {
		return StatusEvent{}, err
	}
	return StatusEvent{status: status, occurredAt: occurredAt, note: note}, nil
}

// Status returns the status this entry records.
func (e StatusEvent) Status() Status {
	return e.status
}

// OccurredAt returns when the transition happened.
func (e StatusEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// Note returns the free-text note attached to the transition.
func (e StatusEvent) Note() string {
	return e.note
}

// History is the append-only status ledger of an order.
// The entry count is monotonically non-decreasing; the aggregate is the only
// writer and never removes or rewrites entries.
type History struct {
	events []StatusEvent
}

// RestoreHistory rebuilds a ledger from persisted entries, preserving order.
func RestoreHistory(events []StatusEvent) History {
	out := make([]StatusEvent, len(events))
	copy(out, events)
	return History{events: out}
}

// append adds an entry. Package-private: only the aggregate writes the ledger.
func (h *History) append(status Status, occurredAt time.Time, note string) {
	h.events = append(h.events, StatusEvent{
		status:     status,
		occurredAt: occurredAt,
		note:       note,
	})
}

// First returns the earliest entry recording the given status.
// If a status recurs (re-assignment after a failed delivery), only the first
// occurrence is visible through this lookup. That is a documented limitation
// of the ledger query, not of the ledger itself: all entries are retained and
// reachable through Events.
func (h History) First(status Status) (StatusEvent, bool) {
	for _, e := range h.events {
		if e.status == status {
			return e, true
		}
	}
	return StatusEvent{}, false
}

// Contains reports whether the ledger records the given status at least once.
func (h History) Contains(status Status) bool {
	_, ok := h.First(status)
	return ok
}

// Events returns a copy of all entries in append order.
func (h History) Events() []StatusEvent {
	out := make([]StatusEvent, len(h.events))
	copy(out, h.events)
	return out
}

// Len returns the number of entries.
func (h History) Len() int {
	return len(h.events)
}
