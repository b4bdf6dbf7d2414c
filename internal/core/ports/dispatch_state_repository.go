package ports

import (
	"context"
)

// DispatchStateRepository persists the shared round-robin cursor of the
// assignment engine.
//
// The cursor is the index of the last selected agent within the eligible
// pool. It is process-wide state, not per shop: the same cursor serves every
// assignment call. Implementations must read and write it inside the same
// transaction as the reservation it belongs to, so fairness and atomicity
// share one commit.
type DispatchStateRepository interface {
	// GetCursor returns the last-selected index, or -1 when no assignment
	// has been made yet.
	GetCursor(ctx context.Context) (int, error)

	// SetCursor stores the last-selected index.
	SetCursor(ctx context.Context, cursor int) error
}
