// Package ports defines the contracts between the application core and the
// infrastructure adapters: repositories, the unit of work, and the payment
// collaborator. These interfaces enable dependency inversion and testability.
package ports

import (
	"context"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Update implementations must be atomic with respect to concurrent readers:
// the status row and the new ledger entries commit together, and must apply a
// compare-and-set on the aggregate version, failing with a
// VersionIsInvalidError when another writer got there first.
type OrderRepository interface {
	// Add persists a new order aggregate, including its initial ledger entry.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate and appends any
	// new ledger entries. Fails with a version conflict if the stored version
	// differs from the one the aggregate was loaded at.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate with its complete ledger by storage id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order by its human-readable order number.
	// Both the number and the storage id resolve to the same order.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// GetAllInPendingDeliveryStatus retrieves orders waiting for an agent,
	// oldest first. Used by the assignment retry job.
	GetAllInPendingDeliveryStatus(ctx context.Context) ([]*order.Order, error)

	// CountActiveByAgent counts orders bound to the agent in an active
	// assignment status (assigned, picked_up, on_the_way). Used to decide
	// whether a terminal transition may release the agent.
	CountActiveByAgent(ctx context.Context, agentID kernel.UUID) (int, error)
}
