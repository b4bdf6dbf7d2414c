package queries

import (
	"errors"
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/guard"
)

var ErrGetPendingDeliveryOrdersQueryIsNotConstructed = errors.New(
	"GetPendingDeliveryOrdersQuery must be created via NewGetPendingDeliveryOrdersQuery constructor",
)

// GetPendingDeliveryOrdersQuery retrieves the orders waiting for a delivery
// agent. The assignment retry job feeds its attempts from this list; it is
// also what the admin dashboard shows as the dispatch backlog.
type GetPendingDeliveryOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingDeliveryOrdersQuery creates a query for the dispatch backlog.
// This is a parameterless query that fetches all queued orders, oldest first.
func NewGetPendingDeliveryOrdersQuery() GetPendingDeliveryOrdersQuery {
	return GetPendingDeliveryOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPendingDeliveryOrdersQueryIsNotConstructed if validation fails.
func (q GetPendingDeliveryOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingDeliveryOrdersQueryIsNotConstructed)
}

// GetPendingDeliveryOrdersQueryResponse represents one queued order.
type GetPendingDeliveryOrdersQueryResponse struct {
	ID        kernel.UUID
	Number    string
	Street    string
	Zone      string
	CreatedAt time.Time
}
