package queries

import (
	"context"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingDeliveryOrdersQueryHandler retrieves the dispatch backlog from
// the database. Uses direct SQL queries for optimal read performance in the
// CQRS pattern.
//
// Example:
//
//	handler := NewGetPendingDeliveryOrdersQueryHandler(db)
//	queued, err := handler.Handle(ctx, NewGetPendingDeliveryOrdersQuery())
//	if err != nil {
//	    log.Printf("Failed to get queued orders: %v", err)
//	}
type GetPendingDeliveryOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingDeliveryOrdersQueryHandler creates a handler for backlog queries.
// Requires a GORM database connection for query execution.
func NewGetPendingDeliveryOrdersQueryHandler(db *gorm.DB) GetPendingDeliveryOrdersQueryHandler {
	return GetPendingDeliveryOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all orders awaiting assignment.
// Returns orders in pending_delivery status, oldest first, so the retry job
// serves the longest-waiting order before the rest.
func (h GetPendingDeliveryOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingDeliveryOrdersQuery,
) ([]GetPendingDeliveryOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetPendingDeliveryOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			street,
			zone,
			created_at
		FROM orders
		WHERE status = ?
		ORDER BY created_at
	`, order.PendingDelivery).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetPendingDeliveryOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&response.Number,
			&response.Street,
			&response.Zone,
			&response.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = orderID
		orders = append(orders, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
