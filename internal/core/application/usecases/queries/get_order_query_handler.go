package queries

import (
	"context"
	"database/sql"
	"errors"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves one order with items and ledger.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(orderID.String(), principal)
//
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrUnauthorized) {
//	    // the principal has no stake in this order
//	}
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the order lookup.
// Resolves the identifier as a storage id when it parses as a UUID and as an
// order number otherwise, authorizes the principal against the order's
// participants, and returns the read model with the complete ledger.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	header, err := h.loadHeader(ctx, query.Identifier())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if err = authorizeOrderView(query.Principal(), header); err != nil {
		return GetOrderQueryResponse{}, err
	}

	response := header.response
	if response.Items, err = h.loadItems(ctx, header.id); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.Events, err = h.loadEvents(ctx, header.id); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

// orderHeader carries the participant columns needed for authorization next
// to the partially built response.
type orderHeader struct {
	id       uuid.UUID
	userID   uuid.UUID
	shopID   uuid.UUID
	agentID  uuid.NullUUID
	response GetOrderQueryResponse
}

func (h GetOrderQueryHandler) loadHeader(ctx context.Context, identifier string) (orderHeader, error) {
	where := "number = ?"
	if _, err := uuid.Parse(identifier); err == nil {
		where = "id = ?"
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			user_id,
			shop_id,
			street,
			zone,
			status,
			total,
			agent_id,
			agent_name,
			agent_phone,
			created_at
		FROM orders
		WHERE `+where,
		identifier,
	).Row()

	var header orderHeader
	var status int
	var agentName, agentPhone sql.NullString

	err := row.Scan(
		&header.id,
		&header.response.Number,
		&header.userID,
		&header.shopID,
		&header.response.Street,
		&header.response.Zone,
		&status,
		&header.response.Total,
		&header.agentID,
		&agentName,
		&agentPhone,
		&header.response.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return orderHeader{}, errs.NewObjectNotFoundError("order", identifier)
	}
	if err != nil {
		return orderHeader{}, err
	}

	if header.response.ID, err = kernel.UUIDFromBytes(header.id[:]); err != nil {
		return orderHeader{}, err
	}
	header.response.Status = order.Status(status).String()

	if header.agentID.Valid {
		agentID, idErr := kernel.UUIDFromBytes(header.agentID.UUID[:])
		if idErr != nil {
			return orderHeader{}, idErr
		}
		header.response.Agent = &OrderAgentResponse{
			ID:    agentID,
			Name:  agentName.String,
			Phone: agentPhone.String,
		}
	}

	return header, nil
}

func (h GetOrderQueryHandler) loadItems(ctx context.Context, orderID uuid.UUID) ([]OrderItemResponse, error) {
	items := make([]OrderItemResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			name,
			unit_price,
			quantity
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItemResponse
		var productID uuid.UUID

		if err = rows.Scan(&productID, &item.Name, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, err
		}

		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (h GetOrderQueryHandler) loadEvents(ctx context.Context, orderID uuid.UUID) ([]OrderEventResponse, error) {
	events := make([]OrderEventResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			occurred_at,
			note
		FROM order_status_events
		WHERE order_id = ?
		ORDER BY id
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var event OrderEventResponse
		var status int

		if err = rows.Scan(&status, &event.OccurredAt, &event.Note); err != nil {
			return nil, err
		}

		event.Status = order.Status(status).String()
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// authorizeOrderView grants access to the order's participants and admins.
func authorizeOrderView(principal kernel.Principal, header orderHeader) error {
	if principal.IsAdmin() {
		return nil
	}

	id := principal.ID().Bytes()
	switch principal.Role() {
	case kernel.RoleCustomer:
		if id == header.userID {
			return nil
		}
	case kernel.RoleShopkeeper:
		if id == header.shopID {
			return nil
		}
	case kernel.RoleAgent:
		if header.agentID.Valid && id == header.agentID.UUID {
			return nil
		}
	}

	return errs.NewUnauthorizedError("order "+header.response.Number, principal.ID().String())
}
