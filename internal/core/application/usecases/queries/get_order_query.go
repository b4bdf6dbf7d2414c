// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its complete status ledger.
//
// The identifier accepts either the storage id or the human-readable order
// number; both resolve to the same order. Access is restricted to the student
// who placed the order, the owning shop, the bound delivery agent and admins.
//
// Example:
//
//	query, err := NewGetOrderQuery("ORD-AB12CD34", principal)
//	if err != nil {
//	    return err
//	}
//	view, err := NewGetOrderQueryHandler(db).Handle(ctx, query)
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	identifier string
	principal  kernel.Principal

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order on behalf of the principal.
func NewGetOrderQuery(identifier string, principal kernel.Principal) (GetOrderQuery, error) {
	if identifier == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("identifier")
	}
	if err := principal.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		identifier: identifier,
		principal:  principal,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// Identifier returns the storage id or order number being looked up.
func (q GetOrderQuery) Identifier() string {
	return q.identifier
}

// Principal returns the identity requesting the order.
func (q GetOrderQuery) Principal() kernel.Principal {
	return q.principal
}

// GetOrderQueryResponse is the order read model: header, line items and the
// full status ledger in append order.
type GetOrderQueryResponse struct {
	ID        kernel.UUID
	Number    string
	Status    string
	Street    string
	Zone      string
	Total     string
	Agent     *OrderAgentResponse
	CreatedAt time.Time
	Items     []OrderItemResponse
	Events    []OrderEventResponse
}

// OrderAgentResponse is the bound delivery agent as shown to the addressee.
type OrderAgentResponse struct {
	ID    kernel.UUID
	Name  string
	Phone string
}

// OrderItemResponse is one purchased line item snapshot.
type OrderItemResponse struct {
	ProductID kernel.UUID
	Name      string
	UnitPrice string
	Quantity  int
}

// OrderEventResponse is one ledger entry.
type OrderEventResponse struct {
	Status     string
	OccurredAt time.Time
	Note       string
}
