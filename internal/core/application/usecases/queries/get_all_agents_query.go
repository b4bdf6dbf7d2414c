package queries

import (
	"errors"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/guard"
)

var ErrGetAllAgentsQueryIsNotConstructed = errors.New(
	"GetAllAgentsQuery must be created via NewGetAllAgentsQuery constructor",
)

// GetAllAgentsQuery retrieves the whole delivery agent registry for the
// admin dashboard: identity, duty status and admin control of every agent.
type GetAllAgentsQuery struct { //nolint:recvcheck //using for validation
	principal kernel.Principal

	guard guard.ConstructorGuard
}

// NewGetAllAgentsQuery creates a query for the agent registry.
func NewGetAllAgentsQuery(principal kernel.Principal) (GetAllAgentsQuery, error) {
	if err := principal.Validate(); err != nil {
		return GetAllAgentsQuery{}, err
	}

	return GetAllAgentsQuery{
		principal: principal,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAllAgentsQueryIsNotConstructed if validation fails.
func (q GetAllAgentsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllAgentsQueryIsNotConstructed)
}

// Principal returns the identity requesting the registry.
func (q GetAllAgentsQuery) Principal() kernel.Principal {
	return q.principal
}

// GetAllAgentsQueryResponse represents one agent in the registry read model.
type GetAllAgentsQueryResponse struct {
	ID           kernel.UUID
	Name         string
	Phone        string
	Zone         string
	DutyStatus   string
	AdminControl string
}
