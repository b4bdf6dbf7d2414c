package ports

import (
	"context"

	"campusdelivery/internal/core/domain/model/agent"
	"campusdelivery/internal/core/domain/model/kernel"
)

// AgentRepository defines the persistence contract for delivery agent aggregates.
//
// Update implementations must apply a compare-and-set on the aggregate
// version so that two assignment attempts cannot both reserve the same agent.
type AgentRepository interface {
	// Add persists a newly onboarded agent.
	Add(ctx context.Context, aggregate *agent.Agent) error

	// Update persists changes to an existing agent. Fails with a version
	// conflict if the stored version differs from the loaded one.
	Update(ctx context.Context, aggregate *agent.Agent) error

	// Get retrieves an agent by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error)

	// GetAll retrieves every registered agent.
	GetAll(ctx context.Context) ([]*agent.Agent, error)

	// GetAllEligible retrieves agents the assignment engine may reserve:
	// administratively active and currently Available.
	GetAllEligible(ctx context.Context) ([]*agent.Agent, error)
}
