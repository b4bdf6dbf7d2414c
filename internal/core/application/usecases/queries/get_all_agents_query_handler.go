package queries

import (
	"context"

	"campusdelivery/internal/core/domain/model/agent"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllAgentsQueryHandler retrieves all delivery agents from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetAllAgentsQueryHandler struct {
	db *gorm.DB
}

// NewGetAllAgentsQueryHandler creates a handler for agent registry queries.
// Requires a GORM database connection for query execution.
func NewGetAllAgentsQueryHandler(db *gorm.DB) GetAllAgentsQueryHandler {
	return GetAllAgentsQueryHandler{db: db}
}

// Handle executes the query to retrieve the agent registry.
// Admin only: the registry exposes phone numbers and control flags.
// Returns agents sorted by name.
func (h GetAllAgentsQueryHandler) Handle(
	ctx context.Context,
	query GetAllAgentsQuery,
) ([]GetAllAgentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if !query.Principal().IsAdmin() {
		return nil, errs.NewUnauthorizedError("agent registry", query.Principal().ID().String())
	}

	agents := make([]GetAllAgentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			phone,
			zone,
			duty_status,
			admin_control
		FROM agents
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetAllAgentsQueryResponse
		var id uuid.UUID
		var dutyStatus, adminControl int

		err = rows.Scan(
			&id,
			&response.Name,
			&response.Phone,
			&response.Zone,
			&dutyStatus,
			&adminControl,
		)
		if err != nil {
			return nil, err
		}

		agentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = agentID
		response.DutyStatus = agent.DutyStatus(dutyStatus).String()
		response.AdminControl = agent.AdminControl(adminControl).String()
		agents = append(agents, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return agents, nil
}
