// Package agentrepo provides data transfer objects and mapping functions for
// delivery agent persistence.
package agentrepo

import (
	"time"

	"campusdelivery/internal/core/domain/model/agent"
	"campusdelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AgentDTO represents the database structure for persisting agent aggregates.
// Duty status and admin control are stored as their enum ordinals; the
// version column drives the optimistic compare-and-set in Update.
type AgentDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	Phone        string
	Zone         string `gorm:"index"`
	DutyStatus   int    `gorm:"index"`
	AdminControl int    `gorm:"index"`
	UpdatedAt    time.Time
	Version      int
}

// TableName specifies the database table name for agent entities.
func (AgentDTO) TableName() string {
	return "agents"
}

// fromDomain converts an agent domain aggregate to its database representation.
func fromDomain(aggregate *agent.Agent) AgentDTO {
	return AgentDTO{
		ID:           aggregate.ID().Bytes(),
		Name:         aggregate.Name(),
		Phone:        aggregate.Phone(),
		Zone:         aggregate.Zone(),
		DutyStatus:   int(aggregate.DutyStatus()),
		AdminControl: int(aggregate.AdminControl()),
		UpdatedAt:    aggregate.UpdatedAt(),
		Version:      aggregate.Version(),
	}
}

// toDomain converts a database DTO to an agent domain aggregate using RestoreAgent.
func toDomain(dto AgentDTO) (*agent.Agent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return agent.RestoreAgent(
		id,
		dto.Name,
		dto.Phone,
		dto.Zone,
		agent.DutyStatus(dto.DutyStatus),
		agent.AdminControl(dto.AdminControl),
		dto.UpdatedAt,
		dto.Version,
	)
}
