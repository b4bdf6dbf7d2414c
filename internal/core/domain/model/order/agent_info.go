package order

import (
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/errs"
)

// AgentInfo is the denormalized projection of the delivery agent bound to an
// order: just enough identity for display and contact, copied at assignment
// time. The agent aggregate itself lives in the agent package.
type AgentInfo struct {
	id    kernel.UUID
	name  string
	phone string
}

// NewAgentInfo creates a validated agent projection.
func NewAgentInfo(id kernel.UUID, name, phone string) (AgentInfo, error) {
	if err := id.Validate(); err != nil {
		return AgentInfo{}, err
	}
	if name == "" {
		return AgentInfo{}, errs.NewValueIsRequiredError("agent name")
	}
	return AgentInfo{id: id, name: name, phone: phone}, nil
}

// ID returns the agent's identifier.
func (a AgentInfo) ID() kernel.UUID {
	return a.id
}

// Name returns the agent's display name.
func (a AgentInfo) Name() string {
	return a.name
}

// Phone returns the agent's contact phone.
func (a AgentInfo) Phone() string {
	return a.phone
}

// Validate checks the projection carries a constructed agent identity.
func (a AgentInfo) Validate() error {
	return a.id.Validate()
}
