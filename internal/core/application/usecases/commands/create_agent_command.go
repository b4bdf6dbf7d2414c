package commands

import (
	"errors"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/guard"
)

var ErrCreateAgentCommandIsNotConstructed = errors.New(
	"CreateAgentCommand must be created via NewCreateAgentCommand constructor",
)

// CreateAgentCommand onboards a new delivery agent into the registry.
// New agents start Available and administratively active, so they join the
// round-robin rotation immediately.
type CreateAgentCommand struct { //nolint:recvcheck //using for validation
	agentID kernel.UUID
	name    string
	phone   string
	zone    string

	guard guard.ConstructorGuard
}

// NewCreateAgentCommand creates a command to onboard a delivery agent.
// Name and phone are required; zone is the optional preferred campus area.
func NewCreateAgentCommand(agentID kernel.UUID, name, phone, zone string) (CreateAgentCommand, error) {
	cmd := CreateAgentCommand{
		name:  name,
		phone: phone,
		zone:  zone,
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setAgentID(agentID); err != nil {
		return CreateAgentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateAgentCommandIsNotConstructed if validation fails.
func (c CreateAgentCommand) Validate() error {
	return c.guard.Validate(ErrCreateAgentCommandIsNotConstructed)
}

// AgentID returns the identifier for the new agent.
func (c CreateAgentCommand) AgentID() kernel.UUID {
	return c.agentID
}

// Name returns the agent's display name.
func (c CreateAgentCommand) Name() string {
	return c.name
}

// Phone returns the agent's contact phone.
func (c CreateAgentCommand) Phone() string {
	return c.phone
}

// Zone returns the agent's preferred campus area, or an empty string.
func (c CreateAgentCommand) Zone() string {
	return c.zone
}

func (c *CreateAgentCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}
