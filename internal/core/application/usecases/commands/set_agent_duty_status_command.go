package commands

import (
	"errors"

	"campusdelivery/internal/core/domain/model/agent"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/guard"
)

var ErrSetAgentDutyStatusCommandIsNotConstructed = errors.New(
	"SetAgentDutyStatusCommand must be created via NewSetAgentDutyStatusCommand constructor",
)

// SetAgentDutyStatusCommand is the agent's own on/off-duty toggle.
// Only the agent themself or an admin may flip it, and never while the agent
// holds an active assignment.
type SetAgentDutyStatusCommand struct { //nolint:recvcheck //using for validation
	agentID   kernel.UUID
	status    agent.DutyStatus
	principal kernel.Principal

	guard guard.ConstructorGuard
}

// NewSetAgentDutyStatusCommand creates a command to change an agent's duty status.
func NewSetAgentDutyStatusCommand(
	agentID kernel.UUID,
	status agent.DutyStatus,
	principal kernel.Principal,
) (SetAgentDutyStatusCommand, error) {
	cmd := SetAgentDutyStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAgentID(agentID),
		cmd.setStatus(status),
		cmd.setPrincipal(principal),
	); err != nil {
		return SetAgentDutyStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetAgentDutyStatusCommandIsNotConstructed if validation fails.
func (c SetAgentDutyStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetAgentDutyStatusCommandIsNotConstructed)
}

// AgentID returns the identifier of the target agent.
func (c SetAgentDutyStatusCommand) AgentID() kernel.UUID {
	return c.agentID
}

// Status returns the requested duty status.
func (c SetAgentDutyStatusCommand) Status() agent.DutyStatus {
	return c.status
}

// Principal returns the identity requesting the change.
func (c SetAgentDutyStatusCommand) Principal() kernel.Principal {
	return c.principal
}

func (c *SetAgentDutyStatusCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}

func (c *SetAgentDutyStatusCommand) setStatus(status agent.DutyStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}

func (c *SetAgentDutyStatusCommand) setPrincipal(principal kernel.Principal) error {
	if err := principal.Validate(); err != nil {
		return err
	}

	c.principal = principal
	return nil
}
