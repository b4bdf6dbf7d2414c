package commands

import (
	"errors"

	"campusdelivery/internal/core/domain/model/agent"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/guard"
)

var ErrSetAgentAdminControlCommandIsNotConstructed = errors.New(
	"SetAgentAdminControlCommand must be created via NewSetAgentAdminControlCommand constructor",
)

// SetAgentAdminControlCommand flips the administrative enable flag of an agent.
// Disabled agents keep any in-flight delivery but drop out of the rotation.
type SetAgentAdminControlCommand struct { //nolint:recvcheck //using for validation
	agentID   kernel.UUID
	control   agent.AdminControl
	principal kernel.Principal

	guard guard.ConstructorGuard
}

// NewSetAgentAdminControlCommand creates a command to enable or disable an agent.
func NewSetAgentAdminControlCommand(
	agentID kernel.UUID,
	control agent.AdminControl,
	principal kernel.Principal,
) (SetAgentAdminControlCommand, error) {
	cmd := SetAgentAdminControlCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAgentID(agentID),
		cmd.setControl(control),
		cmd.setPrincipal(principal),
	); err != nil {
		return SetAgentAdminControlCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetAgentAdminControlCommandIsNotConstructed if validation fails.
func (c SetAgentAdminControlCommand) Validate() error {
	return c.guard.Validate(ErrSetAgentAdminControlCommandIsNotConstructed)
}

// AgentID returns the identifier of the target agent.
func (c SetAgentAdminControlCommand) AgentID() kernel.UUID {
	return c.agentID
}

// Control returns the requested administrative state.
func (c SetAgentAdminControlCommand) Control() agent.AdminControl {
	return c.control
}

// Principal returns the identity requesting the change.
func (c SetAgentAdminControlCommand) Principal() kernel.Principal {
	return c.principal
}

func (c *SetAgentAdminControlCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}

func (c *SetAgentAdminControlCommand) setControl(control agent.AdminControl) error {
	if err := control.Validate(); err != nil {
		return err
	}

	c.control = control
	return nil
}

func (c *SetAgentAdminControlCommand) setPrincipal(principal kernel.Principal) error {
	if err := principal.Validate(); err != nil {
		return err
	}

	c.principal = principal
	return nil
}
