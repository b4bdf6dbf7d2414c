package commands

import (
	"context"
	"time"

	"campusdelivery/internal/pkg/errs"
)

// SetAgentAdminControlCommandHandler handles administrative enabling and
// disabling of delivery agents. Admin only.
type SetAgentAdminControlCommandHandler struct {
	uowFactory AgentUoWFactory
}

// NewSetAgentAdminControlCommandHandler creates a handler for admin control changes.
func NewSetAgentAdminControlCommandHandler(uowFactory AgentUoWFactory) SetAgentAdminControlCommandHandler {
	return SetAgentAdminControlCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the admin control change.
func (h SetAgentAdminControlCommandHandler) Handle(ctx context.Context, command SetAgentAdminControlCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	if !command.Principal().IsAdmin() {
		return errs.NewUnauthorizedError(
			"agent "+command.AgentID().String(),
			command.Principal().ID().String(),
		)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	agentRepo := uow.AgentRepository()

	anAgent, err := agentRepo.Get(ctx, command.AgentID())
	if err != nil {
		return err
	}

	if err = anAgent.SetAdminControl(command.Control(), time.Now()); err != nil {
		return err
	}

	if err = agentRepo.Update(ctx, anAgent); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
