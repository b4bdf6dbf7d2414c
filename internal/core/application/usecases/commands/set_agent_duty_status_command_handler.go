package commands

import (
	"context"
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/errs"
)

// SetAgentDutyStatusCommandHandler handles the agent's on/off-duty toggle.
// Busy agents are rejected by the aggregate: the engine owns that status.
type SetAgentDutyStatusCommandHandler struct {
	uowFactory AgentUoWFactory
}

// NewSetAgentDutyStatusCommandHandler creates a handler for duty status changes.
func NewSetAgentDutyStatusCommandHandler(uowFactory AgentUoWFactory) SetAgentDutyStatusCommandHandler {
	return SetAgentDutyStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the duty status change.
// Only the agent themself or an admin may perform it.
func (h SetAgentDutyStatusCommandHandler) Handle(ctx context.Context, command SetAgentDutyStatusCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	principal := command.Principal()
	isSelf := principal.Role() == kernel.RoleAgent && principal.ID().IsEqual(command.AgentID())
	if !isSelf && !principal.IsAdmin() {
		return errs.NewUnauthorizedError("agent "+command.AgentID().String(), principal.ID().String())
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

	if err = anAgent.SetDutyStatus(command.Status(), time.Now()); err != nil {
		return err
	}

	if err = agentRepo.Update(ctx, anAgent); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
