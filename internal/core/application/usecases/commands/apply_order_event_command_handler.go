package commands

import (
	"context"
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"
)

// ApplyOrderEventCommandHandler advances one order through its delivery
// lifecycle on behalf of the bound agent or an admin.
//
// When a terminal event leaves the bound agent with zero active assignments,
// the agent is released back to Available in the same transaction as the
// order update, so no window exists in which a finished agent looks Busy.
//
// Example:
//
//	handler := NewApplyOrderEventCommandHandler(uowFactory)
//	cmd, _ := NewApplyOrderEventCommand(orderID, order.AgentMarkedPickedUp{}, principal)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Progress update rejected: %v", err)
//	}
type ApplyOrderEventCommandHandler struct {
	uowFactory OrderAgentUoWFactory
}

// NewApplyOrderEventCommandHandler creates a handler for order lifecycle events.
func NewApplyOrderEventCommandHandler(uowFactory OrderAgentUoWFactory) ApplyOrderEventCommandHandler {
	return ApplyOrderEventCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes one lifecycle event.
// Rejects principals the event does not belong to, absorbs duplicate
// deliveries without writing, and persists the status change together with
// its ledger entry and any agent release.
func (h ApplyOrderEventCommandHandler) Handle(ctx context.Context, command ApplyOrderEventCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	anOrder, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = authorizeOrderEvent(command.Principal(), anOrder, command.Event()); err != nil {
		return err
	}

	recorded := anOrder.History().Len()
	if err = anOrder.Apply(command.Event(), time.Now()); err != nil {
		return err
	}

	// Duplicate delivery: the ledger already holds this entry.
	if anOrder.History().Len() == recorded {
		return nil
	}

	if err = orderRepo.Update(ctx, anOrder); err != nil {
		return err
	}

	if anOrder.Status().IsTerminal() && anOrder.Agent() != nil {
		if err = h.releaseIfIdle(ctx, uow, anOrder.Agent().ID()); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// releaseIfIdle returns the agent to Available when no active assignment
// remains bound to them. The count runs inside the current transaction, so it
// already reflects the terminal status written above.
func (h ApplyOrderEventCommandHandler) releaseIfIdle(ctx context.Context, uow OrderAgentUoW, agentID kernel.UUID) error {
	active, err := uow.OrderRepository().CountActiveByAgent(ctx, agentID)
	if err != nil {
		return err
	}
	if active > 0 {
		return nil
	}

	agentRepo := uow.AgentRepository()

	boundAgent, err := agentRepo.Get(ctx, agentID)
	if err != nil {
		return err
	}

	if err = boundAgent.Release(time.Now()); err != nil {
		return err
	}

	return agentRepo.Update(ctx, boundAgent)
}

// authorizeOrderEvent decides whether the principal may raise the event.
// Progress events belong to the order's bound agent alone. Cancellation
// belongs to admins and to the bound agent.
func authorizeOrderEvent(principal kernel.Principal, anOrder *order.Order, event order.Event) error {
	isBoundAgent := principal.Role() == kernel.RoleAgent &&
		anOrder.Agent() != nil &&
		anOrder.Agent().ID().IsEqual(principal.ID())

	switch event.(type) {
	case order.OrderCancelled:
		if principal.IsAdmin() || isBoundAgent {
			return nil
		}
	default:
		if isBoundAgent {
			return nil
		}
	}

	return errs.NewUnauthorizedError("order "+anOrder.Number(), principal.ID().String())
}
