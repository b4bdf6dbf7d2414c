package commands

import (
	"context"
	"errors"
	"time"

	"campusdelivery/internal/core/domain/model/order"
)

// AgentAssigner triggers the delivery assignment for a paid order.
// Satisfied by AssignAgentCommandHandler.
type AgentAssigner interface {
	Handle(ctx context.Context, command AssignAgentCommand) error
}

// ConfirmPaymentCommandHandler moves a paid order into the delivery queue and
// immediately attempts to assign an agent.
//
// The confirmation itself and the assignment run in separate transactions:
// the order must become pending_delivery even when every agent is busy, so a
// failed assignment must not roll the confirmation back.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	assigner   AgentAssigner
}

// NewConfirmPaymentCommandHandler creates a handler for payment confirmations.
func NewConfirmPaymentCommandHandler(uowFactory OrderUoWFactory, assigner AgentAssigner) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		assigner:   assigner,
	}
}

// Handle processes the payment confirmation.
// Applies the confirmation to the order (a duplicate delivery is a no-op that
// skips the write) and then triggers the assignment attempt. A fully busy
// agent pool is an expected outcome and is not reported as an error.
func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, command ConfirmPaymentCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	if err := h.confirm(ctx, command); err != nil {
		return err
	}

	assignCmd, err := NewAssignAgentCommand(command.OrderID())
	if err != nil {
		return err
	}

	if err = h.assigner.Handle(ctx, assignCmd); err != nil && !errors.Is(err, ErrNoEligibleAgents) {
		return err
	}

	return nil
}

func (h ConfirmPaymentCommandHandler) confirm(ctx context.Context, command ConfirmPaymentCommand) error {
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

	recorded := anOrder.History().Len()
	if err = anOrder.Apply(order.PaymentConfirmed{}, time.Now()); err != nil {
		return err
	}

	// Duplicate confirmation: nothing changed, nothing to persist.
	if anOrder.History().Len() == recorded {
		return nil
	}

	if err = orderRepo.Update(ctx, anOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
