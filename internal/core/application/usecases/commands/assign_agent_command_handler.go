package commands

import (
	"context"
	"errors"
	"time"

	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/domain/services"
	"campusdelivery/internal/pkg/errs"
)

// ErrNoEligibleAgents is returned when no delivery agent can take the order.
// This is an expected operational state: the order keeps waiting and the
// retry job attempts the assignment again later.
var ErrNoEligibleAgents = errors.New("no eligible delivery agents")

// defaultAssignMaxAttempts bounds the optimistic-concurrency retry loop.
const defaultAssignMaxAttempts = 3

// AssignAgentCommandHandler orchestrates the delivery agent reservation.
//
// One reservation performs four writes that commit or fail together:
// the agent becomes Busy, the order binds the agent, the order status moves
// to assigned with its ledger entry, and the round-robin cursor advances.
// Lost races surface as version conflicts from the repositories; the handler
// retries a bounded number of times with a fresh transaction before giving up.
//
// Example:
//
//	handler := NewAssignAgentCommandHandler(uowFactory, 3)
//	cmd, _ := NewAssignAgentCommand(orderID)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrNoEligibleAgents):
//	    log.Println("Everyone is busy or off duty")
//	case errors.Is(err, errs.ErrVersionIsInvalid):
//	    log.Println("Lost the race after all retries")
//	case err != nil:
//	    log.Printf("Assignment failed: %v", err)
//	}
type AssignAgentCommandHandler struct {
	uowFactory  UoWFactory
	dispatcher  services.AgentDispatcher
	maxAttempts int
}

// NewAssignAgentCommandHandler creates a handler for agent reservation operations.
// maxAttempts bounds the retry loop on version conflicts; values below 1 fall
// back to the default.
func NewAssignAgentCommandHandler(uowFactory UoWFactory, maxAttempts int) AssignAgentCommandHandler {
	if maxAttempts < 1 {
		maxAttempts = defaultAssignMaxAttempts
	}

	return AssignAgentCommandHandler{
		uowFactory:  uowFactory,
		dispatcher:  services.NewAgentDispatcher(),
		maxAttempts: maxAttempts,
	}
}

// Handle processes the agent assignment command.
// Retries on version conflicts only; every other outcome is returned as is.
// Returns the last conflict when all attempts lose their race.
func (h AssignAgentCommandHandler) Handle(ctx context.Context, command AssignAgentCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	var err error
	for attempt := 0; attempt < h.maxAttempts; attempt++ {
		err = h.tryAssign(ctx, command)
		if !errors.Is(err, errs.ErrVersionIsInvalid) {
			return err
		}
	}

	return err
}

// tryAssign runs one reservation attempt in its own transaction.
func (h AssignAgentCommandHandler) tryAssign(ctx context.Context, command AssignAgentCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	agentRepo := uow.AgentRepository()
	dispatchRepo := uow.DispatchStateRepository()

	anOrder, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	// A concurrent call or a redelivered confirmation may have assigned the
	// order already. Nothing left to do.
	if anOrder.Status() == order.Assigned {
		return nil
	}

	agents, err := agentRepo.GetAllEligible(ctx)
	if err != nil {
		return err
	}

	cursor, err := dispatchRepo.GetCursor(ctx)
	if err != nil {
		return err
	}

	selected, next, err := h.dispatcher.Select(anOrder, agents, cursor)
	if errors.Is(err, services.ErrAgentNotFound) {
		if applyErr := anOrder.Apply(order.AssignmentFailed{}, time.Now()); applyErr != nil {
			return applyErr
		}
		return ErrNoEligibleAgents
	}
	if err != nil {
		return err
	}

	now := time.Now()
	if err = selected.Reserve(now); err != nil {
		return err
	}

	info, err := order.NewAgentInfo(selected.ID(), selected.Name(), selected.Phone())
	if err != nil {
		return err
	}

	if err = anOrder.Apply(order.AssignmentSucceeded{Agent: info}, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, anOrder); err != nil {
		return err
	}

	if err = agentRepo.Update(ctx, selected); err != nil {
		return err
	}

	if err = dispatchRepo.SetCursor(ctx, next); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
