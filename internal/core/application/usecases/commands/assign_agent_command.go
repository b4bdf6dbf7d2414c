package commands

import (
	"errors"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/guard"
)

var ErrAssignAgentCommandIsNotConstructed = errors.New(
	"AssignAgentCommand must be created via NewAssignAgentCommand constructor",
)

// AssignAgentCommand triggers the delivery agent reservation for one paid order.
// The order must be waiting for delivery; the engine picks the next agent in
// round-robin rotation and binds the two atomically.
//
// Example:
//
//	cmd, err := NewAssignAgentCommand(orderID)
//	if err != nil {
//	    return err
//	}
//	handler := NewAssignAgentCommandHandler(uowFactory, 3)
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrNoEligibleAgents) {
//	    log.Println("Order stays queued, retry job will pick it up")
//	}
type AssignAgentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignAgentCommand creates a command to assign a delivery agent to the order.
func NewAssignAgentCommand(orderID kernel.UUID) (AssignAgentCommand, error) {
	cmd := AssignAgentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return AssignAgentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignAgentCommandIsNotConstructed if validation fails.
func (c AssignAgentCommand) Validate() error {
	return c.guard.Validate(ErrAssignAgentCommandIsNotConstructed)
}

// OrderID returns the identifier of the order awaiting assignment.
func (c AssignAgentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *AssignAgentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
