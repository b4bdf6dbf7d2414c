package commands

import (
	"errors"
	"fmt"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

var ErrApplyOrderEventCommandIsNotConstructed = errors.New(
	"ApplyOrderEventCommand must be created via NewApplyOrderEventCommand constructor",
)

// ApplyOrderEventCommand carries one delivery progress or cancellation event
// for an order, together with the principal raising it.
//
// Only agent progress events and cancellations travel through this command.
// Payment confirmation and assignment have dedicated commands because they
// involve other collaborators.
type ApplyOrderEventCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	event     order.Event
	principal kernel.Principal

	guard guard.ConstructorGuard
}

// NewApplyOrderEventCommand creates a command to run one lifecycle event
// against the order on behalf of the principal.
func NewApplyOrderEventCommand(
	orderID kernel.UUID,
	event order.Event,
	principal kernel.Principal,
) (ApplyOrderEventCommand, error) {
	cmd := ApplyOrderEventCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setEvent(event),
		cmd.setPrincipal(principal),
	); err != nil {
		return ApplyOrderEventCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrApplyOrderEventCommandIsNotConstructed if validation fails.
func (c ApplyOrderEventCommand) Validate() error {
	return c.guard.Validate(ErrApplyOrderEventCommandIsNotConstructed)
}

// OrderID returns the identifier of the target order.
func (c ApplyOrderEventCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Event returns the lifecycle event to apply.
func (c ApplyOrderEventCommand) Event() order.Event {
	return c.event
}

// Principal returns the identity raising the event.
func (c ApplyOrderEventCommand) Principal() kernel.Principal {
	return c.principal
}

func (c *ApplyOrderEventCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ApplyOrderEventCommand) setEvent(event order.Event) error {
	switch event.(type) {
	case order.AgentMarkedPickedUp, order.AgentMarkedEnRoute, order.AgentMarkedDelivered, order.OrderCancelled:
		c.event = event
		return nil
	case nil:
		return errs.NewValueIsRequiredError("event")
	default:
		return errs.NewValueIsInvalidErrorWithCause("event",
			fmt.Errorf("%s cannot be raised through this command", event.Name()))
	}
}

func (c *ApplyOrderEventCommand) setPrincipal(principal kernel.Principal) error {
	if err := principal.Validate(); err != nil {
		return err
	}

	c.principal = principal
	return nil
}
