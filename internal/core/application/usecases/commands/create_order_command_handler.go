package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Creates the order in "pending" status with its first ledger entry, then
// asks the payment gateway to collect the total. The order stays pending
// until the payment confirmation arrives as a separate command.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, gateway)
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), userID, items, address)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.PaymentGateway
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence and a
// PaymentGateway to initiate the charge.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, gateway ports.PaymentGateway) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
	}
}

// Handle processes the order creation command.
// Persists the order with a derived human-readable number, commits, and then
// requests the charge. A gateway failure after commit leaves the order
// pending, which is the correct state for a payment that never confirmed.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		OrderNumberFor(cmd.OrderID()),
		cmd.UserID(),
		cmd.Items(),
		cmd.Address(),
		time.Now(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return h.gateway.Charge(ctx, newOrder.ID(), newOrder.Total())
}

// OrderNumberFor builds the human-readable order number shown to users.
// It reuses the first hex group of the storage id, so the two identifiers
// always resolve to the same order.
func OrderNumberFor(id kernel.UUID) string {
	prefix, _, _ := strings.Cut(id.String(), "-")
	return fmt.Sprintf("ORD-%s", strings.ToUpper(prefix))
}
