package ports

import (
	"context"

	"campusdelivery/internal/core/domain/model/kernel"
)

// PaymentGateway collects payment for an order after it has been placed.
//
// The gateway is fire-and-forget from the order's point of view: the order
// stays pending until a payment confirmation arrives as a separate command.
type PaymentGateway interface {
	// Charge requests payment of the given amount for the order.
	Charge(ctx context.Context, orderID kernel.UUID, amount kernel.Money) error
}
