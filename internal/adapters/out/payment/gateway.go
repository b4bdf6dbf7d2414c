// Package payment contains the outbound adapter for the campus payment
// collaborator.
package payment

import (
	"context"
	"log/slog"

	"campusdelivery/internal/core/domain/model/kernel"
)

// Gateway is the stand-in implementation of the payment collaborator.
//
// Charging is asynchronous end to end: this adapter only submits the charge
// request, and the collaborator later reports the outcome through the payment
// confirmation endpoint. The stand-in accepts every charge and logs it; the
// order stays pending until a confirmation arrives, exactly as with the real
// collaborator.
type Gateway struct {
	logger *slog.Logger
}

// NewGateway creates the payment gateway adapter.
func NewGateway(logger *slog.Logger) *Gateway {
	return &Gateway{
		logger: logger.With("component", "payment-gateway"),
	}
}

// Charge submits a charge request for the order.
func (g *Gateway) Charge(_ context.Context, orderID kernel.UUID, amount kernel.Money) error {
	g.logger.Info("charge submitted",
		"order_id", orderID.String(),
		"amount", amount.String(),
	)
	return nil
}
