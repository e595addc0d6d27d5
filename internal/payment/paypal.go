package payment

import (
	"context"
	"fmt"

	"coursemarket-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// paypalTransactionLimit is the simulated per-charge cap of the alternate
// card processor; charges above it are declined, not errored.
const paypalTransactionLimit = 10000.0

type paypalStrategy struct{}

func NewPaypalStrategy() Strategy {
	return &paypalStrategy{}
}

func (p *paypalStrategy) ProcessPayment(ctx context.Context, amount float64, currency string, order OrderContext) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := logger.FromCtx(ctx).With(
		zap.Float64("amount", amount),
		zap.String("currency", currency),
		zap.String("order_number", order.OrderNumber),
	)

	if amount > paypalTransactionLimit {
		log.Warn("paypal payment declined: amount over transaction limit")
		return &Result{
			Success: false,
			Status:  "declined",
			Message: fmt.Sprintf("amount %.2f exceeds paypal transaction limit", amount),
		}, nil
	}

	log.Info("processing paypal payment")

	return &Result{
		Success:   true,
		PaymentID: fmt.Sprintf("paypal_%s", uuid.NewString()[:8]),
		Status:    "completed",
	}, nil
}

func (p *paypalStrategy) RefundPayment(ctx context.Context, paymentID string, amount float64) (*RefundResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("processing paypal refund",
		zap.String("payment_id", paymentID),
		zap.Float64("amount", amount),
	)

	return &RefundResult{
		Success:  true,
		RefundID: fmt.Sprintf("paypal_refund_%s", uuid.NewString()[:8]),
		Amount:   amount,
	}, nil
}
