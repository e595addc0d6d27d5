package payment

import (
	"context"
	"fmt"

	"coursemarket-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// stripeStrategy simulates the primary card processor. The real SDK
// integration lives outside this service.
type stripeStrategy struct{}

func NewStripeStrategy() Strategy {
	return &stripeStrategy{}
}

func (s *stripeStrategy) ProcessPayment(ctx context.Context, amount float64, currency string, order OrderContext) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("processing stripe payment",
		zap.Float64("amount", amount),
		zap.String("currency", currency),
		zap.String("order_number", order.OrderNumber),
	)

	return &Result{
		Success:   true,
		PaymentID: fmt.Sprintf("stripe_%s", uuid.NewString()[:8]),
		Status:    "succeeded",
	}, nil
}

func (s *stripeStrategy) RefundPayment(ctx context.Context, paymentID string, amount float64) (*RefundResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("processing stripe refund",
		zap.String("payment_id", paymentID),
		zap.Float64("amount", amount),
	)

	return &RefundResult{
		Success:  true,
		RefundID: fmt.Sprintf("stripe_refund_%s", uuid.NewString()[:8]),
		Amount:   amount,
	}, nil
}
