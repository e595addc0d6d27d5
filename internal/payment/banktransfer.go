package payment

import (
	"context"
	"fmt"

	"coursemarket-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type bankTransferStrategy struct{}

func NewBankTransferStrategy() Strategy {
	return &bankTransferStrategy{}
}

func (b *bankTransferStrategy) ProcessPayment(ctx context.Context, amount float64, currency string, order OrderContext) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("processing bank transfer payment",
		zap.Float64("amount", amount),
		zap.String("currency", currency),
		zap.String("order_number", order.OrderNumber),
	)

	return &Result{
		Success:   true,
		PaymentID: fmt.Sprintf("banktransfer_%s", uuid.NewString()[:8]),
		Status:    "completed",
	}, nil
}

func (b *bankTransferStrategy) RefundPayment(ctx context.Context, paymentID string, amount float64) (*RefundResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("processing bank transfer refund",
		zap.String("payment_id", paymentID),
		zap.Float64("amount", amount),
	)

	return &RefundResult{
		Success:  true,
		RefundID: fmt.Sprintf("banktransfer_refund_%s", uuid.NewString()[:8]),
		Amount:   amount,
	}, nil
}
