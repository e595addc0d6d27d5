package payment

import "context"

// Processor delegates charge and refund calls to the strategy handed in per
// call. Keeping the strategy out of processor state lets one processor serve
// concurrent orders on different gateways.
type Processor struct{}

func NewProcessor() *Processor {
	return &Processor{}
}

func (p *Processor) Process(ctx context.Context, strategy Strategy, amount float64, currency string, order OrderContext) (*Result, error) {
	return strategy.ProcessPayment(ctx, amount, currency, order)
}

func (p *Processor) Refund(ctx context.Context, strategy Strategy, paymentID string, amount float64) (*RefundResult, error) {
	return strategy.RefundPayment(ctx, paymentID, amount)
}
