package payment

import "context"

// OrderContext carries order identity into a gateway call.
type OrderContext struct {
	OrderID     string
	OrderNumber string
	UserID      string
}

// Result is a gateway's answer to a charge attempt. Success=false with a nil
// error is a logical decline; a non-nil error is a transport failure.
type Result struct {
	Success   bool
	PaymentID string
	Status    string
	Message   string
}

type RefundResult struct {
	Success  bool
	RefundID string
	Amount   float64
}

// Strategy is the uniform contract over interchangeable payment backends.
type Strategy interface {
	ProcessPayment(ctx context.Context, amount float64, currency string, order OrderContext) (*Result, error)
	RefundPayment(ctx context.Context, paymentID string, amount float64) (*RefundResult, error)
}
