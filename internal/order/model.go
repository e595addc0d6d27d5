package order

import (
	"math"
	"time"

	"coursemarket-be/internal/payment"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// DefaultCurrency is the fixed platform currency applied when a caller does
// not choose one.
const DefaultCurrency = "USD"

// RefundWindow is the period after creation during which a completed order
// may be refunded.
const RefundWindow = 30 * 24 * time.Hour

type Order struct {
	ID             string          `json:"id"`
	OrderNumber    string          `json:"orderNumber"`
	UserID         string          `json:"userId"`
	Amount         float64         `json:"amount"`
	Tax            float64         `json:"tax"`
	Discount       float64         `json:"discount"`
	TotalAmount    float64         `json:"totalAmount"`
	Currency       string          `json:"currency"`
	PaymentMethod  string          `json:"paymentMethod"`
	PaymentGateway payment.Gateway `json:"paymentGateway"`
	PaymentStatus  PaymentStatus   `json:"paymentStatus"`
	Items          []OrderItem     `json:"items,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// CalculateTotalAmount recomputes the total from the current amount, tax and
// discount. Must be called again after any of those change.
func (o *Order) CalculateTotalAmount() {
	o.TotalAmount = round2(o.Amount + o.Tax - o.Discount)
}

// IsRefundable reports whether the order is completed and still inside the
// refund window.
func (o *Order) IsRefundable() bool {
	return o.PaymentStatus == PaymentStatusCompleted &&
		time.Since(o.CreatedAt) < RefundWindow
}

type OrderItem struct {
	ID                 string  `json:"id"`
	OrderID            string  `json:"orderId"`
	CourseID           string  `json:"courseId"`
	Price              float64 `json:"price"`
	PriceAfterDiscount float64 `json:"priceAfterDiscount"`
}

// CalculateDiscountedPrice applies a percentage discount to the unit price.
func (i *OrderItem) CalculateDiscountedPrice(discountPercentage float64) {
	i.PriceAfterDiscount = round2(i.Price * (1 - discountPercentage/100))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
