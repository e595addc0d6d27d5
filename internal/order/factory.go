package order

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"coursemarket-be/internal/payment"
)

// Create builds a simple single-amount order in one call. An empty currency
// falls back to the platform default.
func Create(userID string, amount float64, paymentMethod, currency string) *Order {
	if currency == "" {
		currency = DefaultCurrency
	}

	o := &Order{
		OrderNumber:    GenerateOrderNumber(),
		UserID:         userID,
		Amount:         amount,
		PaymentMethod:  paymentMethod,
		Currency:       currency,
		PaymentGateway: payment.DefaultGateway,
		PaymentStatus:  PaymentStatusPending,
	}
	o.CalculateTotalAmount()

	return o
}

// CreateFromExisting shallow-copies a partial record onto a fresh order.
// Used for rehydration.
func CreateFromExisting(partial Order) *Order {
	o := partial
	return &o
}

// GenerateOrderNumber produces a human-readable order number. The random
// suffix space is small; collision risk is accepted as negligible.
func GenerateOrderNumber() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		n = big.NewInt(time.Now().UnixNano() % 1000)
	}

	return fmt.Sprintf("ORD-%d-%d", time.Now().UnixNano(), n.Int64())
}
