package order

import (
	"regexp"
	"testing"
	"time"

	"coursemarket-be/internal/payment"

	"github.com/stretchr/testify/assert"
)

func TestCreateComputesTotal(t *testing.T) {
	o := Create("user-1", 99.99, "credit_card", "EUR")

	assert.Equal(t, "user-1", o.UserID)
	assert.Equal(t, 99.99, o.Amount)
	assert.Equal(t, 99.99, o.TotalAmount)
	assert.Equal(t, "EUR", o.Currency)
	assert.Equal(t, "credit_card", o.PaymentMethod)
	assert.Equal(t, payment.DefaultGateway, o.PaymentGateway)
	assert.Equal(t, PaymentStatusPending, o.PaymentStatus)
}

func TestCreateDefaultsCurrency(t *testing.T) {
	o := Create("user-1", 10, "credit_card", "")

	assert.Equal(t, DefaultCurrency, o.Currency)
}

func TestCreateFromExistingCopies(t *testing.T) {
	src := Order{
		ID:            "order-1",
		OrderNumber:   "ORD-1-1",
		UserID:        "user-1",
		Amount:        50,
		TotalAmount:   50,
		PaymentStatus: PaymentStatusCompleted,
		CreatedAt:     time.Now(),
	}

	o := CreateFromExisting(src)

	assert.Equal(t, src.ID, o.ID)
	assert.Equal(t, src.PaymentStatus, o.PaymentStatus)

	o.PaymentStatus = PaymentStatusFailed
	assert.Equal(t, PaymentStatusCompleted, src.PaymentStatus)
}

func TestGenerateOrderNumberFormat(t *testing.T) {
	n := GenerateOrderNumber()

	assert.Regexp(t, regexp.MustCompile(`^ORD-\d+-\d+$`), n)
}

func TestGenerateOrderNumberUniqueness(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		n := GenerateOrderNumber()
		_, dup := seen[n]
		assert.False(t, dup, "duplicate order number %s", n)
		seen[n] = struct{}{}
	}
}
