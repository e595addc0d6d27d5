package order

import (
	"testing"

	"coursemarket-be/internal/payment"

	"github.com/stretchr/testify/assert"
)

func TestBuilderDefaults(t *testing.T) {
	o := NewBuilder().WithUserID("user-1").Build()

	assert.Equal(t, "user-1", o.UserID)
	assert.Equal(t, PaymentStatusPending, o.PaymentStatus)
	assert.Equal(t, payment.DefaultGateway, o.PaymentGateway)
	assert.Equal(t, DefaultCurrency, o.Currency)
	assert.NotEmpty(t, o.OrderNumber)
	assert.Empty(t, o.Items)
}

func TestBuilderComputesTotalFromAmountTaxDiscount(t *testing.T) {
	o := NewBuilder().
		WithUserID("user-1").
		WithAmount(100).
		WithTax(10).
		WithDiscount(5).
		Build()

	assert.Equal(t, 100.0, o.Amount)
	assert.Equal(t, 105.0, o.TotalAmount)
}

func TestBuilderDerivesAmountFromItems(t *testing.T) {
	o := NewBuilder().
		WithUserID("user-1").
		AddItem("course-1", 50, 10).
		AddItem("course-2", 30, 0).
		Build()

	assert.Len(t, o.Items, 2)
	assert.Equal(t, 45.0, o.Items[0].PriceAfterDiscount)
	assert.Equal(t, 30.0, o.Items[1].PriceAfterDiscount)
	assert.Equal(t, 75.0, o.Amount)
	assert.Equal(t, 75.0, o.TotalAmount)
}

func TestBuilderExplicitAmountWinsOverItems(t *testing.T) {
	o := NewBuilder().
		WithUserID("user-1").
		WithAmount(200).
		AddItem("course-1", 50, 0).
		Build()

	assert.Equal(t, 200.0, o.Amount)
	assert.Equal(t, 200.0, o.TotalAmount)
	assert.Len(t, o.Items, 1)
}

func TestBuilderItemDerivationIncludesTaxAndDiscount(t *testing.T) {
	o := NewBuilder().
		WithUserID("user-1").
		WithTax(7.5).
		WithDiscount(2.5).
		AddItem("course-1", 50, 10).
		AddItem("course-2", 30, 0).
		Build()

	assert.Equal(t, 75.0, o.Amount)
	assert.Equal(t, 80.0, o.TotalAmount)
}

func TestBuilderLastWriteWins(t *testing.T) {
	o := NewBuilder().
		WithCurrency("EUR").
		WithCurrency("IDR").
		WithPaymentGateway(payment.GatewayPaypal).
		WithPaymentGateway(payment.GatewayBankTransfer).
		Build()

	assert.Equal(t, "IDR", o.Currency)
	assert.Equal(t, payment.GatewayBankTransfer, o.PaymentGateway)
}
