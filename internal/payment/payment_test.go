package payment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategyForGateway(t *testing.T) {
	t.Run("KnownGateways", func(t *testing.T) {
		for _, gw := range []Gateway{GatewayStripe, GatewayPaypal, GatewayBankTransfer} {
			strategy, err := StrategyForGateway(gw)
			require.NoError(t, err, "gateway %s", gw)
			assert.NotNil(t, strategy)
		}
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		strategy, err := StrategyForGateway(Gateway("STRIPE"))
		require.NoError(t, err)
		assert.NotNil(t, strategy)
	})

	t.Run("Unsupported", func(t *testing.T) {
		_, err := StrategyForGateway(Gateway("bitcoin"))
		assert.True(t, errors.Is(err, ErrUnsupportedGateway))
		assert.Contains(t, err.Error(), "bitcoin")
	})
}

func TestStripeStrategy_ProcessPayment(t *testing.T) {
	strategy := NewStripeStrategy()

	res, err := strategy.ProcessPayment(context.Background(), 100.0, "USD", OrderContext{
		OrderID:     "o1",
		OrderNumber: "ORD-1-1",
		UserID:      "u1",
	})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "succeeded", res.Status)
	assert.True(t, strings.HasPrefix(res.PaymentID, "stripe_"))
}

func TestPaypalStrategy_DeclinesOverLimit(t *testing.T) {
	strategy := NewPaypalStrategy()

	res, err := strategy.ProcessPayment(context.Background(), paypalTransactionLimit+1, "USD", OrderContext{})
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Equal(t, "declined", res.Status)
	assert.NotEmpty(t, res.Message)
}

func TestStrategies_RespectContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, gw := range []Gateway{GatewayStripe, GatewayPaypal, GatewayBankTransfer} {
		strategy, err := StrategyForGateway(gw)
		require.NoError(t, err)

		_, err = strategy.ProcessPayment(ctx, 10, "USD", OrderContext{})
		assert.ErrorIs(t, err, context.Canceled, "gateway %s", gw)

		_, err = strategy.RefundPayment(ctx, "payment_x", 10)
		assert.ErrorIs(t, err, context.Canceled, "gateway %s", gw)
	}
}

func TestProcessor_Delegates(t *testing.T) {
	processor := NewProcessor()
	strategy := NewBankTransferStrategy()

	res, err := processor.Process(context.Background(), strategy, 50, "USD", OrderContext{OrderNumber: "ORD-2-2"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, strings.HasPrefix(res.PaymentID, "banktransfer_"))

	refund, err := processor.Refund(context.Background(), strategy, res.PaymentID, 50)
	require.NoError(t, err)
	assert.True(t, refund.Success)
	assert.Equal(t, 50.0, refund.Amount)
}
