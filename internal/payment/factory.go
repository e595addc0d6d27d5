package payment

import (
	"errors"
	"fmt"
	"strings"
)

type Gateway string

const (
	GatewayStripe       Gateway = "stripe"
	GatewayPaypal       Gateway = "paypal"
	GatewayBankTransfer Gateway = "bank_transfer"
)

// DefaultGateway is the platform default applied when an order does not
// choose a backend.
const DefaultGateway = GatewayStripe

var ErrUnsupportedGateway = errors.New("unsupported payment gateway")

// StrategyForGateway maps a gateway identifier to a concrete strategy. An
// unrecognized identifier is fatal and must never be retried.
func StrategyForGateway(gateway Gateway) (Strategy, error) {
	switch Gateway(strings.ToLower(string(gateway))) {
	case GatewayStripe:
		return NewStripeStrategy(), nil
	case GatewayPaypal:
		return NewPaypalStrategy(), nil
	case GatewayBankTransfer:
		return NewBankTransferStrategy(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGateway, gateway)
	}
}
