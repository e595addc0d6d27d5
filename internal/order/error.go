package order

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrNotPending    = errors.New("only pending orders can be cancelled")
	ErrNotRefundable = errors.New("order is not refundable")

	ErrItemPriceMissing = errors.New("order item needs a price or a course id")
)
