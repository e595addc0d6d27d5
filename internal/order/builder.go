package order

import "coursemarket-be/internal/payment"

// Builder assembles an itemized order step by step. Setters follow
// last-write-wins; totals are computed on Build.
type Builder struct {
	order     Order
	items     []OrderItem
	amountSet bool
}

func NewBuilder() *Builder {
	return &Builder{
		order: Order{
			OrderNumber:    GenerateOrderNumber(),
			PaymentStatus:  PaymentStatusPending,
			PaymentGateway: payment.DefaultGateway,
			Currency:       DefaultCurrency,
			Tax:            0,
			Discount:       0,
		},
	}
}

func (b *Builder) WithUserID(userID string) *Builder {
	b.order.UserID = userID
	return b
}

func (b *Builder) WithAmount(amount float64) *Builder {
	b.order.Amount = amount
	b.amountSet = true
	return b
}

func (b *Builder) WithTax(tax float64) *Builder {
	b.order.Tax = tax
	return b
}

func (b *Builder) WithDiscount(discount float64) *Builder {
	b.order.Discount = discount
	return b
}

func (b *Builder) WithCurrency(currency string) *Builder {
	b.order.Currency = currency
	return b
}

func (b *Builder) WithPaymentMethod(method string) *Builder {
	b.order.PaymentMethod = method
	return b
}

func (b *Builder) WithPaymentGateway(gateway payment.Gateway) *Builder {
	b.order.PaymentGateway = gateway
	return b
}

// AddItem appends a priced line, computing its discounted price at call time.
func (b *Builder) AddItem(courseID string, price, discountPercentage float64) *Builder {
	item := OrderItem{
		CourseID: courseID,
		Price:    price,
	}
	item.CalculateDiscountedPrice(discountPercentage)
	b.items = append(b.items, item)
	return b
}

// Build returns the fully formed, not yet persisted order. When items were
// added and no explicit amount was set, the amount derives from the sum of
// item discounted prices.
func (b *Builder) Build() *Order {
	o := b.order
	o.CalculateTotalAmount()

	if len(b.items) > 0 {
		o.Items = b.items
		if !b.amountSet {
			var sum float64
			for _, item := range b.items {
				sum += item.PriceAfterDiscount
			}
			o.Amount = round2(sum)
			o.CalculateTotalAmount()
		}
	}

	return &o
}
