package order

import (
	"context"
	"time"

	"coursemarket-be/internal/client"
	"coursemarket-be/internal/logger"
	"coursemarket-be/internal/metrics"
	"coursemarket-be/internal/payment"
	"coursemarket-be/internal/policy"

	"go.uber.org/zap"
)

// CourseLookup resolves course pricing from the sibling course service.
type CourseLookup interface {
	GetCourse(ctx context.Context, id string) (*client.Course, error)
}

// StrategyResolver maps a gateway to a payment strategy.
type StrategyResolver func(payment.Gateway) (payment.Strategy, error)

type ComplexOrderItemInput struct {
	CourseID string
	Price    *float64
	Discount float64
}

type ComplexOrderOptions struct {
	Tax            *float64
	Discount       *float64
	Currency       *string
	PaymentGateway *payment.Gateway
	Items          []ComplexOrderItemInput
}

type Service interface {
	CreateSimpleOrder(ctx context.Context, userID, email string, amount float64, paymentMethod string) (*Order, error)
	CreateComplexOrder(ctx context.Context, userID, email string, amount float64, paymentMethod string, opts *ComplexOrderOptions) (*Order, error)
	CancelOrder(ctx context.Context, orderID, email string) (*Order, error)
	RefundOrder(ctx context.Context, email, orderID string, refundAmount *float64) (*Order, error)
	GetOrderByID(ctx context.Context, id string) (*Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*Order, error)
	GetStudentOrders(ctx context.Context, userID string) ([]*Order, error)
	GetOrderStatistics(ctx context.Context, userID *string) (*Statistics, error)
}

type ServiceConfig struct {
	PaymentMaxRetries int
	PaymentRetryDelay time.Duration
	OrderCacheTTL     time.Duration

	// SkipCancelNotification silences the failure-channel notification a
	// cancellation emits by default.
	SkipCancelNotification bool

	// StrategyResolver defaults to payment.StrategyForGateway.
	StrategyResolver StrategyResolver
}

type service struct {
	repo      Repository
	subject   *Subject
	processor *payment.Processor
	courses   CourseLookup
	cache     *policy.Cache
	cfg       ServiceConfig
}

func NewService(repo Repository, subject *Subject, processor *payment.Processor, courses CourseLookup, cfg ServiceConfig) Service {
	if cfg.PaymentMaxRetries <= 0 {
		cfg.PaymentMaxRetries = 3
	}
	if cfg.PaymentRetryDelay <= 0 {
		cfg.PaymentRetryDelay = time.Second
	}
	if cfg.OrderCacheTTL <= 0 {
		cfg.OrderCacheTTL = 5 * time.Minute
	}
	if cfg.StrategyResolver == nil {
		cfg.StrategyResolver = payment.StrategyForGateway
	}

	return &service{
		repo:      repo,
		subject:   subject,
		processor: processor,
		courses:   courses,
		cache:     policy.NewCache(),
		cfg:       cfg,
	}
}

func (s *service) CreateSimpleOrder(ctx context.Context, userID, email string, amount float64, paymentMethod string) (*Order, error) {
	return policy.Logged(logger.FromCtx(ctx), "CreateSimpleOrder", func() (*Order, error) {
		o := Create(userID, amount, paymentMethod, "")

		saved, err := s.repo.CreateOrder(ctx, o)
		if err != nil {
			return nil, err
		}
		metrics.OrdersCreatedTotal.Inc()

		s.subject.NotifyOrderCreated(ctx, saved, email)

		if err := s.processOrderPayment(ctx, saved, email); err != nil {
			return saved, err
		}
		return saved, nil
	}, userID, amount, paymentMethod)
}

func (s *service) CreateComplexOrder(ctx context.Context, userID, email string, amount float64, paymentMethod string, opts *ComplexOrderOptions) (*Order, error) {
	return policy.Logged(logger.FromCtx(ctx), "CreateComplexOrder", func() (*Order, error) {
		builder := NewBuilder().
			WithUserID(userID).
			WithPaymentMethod(paymentMethod)

		if amount != 0 {
			builder.WithAmount(amount)
		}

		if opts != nil {
			if opts.Tax != nil {
				builder.WithTax(*opts.Tax)
			}
			if opts.Discount != nil {
				builder.WithDiscount(*opts.Discount)
			}
			if opts.Currency != nil {
				builder.WithCurrency(*opts.Currency)
			}
			if opts.PaymentGateway != nil {
				builder.WithPaymentGateway(*opts.PaymentGateway)
			}

			for _, item := range opts.Items {
				price, err := s.resolveItemPrice(ctx, item)
				if err != nil {
					return nil, err
				}
				builder.AddItem(item.CourseID, price, item.Discount)
			}
		}

		saved, err := s.repo.CreateOrder(ctx, builder.Build())
		if err != nil {
			return nil, err
		}
		metrics.OrdersCreatedTotal.Inc()

		s.subject.NotifyOrderCreated(ctx, saved, email)

		if err := s.processOrderPayment(ctx, saved, email); err != nil {
			return saved, err
		}
		return saved, nil
	}, userID, amount, paymentMethod)
}

func (s *service) resolveItemPrice(ctx context.Context, item ComplexOrderItemInput) (float64, error) {
	if item.Price != nil {
		return *item.Price, nil
	}
	if item.CourseID == "" || s.courses == nil {
		return 0, ErrItemPriceMissing
	}

	course, err := s.courses.GetCourse(ctx, item.CourseID)
	if err != nil {
		return 0, err
	}
	return course.Price, nil
}

// processOrderPayment runs the shared payment-attempt routine under the
// retry policy. Every retried attempt re-executes the whole routine,
// including persisting FAILED and notifying.
func (s *service) processOrderPayment(ctx context.Context, o *Order, email string) error {
	strategy, err := s.cfg.StrategyResolver(o.PaymentGateway)
	if err != nil {
		return err
	}

	_, err = policy.Retry(ctx, s.cfg.PaymentMaxRetries, s.cfg.PaymentRetryDelay, func() (struct{}, error) {
		return struct{}{}, s.attemptPayment(ctx, strategy, o, email)
	})
	return err
}

func (s *service) attemptPayment(ctx context.Context, strategy payment.Strategy, o *Order, email string) error {
	metrics.PaymentAttemptsTotal.WithLabelValues(string(o.PaymentGateway)).Inc()

	result, payErr := s.processor.Process(ctx, strategy, o.TotalAmount, o.Currency, payment.OrderContext{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
	})

	if payErr != nil || !result.Success {
		o.PaymentStatus = PaymentStatusFailed
		updated, err := s.repo.UpdateOrder(ctx, o)
		if err != nil {
			return err
		}
		*o = *updated
		metrics.OrdersFailedTotal.Inc()

		s.subject.NotifyOrderFailed(ctx, o, email)

		// only a transport error re-enters the retry loop; a logical
		// decline is terminal for the attempt
		return payErr
	}

	o.PaymentStatus = PaymentStatusCompleted
	updated, err := s.repo.UpdateOrder(ctx, o)
	if err != nil {
		return err
	}
	*o = *updated
	metrics.OrdersCompletedTotal.Inc()

	s.subject.NotifyOrderCompleted(ctx, o, email)
	return nil
}

func (s *service) CancelOrder(ctx context.Context, orderID, email string) (*Order, error) {
	return policy.Logged(logger.FromCtx(ctx), "CancelOrder", func() (*Order, error) {
		o, err := s.repo.FindByID(ctx, orderID)
		if err != nil {
			return nil, err
		}

		if o.PaymentStatus != PaymentStatusPending {
			return nil, ErrNotPending
		}

		o.PaymentStatus = PaymentStatusCancelled
		updated, err := s.repo.UpdateOrder(ctx, o)
		if err != nil {
			return nil, err
		}
		metrics.OrdersCancelledTotal.Inc()

		if !s.cfg.SkipCancelNotification {
			s.subject.NotifyOrderFailed(ctx, updated, email)
		}
		return updated, nil
	}, orderID)
}

func (s *service) RefundOrder(ctx context.Context, email, orderID string, refundAmount *float64) (*Order, error) {
	return policy.Logged(logger.FromCtx(ctx), "RefundOrder", func() (*Order, error) {
		o, err := s.repo.FindByID(ctx, orderID)
		if err != nil {
			return nil, err
		}

		if !o.IsRefundable() {
			return nil, ErrNotRefundable
		}

		amount := o.TotalAmount
		if refundAmount != nil {
			amount = *refundAmount
		}

		strategy, err := s.cfg.StrategyResolver(o.PaymentGateway)
		if err != nil {
			return nil, err
		}

		result, err := s.processor.Refund(ctx, strategy, "payment_"+o.ID, amount)
		if err != nil {
			return nil, err
		}

		if result.Success {
			logger.FromCtx(ctx).Info("order refunded",
				zap.String("order_number", o.OrderNumber),
				zap.String("refund_id", result.RefundID),
				zap.Float64("amount", result.Amount),
			)
			metrics.OrdersRefundedTotal.Inc()

			// a successful refund fires the notification only; payment
			// status stays completed
			s.subject.NotifyOrderRefunded(ctx, o, email)
		}

		return o, nil
	}, orderID)
}

func (s *service) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	return policy.Logged(logger.FromCtx(ctx), "GetOrderByID", func() (*Order, error) {
		return policy.Cached(s.cache, s.cfg.OrderCacheTTL, "GetOrderByID", func() (*Order, error) {
			return s.repo.FindByID(ctx, id)
		}, id)
	}, id)
}

func (s *service) GetOrderByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	return policy.Logged(logger.FromCtx(ctx), "GetOrderByNumber", func() (*Order, error) {
		return s.repo.FindByOrderNumber(ctx, orderNumber)
	}, orderNumber)
}

func (s *service) GetStudentOrders(ctx context.Context, userID string) ([]*Order, error) {
	return policy.Logged(logger.FromCtx(ctx), "GetStudentOrders", func() ([]*Order, error) {
		return s.repo.FindByUserID(ctx, userID)
	}, userID)
}

func (s *service) GetOrderStatistics(ctx context.Context, userID *string) (*Statistics, error) {
	return policy.Logged(logger.FromCtx(ctx), "GetOrderStatistics", func() (*Statistics, error) {
		return s.repo.GetOrderStatistics(ctx, userID)
	})
}
