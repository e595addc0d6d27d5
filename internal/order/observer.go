package order

import (
	"context"
	"fmt"

	"coursemarket-be/internal/logger"
	"coursemarket-be/internal/notification"

	"go.uber.org/zap"
)

// Observer reacts to the four order lifecycle events. The email argument is
// the destination for user-facing notifications.
type Observer interface {
	OnOrderCreated(ctx context.Context, o *Order, email string) error
	OnOrderCompleted(ctx context.Context, o *Order, email string) error
	OnOrderFailed(ctx context.Context, o *Order, email string) error
	OnOrderRefunded(ctx context.Context, o *Order, email string) error
}

// EmailNotificationObserver sends a confirmation message per lifecycle event.
type EmailNotificationObserver struct {
	sender notification.Sender
}

func NewEmailNotificationObserver(sender notification.Sender) *EmailNotificationObserver {
	return &EmailNotificationObserver{sender: sender}
}

func (e *EmailNotificationObserver) OnOrderCreated(ctx context.Context, o *Order, email string) error {
	return e.sender.Send(ctx, notification.ChannelEmail, notification.Message{
		RecipientID: email,
		Subject:     fmt.Sprintf("Order %s received", o.OrderNumber),
		Body: fmt.Sprintf(
			"We received your order %s for %.2f %s. You will be notified once payment completes.",
			o.OrderNumber, o.TotalAmount, o.Currency,
		),
	})
}

func (e *EmailNotificationObserver) OnOrderCompleted(ctx context.Context, o *Order, email string) error {
	return e.sender.Send(ctx, notification.ChannelEmail, notification.Message{
		RecipientID: email,
		Subject:     fmt.Sprintf("Order %s completed", o.OrderNumber),
		Body: fmt.Sprintf(
			"Payment of %.2f %s for order %s succeeded. Your courses are now available.",
			o.TotalAmount, o.Currency, o.OrderNumber,
		),
	})
}

func (e *EmailNotificationObserver) OnOrderFailed(ctx context.Context, o *Order, email string) error {
	return e.sender.Send(ctx, notification.ChannelEmail, notification.Message{
		RecipientID: email,
		Subject:     fmt.Sprintf("Order %s was not completed", o.OrderNumber),
		Body: fmt.Sprintf(
			"Payment for order %s did not go through. No charge was kept; please try again.",
			o.OrderNumber,
		),
	})
}

func (e *EmailNotificationObserver) OnOrderRefunded(ctx context.Context, o *Order, email string) error {
	return e.sender.Send(ctx, notification.ChannelEmail, notification.Message{
		RecipientID: email,
		Subject:     fmt.Sprintf("Refund confirmed for order %s", o.OrderNumber),
		Body: fmt.Sprintf(
			"Your refund for order %s has been issued to the original payment method.",
			o.OrderNumber,
		),
	})
}

// AnalyticsObserver forwards an event record per lifecycle event.
type AnalyticsObserver struct {
	sender notification.Sender
}

func NewAnalyticsObserver(sender notification.Sender) *AnalyticsObserver {
	return &AnalyticsObserver{sender: sender}
}

func (a *AnalyticsObserver) track(ctx context.Context, event string, o *Order, email string) error {
	return a.sender.Send(ctx, notification.ChannelAnalytics, notification.Message{
		RecipientID: email,
		Subject:     event,
		Body: fmt.Sprintf(
			`{"event":%q,"order_number":%q,"user_id":%q,"total_amount":%.2f,"currency":%q,"status":%q}`,
			event, o.OrderNumber, o.UserID, o.TotalAmount, o.Currency, o.PaymentStatus,
		),
	})
}

func (a *AnalyticsObserver) OnOrderCreated(ctx context.Context, o *Order, email string) error {
	return a.track(ctx, "order.created", o, email)
}

func (a *AnalyticsObserver) OnOrderCompleted(ctx context.Context, o *Order, email string) error {
	return a.track(ctx, "order.completed", o, email)
}

func (a *AnalyticsObserver) OnOrderFailed(ctx context.Context, o *Order, email string) error {
	return a.track(ctx, "order.failed", o, email)
}

func (a *AnalyticsObserver) OnOrderRefunded(ctx context.Context, o *Order, email string) error {
	return a.track(ctx, "order.refunded", o, email)
}

// Subject fans an event out to every attached observer, sequentially and in
// attachment order. A failing observer is logged and does not stop the
// remaining observers or affect order state.
type Subject struct {
	observers []Observer
}

func NewSubject() *Subject {
	return &Subject{}
}

func (s *Subject) Attach(o Observer) {
	s.observers = append(s.observers, o)
}

func (s *Subject) Detach(o Observer) {
	for i, observer := range s.observers {
		if observer == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

func (s *Subject) notify(ctx context.Context, event string, fn func(Observer) error) {
	for _, observer := range s.observers {
		if err := fn(observer); err != nil {
			logger.FromCtx(ctx).Error("observer notification failed",
				zap.String("event", event),
				zap.Error(err),
			)
		}
	}
}

func (s *Subject) NotifyOrderCreated(ctx context.Context, o *Order, email string) {
	s.notify(ctx, "order.created", func(ob Observer) error {
		return ob.OnOrderCreated(ctx, o, email)
	})
}

func (s *Subject) NotifyOrderCompleted(ctx context.Context, o *Order, email string) {
	s.notify(ctx, "order.completed", func(ob Observer) error {
		return ob.OnOrderCompleted(ctx, o, email)
	})
}

func (s *Subject) NotifyOrderFailed(ctx context.Context, o *Order, email string) {
	s.notify(ctx, "order.failed", func(ob Observer) error {
		return ob.OnOrderFailed(ctx, o, email)
	})
}

func (s *Subject) NotifyOrderRefunded(ctx context.Context, o *Order, email string) {
	s.notify(ctx, "order.refunded", func(ob Observer) error {
		return ob.OnOrderRefunded(ctx, o, email)
	})
}
