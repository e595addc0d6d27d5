package notification

import (
	"context"
	"encoding/json"
	"time"

	"coursemarket-be/internal/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Channel string

const (
	ChannelEmail     Channel = "email"
	ChannelAnalytics Channel = "analytics"
)

// Message is the payload handed to the delivery side of a channel.
type Message struct {
	RecipientID string `json:"recipient_id"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
}

// Sender pushes a message onto an outbound notification channel. Delivery,
// retries and templating happen downstream.
type Sender interface {
	Send(ctx context.Context, channel Channel, msg Message) error
}

type envelope struct {
	Channel Channel `json:"channel"`
	Message
	SentAt time.Time `json:"sent_at"`
}

type KafkaSender struct {
	writer *kafka.Writer
}

func NewKafkaSender(brokers []string, topic string) *KafkaSender {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}

	return &KafkaSender{writer: writer}
}

func (s *KafkaSender) Send(ctx context.Context, channel Channel, msg Message) error {
	value, err := encodeEnvelope(channel, msg)
	if err != nil {
		return err
	}

	err = s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.RecipientID),
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		logger.FromCtx(ctx).Error("failed to publish notification",
			zap.String("channel", string(channel)),
			zap.String("recipient", msg.RecipientID),
			zap.Error(err),
		)
		return err
	}

	logger.FromCtx(ctx).Debug("notification published",
		zap.String("channel", string(channel)),
		zap.String("recipient", msg.RecipientID),
		zap.String("subject", msg.Subject),
	)
	return nil
}

func (s *KafkaSender) Close() error {
	return s.writer.Close()
}

func encodeEnvelope(channel Channel, msg Message) ([]byte, error) {
	return json.Marshal(envelope{
		Channel: channel,
		Message: msg,
		SentAt:  time.Now().UTC(),
	})
}
