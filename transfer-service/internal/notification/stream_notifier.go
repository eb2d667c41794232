package notification

import (
	"context"
	"fmt"

	"github.com/eaglebank/moneybox/shared/events"
	"github.com/eaglebank/moneybox/shared/utils"
	"go.uber.org/zap"
)

// EventPublisher is satisfied by *events.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) (string, error)
}

// StreamNotifier hands notifications to the notification-service by
// appending them to a Redis stream. Delivery is the consumer's concern.
type StreamNotifier struct {
	publisher EventPublisher
	stream    string
	logger    *zap.Logger
}

func NewStreamNotifier(publisher EventPublisher, stream string, logger *zap.Logger) *StreamNotifier {
	if stream == "" {
		stream = events.NotificationEventsStream
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StreamNotifier{publisher: publisher, stream: stream, logger: logger}
}

func (n *StreamNotifier) NotifyFundsLow(ctx context.Context, email string) error {
	return n.publish(ctx, events.FundsLow, email)
}

func (n *StreamNotifier) NotifyApproachingPayInLimit(ctx context.Context, email string) error {
	return n.publish(ctx, events.PayInLimitApproaching, email)
}

func (n *StreamNotifier) publish(ctx context.Context, eventType, email string) error {
	if email == "" {
		return fmt.Errorf("cannot publish %s: account owner has no email", eventType)
	}
	id, err := n.publisher.Publish(ctx, n.stream, eventType, events.NotificationEvent{Email: email})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}
	n.logger.Debug("notification queued",
		zap.String("event_id", id),
		zap.String("type", eventType),
		zap.String("email", utils.MaskEmail(email)),
	)
	return nil
}
