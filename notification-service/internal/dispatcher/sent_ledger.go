package dispatcher

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sentKeyPrefix = "notification:sent:"

// SentLedger remembers which events have already been delivered so that a
// redelivered stream entry does not message the customer twice.
type SentLedger struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewSentLedger keeps entries for ttl, which should cover the consumer group's redelivery window.
func NewSentLedger(client *redis.Client, ttl time.Duration, logger *zap.Logger) *SentLedger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SentLedger{client: client, ttl: ttl, logger: logger}
}

// IsSent reports whether eventID was delivered. Redis errors count as not sent.
func (l *SentLedger) IsSent(ctx context.Context, eventID string) bool {
	n, err := l.client.Exists(ctx, sentKeyPrefix+eventID).Result()
	if err != nil {
		l.logger.Warn("sent ledger lookup failed", zap.String("event_id", eventID), zap.Error(err))
		return false
	}
	return n > 0
}

// MarkSent records a delivery.
func (l *SentLedger) MarkSent(ctx context.Context, eventID string) {
	if err := l.client.Set(ctx, sentKeyPrefix+eventID, "1", l.ttl).Err(); err != nil {
		l.logger.Warn("failed to mark notification sent", zap.String("event_id", eventID), zap.Error(err))
	}
}
