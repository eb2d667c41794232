package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler func(ctx context.Context, event Event) error

type Subscriber struct {
	client        *redis.Client
	group         string
	consumer      string
	stream        string
	handler       Handler
	batchSize     int64
	blockDuration time.Duration
	logger        *zap.Logger
}

type SubscriberConfig struct {
	Group         string
	Consumer      string
	Stream        string
	Handler       Handler
	BatchSize     int64
	BlockDuration time.Duration
	Logger        *zap.Logger
}

func NewSubscriber(client *redis.Client, config SubscriberConfig) *Subscriber {
	if config.BatchSize == 0 {
		config.BatchSize = 10
	}
	if config.BlockDuration == 0 {
		config.BlockDuration = 5 * time.Second
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	return &Subscriber{
		client:        client,
		group:         config.Group,
		consumer:      config.Consumer,
		stream:        config.Stream,
		handler:       config.Handler,
		batchSize:     config.BatchSize,
		blockDuration: config.BlockDuration,
		logger: config.Logger.With(
			zap.String("stream", config.Stream),
			zap.String("group", config.Group),
			zap.String("consumer", config.Consumer),
		),
	}
}

// EnsureGroup creates the consumer group (and the stream) if it doesn't exist.
func (s *Subscriber) EnsureGroup(ctx context.Context) error {
	err := s.client.XGroupCreateMkStream(ctx, s.stream, s.group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	return nil
}

// Start consumes the stream until ctx is cancelled.
func (s *Subscriber) Start(ctx context.Context) error {
	if err := s.EnsureGroup(ctx); err != nil {
		return err
	}

	s.logger.Info("subscriber started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("subscriber stopping")
			return ctx.Err()
		default:
			if _, err := s.Poll(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error("error reading messages", zap.Error(err))
				select {
				case <-ctx.Done():
				case <-time.After(time.Second):
				}
			}
		}
	}
}

// Poll retries this consumer's pending entries, then reads one batch of new
// ones. It returns how many messages were handled and acked.
func (s *Subscriber) Poll(ctx context.Context) (int, error) {
	// "0" replays our own unacked backlog and never blocks.
	retried, err := s.readGroup(ctx, "0", -1)
	if err != nil {
		return 0, err
	}

	fresh, err := s.readGroup(ctx, ">", s.blockDuration)
	if err != nil {
		return retried, err
	}
	return retried + fresh, nil
}

func (s *Subscriber) readGroup(ctx context.Context, id string, block time.Duration) (int, error) {
	streams, err := s.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    s.group,
		Consumer: s.consumer,
		Streams:  []string{s.stream, id},
		Count:    s.batchSize,
		Block:    block,
	}).Result()

	if errors.Is(err, redis.Nil) {
		return 0, nil // No messages
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read from stream: %w", err)
	}

	acked := 0
	for _, stream := range streams {
		for _, message := range stream.Messages {
			if message.Values == nil {
				// Trimmed from the stream while pending; nothing left to handle.
				s.ack(ctx, message.ID)
				continue
			}
			if err := s.processMessage(ctx, message); err != nil {
				// Left pending; the next Poll retries it.
				s.logger.Warn("failed to process message", zap.String("message_id", message.ID), zap.Error(err))
				continue
			}
			if s.ack(ctx, message.ID) {
				acked++
			}
		}
	}

	return acked, nil
}

func (s *Subscriber) ack(ctx context.Context, id string) bool {
	if err := s.client.XAck(ctx, s.stream, s.group, id).Err(); err != nil {
		s.logger.Warn("failed to ack message", zap.String("message_id", id), zap.Error(err))
		return false
	}
	return true
}

func (s *Subscriber) processMessage(ctx context.Context, message redis.XMessage) error {
	eventData, ok := message.Values["event"].(string)
	if !ok {
		return fmt.Errorf("invalid message format")
	}

	var event Event
	if err := json.Unmarshal([]byte(eventData), &event); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return s.handler(ctx, event)
}
