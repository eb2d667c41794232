// Package dispatcher turns notification events from the transfer service into
// customer messages.
package dispatcher

import (
	"context"
	"fmt"

	"github.com/eaglebank/moneybox/shared/events"
	"go.uber.org/zap"
)

// Ledger tracks delivered event ids. Satisfied by *SentLedger.
type Ledger interface {
	IsSent(ctx context.Context, eventID string) bool
	MarkSent(ctx context.Context, eventID string)
}

type Dispatcher struct {
	ledger Ledger
	sender Sender
	logger *zap.Logger
}

func NewDispatcher(ledger Ledger, sender Sender, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{ledger: ledger, sender: sender, logger: logger.Named("dispatcher")}
}

// HandleEvent is an events.Handler. A returned error leaves the stream entry
// pending for redelivery; unknown event types and duplicates are acked.
func (d *Dispatcher) HandleEvent(ctx context.Context, event events.Event) error {
	log := d.logger.With(zap.String("event_id", event.ID), zap.String("type", event.Type))

	msg, ok, err := renderMessage(event)
	if !ok {
		log.Debug("ignoring event")
		return nil
	}
	if err != nil {
		return err
	}

	if d.ledger.IsSent(ctx, event.ID) {
		log.Info("notification already sent, skipping duplicate event")
		return nil
	}

	if err := d.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send %s notification: %w", event.Type, err)
	}
	// Marked only after delivery so a failed send is retried.
	d.ledger.MarkSent(ctx, event.ID)
	return nil
}
