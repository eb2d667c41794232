package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types
const (
	FundsLow              = "notification.funds_low"
	PayInLimitApproaching = "notification.pay_in_limit_approaching"
)

// Stream names
const (
	NotificationEventsStream = "notification.events"
)

// Base event structure
type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// Decode unmarshals the event payload into v.
func (e Event) Decode(v any) error {
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", e.Type, err)
	}
	return nil
}

// Notification events
type NotificationEvent struct {
	Email string `json:"email"`
}
