package dispatcher

import (
	"fmt"

	"github.com/eaglebank/moneybox/shared/events"
	"github.com/eaglebank/moneybox/shared/models"
)

// Message is a rendered notification ready for delivery.
type Message struct {
	To      string
	Subject string
	Body    string
}

// renderMessage builds the message for a notification event. ok is false for
// event types this service does not deliver.
func renderMessage(event events.Event) (msg Message, ok bool, err error) {
	var data events.NotificationEvent

	switch event.Type {
	case events.FundsLow:
		if err := event.Decode(&data); err != nil {
			return Message{}, true, err
		}
		msg = Message{
			Subject: "Your balance is running low",
			Body: fmt.Sprintf("Your account balance has fallen below %s. Pay in soon to avoid declined withdrawals.",
				models.LowFundThreshold.StringFixed(2)),
		}
	case events.PayInLimitApproaching:
		if err := event.Decode(&data); err != nil {
			return Message{}, true, err
		}
		msg = Message{
			Subject: "You are close to your pay-in limit",
			Body: fmt.Sprintf("You have less than %s left of your %s pay-in allowance.",
				models.PayInNotificationThreshold.StringFixed(2), models.PayInLimit.StringFixed(2)),
		}
	default:
		return Message{}, false, nil
	}

	if data.Email == "" {
		return Message{}, true, fmt.Errorf("%s event %s has no recipient", event.Type, event.ID)
	}
	msg.To = data.Email
	return msg, true, nil
}
