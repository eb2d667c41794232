package dispatcher

import (
	"context"

	"github.com/eaglebank/moneybox/shared/utils"
	"go.uber.org/zap"
)

// Sender delivers a rendered message to its recipient.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes messages to the structured log instead of a mail gateway.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger.Named("log_sender")}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.Info("notification sent",
		zap.String("to", utils.MaskEmail(msg.To)),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}
