// Package notify delivers verification codes to phone owners.
package notify

import (
	"context"

	"github.com/dmitrijs2005/phoneauth/internal/logging"
)

type Sender interface {
	SendCode(ctx context.Context, phone string, code string) error
}

// LogSender writes codes to the log instead of sending an SMS.
type LogSender struct {
	logger logging.Logger
}

func NewLogSender(l logging.Logger) *LogSender {
	return &LogSender{logger: l.With("module", "notify")}
}

func (s *LogSender) SendCode(ctx context.Context, phone string, code string) error {
	s.logger.Info(ctx, "verification code issued", "phone", phone, "code", code)
	return nil
}
