package mailer

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LogProvider только пишет письма в лог. Используется, когда ключ Resend не задан.
type LogProvider struct {
	logger *logrus.Logger
}

func NewLogProvider(logger *logrus.Logger) *LogProvider {
	return &LogProvider{logger: logger}
}

func (l *LogProvider) Name() string {
	return "log"
}

func (l *LogProvider) Send(msg Message) (SendResult, error) {
	fakeID := "log-" + uuid.NewString()
	l.logger.WithFields(logrus.Fields{
		"provider":   "log",
		"from":       msg.From,
		"to":         strings.Join(msg.To, ", "),
		"subject":    msg.Subject,
		"html_len":   len(msg.HTML),
		"text_len":   len(msg.Text),
		"message_id": fakeID,
	}).Info("Email logged (not sent)")
	if msg.Text != "" {
		l.logger.WithField("message_id", fakeID).Debug(msg.Text)
	}
	return SendResult{ProviderMessageID: fakeID}, nil
}
