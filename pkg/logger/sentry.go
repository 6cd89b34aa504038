package logger

import (
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// SentryHook отправляет записи уровня error и выше в Sentry
type SentryHook struct {
	hub *sentry.Hub
}

func NewSentryHook(hub *sentry.Hub) *SentryHook {
	return &SentryHook{hub: hub}
}

func (h *SentryHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel}
}

func (h *SentryHook) Fire(entry *logrus.Entry) error {
	err, _ := entry.Data[logrus.ErrorKey].(error)
	if err == nil {
		err = errors.New(entry.Message)
	}

	h.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentryLevel(entry.Level))
		for key, value := range entry.Data {
			if key == logrus.ErrorKey {
				continue
			}
			scope.SetExtra(key, value)
		}
		scope.SetExtra("message", entry.Message)
		h.hub.CaptureException(err)
	})
	return nil
}

func sentryLevel(level logrus.Level) sentry.Level {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel:
		return sentry.LevelFatal
	default:
		return sentry.LevelError
	}
}
