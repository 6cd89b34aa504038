package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("debug", "production", &buf)

	log.WithField("issue_id", "42").Debug("Issue cached")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Issue cached", line["msg"])
	assert.Equal(t, "42", line["issue_id"])
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	log := NewWithOutput("loud", "development", &bytes.Buffer{})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}

func TestSentryHook(t *testing.T) {
	var (
		mu     sync.Mutex
		events []*sentry.Event
	)
	// Пустой DSN: события перехватываются до отправки
	client, err := sentry.NewClient(sentry.ClientOptions{
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, event)
			return nil
		},
	})
	require.NoError(t, err)
	hub := sentry.NewHub(client, sentry.NewScope())

	log := NewWithOutput("info", "production", &bytes.Buffer{})
	log.AddHook(NewSentryHook(hub))

	log.Info("Not reported")
	log.WithError(errors.New("upload failed")).WithField("step", "upload").Error("Report step failed")

	require.Len(t, events, 1)
	event := events[0]
	assert.Equal(t, sentry.LevelError, event.Level)
	require.NotEmpty(t, event.Exception)
	assert.Equal(t, "upload failed", event.Exception[0].Value)
	assert.Equal(t, "upload", event.Extra["step"])
}
