package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/urban_eye/internal/config"
	"github.com/shenikar/urban_eye/pkg/mailer"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingProvider struct {
	sent []mailer.Message
}

func (p *capturingProvider) Name() string { return "capture" }

func (p *capturingProvider) Send(msg mailer.Message) (mailer.SendResult, error) {
	p.sent = append(p.sent, msg)
	return mailer.SendResult{ProviderMessageID: "m-1"}, nil
}

func newTestWorker(t *testing.T, cfg *config.Config, provider mailer.Provider) *Worker {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	var m *mailer.Mailer
	if provider != nil {
		m = mailer.New(provider, "noreply@urban-eye.test")
	}
	w := NewWorker(nil, logger, cfg, m)
	w.sleep = func(time.Duration) {}
	return w
}

func TestWorker_DeliverSignsPayload(t *testing.T) {
	var gotBody []byte
	var gotSignature string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotSignature = r.Header.Get("X-Webhook-Signature")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	cfg := &config.Config{WebhookURL: server.URL, WebhookSecret: "s3cret", WebhookTimeout: time.Second, WebhookMaxRetries: 3}
	w := newTestWorker(t, cfg, nil)

	event := NewEvent(EventIssueUpvoted, uuid.New(), uuid.New())
	event.Upvotes = 4
	event.ReporterEmail = "private@example.com"
	require.NoError(t, w.deliver(context.Background(), event))

	assert.Equal(t, Sign(gotBody, "s3cret"), gotSignature)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &decoded))
	assert.Equal(t, "issue.upvoted", decoded["type"])
	assert.EqualValues(t, 4, decoded["upvotes"])
	assert.NotContains(t, string(gotBody), "private@example.com")
}

func TestWorker_DeliverRetriesUntilSuccess(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := &config.Config{WebhookURL: server.URL, WebhookTimeout: time.Second, WebhookMaxRetries: 3}
	w := newTestWorker(t, cfg, nil)

	require.NoError(t, w.deliver(context.Background(), NewEvent(EventIssueDeleted, uuid.New(), uuid.New())))
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestWorker_DeliverGivesUp(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := &config.Config{WebhookURL: server.URL, WebhookTimeout: time.Second, WebhookMaxRetries: 2}
	w := newTestWorker(t, cfg, nil)

	err := w.deliver(context.Background(), NewEvent(EventIssueDeleted, uuid.New(), uuid.New()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestWorker_DeliverWithoutURL(t *testing.T) {
	w := newTestWorker(t, &config.Config{}, nil)
	assert.NoError(t, w.deliver(context.Background(), NewEvent(EventIssueReported, uuid.New(), uuid.New())))
}

func TestWorker_ProcessEmailsReporter(t *testing.T) {
	provider := &capturingProvider{}
	w := newTestWorker(t, &config.Config{}, provider)

	event := NewEvent(EventIssueReported, uuid.New(), uuid.New())
	event.Title = "Pothole on MG Road"
	event.ReporterEmail = "asha@example.com"
	event.ReporterName = "Asha"
	w.Process(context.Background(), event)

	require.Len(t, provider.sent, 1)
	assert.Equal(t, []string{"asha@example.com"}, provider.sent[0].To)
	assert.Contains(t, provider.sent[0].Subject, "Pothole on MG Road")
	assert.Contains(t, provider.sent[0].Text, "Hi Asha")
}

func TestWorker_ProcessSkipsEmailForOtherEvents(t *testing.T) {
	provider := &capturingProvider{}
	w := newTestWorker(t, &config.Config{}, provider)

	event := NewEvent(EventIssueUpvoted, uuid.New(), uuid.New())
	event.ReporterEmail = "asha@example.com"
	w.Process(context.Background(), event)

	assert.Empty(t, provider.sent)
}

func TestQueuedEventRoundTripKeepsReporter(t *testing.T) {
	event := NewEvent(EventIssueReported, uuid.New(), uuid.New())
	event.ReporterEmail = "asha@example.com"
	event.ReporterName = "Asha"

	payload, err := encodeQueued(event)
	require.NoError(t, err)
	decoded, err := decodeQueued(payload)
	require.NoError(t, err)

	assert.Equal(t, event.ReporterEmail, decoded.ReporterEmail)
	assert.Equal(t, event.ReporterName, decoded.ReporterName)
	assert.Equal(t, event.IssueID, decoded.IssueID)
}
