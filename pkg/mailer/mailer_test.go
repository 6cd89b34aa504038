package mailer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProvider struct {
	sent []Message
	err  error
}

func (p *recordingProvider) Name() string { return "recording" }

func (p *recordingProvider) Send(msg Message) (SendResult, error) {
	if p.err != nil {
		return SendResult{}, p.err
	}
	p.sent = append(p.sent, msg)
	return SendResult{ProviderMessageID: "id-1"}, nil
}

func TestMailer_SendUsesDefaultFrom(t *testing.T) {
	provider := &recordingProvider{}
	m := New(provider, "Urban Eye <noreply@urban-eye.test>")

	res, err := m.Send(Message{To: []string{" citizen@example.com "}, Subject: "Hi", Text: "body"})
	require.NoError(t, err)
	assert.Equal(t, "id-1", res.ProviderMessageID)

	require.Len(t, provider.sent, 1)
	assert.Equal(t, "Urban Eye <noreply@urban-eye.test>", provider.sent[0].From)
	assert.Equal(t, []string{"citizen@example.com"}, provider.sent[0].To)
}

func TestMailer_SendKeepsExplicitFrom(t *testing.T) {
	provider := &recordingProvider{}
	m := New(provider, "default@urban-eye.test")

	_, err := m.Send(Message{From: "ops@urban-eye.test", To: []string{"a@example.com"}})
	require.NoError(t, err)
	assert.Equal(t, "ops@urban-eye.test", provider.sent[0].From)
}

func TestMailer_SendWithoutRecipients(t *testing.T) {
	provider := &recordingProvider{}
	m := New(provider, "default@urban-eye.test")

	_, err := m.Send(Message{To: []string{"", "  "}})
	assert.ErrorIs(t, err, ErrNoRecipients)
	assert.Empty(t, provider.sent)
}

func TestMailer_SendProviderError(t *testing.T) {
	m := New(&recordingProvider{err: errors.New("quota exceeded")}, "default@urban-eye.test")

	_, err := m.Send(Message{To: []string{"a@example.com"}})
	assert.EqualError(t, err, "quota exceeded")
}

func TestLogProvider_Send(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	provider := NewLogProvider(logger)
	res, err := provider.Send(Message{From: "a@b.c", To: []string{"x@y.z"}, Subject: "Report received"})
	require.NoError(t, err)

	assert.Equal(t, "log", provider.Name())
	assert.Regexp(t, `^log-`, res.ProviderMessageID)
	assert.Contains(t, buf.String(), "Report received")
}

func TestResendProvider_Name(t *testing.T) {
	assert.Equal(t, "resend", NewResendProvider("fake-key").Name())
}
