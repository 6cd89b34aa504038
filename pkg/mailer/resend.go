package mailer

import (
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendProvider отправляет письма через Resend API
type ResendProvider struct {
	client *resend.Client
}

func NewResendProvider(apiKey string) *ResendProvider {
	return &ResendProvider{
		client: resend.NewClient(apiKey),
	}
}

func (r *ResendProvider) Name() string {
	return "resend"
}

func (r *ResendProvider) Send(msg Message) (SendResult, error) {
	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	if msg.Text != "" {
		params.Text = msg.Text
	}

	sent, err := r.client.Emails.Send(params)
	if err != nil {
		return SendResult{}, fmt.Errorf("resend send failed: %w", err)
	}
	return SendResult{ProviderMessageID: sent.Id}, nil
}
