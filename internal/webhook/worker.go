package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/urban_eye/internal/config"
	"github.com/shenikar/urban_eye/pkg/mailer"
	"github.com/sirupsen/logrus"
)

// Worker разбирает очередь событий: отправляет подписанные вебхуки и письма авторам заявок
type Worker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	cfg         *config.Config
	httpClient  *http.Client
	mailer      *mailer.Mailer
	sleep       func(time.Duration)
}

func NewWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config, m *mailer.Mailer) *Worker {
	return &Worker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		httpClient: &http.Client{
			Timeout: cfg.WebhookTimeout,
		},
		mailer: m,
		sleep:  time.Sleep,
	}
}

// Start запускает горутину обработки очереди. Горутина завершается при отмене ctx.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Starting event worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping event worker.")
				return
			default:
				result, err := w.redisClient.BRPop(ctx, 0, eventQueueKey).Result()
				if err != nil {
					if errors.Is(err, context.Canceled) {
						continue
					}
					w.logger.WithError(err).Error("Failed to pop event from Redis")
					w.sleep(w.cfg.WebhookTimeout)
					continue
				}

				// result[0] - ключ, result[1] - значение
				event, err := decodeQueued([]byte(result[1]))
				if err != nil {
					w.logger.WithError(err).Error("Dropping malformed event")
					continue
				}
				w.Process(ctx, event)
			}
		}
	}()
}

// Process обрабатывает одно событие
func (w *Worker) Process(ctx context.Context, event Event) {
	log := w.logger.WithFields(logrus.Fields{
		"component": "worker",
		"event":     event.Type,
		"issue_id":  event.IssueID,
	})

	if event.Type == EventIssueReported {
		w.notifyReporter(log, event)
	}

	if err := w.deliver(ctx, event); err != nil {
		log.WithError(err).Error("Webhook delivery failed")
	}
}

func (w *Worker) deliver(ctx context.Context, event Event) error {
	if w.cfg.WebhookURL == "" {
		w.logger.Debug("Webhook URL is not configured. Skipping webhook delivery.")
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	delay := w.cfg.WebhookBaseDelay
	maxRetries := max(w.cfg.WebhookMaxRetries, 1)

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if i > 0 {
			w.sleep(delay)
			delay *= 2
		}

		lastErr = w.post(ctx, payload)
		if lastErr == nil {
			w.logger.WithField("event", event.Type).Info("Webhook delivered successfully.")
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		w.logger.WithError(lastErr).Warnf("Webhook attempt failed. Retries left: %d", maxRetries-1-i)
	}
	return fmt.Errorf("webhook not delivered after %d attempts: %w", maxRetries, lastErr)
}

func (w *Worker) post(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if w.cfg.WebhookSecret != "" {
		req.Header.Set("X-Webhook-Signature", Sign(payload, w.cfg.WebhookSecret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected webhook status %d", resp.StatusCode)
	}
	return nil
}

func (w *Worker) notifyReporter(log *logrus.Entry, event Event) {
	if w.mailer == nil || event.ReporterEmail == "" {
		return
	}

	name := event.ReporterName
	if name == "" {
		name = "there"
	}
	text := fmt.Sprintf("Hi %s,\n\nThanks for reporting %q. It is now on the community map where neighbours can upvote it.\n\nUrban Eye", name, event.Title)

	res, err := w.mailer.Send(mailer.Message{
		To:      []string{event.ReporterEmail},
		Subject: "We received your report: " + event.Title,
		Text:    text,
	})
	if err != nil {
		log.WithError(err).Warn("Failed to send report confirmation email")
		sentry.CaptureException(err)
		return
	}
	log.WithField("message_id", res.ProviderMessageID).Info("Report confirmation email sent")
}

// Sign считает HMAC-SHA256 подпись тела вебхука
func Sign(payload []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}
