package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	eventQueueKey = "issue_events"
)

// EventType - тип доменного события
type EventType string

const (
	EventIssueReported EventType = "issue.reported"
	EventIssueUpvoted  EventType = "issue.upvoted"
	EventIssueDeleted  EventType = "issue.deleted"
)

// Event - событие по заявке, уходящее во внешний вебхук
type Event struct {
	Type          EventType `json:"type"`
	IssueID       uuid.UUID `json:"issue_id"`
	UserID        uuid.UUID `json:"user_id"`
	Title         string    `json:"title,omitempty"`
	Upvotes       int       `json:"upvotes,omitempty"`
	ReporterEmail string    `json:"-"`
	ReporterName  string    `json:"-"`
	Timestamp     time.Time `json:"timestamp"`
}

// queuedEvent - событие в очереди вместе с полями, которые не уходят во вебхук
type queuedEvent struct {
	Event
	ReporterEmail string `json:"reporter_email,omitempty"`
	ReporterName  string `json:"reporter_name,omitempty"`
}

// NewEvent создает событие с текущим временем
func NewEvent(eventType EventType, issueID, userID uuid.UUID) Event {
	return Event{
		Type:      eventType,
		IssueID:   issueID,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	}
}

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

// EventPublisher - интерфейс для публикации событий
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// RedisEventPublisher кладет события в очередь Redis
type RedisEventPublisher struct {
	redisClient *redis.Client
}

func NewRedisEventPublisher(client *redis.Client) *RedisEventPublisher {
	return &RedisEventPublisher{
		redisClient: client,
	}
}

// Publish публикует событие в очередь Redis
func (p *RedisEventPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := encodeQueued(event)
	if err != nil {
		return err
	}

	// LPUSH в паре с BRPOP в воркере дает FIFO
	if err := p.redisClient.LPush(ctx, eventQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event to Redis: %w", err)
	}
	return nil
}

func encodeQueued(event Event) ([]byte, error) {
	payload, err := json.Marshal(queuedEvent{
		Event:         event,
		ReporterEmail: event.ReporterEmail,
		ReporterName:  event.ReporterName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	return payload, nil
}

func decodeQueued(payload []byte) (Event, error) {
	var q queuedEvent
	if err := json.Unmarshal(payload, &q); err != nil {
		return Event{}, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	event := q.Event
	event.ReporterEmail = q.ReporterEmail
	event.ReporterName = q.ReporterName
	return event, nil
}
