package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shenikar/urban_eye/internal/models"
	"github.com/sirupsen/logrus"
)

// EventKind - тип изменения сессии
type EventKind string

const (
	LoggedIn  EventKind = "logged_in"
	LoggedOut EventKind = "logged_out"
)

// Event - изменение сессии пользователя
type Event struct {
	Kind   EventKind
	UserID uuid.UUID
}

// Listener получает изменения сессий
type Listener func(Event)

// Store рассылает изменения сессий подписчикам
type Store struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[int]Listener
	logger    *logrus.Logger
}

func NewStore(logger *logrus.Logger) *Store {
	return &Store{
		listeners: make(map[int]Listener),
		logger:    logger,
	}
}

// OnChange подписывает слушателя и возвращает функцию отписки
func (s *Store) OnChange(listener Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Notify вызывает всех слушателей. Паника слушателя не доходит до вызывающего.
func (s *Store) Notify(event Event) {
	s.mu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.RUnlock()

	for _, l := range listeners {
		s.safeCall(l, event)
	}
}

func (s *Store) safeCall(l Listener, event Event) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.WithFields(logrus.Fields{
				"component": "session",
				"event":     event.Kind,
				"user_id":   event.UserID,
			}).Errorf("Session listener panicked: %v", r)
		}
	}()
	l(event)
}

type contextKey struct{}

// WithUser кладёт пользователя текущей сессии в контекст
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// FromContext возвращает пользователя текущей сессии или nil
func FromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(contextKey{}).(*models.User)
	return user
}
