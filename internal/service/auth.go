package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/urban_eye/internal/models"
	"github.com/shenikar/urban_eye/internal/session"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	users   UserRepository
	tokens  *session.Manager
	revoker TokenRevoker
	store   *session.Store
	logger  *logrus.Logger
}

func NewAuthService(users UserRepository, tokens *session.Manager, revoker TokenRevoker, store *session.Store, logger *logrus.Logger) AuthService {
	return &authService{
		users:   users,
		tokens:  tokens,
		revoker: revoker,
		store:   store,
		logger:  logger,
	}
}

// Register создаёт пользователя с bcrypt-хешем пароля
func (s *authService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	log := s.logger.WithFields(logrus.Fields{
		"service": "auth",
		"method":  "Register",
		"email":   email,
	})
	log.Info("Registering user")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Error("Failed to hash password")
		return nil, fmt.Errorf("service: could not hash password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		log.WithError(err).Warn("Failed to create user in repository")
		return nil, fmt.Errorf("service: could not register user: %w", err)
	}

	log.WithField("user_id", user.ID).Info("User registered successfully")
	return user, nil
}

// Login проверяет пароль, выдаёт токен и оповещает подписчиков сессии
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	log := s.logger.WithFields(logrus.Fields{
		"service": "auth",
		"method":  "Login",
		"email":   email,
	})

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Warn("Login attempt for unknown email")
			return nil, "", ErrInvalidCredentials
		}
		log.WithError(err).Error("Failed to load user")
		return nil, "", fmt.Errorf("service: could not load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn("Login attempt with wrong password")
		return nil, "", ErrInvalidCredentials
	}

	token, _, err := s.tokens.Issue(user.ID)
	if err != nil {
		log.WithError(err).Error("Failed to issue session token")
		return nil, "", fmt.Errorf("service: could not issue token: %w", err)
	}

	s.store.Notify(session.Event{Kind: session.LoggedIn, UserID: user.ID})
	log.WithField("user_id", user.ID).Info("User logged in")
	return user, token, nil
}

// Logout отзывает токен до истечения его срока
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		// Невалидный токен уже не даёт доступа
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl > 0 {
		if err := s.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
			return fmt.Errorf("service: could not revoke session: %w", err)
		}
	}

	userID, err := uuid.Parse(claims.UserID)
	if err == nil {
		s.store.Notify(session.Event{Kind: session.LoggedOut, UserID: userID})
	}
	s.logger.WithFields(logrus.Fields{
		"service": "auth",
		"method":  "Logout",
		"user_id": claims.UserID,
	}).Info("User logged out")
	return nil
}

// Authenticate разбирает токен и загружает пользователя сессии
func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("service: could not check session: %w", err)
	}
	if revoked {
		return nil, ErrSessionExpired
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed user id", ErrSessionExpired)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("service: could not load session user: %w", err)
	}
	return user, nil
}
