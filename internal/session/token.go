package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims - содержимое сессионного токена
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Manager выпускает и проверяет HS256 токены сессий
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL возвращает срок жизни токена
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue выпускает токен для пользователя
func (m *Manager) Issue(userID uuid.UUID) (string, *Claims, error) {
	now := m.now()
	claims := &Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, claims, nil
}

// Parse проверяет подпись и срок действия токена
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid session token")
	}
	if claims.UserID == "" || claims.ID == "" || claims.ExpiresAt == nil {
		return nil, errors.New("invalid session token claims")
	}
	return claims, nil
}
