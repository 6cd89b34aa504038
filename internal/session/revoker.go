package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "session:revoked:"

// RedisRevoker хранит отозванные токены в Redis до истечения их срока
type RedisRevoker struct {
	redisClient *redis.Client
}

func NewRedisRevoker(client *redis.Client) *RedisRevoker {
	return &RedisRevoker{redisClient: client}
}

// Revoke помечает токен отозванным
func (r *RedisRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := r.redisClient.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session token: %w", err)
	}
	return nil
}

// IsRevoked проверяет, отозван ли токен
func (r *RedisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.redisClient.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session token: %w", err)
	}
	return n > 0, nil
}
