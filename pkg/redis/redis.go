package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/urban_eye/internal/config"
)

const defaultPoolSize = 10

// Options собирает параметры клиента из конфигурации
func Options(cfg *config.Config) *redis.Options {
	poolSize := cfg.RedisPool
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	return &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
		PoolSize: poolSize,
	}
}

// NewRedisClient создает клиент Redis и проверяет соединение
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(Options(cfg))

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.RedisAddr, err)
	}

	return rdb, nil
}
