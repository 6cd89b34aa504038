package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/urban_eye/internal/config"
)

// PoolConfig разбирает DATABASE_URL и применяет размеры пула из конфигурации
func PoolConfig(appCfg *config.Config) (*pgxpool.Config, error) {
	cfgPool, err := pgxpool.ParseConfig(appCfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка при разборе конфигурации postgres: %w", err)
	}
	if appCfg.DBMaxConns > 0 {
		cfgPool.MaxConns = int32(appCfg.DBMaxConns)
	}
	if appCfg.DBMinConns > 0 {
		cfgPool.MinConns = int32(appCfg.DBMinConns)
	}
	if appCfg.DBMaxConnLifetime > 0 {
		cfgPool.MaxConnLifetime = appCfg.DBMaxConnLifetime
	}
	return cfgPool, nil
}

// NewPostgresDB создает пул соединений и проверяет доступность базы
func NewPostgresDB(ctx context.Context, appCfg *config.Config) (*pgxpool.Pool, error) {
	cfgPool, err := PoolConfig(appCfg)
	if err != nil {
		return nil, err
	}

	dbpool, err := pgxpool.NewWithConfig(ctx, cfgPool)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать пул соединений: %w", err)
	}

	if err := dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("не удалось выполнить ping к postgres: %w", err)
	}

	return dbpool, nil
}
