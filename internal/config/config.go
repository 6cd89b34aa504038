package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL    string `env:"DATABASE_URL"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"file://migrations"`
	HTTPPort       string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	Environment    string `env:"APP_ENV" envDefault:"development"`

	// Postgres pool
	DBMaxConns        int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns        int           `env:"DB_MIN_CONNS" envDefault:"1"`
	DBMaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`

	// Redis Config
	RedisAddr string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string        `env:"REDIS_PASSWORD"`
	RedisDB   int           `env:"REDIS_DB" envDefault:"0"`
	RedisPool int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// Session Config
	JWTSecret    string        `env:"JWT_SECRET"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"72h"`
	CookieDomain string        `env:"COOKIE_DOMAIN"`

	// Storage Config
	StorageDir     string `env:"STORAGE_DIR" envDefault:"./data/storage"`
	StorageBucket  string `env:"STORAGE_BUCKET" envDefault:"issue-images"`
	PublicBaseURL  string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`

	// Map Config
	MapboxAccessToken string `env:"MAPBOX_ACCESS_TOKEN"`
	MapStyle          string `env:"MAP_STYLE" envDefault:"mapbox://styles/mapbox/dark-v11"`
	MapReuse          string `env:"MAP_REUSE" envDefault:"keep"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// Mailer Config
	ResendAPIKey string `env:"RESEND_API_KEY"`
	MailFrom     string `env:"MAIL_FROM" envDefault:"Urban Eye <noreply@urbaneye.local>"`

	SentryDSN   string   `env:"SENTRY_DSN"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		MigrationsPath:    getEnv("MIGRATIONS_PATH", "file://migrations"),
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		Environment:       getEnv("APP_ENV", "development"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
		DBMinConns:        getEnvAsInt("DB_MIN_CONNS", 1),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", time.Hour),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		RedisPool:         getEnvAsInt("REDIS_POOL_SIZE", 10),
		CacheTTL:          getEnvAsDuration("CACHE_TTL", 5*time.Minute),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		SessionTTL:        getEnvAsDuration("SESSION_TTL", 72*time.Hour),
		CookieDomain:      os.Getenv("COOKIE_DOMAIN"),
		StorageDir:        getEnv("STORAGE_DIR", "./data/storage"),
		StorageBucket:     getEnv("STORAGE_BUCKET", "issue-images"),
		PublicBaseURL:     strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		MaxUploadBytes:    int64(getEnvAsInt("MAX_UPLOAD_BYTES", 10<<20)),
		MapboxAccessToken: os.Getenv("MAPBOX_ACCESS_TOKEN"),
		MapStyle:          getEnv("MAP_STYLE", "mapbox://styles/mapbox/dark-v11"),
		MapReuse:          getEnv("MAP_REUSE", "keep"),
		WebhookURL:        os.Getenv("WEBHOOK_URL"),
		WebhookSecret:     os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:    getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries: getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:  getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		ResendAPIKey:      os.Getenv("RESEND_API_KEY"),
		MailFrom:          getEnv("MAIL_FROM", "Urban Eye <noreply@urbaneye.local>"),
		SentryDSN:         os.Getenv("SENTRY_DSN"),
		CORSOrigins:       getEnvAsList("CORS_ALLOWED_ORIGINS"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) must not exceed DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	if c.MapReuse != "keep" && c.MapReuse != "fresh" {
		return fmt.Errorf("MAP_REUSE must be one of keep, fresh; got %q", c.MapReuse)
	}
	return nil
}

// IsProduction сообщает, запущено ли приложение в production-окружении
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

// getEnvAsList разбирает список значений, разделённых запятыми
func getEnvAsList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	values := strings.Split(raw, ",")
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
