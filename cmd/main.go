package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/shenikar/urban_eye/internal/config"
	v1 "github.com/shenikar/urban_eye/internal/handler/http/v1"
	"github.com/shenikar/urban_eye/internal/mapview"
	"github.com/shenikar/urban_eye/internal/repository"
	"github.com/shenikar/urban_eye/internal/service"
	"github.com/shenikar/urban_eye/internal/session"
	"github.com/shenikar/urban_eye/internal/storage"
	"github.com/shenikar/urban_eye/internal/webhook"
	"github.com/shenikar/urban_eye/pkg/logger"
	"github.com/shenikar/urban_eye/pkg/mailer"
	"github.com/shenikar/urban_eye/pkg/postgres"
	redisclient "github.com/shenikar/urban_eye/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/urban_eye/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Urban Eye API
// @version 1.0
// @description Civic issue reporting: geotagged reports, upvotes, leaderboard and map.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(cfg.MigrationsPath, migrationURL)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

// newMailer выбирает Resend при наличии ключа, иначе письма только пишутся в лог
func newMailer(cfg *config.Config, log *logrus.Logger) *mailer.Mailer {
	if cfg.ResendAPIKey == "" {
		log.Warn("RESEND_API_KEY is not set, emails will be logged only")
		return mailer.New(mailer.NewLogProvider(log), cfg.MailFrom)
	}
	return mailer.New(mailer.NewResendProvider(cfg.ResendAPIKey), cfg.MailFrom)
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel, cfg.Environment)

	// Sentry включается только при заданном DSN
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
		}); err != nil {
			log.Fatalf("Failed to init Sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
		log.AddHook(logger.NewSentryHook(sentry.CurrentHub()))
	}

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Хранилище фотографий
	bucket, err := storage.NewBucket(cfg.StorageDir, cfg.StorageBucket, cfg.PublicBaseURL)
	if err != nil {
		log.Fatalf("Failed to init storage bucket: %v", err)
	}

	// Издатель событий и воркер доставки
	eventPublisher := webhook.NewRedisEventPublisher(redisClient)
	eventWorker := webhook.NewWorker(redisClient, log, cfg, newMailer(cfg, log))
	eventWorker.Start(ctx)

	// Инициализация репозиториев
	issueRepo := repository.NewIssueRepository(dbpool, redisClient, cfg.CacheTTL)
	voteRepo := repository.NewVoteRepository(dbpool, redisClient, cfg.CacheTTL)
	userRepo := repository.NewUserRepository(dbpool)

	// Сессии
	tokens := session.NewManager(cfg.JWTSecret, cfg.SessionTTL)
	sessions := session.NewStore(log)
	revoker := session.NewRedisRevoker(redisClient)

	// Инициализация сервисов
	issueService := service.NewIssueService(issueRepo, log, eventPublisher)
	voteService := service.NewVoteService(voteRepo, issueRepo, log, eventPublisher)
	reportService := service.NewReportService(issueRepo, bucket, log, eventPublisher)
	authService := service.NewAuthService(userRepo, tokens, revoker, sessions, log)

	// После выхода кеш голосов пользователя сбрасывается
	unsubscribe := sessions.OnChange(func(event session.Event) {
		if event.Kind != session.LoggedOut {
			return
		}
		if err := voteService.ForgetViewer(ctx, event.UserID); err != nil {
			log.WithError(err).WithField("user_id", event.UserID).Warn("Failed to forget viewer votes")
		}
	})
	defer unsubscribe()

	// Одна карта на весь процесс
	renderer := mapview.NewRenderer(mapview.Options{
		Style:       cfg.MapStyle,
		AccessToken: cfg.MapboxAccessToken,
		Zoom:        mapview.DefaultZoom,
		Reuse:       mapview.ReusePolicy(cfg.MapReuse),
	})

	// Инициализация хэндлеров
	handler := v1.NewHandler(v1.Services{
		Issues:  issueService,
		Votes:   voteService,
		Reports: reportService,
		Auth:    authService,
	}, bucket, renderer, log, cfg)

	// Настройка Gin роутера
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if len(cfg.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
