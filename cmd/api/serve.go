package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/nexushub/internal/api/http"
	"github.com/spec-kit/nexushub/internal/api/http/handlers"
	"github.com/spec-kit/nexushub/internal/assist"
	"github.com/spec-kit/nexushub/internal/auth"
	"github.com/spec-kit/nexushub/internal/config"
	"github.com/spec-kit/nexushub/internal/events"
	"github.com/spec-kit/nexushub/internal/observability"
	"github.com/spec-kit/nexushub/internal/persistence"
	"github.com/spec-kit/nexushub/internal/repository"
	"github.com/spec-kit/nexushub/internal/service"
	"github.com/spec-kit/nexushub/internal/worker"
)

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	metrics := observability.NewMetrics()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.Enabled() {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	sessionStore := repository.NewMemorySessionRepository()
	if redis.Enabled() {
		sessionStore = repository.NewRedisSessionRepository(redis.Client, cfg.Redis.KeyPrefix)
	}

	loc, err := cfg.Calendar.Location()
	if err != nil {
		return err
	}

	assistClient, err := assist.New(ctx, cfg.Assist, logger, assist.WithRecorder(metrics))
	if err != nil {
		return fmt.Errorf("init assist backend: %w", err)
	}

	dispatcher := events.NewInMemoryDispatcher()
	activityService := service.NewActivityService(dispatcher, repository.NewActivityRepository(pg.PoolHandle()), logger)
	worker.StartActivityWorker(activityService)

	sessions := service.NewSessionService(
		sessionStore,
		auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		service.WorkspaceDeps{
			Assist:     assistClient,
			Dispatcher: dispatcher,
			Logger:     logger,
			Location:   loc,
			ReplyDelay: cfg.Chat.ReplyDelay(),
		},
	)
	defer sessions.Shutdown()
	stopSweeper := sessions.StartSweeper(cfg.Auth.SweepInterval())
	defer stopSweeper()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics, sessions.ActiveSessions),
		Sessions:       handlers.NewSessionHandler(sessions),
		Dashboard:      handlers.NewDashboardHandler(),
		Boards:         handlers.NewBoardsHandler(sessions),
		Chat:           handlers.NewChatHandler(sessions),
		Activity:       handlers.NewActivityHandler(activityService),
		AuthMiddleware: auth.NewAuthMiddleware(sessions.TokenManager(), sessions),
	})

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening",
			zap.String("addr", cfg.App.Addr()),
			zap.Bool("assist", assistClient.Available()),
			zap.String("timezone", loc.String()))
		listenErr <- app.Listen(cfg.App.Addr())
	}()

	if err := waitForShutdown(ctx, logger, listenErr); err != nil {
		return err
	}
	return app.ShutdownWithTimeout(10 * time.Second)
}

func waitForShutdown(ctx context.Context, logger *zap.Logger, listenErr <-chan error) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case <-ctx.Done():
		logger.Info("shutting down", zap.Error(ctx.Err()))
	case err := <-listenErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("fiber listen: %w", err)
		}
	}
	return nil
}
