package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/streaming-auth/internal/api/http"
	"github.com/spec-kit/streaming-auth/internal/api/http/handlers"
	"github.com/spec-kit/streaming-auth/internal/auth"
	"github.com/spec-kit/streaming-auth/internal/config"
	"github.com/spec-kit/streaming-auth/internal/events"
	"github.com/spec-kit/streaming-auth/internal/observability"
	"github.com/spec-kit/streaming-auth/internal/persistence"
	"github.com/spec-kit/streaming-auth/internal/repository"
	"github.com/spec-kit/streaming-auth/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var revocations auth.RevocationStore
	switch cfg.Auth.RevocationBackend {
	case "redis":
		revocations = persistence.NewRedisRevocationStore(redis)
		logger.Info("using redis revocation store")
	default:
		store := auth.NewMemoryRevocationStore()
		store.StartSweeper(ctx, time.Duration(cfg.Auth.RevocationSweepSec)*time.Second, logger)
		revocations = store
		logger.Info("using in-memory revocation store")
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	events.RegisterAuditLog(dispatcher, logger)

	userRepo := repository.NewUserRepository(pg.PoolHandle())
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:    userRepo,
		Revocations: revocations,
		Dispatcher:  dispatcher,
		Metrics:     metrics,
	})
	userService := service.NewUserService(userRepo)

	transport := auth.NewTransport(cfg.Auth.Carrier, cfg.Auth.TokenTTL())
	authMiddleware := auth.NewAuthMiddleware(authService, transport)
	oauthClient := auth.NewOAuthClient(cfg.OAuth)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, userService, transport),
		Users:          handlers.NewUsersHandler(userService),
		OAuth:          handlers.NewOAuthHandler(authService, oauthClient, cfg.OAuth.SuccessRedirects, logger),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
