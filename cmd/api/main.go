package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-connection/internal/api/http"
	"github.com/spec-kit/ticket-connection/internal/api/http/handlers"
	"github.com/spec-kit/ticket-connection/internal/auth"
	"github.com/spec-kit/ticket-connection/internal/config"
	"github.com/spec-kit/ticket-connection/internal/events"
	"github.com/spec-kit/ticket-connection/internal/observability"
	"github.com/spec-kit/ticket-connection/internal/persistence"
	"github.com/spec-kit/ticket-connection/internal/repository"
	"github.com/spec-kit/ticket-connection/internal/service"
	"github.com/spec-kit/ticket-connection/internal/worker"
	"github.com/spec-kit/ticket-connection/pkg/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
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

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	fetcher := service.NewConnectionFetcher(service.ConnectionDependencies{
		HouseRepo:         repository.NewHouseRepository(pool),
		UserRepo:          userRepo,
		ChannelRepo:       repository.NewChannelRepository(pool),
		ContactRepo:       repository.NewContactRepository(pool),
		AccountRepo:       repository.NewAccountRepository(pool),
		ITServiceRepo:     repository.NewITServiceRepository(pool),
		ServiceTypeRepo:   repository.NewITServiceServiceTypeRepository(pool),
		OperationTypeRepo: repository.NewOperationTypeRepository(pool),
		WorkTypeRepo:      repository.NewWorkTypeRepository(pool),
		ProviderRepo:      repository.NewProviderRepository(pool),
		ReasonRepo:        repository.NewReasonRepository(pool),
		Dispatcher:        dispatcher,
		Logger:            logger,
	})

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokens, userRepo)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Checker{
			"postgres": pg,
			"redis":    redis,
		}),
		Metrics:        handlers.NewMetricsHandler(metrics),
		Connections:    handlers.NewConnectionHandler(fetcher, validation.New()),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("fiber shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
