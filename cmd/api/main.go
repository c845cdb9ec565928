package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/bank-crm-service/internal/api/http"
	"github.com/spec-kit/bank-crm-service/internal/api/http/handlers"
	"github.com/spec-kit/bank-crm-service/internal/auth"
	"github.com/spec-kit/bank-crm-service/internal/config"
	"github.com/spec-kit/bank-crm-service/internal/events"
	"github.com/spec-kit/bank-crm-service/internal/identity"
	"github.com/spec-kit/bank-crm-service/internal/notification"
	"github.com/spec-kit/bank-crm-service/internal/observability"
	"github.com/spec-kit/bank-crm-service/internal/persistence"
	"github.com/spec-kit/bank-crm-service/internal/repository"
	"github.com/spec-kit/bank-crm-service/internal/service"
	"github.com/spec-kit/bank-crm-service/internal/worker"
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

	provider, err := identity.NewCognitoGateway(ctx, cfg.Cognito)
	if err != nil {
		logger.Fatal("failed to init identity provider", zap.Error(err))
	}

	emailQueue, err := notification.NewSQSEmailQueue(ctx, cfg.SQS)
	if err != nil {
		logger.Fatal("failed to init email queue", zap.Error(err))
	}

	pool := pg.PoolHandle()
	staffRepo := repository.NewStaffRepository(pool)
	clientRepo := repository.NewClientRepository(pool)
	accountRepo := repository.NewAccountRepository(pool)
	transactionRepo := repository.NewTransactionRepository(pool)

	dispatcher := events.NewInMemoryDispatcher(logger)
	staffCache := auth.NewStaffCache(redis.Client)

	staffService := service.NewStaffService(service.StaffDependencies{
		StaffRepo:  staffRepo,
		Provider:   provider,
		Cache:      staffCache,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	clientService := service.NewClientService(clientRepo, dispatcher, logger)
	accountService := service.NewAccountService(accountRepo, dispatcher, logger)
	transactionService := service.NewTransactionService(transactionRepo, accountRepo)
	notificationService := service.NewNotificationService(dispatcher, emailQueue, logger)

	worker.StartNotificationWorker(notificationService)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokens, staffRepo, staffCache)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Staff:          handlers.NewStaffHandler(staffService),
		Clients:        handlers.NewClientsHandler(clientService),
		Accounts:       handlers.NewAccountsHandler(accountService),
		Transactions:   handlers.NewTransactionsHandler(transactionService),
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
