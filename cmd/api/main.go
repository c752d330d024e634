package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/tedytech/backoffice-service/internal/api/http"
	"github.com/tedytech/backoffice-service/internal/api/http/handlers"
	"github.com/tedytech/backoffice-service/internal/auth"
	"github.com/tedytech/backoffice-service/internal/config"
	"github.com/tedytech/backoffice-service/internal/events"
	"github.com/tedytech/backoffice-service/internal/observability"
	"github.com/tedytech/backoffice-service/internal/persistence"
	"github.com/tedytech/backoffice-service/internal/repository"
	"github.com/tedytech/backoffice-service/internal/service"
	"github.com/tedytech/backoffice-service/internal/timewindow"
	"github.com/tedytech/backoffice-service/internal/worker"
)

func main() {
	hashCode := flag.String("hash-access-code", "", "print the bcrypt hash for an access code and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if *hashCode != "" {
		hashed, err := auth.HashAccessCode(*hashCode, cfg.Auth.BcryptCost)
		if err != nil {
			log.Fatalf("failed to hash access code: %v", err)
		}
		fmt.Println(hashed)
		return
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

	pool := pg.PoolHandle()
	threadRepo := repository.NewThreadRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	exchangeRepo := repository.NewExchangeRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	demandRepo := repository.NewDemandEventRepository(pool)

	windows := timewindow.NewResolver(cfg.Business.UTCOffsetHours)
	cache := service.NewSnapshotCache(redis, cfg.Business.MetricsCacheTTL(), logger)
	dispatcher := events.NewInMemoryDispatcher()

	metricsService := service.NewMetricsService(service.MetricsDependencies{
		ThreadRepo:   threadRepo,
		ExchangeRepo: exchangeRepo,
		ProductRepo:  productRepo,
		Estimator:    service.NewReplyTimeEstimator(messageRepo),
		Windows:      windows,
		Cache:        cache,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	demandService := service.NewDemandService(service.DemandDependencies{
		DemandRepo:   demandRepo,
		ExchangeRepo: exchangeRepo,
		ProductRepo:  productRepo,
		ThreadRepo:   threadRepo,
		Windows:      windows,
		Cache:        cache,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	accessGate := auth.NewAccessGate(cfg.Auth)
	authMiddleware := auth.NewAuthMiddleware(accessGate.TokenManager())

	appMetrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, appMetrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(accessGate),
		Metrics:        handlers.NewMetricsHandler(metricsService),
		Demand:         handlers.NewDemandHandler(demandService),
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
