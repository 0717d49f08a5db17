package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	inventoryapp "github.com/momento/fulfillment/internal/application/inventory"
	opsapp "github.com/momento/fulfillment/internal/application/ops"
	routingapp "github.com/momento/fulfillment/internal/application/routing"
	"github.com/momento/fulfillment/internal/application/scoring"
	supplierapp "github.com/momento/fulfillment/internal/application/supplier"
	"github.com/momento/fulfillment/internal/domain/shared"
	"github.com/momento/fulfillment/internal/infrastructure/cache"
	"github.com/momento/fulfillment/internal/infrastructure/config"
	"github.com/momento/fulfillment/internal/infrastructure/logger"
	"github.com/momento/fulfillment/internal/infrastructure/persistence"
	"github.com/momento/fulfillment/internal/infrastructure/scheduler"
	"github.com/momento/fulfillment/internal/interfaces/http/handler"
	"github.com/momento/fulfillment/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting fulfillment engine",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	policyRepo := persistence.NewGormPolicyRepository(db.DB)
	mappingRepo := persistence.NewGormSkuMappingRepository(db.DB)
	offerRepo := persistence.NewGormOfferRepository(db.DB)
	poRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	candidateFinder := persistence.NewGormCandidateFinder(db.DB)
	exceptionRepo := persistence.NewGormExceptionRepository(db.DB)
	eventRepo := persistence.NewGormEventHistoryRepository(db.DB)
	metricRepo := persistence.NewGormProductMetricRepository(db.DB)

	// Idempotency store, Redis when configured, in-memory otherwise
	storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
	idempotencyStore, err := storeFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Application services
	registryService := supplierapp.NewRegistryService(supplierRepo, policyRepo, mappingRepo)
	reconcilerService := inventoryapp.NewReconcilerService(offerRepo, supplierRepo, policyRepo, log)
	opsService := opsapp.NewOpsService(exceptionRepo, eventRepo, log)
	routingService := routingapp.NewRoutingService(
		poRepo,
		candidateFinder,
		metricRepo,
		opsService,
		idempotencyStore,
		shared.IdempotencyConfig{
			Enabled: cfg.Routing.IdempotencyEnabled,
			TTL:     cfg.Routing.IdempotencyTTL,
		},
		log,
	)
	supplierScoring := scoring.NewSupplierScoringService(poRepo, supplierRepo, opsService, log)
	productScoring := scoring.NewProductScoringService(metricRepo, opsService, log)

	// Background scoring scheduler
	scoringScheduler := scheduler.NewScoringScheduler(supplierScoring, productScoring, log,
		scheduler.ScoringSchedulerConfig{
			Enabled:    cfg.Scheduler.Enabled,
			Interval:   cfg.Scheduler.ScoringInterval,
			JobTimeout: cfg.Scheduler.JobTimeout,
			RunOnStart: cfg.Scheduler.RunOnStart,
		})
	if err := scoringScheduler.Start(context.Background()); err != nil {
		log.Fatal("Failed to start scoring scheduler", zap.Error(err))
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()
		if err := scoringScheduler.Stop(stopCtx); err != nil {
			log.Error("Error stopping scoring scheduler", zap.Error(err))
		}
	}()

	// HTTP layer
	engine := router.NewEngine(cfg, log)
	r := router.NewRouter(engine)
	r.RegisterRoot(handler.NewSystemHandler(db, version, log))
	r.Register(handler.NewSupplierHandler(registryService, log)).
		Register(handler.NewInventoryHandler(reconcilerService, log)).
		Register(handler.NewRoutingHandler(routingService, log)).
		Register(handler.NewOpsHandler(opsService, log)).
		Register(handler.NewScoringHandler(productScoring, supplierScoring, scoringScheduler, log))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
