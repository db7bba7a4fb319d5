package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/butcher/internal/config"
	"github.com/mamadbah2/butcher/internal/repository/kv"
	"github.com/mamadbah2/butcher/internal/repository/mongodb"
	redisrepo "github.com/mamadbah2/butcher/internal/repository/redis"
	"github.com/mamadbah2/butcher/internal/repository/sheets"
	"github.com/mamadbah2/butcher/internal/repository/state"
	"github.com/mamadbah2/butcher/internal/scheduler"
	"github.com/mamadbah2/butcher/internal/server/handlers"
	"github.com/mamadbah2/butcher/internal/server/router"
	inventorysvc "github.com/mamadbah2/butcher/internal/service/inventory"
	"github.com/mamadbah2/butcher/internal/service/notify"
	reportingsvc "github.com/mamadbah2/butcher/internal/service/reporting"
	whatsappclient "github.com/mamadbah2/butcher/pkg/clients/whatsapp"
	"github.com/mamadbah2/butcher/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx := context.Background()

	var (
		store   kv.Store
		locker  inventorysvc.Locker
		archive mongodb.ReportArchive
	)

	switch cfg.Storage.Driver {
	case config.DriverRedis:
		redisStore, err := redisrepo.NewStore(ctx, cfg.Redis, cfg.Storage.KeyPrefix, logger.Named(baseLogger, "repo.redis"))
		if err != nil {
			baseLogger.Fatal("failed to init redis store", zap.Error(err))
		}
		defer func() {
			if err := redisStore.Close(); err != nil {
				baseLogger.Error("failed to close redis connection", zap.Error(err))
			}
		}()
		store, locker = redisStore, redisStore
	case config.DriverMongoDB:
		mongoRepo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		store, archive = mongoRepo, mongoRepo
	default:
		store = kv.NewMemory()
		baseLogger.Warn("using in-memory storage, data is lost on restart")
	}
	baseLogger.Info("storage initialized", zap.String("driver", cfg.Storage.Driver))

	ledger := state.NewLedger(store, cfg.Storage.KeyPrefix, logger.Named(baseLogger, "repo.state"))

	var (
		sheetsRepo sheets.Repository
		invOpts    []inventorysvc.Option
	)
	if cfg.Sheets.Enabled() {
		repo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheetsRepo = repo
		invOpts = append(invOpts, inventorysvc.WithExporter(reportingsvc.NewSheetsExporter(repo)))
		baseLogger.Info("google sheets export enabled")
	}

	location, err := cfg.Reporting.Location()
	if err != nil {
		baseLogger.Fatal("invalid timezone", zap.Error(err))
	}

	inventory := inventorysvc.NewService(ledger.Batches(), ledger.Orders(), ledger, locker, logger.Named(baseLogger, "svc.inventory"), invOpts...)
	reporting := reportingsvc.NewService(inventory, archive, sheetsRepo, location, logger.Named(baseLogger, "svc.reporting"))

	var notifier notify.Notifier
	if cfg.WhatsApp.Enabled() {
		notifier = notify.NewWhatsAppNotifier(whatsappclient.NewClient(cfg.WhatsApp), logger.Named(baseLogger, "svc.notify"))
		baseLogger.Info("whatsapp notifications enabled")
	} else {
		notifier = notify.NewLogNotifier(logger.Named(baseLogger, "svc.notify"))
		baseLogger.Warn("whatsapp token missing, closing reports are only logged")
	}

	sched, err := scheduler.NewScheduler(cfg.Reporting, reporting, notifier, logger.Named(baseLogger, "scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	engine, err := router.New(router.Handlers{
		Inventory: handlers.NewInventoryHandler(inventory, logger.Named(baseLogger, "handlers.inventory")),
		Sales:     handlers.NewSalesHandler(inventory, logger.Named(baseLogger, "handlers.sales")),
		Dashboard: handlers.NewDashboardHandler(reporting, sched, location, logger.Named(baseLogger, "handlers.dashboard")),
	}, logger.Named(baseLogger, "router"))
	if err != nil {
		baseLogger.Fatal("failed to init router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-sigCtx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
