// File: slotbook/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotbook/config"
	slotcron "slotbook/cron"
	"slotbook/database"
	"slotbook/database/repository"
	"slotbook/handlers"
	"slotbook/middleware"
	"slotbook/routes"
	"slotbook/services/event"
	"slotbook/services/status"
	"slotbook/services/timeslot"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	startedAt := time.Now()

	if err := config.LoadConfig(); err != nil {
		log.Fatalf("main: %v", err)
	}
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// repository.
	var client *mongo.Client
	if cfg.Database.Driver == "mongo" {
		var err error
		if client, err = database.InitDB(cfg.Database.URL, logger); err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
	} else {
		logger.Warn("main: using in-memory event store, data is lost on restart")
	}
	repo, err := repository.NewEventRepository(cfg.Database.Driver, client, cfg.Database.Name, cfg.Database.Collection)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	if err := repo.EnsureIndexes(context.Background()); err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	// free slot cache.
	var (
		slotCache   timeslot.SlotCache
		invalidator event.CacheInvalidator
	)
	if cfg.Redis.Enabled {
		if err := utils.InitCache(); err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		cache := utils.NewFreeSlotCache(utils.GetCacheClient(), time.Duration(cfg.Redis.TTL)*time.Second)
		slotCache = cache
		invalidator = cache
		logger.Info("main: free slot cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	// metrics.
	var metrics *utils.Metrics
	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics = utils.NewMetrics(registry)
	}

	// services.
	loc := cfg.Event.Location()
	eventCfg := timeslot.EventConfig{
		StartHour: cfg.Event.StartHour,
		EndHour:   cfg.Event.EndHour,
		Duration:  cfg.Event.Duration,
	}
	timeslotService, err := timeslot.NewDefaultTimeSlotService(repo, eventCfg, loc, slotCache, metrics, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	eventService, err := event.NewDefaultEventService(repo, loc, invalidator, metrics, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	statusService := status.NewDefaultStatusService(startedAt)

	// handlers.
	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewEventHandler(eventService),
		handlers.NewTimeSlotHandler(timeslotService),
		handlers.NewStatusHandler(statusService),
	)
	if registry != nil {
		handlerBundle.MetricsHandler = gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		handlerBundle.MetricsPath = cfg.Metrics.Path
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	if metrics != nil {
		router.Use(middleware.MetricsMiddleware(metrics))
	}
	router.Use(utils.ErrorHandler(utils.NewErrorConfig(cfg.Errors), logger))
	router.Use(middleware.RateLimitMiddleware(cfg.App.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle)

	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	utils.StartHealthMonitor(bgCtx, 60*time.Second, repo, utils.GetCacheClient())

	var worker *slotcron.PregenWorker
	if cfg.Autogen.Enabled {
		worker = slotcron.NewPregenWorker(timeslotService, cfg.Autogen.DaysAhead, loc, logger)
		if err := worker.Start(cfg.Autogen.Schedule); err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
	}

	// Start the HTTP server.
	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.App.Port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	stopBackground()
	if worker != nil {
		worker.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.App.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Sugar().Errorf("main: failed to disconnect MongoDB: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
