package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/tastytalk/admin-backend/internal/router"
	"github.com/tastytalk/admin-backend/pkg/config"
	"github.com/tastytalk/admin-backend/pkg/firebase"
	"github.com/tastytalk/admin-backend/pkg/logger"
	"github.com/tastytalk/admin-backend/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{ServiceName: "tastytalk-admin"}).Error(context.Background(), "loading config", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		ServiceName: "tastytalk-admin",
		Level:       logger.ParseLevel(cfg.LogLevel),
		Console:     cfg.LogFormat == "console",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Firebase
	app, err := firebase.InitFirebase(ctx, cfg.Firebase)
	if err != nil {
		log.Error(ctx, "initializing firebase", err)
		os.Exit(1)
	}
	defer app.Close()

	uploader, err := router.NewUploader(ctx, cfg.Media, app, cfg.Firebase.StorageBucket)
	if err != nil {
		log.Error(ctx, "initializing media backend", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	adminMetrics := metrics.NewAdmin(registry)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Setup global middleware
	router.SetupMiddleware(e, log)

	// Setup routes and dependencies
	err = router.SetupRoutes(e, router.Dependencies{
		Config:   cfg,
		Logger:   log,
		Repos:    router.NewFirebaseRepositories(app, cfg.NotificationBatchSize, adminMetrics),
		Uploader: uploader,
		Metrics:  adminMetrics,
		Registry: registry,
	})
	if err != nil {
		log.Error(ctx, "configuring routes", err)
		os.Exit(1)
	}

	// Start server
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "server stopped", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "shutting down server", err)
	}
}
