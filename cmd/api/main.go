package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hedamo/hedamo-backend/config"
	"github.com/hedamo/hedamo-backend/internal/bootstrap"
	"github.com/hedamo/hedamo-backend/internal/logging"
	"github.com/hedamo/hedamo-backend/internal/product_analysis/upstream"
	"github.com/hedamo/hedamo-backend/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg := logging.Setup(cfg.App.Environment, cfg.App.LogLevel)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	reports, db, err := bootstrap.OpenReportStore(ctx, cfg.Database, lg)
	if err != nil {
		lg.Error("failed to open report store", logging.Err(err))
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		lg.Error("failed to connect to redis", logging.Err(err))
		os.Exit(1)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	limiter, memLimiter := bootstrap.NewLimiter(cfg.RateLimit, rdb, lg)

	ai := upstream.NewClient(cfg.AIService.URL, upstream.Options{
		Timeout: cfg.AIService.Timeout,
		RPS:     cfg.AIService.RPS,
		Burst:   cfg.AIService.Burst,
	})

	deps := bootstrap.RouterDeps{
		ServiceName:     cfg.App.ServiceName,
		Version:         cfg.App.Version,
		TrustedProxies:  cfg.Server.TrustedProxies,
		CORS:            cfg.CORS,
		MaxBodyBytes:    cfg.Body.MaxBytes,
		ReportListLimit: cfg.Reports.ListLimit,
		Logger:          lg,
		Limiter:         limiter,
		AI:              ai,
		Reports:         reports,
		Redis:           rdb,
	}
	if db != nil {
		deps.DB = db
	}
	r := bootstrap.BuildRouter(deps)

	var sweeper scheduler.Sweeper
	if memLimiter != nil {
		sweeper = memLimiter
	}
	sched := scheduler.NewScheduler(sweeper, reports, cfg.Reports.Retention, lg)
	if err := sched.Start(); err != nil {
		lg.Error("failed to start scheduler", logging.Err(err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		// upstream calls may take the whole AI service timeout
		WriteTimeout: cfg.AIService.Timeout + 15*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		lg.Info("server listening",
			slog.String("addr", srv.Addr),
			slog.String("env", cfg.App.Environment),
			slog.String("ai_service", cfg.AIService.URL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("server failed", logging.Err(err))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	lg.Info("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("graceful shutdown failed", logging.Err(err))
	}
	sched.Stop(shutdownCtx)
	lg.Info("server stopped")
}
