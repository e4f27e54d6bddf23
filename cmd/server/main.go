// Package main is the entry point for the jobmanager API server.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobmanager/internal/auth"
	"jobmanager/internal/config"
	"jobmanager/internal/logger"
	"jobmanager/internal/observability"
	"jobmanager/internal/server"
	"jobmanager/internal/service"
	"jobmanager/internal/store/postgres"
)

func main() {
	migrateFlag := flag.Bool("migrate", false, "Run database migrations before starting")
	configPath := flag.String("config", "", "Path to config file (default: jobmanager.yaml in current directory)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	slogger := logger.New()

	ctx := context.Background()
	pg, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pg.Close()

	if *migrateFlag {
		slogger.Info("running database migrations")
		if err := postgres.Migrate(pg.DB()); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		slogger.Info("migrations completed")
	}

	// The admin account and user must exist before the first login.
	bootstrap := service.AdminBootstrap{
		Email:       cfg.AdminEmail,
		Password:    cfg.AdminPassword,
		AccountName: cfg.AdminAccount,
		BcryptCost:  cfg.BcryptCost,
	}
	if err := service.Bootstrap(ctx, pg, pg, bootstrap, slogger); err != nil {
		log.Fatalf("Failed to bootstrap admin: %v", err)
	}

	// Tracing
	shutdownTracer, err := observability.InitTracer(ctx, "jobmanager", cfg.OTELEndpoint)
	if err != nil {
		log.Fatalf("Failed to init tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			slogger.Error("failed to shutdown tracer", "error", err)
		}
	}()

	// Metrics
	metricsHandler, shutdownMetrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to init metrics: %v", err)
	}
	defer func() {
		if err := shutdownMetrics(context.Background()); err != nil {
			slogger.Error("failed to shutdown metrics", "error", err)
		}
	}()

	if err := observability.RegisterJobGauges(pg); err != nil {
		slogger.Error("failed to register job gauges", "error", err)
	}

	tokens, err := auth.NewTokenIssuer(cfg.SecretKey, cfg.Algorithm, cfg.AccessTokenExpire)
	if err != nil {
		log.Fatalf("Failed to create token issuer: %v", err)
	}

	stores := server.Stores{Accounts: pg, Users: pg, Jobs: pg, Pinger: pg}
	srv := server.New(cfg, stores, tokens, metricsHandler, slogger)

	go func() {
		slogger.Info("jobmanager server starting", "port", cfg.HTTPPort)
		if err := srv.Run(ctx); err != nil {
			slogger.Error("server stopped", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slogger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	slogger.Info("server exited properly")
}
