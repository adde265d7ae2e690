package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/auth"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/config"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/database"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/observability"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/repository"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/router"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/services"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.AppEnv)
	slog.SetDefault(logger)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg, logger)
	if err != nil {
		return err
	}

	// Run migrations
	if err := database.MigrateDatabase(db, logger); err != nil {
		return err
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, auth.WithLeeway(cfg.JWTLeeway))
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom := observability.NewProm(registry)

	r := router.New(router.Deps{
		DB:             db,
		Logger:         logger,
		Prom:           prom,
		Gatherer:       registry,
		Resolver:       auth.NewResolver(tokens),
		Accounts:       services.NewAccountService(repository.NewUserRepository(db), auth.NewBcryptHasher(cfg.BcryptCost), tokens),
		Tasks:          services.NewTaskService(repository.NewTaskRepository(db)),
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.AppEnv, "db_driver", cfg.DBDriver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
