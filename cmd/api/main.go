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

	"github.com/joho/godotenv"
	"github.com/userauth/userauth-go/internal/config"
	"github.com/userauth/userauth-go/internal/logging"
	"github.com/userauth/userauth-go/internal/repository"
	"github.com/userauth/userauth-go/internal/server"
	"github.com/userauth/userauth-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Env, cfg.LogLevel, os.Stdout)
	slog.SetDefault(logger)

	dialect, err := repository.ParseDialect(cfg.DBDriver)
	if err != nil {
		slog.Error("invalid database driver", "error", err)
		os.Exit(1)
	}

	db, err := repository.NewDB(dialect, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database open failed", "driver", dialect, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	err = repository.Migrate(migrateCtx, db, dialect)
	cancelMigrate()
	if err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db, dialect)
	userService := service.NewUserService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	srv := server.New(cfg, userService, logger)

	go func() {
		slog.Info("server starting", "addr", srv.Addr(), "env", cfg.Env, "driver", dialect)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
