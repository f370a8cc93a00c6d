package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"gihanotis/internal/config"
	"gihanotis/internal/notifier"
	"gihanotis/internal/repository"
	"gihanotis/internal/server"
	"gihanotis/internal/service"
)

func main() {
	// Load configuration
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "configs/config.yml"
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Configuration error", zap.Error(err))
	}

	// Database connection
	db, err := repository.NewPostgresDB(cfg.Database.URL, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	repository.MigrateDB(db, logger)

	// Admin auth
	authService, err := service.NewAuthService(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize auth service", zap.Error(err))
	}

	// Optional Telegram notifications
	telegram, err := notifier.NewTelegram(cfg, logger)
	if err != nil {
		logger.Warn("Failed to initialize Telegram notifier, continuing without it", zap.Error(err))
		telegram = nil
	}

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize and run the server
	srv := server.NewServer(db, cfg, logger, authService, telegram)
	srv.Run(ctx, cfg.Server.Port)

	logger.Info("Application stopped.")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
