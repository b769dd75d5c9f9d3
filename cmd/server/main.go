package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/petween/backend/internal/config"
	"github.com/petween/backend/internal/database"
	"github.com/petween/backend/internal/handlers"
	"github.com/petween/backend/internal/server"
	"github.com/petween/backend/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("APP_ENV"))
	defer logger.Sync()

	logger.Info("Starting Petween API...")

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}

	if cfg.AppEnv == "production" {
		if err := cfg.ValidateProductionSecurity(); err != nil {
			logger.Fatal("Production security validation failed", err)
		}
		logger.Info("Production security validation passed")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, handlers.NewFromDB(cfg, db))
	defer srv.Close()
	logger.Info("API started", "env", cfg.AppEnv, "addr", srv.Addr())

	if err := srv.Run(ctx); err != nil {
		logger.Error("HTTP server stopped with error", "error", err)
		return
	}
	logger.Info("Server stopped")
}
