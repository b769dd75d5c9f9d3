package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/petween/backend/internal/config"
	"github.com/petween/backend/internal/database"
	"github.com/petween/backend/internal/seed"
	"github.com/petween/backend/pkg/logger"
)

func main() {
	file := flag.String("file", "", "spreadsheet with Users and Pets sheets (default: built-in data)")
	seedValue := flag.Int64("seed", 0, "random seed (default: current time)")
	force := flag.Bool("force", false, "seed even if users already exist")
	template := flag.String("template", "", "write the built-in data to this spreadsheet and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("APP_ENV"))
	defer logger.Sync()

	if *template != "" {
		if err := seed.WriteWorkbook(*template, seed.DefaultData()); err != nil {
			logger.Fatal("Failed to write template", err)
		}
		logger.Info("Template written", "path", *template)
		return
	}

	data := seed.DefaultData()
	if *file != "" {
		var err error
		if data, err = seed.LoadWorkbook(*file); err != nil {
			logger.Fatal("Failed to load seed file", err)
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	if *seedValue == 0 {
		*seedValue = time.Now().UnixNano()
	}
	logger.Info("Seeding database", "seed", *seedValue, "users", len(data.Users), "pets", len(data.Pets))

	ctx := context.Background()
	if _, err := seed.New(db, rand.New(rand.NewSource(*seedValue))).Run(ctx, data, *force); err != nil {
		logger.Fatal("Seeding failed", err)
	}
}
