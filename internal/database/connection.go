package database

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/petween/backend/internal/config"
	"github.com/petween/backend/internal/models"
	"github.com/petween/backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	var logLevel gormlogger.LogLevel
	if cfg.AppEnv == "development" {
		logLevel = gormlogger.Info
	} else {
		logLevel = gormlogger.Error
	}

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverSQLite:
		dialector = sqlite.Open(sqliteDSN(cfg.DBPath))
	default:
		dialector = postgres.Open(cfg.GetDSN())
	}

	db, err := open(dialector, logLevel)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if cfg.DBDriver == config.DriverSQLite {
		// SQLite allows a single writer; one connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetConnMaxLifetime(time.Hour)
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	}

	logger.Info("Database connected", "driver", cfg.DBDriver)
	return db, nil
}

// OpenSQLite opens a SQLite file database with foreign keys enforced.
// Used for local development and tests.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := open(sqlite.Open(sqliteDSN(path)), gormlogger.Silent)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func open(dialector gorm.Dialector, logLevel gormlogger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func sqliteDSN(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func AutoMigrate(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Pet{},
		&models.UserPet{},
		&models.Friendship{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// Ping checks that the database answers within the context deadline.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
