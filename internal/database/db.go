package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/justsurfingit/chamba-match/internal/config"
	"github.com/justsurfingit/chamba-match/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the configured database, runs migrations and seeds the
// demo data into empty tables.
func Connect(driver, dsn string, log *slog.Logger) (*gorm.DB, error) {
	if log == nil {
		log = slog.Default()
	}

	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	gormCfg := &gorm.Config{
		Logger: logger.NewSlogLogger(log, logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			IgnoreRecordNotFoundError: true,
			LogLevel:                  logger.Warn,
		}),
	}

	var db *gorm.DB
	err := retry(log, 5, time.Second, func() error {
		var err error
		db, err = gorm.Open(dialector, gormCfg)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	log.Info("database connection established", slog.String("driver", driver))

	if err := Migrate(db); err != nil {
		return nil, err
	}
	if err := Seed(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.SavedJob{},
		&models.ScraperSource{},
		&models.SystemLog{},
		&models.Notification{},
		&models.NotificationRead{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// retry executes a function with exponential backoff.
func retry(log *slog.Logger, attempts int, sleep time.Duration, f func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		log.Warn("database not ready, retrying",
			slog.Any("error", err),
			slog.Duration("backoff", sleep))
		time.Sleep(sleep)
		sleep *= 2
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}
