package db

import (
	"context"
	"errors"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens a database handle with retry logic for reliable startup.
// Each attempt waits progressively longer so simultaneously restarting
// services don't hammer a recovering database.
func Connect(ctx context.Context, cfg Config) (*gorm.DB, error) {
	dialector, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	attempts := max(cfg.RetryAttempts, 1)
	for i := range attempts {
		db, err := gorm.Open(dialector, &gorm.Config{})
		if err == nil {
			if err = configurePool(db, cfg); err == nil {
				return db, nil
			}
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrFailedToOpenDBConnection, ctx.Err())
		case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
		}
	}

	return nil, ErrFailedToOpenDBConnection
}

func dialector(cfg Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "sqlite", "":
		// WAL mode and a busy timeout keep concurrent request handling
		// from tripping over SQLite's single-writer locking.
		return sqlite.Open(cfg.DSN + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"), nil
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, errors.Join(ErrUnsupportedDriver, errors.New(cfg.Driver))
	}
}

func configurePool(db *gorm.DB, cfg Config) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxIdleTime(cfg.MaxConnIdleTime)
	sqlDB.SetConnMaxLifetime(cfg.MaxConnLifetime)
	return sqlDB.Ping()
}
