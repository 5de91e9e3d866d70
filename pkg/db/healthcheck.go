package db

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrHealthcheckFailed is returned when the database ping fails.
var ErrHealthcheckFailed = errors.New("db: healthcheck failed")

// Healthcheck returns a closure that pings the database, suitable for
// readiness probes.
//
// Example:
//
//	anvil.WithReadinessCheck("database", db.Healthcheck(conn))
func Healthcheck(conn *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if conn == nil {
			return ErrHealthcheckFailed
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
