package db

import (
	"context"

	"gorm.io/gorm"
)

// Shutdown returns a function that gracefully closes the database handle.
// Use with anvil.WithShutdownHook().
//
// Example:
//
//	app := anvil.New(
//	    anvil.WithShutdownHook(db.Shutdown(conn)),
//	)
func Shutdown(conn *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
}
