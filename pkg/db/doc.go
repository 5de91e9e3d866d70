// Package db provides database utilities for applications built on GORM.
//
// This package wraps [gorm.io/gorm] to provide connection handling, schema
// migration, and first-run seeding with sensible defaults for production
// workloads.
//
// # Features
//
//   - SQLite and PostgreSQL backends behind a single Config
//   - Automatic retry logic with progressive backoff during startup
//   - Schema migration for the session table and every registered entity
//   - Default admin account seeding for fresh installations
//   - Environment-based configuration for deployment convenience
//
// # Configuration
//
// All settings are loaded from environment variables:
//
//	DATABASE_DRIVER             - "sqlite" or "postgres" (default: sqlite)
//	DATABASE_DSN                - Connection string (required)
//	DATABASE_MAX_OPEN_CONNS     - Maximum open connections (default: 10)
//	DATABASE_MAX_IDLE_CONNS     - Maximum idle connections (default: 5)
//	DATABASE_MAX_CONN_IDLE_TIME - Maximum connection idle time (default: 10m)
//	DATABASE_MAX_CONN_LIFETIME  - Maximum connection lifetime (default: 30m)
//	DATABASE_RETRY_ATTEMPTS     - Connection retry attempts (default: 3)
//	DATABASE_RETRY_INTERVAL     - Base retry interval (default: 5s)
//
// # Usage
//
//	conn, err := db.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := db.Migrate(ctx, conn, registry, log); err != nil {
//		return err
//	}
//	if err := db.EnsureAdmin(ctx, conn, hasher, db.AdminSeed{New: newAdmin}, log); err != nil {
//		return err
//	}
//
// Close the handle on shutdown via [Shutdown], which pairs with the
// application's shutdown hooks.
package db
