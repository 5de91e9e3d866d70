package db

import "errors"

var (
	ErrUnsupportedDriver        = errors.New("db: unsupported driver")
	ErrFailedToOpenDBConnection = errors.New("db: failed to open database connection")
	ErrApplyMigrations          = errors.New("db: failed to apply migrations")
	ErrSeedAdmin                = errors.New("db: failed to seed admin account")
)
