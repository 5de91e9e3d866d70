package db

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/anvilweb/anvil/pkg/entity"
	"github.com/anvilweb/anvil/pkg/password"
)

// Default credentials seeded on first run. Change them after the first
// login; EnsureAdmin never touches an existing account.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin"
)

// AdminSeed describes how to construct the application's admin record.
// The constructor receives the username and the already-hashed password.
type AdminSeed struct {
	Username string
	Password string
	New      func(username, passwordHash string) entity.Entity
}

// EnsureAdmin creates a default administrator account when the admin
// entity's table is empty, so a fresh installation has a usable login.
func EnsureAdmin(ctx context.Context, conn *gorm.DB, hasher *password.Hasher, seed AdminSeed, log *slog.Logger) error {
	if seed.New == nil {
		return errors.Join(ErrSeedAdmin, errors.New("nil constructor"))
	}
	username := seed.Username
	if username == "" {
		username = DefaultAdminUsername
	}
	plaintext := seed.Password
	if plaintext == "" {
		plaintext = DefaultAdminPassword
	}

	var count int64
	if err := conn.WithContext(ctx).Model(seed.New("", "")).Count(&count).Error; err != nil {
		return errors.Join(ErrSeedAdmin, err)
	}
	if count > 0 {
		return nil
	}

	hash, err := hasher.Hash(plaintext)
	if err != nil {
		return errors.Join(ErrSeedAdmin, err)
	}
	if err := conn.WithContext(ctx).Create(seed.New(username, hash)).Error; err != nil {
		return errors.Join(ErrSeedAdmin, err)
	}

	log.InfoContext(ctx, "seeded default admin account", slog.String("username", username))
	return nil
}
