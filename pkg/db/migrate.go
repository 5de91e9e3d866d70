package db

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/anvilweb/anvil/pkg/entity"
	"github.com/anvilweb/anvil/pkg/session"
)

// Migrate creates or updates the schema for the session table and every
// registered entity.
func Migrate(ctx context.Context, conn *gorm.DB, reg *entity.Registry, log *slog.Logger) error {
	models := []any{&session.Record{}}
	for _, d := range reg.All() {
		models = append(models, d.New())
	}

	if err := conn.WithContext(ctx).AutoMigrate(models...); err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}

	log.InfoContext(ctx, "database migrated", slog.Int("entities", len(reg.All())))
	return nil
}
