package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/anvilweb/anvil/pkg/db"
	"github.com/anvilweb/anvil/pkg/entity"
	"github.com/anvilweb/anvil/pkg/logger"
	"github.com/anvilweb/anvil/pkg/password"
)

type adminUser struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	IsAdmin      bool
}

func (u *adminUser) EntityName() string { return "user" }
func (u *adminUser) EntityID() uint     { return u.ID }

func (u *adminUser) EntityFields() []entity.Field {
	return []entity.Field{
		{Name: "username", Kind: entity.KindString},
		{Name: "password", Kind: entity.KindPassword},
		{Name: "is_admin", Kind: entity.KindBool},
	}
}

func (u *adminUser) Field(name string) (any, bool) {
	switch name {
	case "username":
		return u.Username, true
	case "password":
		return u.PasswordHash, true
	case "is_admin":
		return u.IsAdmin, true
	}
	return nil, false
}

func (u *adminUser) SetField(name string, value any) bool {
	switch name {
	case "username":
		s, ok := value.(string)
		if ok {
			u.Username = s
		}
		return ok
	case "password":
		s, ok := value.(string)
		if ok {
			u.PasswordHash = s
		}
		return ok
	case "is_admin":
		b, ok := value.(bool)
		if ok {
			u.IsAdmin = b
		}
		return ok
	}
	return false
}

func testConfig(t *testing.T) db.Config {
	t.Helper()

	return db.Config{
		Driver:        "sqlite",
		DSN:           "file:" + t.TempDir() + "/app.db",
		RetryAttempts: 1,
		RetryInterval: 10 * time.Millisecond,
		MaxOpenConns:  2,
		MaxIdleConns:  1,
	}
}

func TestConnect(t *testing.T) {
	t.Parallel()

	t.Run("sqlite", func(t *testing.T) {
		t.Parallel()

		conn, err := db.Connect(context.Background(), testConfig(t))
		require.NoError(t, err)
		require.NotNil(t, conn)
		require.NoError(t, db.Shutdown(conn)(context.Background()))
	})

	t.Run("unsupported driver", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		cfg.Driver = "oracle"
		_, err := db.Connect(context.Background(), cfg)
		require.ErrorIs(t, err, db.ErrUnsupportedDriver)
	})
}

func TestMigrate(t *testing.T) {
	t.Parallel()

	conn, err := db.Connect(context.Background(), testConfig(t))
	require.NoError(t, err)

	reg := entity.NewRegistry()
	reg.MustRegister(func() entity.Entity { return &adminUser{} })

	require.NoError(t, db.Migrate(context.Background(), conn, reg, logger.NewNope()))

	require.True(t, conn.Migrator().HasTable("sessions"))
	require.True(t, conn.Migrator().HasTable(&adminUser{}))
}

func TestEnsureAdmin(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) *gorm.DB {
		t.Helper()

		conn, err := db.Connect(context.Background(), testConfig(t))
		require.NoError(t, err)
		require.NoError(t, conn.AutoMigrate(&adminUser{}))
		return conn
	}
	seed := db.AdminSeed{
		New: func(username, hash string) entity.Entity {
			return &adminUser{Username: username, PasswordHash: hash, IsAdmin: true}
		},
	}
	hasher := password.New(password.WithCost(4))

	t.Run("seeds default credentials", func(t *testing.T) {
		t.Parallel()

		conn := setup(t)
		require.NoError(t, db.EnsureAdmin(context.Background(), conn, hasher, seed, logger.NewNope()))

		var u adminUser
		require.NoError(t, conn.First(&u, "username = ?", db.DefaultAdminUsername).Error)
		require.True(t, u.IsAdmin)
		require.NoError(t, hasher.Verify(u.PasswordHash, db.DefaultAdminPassword))
	})

	t.Run("does not overwrite existing accounts", func(t *testing.T) {
		t.Parallel()

		conn := setup(t)
		require.NoError(t, conn.Create(&adminUser{Username: "existing", PasswordHash: "x"}).Error)

		require.NoError(t, db.EnsureAdmin(context.Background(), conn, hasher, seed, logger.NewNope()))

		var count int64
		require.NoError(t, conn.Model(&adminUser{}).Count(&count).Error)
		require.Equal(t, int64(1), count)
	})

	t.Run("nil constructor fails", func(t *testing.T) {
		t.Parallel()

		conn := setup(t)
		err := db.EnsureAdmin(context.Background(), conn, hasher, db.AdminSeed{}, logger.NewNope())
		require.ErrorIs(t, err, db.ErrSeedAdmin)
	})
}

func TestWithTx(t *testing.T) {
	t.Parallel()

	conn, err := db.Connect(context.Background(), testConfig(t))
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&adminUser{}))

	sentinel := errors.New("boom")
	err = db.WithTx(context.Background(), conn, func(tx *gorm.DB) error {
		if err := tx.Create(&adminUser{Username: "rollback-me", PasswordHash: "x"}).Error; err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	var count int64
	require.NoError(t, conn.Model(&adminUser{}).Count(&count).Error)
	require.Zero(t, count)
}
