package entity_test

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/anvilweb/anvil/pkg/entity"
)

func newTestStore(t *testing.T) (*entity.Store, *entity.Registry) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&author{}, &book{}))
	return entity.NewStore(db), newTestRegistry(t)
}

func TestStoreCRUD(t *testing.T) {
	t.Parallel()

	t.Run("create fills primary key", func(t *testing.T) {
		t.Parallel()

		store, _ := newTestStore(t)
		a := &author{Name: "Ursula"}
		require.NoError(t, store.Create(context.Background(), a))
		require.NotZero(t, a.ID)
	})

	t.Run("load returns the record", func(t *testing.T) {
		t.Parallel()

		store, reg := newTestStore(t)
		ctx := context.Background()

		a := &author{Name: "Ursula"}
		require.NoError(t, store.Create(ctx, a))

		d, err := reg.Lookup("author")
		require.NoError(t, err)

		got, err := store.Load(ctx, d, a.ID)
		require.NoError(t, err)
		require.Equal(t, a.ID, got.EntityID())

		name, ok := got.Field("name")
		require.True(t, ok)
		require.Equal(t, "Ursula", name)
	})

	t.Run("load missing returns ErrNotFound", func(t *testing.T) {
		t.Parallel()

		store, reg := newTestStore(t)
		d, err := reg.Lookup("author")
		require.NoError(t, err)

		_, err = store.Load(context.Background(), d, 999)
		require.ErrorIs(t, err, entity.ErrNotFound)
	})

	t.Run("all returns records in id order", func(t *testing.T) {
		t.Parallel()

		store, reg := newTestStore(t)
		ctx := context.Background()

		require.NoError(t, store.Create(ctx, &author{Name: "First"}))
		require.NoError(t, store.Create(ctx, &author{Name: "Second"}))

		d, err := reg.Lookup("author")
		require.NoError(t, err)

		all, err := store.All(ctx, d)
		require.NoError(t, err)
		require.Len(t, all, 2)

		first, _ := all[0].Field("name")
		second, _ := all[1].Field("name")
		require.Equal(t, "First", first)
		require.Equal(t, "Second", second)
	})

	t.Run("save updates fields", func(t *testing.T) {
		t.Parallel()

		store, reg := newTestStore(t)
		ctx := context.Background()

		a := &author{Name: "Before"}
		require.NoError(t, store.Create(ctx, a))

		require.True(t, a.SetField("name", "After"))
		require.NoError(t, store.Save(ctx, a))

		d, err := reg.Lookup("author")
		require.NoError(t, err)
		got, err := store.Load(ctx, d, a.ID)
		require.NoError(t, err)

		name, _ := got.Field("name")
		require.Equal(t, "After", name)
	})

	t.Run("delete removes the record", func(t *testing.T) {
		t.Parallel()

		store, reg := newTestStore(t)
		ctx := context.Background()

		a := &author{Name: "Doomed"}
		require.NoError(t, store.Create(ctx, a))

		d, err := reg.Lookup("author")
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, d, a.ID))
		_, err = store.Load(ctx, d, a.ID)
		require.ErrorIs(t, err, entity.ErrNotFound)
	})

	t.Run("delete missing returns ErrNotFound", func(t *testing.T) {
		t.Parallel()

		store, reg := newTestStore(t)
		d, err := reg.Lookup("author")
		require.NoError(t, err)

		require.ErrorIs(t, store.Delete(context.Background(), d, 42), entity.ErrNotFound)
	})

	t.Run("reference assignment persists foreign key", func(t *testing.T) {
		t.Parallel()

		store, reg := newTestStore(t)
		ctx := context.Background()

		a := &author{Name: "Ursula"}
		require.NoError(t, store.Create(ctx, a))

		b := &book{Title: "Dispossessed"}
		require.True(t, b.SetField("author", a))
		require.NoError(t, store.Create(ctx, b))

		d, err := reg.Lookup("book")
		require.NoError(t, err)
		got, err := store.Load(ctx, d, b.ID)
		require.NoError(t, err)

		ref, _ := got.Field("author")
		require.Equal(t, a.ID, ref)
	})
}
