package entity

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Store performs CRUD for registered entities against a GORM database.
type Store struct {
	db *gorm.DB
}

// NewStore creates an entity store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Load fetches a single record by primary key.
func (s *Store) Load(ctx context.Context, d Descriptor, id uint) (Entity, error) {
	e := d.New()
	err := s.db.WithContext(ctx).First(e, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s/%d", ErrNotFound, d.Name, id)
		}
		return nil, fmt.Errorf("entity: load %s/%d: %w", d.Name, id, err)
	}
	return e, nil
}

// All fetches every record of the entity in primary key order.
// Rows are scanned one at a time into fresh instances so the result can
// hold any registered entity type.
func (s *Store) All(ctx context.Context, d Descriptor) ([]Entity, error) {
	db := s.db.WithContext(ctx)
	rows, err := db.Model(d.New()).Order("id").Rows()
	if err != nil {
		return nil, fmt.Errorf("entity: list %s: %w", d.Name, err)
	}
	defer rows.Close()

	var out []Entity
	for rows.Next() {
		e := d.New()
		if err := db.ScanRows(rows, e); err != nil {
			return nil, fmt.Errorf("entity: scan %s: %w", d.Name, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("entity: list %s: %w", d.Name, err)
	}
	return out, nil
}

// Create inserts a new record and fills its primary key.
func (s *Store) Create(ctx context.Context, e Entity) error {
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("entity: create %s: %w", e.EntityName(), err)
	}
	return nil
}

// Save persists changes to an existing record.
func (s *Store) Save(ctx context.Context, e Entity) error {
	if err := s.db.WithContext(ctx).Save(e).Error; err != nil {
		return fmt.Errorf("entity: save %s/%d: %w", e.EntityName(), e.EntityID(), err)
	}
	return nil
}

// Delete removes a record by primary key.
func (s *Store) Delete(ctx context.Context, d Descriptor, id uint) error {
	res := s.db.WithContext(ctx).Delete(d.New(), id)
	if res.Error != nil {
		return fmt.Errorf("entity: delete %s/%d: %w", d.Name, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s/%d", ErrNotFound, d.Name, id)
	}
	return nil
}
