package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Record is the database representation of a session.
type Record struct {
	Token     string    `gorm:"primaryKey;size:64"`
	SubjectID uint      `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
}

// TableName maps Record to the sessions table.
func (Record) TableName() string { return "sessions" }

// GormStore persists sessions in a relational database via GORM.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

// NewGormStore creates a database-backed session store.
// The sessions table must exist; see the db package migration helpers.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, sess *Session) error {
	rec := Record{
		Token:     sess.Token,
		SubjectID: sess.SubjectID,
		CreatedAt: sess.CreatedAt,
		ExpiresAt: sess.ExpiresAt,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("session: store create: %w", err)
	}
	return nil
}

func (s *GormStore) Get(ctx context.Context, token string) (*Session, error) {
	var rec Record
	err := s.db.WithContext(ctx).First(&rec, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session: store get: %w", err)
	}
	return &Session{
		Token:     rec.Token,
		SubjectID: rec.SubjectID,
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

func (s *GormStore) Delete(ctx context.Context, token string) error {
	if err := s.db.WithContext(ctx).Delete(&Record{}, "token = ?", token).Error; err != nil {
		return fmt.Errorf("session: store delete: %w", err)
	}
	return nil
}

func (s *GormStore) DeleteBySubject(ctx context.Context, subjectID uint) error {
	if err := s.db.WithContext(ctx).Delete(&Record{}, "subject_id = ?", subjectID).Error; err != nil {
		return fmt.Errorf("session: store delete by subject: %w", err)
	}
	return nil
}

func (s *GormStore) DeleteExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Delete(&Record{}, "expires_at <= ?", time.Now())
	if res.Error != nil {
		return 0, fmt.Errorf("session: store delete expired: %w", res.Error)
	}
	return res.RowsAffected, nil
}
