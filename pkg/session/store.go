package session

import "context"

// Store defines the interface for session persistence.
// Implementations handle storage-specific operations like
// database queries or cache lookups.
type Store interface {
	// Create persists a new session.
	Create(ctx context.Context, s *Session) error

	// Get retrieves a session by its token.
	// Returns ErrNotFound if the session doesn't exist.
	// Expiry is not checked here; the Manager decides what expired means.
	Get(ctx context.Context, token string) (*Session, error)

	// Delete removes a session by its token.
	Delete(ctx context.Context, token string) error

	// DeleteBySubject removes all sessions for a subject.
	// Used for "logout everywhere" semantics.
	DeleteBySubject(ctx context.Context, subjectID uint) error

	// DeleteExpired removes all sessions past their expiry.
	// Returns the number of sessions removed.
	DeleteExpired(ctx context.Context) (int64, error)
}
