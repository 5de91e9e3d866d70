package auth

import (
	"context"

	"github.com/anvilweb/anvil/internal"
)

// Subject is an authenticated principal. Applications implement it on
// their user model; the framework only needs the primary key, the
// password hash and the admin flag.
type Subject interface {
	SubjectID() uint
	SubjectPasswordHash() string
	SubjectIsAdmin() bool
}

// SubjectStore loads subjects from the application's storage.
type SubjectStore interface {
	// FindByUsername returns the subject with the given username.
	FindByUsername(ctx context.Context, username string) (Subject, error)

	// FindByID returns the subject with the given primary key.
	FindByID(ctx context.Context, id uint) (Subject, error)
}

// subjectKey is the context key the guard stores the subject under.
type subjectKey struct{}

// CurrentSubject returns the subject attached by RequireSession.
// Returns nil when the request carries no authenticated subject.
func CurrentSubject(c internal.Context) Subject {
	return internal.ContextValue[Subject](c, subjectKey{})
}
