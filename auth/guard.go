package auth

import (
	"github.com/anvilweb/anvil/internal"
	"github.com/anvilweb/anvil/pkg/session"
)

// Default guard redirect targets.
const (
	DefaultLoginURL  = "/admin/login/"
	DefaultLogoutURL = "/admin/logout/"
)

// Guard produces middleware protecting routes behind a session.
type Guard struct {
	subjects  SubjectStore
	sessions  *session.Manager
	loginURL  string
	logoutURL string
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithLoginURL sets the redirect target for unauthenticated requests.
func WithLoginURL(url string) GuardOption {
	return func(g *Guard) {
		if url != "" {
			g.loginURL = url
		}
	}
}

// WithLogoutURL sets the redirect target for non-admin subjects hitting
// admin-only routes.
func WithLogoutURL(url string) GuardOption {
	return func(g *Guard) {
		if url != "" {
			g.logoutURL = url
		}
	}
}

// NewGuard creates a Guard over the given subject store and session
// manager.
func NewGuard(subjects SubjectStore, sessions *session.Manager, opts ...GuardOption) *Guard {
	g := &Guard{
		subjects:  subjects,
		sessions:  sessions,
		loginURL:  DefaultLoginURL,
		logoutURL: DefaultLogoutURL,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RequireSession resolves the session cookie, loads the subject and
// attaches it to the request context. Requests without a valid session
// are redirected to the login page; the wrapped handler never runs.
func (g *Guard) RequireSession(next internal.HandlerFunc) internal.HandlerFunc {
	return func(c internal.Context) (*internal.Response, error) {
		token := g.sessions.TokenFromRequest(c.Request())
		sess, err := g.sessions.Resolve(c.Context(), token)
		if err != nil {
			return internal.Redirect(g.loginURL), nil
		}

		subject, err := g.subjects.FindByID(c.Context(), sess.SubjectID)
		if err != nil {
			return internal.Redirect(g.loginURL), nil
		}

		c.Set(subjectKey{}, subject)
		return next(c)
	}
}

// RequireAdmin redirects authenticated non-admin subjects to the logout
// page. It must run inside RequireSession.
func (g *Guard) RequireAdmin(next internal.HandlerFunc) internal.HandlerFunc {
	return func(c internal.Context) (*internal.Response, error) {
		subject := CurrentSubject(c)
		if subject == nil {
			return internal.Redirect(g.loginURL), nil
		}
		if !subject.SubjectIsAdmin() {
			return internal.Redirect(g.logoutURL), nil
		}
		return next(c)
	}
}
