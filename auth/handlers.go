package auth

import (
	"log/slog"
	"net/http"

	"github.com/anvilweb/anvil/internal"
	"github.com/anvilweb/anvil/pkg/logger"
	"github.com/anvilweb/anvil/pkg/password"
	"github.com/anvilweb/anvil/pkg/session"
)

// DefaultLoginView is the template rendered by the login handler.
const DefaultLoginView = "login"

// Service implements the login and logout flows.
type Service struct {
	subjects   SubjectStore
	sessions   *session.Manager
	hasher     *password.Hasher
	log        *slog.Logger
	loginView  string
	loginURL   string
	successURL string
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLoginView sets the template name for the login page.
func WithLoginView(name string) ServiceOption {
	return func(s *Service) {
		if name != "" {
			s.loginView = name
		}
	}
}

// WithSuccessURL sets the redirect target after a successful login.
func WithSuccessURL(url string) ServiceOption {
	return func(s *Service) {
		if url != "" {
			s.successURL = url
		}
	}
}

// WithServiceLoginURL sets the redirect target after logout.
func WithServiceLoginURL(url string) ServiceOption {
	return func(s *Service) {
		if url != "" {
			s.loginURL = url
		}
	}
}

// WithServiceLogger sets the logger for non-fatal auth events.
func WithServiceLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates the login/logout service.
func NewService(subjects SubjectStore, sessions *session.Manager, hasher *password.Hasher, opts ...ServiceOption) *Service {
	s := &Service{
		subjects:   subjects,
		sessions:   sessions,
		hasher:     hasher,
		log:        logger.NewNope(),
		loginView:  DefaultLoginView,
		loginURL:   DefaultLoginURL,
		successURL: "/admin/",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login serves the login page on GET and processes credentials on POST.
// Already-authenticated requests are redirected to the success URL.
// Failed credentials re-render the login page with an error message and
// status 200.
func (s *Service) Login(c internal.Context) (*internal.Response, error) {
	if s.authenticated(c) {
		return internal.Redirect(s.successURL), nil
	}

	if c.Request().Method != http.MethodPost {
		return internal.View(s.loginView, nil), nil
	}

	username := c.Form("username")
	subject, err := s.subjects.FindByUsername(c.Context(), username)
	if err != nil {
		return s.loginFailed(c, username), nil
	}

	if err := s.hasher.Verify(subject.SubjectPasswordHash(), c.Form("password")); err != nil {
		return s.loginFailed(c, username), nil
	}

	sess, err := s.sessions.Create(c.Context(), subject.SubjectID())
	if err != nil {
		return nil, internal.ErrInternal("could not create session", internal.WithError(err))
	}
	s.sessions.WriteCookie(c.Response(), sess)

	s.log.InfoContext(c.Context(), "subject logged in", slog.Uint64("subject_id", uint64(subject.SubjectID())))
	return internal.Redirect(s.successURL), nil
}

// Logout invalidates every session of the current subject, clears the
// cookie and redirects to the login page.
func (s *Service) Logout(c internal.Context) (*internal.Response, error) {
	token := s.sessions.TokenFromRequest(c.Request())
	if sess, err := s.sessions.Resolve(c.Context(), token); err == nil {
		if err := s.sessions.Invalidate(c.Context(), sess.SubjectID); err != nil {
			s.log.WarnContext(c.Context(), "session invalidation failed", slog.Any("error", err))
		}
	}

	s.sessions.ClearCookie(c.Response())
	return internal.Redirect(s.loginURL), nil
}

// authenticated reports whether the request carries a session resolving
// to a known subject.
func (s *Service) authenticated(c internal.Context) bool {
	token := s.sessions.TokenFromRequest(c.Request())
	sess, err := s.sessions.Resolve(c.Context(), token)
	if err != nil {
		return false
	}
	_, err = s.subjects.FindByID(c.Context(), sess.SubjectID)
	return err == nil
}

// loginFailed re-renders the login page with an error message.
func (s *Service) loginFailed(c internal.Context, username string) *internal.Response {
	s.log.InfoContext(c.Context(), "login rejected", slog.String("username", username))
	return internal.View(s.loginView, map[string]any{
		"error":    "Invalid username or password.",
		"username": username,
	})
}
