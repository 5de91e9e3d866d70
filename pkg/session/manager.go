package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// DefaultTTL is the session lifetime applied when none is configured.
const DefaultTTL = 24 * time.Hour

// DefaultCookieName is the cookie carrying the session token.
const DefaultCookieName = "session"

// Manager creates, resolves, and invalidates sessions against a Store
// and handles the session cookie.
type Manager struct {
	store      Store
	ttl        time.Duration
	cookieName string
	cookiePath string
	secure     bool
	log        *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithTTL sets the session lifetime. Non-positive values keep the default.
func WithTTL(ttl time.Duration) ManagerOption {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithCookieName overrides the session cookie name.
func WithCookieName(name string) ManagerOption {
	return func(m *Manager) {
		if name != "" {
			m.cookieName = name
		}
	}
}

// WithSecureCookie marks the session cookie Secure (HTTPS only).
func WithSecureCookie(secure bool) ManagerOption {
	return func(m *Manager) {
		m.secure = secure
	}
}

// WithLogger sets the logger used for non-fatal store failures.
func WithLogger(log *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// NewManager creates a session manager backed by the given store.
func NewManager(store Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:      store,
		ttl:        DefaultTTL,
		cookieName: DefaultCookieName,
		cookiePath: "/",
		log:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration { return m.ttl }

// CookieName returns the session cookie name.
func (m *Manager) CookieName() string { return m.cookieName }

// Create issues a fresh session for the subject and persists it.
func (m *Manager) Create(ctx context.Context, subjectID uint) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s := &Session{
		Token:     token,
		SubjectID: subjectID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("session: create: %w", err)
	}
	return s, nil
}

// Resolve looks up a session by token. Expired sessions are removed from
// the store best-effort and reported as ErrExpired.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNotFound
	}

	s, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	if s.IsExpired() {
		if delErr := m.store.Delete(ctx, token); delErr != nil {
			m.log.WarnContext(ctx, "failed to delete expired session", slog.Any("error", delErr))
		}
		return nil, ErrExpired
	}
	return s, nil
}

// Invalidate removes every session belonging to the subject.
func (m *Manager) Invalidate(ctx context.Context, subjectID uint) error {
	if err := m.store.DeleteBySubject(ctx, subjectID); err != nil {
		return fmt.Errorf("session: invalidate: %w", err)
	}
	return nil
}

// DeleteExpired removes all expired sessions from the store.
func (m *Manager) DeleteExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx)
}

// WriteCookie sets the session cookie for the given session.
// The cookie expires together with the session.
func (m *Manager) WriteCookie(w http.ResponseWriter, s *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    s.Token,
		Path:     m.cookiePath,
		Expires:  s.ExpiresAt,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie on the client.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     m.cookiePath,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// TokenFromRequest extracts the session token from the request cookie.
// Returns an empty string when the cookie is absent.
func (m *Manager) TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(m.cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// generateToken creates a cryptographically secure random token.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session: generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
