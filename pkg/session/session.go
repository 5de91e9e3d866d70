package session

import "time"

// Session is a server-side authentication session. The token is the only
// value handed to the client; everything else stays in the store.
type Session struct {
	Token     string
	SubjectID uint
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
