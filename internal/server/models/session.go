package models

import "time"

// Session associates an opaque server-side id with a user. The id itself
// travels inside a signed token; only the server can map it back.
type Session struct {
	ID        string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its lifetime at instant now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
