// Package session defines the server-issued capability tokens proving a
// prior authentication, and the issuer contract the request gate consumes.
package session

import (
	"context"
	"time"
)

// Session is an opaque token bound to a user id. Fresh signals that the
// issuer extended the expiry server-side during validation and recommends
// re-sending the cookie.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	Fresh     bool
}

// ExpiresWithin reports whether the session expires within horizon of now.
func (s *Session) ExpiresWithin(now time.Time, horizon time.Duration) bool {
	return s.ExpiresAt.Sub(now) <= horizon
}

// Issuer creates, validates and invalidates sessions. Validate returns
// (nil, nil) for unknown or expired tokens; callers must treat an error from
// Validate the same as a nil session.
type Issuer interface {
	Create(ctx context.Context, userID string) (*Session, error)
	Validate(ctx context.Context, token string) (*Session, error)
	Invalidate(ctx context.Context, token string) error
	InvalidateUserSessions(ctx context.Context, userID string) error
}
