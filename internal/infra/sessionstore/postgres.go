// Package sessionstore implements the session issuer on Postgres. Tokens are
// opaque random identifiers; validity lives entirely in the user_sessions
// table, so invalidation is a delete.
package sessionstore

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"log/slog"
	"strings"
	"time"

	"cedra-backend/internal/infra"
	"cedra-backend/internal/infra/db"
	"cedra-backend/internal/pkg/clock"
	"cedra-backend/internal/session"

	"github.com/jackc/pgx/v5"
)

const tokenBytes = 25 // 40 chars once base32-encoded

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

type PostgresIssuer struct {
	db       db.DBTX
	clock    clock.Clock
	lifetime time.Duration
}

func New(dbtx db.DBTX, clk clock.Clock, lifetime time.Duration) *PostgresIssuer {
	return &PostgresIssuer{
		db:       dbtx,
		clock:    clk,
		lifetime: lifetime,
	}
}

func (s *PostgresIssuer) Create(ctx context.Context, userID string) (*session.Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	expiresAt := s.clock.Now().Add(s.lifetime)
	_, err = s.db.Exec(ctx,
		`INSERT INTO user_sessions (id, user_id, expires_at) VALUES ($1, $2, $3)`,
		token, userID, expiresAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to insert session", err)
	}

	return &session.Session{
		ID:        token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		Fresh:     false,
	}, nil
}

// Validate looks the token up and applies the sliding window: when less than
// half the lifetime remains, the expiry is extended server-side and the
// returned session is flagged Fresh so the gate re-sends the cookie.
func (s *PostgresIssuer) Validate(ctx context.Context, token string) (*session.Session, error) {
	if token == "" {
		return nil, nil
	}

	var userID string
	var expiresAt time.Time
	err := s.db.QueryRow(ctx,
		`SELECT user_id, expires_at FROM user_sessions WHERE id = $1 LIMIT 1`, token,
	).Scan(&userID, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to load session", err)
	}

	now := s.clock.Now()
	if !expiresAt.After(now) {
		// Expired rows are dropped on sight; failure to drop is harmless.
		_, _ = s.db.Exec(ctx, `DELETE FROM user_sessions WHERE id = $1`, token)
		return nil, nil
	}

	sess := &session.Session{
		ID:        token,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}

	if expiresAt.Sub(now) < s.lifetime/2 {
		extended := now.Add(s.lifetime)
		_, err := s.db.Exec(ctx,
			`UPDATE user_sessions SET expires_at = $1 WHERE id = $2`, extended, token)
		if err != nil {
			// Best-effort: the session stays valid on its old expiry.
			slog.Warn("failed to extend session expiry", "error", err.Error())
		} else {
			sess.ExpiresAt = extended
			sess.Fresh = true
		}
	}

	return sess, nil
}

func (s *PostgresIssuer) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	_, err := s.db.Exec(ctx, `DELETE FROM user_sessions WHERE id = $1`, token)
	if err != nil {
		return infra.WrapRepoErr("failed to invalidate session", err)
	}
	return nil
}

func (s *PostgresIssuer) InvalidateUserSessions(ctx context.Context, userID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM user_sessions WHERE user_id = $1`, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to invalidate user sessions", err)
	}
	return nil
}

func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.New("secure random source unavailable")
	}
	return strings.ToLower(encoding.EncodeToString(buf)), nil
}
