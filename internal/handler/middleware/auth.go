package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"cedra-backend/internal/handler/httperr"
	"cedra-backend/internal/pkg/clock"
	"cedra-backend/internal/pkg/config"
	"cedra-backend/internal/pkg/cookie"
	"cedra-backend/internal/pkg/errs"
	"cedra-backend/internal/session"
	"cedra-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const (
	ctxIdentityKey = "identity"
	ctxSessionKey  = "session"
)

// AuthMiddleware validates the session cookie and hydrates the caller's
// identity from current database state on every request.
type AuthMiddleware struct {
	issuer   session.Issuer
	identity queries.IdentityQueries
	cfg      config.Config
	clock    clock.Clock
}

func NewAuthMiddleware(issuer session.Issuer, identity queries.IdentityQueries, cfg config.Config, clk clock.Clock) *AuthMiddleware {
	return &AuthMiddleware{
		issuer:   issuer,
		identity: identity,
		cfg:      cfg,
		clock:    clk,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.GetSessionToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized,
				errs.New("missing session token"), "Not authenticated", nil)
			return
		}

		sess, identity, ok := m.authenticate(c, token)
		if !ok {
			cookie.ClearSessionCookie(c, m.cfg.Cookie)
			httperr.AbortWithError(c, http.StatusUnauthorized,
				errs.New("invalid or expired session"), "Not authenticated", nil)
			return
		}

		m.maintainSession(c, sess)
		c.Set(ctxIdentityKey, identity)
		c.Set(ctxSessionKey, sess)
		c.Next()
	}
}

// OptionalAuth hydrates identity when a valid session is present and never
// blocks the request. A stale cookie is purged on the way through.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.GetSessionToken(c)
		if token == "" {
			c.Next()
			return
		}

		sess, identity, ok := m.authenticate(c, token)
		if !ok {
			cookie.ClearSessionCookie(c, m.cfg.Cookie)
			c.Next()
			return
		}

		m.maintainSession(c, sess)
		c.Set(ctxIdentityKey, identity)
		c.Set(ctxSessionKey, sess)
		c.Next()
	}
}

// RequireAdmin assumes a prior RequireAuth; without one the request is
// unauthenticated, not broken.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := currentIdentity(c)
		if identity == nil {
			httperr.AbortWithError(c, http.StatusUnauthorized,
				errs.New("admin check without authentication"), "Not authenticated", nil)
			return
		}
		if !identity.IsAdmin {
			httperr.AbortWithError(c, http.StatusForbidden,
				errs.New("admin role required"), "Forbidden", nil)
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) RequireCompanyAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := currentIdentity(c)
		if identity == nil {
			httperr.AbortWithError(c, http.StatusUnauthorized,
				errs.New("company-admin check without authentication"), "Not authenticated", nil)
			return
		}
		if !identity.IsAdmin && !identity.IsCompanyAdmin {
			httperr.AbortWithError(c, http.StatusForbidden,
				errs.New("company-admin role required"), "Forbidden", nil)
			return
		}
		c.Next()
	}
}

// authenticate validates the token and resolves the identity. A vanished
// user behind a still-valid session counts as unauthenticated; the stale
// session is removed along the way.
func (m *AuthMiddleware) authenticate(c *gin.Context, token string) (*session.Session, *queries.ResolvedIdentity, bool) {
	sess, err := m.issuer.Validate(c.Request.Context(), token)
	if err != nil {
		slog.Warn("session validation failed", "error", err.Error())
		return nil, nil, false
	}
	if sess == nil {
		return nil, nil, false
	}

	identity, err := m.identity.Resolve(c.Request.Context(), sess.UserID)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			if ierr := m.issuer.Invalidate(c.Request.Context(), token); ierr != nil {
				slog.Warn("failed to invalidate orphaned session", "error", ierr.Error())
			}
			return nil, nil, false
		}
		slog.Error("identity resolution failed", "user_id", sess.UserID, "error", err.Error())
		return nil, nil, false
	}

	return sess, identity, true
}

// maintainSession re-sends the cookie when the issuer extended the expiry,
// and proactively replaces sessions nearing expiry. Both are best-effort and
// never abort the request.
func (m *AuthMiddleware) maintainSession(c *gin.Context, sess *session.Session) {
	now := m.clock.Now()

	if sess.ExpiresWithin(now, m.cfg.Session.RefreshHorizon) {
		replacement, err := m.issuer.Create(c.Request.Context(), sess.UserID)
		if err != nil {
			slog.Warn("proactive session refresh failed", "user_id", sess.UserID, "error", err.Error())
		} else {
			if err := m.issuer.Invalidate(c.Request.Context(), sess.ID); err != nil {
				slog.Warn("failed to invalidate replaced session", "error", err.Error())
			}
			cookie.SetSessionCookie(c, m.cfg.Cookie, replacement.ID, replacement.ExpiresAt)
			*sess = *replacement
			return
		}
	}

	if sess.Fresh {
		cookie.SetSessionCookie(c, m.cfg.Cookie, sess.ID, sess.ExpiresAt)
	}
}

func currentIdentity(c *gin.Context) *queries.ResolvedIdentity {
	v, exists := c.Get(ctxIdentityKey)
	if !exists {
		return nil
	}
	identity, ok := v.(*queries.ResolvedIdentity)
	if !ok {
		return nil
	}
	return identity
}

// GetIdentity returns the identity attached by RequireAuth or OptionalAuth.
func GetIdentity(c *gin.Context) (*queries.ResolvedIdentity, bool) {
	identity := currentIdentity(c)
	return identity, identity != nil
}

// GetSession returns the validated session attached to the request.
func GetSession(c *gin.Context) (*session.Session, bool) {
	v, exists := c.Get(ctxSessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok
}
