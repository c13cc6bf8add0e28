//go:build unit

package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cedra-backend/internal/handler/middleware"
	"cedra-backend/internal/pkg/clock"
	"cedra-backend/internal/pkg/config"
	"cedra-backend/internal/pkg/cookie"
	"cedra-backend/internal/pkg/errs"
	"cedra-backend/internal/session"
	"cedra-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type stubIssuer struct {
	sessions    map[string]*session.Session
	createErr   error
	created     []string
	invalidated []string
}

func (s *stubIssuer) Create(_ context.Context, userID string) (*session.Session, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = append(s.created, userID)
	sess := &session.Session{
		ID:        fmt.Sprintf("replacement-%d", len(s.created)),
		UserID:    userID,
		ExpiresAt: time.Now().Add(720 * time.Hour),
	}
	return sess, nil
}

func (s *stubIssuer) Validate(_ context.Context, token string) (*session.Session, error) {
	if sess, ok := s.sessions[token]; ok {
		cp := *sess
		return &cp, nil
	}
	return nil, nil
}

func (s *stubIssuer) Invalidate(_ context.Context, token string) error {
	s.invalidated = append(s.invalidated, token)
	delete(s.sessions, token)
	return nil
}

func (s *stubIssuer) InvalidateUserSessions(_ context.Context, _ string) error {
	return nil
}

type stubIdentityQueries struct {
	identities map[string]*queries.ResolvedIdentity
}

func (s *stubIdentityQueries) Resolve(_ context.Context, userID string) (*queries.ResolvedIdentity, error) {
	if identity, ok := s.identities[userID]; ok {
		cp := *identity
		return &cp, nil
	}
	return nil, errs.Mark(errs.New("no such user"), errs.ErrUserNotFound)
}

type AuthMiddlewareTestSuite struct {
	suite.Suite
	issuer     *stubIssuer
	identities *stubIdentityQueries
	clock      *clock.MockClock
	cfg        config.Config
	router     *gin.Engine
	mw         *middleware.AuthMiddleware
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.issuer = &stubIssuer{sessions: make(map[string]*session.Session)}
	s.identities = &stubIdentityQueries{identities: make(map[string]*queries.ResolvedIdentity)}
	// Cookie max-age is derived from wall time, so the mock tracks it.
	s.clock = clock.NewMockClock(time.Now())
	s.cfg = config.NewTestConfig()

	s.mw = middleware.NewAuthMiddleware(s.issuer, s.identities, s.cfg, s.clock)

	okHandler := func(c *gin.Context) {
		identity, _ := middleware.GetIdentity(c)
		if identity != nil {
			c.JSON(http.StatusOK, gin.H{"userId": identity.UserID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": nil})
	}

	s.router = gin.New()
	s.router.GET("/private", s.mw.RequireAuth(), okHandler)
	s.router.GET("/admin", s.mw.RequireAuth(), s.mw.RequireAdmin(), okHandler)
	s.router.GET("/company", s.mw.RequireAuth(), s.mw.RequireCompanyAdmin(), okHandler)
	s.router.GET("/public", s.mw.OptionalAuth(), okHandler)
	s.router.GET("/broken-admin", s.mw.RequireAdmin(), okHandler)
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (s *AuthMiddlewareTestSuite) seedUser(userID string, isAdmin, isCompanyAdmin bool) {
	s.identities.identities[userID] = &queries.ResolvedIdentity{
		UserID:         userID,
		Email:          userID + "@example.com",
		IsAdmin:        isAdmin,
		IsCompanyAdmin: isCompanyAdmin,
	}
}

func (s *AuthMiddlewareTestSuite) seedSession(token, userID string, expiresAt time.Time, fresh bool) {
	s.issuer.sessions[token] = &session.Session{
		ID:        token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		Fresh:     fresh,
	}
}

func (s *AuthMiddlewareTestSuite) perform(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookie.SessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// farExpiry is comfortably outside the refresh horizon.
func (s *AuthMiddlewareTestSuite) farExpiry() time.Time {
	return s.clock.Now().Add(s.cfg.Session.RefreshHorizon * 2)
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookie.SessionCookieName {
			return c
		}
	}
	return nil
}

func (s *AuthMiddlewareTestSuite) TestRequireAuth() {
	s.Run("no cookie is 401", func() {
		rec := s.perform("/private", "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("unknown token is 401 with cookie purge", func() {
		rec := s.perform("/private", "bogus")
		s.Equal(http.StatusUnauthorized, rec.Code)

		purged := sessionCookie(rec)
		s.Require().NotNil(purged)
		s.Empty(purged.Value)
	})

	s.Run("valid session reaches the handler with identity", func() {
		s.seedUser("u1", false, false)
		s.seedSession("tok1", "u1", s.farExpiry(), false)

		rec := s.perform("/private", "tok1")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "u1")
		s.Nil(sessionCookie(rec))
	})

	s.Run("vanished user is 401 and the session is removed", func() {
		s.seedSession("orphan", "gone", s.farExpiry(), false)

		rec := s.perform("/private", "orphan")
		s.Equal(http.StatusUnauthorized, rec.Code)
		s.Contains(s.issuer.invalidated, "orphan")

		purged := sessionCookie(rec)
		s.Require().NotNil(purged)
		s.Empty(purged.Value)
	})

	s.Run("fresh session re-sends the cookie", func() {
		s.seedUser("u1", false, false)
		s.seedSession("tok-fresh", "u1", s.farExpiry(), true)

		rec := s.perform("/private", "tok-fresh")
		s.Equal(http.StatusOK, rec.Code)

		sent := sessionCookie(rec)
		s.Require().NotNil(sent)
		s.Equal("tok-fresh", sent.Value)
	})
}

func (s *AuthMiddlewareTestSuite) TestProactiveRefresh() {
	s.Run("session near expiry is replaced and the new cookie sent", func() {
		s.seedUser("u1", false, false)
		s.seedSession("old-tok", "u1", s.clock.Now().Add(24*time.Hour), false)

		rec := s.perform("/private", "old-tok")
		s.Equal(http.StatusOK, rec.Code)

		s.Equal([]string{"u1"}, s.issuer.created)
		s.Contains(s.issuer.invalidated, "old-tok")

		sent := sessionCookie(rec)
		s.Require().NotNil(sent)
		s.Equal("replacement-1", sent.Value)
	})

	s.Run("refresh failure never aborts the request", func() {
		s.seedUser("u1", false, false)
		s.seedSession("old-tok", "u1", s.clock.Now().Add(24*time.Hour), false)
		s.issuer.createErr = errs.New("store down")

		rec := s.perform("/private", "old-tok")
		s.Equal(http.StatusOK, rec.Code)
		s.Empty(s.issuer.invalidated)
	})
}

func (s *AuthMiddlewareTestSuite) TestRolePredicates() {
	s.Run("admin passes requireAdmin", func() {
		s.seedUser("boss", true, false)
		s.seedSession("tok", "boss", s.farExpiry(), false)

		rec := s.perform("/admin", "tok")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("authenticated non-admin gets 403 not 401", func() {
		s.seedUser("pleb", false, false)
		s.seedSession("tok", "pleb", s.farExpiry(), false)

		rec := s.perform("/admin", "tok")
		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("unauthenticated admin route is 401 not 403", func() {
		rec := s.perform("/admin", "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("company admin passes requireCompanyAdmin", func() {
		s.seedUser("capo", false, true)
		s.seedSession("tok", "capo", s.farExpiry(), false)

		rec := s.perform("/company", "tok")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("global admin passes requireCompanyAdmin", func() {
		s.seedUser("boss", true, false)
		s.seedSession("tok", "boss", s.farExpiry(), false)

		rec := s.perform("/company", "tok")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("plain member gets 403 on requireCompanyAdmin", func() {
		s.seedUser("pleb", false, false)
		s.seedSession("tok", "pleb", s.farExpiry(), false)

		rec := s.perform("/company", "tok")
		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("predicate without prior auth denies with 401 instead of crashing", func() {
		rec := s.perform("/broken-admin", "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *AuthMiddlewareTestSuite) TestOptionalAuth() {
	s.Run("no cookie continues unauthenticated", func() {
		rec := s.perform("/public", "")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "null")
	})

	s.Run("expired token purges the cookie and still continues", func() {
		rec := s.perform("/public", "stale")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "null")

		purged := sessionCookie(rec)
		s.Require().NotNil(purged)
		s.Empty(purged.Value)
	})

	s.Run("valid token hydrates identity", func() {
		s.seedUser("u1", false, false)
		s.seedSession("tok", "u1", s.farExpiry(), false)

		rec := s.perform("/public", "tok")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "u1")
	})
}
