//go:build unit

package handler_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cedra-backend/internal/handler"
	"cedra-backend/internal/handler/api"
	"cedra-backend/internal/handler/middleware"
	"cedra-backend/internal/pkg/clock"
	"cedra-backend/internal/pkg/config"
	"cedra-backend/internal/pkg/cookie"
	"cedra-backend/internal/pkg/errs"
	"cedra-backend/internal/session"
	"cedra-backend/internal/usecase/commands"
	"cedra-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
)

type stubIssuer struct {
	sessions map[string]*session.Session
}

func (s *stubIssuer) Create(_ context.Context, userID string) (*session.Session, error) {
	return &session.Session{ID: "fresh", UserID: userID, ExpiresAt: time.Now().Add(720 * time.Hour)}, nil
}

func (s *stubIssuer) Validate(_ context.Context, token string) (*session.Session, error) {
	if sess, ok := s.sessions[token]; ok {
		cp := *sess
		return &cp, nil
	}
	return nil, nil
}

func (s *stubIssuer) Invalidate(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func (s *stubIssuer) InvalidateUserSessions(_ context.Context, _ string) error { return nil }

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

type stubCheckoutCommands struct {
	amounts []int64
}

func (s *stubCheckoutCommands) CreatePaymentIntent(_ context.Context, amount int64) (string, error) {
	if amount < commands.MinimumChargeAmount {
		return "", errs.ErrAmountTooLow
	}
	s.amounts = append(s.amounts, amount)
	return "pi_test_secret", nil
}

// RouterTestSuite exercises the assembled route table: which endpoints
// exist and which gates guard them.
type RouterTestSuite struct {
	suite.Suite
	issuer     *stubIssuer
	identities *stubIdentityQueries
	checkout   *stubCheckoutCommands
	router     *gin.Engine
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	cfg := config.NewTestConfig()
	cfg.CORS = config.CORSConfig{
		AllowOrigins: []string{"http://localhost:3001"},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}

	s.issuer = &stubIssuer{sessions: make(map[string]*session.Session)}
	s.identities = &stubIdentityQueries{identities: make(map[string]*queries.ResolvedIdentity)}
	s.checkout = &stubCheckoutCommands{}

	// Handlers whose routes this suite never invokes carry nil deps.
	handlers := handler.Handlers{
		Auth:     api.NewAuthHandler(nil, s.identities, cfg),
		Company:  api.NewCompanyHandler(nil, nil),
		Address:  api.NewAddressHandler(nil, nil),
		Product:  api.NewProductHandler(nil, nil),
		Checkout: api.NewCheckoutHandler(s.checkout),
	}

	authMw := middleware.NewAuthMiddleware(s.issuer, s.identities, cfg, clock.NewMockClock(time.Now()))
	registry := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(registry)

	s.router = gin.New()
	handler.NewRouter(s.router, cfg, handlers, authMw, metrics, registry)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) seedSession(token, userID string, isAdmin, isCompanyAdmin bool) {
	s.issuer.sessions[token] = &session.Session{
		ID:        token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(720 * time.Hour),
	}
	s.identities.identities[userID] = &queries.ResolvedIdentity{
		UserID:         userID,
		Email:          userID + "@example.com",
		IsAdmin:        isAdmin,
		IsCompanyAdmin: isCompanyAdmin,
	}
}

func (s *RouterTestSuite) perform(method, path, body, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookie.SessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *RouterTestSuite) TestGuestCheckout() {
	s.Run("payment intent needs no session", func() {
		rec := s.perform(http.MethodPost, "/api/checkout/create-payment-intent", `{"amount":1099}`, "")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "pi_test_secret")
		s.Equal([]int64{1099}, s.checkout.amounts)
	})

	s.Run("amount below minimum is still validated for guests", func() {
		rec := s.perform(http.MethodPost, "/api/checkout/create-payment-intent", `{"amount":49}`, "")
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Empty(s.checkout.amounts)
	})
}

func (s *RouterTestSuite) TestRoleGateEndpoints() {
	s.Run("admin-only is 401 without a session", func() {
		rec := s.perform(http.MethodGet, "/api/auth/admin-only", "", "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("admin-only is 403 for a plain member", func() {
		s.seedSession("tok", "pleb", false, false)
		rec := s.perform(http.MethodGet, "/api/auth/admin-only", "", "tok")
		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("admin-only is 200 for an admin", func() {
		s.seedSession("tok", "boss", true, false)
		rec := s.perform(http.MethodGet, "/api/auth/admin-only", "", "tok")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("company-admin is 200 for a company admin", func() {
		s.seedSession("tok", "capo", false, true)
		rec := s.perform(http.MethodGet, "/api/auth/company-admin", "", "tok")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("company-admin is 403 for a plain member", func() {
		s.seedSession("tok", "pleb", false, false)
		rec := s.perform(http.MethodGet, "/api/auth/company-admin", "", "tok")
		s.Equal(http.StatusForbidden, rec.Code)
	})
}
