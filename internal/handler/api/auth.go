package api

import (
	"errors"
	"net/http"

	reqdto "cedra-backend/internal/handler/dto/request"
	resdto "cedra-backend/internal/handler/dto/response"
	"cedra-backend/internal/handler/httperr"
	"cedra-backend/internal/handler/middleware"
	"cedra-backend/internal/pkg/config"
	"cedra-backend/internal/pkg/cookie"
	"cedra-backend/internal/pkg/errs"
	"cedra-backend/internal/usecase/commands"
	"cedra-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	cmds     commands.AuthCommands
	identity queries.IdentityQueries
	cfg      config.Config
}

func NewAuthHandler(cmds commands.AuthCommands, identity queries.IdentityQueries, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		cmds:     cmds,
		identity: identity,
		cfg:      cfg,
	}
}

// @Summary Sign up
// @Description Register a local account and open a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.SignupRequest true "Signup request"
// @Success 201 {object} resdto.AuthResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req reqdto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	name, credentials, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	sess, err := h.cmds.Signup(c.Request.Context(), name, credentials)
	if err != nil {
		if errors.Is(err, errs.ErrEmailTaken) {
			httperr.AbortWithError(c, http.StatusConflict, err, "Email already registered", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	identity, err := h.identity.Resolve(c.Request.Context(), sess.UserID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	cookie.SetSessionCookie(c, h.cfg.Cookie, sess.ID, sess.ExpiresAt)
	c.JSON(http.StatusCreated, resdto.AuthResponse{User: identity})
}

// @Summary Log in
// @Description Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.AuthResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	credentials, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	sess, err := h.cmds.Login(c.Request.Context(), credentials)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrAccountSuspended):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Account suspended", nil)
		case errors.Is(err, errs.ErrInvalidCredentials):
			// Identical message for unknown email and bad password.
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	identity, err := h.identity.Resolve(c.Request.Context(), sess.UserID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	cookie.SetSessionCookie(c, h.cfg.Cookie, sess.ID, sess.ExpiresAt)
	c.JSON(http.StatusOK, resdto.AuthResponse{User: identity})
}

// @Summary Log out
// @Description Invalidate the current session and blank the cookie
// @Tags auth
// @Success 200 {object} map[string]bool
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// Best-effort: an absent or stale token still results in a blank cookie
	// and a 200.
	h.cmds.Logout(c.Request.Context(), cookie.GetSessionToken(c))
	cookie.ClearSessionCookie(c, h.cfg.Cookie)
	c.JSON(http.StatusOK, gin.H{"loggedOut": true})
}

// @Summary Current identity
// @Description Return the caller's resolved identity
// @Tags auth
// @Produce json
// @Success 200 {object} queries.ResolvedIdentity
// @Failure 401 {object} httperr.Response
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("no identity"), "Not authenticated", nil)
		return
	}
	c.JSON(http.StatusOK, identity)
}

// @Summary Admin gate check
// @Description Succeed only when the caller passes the global-admin gate
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/auth/admin-only [get]
func (h *AuthHandler) AdminOnly(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// @Summary Company-admin gate check
// @Description Succeed only when the caller passes the company-admin gate
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/auth/company-admin [get]
func (h *AuthHandler) CompanyAdminOnly(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// @Summary Delete account
// @Description Remove the caller's account, memberships and sessions
// @Tags auth
// @Success 204 "No Content"
// @Failure 401 {object} httperr.Response
// @Router /api/auth/me [delete]
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("no identity"), "Not authenticated", nil)
		return
	}
	if err := h.cmds.DeleteAccount(c.Request.Context(), identity.UserID); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	cookie.ClearSessionCookie(c, h.cfg.Cookie)
	c.Status(http.StatusNoContent)
}
