package cookie

import (
	"net/http"
	"time"

	"cedra-backend/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "auth_session"

// SetSessionCookie sends the session token with HttpOnly and the configured
// Secure/SameSite attributes.
func SetSessionCookie(c *gin.Context, cfg config.CookieConfig, token string, expiresAt time.Time) {
	c.SetSameSite(getSameSite(cfg.SameSite))

	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}

	c.SetCookie(
		SessionCookieName,
		token,
		maxAge,
		"/",
		cfg.Domain,
		cfg.Secure,
		true, // HttpOnly
	)
}

// ClearSessionCookie sends a blank, immediately expiring cookie to purge
// client state.
func ClearSessionCookie(c *gin.Context, cfg config.CookieConfig) {
	c.SetSameSite(getSameSite(cfg.SameSite))

	c.SetCookie(
		SessionCookieName,
		"",
		-1,
		"/",
		cfg.Domain,
		cfg.Secure,
		true,
	)
}

// GetSessionToken returns the session token from the request cookie, or an
// empty string when absent.
func GetSessionToken(c *gin.Context) string {
	token, _ := c.Cookie(SessionCookieName)
	return token
}

func getSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "Lax":
		return http.SameSiteLaxMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
