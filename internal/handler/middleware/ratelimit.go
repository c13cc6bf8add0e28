package middleware

import (
	"net/http"
	"sync"
	"time"

	"cedra-backend/internal/handler/httperr"
	"cedra-backend/internal/pkg/config"
	"cedra-backend/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// LoginRateLimiter throttles credential endpoints per client IP to slow
// online password guessing. Idle entries are evicted lazily.
type LoginRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const visitorTTL = 10 * time.Minute

func NewLoginRateLimiter(cfg config.RateLimitConfig) *LoginRateLimiter {
	return &LoginRateLimiter{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(cfg.LoginRPS),
		burst:    cfg.LoginBurst,
	}
}

func (l *LoginRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			httperr.AbortWithError(c, http.StatusTooManyRequests,
				errs.New("login rate limit exceeded"), "Too many attempts, retry later", nil)
			return
		}
		c.Next()
	}
}

func (l *LoginRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now

	for key, existing := range l.visitors {
		if now.Sub(existing.lastSeen) > visitorTTL {
			delete(l.visitors, key)
		}
	}

	return v.limiter.Allow()
}
