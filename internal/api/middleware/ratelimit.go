package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// LoginLimiter throttles credential-guessing by IP. The zero limits make a
// sensible default for form posts: a short burst, then one attempt per
// couple of seconds.
type LoginLimiter struct {
	mu       sync.Mutex
	visitors map[string]*rate.Limiter
	r        rate.Limit
	burst    int
}

func NewLoginLimiter(r rate.Limit, burst int) *LoginLimiter {
	if r <= 0 {
		r = rate.Limit(0.5)
	}
	if burst <= 0 {
		burst = 5
	}
	return &LoginLimiter{visitors: make(map[string]*rate.Limiter), r: r, burst: burst}
}

func (l *LoginLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	// crude bound on the map; resets every visitor's budget when hit
	if len(l.visitors) > 10000 {
		l.visitors = make(map[string]*rate.Limiter)
	}
	lim, ok := l.visitors[ip]
	if !ok {
		lim = rate.NewLimiter(l.r, l.burst)
		l.visitors[ip] = lim
	}
	return lim
}

// Middleware rejects over-limit POSTs with 429. GETs pass through so the
// form itself stays reachable.
func (l *LoginLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodPost && !l.limiter(c.ClientIP()).Allow() {
			c.String(http.StatusTooManyRequests, "Too many attempts, slow down.")
			c.Abort()
			return
		}
		c.Next()
	}
}
