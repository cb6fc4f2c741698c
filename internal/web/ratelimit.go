package web

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"xnews/internal/metrics"
)

const (
	limiterIdleTTL   = 10 * time.Minute
	limiterSweepSize = 1024
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// SubmitLimiter is a per-IP token bucket for form POSTs.
type SubmitLimiter struct {
	rate  rate.Limit
	burst int

	mu      sync.Mutex
	clients map[string]*clientLimiter
}

func NewSubmitLimiter(perSecond float64, burst int) *SubmitLimiter {
	return &SubmitLimiter{
		rate:    rate.Limit(perSecond),
		burst:   burst,
		clients: make(map[string]*clientLimiter),
	}
}

func (l *SubmitLimiter) Allow(ip string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.clients) >= limiterSweepSize {
		for k, cl := range l.clients {
			if now.Sub(cl.lastSeen) > limiterIdleTTL {
				delete(l.clients, k)
			}
		}
	}

	cl, ok := l.clients[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.clients[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// Middleware only throttles POST; page views pass through.
func (l *SubmitLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		if !l.Allow(c.ClientIP()) {
			form := strings.TrimPrefix(c.Request.URL.Path, "/create-")
			metrics.RecordFormRejection(form, "throttled")
			c.String(http.StatusTooManyRequests, "too many submissions")
			c.Abort()
			return
		}
		c.Next()
	}
}
