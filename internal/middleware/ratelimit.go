package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Limiter hands out one token bucket per client IP. Buckets idle for
// longer than ttl are dropped on the next sweep.
type Limiter struct {
	limit rate.Limit
	burst int
	ttl   time.Duration

	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLimiter(limit rate.Limit, burst int) *Limiter {
	return &Limiter{
		limit:     limit,
		burst:     burst,
		ttl:       10 * time.Minute,
		clients:   make(map[string]*client),
		lastSweep: time.Now(),
	}
}

func (l *Limiter) Allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	if now.Sub(l.lastSweep) > l.ttl {
		for k, cl := range l.clients {
			if now.Sub(cl.lastSeen) > l.ttl {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}
	cl, ok := l.clients[key]
	if !ok {
		cl = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = cl
	}
	cl.lastSeen = now
	l.mu.Unlock()

	return cl.limiter.AllowN(now, 1)
}

// RateLimit rejects requests over the per-IP budget with 429.
func RateLimit(l *Limiter) gin.HandlerFunc {
	// Seconds until one token is back in the bucket.
	retryAfter := "1"
	if l.limit > 0 && l.limit != rate.Inf {
		retryAfter = strconv.Itoa(int(math.Ceil(1 / float64(l.limit))))
	}

	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
				"code":  "RATE_LIMITED",
			})
			return
		}
		c.Next()
	}
}
