package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/ohana-chilli/storefront/internal/config"
)

const (
	rateLimitWindow   = time.Minute
	visitorIdleExpiry = 3 * time.Minute
	visitorSweepSize  = 1024
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter counts requests per client IP in Redis with a fixed one-minute
// window. While Redis is unreachable it falls back to an in-process token
// bucket per IP.
type RateLimiter struct {
	client *redis.Client
	limit  int
	burst  int
	logger logrus.FieldLogger

	degraded atomic.Bool
	mu       sync.Mutex
	visitors map[string]*visitor
}

// NewRateLimiter creates a limiter allowing cfg.RateLimitPerMinute requests
func NewRateLimiter(cfg config.SecurityConfig, client *redis.Client, logger logrus.FieldLogger) *RateLimiter {
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		client:   client,
		limit:    cfg.RateLimitPerMinute,
		burst:    burst,
		logger:   logger,
		visitors: make(map[string]*visitor),
	}
}

// RateLimit implements rate limiting using Redis
func RateLimit(cfg config.SecurityConfig, client *redis.Client, logger logrus.FieldLogger) gin.HandlerFunc {
	return NewRateLimiter(cfg, client, logger).Middleware()
}

// Middleware returns the gin handler
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.limit <= 0 {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		allowed, remaining, err := l.allowRedis(c.Request.Context(), clientIP)
		if err != nil {
			if !l.degraded.Swap(true) {
				l.logger.WithError(err).Warn("Rate limit store unavailable, limiting in process")
			}
			allowed, remaining = l.allowLocal(clientIP, time.Now())
		} else if l.degraded.Swap(false) {
			l.logger.Info("Rate limit store recovered")
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(rateLimitWindow.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": int(rateLimitWindow.Seconds()),
			})
			return
		}

		c.Next()
	}
}

func (l *RateLimiter) allowRedis(ctx context.Context, clientIP string) (bool, int, error) {
	if l.client == nil {
		return false, 0, errors.New("no redis client")
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	// INCR and EXPIRE NX run in one transaction so a counter never outlives
	// its window, and a key that lost its TTL gets one on the next hit.
	key := fmt.Sprintf("rate_limit:%s", clientIP)
	var incr *redis.IntCmd
	if _, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, rateLimitWindow)
		return nil
	}); err != nil {
		return false, 0, err
	}
	count := incr.Val()

	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return count <= int64(l.limit), remaining, nil
}

func (l *RateLimiter) allowLocal(clientIP string, now time.Time) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.visitors) >= visitorSweepSize {
		for ip, v := range l.visitors {
			if now.Sub(v.lastSeen) > visitorIdleExpiry {
				delete(l.visitors, ip)
			}
		}
	}

	v, ok := l.visitors[clientIP]
	if !ok {
		every := rateLimitWindow / time.Duration(l.limit)
		v = &visitor{limiter: rate.NewLimiter(rate.Every(every), l.burst)}
		l.visitors[clientIP] = v
	}
	v.lastSeen = now

	allowed := v.limiter.AllowN(now, 1)
	return allowed, int(v.limiter.TokensAt(now))
}
