package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/partyhub/party-panel/logger"
	"github.com/partyhub/party-panel/web/entity"
	"github.com/partyhub/party-panel/web/locale"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Decision is a Limiter's answer for one hit.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter decides whether one more hit of key fits into limit hits per
// window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (Decision, error)
}

// RedisLimiter counts hits in fixed windows kept in redis, so that every
// panel instance shares them.
type RedisLimiter struct {
	client *redis.Client
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{client: client}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (Decision, error) {
	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return Decision{}, err
	}
	if n == 1 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			return Decision{}, err
		}
	}
	if n <= int64(limit) {
		return Decision{Allowed: true, Remaining: limit - int(n)}, nil
	}
	ttl, err := r.client.TTL(ctx, key).Result()
	if err != nil || ttl <= 0 {
		ttl = window
	}
	return Decision{RetryAfter: ttl}, nil
}

type memoryEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter is the single-instance Limiter: a token bucket per key that
// holds limit tokens and refills them over window.
type MemoryLimiter struct {
	mu        sync.Mutex
	entries   map[string]*memoryEntry
	lastPrune time.Time
	now       func() time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{entries: make(map[string]*memoryEntry), now: time.Now}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (Decision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.prune(now, window)

	e, ok := m.entries[key]
	if !ok {
		e = &memoryEntry{limiter: rate.NewLimiter(rate.Every(window/time.Duration(limit)), limit)}
		m.entries[key] = e
	}
	e.lastSeen = now

	if e.limiter.AllowN(now, 1) {
		return Decision{Allowed: true, Remaining: int(e.limiter.TokensAt(now))}, nil
	}
	r := e.limiter.ReserveN(now, 1)
	delay := r.DelayFrom(now)
	r.CancelAt(now)
	return Decision{RetryAfter: delay}, nil
}

// prune drops buckets idle for a whole window; they are full again by then.
func (m *MemoryLimiter) prune(now time.Time, window time.Duration) {
	if now.Sub(m.lastPrune) < window {
		return
	}
	m.lastPrune = now
	for k, e := range m.entries {
		if now.Sub(e.lastSeen) >= window {
			delete(m.entries, k)
		}
	}
}

// RateLimitConfig configures RateLimit.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	KeyFunc  func(c *gin.Context) string
}

// RateLimit refuses a client that exceeds Requests within Window on the
// routes it guards. A limiter failure lets the request through.
func RateLimit(limiter Limiter, config RateLimitConfig) gin.HandlerFunc {
	if config.Window <= 0 {
		config.Window = time.Minute
	}
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	return func(c *gin.Context) {
		if config.Requests <= 0 {
			c.Next()
			return
		}

		key := config.KeyFunc(c)
		rateLimitKey := "ratelimit:" + key + ":" + c.FullPath()
		d, err := limiter.Allow(c.Request.Context(), rateLimitKey, config.Requests, config.Window)
		if err != nil {
			logger.Warning("Rate limit check failed:", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(d.Remaining, 0)))

		if !d.Allowed {
			logger.Warningf("Rate limit exceeded for %s on %s", key, c.FullPath())
			retry := int(math.Ceil(d.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(max(retry, 1)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, entity.Msg{
				Success: false,
				Msg:     locale.T(c, "common.tooManyRequests"),
			})
			return
		}
		c.Next()
	}
}
