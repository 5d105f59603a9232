package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterRefills(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryLimiter()
	m.now = func() time.Time { return now }
	ctx := context.Background()

	for want := 2; want >= 0; want-- {
		d, err := m.Allow(ctx, "a", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.Equal(t, want, d.Remaining)
	}
	d, _ := m.Allow(ctx, "a", 3, time.Minute)
	assert.False(t, d.Allowed)
	assert.InDelta(t, float64(20*time.Second), float64(d.RetryAfter), float64(time.Millisecond))

	d, _ = m.Allow(ctx, "b", 3, time.Minute)
	assert.True(t, d.Allowed)

	// one token comes back every window/limit
	now = now.Add(21 * time.Second)
	d, _ = m.Allow(ctx, "a", 3, time.Minute)
	assert.True(t, d.Allowed)
	d, _ = m.Allow(ctx, "a", 3, time.Minute)
	assert.False(t, d.Allowed)
}

func TestMemoryLimiterPrunesIdleKeys(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryLimiter()
	m.now = func() time.Time { return now }
	ctx := context.Background()

	_, _ = m.Allow(ctx, "a", 1, time.Minute)
	_, _ = m.Allow(ctx, "b", 1, time.Minute)
	require.Len(t, m.entries, 2)

	now = now.Add(time.Minute)
	d, _ := m.Allow(ctx, "a", 1, time.Minute)
	assert.True(t, d.Allowed)
	assert.NotContains(t, m.entries, "b")
}

func TestRedisLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedisLimiter(client)
	ctx := context.Background()

	d, err := l.Allow(ctx, "k", 2, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, Decision{Allowed: true, Remaining: 1}, d)
	assert.Equal(t, time.Minute, mr.TTL("k"))

	d, err = l.Allow(ctx, "k", 2, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, Decision{Allowed: true, Remaining: 0}, d)

	d, err = l.Allow(ctx, "k", 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, time.Minute, d.RetryAfter)

	mr.FastForward(time.Minute)
	d, err = l.Allow(ctx, "k", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string, int, time.Duration) (Decision, error) {
	return Decision{}, errors.New("down")
}

func limited(limiter Limiter, requests int) *gin.Engine {
	r := gin.New()
	r.POST("/login", RateLimit(limiter, RateLimitConfig{Requests: requests}), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func post(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	r := limited(NewMemoryLimiter(), 2)

	w := post(r, "10.0.0.1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusOK, post(r, "10.0.0.1").Code)

	w = post(r, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "30", w.Header().Get("Retry-After"))

	// other clients keep their own budget
	assert.Equal(t, http.StatusOK, post(r, "10.0.0.2").Code)
}

func TestRateLimitFailsOpen(t *testing.T) {
	r := limited(failingLimiter{}, 1)
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, post(r, "10.0.0.1").Code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	r := limited(NewMemoryLimiter(), 0)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, post(r, "10.0.0.1").Code)
	}
}
