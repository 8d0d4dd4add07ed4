package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anonto42/idea-board/backend/internal/logging"
	"github.com/anonto42/idea-board/backend/pkg/config"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveThrough(t *testing.T, mw echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.POST("/api/ideas", func(c echo.Context) error { return c.NoContent(http.StatusCreated) }, mw)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ideas", nil))
	return rec
}

func TestRateLimit_DisabledPassesThrough(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: false, Capacity: 1}
	rec := serveThrough(t, RateLimit(cfg, nil, logging.Nop()))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestRateLimit_NoClientPassesThrough(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Capacity: 1}
	rec := serveThrough(t, RateLimit(cfg, nil, logging.Nop()))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRateLimit_RedisDownFailsOpen(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := config.RateLimitConfig{Enabled: true, Capacity: 1, RefillTokens: 1, RefillInterval: time.Second, TTL: time.Minute, Prefix: "test"}
	rec := serveThrough(t, RateLimit(cfg, rdb, logging.Nop()))
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/ideas/1/upvote", nil)
	req.RemoteAddr = "10.0.0.7:5555"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/ideas/:id/upvote")

	assert.Equal(t, "rl:ip:10.0.0.7:POST /api/ideas/:id/upvote", rateKey("rl", c))

	c.Set(UserIDKey, "user-9")
	assert.Equal(t, "rl:user:user-9:POST /api/ideas/:id/upvote", rateKey("rl", c))
}
