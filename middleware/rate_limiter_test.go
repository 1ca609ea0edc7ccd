package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func rateLimitedEcho(limiter *RateLimiter) *echo.Echo {
	e := echo.New()
	e.Use(limiter.RateLimit())
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.POST("/api/admin/login", ok)
	e.GET("/api/admin/banners", ok)
	e.GET("/api/admin/files/:id/preview", ok)
	return e
}

func call(e *echo.Echo, method, path, ip string) int {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter()
	limiter.now = func() time.Time { return now }
	e := rateLimitedEcho(limiter)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, call(e, http.MethodPost, "/api/admin/login", "10.0.0.1"))
	}
	assert.Equal(t, http.StatusTooManyRequests, call(e, http.MethodPost, "/api/admin/login", "10.0.0.1"))

	// the whole IP is blocked, other clients are not
	assert.Equal(t, http.StatusTooManyRequests, call(e, http.MethodGet, "/api/admin/banners", "10.0.0.1"))
	assert.Equal(t, http.StatusOK, call(e, http.MethodPost, "/api/admin/login", "10.0.0.2"))

	now = now.Add(limiter.blockDuration + time.Second)
	assert.Equal(t, http.StatusOK, call(e, http.MethodGet, "/api/admin/banners", "10.0.0.1"))
}

func TestRateLimiter_PreviewBucketIsSeparate(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter()
	limiter.now = func() time.Time { return now }
	e := rateLimitedEcho(limiter)

	// a gallery of previews does not use up the default budget
	for i := 0; i < 50; i++ {
		assert.Equal(t, http.StatusOK, call(e, http.MethodGet, "/api/admin/files/abc/preview", "10.0.0.3"))
	}
	assert.Equal(t, http.StatusOK, call(e, http.MethodGet, "/api/admin/banners", "10.0.0.3"))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter()
	limiter.now = func() time.Time { return now }
	limiter.blockedIPs["10.0.0.4"] = now.Add(time.Minute)
	limiter.blockedIPs["10.0.0.5"] = now.Add(-time.Minute)

	limiter.cleanup()
	assert.Contains(t, limiter.blockedIPs, "10.0.0.4")
	assert.NotContains(t, limiter.blockedIPs, "10.0.0.5")
}
