// middleware/rate_limiter.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/HSouheill/barrim_admin/models"
)

type endpointLimit struct {
	limit rate.Limit
	burst int
}

// RateLimiter throttles clients per IP. Routes with their own limit get a
// separate bucket per IP so they do not share the default budget.
type RateLimiter struct {
	limiters       map[string]*rate.Limiter
	blockedIPs     map[string]time.Time
	mu             sync.Mutex
	defaultLimit   endpointLimit
	blockDuration  time.Duration
	endpointLimits map[string]endpointLimit
	now            func() time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		limiters:      make(map[string]*rate.Limiter),
		blockedIPs:    make(map[string]time.Time),
		defaultLimit:  endpointLimit{limit: rate.Every(100 * time.Millisecond), burst: 20},
		blockDuration: 5 * time.Minute,
		endpointLimits: map[string]endpointLimit{
			// Login is kept strict to slow down brute force attempts
			"/api/admin/login": {limit: rate.Every(2 * time.Second), burst: 5},
			// File previews are loaded in bursts by the attachment viewer
			"/api/admin/files/:id/preview": {limit: rate.Every(20 * time.Millisecond), burst: 100},
		},
		now: time.Now,
	}
}

// StartCleanup drops expired blocks periodically until done is closed
func (r *RateLimiter) StartCleanup(interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			r.cleanup()
		}
	}
}

func (r *RateLimiter) cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for ip, blockUntil := range r.blockedIPs {
		if now.After(blockUntil) {
			delete(r.blockedIPs, ip)
		}
	}
}

func (r *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			path := c.Path()

			if retryAfter, blocked := r.blocked(ip); blocked {
				return c.JSON(http.StatusTooManyRequests, models.Response{
					Status:  http.StatusTooManyRequests,
					Message: "IP address blocked due to too many requests",
					Data:    map[string]string{"retryAfter": retryAfter.Format(time.RFC3339)},
				})
			}

			if !r.allow(ip, path) {
				logrus.WithFields(logrus.Fields{"ip": ip, "path": path}).Warn("Rate limit exceeded")
				return c.JSON(http.StatusTooManyRequests, models.Response{
					Status:  http.StatusTooManyRequests,
					Message: "Too many requests",
					Data:    map[string]string{"retryAfter": r.now().Add(r.blockDuration).Format(time.RFC3339)},
				})
			}

			return next(c)
		}
	}
}

func (r *RateLimiter) blocked(ip string) (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	blockUntil, ok := r.blockedIPs[ip]
	if !ok {
		return time.Time{}, false
	}
	if r.now().Before(blockUntil) {
		return blockUntil, true
	}
	delete(r.blockedIPs, ip)
	return time.Time{}, false
}

func (r *RateLimiter) allow(ip, path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := ip
	limit := r.defaultLimit
	if l, ok := r.endpointLimits[path]; ok {
		key = ip + " " + path
		limit = l
	}

	limiter, ok := r.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(limit.limit, limit.burst)
		r.limiters[key] = limiter
	}
	if limiter.AllowN(r.now(), 1) {
		return true
	}

	r.blockedIPs[ip] = r.now().Add(r.blockDuration)
	delete(r.limiters, key)
	return false
}
