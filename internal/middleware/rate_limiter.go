package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/petween/backend/pkg/errors"
	"github.com/petween/backend/pkg/logger"
)

const cleanupInterval = 5 * time.Minute

// RateLimiter implements a simple in-memory fixed-window rate limiter
// keyed by client IP.
type RateLimiter struct {
	ipLimits map[string]*ipLimit
	mu       sync.RWMutex

	ipMaxRequests int
	window        time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

type ipLimit struct {
	requests  int
	resetTime time.Time
}

// NewRateLimiter creates a new rate limiter. Stop must be called to end
// its cleanup goroutine.
func NewRateLimiter(ipMaxRequests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		ipLimits:      make(map[string]*ipLimit),
		ipMaxRequests: ipMaxRequests,
		window:        window,
		stop:          make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// CheckIPLimit counts a request from ip and reports whether it is allowed.
func (rl *RateLimiter) CheckIPLimit(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	limit, exists := rl.ipLimits[ip]
	if !exists || now.After(limit.resetTime) {
		rl.ipLimits[ip] = &ipLimit{
			requests:  1,
			resetTime: now.Add(rl.window),
		}
		return true
	}

	if limit.requests >= rl.ipMaxRequests {
		return false
	}

	limit.requests++
	return true
}

// GetIPRemaining returns remaining requests for IP
func (rl *RateLimiter) GetIPRemaining(ip string) int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	limit, exists := rl.ipLimits[ip]
	if !exists || time.Now().After(limit.resetTime) {
		return rl.ipMaxRequests
	}

	remaining := rl.ipMaxRequests - limit.requests
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Middleware rejects requests over the limit with 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.CheckIPLimit(ip) {
			logger.Warn("Rate limit exceeded", "ip", ip, "path", r.URL.Path)
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			writeError(w, http.StatusTooManyRequests, errors.ErrCodeRateLimitExceeded, "too many requests")
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(rl.GetIPRemaining(ip)))
		next.ServeHTTP(w, r)
	})
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// cleanup removes expired entries
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.removeExpired(time.Now())
		}
	}
}

func (rl *RateLimiter) removeExpired(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, limit := range rl.ipLimits {
		if now.After(limit.resetTime) {
			delete(rl.ipLimits, ip)
		}
	}
}

// Reset clears all rate limits (useful for testing)
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.ipLimits = make(map[string]*ipLimit)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
