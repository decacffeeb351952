package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	h "weddingplanner/internal/delivery/http/helpers"
)

// RateLimiter reports whether a request identified by key is allowed. The
// in-process implementation below suffices for a single instance; a
// multi-instance deployment should swap in a shared counting store behind
// the same interface.
type RateLimiter interface {
	Allow(key string) bool
}

type window struct {
	count    int
	resetsAt time.Time
}

// FixedWindowLimiter counts requests per key in fixed windows. The window
// boundary is set on the first request of each window; once max requests have
// been counted, further requests are denied until the window resets.
type FixedWindowLimiter struct {
	mu      sync.Mutex
	max     int
	period  time.Duration
	windows map[string]*window
	now     func() time.Time
}

// NewFixedWindowLimiter returns a limiter allowing max requests per key per period.
func NewFixedWindowLimiter(max int, period time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		max:     max,
		period:  period,
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

func (l *FixedWindowLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.After(w.resetsAt) {
		// Opportunistically drop expired windows so the map doesn't grow
		// unbounded across a long process lifetime.
		if len(l.windows) > 1024 {
			for k, v := range l.windows {
				if now.After(v.resetsAt) {
					delete(l.windows, k)
				}
			}
		}
		l.windows[key] = &window{count: 1, resetsAt: now.Add(l.period)}
		return true
	}
	if w.count >= l.max {
		return false
	}
	w.count++
	return true
}

// RateLimit returns a wrapper that rejects requests exceeding the limiter
// with 429 before the handler runs. Keys are keyPrefix + client IP.
func RateLimit(limiter RateLimiter, keyPrefix string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(keyPrefix + clientIP(r)) {
				h.WriteJSONError(w, http.StatusTooManyRequests, h.ErrCodeRateLimited,
					"too many requests, please try again in a minute")
				return
			}
			next(w, r)
		}
	}
}

// clientIP prefers the first X-Forwarded-For hop (set by the reverse proxy),
// falling back to the connection's remote address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			xff = xff[:i]
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
