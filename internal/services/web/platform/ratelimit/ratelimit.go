// Package ratelimit keeps per-client token buckets for abuse-prone routes.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// resetEvery bounds how long idle client buckets are retained.
const resetEvery = time.Hour

// Keyed hands out one limiter per client key.
type Keyed struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu        sync.Mutex
	limiters  map[string]*rate.Limiter
	lastReset time.Time
}

// New returns a keyed limiter allowing every events per key with burst.
func New(every time.Duration, burst int) *Keyed {
	if burst < 1 {
		burst = 1
	}
	return &Keyed{
		limit:    rate.Every(every),
		burst:    burst,
		now:      time.Now,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether key may proceed now. A nil Keyed allows everything.
func (k *Keyed) Allow(key string) bool {
	if k == nil {
		return true
	}
	return k.limiter(key).AllowN(k.now(), 1)
}

func (k *Keyed) limiter(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	if k.lastReset.IsZero() {
		k.lastReset = now
	}
	if now.Sub(k.lastReset) > resetEvery {
		k.limiters = make(map[string]*rate.Limiter)
		k.lastReset = now
	}
	limiter, ok := k.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(k.limit, k.burst)
		k.limiters[key] = limiter
	}
	return limiter
}

// ClientIP extracts the client address. Forwarding headers are honored only
// when trustProxy is set.
func ClientIP(r *http.Request, trustProxy bool) string {
	if r == nil {
		return ""
	}
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
			return xri
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
