// Package middleware holds the HTTP middleware chain: per-IP rate
// limiting, request IDs, request logging, and CORS. Middleware wraps
// handlers from the outside; the handlers themselves stay free of
// transport-hardening concerns.
package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/aanand-mishra/mortgage-api/internal/utils/response"
)

const (
	// staleBucketAge is how long a client can stay idle before its
	// bucket is discarded by the background sweep.
	staleBucketAge = 1 * time.Hour
	sweepInterval  = 30 * time.Minute
)

// bucket tracks one client's remaining request budget within the
// current refill window.
type bucket struct {
	tokens     int
	lastRefill time.Time
}

// RateLimiter is a token-bucket limiter keyed by client IP: each client
// may make `capacity` requests per `window`, after which requests are
// rejected until the window rolls over. A background goroutine sweeps
// buckets for clients that have gone quiet, so the map stays bounded.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*bucket

	capacity int
	window   time.Duration
	stop     chan struct{}
}

// NewRateLimiter starts a limiter allowing capacity requests per window
// per client IP. Call Stop on shutdown to end the sweep goroutine.
func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients:  make(map[string]*bucket),
		capacity: capacity,
		window:   window,
		stop:     make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// Allow reports whether the client identified by ip still has budget in
// the current window, consuming one token if so.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	b, ok := rl.clients[ip]
	if !ok {
		rl.clients[ip] = &bucket{tokens: rl.capacity - 1, lastRefill: now}
		return true
	}

	if now.Sub(b.lastRefill) >= rl.window {
		b.tokens = rl.capacity
		b.lastRefill = now
	}

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// Stop ends the background sweep goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stop:
			return
		}
	}
}

func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for ip, b := range rl.clients {
		if now.Sub(b.lastRefill) > staleBucketAge {
			delete(rl.clients, ip)
		}
	}
}

// RateLimit rejects requests from clients that exhausted their budget
// with 429 and the standard error envelope.
func RateLimit(limiter *RateLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			// RemoteAddr without a port (some proxies, tests); use it as-is.
			ip = r.RemoteAddr
		}

		if !limiter.Allow(ip) {
			response.WriteJSON(w, http.StatusTooManyRequests,
				response.GeneralError("Too many requests, slow down"))
			return
		}

		next.ServeHTTP(w, r)
	})
}
