package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter_EnforcesBudget(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first request should pass")
	}
	if !rl.Allow("10.0.0.1") {
		t.Fatal("second request should pass")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("third request should be rejected")
	}
}

func TestRateLimiter_ClientsAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first client should pass")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("second client has its own budget")
	}
}

func TestRateLimiter_WindowRefillsBudget(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)
	defer rl.Stop()

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first request should pass")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("budget should be spent")
	}

	time.Sleep(15 * time.Millisecond)

	if !rl.Allow("10.0.0.1") {
		t.Error("budget should refill after the window")
	}
}

func TestRateLimit_Returns429WhenExhausted(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	handler := RateLimit(rl, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	request := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/mortgage/calculate", nil)
		req.RemoteAddr = "10.0.0.1:54321"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	if code := request(); code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", code)
	}
	if code := request(); code != http.StatusTooManyRequests {
		t.Errorf("second request: expected 429, got %d", code)
	}
}
