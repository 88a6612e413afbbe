// ABOUTME: Unit tests for rate limiting middleware
// ABOUTME: Tests core limiter, key extraction, and middleware factory

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/markalston/avatar-budget-analyzer/backend/models"
)

// fakeClock lets tests advance the limiter's notion of time
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(rps float64, burst int) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(rps, burst)
	rl.now = clock.Now
	return rl, clock
}

// --- RateLimiter core tests ---

func TestRateLimiter_AllowsBurst(t *testing.T) {
	rl, _ := newTestLimiter(1, 3)

	for i := 0; i < 3; i++ {
		allowed, _ := rl.Allow("test-key")
		if !allowed {
			t.Fatalf("Request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	rl, _ := newTestLimiter(1, 2)

	rl.Allow("test-key")
	rl.Allow("test-key")

	allowed, retryAfter := rl.Allow("test-key")
	if allowed {
		t.Fatal("Third request should be rejected")
	}
	if retryAfter <= 0 || retryAfter > time.Second {
		t.Errorf("Expected retryAfter in (0, 1s], got %v", retryAfter)
	}
}

func TestRateLimiter_SeparateKeys(t *testing.T) {
	rl, _ := newTestLimiter(1, 1)

	allowed, _ := rl.Allow("key-a")
	if !allowed {
		t.Fatal("First request for key-a should be allowed")
	}

	allowed, _ = rl.Allow("key-b")
	if !allowed {
		t.Fatal("First request for key-b should be allowed (separate bucket)")
	}

	allowed, _ = rl.Allow("key-a")
	if allowed {
		t.Fatal("Second request for key-a should be rejected")
	}
}

func TestRateLimiter_Refill(t *testing.T) {
	rl, clock := newTestLimiter(10, 1)

	if allowed, _ := rl.Allow("test-key"); !allowed {
		t.Fatal("First request should be allowed")
	}
	if allowed, _ := rl.Allow("test-key"); allowed {
		t.Fatal("Second request should be rejected")
	}

	// One token every 100ms
	clock.Advance(100 * time.Millisecond)

	if allowed, _ := rl.Allow("test-key"); !allowed {
		t.Fatal("Request after refill should be allowed")
	}
}

func TestRateLimiter_RejectionDoesNotConsume(t *testing.T) {
	rl, clock := newTestLimiter(10, 1)

	rl.Allow("test-key")
	for i := 0; i < 5; i++ {
		rl.Allow("test-key")
	}

	clock.Advance(100 * time.Millisecond)
	if allowed, _ := rl.Allow("test-key"); !allowed {
		t.Fatal("Rejected requests should not push back the next token")
	}
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	rl, clock := newTestLimiter(1, 1)

	rl.Allow("stale")
	clock.Advance(idleTTL + time.Minute)

	// 100 new keys trigger a sweep
	for i := 0; i < 100; i++ {
		rl.Allow("ip:" + string(rune('a'+i%26)) + string(rune('A'+i/26)))
	}

	rl.mu.Lock()
	_, exists := rl.visitors["stale"]
	rl.mu.Unlock()
	if exists {
		t.Error("Expected idle client to be swept")
	}
	if rl.Len() != 100 {
		t.Errorf("Expected 100 tracked clients, got %d", rl.Len())
	}
}

func TestRateLimiter_Concurrent(t *testing.T) {
	rl, _ := newTestLimiter(1, 50)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := rl.Allow("shared"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 50 {
		t.Errorf("Expected exactly 50 allowed, got %d", allowed)
	}
}

// --- Key extraction tests ---

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		remoteAddr string
		want       string
	}{
		{"remote addr with port", "", "192.0.2.1:1234", "ip:192.0.2.1"},
		{"remote addr without port", "", "192.0.2.1", "ip:192.0.2.1"},
		{"forwarded leftmost", "203.0.113.5, 10.0.0.1", "10.0.0.2:80", "ip:203.0.113.5"},
		{"forwarded garbage falls back", "not-an-ip", "10.0.0.2:80", "ip:10.0.0.2"},
		{"forwarded ipv6", "2001:db8::1", "10.0.0.2:80", "ip:2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

// --- Middleware tests ---

func TestRateLimit_Returns429(t *testing.T) {
	rl, _ := newTestLimiter(1, 1)
	handler := RateLimit(rl, ClientIP)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	req.RemoteAddr = "192.0.2.1:1234"

	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("First request status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("Second request status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "1" {
		t.Errorf("Retry-After = %q, want 1", rec.Header().Get("Retry-After"))
	}

	var body models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body.Code != http.StatusTooManyRequests {
		t.Errorf("Body code = %d, want 429", body.Code)
	}
}

func TestRateLimit_DisabledWhenNil(t *testing.T) {
	called := 0
	handler := RateLimit(nil, ClientIP)(func(w http.ResponseWriter, r *http.Request) {
		called++
	})

	for i := 0; i < 10; i++ {
		handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}
	if called != 10 {
		t.Errorf("Expected 10 calls with limiter disabled, got %d", called)
	}
}

func TestRateLimit_EmptyKeyPassesThrough(t *testing.T) {
	rl, _ := newTestLimiter(1, 1)
	called := 0
	handler := RateLimit(rl, func(*http.Request) string { return "" })(func(w http.ResponseWriter, r *http.Request) {
		called++
	})

	for i := 0; i < 3; i++ {
		handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}
	if called != 3 {
		t.Errorf("Expected 3 calls for unidentifiable client, got %d", called)
	}
}
