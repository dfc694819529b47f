package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHandlerMiddlewareEnforcesLimit(t *testing.T) {
	handler := Handler{
		Limiter: NewMemoryLimiter(),
		Config: Config{
			Key:    func(*http.Request) string { return "static" },
			Window: time.Minute,
			Max:    1,
		},
	}

	counted := handler.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr1 := httptest.NewRecorder()
	counted.ServeHTTP(rr1, req.Clone(req.Context()))
	if rr1.Code != http.StatusOK {
		t.Fatalf("expected first request allowed, got %d", rr1.Code)
	}

	rr2 := httptest.NewRecorder()
	counted.ServeHTTP(rr2, req.Clone(req.Context()))
	if rr2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on second request, got %d", rr2.Code)
	}
	if rr2.Header().Get("X-RateLimit-Limit") != "1" {
		t.Fatalf("unexpected limit header: %q", rr2.Header().Get("X-RateLimit-Limit"))
	}
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string, time.Duration, int) (bool, int, time.Time, error) {
	return false, 0, time.Time{}, errors.New("store unavailable")
}

func TestHandlerMiddlewareOnError(t *testing.T) {
	handler := Handler{
		Limiter: failingLimiter{},
		Config: Config{
			Key:    func(*http.Request) string { return "err" },
			Window: time.Second,
			Max:    1,
		},
	}

	called := false
	handler.OnError = func(error) { called = true }

	counted := handler.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()
	counted.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected handler to proceed on error, got %d", rr.Code)
	}
	if !called {
		t.Fatal("expected OnError callback to be invoked")
	}
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	lim := NewMemoryLimiter()
	ctx := context.Background()

	allowed, _, _, err := lim.Allow(ctx, "a", time.Minute, 1)
	if err != nil || !allowed {
		t.Fatalf("expected first event for key a allowed, got allowed=%v err=%v", allowed, err)
	}
	allowed, _, _, err = lim.Allow(ctx, "b", time.Minute, 1)
	if err != nil || !allowed {
		t.Fatalf("expected first event for key b allowed, got allowed=%v err=%v", allowed, err)
	}
	allowed, remaining, _, err := lim.Allow(ctx, "a", time.Minute, 1)
	if err != nil || allowed {
		t.Fatalf("expected second event for key a denied, got allowed=%v err=%v", allowed, err)
	}
	if remaining != 0 {
		t.Fatalf("expected zero remaining, got %d", remaining)
	}
}
