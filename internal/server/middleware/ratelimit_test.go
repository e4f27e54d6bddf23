package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobmanager/internal/store"
)

func limitedRequest(user *store.User) *http.Request {
	ctx := NewContextWithUser(context.Background(), user)
	return httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
}

func TestRateLimitMiddleware_NoUserInContext(t *testing.T) {
	middleware := RateLimitMiddleware(100, 200)

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called without a user in context")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("got status %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestRateLimitMiddleware_AllowsRequestUnderLimit(t *testing.T) {
	middleware := RateLimitMiddleware(100, 200)

	handlerCalled := false
	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, limitedRequest(activeUser()))

	if rr.Code != http.StatusOK {
		t.Errorf("got status %d, want %d", rr.Code, http.StatusOK)
	}
	if !handlerCalled {
		t.Error("expected handler to be called")
	}
}

func TestRateLimitMiddleware_RejectsRequestOverLimit(t *testing.T) {
	middleware := RateLimitMiddleware(1, 1)

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	user := activeUser()

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, limitedRequest(user))
	if rr.Code != http.StatusOK {
		t.Fatalf("first request: got status %d, want %d", rr.Code, http.StatusOK)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, limitedRequest(user))
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("second request: got status %d, want %d", rr.Code, http.StatusTooManyRequests)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
}

func TestRateLimitMiddleware_ZeroRateIsUnlimited(t *testing.T) {
	middleware := RateLimitMiddleware(0, 0)

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	user := activeUser()
	for i := 0; i < 10; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, limitedRequest(user))
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: got status %d, want %d", i, rr.Code, http.StatusOK)
		}
	}
}

func TestRateLimitMiddleware_SeparateUsersSeparateLimits(t *testing.T) {
	middleware := RateLimitMiddleware(1, 1)

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := activeUser()
	second := activeUser()

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, limitedRequest(first))
	if rr.Code != http.StatusOK {
		t.Fatalf("first user: got status %d, want %d", rr.Code, http.StatusOK)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, limitedRequest(second))
	if rr.Code != http.StatusOK {
		t.Errorf("second user should have an independent limiter, got status %d", rr.Code)
	}
}
