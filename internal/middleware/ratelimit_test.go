package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitMiddlewareDefaults(t *testing.T) {
	mw := NewRateLimitMiddleware(-1, 0)
	assert.Equal(t, 100, mw.generalRPM)
	assert.Equal(t, 10, mw.authRPM)
}

func TestRateLimitMiddlewareLimitedAuth(t *testing.T) {
	// generous general budget, a single auth token per minute
	mw := NewRateLimitMiddleware(1000, 1)
	handler := mw.Handler(okHandler())

	req1 := httptest.NewRequest("POST", "/api/v1/auth/login", nil)
	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, req1)
	assert.Equal(t, http.StatusOK, rec1.Code)

	// Burst is 1, so the immediate second attempt must be rejected.
	req2 := httptest.NewRequest("POST", "/api/v1/auth/login", nil)
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req2)
	assert.Equal(t, http.StatusTooManyRequests, rec2.Code)
	assert.Equal(t, "60", rec2.Header().Get("Retry-After"))
}

func TestRateLimitMiddlewareGeneralBudgetSeparateFromAuth(t *testing.T) {
	mw := NewRateLimitMiddleware(1000, 1)
	handler := mw.Handler(okHandler())

	// Exhaust the auth budget.
	req := httptest.NewRequest("POST", "/api/v1/auth/login", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	// Catalog requests still pass: they draw from the general budget.
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest("GET", "/api/v1/catalog/products", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}
}

func TestRateLimitMiddlewareThumbnailsExempt(t *testing.T) {
	mw := NewRateLimitMiddleware(1, 1)
	handler := mw.Handler(okHandler())

	for i := 0; i < 20; i++ {
		req := httptest.NewRequest("GET", fmt.Sprintf("/api/v1/catalog/products/p%d/thumbnail", i), nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "thumbnail request %d", i)
	}
}

func TestRateLimitMiddlewarePerClientIsolation(t *testing.T) {
	mw := NewRateLimitMiddleware(1000, 1)
	handler := mw.Handler(okHandler())

	reqA := httptest.NewRequest("POST", "/api/v1/auth/login", nil)
	reqA.Header.Set("X-Forwarded-For", "10.0.0.1")
	handler.ServeHTTP(httptest.NewRecorder(), reqA)

	// A different client keeps its own budget.
	reqB := httptest.NewRequest("POST", "/api/v1/auth/login", nil)
	reqB.Header.Set("X-Forwarded-For", "10.0.0.2")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, reqB)
	assert.Equal(t, http.StatusOK, rec.Code)
}
