package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllow(t *testing.T) {
	limiter := NewRateLimiter(1, 2)

	assert.True(t, limiter.Allow("user-1"))
	assert.True(t, limiter.Allow("user-1"))
	assert.False(t, limiter.Allow("user-1"), "burst of 2 is spent")

	// Separate keys have separate buckets.
	assert.True(t, limiter.Allow("user-2"))
}

func TestRateLimiterMiddleware(t *testing.T) {
	e := echo.New()
	limiter := NewRateLimiter(1, 1)
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	}, limiter.Middleware(func(c echo.Context) string {
		return c.Request().Header.Get("X-User-ID")
	}))

	request := func(userID string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		if userID != "" {
			req.Header.Set("X-User-ID", userID)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, request("7"))
	assert.Equal(t, http.StatusTooManyRequests, request("7"))
	// A different caller is unaffected.
	assert.Equal(t, http.StatusOK, request("8"))
	// No header falls back to the client IP bucket.
	assert.Equal(t, http.StatusOK, request(""))
}
