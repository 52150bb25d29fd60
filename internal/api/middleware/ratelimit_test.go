package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-review/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_AllowPerKey(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, 2)
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"), "burst exhausted")
	assert.True(t, rl.Allow("b"), "other clients have their own bucket")

	now = now.Add(time.Second)
	assert.True(t, rl.Allow("a"), "one token refilled after a second")
	assert.False(t, rl.Allow("a"))
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, 1)
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("idle")
	now = now.Add(limiterIdleTTL + time.Minute)
	rl.Allow("fresh")

	rl.mu.Lock()
	rl.sweepLocked(now)
	_, idleKept := rl.limits["idle"]
	_, freshKept := rl.limits["fresh"]
	rl.mu.Unlock()

	assert.False(t, idleKept)
	assert.True(t, freshKept)
}

func TestRateLimiter_Limit(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(0.01, 1)
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	serve := func(req *http.Request) int {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			require.NotEmpty(t, rec.Header().Get("Retry-After"))
		}
		return rec.Code
	}

	anon := httptest.NewRequest(http.MethodGet, "/health", nil)
	anon.RemoteAddr = "203.0.113.9:5555"
	assert.Equal(t, http.StatusNoContent, serve(anon))
	assert.Equal(t, http.StatusTooManyRequests, serve(anon))

	// Same IP, but authenticated: keyed by learner instead.
	authed := httptest.NewRequest(http.MethodGet, "/api/reviews/due", nil)
	authed.RemoteAddr = "203.0.113.9:5555"
	authed = authed.WithContext(shared.WithLearnerID(authed.Context(), uuid.New()))
	assert.Equal(t, http.StatusNoContent, serve(authed))
}

func TestClientKey(t *testing.T) {
	t.Parallel()

	learnerID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.4:1234"
	assert.Equal(t, "ip:198.51.100.4", clientKey(req))

	req.RemoteAddr = "198.51.100.4" // after chi RealIP
	assert.Equal(t, "ip:198.51.100.4", clientKey(req))

	req = req.WithContext(shared.WithLearnerID(req.Context(), learnerID))
	assert.Equal(t, "learner:"+learnerID.String(), clientKey(req))
}
