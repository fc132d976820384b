package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(max int, window, block time.Duration) (*Limiter, *clock) {
	c := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewLimiter(max, window, block)
	l.now = c.now
	return l, c
}

func TestLimiter_Check_AllowsUpToMax(t *testing.T) {
	l, _ := newTestLimiter(5, time.Minute, 5*time.Minute)

	for range 5 {
		allowed, wait := l.Check("owner-1")
		assert.True(t, allowed)
		assert.Zero(t, wait)
	}
}

func TestLimiter_Check_BlocksAfterMax(t *testing.T) {
	l, c := newTestLimiter(3, time.Minute, 5*time.Minute)

	for range 3 {
		l.Check("owner-1")
	}
	allowed, wait := l.Check("owner-1")
	assert.False(t, allowed)
	assert.Equal(t, 5*time.Minute, wait)

	c.advance(time.Minute)
	allowed, wait = l.Check("owner-1")
	assert.False(t, allowed)
	assert.Equal(t, 4*time.Minute, wait)

	// Other clients are unaffected.
	allowed, _ = l.Check("owner-2")
	assert.True(t, allowed)
}

func TestLimiter_Check_BlockExpires(t *testing.T) {
	l, c := newTestLimiter(1, time.Minute, 2*time.Minute)

	l.Check("owner-1")
	allowed, _ := l.Check("owner-1")
	require.False(t, allowed)

	c.advance(3 * time.Minute)
	allowed, _ = l.Check("owner-1")
	assert.True(t, allowed)
}

func TestLimiter_Check_ResetsAfterWindow(t *testing.T) {
	l, c := newTestLimiter(2, time.Minute, time.Hour)

	l.Check("owner-1")
	l.Check("owner-1")
	c.advance(61 * time.Second)

	allowed, _ := l.Check("owner-1")
	assert.True(t, allowed)
}

func TestLimiter_PrunesIdleClients(t *testing.T) {
	l, c := newTestLimiter(2, time.Minute, time.Minute)

	l.Check("idle")
	c.advance(3 * time.Minute)
	l.Check("active")

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.clients, "idle")
	assert.Contains(t, l.clients, "active")
}

func TestLimiter_ConcurrentAccess(t *testing.T) {
	l := NewLimiter(1000, time.Minute, time.Minute)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 10 {
				l.Check("concurrent-client")
			}
		}()
	}
	wg.Wait()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Equal(t, 100, l.clients["concurrent-client"].count)
}

func TestLimiter_Middleware(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute, 30*time.Second)
	h := l.Middleware(func(r *http.Request) string { return r.Header.Get("X-User-Id") })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusAccepted) }),
	)

	do := func(owner string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/derivatives/src-1/requests", nil)
		if owner != "" {
			req.Header.Set("X-User-Id", owner)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusAccepted, do("owner-1").Code)

	rec := do("owner-1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "rate_limited")

	// Anonymous requests are not counted.
	assert.Equal(t, http.StatusAccepted, do("").Code)
	assert.Equal(t, http.StatusAccepted, do("").Code)
}
