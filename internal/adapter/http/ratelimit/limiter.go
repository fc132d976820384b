package ratelimit

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

type record struct {
	count        int
	windowStart  time.Time
	blockedUntil time.Time
}

// Limiter admits at most max requests per client inside a fixed window and
// blocks a client that exceeds it for the block duration.
type Limiter struct {
	mu        sync.Mutex
	clients   map[string]*record
	max       int
	window    time.Duration
	block     time.Duration
	lastPrune time.Time
	now       func() time.Time
}

func NewLimiter(max int, window, block time.Duration) *Limiter {
	return &Limiter{
		clients: make(map[string]*record),
		max:     max,
		window:  window,
		block:   block,
		now:     time.Now,
	}
}

// Check counts a request of clientID. When it is refused the second value
// is how long the client must wait.
func (l *Limiter) Check(clientID string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	rec, ok := l.clients[clientID]
	if !ok {
		rec = &record{windowStart: now}
		l.clients[clientID] = rec
	}

	if now.Before(rec.blockedUntil) {
		return false, rec.blockedUntil.Sub(now)
	}
	if now.Sub(rec.windowStart) > l.window {
		rec.count = 0
		rec.windowStart = now
	}

	rec.count++
	if rec.count > l.max {
		rec.blockedUntil = now.Add(l.block)
		return false, l.block
	}
	return true, 0
}

// prune drops idle clients, at most once per window.
func (l *Limiter) prune(now time.Time) {
	if now.Sub(l.lastPrune) < l.window {
		return
	}
	l.lastPrune = now
	for id, rec := range l.clients {
		if now.Sub(rec.windowStart) > 2*l.window && now.After(rec.blockedUntil) {
			delete(l.clients, id)
		}
	}
}

// Middleware rejects requests over the limit with 429. Requests for which
// key returns "" are not counted.
func (l *Limiter) Middleware(key func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := key(r)
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}
			if ok, wait := l.Check(id); !ok {
				w.Header().Set("Retry-After", strconv.Itoa(int(wait.Round(time.Second)/time.Second)))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":{"code":"rate_limited","message":"too many requests"}}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
