// Package ratelimit provides token-bucket rate limiting for the generation
// endpoints. Each LLM call is expensive, so clients are throttled per IP.
package ratelimit

import (
	"sync"
	"time"
)

// tokenBucket allows a burst of requests and refills at a steady rate.
type tokenBucket struct {
	mu         sync.Mutex
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	lastSeen   time.Time
}

func newTokenBucket(capacity int, refillRate float64) *tokenBucket {
	now := time.Now()
	return &tokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: now,
		lastSeen:   now,
	}
}

// allow consumes a token if one is available.
func (tb *tokenBucket) allow() (ok bool, remaining int, retryAfter time.Duration) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	tb.tokens = min(float64(tb.capacity), tb.tokens+now.Sub(tb.lastRefill).Seconds()*tb.refillRate)
	tb.lastRefill = now
	tb.lastSeen = now

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true, int(tb.tokens), 0
	}
	wait := time.Duration((1.0 - tb.tokens) / tb.refillRate * float64(time.Second))
	return false, 0, wait
}

// Info describes the rate limit decision for response headers.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Config holds limiter settings.
type Config struct {
	// Burst is the bucket capacity per client.
	Burst int
	// PerMinute is the sustained request budget per client per minute.
	PerMinute int
	// IdleEviction is how long an unused client bucket is kept.
	IdleEviction time.Duration
}

// DefaultConfig suits the generation endpoints: generation is slow and
// interactive, so a small burst with a modest refill is enough.
func DefaultConfig() Config {
	return Config{
		Burst:        5,
		PerMinute:    20,
		IdleEviction: 10 * time.Minute,
	}
}

// Limiter tracks a token bucket per client.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*tokenBucket
	config  Config
	ticker  *time.Ticker
	stop    chan struct{}
}

// NewLimiter returns a running Limiter; Stop releases its cleanup goroutine.
func NewLimiter(config Config) *Limiter {
	l := &Limiter{
		buckets: make(map[string]*tokenBucket),
		config:  config,
		ticker:  time.NewTicker(time.Minute),
		stop:    make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Allow reports whether the client may proceed.
func (l *Limiter) Allow(clientID string) Info {
	l.mu.Lock()
	bucket, ok := l.buckets[clientID]
	if !ok {
		bucket = newTokenBucket(l.config.Burst, float64(l.config.PerMinute)/60.0)
		l.buckets[clientID] = bucket
	}
	l.mu.Unlock()

	allowed, remaining, retryAfter := bucket.allow()
	return Info{
		Allowed:    allowed,
		Limit:      l.config.PerMinute,
		Remaining:  remaining,
		RetryAfter: retryAfter,
	}
}

// Stop terminates the cleanup goroutine.
func (l *Limiter) Stop() {
	l.ticker.Stop()
	close(l.stop)
}

// cleanupLoop evicts buckets for clients not seen recently.
func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.stop:
			return
		case <-l.ticker.C:
			cutoff := time.Now().Add(-l.config.IdleEviction)
			l.mu.Lock()
			for id, bucket := range l.buckets {
				bucket.mu.Lock()
				idle := bucket.lastSeen.Before(cutoff)
				bucket.mu.Unlock()
				if idle {
					delete(l.buckets, id)
				}
			}
			l.mu.Unlock()
		}
	}
}
