// Package ratelimit throttles API clients with per-client token buckets,
// one bucket per client and rule.
package ratelimit

import (
	"math"
	"sync"
	"time"
)

// bucket is a token bucket refilled continuously at rate tokens per second
type bucket struct {
	capacity float64
	rate     float64
	tokens   float64
	last     time.Time
}

func newBucket(capacity int, rate float64, now time.Time) *bucket {
	return &bucket{capacity: float64(capacity), rate: rate, tokens: float64(capacity), last: now}
}

// take refills the bucket up to now and consumes one token if available.
// full is when the bucket will be at capacity again.
func (b *bucket) take(now time.Time) (ok bool, remaining int, full time.Time) {
	if elapsed := now.Sub(b.last).Seconds(); elapsed > 0 {
		b.tokens = math.Min(b.capacity, b.tokens+elapsed*b.rate)
		b.last = now
	}

	if b.tokens >= 1 {
		b.tokens--
		ok = true
	}

	missing := b.capacity - b.tokens
	full = now.Add(time.Duration(missing / b.rate * float64(time.Second)))
	return ok, int(b.tokens), full
}

// retryAfter is how long until one token is available
func (b *bucket) retryAfter() time.Duration {
	if b.tokens >= 1 {
		return 0
	}
	return time.Duration((1 - b.tokens) / b.rate * float64(time.Second))
}

// Info describes the outcome of one Allow call.
type Info struct {
	Allowed    bool
	Rule       string
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter manages rate limiting for multiple clients using token buckets.
type Limiter struct {
	config *Config
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
	seen    map[string]time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter creates a limiter. A nil config means DefaultConfig. When
// cleanup is configured a goroutine evicts idle buckets until Stop.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}

	l := &Limiter{
		config:  config,
		now:     time.Now,
		buckets: make(map[string]*bucket),
		seen:    make(map[string]time.Time),
		stop:    make(chan struct{}),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		go l.cleanupLoop(config.CleanupInterval)
	}
	return l
}

// Allow reports whether clientID may make a method request to path now.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Allowlist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Denylist[clientID] {
		return false, Info{Allowed: false}
	}

	rule, unlimited := l.config.Match(method, path)
	if unlimited || rule.Limit <= 0 || rule.Window <= 0 {
		return true, Info{Allowed: true, Rule: rule.Name}
	}

	key := clientID + "|" + rule.Name + "|" + rule.Method + " " + rule.Path
	now := l.now()

	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		capacity := rule.Burst
		if capacity <= 0 {
			capacity = rule.Limit
		}
		b = newBucket(capacity, float64(rule.Limit)/rule.Window.Seconds(), now)
		l.buckets[key] = b
	}
	l.seen[key] = now
	allowed, remaining, full := b.take(now)
	retry := b.retryAfter()
	l.mu.Unlock()

	info := Info{
		Allowed:   allowed,
		Rule:      rule.Name,
		Limit:     rule.Limit,
		Remaining: remaining,
		ResetTime: full,
	}
	if !allowed {
		info.RetryAfter = retry
	}
	return allowed, info
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.evictIdle()
		case <-l.stop:
			return
		}
	}
}

// evictIdle drops buckets not used within IdleTTL
func (l *Limiter) evictIdle() int {
	ttl := l.config.IdleTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	cutoff := l.now().Add(-ttl)

	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	for key, last := range l.seen {
		if last.Before(cutoff) {
			delete(l.seen, key)
			delete(l.buckets, key)
			evicted++
		}
	}
	return evicted
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
