package ratelimiter

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Config describes a token bucket. A zero Capacity disables limiting.
type Config struct {
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"0"`
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"10"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"1s"`
}

// Enabled reports whether the configuration limits anything.
func (c Config) Enabled() bool {
	return c.Capacity > 0
}

func (c Config) validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// Result is the outcome of one Allow call.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Allowed reports whether the request fit in the bucket.
func (r Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter is how long a rejected client should wait; zero when allowed.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(r.ResetAt.Sub(now), 0)
}

type bucket struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// Limiter keeps one in-memory token bucket per key.
type Limiter struct {
	cfg Config
	now func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket

	cleanupInterval time.Duration
	staleAfter      time.Duration
	stop            chan struct{}
	stopOnce        sync.Once
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithCleanupInterval sets how often idle buckets are dropped. Zero disables
// the background cleanup.
func WithCleanupInterval(d time.Duration) Option {
	return func(l *Limiter) {
		l.cleanupInterval = d
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// New creates a limiter. Call Close to stop the cleanup goroutine.
func New(cfg Config, opts ...Option) (*Limiter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	l := &Limiter{
		cfg:             cfg,
		now:             time.Now,
		buckets:         make(map[string]*bucket),
		cleanupInterval: 5 * time.Minute,
		staleAfter:      time.Hour,
		stop:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.cleanupInterval > 0 {
		go l.cleanup()
	}
	return l, nil
}

// Allow takes one token for key.
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	return l.AllowN(ctx, key, 1)
}

// AllowN takes n tokens for key. Rejected calls leave the bucket untouched
// and report a negative Remaining.
func (l *Limiter) AllowN(ctx context.Context, key string, n int) (Result, error) {
	if n <= 0 {
		return Result{}, fmt.Errorf("%w: must be positive, got %d", ErrInvalidTokenCount, n)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.cfg.Capacity, lastRefill: now}
		l.buckets[key] = b
	}

	// cap the interval count so a long idle period cannot overflow
	maxIntervals := int64(l.cfg.Capacity/l.cfg.RefillRate + 1)
	intervals := int(min(int64(now.Sub(b.lastRefill)/l.cfg.RefillInterval), maxIntervals))
	if intervals > 0 {
		b.tokens = min(b.tokens+intervals*l.cfg.RefillRate, l.cfg.Capacity)
		b.lastRefill = b.lastRefill.Add(time.Duration(intervals) * l.cfg.RefillInterval)
		if b.tokens == l.cfg.Capacity {
			b.lastRefill = now
		}
	}
	remaining := b.tokens - n
	if remaining >= 0 {
		b.tokens = remaining
	}
	b.lastAccess = now

	return Result{
		Limit:     l.cfg.Capacity,
		Remaining: remaining,
		ResetAt:   b.lastRefill.Add(l.cfg.RefillInterval),
	}, nil
}

// Reset forgets the bucket of key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Close() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *Limiter) cleanup() {
	ticker := time.NewTicker(l.cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.removeStale()
		case <-l.stop:
			return
		}
	}
}

func (l *Limiter) removeStale() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for key, b := range l.buckets {
		if now.Sub(b.lastAccess) > l.staleAfter {
			delete(l.buckets, key)
		}
	}
}
