package httpserver

import (
	"log/slog"
	"time"
)

// Option configures the HTTP server. Invalid arguments panic at
// construction time.
type Option func(*config)

func WithAddr(addr string) Option {
	if addr == "" {
		panic("WithAddr: addr cannot be empty")
	}
	return func(c *config) { c.addr = addr }
}

func WithReadTimeout(d time.Duration) Option {
	mustBePositive("WithReadTimeout", d)
	return func(c *config) { c.readTimeout = d }
}

func WithReadHeaderTimeout(d time.Duration) Option {
	mustBePositive("WithReadHeaderTimeout", d)
	return func(c *config) { c.readHeaderTimeout = d }
}

func WithWriteTimeout(d time.Duration) Option {
	mustBePositive("WithWriteTimeout", d)
	return func(c *config) { c.writeTimeout = d }
}

func WithIdleTimeout(d time.Duration) Option {
	mustBePositive("WithIdleTimeout", d)
	return func(c *config) { c.idleTimeout = d }
}

// WithShutdownTimeout bounds how long in-flight requests may take to finish.
func WithShutdownTimeout(d time.Duration) Option {
	mustBePositive("WithShutdownTimeout", d)
	return func(c *config) { c.shutdownTimeout = d }
}

// WithLogger sets the logger. Nil keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStartHook runs h once the server accepts connections.
func WithStartHook(h func(*slog.Logger)) Option {
	if h == nil {
		panic("WithStartHook: nil hook")
	}
	return func(c *config) { c.startHooks = append(c.startHooks, h) }
}

// WithStopHook runs h after the server has shut down.
func WithStopHook(h func(*slog.Logger)) Option {
	if h == nil {
		panic("WithStopHook: nil hook")
	}
	return func(c *config) { c.stopHooks = append(c.stopHooks, h) }
}

func mustBePositive(name string, d time.Duration) {
	if d <= 0 {
		panic(name + ": duration must be > 0")
	}
}
