package clientip

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/numstr/pkg/logger"
)

type contextKey struct{}

// WithContext stores ip in ctx.
func WithContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKey{}, ip)
}

// FromContext returns the client IP stored by Middleware, or "".
func FromContext(ctx context.Context) string {
	ip, _ := ctx.Value(contextKey{}).(string)
	return ip
}

// Middleware resolves the client IP once per request and stores it in the
// request context.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), res.IP(r))))
	})
}

// KeyFunc returns the client IP of r, preferring the value stored by Middleware.
func (res *Resolver) KeyFunc(r *http.Request) string {
	if ip := FromContext(r.Context()); ip != "" {
		return ip
	}
	return res.IP(r)
}

// LogExtractor adds "client_ip" to records logged with a request context.
func LogExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if ip := FromContext(ctx); ip != "" {
			return slog.String("client_ip", ip), true
		}
		return slog.Attr{}, false
	}
}
