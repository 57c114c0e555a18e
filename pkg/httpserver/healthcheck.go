package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/numstr/pkg/logger"
)

// HealthCheckHandler serves liveness and readiness probes. Without checks it
// always answers 200 "ALIVE". With checks, each runs against the request
// context; any failure answers 503 "NOT_READY", otherwise 200 "READY".
func HealthCheckHandler(log *slog.Logger, checks ...func(context.Context) error) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")

		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.WarnContext(r.Context(), "readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		if len(checks) == 0 {
			_, _ = w.Write([]byte("ALIVE"))
			return
		}
		_, _ = w.Write([]byte("READY"))
	}
}
