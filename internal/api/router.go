package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/numstr/pkg/httpserver"
	"github.com/dmitrymomot/numstr/pkg/i18n"
	"github.com/dmitrymomot/numstr/pkg/logger"
	"github.com/dmitrymomot/numstr/pkg/ratelimiter"
	"github.com/dmitrymomot/numstr/pkg/requestid"
)

// NewRouter mounts the API routes:
//
//	GET  /health       liveness probe
//	POST /v1/validate  document validation
//
// Every request gets a request ID, its client IP and a negotiated locale. The
// locale is one of the translator's languages, falling back to its default
// language. With a rate limiter, /v1 routes are limited per client IP.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(h.resolver.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(accessLog(h.log))
	r.Use(localeMiddleware(h.translator))

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/health", httpserver.HealthCheckHandler(h.log))
	r.Route("/v1", func(r chi.Router) {
		if h.limiter != nil {
			r.Use(ratelimiter.Middleware(h.limiter, h.resolver.KeyFunc, http.HandlerFunc(h.TooManyRequests)))
		}
		r.Post("/validate", h.Validate)
	})

	return r
}

func localeMiddleware(tr *i18n.Translator) func(http.Handler) http.Handler {
	if tr == nil {
		return i18n.Middleware(i18n.DefaultLangExtractor(), i18n.DefaultLanguage)
	}
	return i18n.Middleware(
		i18n.DefaultLangExtractor(i18n.WithSupportedLanguages(tr.SupportedLanguages()...)),
		tr.DefaultLanguage(),
	)
}

func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.InfoContext(r.Context(), "request handled",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				logger.Duration(time.Since(start)),
			)
		})
	}
}
