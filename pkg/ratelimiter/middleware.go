package ratelimiter

import (
	"net/http"
	"strconv"
)

// KeyFunc extracts the rate limit key of a request. Requests with an empty
// key are not limited.
type KeyFunc func(r *http.Request) string

// Middleware limits requests per key and sets the X-RateLimit-* headers.
// Rejected requests get Retry-After and are answered by onLimit, which
// defaults to a plain 429. Limiter errors let the request through.
func Middleware(l *Limiter, key KeyFunc, onLimit http.Handler) func(http.Handler) http.Handler {
	if onLimit == nil {
		onLimit = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		})
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}

			res, err := l.Allow(r.Context(), k)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed() {
				// round up so clients never retry too early
				retry := res.RetryAfter(l.now())
				secs := int64((retry + 999_999_999) / 1_000_000_000)
				h.Set("Retry-After", strconv.FormatInt(max(secs, 1), 10))
				onLimit.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
