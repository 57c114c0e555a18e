package i18n

import "net/http"

// LangExtractor returns the language requested by r, or "" when none was found.
type LangExtractor func(r *http.Request) string

// Middleware stores the request language in the request context so that
// handlers can read it with GetLocale. A nil extractor means
// DefaultLangExtractor(). fallback is used when the extractor finds nothing;
// an empty fallback means DefaultLanguage.
func Middleware(extr LangExtractor, fallback string) func(http.Handler) http.Handler {
	if extr == nil {
		extr = DefaultLangExtractor()
	}
	if fallback == "" {
		fallback = DefaultLanguage
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := extr(r)
			if lang == "" {
				lang = fallback
			}
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}
