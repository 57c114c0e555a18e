package i18n

import (
	"net/http"
	"slices"
	"strings"
)

// maxLangCodeLength follows the RFC 5646 recommendation.
const maxLangCodeLength = 35

// ExtractorConfig configures DefaultLangExtractor.
type ExtractorConfig struct {
	CookieName     string
	QueryParamName string
	SupportedLangs []string
}

// ExtractorOption configures the language extractor.
type ExtractorOption func(*ExtractorConfig)

// WithCookieName sets the cookie holding an explicit language choice.
func WithCookieName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.CookieName = name
		}
	}
}

// WithQueryParamName sets the query parameter holding an explicit language choice.
func WithQueryParamName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.QueryParamName = name
		}
	}
}

// WithSupportedLanguages restricts results to langs. Region tags fall back
// to their base language when only the base is supported.
func WithSupportedLanguages(langs ...string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if len(langs) > 0 {
			c.SupportedLangs = langs
		}
	}
}

// DefaultLangExtractor checks, in order, the "lang" query parameter, the
// "lang" cookie and the Accept-Language header, returning the first usable
// language.
func DefaultLangExtractor(opts ...ExtractorOption) LangExtractor {
	config := &ExtractorConfig{
		CookieName:     "lang",
		QueryParamName: "lang",
	}
	for _, opt := range opts {
		opt(config)
	}

	supported := make([]string, len(config.SupportedLangs))
	for i, lang := range config.SupportedLangs {
		supported[i] = strings.ToLower(lang)
	}

	accept := func(lang string) string {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang == "" || len(lang) > maxLangCodeLength {
			return ""
		}
		if len(supported) == 0 || slices.Contains(supported, lang) {
			return lang
		}
		if base, _, ok := strings.Cut(lang, "-"); ok && slices.Contains(supported, base) {
			return base
		}
		return ""
	}

	return func(r *http.Request) string {
		if config.QueryParamName != "" {
			if lang := accept(r.URL.Query().Get(config.QueryParamName)); lang != "" {
				return lang
			}
		}

		if config.CookieName != "" {
			if cookie, err := r.Cookie(config.CookieName); err == nil {
				if lang := accept(cookie.Value); lang != "" {
					return lang
				}
			}
		}

		header := r.Header.Get("Accept-Language")
		if header == "" {
			return ""
		}
		if len(supported) > 0 {
			return ParseAcceptLanguage(header, supported, "")
		}
		if langs := parseAcceptLanguageHeader(header); len(langs) > 0 {
			return langs[0].lang
		}
		return ""
	}
}
