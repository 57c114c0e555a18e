package i18n

import (
	"io"
	"log/slog"
	"strings"
)

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the language consulted when the requested one
// has no entry for a key.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang = strings.ToLower(strings.TrimSpace(lang)); lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithFallbackToKey controls whether T returns the key for missing entries.
// Enabled by default.
func WithFallbackToKey(fallback bool) Option {
	return func(t *Translator) {
		t.fallbackToKey = fallback
	}
}

// WithLogger sets the logger. A discard logger is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithMissingTranslationsLogging logs a warning for every missing key.
func WithMissingTranslationsLogging(log bool) Option {
	return func(t *Translator) {
		t.missingLogMode = log
	}
}

// WithNoLogging silences the translator completely.
func WithNoLogging() Option {
	return func(t *Translator) {
		t.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		t.missingLogMode = false
	}
}
