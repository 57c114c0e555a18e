package i18n

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/numstr/pkg/validator"
)

// Translator resolves message keys against per-language catalogs.
// It is safe for concurrent use; Reload swaps catalogs atomically.
type Translator struct {
	translations   map[string]map[string]any
	defaultLang    string
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger
	mu             sync.RWMutex
	adapter        TranslationAdapter
}

// NewTranslator loads catalogs from adapter and returns a ready Translator.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		adapter:       adapter,
	}
	for _, option := range options {
		option(t)
	}

	if err := t.Reload(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload re-reads every catalog from the adapter.
// On failure the previously loaded catalogs stay active.
func (t *Translator) Reload(ctx context.Context) error {
	translations, err := t.adapter.Load(ctx)
	if err != nil {
		return err
	}
	if err := validateTranslations(translations); err != nil {
		return err
	}

	normalized := make(map[string]map[string]any, len(translations))
	for lang, catalog := range translations {
		normalized[strings.ToLower(lang)] = catalog
	}

	t.mu.Lock()
	t.translations = normalized
	t.mu.Unlock()

	if len(normalized) == 0 {
		t.logger.WarnContext(ctx, "no translations loaded")
		return nil
	}
	t.logger.InfoContext(ctx, "translations loaded", "languages", t.SupportedLanguages())
	return nil
}

func validateTranslations(trans map[string]map[string]any) error {
	for lang, catalog := range trans {
		if lang == "" {
			return ErrEmptyLanguageCode
		}
		if catalog == nil {
			return fmt.Errorf("%w: %s", ErrNilCatalog, lang)
		}
	}
	return nil
}

// DefaultLanguage returns the language used when a requested one is missing.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// SupportedLanguages returns the loaded language codes in sorted order.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Sorted(maps.Keys(t.translations))
}

// HasTranslation reports whether lang has a string stored under key.
// No language fallback is applied.
func (t *Translator) HasTranslation(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	catalog, ok := t.translations[strings.ToLower(lang)]
	if !ok {
		return false
	}
	_, ok = lookup(catalog, key)
	return ok
}

// T translates key for lang. Extra args are key/value pairs substituted into
// "%{name}" placeholders. When nothing matches, the key itself is returned if
// fallback to key is enabled, an empty string otherwise.
func (t *Translator) T(lang, key string, args ...string) string {
	if msg, ok := t.translate(lang, key); ok {
		return sprintf(msg, args)
	}
	if t.fallbackToKey {
		return sprintf(key, args)
	}
	return ""
}

// Td is like T but falls back to defaultValue instead of the key.
func (t *Translator) Td(lang, key, defaultValue string, args ...string) string {
	if msg, ok := t.translate(lang, key); ok {
		return sprintf(msg, args)
	}
	return sprintf(defaultValue, args)
}

// Tc translates key using the locale stored in ctx.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(GetLocale(ctx), key, args...)
}

// TranslateErrors returns a copy of errs with every message that carries a
// translation key rendered in lang. Errors without a key keep their message.
func (t *Translator) TranslateErrors(lang string, errs validator.ValidationErrors) validator.ValidationErrors {
	if len(errs) == 0 {
		return errs
	}

	out := make(validator.ValidationErrors, len(errs))
	for i, e := range errs {
		out[i] = e
		if e.TranslationKey == "" {
			continue
		}
		out[i].Message = t.Td(lang, e.TranslationKey, e.Message, translationArgs(e.TranslationValues)...)
	}
	return out
}

// TranslateError translates err when it wraps validation errors and
// returns it unchanged otherwise.
func (t *Translator) TranslateError(lang string, err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	return t.TranslateErrors(lang, errs)
}

func translationArgs(values map[string]any) []string {
	args := make([]string, 0, len(values)*2)
	for _, name := range slices.Sorted(maps.Keys(values)) {
		args = append(args, name, fmt.Sprint(values[name]))
	}
	return args
}

// translate finds the message for key, trying lang, its base language and
// finally the default language.
func (t *Translator) translate(lang, key string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, candidate := range t.candidates(lang) {
		catalog, ok := t.translations[candidate]
		if !ok {
			continue
		}
		val, ok := lookup(catalog, key)
		if !ok {
			continue
		}
		if s, ok := stringValue(val); ok {
			return s, true
		}
		if t.missingLogMode {
			t.logger.Warn("translation is not a string", "lang", candidate, "key", key, "type", fmt.Sprintf("%T", val))
		}
	}

	if t.missingLogMode {
		t.logger.Warn("translation not found", "lang", lang, "key", key)
	}
	return "", false
}

func (t *Translator) candidates(lang string) []string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	out := make([]string, 0, 3)
	if lang != "" {
		out = append(out, lang)
		if idx := strings.IndexAny(lang, "-_"); idx > 0 {
			out = append(out, lang[:idx])
		}
	}
	if !slices.Contains(out, t.defaultLang) {
		out = append(out, t.defaultLang)
	}
	return out
}

func stringValue(val any) (string, bool) {
	switch v := val.(type) {
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}

// lookup resolves key in catalog. A flat entry such as "validation.numeric.gt"
// wins over the nested path validation -> numeric -> gt.
func lookup(catalog map[string]any, key string) (any, bool) {
	if val, ok := catalog[key]; ok {
		return val, true
	}

	parts := strings.Split(key, ".")
	var current any = catalog
	for _, part := range parts {
		switch m := current.(type) {
		case map[string]any:
			next, ok := m[part]
			if !ok {
				return nil, false
			}
			current = next
		case map[any]any:
			next, ok := m[part]
			if !ok {
				return nil, false
			}
			current = next
		default:
			return nil, false
		}
	}
	return current, true
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// sprintf substitutes "%{name}" placeholders from key/value pairs.
// An odd trailing argument is ignored and unknown placeholders are kept.
func sprintf(tmpl string, args []string) string {
	if len(args) < 2 {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}
