package i18n

import (
	"context"
	"embed"
	"os"
)

//go:embed locales/*.yaml
var locales embed.FS

// DefaultCatalog serves the built-in validation messages.
func DefaultCatalog() TranslationAdapter {
	return NewFSAdapter(NewYAMLParser(), locales, "locales")
}

// NewDefaultTranslator loads the built-in catalog and, when dir is not
// empty, every YAML or JSON catalog found in dir on top of it.
func NewDefaultTranslator(ctx context.Context, dir string, options ...Option) (*Translator, error) {
	adapters := []TranslationAdapter{DefaultCatalog()}
	if dir != "" {
		adapters = append(adapters, NewFSAdapter(nil, os.DirFS(dir), "."))
	}
	return NewTranslator(ctx, Merge(adapters...), options...)
}
