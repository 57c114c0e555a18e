package i18n

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLParser reads catalogs written in YAML.
type YAMLParser struct{}

func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

// Parse implements Parser.
func (p *YAMLParser) Parse(ctx context.Context, content string) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var data map[string]any
	if err := yaml.Unmarshal([]byte(content), &data); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no languages defined", ErrInvalidCatalog)
	}

	result := make(map[string]map[string]any, len(data))
	for lang, val := range data {
		catalog, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q must map to messages, got %T", ErrInvalidCatalog, lang, val)
		}
		result[lang] = catalog
	}
	return result, nil
}

// SupportsFileExtension implements Parser.
func (p *YAMLParser) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "yaml") || strings.EqualFold(ext, "yml")
}
