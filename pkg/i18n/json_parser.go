package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// JSONParser reads catalogs written in JSON.
type JSONParser struct{}

func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

// Parse implements Parser.
func (p *JSONParser) Parse(ctx context.Context, content string) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
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
func (p *JSONParser) SupportsFileExtension(ext string) bool {
	return strings.EqualFold(strings.TrimPrefix(ext, "."), "json")
}
