package i18n

import (
	"context"
	"path/filepath"
	"strings"
)

// Parser decodes a catalog file. The top level of the content is keyed by
// language code; each value holds that language's messages, either flat
// ("validation.numeric.gt": "...") or nested.
type Parser interface {
	Parse(ctx context.Context, content string) (map[string]map[string]any, error)

	// SupportsFileExtension accepts the extension with or without the leading dot.
	SupportsFileExtension(ext string) bool
}

// NewParserForFile picks a parser by file extension, or returns nil.
func NewParserForFile(filename string) Parser {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "json":
		return NewJSONParser()
	case "yaml", "yml":
		return NewYAMLParser()
	default:
		return nil
	}
}
