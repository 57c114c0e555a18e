package schema

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser decodes schema definitions and documents from one file format.
type Parser interface {
	// ParseDefinition decodes a schema definition. Unknown keys are rejected.
	ParseDefinition(ctx context.Context, content []byte) (*Definition, error)

	// ParseDocument decodes a document to validate. Numbers keep the text they
	// were written with so no precision is lost before validation.
	ParseDocument(ctx context.Context, content []byte) (Document, error)

	// SupportsFileExtension reports whether the parser handles ext, with or without the leading dot.
	SupportsFileExtension(ext string) bool
}

// NewParserForFile returns a parser based on the file extension, or nil if
// the format is not supported.
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

// LoadDefinition reads and parses the schema definition at path.
func LoadDefinition(ctx context.Context, path string) (*Definition, error) {
	parser, content, err := readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return parser.ParseDefinition(ctx, content)
}

// LoadSchema reads the definition at path and builds it.
func LoadSchema(ctx context.Context, path string) (*ObjectSchema, error) {
	def, err := LoadDefinition(ctx, path)
	if err != nil {
		return nil, err
	}
	return def.Build()
}

// LoadDocument reads and parses the document at path.
func LoadDocument(ctx context.Context, path string) (Document, error) {
	parser, content, err := readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return parser.ParseDocument(ctx, content)
}

func readFile(ctx context.Context, path string) (Parser, []byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, errors.Join(ErrParsingCancelled, err)
	}
	parser := NewParserForFile(path)
	if parser == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Join(ErrFailedToReadFile, err)
	}
	return parser, content, nil
}

// YAMLParser implements Parser for YAML files.
type YAMLParser struct{}

func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

func (p *YAMLParser) ParseDefinition(ctx context.Context, content []byte) (*Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty content", ErrFailedToParseYAML)
		}
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	return &def, nil
}

func (p *YAMLParser) ParseDocument(ctx context.Context, content []byte) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}
	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("%w: empty content", ErrFailedToParseYAML)
	}
	v, err := new(nodeConverter).value(root.Content[0], 0)
	if err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotAnObject
	}
	return Document(obj), nil
}

func (p *YAMLParser) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "yaml") || strings.EqualFold(ext, "yml")
}

// Limits for YAML documents. Aliases are expanded while converting, so a
// small file can describe an exponentially large value.
const (
	maxDocumentNodes = 1 << 20
	maxDocumentDepth = 1000
)

// nodeConverter turns YAML nodes into plain Go values. Numeric scalars become
// json.Number holding the original text.
type nodeConverter struct {
	nodes int
}

func (c *nodeConverter) value(n *yaml.Node, depth int) (any, error) {
	c.nodes++
	if c.nodes > maxDocumentNodes {
		return nil, fmt.Errorf("%w: more than %d values after alias expansion", ErrDocumentTooLarge, maxDocumentNodes)
	}
	if depth > maxDocumentDepth {
		return nil, fmt.Errorf("%w: nested deeper than %d levels", ErrDocumentTooLarge, maxDocumentDepth)
	}

	switch n.Kind {
	case yaml.AliasNode:
		return c.value(n.Alias, depth+1)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := c.value(n.Content[i+1], depth+1)
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		s := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := c.value(item, depth+1)
			if err != nil {
				return nil, err
			}
			s = append(s, v)
		}
		return s, nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return nil, nil
		case "!!int", "!!float":
			return json.Number(n.Value), nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return nil, err
			}
			return b, nil
		default:
			return n.Value, nil
		}
	default:
		return nil, fmt.Errorf("unsupported YAML node at line %d", n.Line)
	}
}

// JSONParser implements Parser for JSON files.
type JSONParser struct{}

func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

func (p *JSONParser) ParseDefinition(ctx context.Context, content []byte) (*Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()

	var def Definition
	if err := dec.Decode(&def); err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	return &def, nil
}

func (p *JSONParser) ParseDocument(ctx context.Context, content []byte) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}
	return DecodeJSONDocument(bytes.NewReader(content))
}

func (p *JSONParser) SupportsFileExtension(ext string) bool {
	return strings.EqualFold(strings.TrimPrefix(ext, "."), "json")
}

// DecodeJSONDocument decodes a single JSON object, keeping numbers as json.Number.
func DecodeJSONDocument(r io.Reader) (Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: unexpected data after JSON object", ErrFailedToParseJSON)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotAnObject
	}
	return Document(obj), nil
}
