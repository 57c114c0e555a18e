package schema

import "errors"

var (
	// Definitions
	ErrInvalidDefinition = errors.New("invalid schema definition")
	ErrInvalidBound      = errors.New("invalid bound in schema definition")
	ErrUnknownMessageKey = errors.New("unknown message key in schema definition")

	// Parsing
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrParsingCancelled  = errors.New("parsing cancelled")
	ErrFailedToReadFile  = errors.New("failed to read file")
	ErrFailedToParseYAML = errors.New("failed to parse YAML content")
	ErrFailedToParseJSON = errors.New("failed to parse JSON content")
	ErrInvalidDocument   = errors.New("invalid document")
	ErrNotAnObject       = errors.New("document root must be an object")
	ErrDocumentTooLarge  = errors.New("document is too large")
)
