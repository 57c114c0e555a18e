package i18n

import "errors"

var (
	// Translator
	ErrNilAdapter        = errors.New("translation adapter is nil")
	ErrEmptyLanguageCode = errors.New("empty language code in translations")
	ErrNilCatalog        = errors.New("nil translation catalog")

	// Parsing
	ErrParsingCancelled  = errors.New("translation parsing cancelled")
	ErrFailedToParseJSON = errors.New("failed to parse JSON translations")
	ErrFailedToParseYAML = errors.New("failed to parse YAML translations")
	ErrInvalidCatalog    = errors.New("invalid translation catalog structure")

	// Loading
	ErrLoadingCancelled     = errors.New("loading translations cancelled")
	ErrFailedToReadFile     = errors.New("failed to read translation file")
	ErrFailedToParseFile    = errors.New("failed to parse translation file")
	ErrEmptyTranslationFile = errors.New("translation file is empty")
	ErrNoTranslationFiles   = errors.New("no translation files found")
	ErrUnsupportedFormat    = errors.New("unsupported translation file format")
)
