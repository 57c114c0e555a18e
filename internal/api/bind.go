package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrymomot/numstr/pkg/schema"
)

// DefaultMaxBodySize limits request bodies to 1 MiB.
const DefaultMaxBodySize int64 = 1 << 20

type validateRequest struct {
	Schema   json.RawMessage `json:"schema,omitempty"`
	Document json.RawMessage `json:"document"`
}

// bindJSON strictly decodes a single JSON object from an application/json body.
func bindJSON(r *http.Request, v any) error {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return fmt.Errorf("%w: expected application/json", ErrMissingContentType)
	}
	mediaType := contentType
	if idx := strings.Index(contentType, ";"); idx != -1 {
		mediaType = contentType[:idx]
	}
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if mediaType != "application/json" {
		return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, mediaType)
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return decodeError(err)
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		if err != nil {
			return decodeError(err)
		}
		return fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidJSON)
	}
	return nil
}

func decodeError(err error) error {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, tooLarge.Limit)
	case errors.Is(err, io.EOF):
		return fmt.Errorf("%w: empty body", ErrInvalidJSON)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
}

// decodeDocument keeps numbers as json.Number so no precision is lost on the
// way to the validator.
func decodeDocument(raw json.RawMessage) (schema.Document, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: document is required", ErrInvalidDocument)
	}
	doc, err := schema.DecodeJSONDocument(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	return doc, nil
}
