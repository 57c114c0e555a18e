package api

import (
	"errors"
	"net/http"
)

var (
	ErrMissingContentType   = errors.New("missing content type")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrInvalidJSON          = errors.New("invalid JSON")
	ErrBodyTooLarge         = errors.New("request body too large")
	ErrSchemaRequired       = errors.New("schema is required")
	ErrInvalidSchema        = errors.New("invalid schema")
	ErrInvalidDocument      = errors.New("invalid document")
)

// HTTPError pairs an HTTP status with a stable error code. The code is also
// the suffix of the "api." translation key used for the response message.
type HTTPError struct {
	Status int
	Code   string
	Err    error
}

func (e HTTPError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code
}

func (e HTTPError) Unwrap() error {
	return e.Err
}

var (
	errNotFound         = HTTPError{Status: http.StatusNotFound, Code: "not_found"}
	errMethodNotAllowed = HTTPError{Status: http.StatusMethodNotAllowed, Code: "method_not_allowed"}
	errTooManyRequests  = HTTPError{Status: http.StatusTooManyRequests, Code: "too_many_requests"}
)

// toHTTPError maps request failures to their response status and code.
// Anything unknown is reported as an internal error.
func toHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status, code := http.StatusInternalServerError, "internal_error"
	switch {
	case errors.Is(err, ErrBodyTooLarge):
		status, code = http.StatusRequestEntityTooLarge, "request_too_large"
	case errors.Is(err, ErrMissingContentType), errors.Is(err, ErrUnsupportedMediaType):
		status, code = http.StatusBadRequest, "unsupported_media_type"
	case errors.Is(err, ErrInvalidJSON):
		status, code = http.StatusBadRequest, "invalid_json"
	case errors.Is(err, ErrInvalidDocument):
		status, code = http.StatusBadRequest, "invalid_document"
	case errors.Is(err, ErrSchemaRequired):
		status, code = http.StatusBadRequest, "schema_required"
	case errors.Is(err, ErrInvalidSchema):
		status, code = http.StatusBadRequest, "invalid_schema"
	}
	return HTTPError{Status: status, Code: code, Err: err}
}
