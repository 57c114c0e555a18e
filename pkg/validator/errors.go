package validator

import "errors"

// Common validation errors that can be used across the application.
var (
	// ErrValidationFailed is returned when validation fails but no specific error is provided.
	ErrValidationFailed = errors.New("validation failed")

	// ErrNotNumeric is returned when a string cannot be parsed as a decimal number.
	ErrNotNumeric = errors.New("value is not a valid decimal number")

	// ErrUnboundReference is returned when a reference bound is resolved without a resolver.
	ErrUnboundReference = errors.New("reference is not bound to a document")

	// ErrReferenceNotFound is returned when a referenced path has no value in the document.
	ErrReferenceNotFound = errors.New("referenced value not found")

	// ErrUnsupportedValue is returned when a value cannot be converted to a decimal.
	ErrUnsupportedValue = errors.New("unsupported value type")
)
