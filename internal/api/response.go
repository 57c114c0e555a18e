package api

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope of every JSON response.
type Response struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail describes a failed request. Details maps document fields to
// their localized validation messages.
type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

// ValidationResult is the data of a successful validation.
type ValidationResult struct {
	Valid bool `json:"valid"`
}

func writeJSON(w http.ResponseWriter, status int, body Response) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}
