// Package api exposes document validation over HTTP.
//
//	POST /v1/validate
//	Content-Type: application/json
//
//	{"document": {"amount": "12.50", "balance": "100"}}
//
// A valid document answers 200 with {"data": {"valid": true}}. Violations
// answer 422 with the messages grouped by field and translated to the
// negotiated request locale:
//
//	{"error": {"code": "validation_failed", "message": "the document is invalid",
//	  "details": {"amount": ["must be less than or equal to balance"]}}}
//
// Requests may carry their own schema definition in the "schema" member;
// otherwise the schema configured with WithSchema is used. Malformed
// requests answer 400, oversized bodies 413.
package api
