// Package requestid tags every HTTP request with an identifier.
//
// Middleware accepts a client supplied X-Request-ID when it is at most 128
// characters of letters, digits, '-' or '_', and generates a UUID otherwise.
// The ID is echoed in the response header, stored in the request context
// (FromContext) and added to log records through LogExtractor.
package requestid
