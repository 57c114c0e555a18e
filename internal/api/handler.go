package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/numstr/pkg/clientip"
	"github.com/dmitrymomot/numstr/pkg/i18n"
	"github.com/dmitrymomot/numstr/pkg/logger"
	"github.com/dmitrymomot/numstr/pkg/ratelimiter"
	"github.com/dmitrymomot/numstr/pkg/schema"
	"github.com/dmitrymomot/numstr/pkg/validator"
)

// Handler validates documents over HTTP.
type Handler struct {
	schema       *schema.ObjectSchema
	schemaSource string
	translator   *i18n.Translator
	log          *slog.Logger
	maxBodySize  int64
	cacheSize    int
	cache        *schemaCache
	limiter      *ratelimiter.Limiter
	resolver     *clientip.Resolver
}

// Option configures a Handler.
type Option func(*Handler)

// WithSchema sets the schema used when a request does not carry its own.
// source names it in logs, typically the file it was loaded from.
func WithSchema(s *schema.ObjectSchema, source string) Option {
	return func(h *Handler) {
		h.schema = s
		h.schemaSource = source
	}
}

// WithTranslator localizes response messages.
func WithTranslator(tr *i18n.Translator) Option {
	return func(h *Handler) {
		h.translator = tr
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// WithMaxBodySize overrides DefaultMaxBodySize. Non-positive values are ignored.
func WithMaxBodySize(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxBodySize = n
		}
	}
}

// WithSchemaCacheSize sets how many compiled inline schemas are kept.
// Zero disables the cache.
func WithSchemaCacheSize(n int) Option {
	return func(h *Handler) {
		h.cacheSize = max(n, 0)
	}
}

// WithRateLimiter limits /v1 requests per client IP.
func WithRateLimiter(l *ratelimiter.Limiter) Option {
	return func(h *Handler) {
		h.limiter = l
	}
}

// WithClientIPResolver sets how client addresses are determined. Without it
// only the connection's RemoteAddr is used.
func WithClientIPResolver(res *clientip.Resolver) Option {
	return func(h *Handler) {
		if res != nil {
			h.resolver = res
		}
	}
}

func NewHandler(opts ...Option) *Handler {
	h := &Handler{
		log:         logger.Discard(),
		maxBodySize: DefaultMaxBodySize,
		cacheSize:   DefaultSchemaCacheSize,
		resolver:    clientip.NewResolver(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.cache = newSchemaCache(h.cacheSize)
	h.log = h.log.With(logger.Component("api"))
	return h
}

// Validate handles POST /v1/validate.
//
// The body is {"document": {...}} checked against the configured schema, or
// {"schema": {...}, "document": {...}} with an inline schema definition.
// The abort_early query parameter stops at the first violation.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var req validateRequest
	if err := bindJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	obj, source, err := h.resolveSchema(ctx, req.Schema)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if abortEarly, _ := strconv.ParseBool(r.URL.Query().Get("abort_early")); abortEarly {
		obj = obj.AbortEarly()
	}

	doc, err := decodeDocument(req.Document)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := obj.Validate(doc); err != nil {
		errs := validator.ExtractValidationErrors(err)
		if errs == nil {
			h.fail(w, r, err)
			return
		}
		h.reject(w, r, source, errs)
		return
	}

	h.log.DebugContext(ctx, "document accepted", logger.Schema(source))
	h.write(w, r, http.StatusOK, Response{Data: ValidationResult{Valid: true}})
}

// NotFound answers unknown routes with a JSON error.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.fail(w, r, errNotFound)
}

// TooManyRequests answers requests rejected by the rate limiter.
func (h *Handler) TooManyRequests(w http.ResponseWriter, r *http.Request) {
	h.fail(w, r, errTooManyRequests)
}

// MethodNotAllowed answers known routes called with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.fail(w, r, errMethodNotAllowed)
}

func (h *Handler) resolveSchema(ctx context.Context, raw []byte) (*schema.ObjectSchema, string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		if h.schema == nil {
			return nil, "", ErrSchemaRequired
		}
		return h.schema, h.schemaSource, nil
	}

	if obj, ok := h.cache.get(raw); ok {
		return obj, "inline", nil
	}
	def, err := schema.NewJSONParser().ParseDefinition(ctx, raw)
	if err != nil {
		return nil, "", errors.Join(ErrInvalidSchema, err)
	}
	obj, err := def.Build()
	if err != nil {
		return nil, "", errors.Join(ErrInvalidSchema, err)
	}
	h.cache.add(raw, obj)
	return obj, "inline", nil
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request, source string, errs validator.ValidationErrors) {
	ctx := r.Context()
	lang := i18n.GetLocale(ctx)
	if h.translator != nil {
		errs = h.translator.TranslateErrors(lang, errs)
	}

	h.log.InfoContext(ctx, "document rejected",
		logger.Schema(source),
		logger.Locale(lang),
		logger.Violations(len(errs)),
		logger.Fields(errs.Fields()),
	)

	h.write(w, r, http.StatusUnprocessableEntity, Response{Error: &ErrorDetail{
		Code:    "validation_failed",
		Message: h.message(lang, "validation_failed", validator.ErrValidationFailed.Error()),
		Details: errs.Details(),
	}})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	httpErr := toHTTPError(err)

	if httpErr.Status >= http.StatusInternalServerError {
		h.log.ErrorContext(ctx, "request failed", logger.Error(err))
	} else {
		h.log.DebugContext(ctx, "bad request", logger.Error(err), slog.String("code", httpErr.Code))
	}

	fallback := http.StatusText(httpErr.Status)
	if httpErr.Status < http.StatusInternalServerError && httpErr.Err != nil {
		fallback = httpErr.Err.Error()
	}
	h.write(w, r, httpErr.Status, Response{Error: &ErrorDetail{
		Code:    httpErr.Code,
		Message: h.message(i18n.GetLocale(ctx), httpErr.Code, fallback),
	}})
}

func (h *Handler) message(lang, code, fallback string) string {
	if h.translator == nil {
		return fallback
	}
	return h.translator.Td(lang, "api."+code, fallback)
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, status int, body Response) {
	if err := writeJSON(w, status, body); err != nil {
		h.log.WarnContext(r.Context(), "failed to write response", logger.Error(fmt.Errorf("status %d: %w", status, err)))
	}
}
