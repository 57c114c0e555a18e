package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// ValidationError represents a single validation error with translation support.
type ValidationError struct {
	Field             string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

// Sentence renders the error as a standalone message prefixed with the field path,
// e.g. "amount must be greater than 5".
func (e ValidationError) Sentence() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

// ValidationErrors represents a collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Get returns the messages recorded for field in evaluation order.
func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

func (ve ValidationErrors) GetErrors(field string) []ValidationError {
	var errs []ValidationError
	for _, err := range ve {
		if err.Field == field {
			errs = append(errs, err)
		}
	}
	return errs
}

// Fields returns the distinct failing fields in first-seen order.
func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

// Details groups messages by field, the shape used by JSON error responses.
func (ve ValidationErrors) Details() map[string][]string {
	details := make(map[string][]string, len(ve))
	for _, err := range ve {
		details[err.Field] = append(details[err.Field], err.Message)
	}
	return details
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Rule represents a single validation rule.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// placeholderRegex matches named placeholders in the form %{name}.
var placeholderRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// WithMessage replaces the rule's default message. The template may reference
// any translation value by name, e.g. "%{field} must exceed %{bound}".
// Unknown placeholders are kept as-is. The translation key is cleared so a
// translator never overrides the custom text.
func (r Rule) WithMessage(tmpl string) Rule {
	if tmpl == "" {
		return r
	}
	r.Error.Message = RenderMessage(tmpl, r.Error.TranslationValues)
	r.Error.TranslationKey = ""
	return r
}

// RenderMessage substitutes %{name} placeholders in tmpl with values.
func RenderMessage(tmpl string, values map[string]any) string {
	return placeholderRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := values[name]; ok {
			return fmt.Sprint(val)
		}
		return match
	})
}

// Apply executes multiple validation rules and returns any validation errors.
func Apply(rules ...Rule) error {
	var errs ValidationErrors

	for _, rule := range rules {
		if !rule.Check() {
			errs = append(errs, rule.Error)
		}
	}

	if errs.IsEmpty() {
		return nil
	}

	return errs
}

// ApplyFirst executes rules in order and stops at the first failure.
func ApplyFirst(rules ...Rule) error {
	for _, rule := range rules {
		if !rule.Check() {
			return ValidationErrors{rule.Error}
		}
	}
	return nil
}

// ExtractValidationErrors extracts ValidationErrors from an error.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}
