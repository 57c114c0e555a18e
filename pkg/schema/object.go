package schema

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/numstr/pkg/validator"
)

// ObjectSchema validates a set of numeric fields of one document. Field keys
// are document paths; references in bounds are resolved against the same
// document.
type ObjectSchema struct {
	fields     map[string]*NumericSchema
	abortEarly bool
}

// Object creates an object schema from field paths to numeric schemas.
func Object(fields map[string]*NumericSchema) *ObjectSchema {
	o := &ObjectSchema{fields: make(map[string]*NumericSchema, len(fields))}
	for path, s := range fields {
		if s != nil {
			o.fields[path] = s
		}
	}
	return o
}

// AbortEarly returns a copy that stops at the first failing rule.
func (o *ObjectSchema) AbortEarly() *ObjectSchema {
	return &ObjectSchema{fields: maps.Clone(o.fields), abortEarly: true}
}

// Fields returns the field paths in the order they are validated.
func (o *ObjectSchema) Fields() []string {
	return slices.Sorted(maps.Keys(o.fields))
}

// Field returns the schema for path.
func (o *ObjectSchema) Field(path string) (*NumericSchema, bool) {
	s, ok := o.fields[path]
	return s, ok
}

// Rules builds the rules for every field of doc in sorted field order.
func (o *ObjectSchema) Rules(doc Document) []validator.Rule {
	var rules []validator.Rule
	for _, path := range o.Fields() {
		raw, _ := doc.Lookup(path)
		value, ok := coerce(raw)
		if !ok {
			rules = append(rules, typeRule(path, raw))
			continue
		}
		rules = append(rules, o.fields[path].Rules(path, value, doc)...)
	}
	return rules
}

// Validate checks doc and returns validator.ValidationErrors on failure.
func (o *ObjectSchema) Validate(doc Document) error {
	rules := o.Rules(doc)
	if o.abortEarly {
		return validator.ApplyFirst(rules...)
	}
	return validator.Apply(rules...)
}

// coerce converts a document value to the candidate string. Missing and nil
// values are absent; numbers are formatted without losing precision; other
// types cannot be numeric strings.
func coerce(v any) (*string, bool) {
	var s string
	switch val := v.(type) {
	case nil:
		return nil, true
	case string:
		s = val
	case *string:
		return val, true
	case json.Number:
		s = val.String()
	case decimal.Decimal:
		if !validator.WithinLimits(val) {
			// Expanding it would allocate every digit; the compact form fails to parse.
			s = fmt.Sprintf("%se%d", val.Coefficient(), val.Exponent())
			break
		}
		s = val.String()
	case int:
		s = strconv.Itoa(val)
	case int8:
		s = strconv.FormatInt(int64(val), 10)
	case int16:
		s = strconv.FormatInt(int64(val), 10)
	case int32:
		s = strconv.FormatInt(int64(val), 10)
	case int64:
		s = strconv.FormatInt(val, 10)
	case uint:
		s = strconv.FormatUint(uint64(val), 10)
	case uint8:
		s = strconv.FormatUint(uint64(val), 10)
	case uint16:
		s = strconv.FormatUint(uint64(val), 10)
	case uint32:
		s = strconv.FormatUint(uint64(val), 10)
	case uint64:
		s = strconv.FormatUint(val, 10)
	case float32:
		s = formatFloat(float64(val), 32)
	case float64:
		s = formatFloat(val, 64)
	default:
		return nil, false
	}
	return &s, true
}

func formatFloat(f float64, bits int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

func typeRule(field string, raw any) validator.Rule {
	return validator.Rule{
		Check: func() bool { return false },
		Error: validator.ValidationError{
			Field:          field,
			Message:        "must be a string",
			TranslationKey: "validation.numeric.type",
			TranslationValues: map[string]any{
				"field": field,
				"type":  fmt.Sprintf("%T", raw),
			},
		},
	}
}
