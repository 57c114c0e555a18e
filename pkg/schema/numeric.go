package schema

import (
	"github.com/dmitrymomot/numstr/pkg/validator"
)

type ruleFunc func(field string, value *string, r validator.Resolver) validator.Rule

type test struct {
	name    string
	message string
	build   ruleFunc
}

// NumericSchema describes a string field that must hold a decimal number.
// Every method returns a new schema, so a base schema can be shared and
// extended safely.
type NumericSchema struct {
	tests       []test
	required    bool
	requiredMsg string
}

// Numeric creates a numeric string schema. The optional message replaces the
// default "must be a valid number".
func Numeric(message ...string) *NumericSchema {
	s := &NumericSchema{}
	return s.with("numeric", message, func(field string, value *string, _ validator.Resolver) validator.Rule {
		return validator.NumericString(field, value)
	})
}

// Required makes the field mandatory: nil and empty values fail.
func (s *NumericSchema) Required(message ...string) *NumericSchema {
	c := s.clone()
	c.required = true
	c.requiredMsg = first(message)
	return c
}

// Integer rejects values with a non-zero fractional part.
func (s *NumericSchema) Integer(message ...string) *NumericSchema {
	return s.with("integer", message, func(field string, value *string, _ validator.Resolver) validator.Rule {
		return validator.IntegerString(field, value)
	})
}

func (s *NumericSchema) GT(bound validator.Bound, message ...string) *NumericSchema {
	return s.compare("gt", bound, message, validator.GreaterThan)
}

func (s *NumericSchema) GTE(bound validator.Bound, message ...string) *NumericSchema {
	return s.compare("gte", bound, message, validator.GreaterThanOrEqual)
}

func (s *NumericSchema) LT(bound validator.Bound, message ...string) *NumericSchema {
	return s.compare("lt", bound, message, validator.LessThan)
}

func (s *NumericSchema) LTE(bound validator.Bound, message ...string) *NumericSchema {
	return s.compare("lte", bound, message, validator.LessThanOrEqual)
}

func (s *NumericSchema) EQ(bound validator.Bound, message ...string) *NumericSchema {
	return s.compare("eq", bound, message, validator.Equal)
}

// Between requires min <= value <= max. Either bound may be a reference.
func (s *NumericSchema) Between(min, max validator.Bound, message ...string) *NumericSchema {
	return s.with("between", message, func(field string, value *string, r validator.Resolver) validator.Rule {
		return validator.BetweenDecimal(field, value, min.Bind(r), max.Bind(r))
	})
}

// MaxDecimals limits the number of significant fractional digits.
func (s *NumericSchema) MaxDecimals(places int32, message ...string) *NumericSchema {
	return s.with("max_decimals", message, func(field string, value *string, _ validator.Resolver) validator.Rule {
		return validator.MaxDecimalPlaces(field, value, places)
	})
}

func (s *NumericSchema) Positive(message ...string) *NumericSchema {
	return s.with("positive", message, func(field string, value *string, _ validator.Resolver) validator.Rule {
		return validator.PositiveDecimal(field, value)
	})
}

func (s *NumericSchema) NonNegative(message ...string) *NumericSchema {
	return s.with("non_negative", message, func(field string, value *string, _ validator.Resolver) validator.Rule {
		return validator.NonNegativeDecimal(field, value)
	})
}

// Tests returns the names of the constraints in the order they run.
func (s *NumericSchema) Tests() []string {
	names := make([]string, 0, len(s.tests)+1)
	if s.required {
		names = append(names, "required")
	}
	for _, t := range s.tests {
		names = append(names, t.name)
	}
	return names
}

// Rules builds the validation rules for value at field. Reference bounds are
// resolved through r.
func (s *NumericSchema) Rules(field string, value *string, r validator.Resolver) []validator.Rule {
	rules := make([]validator.Rule, 0, len(s.tests)+1)
	if s.required {
		rules = append(rules, requiredRule(field, value).WithMessage(s.requiredMsg))
	}
	for _, t := range s.tests {
		rules = append(rules, t.build(field, value, r).WithMessage(t.message))
	}
	return rules
}

// Validate checks a single value and returns validator.ValidationErrors on failure.
func (s *NumericSchema) Validate(field string, value *string, r validator.Resolver) error {
	return validator.Apply(s.Rules(field, value, r)...)
}

func (s *NumericSchema) compare(name string, bound validator.Bound, message []string, fn func(string, *string, validator.Bound) validator.Rule) *NumericSchema {
	return s.with(name, message, func(field string, value *string, r validator.Resolver) validator.Rule {
		return fn(field, value, bound.Bind(r))
	})
}

func (s *NumericSchema) with(name string, message []string, build ruleFunc) *NumericSchema {
	c := s.clone()
	c.tests = append(c.tests, test{name: name, message: first(message), build: build})
	return c
}

func (s *NumericSchema) clone() *NumericSchema {
	c := *s
	c.tests = append([]test(nil), s.tests...)
	return &c
}

func requiredRule(field string, value *string) validator.Rule {
	return validator.Rule{
		Check: func() bool {
			return value != nil && *value != ""
		},
		Error: validator.ValidationError{
			Field:          field,
			Message:        "is required",
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

func first(message []string) string {
	if len(message) > 0 {
		return message[0]
	}
	return ""
}
