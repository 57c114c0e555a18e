package validator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Decimal string rules treat a nil value as absent: absence always passes,
// presence is enforced separately.

// NumericString validates that value parses as a decimal number.
func NumericString(field string, value *string) Rule {
	return Rule{
		Check: func() bool {
			if value == nil {
				return true
			}
			_, ok := ParseDecimal(*value)
			return ok
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid number",
			TranslationKey: "validation.numeric",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// IntegerString validates that value is a decimal with no fractional part.
// "1.0" and "-500390393093030330303030" are integers, "1.5" is not.
func IntegerString(field string, value *string) Rule {
	return Rule{
		Check: func() bool {
			return checkDecimal(value, func(d decimal.Decimal) bool {
				return d.IsInteger()
			})
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be an integer",
			TranslationKey: "validation.numeric.integer",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// GreaterThan validates that value is strictly greater than bound.
func GreaterThan(field string, value *string, bound Bound) Rule {
	return compareRule(field, value, bound, "validation.numeric.gt", "greater than", func(c int) bool {
		return c > 0
	})
}

// GreaterThanOrEqual validates that value is greater than or equal to bound.
func GreaterThanOrEqual(field string, value *string, bound Bound) Rule {
	return compareRule(field, value, bound, "validation.numeric.gte", "greater than or equal to", func(c int) bool {
		return c >= 0
	})
}

// LessThan validates that value is strictly less than bound.
func LessThan(field string, value *string, bound Bound) Rule {
	return compareRule(field, value, bound, "validation.numeric.lt", "less than", func(c int) bool {
		return c < 0
	})
}

// LessThanOrEqual validates that value is less than or equal to bound.
func LessThanOrEqual(field string, value *string, bound Bound) Rule {
	return compareRule(field, value, bound, "validation.numeric.lte", "less than or equal to", func(c int) bool {
		return c <= 0
	})
}

// Equal validates that value is numerically equal to bound, so "5.30" equals 5.3.
func Equal(field string, value *string, bound Bound) Rule {
	return compareRule(field, value, bound, "validation.numeric.eq", "equal to", func(c int) bool {
		return c == 0
	})
}

// BetweenDecimal validates that min <= value <= max.
func BetweenDecimal(field string, value *string, min, max Bound) Rule {
	return Rule{
		Check: func() bool {
			return checkDecimal(value, func(d decimal.Decimal) bool {
				lo, err := min.Resolve()
				if err != nil {
					return false
				}
				hi, err := max.Resolve()
				if err != nil {
					return false
				}
				return d.GreaterThanOrEqual(lo) && d.LessThanOrEqual(hi)
			})
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be between %s and %s", min.Label(), max.Label()),
			TranslationKey: "validation.numeric.between",
			TranslationValues: map[string]any{
				"field": field,
				"min":   min.Label(),
				"max":   max.Label(),
			},
		},
	}
}

// MaxDecimalPlaces validates that value has at most places significant
// fractional digits. Trailing zeros do not count: "1.50" has one. Negative
// places behave like zero.
func MaxDecimalPlaces(field string, value *string, places int32) Rule {
	return Rule{
		Check: func() bool {
			return checkDecimal(value, func(d decimal.Decimal) bool {
				return fractionDigits(d) <= int64(max(places, 0))
			})
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("cannot have more than %d decimal places", places),
			TranslationKey: "validation.numeric.max_decimals",
			TranslationValues: map[string]any{
				"field":        field,
				"max_decimals": places,
			},
		},
	}
}

// PositiveDecimal validates that value is greater than zero.
func PositiveDecimal(field string, value *string) Rule {
	return Rule{
		Check: func() bool {
			return checkDecimal(value, func(d decimal.Decimal) bool {
				return d.IsPositive()
			})
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be positive",
			TranslationKey: "validation.numeric.positive",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// NonNegativeDecimal validates that value is zero or greater.
func NonNegativeDecimal(field string, value *string) Rule {
	return Rule{
		Check: func() bool {
			return checkDecimal(value, func(d decimal.Decimal) bool {
				return !d.IsNegative()
			})
		},
		Error: ValidationError{
			Field:          field,
			Message:        "cannot be negative",
			TranslationKey: "validation.numeric.non_negative",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

func compareRule(field string, value *string, bound Bound, key, relation string, accept func(int) bool) Rule {
	return Rule{
		Check: func() bool {
			return checkDecimal(value, func(d decimal.Decimal) bool {
				b, err := bound.Resolve()
				if err != nil {
					return false
				}
				return accept(d.Cmp(b))
			})
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be %s %s", relation, bound.Label()),
			TranslationKey: key,
			TranslationValues: map[string]any{
				"field": field,
				"bound": bound.Label(),
			},
		},
	}
}

// checkDecimal passes absent values and fails unparsable ones before calling fn.
func checkDecimal(value *string, fn func(decimal.Decimal) bool) bool {
	if value == nil {
		return true
	}
	d, ok := ParseDecimal(*value)
	if !ok {
		return false
	}
	return fn(d)
}
