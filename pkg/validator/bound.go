package validator

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxExponent bounds the magnitude of accepted decimals. A value is rejected
// when its smallest digit lies below 10^-MaxExponent or its largest digit
// above 10^MaxExponent. Comparisons rescale both operands to a common
// exponent, so their cost grows with the exponent gap.
const MaxExponent = 10000

// maxDecimalLength is the longest input ParseDecimal reads. Anything longer
// cannot satisfy MaxExponent without padding zeros.
const maxDecimalLength = 2*MaxExponent + 64

// Resolver looks up the current value of another field in the document being validated.
type Resolver interface {
	Lookup(path string) (any, bool)
}

// ResolverFunc adapts an ordinary function to the Resolver interface.
type ResolverFunc func(path string) (any, bool)

func (f ResolverFunc) Lookup(path string) (any, bool) { return f(path) }

// Bound is the right-hand operand of a decimal comparison: either a literal
// or a reference to another field resolved at validation time.
type Bound struct {
	label    string
	value    decimal.Decimal
	err      error
	ref      string
	resolver Resolver
}

// Lit creates a literal bound from a number or a numeric string.
// A literal that is not a valid decimal makes every comparison against it fail.
func Lit[T Numeric | ~string](v T) Bound {
	raw := fmt.Sprint(v)
	d, err := parseOrErr(raw)
	return Bound{label: raw, value: d, err: err}
}

// Dec creates a literal bound from an already parsed decimal. A decimal
// outside MaxExponent makes every comparison against it fail.
func Dec(d decimal.Decimal) Bound {
	if !WithinLimits(d) {
		return Bound{label: compactString(d), err: fmt.Errorf("%w: exponent out of range", ErrNotNumeric)}
	}
	return Bound{label: d.String(), value: d}
}

// Ref creates a reference to the field at path. It must be bound to a
// Resolver with Bind before it can be resolved.
func Ref(path string) Bound {
	return Bound{label: path, ref: path}
}

// RefIn creates a reference to the field at path resolved through r.
func RefIn(r Resolver, path string) Bound {
	return Bound{label: path, ref: path, resolver: r}
}

// Bind attaches r to an unbound reference. Literals and references that
// already have a resolver are returned unchanged.
func (b Bound) Bind(r Resolver) Bound {
	if b.ref != "" && b.resolver == nil {
		b.resolver = r
	}
	return b
}

// IsRef reports whether the bound refers to another field.
func (b Bound) IsRef() bool {
	return b.ref != ""
}

// Label is the literal text or the referenced path, used in messages.
func (b Bound) Label() string {
	return b.label
}

// Resolve returns the decimal value of the bound.
func (b Bound) Resolve() (decimal.Decimal, error) {
	if !b.IsRef() {
		return b.value, b.err
	}
	if b.resolver == nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrUnboundReference, b.ref)
	}
	v, ok := b.resolver.Lookup(b.ref)
	if !ok || v == nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrReferenceNotFound, b.ref)
	}
	return ToDecimal(v)
}

// ParseDecimal parses s as an arbitrary-precision decimal. Empty strings,
// surrounding whitespace, non-numeric characters, NaN, Infinity and values
// outside MaxExponent are rejected.
func ParseDecimal(s string) (decimal.Decimal, bool) {
	if len(s) > maxDecimalLength {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !WithinLimits(d) {
		return decimal.Decimal{}, false
	}
	return d, true
}

// WithinLimits reports whether every digit of d lies between 10^-MaxExponent
// and 10^MaxExponent. Zero passes only with an exponent in that range.
func WithinLimits(d decimal.Decimal) bool {
	exp := int64(d.Exponent())
	if exp < -MaxExponent || exp > MaxExponent {
		return false
	}
	return exp+int64(numDigits(d))-1 <= MaxExponent
}

func numDigits(d decimal.Decimal) int {
	return len(strings.TrimPrefix(d.Coefficient().String(), "-"))
}

// fractionDigits counts the significant digits after the decimal point,
// ignoring trailing zeros. d must be within limits.
func fractionDigits(d decimal.Decimal) int64 {
	exp := int64(d.Exponent())
	if exp >= 0 || d.IsZero() {
		return 0
	}
	coef := strings.TrimPrefix(d.Coefficient().String(), "-")
	trailing := len(coef) - len(strings.TrimRight(coef, "0"))
	return max(-exp-int64(trailing), 0)
}

// compactString renders d as coefficient and exponent without expanding it.
func compactString(d decimal.Decimal) string {
	return fmt.Sprintf("%se%d", d.Coefficient().String(), d.Exponent())
}

// ToDecimal converts a document value to a decimal.
func ToDecimal(v any) (decimal.Decimal, error) {
	switch val := v.(type) {
	case string:
		return parseOrErr(val)
	case *string:
		if val == nil {
			return decimal.Decimal{}, ErrReferenceNotFound
		}
		return parseOrErr(*val)
	case json.Number:
		return parseOrErr(val.String())
	case decimal.Decimal:
		return checkLimits(val)
	case *decimal.Decimal:
		if val == nil {
			return decimal.Decimal{}, ErrReferenceNotFound
		}
		return checkLimits(*val)
	case int:
		return decimal.NewFromInt(int64(val)), nil
	case int8:
		return decimal.NewFromInt(int64(val)), nil
	case int16:
		return decimal.NewFromInt(int64(val)), nil
	case int32:
		return decimal.NewFromInt32(val), nil
	case int64:
		return decimal.NewFromInt(val), nil
	case uint:
		return fromUint(uint64(val)), nil
	case uint8:
		return fromUint(uint64(val)), nil
	case uint16:
		return fromUint(uint64(val)), nil
	case uint32:
		return fromUint(uint64(val)), nil
	case uint64:
		return fromUint(val), nil
	case float32:
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return decimal.Decimal{}, ErrNotNumeric
		}
		return decimal.NewFromFloat32(val), nil
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return decimal.Decimal{}, ErrNotNumeric
		}
		return decimal.NewFromFloat(val), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

func parseOrErr(s string) (decimal.Decimal, error) {
	d, ok := ParseDecimal(s)
	if !ok {
		if len(s) > 64 {
			s = s[:64] + "..."
		}
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	return d, nil
}

func checkLimits(d decimal.Decimal) (decimal.Decimal, error) {
	if !WithinLimits(d) {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrNotNumeric, compactString(d))
	}
	return d, nil
}

func fromUint(u uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(u), 0)
}
