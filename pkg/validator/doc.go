// Package validator provides composable validation rules for numeric strings
// backed by arbitrary-precision decimals (github.com/shopspring/decimal).
//
// A Rule couples a boolean Check function with translation-friendly error
// metadata. Rules are evaluated with Apply, which aggregates every failure into
// a ValidationErrors slice that satisfies the error interface, or with
// ApplyFirst, which stops at the first failing rule.
//
// # Numeric strings
//
// Values are passed as *string; nil means the value is absent and every rule
// passes for it. A present value must parse as a decimal: "", ".", "1.2.3",
// "12abc" and " 1" do not. Parsing never goes through float64, so values such
// as "1.0000000000000000000000000000000000001" keep their precision. Values
// beyond MaxExponent ("1e100000000") are not numbers.
//
//	amount := "10.50"
//	err := validator.Apply(
//	    validator.NumericString("amount", &amount),
//	    validator.GreaterThan("amount", &amount, validator.Lit(0)),
//	    validator.MaxDecimalPlaces("amount", &amount, 2),
//	)
//
// # Bounds and references
//
// Comparison rules take a Bound. Lit and Dec build literal bounds; Ref builds
// a reference to another field of the same document, resolved through a
// Resolver when the rule is checked:
//
//	doc := validator.ResolverFunc(func(path string) (any, bool) {
//	    v, ok := form[path]
//	    return v, ok
//	})
//	validator.LessThanOrEqual("amount", &amount, validator.RefIn(doc, "balance"))
//
// A reference that is unbound, missing, or not a valid decimal fails the rule.
//
// # Messages
//
// Default messages are short phrases ("must be greater than 5") meant to be
// prefixed with the field path; ValidationError.Sentence does that. Each error
// also carries a TranslationKey under "validation.numeric" and the values
// "field" and "bound" (or "min"/"max") for catalog-based translation.
// Rule.WithMessage overrides the message with a %{name} template.
package validator
