package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/numstr/pkg/validator"
)

// Definition is the declarative form of an object schema, loaded from YAML or JSON:
//
//	fields:
//	  amount:
//	    required: true
//	    gt: 0
//	    lte: {ref: balance}
//	    max_decimals: 2
//	    messages:
//	      lte: "%{field} exceeds the available %{bound}"
type Definition struct {
	Fields map[string]FieldDefinition `yaml:"fields" json:"fields"`
}

// FieldDefinition lists the constraints of one numeric field.
type FieldDefinition struct {
	Required    bool              `yaml:"required" json:"required"`
	Integer     bool              `yaml:"integer" json:"integer"`
	GT          *BoundDefinition  `yaml:"gt" json:"gt"`
	GTE         *BoundDefinition  `yaml:"gte" json:"gte"`
	LT          *BoundDefinition  `yaml:"lt" json:"lt"`
	LTE         *BoundDefinition  `yaml:"lte" json:"lte"`
	EQ          *BoundDefinition  `yaml:"eq" json:"eq"`
	Between     *RangeDefinition  `yaml:"between" json:"between"`
	MaxDecimals *int32            `yaml:"max_decimals" json:"max_decimals"`
	Positive    bool              `yaml:"positive" json:"positive"`
	NonNegative bool              `yaml:"non_negative" json:"non_negative"`
	Messages    map[string]string `yaml:"messages" json:"messages"`
}

// RangeDefinition is an inclusive range for the between constraint.
type RangeDefinition struct {
	Min BoundDefinition `yaml:"min" json:"min"`
	Max BoundDefinition `yaml:"max" json:"max"`
}

// BoundDefinition is either a literal number (5, "5.30") or a reference to
// another field ({ref: path}).
type BoundDefinition struct {
	Value string
	Ref   string
}

type refDefinition struct {
	Ref string `yaml:"ref" json:"ref"`
}

// UnmarshalYAML keeps the scalar text as written so large literals keep their precision.
func (b *BoundDefinition) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		b.Value = node.Value
		return nil
	case yaml.MappingNode:
		var ref refDefinition
		if err := node.Decode(&ref); err != nil {
			return err
		}
		b.Ref = ref.Ref
		return nil
	default:
		return fmt.Errorf("%w: expected number or {ref: path} at line %d", ErrInvalidBound, node.Line)
	}
}

// UnmarshalJSON accepts numbers, strings and {"ref": "path"}.
func (b *BoundDefinition) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrInvalidBound
	}
	switch data[0] {
	case '{':
		var ref refDefinition
		if err := json.Unmarshal(data, &ref); err != nil {
			return err
		}
		b.Ref = ref.Ref
	case '"':
		return json.Unmarshal(data, &b.Value)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidBound, data)
		}
		b.Value = n.String()
	}
	return nil
}

// Bound converts the definition to a validator bound.
func (b BoundDefinition) Bound() (validator.Bound, error) {
	if b.Ref != "" {
		return validator.Ref(b.Ref), nil
	}
	if _, ok := validator.ParseDecimal(b.Value); !ok {
		return validator.Bound{}, fmt.Errorf("%w: %q is not a number", ErrInvalidBound, b.Value)
	}
	return validator.Lit(b.Value), nil
}

var messageKeys = []string{
	"numeric", "required", "integer", "gt", "gte", "lt", "lte", "eq",
	"between", "max_decimals", "positive", "non_negative",
}

// Build turns the definition into an ObjectSchema. Literal bounds are checked
// here so a broken definition fails at load time rather than on every request.
func (d Definition) Build() (*ObjectSchema, error) {
	if len(d.Fields) == 0 {
		return nil, fmt.Errorf("%w: no fields defined", ErrInvalidDefinition)
	}

	fields := make(map[string]*NumericSchema, len(d.Fields))
	var errs []error
	for path, fd := range d.Fields {
		s, err := fd.build()
		if err != nil {
			errs = append(errs, fmt.Errorf("field %q: %w", path, err))
			continue
		}
		fields[path] = s
	}
	if len(errs) > 0 {
		return nil, errors.Join(append([]error{ErrInvalidDefinition}, errs...)...)
	}
	return Object(fields), nil
}

func (fd FieldDefinition) build() (*NumericSchema, error) {
	for key := range fd.Messages {
		if !slices.Contains(messageKeys, key) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownMessageKey, key)
		}
	}
	msg := func(key string) []string {
		if m, ok := fd.Messages[key]; ok {
			return []string{m}
		}
		return nil
	}

	s := Numeric(msg("numeric")...)
	if fd.Required {
		s = s.Required(msg("required")...)
	}
	if fd.Integer {
		s = s.Integer(msg("integer")...)
	}

	comparisons := []struct {
		key   string
		def   *BoundDefinition
		apply func(*NumericSchema, validator.Bound, ...string) *NumericSchema
	}{
		{"gt", fd.GT, (*NumericSchema).GT},
		{"gte", fd.GTE, (*NumericSchema).GTE},
		{"lt", fd.LT, (*NumericSchema).LT},
		{"lte", fd.LTE, (*NumericSchema).LTE},
		{"eq", fd.EQ, (*NumericSchema).EQ},
	}
	for _, c := range comparisons {
		if c.def == nil {
			continue
		}
		b, err := c.def.Bound()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.key, err)
		}
		s = c.apply(s, b, msg(c.key)...)
	}

	if fd.Between != nil {
		lo, err := fd.Between.Min.Bound()
		if err != nil {
			return nil, fmt.Errorf("between.min: %w", err)
		}
		hi, err := fd.Between.Max.Bound()
		if err != nil {
			return nil, fmt.Errorf("between.max: %w", err)
		}
		s = s.Between(lo, hi, msg("between")...)
	}
	if fd.MaxDecimals != nil {
		if *fd.MaxDecimals < 0 {
			return nil, fmt.Errorf("%w: max_decimals must not be negative", ErrInvalidDefinition)
		}
		s = s.MaxDecimals(*fd.MaxDecimals, msg("max_decimals")...)
	}
	if fd.Positive {
		s = s.Positive(msg("positive")...)
	}
	if fd.NonNegative {
		s = s.NonNegative(msg("non_negative")...)
	}
	return s, nil
}
