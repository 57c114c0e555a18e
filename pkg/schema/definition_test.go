package schema_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/numstr/pkg/schema"
	"github.com/dmitrymomot/numstr/pkg/validator"
)

const yamlDefinition = `
fields:
  balance:
    required: true
    non_negative: true
  amount:
    required: true
    gt: 0
    lte: {ref: balance}
    max_decimals: 2
    messages:
      lte: "%{field} exceeds the available %{bound}"
  fee:
    between:
      min: 0
      max: "1.5"
  count:
    integer: true
    gte: 123456789012345678901234567890
`

const jsonDefinition = `{
  "fields": {
    "balance": {"required": true, "non_negative": true},
    "amount": {
      "required": true,
      "gt": 0,
      "lte": {"ref": "balance"},
      "max_decimals": 2,
      "messages": {"lte": "%{field} exceeds the available %{bound}"}
    },
    "fee": {"between": {"min": 0, "max": "1.5"}},
    "count": {"integer": true, "gte": 123456789012345678901234567890}
  }
}`

func TestParseDefinition(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for name, parse := range map[string]func() (*schema.Definition, error){
		"yaml": func() (*schema.Definition, error) {
			return schema.NewYAMLParser().ParseDefinition(ctx, []byte(yamlDefinition))
		},
		"json": func() (*schema.Definition, error) {
			return schema.NewJSONParser().ParseDefinition(ctx, []byte(jsonDefinition))
		},
	} {
		t.Run(name, func(t *testing.T) {
			def, err := parse()
			require.NoError(t, err)
			require.Len(t, def.Fields, 4)

			amount := def.Fields["amount"]
			assert.True(t, amount.Required)
			require.NotNil(t, amount.GT)
			assert.Equal(t, "0", amount.GT.Value)
			require.NotNil(t, amount.LTE)
			assert.Equal(t, "balance", amount.LTE.Ref)
			require.NotNil(t, amount.MaxDecimals)
			assert.Equal(t, int32(2), *amount.MaxDecimals)
			assert.Equal(t, "123456789012345678901234567890", def.Fields["count"].GTE.Value)
			assert.Equal(t, "1.5", def.Fields["fee"].Between.Max.Value)

			obj, err := def.Build()
			require.NoError(t, err)
			assert.Equal(t, []string{"amount", "balance", "count", "fee"}, obj.Fields())

			assert.NoError(t, obj.Validate(schema.Document{
				"balance": "100",
				"amount":  "99.99",
				"fee":     "1.5",
				"count":   "123456789012345678901234567891",
			}))

			errs := validator.ExtractValidationErrors(obj.Validate(schema.Document{
				"balance": "100",
				"amount":  "100.01",
				"count":   "123456789012345678901234567889",
			}))
			require.Len(t, errs, 2)
			assert.Equal(t, []string{"amount exceeds the available balance"}, errs.Get("amount"))
			assert.True(t, errs.Has("count"))
		})
	}
}

func TestParseDefinition_Errors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("unknown yaml keys", func(t *testing.T) {
		_, err := schema.NewYAMLParser().ParseDefinition(ctx, []byte("fields:\n  a:\n    greater: 1\n"))
		assert.ErrorIs(t, err, schema.ErrFailedToParseYAML)
	})

	t.Run("unknown json keys", func(t *testing.T) {
		_, err := schema.NewJSONParser().ParseDefinition(ctx, []byte(`{"fields":{"a":{"greater":1}}}`))
		assert.ErrorIs(t, err, schema.ErrFailedToParseJSON)
	})

	t.Run("empty yaml", func(t *testing.T) {
		_, err := schema.NewYAMLParser().ParseDefinition(ctx, nil)
		assert.ErrorIs(t, err, schema.ErrFailedToParseYAML)
	})

	t.Run("bound as a list", func(t *testing.T) {
		_, err := schema.NewYAMLParser().ParseDefinition(ctx, []byte("fields:\n  a:\n    gt: [1, 2]\n"))
		assert.ErrorIs(t, err, schema.ErrInvalidBound)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := schema.NewYAMLParser().ParseDefinition(cctx, []byte(yamlDefinition))
		assert.ErrorIs(t, err, schema.ErrParsingCancelled)
		_, err = schema.NewJSONParser().ParseDocument(cctx, []byte(`{}`))
		assert.ErrorIs(t, err, schema.ErrParsingCancelled)
	})
}

func TestDefinition_Build(t *testing.T) {
	t.Parallel()
	two := int32(2)
	negative := int32(-1)

	t.Run("no fields", func(t *testing.T) {
		_, err := schema.Definition{}.Build()
		assert.ErrorIs(t, err, schema.ErrInvalidDefinition)
	})

	t.Run("literal bound that is not a number", func(t *testing.T) {
		_, err := schema.Definition{Fields: map[string]schema.FieldDefinition{
			"a": {GT: &schema.BoundDefinition{Value: "five"}},
		}}.Build()
		assert.ErrorIs(t, err, schema.ErrInvalidDefinition)
		assert.ErrorIs(t, err, schema.ErrInvalidBound)
	})

	t.Run("literal bound with an unbounded exponent", func(t *testing.T) {
		_, err := schema.Definition{Fields: map[string]schema.FieldDefinition{
			"a": {GT: &schema.BoundDefinition{Value: "1e100000000"}},
		}}.Build()
		assert.ErrorIs(t, err, schema.ErrInvalidBound)
	})

	t.Run("unknown message key", func(t *testing.T) {
		_, err := schema.Definition{Fields: map[string]schema.FieldDefinition{
			"a": {Messages: map[string]string{"greater": "x"}},
		}}.Build()
		assert.ErrorIs(t, err, schema.ErrUnknownMessageKey)
	})

	t.Run("negative max decimals", func(t *testing.T) {
		_, err := schema.Definition{Fields: map[string]schema.FieldDefinition{
			"a": {MaxDecimals: &negative},
		}}.Build()
		assert.ErrorIs(t, err, schema.ErrInvalidDefinition)
	})

	t.Run("all constraints", func(t *testing.T) {
		obj, err := schema.Definition{Fields: map[string]schema.FieldDefinition{
			"a": {
				Required:    true,
				Integer:     true,
				GT:          &schema.BoundDefinition{Value: "0"},
				GTE:         &schema.BoundDefinition{Value: "1"},
				LT:          &schema.BoundDefinition{Value: "10"},
				LTE:         &schema.BoundDefinition{Ref: "max"},
				EQ:          &schema.BoundDefinition{Value: "5"},
				Between:     &schema.RangeDefinition{Min: schema.BoundDefinition{Value: "0"}, Max: schema.BoundDefinition{Value: "9"}},
				MaxDecimals: &two,
				Positive:    true,
				NonNegative: true,
				Messages:    map[string]string{"numeric": "nan"},
			},
		}}.Build()
		require.NoError(t, err)
		s, ok := obj.Field("a")
		require.True(t, ok)
		assert.Equal(t, []string{
			"required", "numeric", "integer", "gt", "gte", "lt", "lte", "eq",
			"between", "max_decimals", "positive", "non_negative",
		}, s.Tests())
		assert.NoError(t, obj.Validate(schema.Document{"a": "5", "max": 5}))

		errs := validator.ExtractValidationErrors(obj.Validate(schema.Document{"a": "x", "max": 5}))
		assert.Equal(t, "nan", errs.Get("a")[0])
	})
}

func TestBoundDefinition_UnmarshalJSON(t *testing.T) {
	t.Parallel()
	var b schema.BoundDefinition
	require.NoError(t, json.Unmarshal([]byte(`1.000000000000000000001`), &b))
	assert.Equal(t, "1.000000000000000000001", b.Value)

	b = schema.BoundDefinition{}
	require.NoError(t, json.Unmarshal([]byte(`"7"`), &b))
	assert.Equal(t, "7", b.Value)

	b = schema.BoundDefinition{}
	require.NoError(t, json.Unmarshal([]byte(`{"ref":"limits.max"}`), &b))
	assert.Equal(t, "limits.max", b.Ref)

	assert.Error(t, json.Unmarshal([]byte(`true`), &b))
}

func TestParseDocument(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("yaml keeps number text", func(t *testing.T) {
		doc, err := schema.NewYAMLParser().ParseDocument(ctx, []byte(`
amount: 1.0000000000000000000000000000000000001
count: -500390393093030330303030
label: "12"
flag: true
empty: null
items:
  - price: 2.50
base: &base {v: 1}
copy: *base
`))
		require.NoError(t, err)
		assert.Equal(t, json.Number("1.0000000000000000000000000000000000001"), doc["amount"])
		assert.Equal(t, json.Number("-500390393093030330303030"), doc["count"])
		assert.Equal(t, "12", doc["label"])
		assert.Equal(t, true, doc["flag"])
		assert.Nil(t, doc["empty"])
		price, ok := doc.Lookup("items.0.price")
		require.True(t, ok)
		assert.Equal(t, json.Number("2.50"), price)
		v, ok := doc.Lookup("copy.v")
		require.True(t, ok)
		assert.Equal(t, json.Number("1"), v)
	})

	t.Run("json keeps number text", func(t *testing.T) {
		doc, err := schema.NewJSONParser().ParseDocument(ctx, []byte(`{"amount": 1.0000000000000000000000000000000000001}`))
		require.NoError(t, err)
		assert.Equal(t, json.Number("1.0000000000000000000000000000000000001"), doc["amount"])
	})

	t.Run("yaml alias expansion is bounded", func(t *testing.T) {
		var b strings.Builder
		b.WriteString("l0: &l0 [\"1\", \"1\", \"1\", \"1\", \"1\", \"1\", \"1\", \"1\", \"1\", \"1\"]\n")
		for i := 1; i <= 9; i++ {
			fmt.Fprintf(&b, "l%d: &l%d [", i, i)
			for j := range 10 {
				if j > 0 {
					b.WriteString(", ")
				}
				fmt.Fprintf(&b, "*l%d", i-1)
			}
			b.WriteString("]\n")
		}
		_, err := schema.NewYAMLParser().ParseDocument(ctx, []byte(b.String()))
		assert.ErrorIs(t, err, schema.ErrDocumentTooLarge)
		assert.ErrorIs(t, err, schema.ErrInvalidDocument)
	})

	t.Run("yaml nesting is bounded", func(t *testing.T) {
		deep := "v: " + strings.Repeat("[", 1100) + strings.Repeat("]", 1100)
		_, err := schema.NewYAMLParser().ParseDocument(ctx, []byte(deep))
		assert.ErrorIs(t, err, schema.ErrDocumentTooLarge)
	})

	t.Run("root must be an object", func(t *testing.T) {
		_, err := schema.NewJSONParser().ParseDocument(ctx, []byte(`[1]`))
		assert.ErrorIs(t, err, schema.ErrNotAnObject)
		_, err = schema.NewYAMLParser().ParseDocument(ctx, []byte(`- 1`))
		assert.ErrorIs(t, err, schema.ErrNotAnObject)
	})

	t.Run("trailing data", func(t *testing.T) {
		_, err := schema.NewJSONParser().ParseDocument(ctx, []byte(`{} {}`))
		assert.ErrorIs(t, err, schema.ErrFailedToParseJSON)
	})
}

func TestLoadFiles(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()

	schemaPath := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(schemaPath, []byte(yamlDefinition), 0o600))
	docPath := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(docPath, []byte(`{"balance":"5","amount":"6"}`), 0o600))

	obj, err := schema.LoadSchema(ctx, schemaPath)
	require.NoError(t, err)
	doc, err := schema.LoadDocument(ctx, docPath)
	require.NoError(t, err)

	errs := validator.ExtractValidationErrors(obj.Validate(doc))
	assert.Equal(t, []string{"amount"}, errs.Fields())

	_, err = schema.LoadSchema(ctx, filepath.Join(dir, "schema.toml"))
	assert.ErrorIs(t, err, schema.ErrUnsupportedFormat)

	_, err = schema.LoadDocument(ctx, filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, schema.ErrFailedToReadFile)
}

func TestNewParserForFile(t *testing.T) {
	t.Parallel()
	assert.IsType(t, &schema.YAMLParser{}, schema.NewParserForFile("a.yaml"))
	assert.IsType(t, &schema.YAMLParser{}, schema.NewParserForFile("a.YML"))
	assert.IsType(t, &schema.JSONParser{}, schema.NewParserForFile("dir/a.json"))
	assert.Nil(t, schema.NewParserForFile("a.txt"))

	assert.True(t, schema.NewYAMLParser().SupportsFileExtension(".yml"))
	assert.True(t, schema.NewJSONParser().SupportsFileExtension("JSON"))
	assert.False(t, schema.NewJSONParser().SupportsFileExtension("yaml"))
}
