package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/numstr/pkg/validator"
)

func TestValidationErrors_Error(t *testing.T) {
	t.Parallel()
	t.Run("returns default message when no errors", func(t *testing.T) {
		var errs validator.ValidationErrors
		assert.Equal(t, "validation failed", errs.Error())
	})

	t.Run("returns formatted message with single error", func(t *testing.T) {
		var errs validator.ValidationErrors
		errs.Add(validator.ValidationError{Field: "amount", Message: "must be a valid number"})
		assert.Equal(t, "validation failed: amount: must be a valid number", errs.Error())
	})

	t.Run("joins multiple errors in order", func(t *testing.T) {
		var errs validator.ValidationErrors
		errs.Add(validator.ValidationError{Field: "amount", Message: "must be a valid number"})
		errs.Add(validator.ValidationError{Field: "fee", Message: "must be positive"})
		assert.Equal(t, "validation failed: amount: must be a valid number; fee: must be positive", errs.Error())
	})
}

func TestValidationErrors_Accessors(t *testing.T) {
	t.Parallel()
	errs := validator.ValidationErrors{
		{Field: "amount", Message: "must be a valid number"},
		{Field: "fee", Message: "must be positive"},
		{Field: "amount", Message: "must be greater than 0"},
	}

	t.Run("has", func(t *testing.T) {
		assert.True(t, errs.Has("amount"))
		assert.False(t, errs.Has("total"))
	})

	t.Run("get keeps evaluation order", func(t *testing.T) {
		assert.Equal(t, []string{"must be a valid number", "must be greater than 0"}, errs.Get("amount"))
		assert.Empty(t, errs.Get("total"))
	})

	t.Run("get errors", func(t *testing.T) {
		got := errs.GetErrors("fee")
		require.Len(t, got, 1)
		assert.Equal(t, "must be positive", got[0].Message)
	})

	t.Run("fields are unique in first-seen order", func(t *testing.T) {
		assert.Equal(t, []string{"amount", "fee"}, errs.Fields())
	})

	t.Run("details group messages by field", func(t *testing.T) {
		assert.Equal(t, map[string][]string{
			"amount": {"must be a valid number", "must be greater than 0"},
			"fee":    {"must be positive"},
		}, errs.Details())
	})

	t.Run("is empty", func(t *testing.T) {
		assert.False(t, errs.IsEmpty())
		assert.True(t, validator.ValidationErrors{}.IsEmpty())
	})
}

func TestValidationError_Sentence(t *testing.T) {
	t.Parallel()
	e := validator.ValidationError{Field: "price", Message: "must be greater than 5"}
	assert.Equal(t, "price must be greater than 5", e.Sentence())

	e.Field = ""
	assert.Equal(t, "must be greater than 5", e.Sentence())
}

func TestApply(t *testing.T) {
	t.Parallel()
	t.Run("returns nil when all rules pass", func(t *testing.T) {
		v := ptr("10")
		err := validator.Apply(
			validator.NumericString("amount", v),
			validator.GreaterThan("amount", v, validator.Lit(5)),
		)
		assert.NoError(t, err)
	})

	t.Run("returns nil without rules", func(t *testing.T) {
		assert.NoError(t, validator.Apply())
	})

	t.Run("collects every failure", func(t *testing.T) {
		v := ptr("abc")
		err := validator.Apply(
			validator.NumericString("amount", v),
			validator.GreaterThan("amount", v, validator.Lit(5)),
			validator.NumericString("fee", ptr("1")),
		)
		require.Error(t, err)
		errs := validator.ExtractValidationErrors(err)
		require.Len(t, errs, 2)
		assert.Equal(t, []string{"amount"}, errs.Fields())
	})
}

func TestApplyFirst(t *testing.T) {
	t.Parallel()
	v := ptr("abc")
	err := validator.ApplyFirst(
		validator.NumericString("amount", v),
		validator.GreaterThan("amount", v, validator.Lit(5)),
	)
	require.Error(t, err)
	errs := validator.ExtractValidationErrors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "validation.numeric", errs[0].TranslationKey)

	assert.NoError(t, validator.ApplyFirst(validator.NumericString("amount", ptr("1"))))
}

func TestExtractValidationErrors(t *testing.T) {
	t.Parallel()
	t.Run("nil error", func(t *testing.T) {
		assert.Nil(t, validator.ExtractValidationErrors(nil))
	})

	t.Run("wrapped validation errors", func(t *testing.T) {
		inner := validator.ValidationErrors{{Field: "amount", Message: "must be a valid number"}}
		wrapped := fmt.Errorf("create payment: %w", inner)
		assert.Equal(t, inner, validator.ExtractValidationErrors(wrapped))
		assert.True(t, validator.IsValidationError(wrapped))
	})

	t.Run("other errors", func(t *testing.T) {
		err := errors.New("boom")
		assert.Nil(t, validator.ExtractValidationErrors(err))
		assert.False(t, validator.IsValidationError(err))
		assert.False(t, validator.IsValidationError(nil))
	})
}

func TestRule_WithMessage(t *testing.T) {
	t.Parallel()
	t.Run("renders placeholders from translation values", func(t *testing.T) {
		rule := validator.GreaterThan("price", ptr("1"), validator.Lit(5)).
			WithMessage("%{field} needs to exceed %{bound}")
		assert.False(t, rule.Check())
		assert.Equal(t, "price needs to exceed 5", rule.Error.Message)
		assert.Empty(t, rule.Error.TranslationKey)
	})

	t.Run("keeps unknown placeholders", func(t *testing.T) {
		rule := validator.NumericString("price", nil).WithMessage("%{field} %{unknown}")
		assert.Equal(t, "price %{unknown}", rule.Error.Message)
	})

	t.Run("empty template keeps default", func(t *testing.T) {
		rule := validator.NumericString("price", nil).WithMessage("")
		assert.Equal(t, "must be a valid number", rule.Error.Message)
		assert.Equal(t, "validation.numeric", rule.Error.TranslationKey)
	})
}

func TestRenderMessage(t *testing.T) {
	t.Parallel()
	got := validator.RenderMessage("%{field} must be between %{min} and %{max}", map[string]any{
		"field": "rate",
		"min":   0,
		"max":   "100",
	})
	assert.Equal(t, "rate must be between 0 and 100", got)
}

func ptr(s string) *string {
	return &s
}
