package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/numstr/pkg/i18n"
	"github.com/dmitrymomot/numstr/pkg/schema"
	"github.com/dmitrymomot/numstr/pkg/validator"
)

type checkResult struct {
	Valid  bool                `json:"valid"`
	Errors map[string][]string `json:"errors,omitempty"`
}

func checkCmd() *cobra.Command {
	var (
		locale     string
		localesDir string
		format     string
		abortEarly bool
	)

	c := &cobra.Command{
		Use:   "check SCHEMA DOCUMENT",
		Short: "Validate a document file against a schema file",
		Long: `Validate a JSON or YAML document against a JSON or YAML schema.
Use "-" as DOCUMENT to read a JSON document from stdin.

Exits with status 1 when the document is invalid.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("unknown output format %q: use text or json", format)
			}
			ctx := cmd.Context()

			obj, err := schema.LoadSchema(ctx, args[0])
			if err != nil {
				return err
			}
			if abortEarly {
				obj = obj.AbortEarly()
			}

			var doc schema.Document
			if args[1] == "-" {
				doc, err = schema.DecodeJSONDocument(cmd.InOrStdin())
			} else {
				doc, err = schema.LoadDocument(ctx, args[1])
			}
			if err != nil {
				return err
			}

			verr := obj.Validate(doc)
			if verr == nil {
				return printCheck(cmd.OutOrStdout(), format, nil)
			}
			errs := validator.ExtractValidationErrors(verr)
			if errs == nil {
				return verr
			}

			tr, err := i18n.NewDefaultTranslator(ctx, localesDir, i18n.WithDefaultLanguage(i18n.DefaultLanguage))
			if err != nil {
				return err
			}
			if err := printCheck(cmd.OutOrStdout(), format, tr.TranslateErrors(locale, errs)); err != nil {
				return err
			}
			return ErrInvalidDocument
		},
	}

	c.Flags().StringVarP(&locale, "locale", "l", i18n.DefaultLanguage, "Language of the messages")
	c.Flags().StringVar(&localesDir, "locales-dir", "", "Directory with additional YAML or JSON message catalogs")
	c.Flags().StringVarP(&format, "format", "f", "text", "Output format: text|json")
	c.Flags().BoolVar(&abortEarly, "abort-early", false, "Stop at the first violation")
	return c
}

func printCheck(w io.Writer, format string, errs validator.ValidationErrors) error {
	if format == "json" {
		res := checkResult{Valid: len(errs) == 0}
		if len(errs) > 0 {
			res.Errors = errs.Details()
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	if len(errs) == 0 {
		_, err := fmt.Fprintln(w, "OK")
		return err
	}
	for _, e := range errs {
		if _, err := fmt.Fprintf(w, "%s: %s\n", e.Field, e.Message); err != nil {
			return err
		}
	}
	return nil
}
