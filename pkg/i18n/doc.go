// Package i18n translates validation messages.
//
// A Translator holds one catalog per language, loaded through a
// TranslationAdapter: MapAdapter for in-memory data, FileAdapter for a single
// file, FSAdapter for a directory in any fs.FS (including embed.FS), and
// MergeAdapter to layer several sources. Catalogs are YAML or JSON documents
// keyed by language; message keys may be flat or nested:
//
//	en:
//	  validation.numeric.gt: "must be greater than %{bound}"
//
// The package ships English and German messages for every key produced by
// pkg/validator, available through DefaultCatalog:
//
//	tr, err := i18n.NewDefaultTranslator(ctx, "",
//		i18n.WithDefaultLanguage("en"),
//	)
//	if err != nil {
//		return err
//	}
//	localized := tr.TranslateErrors("de", validator.ExtractValidationErrors(err))
//
// Lookups try the requested language, then its base language ("de-at" ->
// "de"), then the default language. Placeholders use the "%{name}" form and
// receive the error's translation values.
//
// Middleware negotiates the request language from the "lang" query
// parameter, the "lang" cookie or Accept-Language and stores it in the
// request context for GetLocale and Translator.Tc.
package i18n
