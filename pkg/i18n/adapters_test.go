package i18n_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/numstr/pkg/i18n"
)

func TestFileAdapter(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "messages.yaml")
	require.NoError(t, os.WriteFile(path, []byte("en:\n  hello: hi\n"), 0o600))

	t.Run("loads file", func(t *testing.T) {
		got, err := i18n.NewFileAdapter(i18n.NewYAMLParser(), path).Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "hi", got["en"]["hello"])
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := i18n.NewFileAdapter(i18n.NewYAMLParser(), filepath.Join(dir, "nope.yaml")).Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrFailedToReadFile)
	})

	t.Run("empty file", func(t *testing.T) {
		empty := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(empty, nil, 0o600))
		_, err := i18n.NewFileAdapter(i18n.NewYAMLParser(), empty).Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrEmptyTranslationFile)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := i18n.NewFileAdapter(i18n.NewYAMLParser(), path).Load(ctx)
		assert.ErrorIs(t, err, i18n.ErrLoadingCancelled)
	})

	t.Run("invalid arguments", func(t *testing.T) {
		assert.Nil(t, i18n.NewFileAdapter(nil, path))
		assert.Nil(t, i18n.NewFileAdapter(i18n.NewYAMLParser(), ""))
	})
}

func TestFSAdapter(t *testing.T) {
	t.Parallel()
	fsys := fstest.MapFS{
		"locales/a.yaml":     {Data: []byte("en:\n  a: one\n  shared: from a\n")},
		"locales/b.yaml":     {Data: []byte("en:\n  shared: from b\nde:\n  a: eins\n")},
		"locales/c.json":     {Data: []byte(`{"fr": {"a": "un"}}`)},
		"locales/notes.txt":  {Data: []byte("ignored")},
		"locales/sub/x.yaml": {Data: []byte("en:\n  x: nested dirs are skipped\n")},
		"broken/bad.yaml":    {Data: []byte("en: [unclosed")},
		"empty/.gitkeep":     {Data: nil},
		"nolang/list.yaml":   {Data: []byte("- 1\n")},
		"scalar/scalar.yaml": {Data: []byte("en: text\n")},
		"emptyfile/e.yaml":   {Data: nil},
		"jsononly/only.json": {Data: []byte(`{"en": {"a": "json"}}`)},
		"jsononly/skip.yaml": {Data: []byte("en:\n  a: yaml\n")},
		"mixed/z.json":       {Data: []byte(`{"en": {"a": "json"}}`)},
		"mixed/y.yaml":       {Data: []byte("en:\n  a: yaml\n  b: yaml\n")},
		"cancel/c.yaml":      {Data: []byte("en:\n  a: b\n")},
	}

	t.Run("merges files in name order", func(t *testing.T) {
		got, err := i18n.NewFSAdapter(i18n.NewYAMLParser(), fsys, "locales").Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, map[string]map[string]any{
			"en": {"a": "one", "shared": "from b"},
			"de": {"a": "eins"},
		}, got)
	})

	t.Run("parser restricts extensions", func(t *testing.T) {
		got, err := i18n.NewFSAdapter(i18n.NewJSONParser(), fsys, "jsononly").Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "json", got["en"]["a"])
	})

	t.Run("without parser every known extension is read", func(t *testing.T) {
		got, err := i18n.NewFSAdapter(nil, fsys, "mixed").Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": "json", "b": "yaml"}, got["en"])
	})

	t.Run("parse error", func(t *testing.T) {
		_, err := i18n.NewFSAdapter(i18n.NewYAMLParser(), fsys, "broken").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrFailedToParseFile)
	})

	t.Run("no catalogs", func(t *testing.T) {
		_, err := i18n.NewFSAdapter(i18n.NewYAMLParser(), fsys, "empty").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrNoTranslationFiles)
	})

	t.Run("root must map languages", func(t *testing.T) {
		_, err := i18n.NewFSAdapter(i18n.NewYAMLParser(), fsys, "nolang").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrFailedToParseFile)
		_, err = i18n.NewFSAdapter(i18n.NewYAMLParser(), fsys, "scalar").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrInvalidCatalog)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := i18n.NewFSAdapter(i18n.NewYAMLParser(), fsys, "emptyfile").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrEmptyTranslationFile)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := i18n.NewFSAdapter(i18n.NewYAMLParser(), fsys, "absent").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrFailedToReadFile)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := i18n.NewFSAdapter(i18n.NewYAMLParser(), fsys, "cancel").Load(ctx)
		assert.ErrorIs(t, err, i18n.ErrLoadingCancelled)
	})

	t.Run("nil filesystem", func(t *testing.T) {
		assert.Nil(t, i18n.NewFSAdapter(i18n.NewYAMLParser(), nil, "locales"))
	})
}

func TestMergeAdapter(t *testing.T) {
	t.Parallel()
	base := &i18n.MapAdapter{Data: map[string]map[string]any{
		"en": {"a": "base", "b": "base"},
	}}
	override := &i18n.MapAdapter{Data: map[string]map[string]any{
		"en": {"b": "override"},
		"de": {"a": "de"},
	}}

	got, err := i18n.Merge(base, nil, override).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]map[string]any{
		"en": {"a": "base", "b": "override"},
		"de": {"a": "de"},
	}, got)
	assert.Equal(t, "base", base.Data["en"]["b"], "sources are not modified")

	_, err = i18n.Merge(base, &failingAdapter{calls: 1}).Load(context.Background())
	assert.Error(t, err)
}

func TestParsers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("json", func(t *testing.T) {
		got, err := i18n.NewJSONParser().Parse(ctx, `{"en": {"validation": {"numeric": {"gt": "x"}}}}`)
		require.NoError(t, err)
		assert.Contains(t, got, "en")

		_, err = i18n.NewJSONParser().Parse(ctx, `{"en": "x"}`)
		assert.ErrorIs(t, err, i18n.ErrInvalidCatalog)

		_, err = i18n.NewJSONParser().Parse(ctx, `{`)
		assert.ErrorIs(t, err, i18n.ErrFailedToParseJSON)
	})

	t.Run("yaml", func(t *testing.T) {
		_, err := i18n.NewYAMLParser().Parse(ctx, "")
		assert.ErrorIs(t, err, i18n.ErrInvalidCatalog)

		_, err = i18n.NewYAMLParser().Parse(ctx, "en: [")
		assert.ErrorIs(t, err, i18n.ErrFailedToParseYAML)
	})

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := i18n.NewYAMLParser().Parse(cctx, "en:\n  a: b\n")
		assert.ErrorIs(t, err, i18n.ErrParsingCancelled)
		_, err = i18n.NewJSONParser().Parse(cctx, `{}`)
		assert.ErrorIs(t, err, i18n.ErrParsingCancelled)
	})

	t.Run("parser for file", func(t *testing.T) {
		assert.IsType(t, &i18n.YAMLParser{}, i18n.NewParserForFile("en.YAML"))
		assert.IsType(t, &i18n.YAMLParser{}, i18n.NewParserForFile("dir/en.yml"))
		assert.IsType(t, &i18n.JSONParser{}, i18n.NewParserForFile("en.json"))
		assert.Nil(t, i18n.NewParserForFile("en.toml"))
		assert.Nil(t, i18n.NewParserForFile("json"))
	})
}
