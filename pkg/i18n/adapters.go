package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"
)

// TranslationAdapter loads catalogs keyed by language code.
type TranslationAdapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapAdapter serves catalogs from memory.
type MapAdapter struct {
	Data map[string]map[string]any
}

// Load implements TranslationAdapter.
func (a *MapAdapter) Load(_ context.Context) (map[string]map[string]any, error) {
	if a.Data == nil {
		return make(map[string]map[string]any), nil
	}
	return a.Data, nil
}

// FileAdapter loads catalogs from a single file on disk.
type FileAdapter struct {
	parser Parser
	path   string
}

// NewFileAdapter returns nil when parser is nil or path is empty.
func NewFileAdapter(parser Parser, path string) *FileAdapter {
	if parser == nil || path == "" {
		return nil
	}
	return &FileAdapter{parser: parser, path: path}
}

// Load implements TranslationAdapter.
func (a *FileAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	content, err := os.ReadFile(a.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	return parseFile(ctx, a.parser, a.path, content)
}

// FSAdapter loads every file under dir in fsys that the parser understands.
// Files are read in name order and later files override earlier ones key by key.
// It works with embed.FS as well as os.DirFS. Without a parser, each file is
// decoded according to its extension.
type FSAdapter struct {
	parser Parser
	fsys   fs.FS
	dir    string
}

// NewFSAdapter returns nil when fsys is nil. An empty dir means the root of fsys.
func NewFSAdapter(parser Parser, fsys fs.FS, dir string) *FSAdapter {
	if fsys == nil {
		return nil
	}
	if dir == "" {
		dir = "."
	}
	return &FSAdapter{parser: parser, fsys: fsys, dir: dir}
}

// Load implements TranslationAdapter.
func (a *FSAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}

	result := make(map[string]map[string]any)
	processed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		parser := a.parserFor(entry.Name())
		if parser == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}

		name := path.Join(a.dir, entry.Name())
		content, err := fs.ReadFile(a.fsys, name)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, fmt.Errorf("%s: %w", name, err))
		}
		translations, err := parseFile(ctx, parser, name, content)
		if err != nil {
			return nil, err
		}
		merge(result, translations)
		processed++
	}

	if processed == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoTranslationFiles, a.dir)
	}
	return result, nil
}

func (a *FSAdapter) parserFor(name string) Parser {
	if a.parser == nil {
		return NewParserForFile(name)
	}
	if a.parser.SupportsFileExtension(filepath.Ext(name)) {
		return a.parser
	}
	return nil
}

// MergeAdapter combines several adapters. Catalogs are merged in order, so
// entries from later adapters replace those from earlier ones.
type MergeAdapter struct {
	adapters []TranslationAdapter
}

// Merge builds a MergeAdapter, skipping nil adapters.
func Merge(adapters ...TranslationAdapter) *MergeAdapter {
	return &MergeAdapter{adapters: slices.DeleteFunc(slices.Clone(adapters), func(a TranslationAdapter) bool {
		return a == nil
	})}
}

// Load implements TranslationAdapter.
func (a *MergeAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	result := make(map[string]map[string]any)
	for _, adapter := range a.adapters {
		translations, err := adapter.Load(ctx)
		if err != nil {
			return nil, err
		}
		merge(result, translations)
	}
	return result, nil
}

func parseFile(ctx context.Context, parser Parser, name string, content []byte) (map[string]map[string]any, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyTranslationFile, name)
	}
	translations, err := parser.Parse(ctx, string(content))
	if err != nil {
		return nil, errors.Join(ErrFailedToParseFile, fmt.Errorf("%s: %w", name, err))
	}
	return translations, nil
}

func merge(dst, src map[string]map[string]any) {
	for lang, catalog := range src {
		if dst[lang] == nil {
			dst[lang] = make(map[string]any, len(catalog))
		}
		maps.Copy(dst[lang], catalog)
	}
}
