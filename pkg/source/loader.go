package source

import (
	"fmt"
	"log/slog"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gnana997/tsmeta/pkg/parser"
	"github.com/gnana997/tsmeta/pkg/parser/queries"
	"github.com/gnana997/tsmeta/pkg/util"
)

// defaultLoaderCacheSize bounds the number of files kept parsed at once.
// Barrel chains revisit the same files constantly, so the cache stays warm
// during a resolution pass without holding the whole workspace.
const defaultLoaderCacheSize = 512

// Loader reads, parses, and scans source files, caching results in an LRU.
// Evicted files have their parse trees closed, which invalidates any node
// references a caller may still hold; callers that need nodes across many
// loads should size the cache accordingly.
//
// Safe for concurrent use.
type Loader struct {
	parsers *parser.Manager
	queries *queries.Manager
	files   *util.FileCache
	cache   *lru.Cache[string, *SourceFile]
	logger  *slog.Logger
}

// NewLoader creates a Loader. cacheSize <= 0 selects the default.
// Logger may be nil.
func NewLoader(pm *parser.Manager, qm *queries.Manager, fc *util.FileCache, cacheSize int, logger *slog.Logger) (*Loader, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cacheSize <= 0 {
		cacheSize = defaultLoaderCacheSize
	}

	cache, err := lru.NewWithEvict[string, *SourceFile](cacheSize, func(_ string, f *SourceFile) {
		f.Close()
	})
	if err != nil {
		return nil, fmt.Errorf("create loader cache: %w", err)
	}

	return &Loader{
		parsers: pm,
		queries: qm,
		files:   fc,
		cache:   cache,
		logger:  logger,
	}, nil
}

// Load returns the parsed and scanned file at path, from cache when warm.
func (l *Loader) Load(path string) (*SourceFile, error) {
	path = filepath.Clean(path)

	if f, ok := l.cache.Get(path); ok {
		return f, nil
	}

	src, err := l.files.Read(path)
	if err != nil {
		return nil, err
	}
	return l.load(path, src)
}

// LoadSource parses the given bytes as the file at path, bypassing the file
// cache. Used when the caller already holds the contents (watch mode,
// in-memory tests).
func (l *Loader) LoadSource(path string, src []byte) (*SourceFile, error) {
	path = filepath.Clean(path)

	if f, ok := l.cache.Get(path); ok {
		return f, nil
	}
	return l.load(path, src)
}

func (l *Loader) load(path string, src []byte) (*SourceFile, error) {
	lang := parser.DetectLanguage(path)
	if lang == parser.LanguageUnknown {
		return nil, fmt.Errorf("unsupported file extension: %s", path)
	}

	tree, err := l.parsers.Parse(src, lang, parser.IsTSXFile(path))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	f := &SourceFile{
		Path:   path,
		Lang:   lang,
		Source: src,
		Tree:   tree,
	}
	if err := f.scanModules(l.queries); err != nil {
		f.Close()
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}

	l.cache.Add(path, f)
	l.logger.Debug("loaded file",
		"path", path,
		"imports", len(f.Imports),
		"exports", len(f.Exports))

	return f, nil
}

// Invalidate drops a file from both the parse cache and the underlying
// content cache, closing its tree. Used by watch mode when a file changes
// on disk; without the content drop a reload would reparse stale bytes.
func (l *Loader) Invalidate(path string) {
	clean := filepath.Clean(path)
	l.cache.Remove(clean)
	l.files.Invalidate(clean)
}

// Close drops all cached files, closing their trees.
func (l *Loader) Close() {
	l.cache.Purge()
}
