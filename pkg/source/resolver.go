package source

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnana997/tsmeta/pkg/parser"
)

// maxReExportDepth bounds barrel chain traversal. Deeper chains than this
// indicate a re-export cycle the visited set missed (e.g. through symlinks).
const maxReExportDepth = 64

// FileResolver resolves module specifiers against the filesystem and
// follows re-export chains to a name's home module, the module where the
// export chain for an imported name ultimately terminates.
type FileResolver struct {
	loader *Loader
	logger *slog.Logger
}

// NewFileResolver creates a FileResolver backed by the given Loader.
// Logger may be nil.
func NewFileResolver(loader *Loader, logger *slog.Logger) *FileResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileResolver{loader: loader, logger: logger}
}

// HomeModule resolves specifier relative to from and follows re-exports of
// name until reaching the module that declares it. Returns the home module
// and the name as declared there (aliases along the chain unwrapped), or
// (nil, "", nil) when the specifier does not resolve to a workspace file
// (external package, missing file) or the chain never terminates.
func (r *FileResolver) HomeModule(from *SourceFile, specifier, name string) (*SourceFile, string, error) {
	path := r.ResolveSpecifier(from.Path, specifier)
	if path == "" {
		return nil, "", nil
	}

	visited := make(map[string]bool)
	return r.chase(path, name, visited, 0)
}

func (r *FileResolver) chase(path, name string, visited map[string]bool, depth int) (*SourceFile, string, error) {
	if depth > maxReExportDepth || visited[path] {
		return nil, "", nil
	}
	visited[path] = true

	mod, err := r.loader.Load(path)
	if err != nil {
		// A broken file mid-chain means no home module, not a hard failure;
		// the caller falls through to its next resolution branch.
		r.logger.Debug("cannot load module in re-export chain",
			"path", path,
			"error", err)
		return nil, "", nil
	}

	// Declared here: the chain terminates.
	if mod.FindTypeDeclaration(name) != nil || mod.HasLocalTypeExport(name) {
		return mod, name, nil
	}

	// Explicit re-export: export { Orig as Name } from './x'.
	if re, original := mod.ReExportFor(name); re != nil {
		next := r.ResolveSpecifier(mod.Path, re.Specifier)
		if next == "" {
			return nil, "", nil
		}
		return r.chase(next, original, visited, depth+1)
	}

	// Wildcard barrels: export * from './x'. Probe each in order.
	for _, spec := range mod.WildcardReExports() {
		next := r.ResolveSpecifier(mod.Path, spec)
		if next == "" {
			continue
		}
		home, declared, err := r.chase(next, name, visited, depth+1)
		if err != nil {
			return nil, "", err
		}
		if home != nil {
			return home, declared, nil
		}
	}

	return nil, "", nil
}

// ResolveSpecifier resolves a relative module specifier against the
// importing file's directory, probing language extensions and index files.
// Returns "" for bare (external package) specifiers and unresolvable paths.
func (r *FileResolver) ResolveSpecifier(fromPath, specifier string) string {
	if !strings.HasPrefix(specifier, ".") && !strings.HasPrefix(specifier, "/") {
		return ""
	}

	base := filepath.Clean(filepath.Join(filepath.Dir(fromPath), specifier))

	if filepath.Ext(base) != "" && fileExists(base) {
		return base
	}

	candidates := parser.SourceExtensions(parser.LanguageTypeScript)
	candidates = append(candidates, parser.SourceExtensions(parser.LanguageJavaScript)...)

	for _, ext := range candidates {
		if p := base + ext; fileExists(p) {
			return p
		}
	}
	for _, ext := range candidates {
		if p := filepath.Join(base, "index"+ext); fileExists(p) {
			return p
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
