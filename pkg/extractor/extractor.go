// Package extractor implements unified per-file metadata extraction:
// imports/exports, decoded decorator configuration, and resolved type
// references, all from a single parse of each file.
package extractor

import (
	"fmt"
	"log/slog"

	"github.com/gnana997/tsmeta/pkg/literal"
	"github.com/gnana997/tsmeta/pkg/source"
	"github.com/gnana997/tsmeta/pkg/typeref"
)

// Extractor runs all extraction passes over one shared parse per file.
type Extractor struct {
	loader   *source.Loader
	queries  queryManager
	resolver *typeref.Resolver
	oracle   typeref.Oracle
	logger   *slog.Logger
}

// queryManager is the slice of queries.Manager the extractor needs;
// narrowed for tests.
type queryManager interface {
	decoratorMatches(f *source.SourceFile) ([]decoratorSite, error)
}

// New creates an Extractor. Logger may be nil.
func New(loader *source.Loader, qm *QueryBridge, resolver *typeref.Resolver, oracle typeref.Oracle, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		loader:   loader,
		queries:  qm,
		resolver: resolver,
		oracle:   oracle,
		logger:   logger,
	}
}

// ExtractFile loads (or re-uses) the parsed file at path and extracts all
// metadata from the same tree.
func (e *Extractor) ExtractFile(path string) (*Metadata, error) {
	f, err := e.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}
	return e.extract(f)
}

// ExtractSource extracts metadata from in-memory source, bypassing the
// file cache.
func (e *Extractor) ExtractSource(path string, src []byte) (*Metadata, error) {
	f, err := e.loader.LoadSource(path, src)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}
	return e.extract(f)
}

func (e *Extractor) extract(f *source.SourceFile) (*Metadata, error) {
	meta := &Metadata{
		FilePath: f.Path,
		Language: f.Lang.String(),
	}

	for _, imp := range f.Imports {
		meta.Imports = append(meta.Imports, ImportMeta{
			Specifier:    imp.Specifier,
			LocalName:    imp.LocalName,
			ImportedName: imp.ImportedName,
			Kind:         importKindName(imp.Kind),
			TypeOnly:     imp.TypeOnly,
		})
	}
	for _, exp := range f.Exports {
		meta.Exports = append(meta.Exports, ExportMeta{
			Name:      exp.Name,
			LocalName: exp.LocalName,
			Specifier: exp.Specifier,
			Wildcard:  exp.Wildcard,
			DeclKind:  exp.DeclKind,
		})
	}

	decorators, err := e.extractDecorators(f)
	if err != nil {
		return nil, err
	}
	meta.Decorators = decorators

	typeRefs, err := e.resolveTypeRefs(f)
	if err != nil {
		return nil, err
	}
	meta.TypeRefs = typeRefs

	e.logger.Debug("extracted file",
		"file", f.Path,
		"imports", len(meta.Imports),
		"exports", len(meta.Exports),
		"decorators", len(meta.Decorators),
		"typeRefs", len(meta.TypeRefs))

	return meta, nil
}

// resolveTypeRefs collects every named-type usage in the file and resolves
// each distinct name's origin. The reference list is folded name-by-name
// with the last occurrence winning, then resolved once per name.
func (e *Extractor) resolveTypeRefs(f *source.SourceFile) ([]TypeRefMeta, error) {
	refs := typeref.Collect(f, f.Root(), e.oracle)
	if len(refs) == 0 {
		return nil, nil
	}

	// Fold: last occurrence in document order wins, first-seen order kept.
	order := make([]string, 0, len(refs))
	byName := make(map[string]typeref.Reference, len(refs))
	for _, ref := range refs {
		if _, seen := byName[ref.Name]; !seen {
			order = append(order, ref.Name)
		}
		byName[ref.Name] = ref
	}

	out := make([]TypeRefMeta, 0, len(order))
	for _, name := range order {
		ref := byName[name]
		origin, err := e.resolver.ResolveOrigin(ref.Name, ref.Type, f)
		if err != nil {
			return nil, fmt.Errorf("resolve %s in %s: %w", ref.Name, f.Path, err)
		}
		out = append(out, TypeRefMeta{
			Name:      ref.Name,
			Origin:    origin.Kind.String(),
			Specifier: origin.SpecifierPath,
			FilePath:  origin.FilePath,
			ID:        origin.ID,
			Display:   e.oracle.FormatType(ref.Type),
		})
	}
	return out, nil
}

// extractDecorators decodes every decorator call argument through the
// literal codec. Decoding never fails: arguments outside the literal
// grammar surface as opaque placeholders.
func (e *Extractor) extractDecorators(f *source.SourceFile) ([]DecoratorMeta, error) {
	sites, err := e.queries.decoratorMatches(f)
	if err != nil {
		return nil, err
	}

	var out []DecoratorMeta
	for _, site := range sites {
		meta := DecoratorMeta{
			Name:   site.name,
			Target: site.target,
		}
		for _, arg := range site.args {
			meta.Args = append(meta.Args, literal.ToInterface(literal.Decode(arg, f.Source)))
		}
		out = append(out, meta)
	}
	return out, nil
}

func importKindName(k source.ImportKind) string {
	switch k {
	case source.ImportDefault:
		return "default"
	case source.ImportNamespace:
		return "namespace"
	default:
		return "named"
	}
}
