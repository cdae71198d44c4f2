package typeref

import (
	"log/slog"

	"github.com/gnana997/tsmeta/pkg/source"
)

// ModuleResolver is the module-resolution collaborator: it resolves an
// import specifier to the name's home module, following re-export
// ("barrel") chains, and reports the name as declared there. A nil module
// with nil error means the specifier leaves the workspace (external
// package) or the chain never terminates.
type ModuleResolver interface {
	HomeModule(from *source.SourceFile, specifier, name string) (*source.SourceFile, string, error)
}

// Resolver classifies type names by declaration site. It holds no state of
// its own; repeatability across calls rests entirely on the Library's
// dedup contract.
type Resolver struct {
	modules ModuleResolver
	library Library
	oracle  Oracle
	logger  *slog.Logger
}

// NewResolver creates a Resolver. Logger may be nil.
func NewResolver(modules ModuleResolver, library Library, oracle Oracle, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		modules: modules,
		library: library,
		oracle:  oracle,
		logger:  logger,
	}
}

// ResolveOrigin determines where typeName's declaration lives, trying each
// branch in order and falling through on a miss:
//
//  1. a named import binding in file whose local name is typeName, whose
//     home module resolves → Import
//  2. a type declaration named typeName exported by file itself → Local
//  3. otherwise ambient → Global, with a derived id and no registry call
//
// Library errors propagate unmasked; a corrupted registry id would silently
// collide generated output downstream.
func (r *Resolver) ResolveOrigin(typeName string, t TypeHandle, file *source.SourceFile) (Origin, error) {
	if imp := file.FindNamedImport(typeName); imp != nil {
		home, declaredName, err := r.modules.HomeModule(file, imp.Specifier, imp.ImportedName)
		if err != nil {
			return Origin{}, err
		}
		if home != nil {
			// Register against the declaration site so every usage of this
			// type, from any file, lands on the same library entry.
			ht := t
			if decl := home.FindTypeDeclaration(declaredName); decl != nil {
				ht = r.oracle.TypeAtNode(home, decl)
			}
			id, err := r.library.Add(ht, declaredName, home.Path)
			if err != nil {
				return Origin{}, err
			}
			return Origin{
				Kind:          OriginImport,
				SpecifierPath: imp.Specifier,
				ID:            id,
			}, nil
		}
		r.logger.Debug("no home module for import, trying local scope",
			"name", typeName,
			"specifier", imp.Specifier,
			"file", file.Path)
	}

	if file.HasLocalTypeExport(typeName) {
		ht := t
		if decl := file.FindTypeDeclaration(typeName); decl != nil {
			ht = r.oracle.TypeAtNode(file, decl)
		}
		id, err := r.library.Add(ht, typeName, file.Path)
		if err != nil {
			return Origin{}, err
		}
		return Origin{
			Kind:     OriginLocal,
			FilePath: file.Path,
			ID:       id,
		}, nil
	}

	return Origin{
		Kind: OriginGlobal,
		ID:   GlobalIDPrefix + typeName,
	}, nil
}
