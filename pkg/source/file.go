// Package source models parsed source files: their import/export surface
// and cross-file module resolution following re-export chains.
package source

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/tsmeta/pkg/parser"
	"github.com/gnana997/tsmeta/pkg/parser/queries"
)

// SourceFile is a parsed source file together with its scanned module
// surface. Node references are valid only while the file is open; the
// Loader owns the parse tree and closes it on eviction.
type SourceFile struct {
	Path   string
	Lang   parser.Language
	Source []byte
	Tree   *ts.Tree

	Imports []Import
	Exports []Export
}

// ImportKind distinguishes the binding forms of an import declaration.
type ImportKind int

const (
	ImportNamed ImportKind = iota
	ImportDefault
	ImportNamespace
)

// Import is one imported binding.
type Import struct {
	// Specifier is the module specifier as written in the file.
	Specifier string

	// LocalName is the binding name visible in this file.
	LocalName string

	// ImportedName is the original exported name; differs from LocalName
	// when the import is aliased. "default" for default imports, "*" for
	// namespace imports.
	ImportedName string

	Kind     ImportKind
	TypeOnly bool

	// Node is the binding's syntax node.
	Node *ts.Node
}

// Export is one exported name.
type Export struct {
	// Name is the name visible to importers.
	Name string

	// LocalName is the in-file name; differs from Name when the export
	// clause aliases it (export { Foo as Bar }).
	LocalName string

	// Specifier is non-empty for re-exports (export ... from './mod').
	Specifier string

	// Wildcard marks export * from './mod'; Name is empty in that case.
	Wildcard bool

	// DeclKind is the declaration kind for direct declaration exports
	// (e.g. "interface_declaration"), empty for clause exports.
	DeclKind string

	// Node is the declaration node for declaration exports, or the export
	// specifier node for clause exports.
	Node *ts.Node
}

// Close releases the parse tree. Called by the Loader on eviction.
func (f *SourceFile) Close() {
	if f.Tree != nil {
		f.Tree.Close()
		f.Tree = nil
	}
}

// Root returns the root node of the parse tree.
func (f *SourceFile) Root() *ts.Node {
	if f.Tree == nil {
		return nil
	}
	return f.Tree.RootNode()
}

// FindNamedImport returns the named import binding whose local name equals
// name, or nil. Default and namespace bindings do not qualify; the origin
// resolver only chases named type imports.
func (f *SourceFile) FindNamedImport(name string) *Import {
	for i := range f.Imports {
		if f.Imports[i].Kind == ImportNamed && f.Imports[i].LocalName == name {
			return &f.Imports[i]
		}
	}
	return nil
}

// HasLocalTypeExport reports whether the file exports a type declaration
// (interface, type alias, enum) named name, either directly or through an
// export clause without a source.
func (f *SourceFile) HasLocalTypeExport(name string) bool {
	for i := range f.Exports {
		e := &f.Exports[i]
		if e.Specifier != "" || e.Wildcard {
			continue
		}
		switch e.DeclKind {
		case "interface_declaration", "type_alias_declaration", "enum_declaration":
			if e.Name == name {
				return true
			}
		case "":
			// Clause export: export { Foo };
			if e.LocalName == name || e.Name == name {
				return true
			}
		}
	}
	return false
}

// ReExportFor returns the re-export entry that forwards name (possibly
// aliased) and the original name in the target module, or nil. Used when
// following barrel chains.
func (f *SourceFile) ReExportFor(name string) (*Export, string) {
	for i := range f.Exports {
		e := &f.Exports[i]
		if e.Specifier == "" || e.Wildcard {
			continue
		}
		if e.Name == name {
			return e, e.LocalName
		}
	}
	return nil, ""
}

// WildcardReExports returns the specifiers of all export * declarations.
func (f *SourceFile) WildcardReExports() []string {
	var specs []string
	for i := range f.Exports {
		if f.Exports[i].Wildcard {
			specs = append(specs, f.Exports[i].Specifier)
		}
	}
	return specs
}

// FindTypeDeclaration scans the file's top-level statements for a type
// declaration named name (interface, type alias, enum, or class), looking
// through export statement wrappers. Returns nil if not declared here.
func (f *SourceFile) FindTypeDeclaration(name string) *ts.Node {
	root := f.Root()
	if root == nil {
		return nil
	}

	for i := uint(0); i < uint(root.ChildCount()); i++ {
		stmt := root.Child(i)
		decl := stmt
		if stmt.Kind() == "export_statement" {
			decl = stmt.ChildByFieldName("declaration")
			if decl == nil {
				continue
			}
		}
		switch decl.Kind() {
		case "interface_declaration", "type_alias_declaration",
			"enum_declaration", "class_declaration":
			nameNode := decl.ChildByFieldName("name")
			if nameNode != nil && nameNode.Utf8Text(f.Source) == name {
				return decl
			}
		}
	}
	return nil
}

// scanModules fills Imports and Exports from the modules query matches.
func (f *SourceFile) scanModules(qm *queries.Manager) error {
	query, err := qm.Get(f.Lang, queries.QueryTypeModules)
	if err != nil {
		return err
	}
	matches, err := qm.Execute(f.Tree, query, f.Source)
	if err != nil {
		return err
	}

	seenReExportStmts := make(map[uint]bool)

	for _, match := range matches {
		for i := range match.Captures {
			c := &match.Captures[i]
			switch c.Name {
			case "import.named":
				f.addNamedImport(c.Node)
			case "import.default":
				f.addImport(c.Node, Import{
					LocalName:    c.Text,
					ImportedName: "default",
					Kind:         ImportDefault,
				})
			case "import.namespace":
				f.addImport(c.Node, Import{
					LocalName:    c.Text,
					ImportedName: "*",
					Kind:         ImportNamespace,
				})
			case "export.name":
				f.addDeclarationExport(c.Node, c.Text)
			case "export.clause.name":
				f.addClauseExport(c.Node)
			case "export.reexport.source":
				f.addWildcardExport(c.Node, seenReExportStmts)
			}
		}
	}
	return nil
}

// addNamedImport records one import specifier, unwrapping an alias when
// present (import { Foo as F } binds F locally to exported Foo).
func (f *SourceFile) addNamedImport(nameNode *ts.Node) {
	spec := nameNode.Parent() // import_specifier
	if spec == nil {
		return
	}

	imported := nameNode.Utf8Text(f.Source)
	local := imported
	if alias := spec.ChildByFieldName("alias"); alias != nil {
		local = alias.Utf8Text(f.Source)
	}

	f.addImport(nameNode, Import{
		LocalName:    local,
		ImportedName: imported,
		Kind:         ImportNamed,
		TypeOnly:     hasTypeKeyword(spec),
	})
}

// addImport fills statement-level fields (specifier, type-only marker) from
// the enclosing import statement and appends the binding.
func (f *SourceFile) addImport(node *ts.Node, imp Import) {
	stmt := enclosing(node, "import_statement")
	if stmt == nil {
		return
	}
	imp.Specifier = specifierText(stmt, f.Source)
	if imp.Specifier == "" {
		return
	}
	imp.TypeOnly = imp.TypeOnly || hasTypeKeyword(stmt)
	imp.Node = node
	f.Imports = append(f.Imports, imp)
}

// addDeclarationExport records export <declaration> forms.
func (f *SourceFile) addDeclarationExport(nameNode *ts.Node, name string) {
	stmt := enclosing(nameNode, "export_statement")
	if stmt == nil {
		return
	}
	decl := stmt.ChildByFieldName("declaration")
	if decl == nil {
		return
	}
	f.Exports = append(f.Exports, Export{
		Name:      name,
		LocalName: name,
		DeclKind:  decl.Kind(),
		Node:      decl,
	})
}

// addClauseExport records export { Foo, Bar as Baz } forms, with or without
// a re-export source.
func (f *SourceFile) addClauseExport(nameNode *ts.Node) {
	spec := nameNode.Parent() // export_specifier
	if spec == nil {
		return
	}
	stmt := enclosing(spec, "export_statement")
	if stmt == nil {
		return
	}

	local := nameNode.Utf8Text(f.Source)
	exported := local
	if alias := spec.ChildByFieldName("alias"); alias != nil {
		exported = alias.Utf8Text(f.Source)
	}

	f.Exports = append(f.Exports, Export{
		Name:      exported,
		LocalName: local,
		Specifier: specifierText(stmt, f.Source),
		Node:      spec,
	})
}

// addWildcardExport records export * from './mod'. The reexport.source
// capture also fires for clause re-exports, so only statements without an
// export clause count, and each statement only once.
func (f *SourceFile) addWildcardExport(sourceNode *ts.Node, seen map[uint]bool) {
	stmt := enclosing(sourceNode, "export_statement")
	if stmt == nil || hasChildOfKind(stmt, "export_clause") {
		return
	}
	at := uint(stmt.StartByte())
	if seen[at] {
		return
	}
	seen[at] = true

	f.Exports = append(f.Exports, Export{
		Specifier: specifierText(stmt, f.Source),
		Wildcard:  true,
		Node:      stmt,
	})
}

// specifierText returns the unquoted module specifier of an import/export
// statement, or "".
func specifierText(stmt *ts.Node, src []byte) string {
	s := stmt.ChildByFieldName("source")
	if s == nil {
		return ""
	}
	return strings.Trim(s.Utf8Text(src), "\"'`")
}

// enclosing walks up to the nearest ancestor of the given kind.
func enclosing(node *ts.Node, kind string) *ts.Node {
	for n := node.Parent(); n != nil; n = n.Parent() {
		if n.Kind() == kind {
			return n
		}
	}
	return nil
}

// hasTypeKeyword reports whether node carries a "type" keyword child
// (type-only import forms).
func hasTypeKeyword(node *ts.Node) bool {
	return hasChildOfKind(node, "type")
}

func hasChildOfKind(node *ts.Node, kind string) bool {
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		if node.Child(i).Kind() == kind {
			return true
		}
	}
	return false
}
