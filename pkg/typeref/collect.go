package typeref

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/tsmeta/pkg/source"
)

// Reference is one named-type usage found in a subtree. Produced transiently
// per usage site; not persisted.
type Reference struct {
	Name string
	Type TypeHandle
}

// Collect walks the subtree rooted at root and returns every named-type
// usage in document order. Primitive and keyword types (string, number,
// void, ...) carry no name and are excluded.
//
// A generic usage contributes itself plus one flattened sibling entry per
// named-type usage inside its arguments (outer type first, then arguments
// left to right, recursively); generics are flattened, never nested, and
// compound argument shapes (unions, arrays, function types) are walked the
// same way so the usages inside them are not lost. Entries are not
// deduplicated; a name appearing twice yields two entries, and a consumer
// folding them into a name-keyed map sees the last occurrence win.
func Collect(file *source.SourceFile, root *ts.Node, oracle Oracle) []Reference {
	if root == nil {
		return nil
	}

	var refs []Reference
	emit := func(name string, node *ts.Node) {
		refs = append(refs, Reference{Name: name, Type: oracle.TypeAtNode(file, node)})
	}

	var visit func(n *ts.Node)

	flattenArgs := func(generic *ts.Node) {
		args := generic.ChildByFieldName("type_arguments")
		if args == nil {
			return
		}
		for i := uint(0); i < uint(args.NamedChildCount()); i++ {
			visit(args.NamedChild(i))
		}
	}

	visit = func(n *ts.Node) {
		switch n.Kind() {
		case "generic_type":
			// The outer generic is itself a named-type usage; it is
			// emitted first, then its arguments left to right.
			if name := genericName(n, file.Source); name != "" {
				emit(name, n)
			}
			flattenArgs(n)
			return

		case "type_identifier":
			if isDeclarationName(n) {
				return
			}
			emit(n.Utf8Text(file.Source), n)
			return

		case "nested_type_identifier":
			emit(n.Utf8Text(file.Source), n)
			return
		}

		for i := uint(0); i < uint(n.ChildCount()); i++ {
			visit(n.Child(i))
		}
	}
	visit(root)

	return refs
}

// genericName returns the base name of a generic_type usage.
func genericName(n *ts.Node, src []byte) string {
	name := n.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return name.Utf8Text(src)
}

// isDeclarationName reports whether n is the name being declared rather
// than a usage (interface Foo { ... } declares Foo, it does not use it).
func isDeclarationName(n *ts.Node) bool {
	parent := n.Parent()
	if parent == nil {
		return false
	}
	switch parent.Kind() {
	case "interface_declaration", "type_alias_declaration",
		"enum_declaration", "class_declaration", "type_parameter":
	default:
		return false
	}
	name := parent.ChildByFieldName("name")
	return name != nil && name.StartByte() == n.StartByte()
}
