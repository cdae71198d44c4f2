// Package typeref collects named-type usages from syntax subtrees and
// resolves each name's origin: imported, locally exported, or ambient.
package typeref

import (
	"fmt"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/tsmeta/pkg/source"
)

// TypeHandle is an opaque reference to a checked type. The only requirement
// this package places on handles is a stable identity key so the type
// library can deduplicate registrations within one compilation run.
type TypeHandle interface {
	TypeKey() string
}

// Oracle is the type-checking collaborator. Implementations answer type
// queries at syntax nodes; this package never inspects types beyond the
// operations below.
type Oracle interface {
	// TypeAtNode returns the type of the expression or declaration at node.
	TypeAtNode(file *source.SourceFile, node *ts.Node) TypeHandle

	// TypeFromAnnotation returns the type denoted by a type annotation node.
	TypeFromAnnotation(file *source.SourceFile, node *ts.Node) TypeHandle

	// IsUnionType reports whether the handle denotes a union.
	IsUnionType(t TypeHandle) bool

	// UnionMembers enumerates a union's member types; empty for non-unions.
	UnionMembers(t TypeHandle) []TypeHandle

	// FormatType returns a display string for diagnostics and emitted docs.
	FormatType(t TypeHandle) string
}

// SyntacticOracle is a checker-free Oracle that derives type identity from
// declaration sites and display text from annotation source. It gives every
// distinct declaration span a distinct key, which is exactly the identity
// contract the type library needs; it performs no inference.
type SyntacticOracle struct{}

// NewSyntacticOracle returns a ready-to-use syntactic oracle.
func NewSyntacticOracle() *SyntacticOracle {
	return &SyntacticOracle{}
}

// syntacticType is the handle implementation: a source span plus its text.
type syntacticType struct {
	key     string
	display string
	members []TypeHandle
}

func (t *syntacticType) TypeKey() string { return t.key }

func (o *SyntacticOracle) TypeAtNode(file *source.SourceFile, node *ts.Node) TypeHandle {
	if node == nil {
		return nil
	}

	display := node.Utf8Text(file.Source)
	// For declarations the display form is the declared name, not the body.
	if name := node.ChildByFieldName("name"); name != nil {
		switch node.Kind() {
		case "interface_declaration", "type_alias_declaration",
			"enum_declaration", "class_declaration":
			display = name.Utf8Text(file.Source)
		}
	}

	return &syntacticType{
		key:     fmt.Sprintf("%s:%d", file.Path, node.StartByte()),
		display: display,
	}
}

func (o *SyntacticOracle) TypeFromAnnotation(file *source.SourceFile, node *ts.Node) TypeHandle {
	if node == nil {
		return nil
	}

	// Unwrap the ": T" annotation wrapper to the type node itself.
	t := node
	if t.Kind() == "type_annotation" {
		for i := uint(0); i < uint(t.ChildCount()); i++ {
			child := t.Child(i)
			if child.Kind() != ":" {
				t = child
				break
			}
		}
	}

	h := &syntacticType{
		key:     fmt.Sprintf("%s:%d", file.Path, t.StartByte()),
		display: t.Utf8Text(file.Source),
	}

	if t.Kind() == "union_type" {
		h.members = unionMembers(file, t)
	}
	return h
}

// unionMembers flattens a union_type node into member handles. Nested
// unions (A | (B | C)) flatten recursively, matching how checkers expose
// union membership.
func unionMembers(file *source.SourceFile, node *ts.Node) []TypeHandle {
	var members []TypeHandle
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "|", "comment":
		case "union_type":
			members = append(members, unionMembers(file, child)...)
		default:
			members = append(members, &syntacticType{
				key:     fmt.Sprintf("%s:%d", file.Path, child.StartByte()),
				display: child.Utf8Text(file.Source),
			})
		}
	}
	return members
}

func (o *SyntacticOracle) IsUnionType(t TypeHandle) bool {
	st, ok := t.(*syntacticType)
	return ok && len(st.members) > 0
}

func (o *SyntacticOracle) UnionMembers(t TypeHandle) []TypeHandle {
	if st, ok := t.(*syntacticType); ok {
		return st.members
	}
	return nil
}

func (o *SyntacticOracle) FormatType(t TypeHandle) string {
	st, ok := t.(*syntacticType)
	if !ok || st == nil {
		return "unknown"
	}
	return strings.TrimSpace(st.display)
}
