package extractor

import (
	"log/slog"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/tsmeta/pkg/parser/queries"
	"github.com/gnana997/tsmeta/pkg/source"
)

// decoratorSite is one decorator occurrence with its raw argument nodes.
type decoratorSite struct {
	name   string
	target string
	args   []*ts.Node
}

// QueryBridge adapts the compiled-query manager to the extractor's
// decorator scan.
type QueryBridge struct {
	manager *queries.Manager
	logger  *slog.Logger
}

// NewQueryBridge creates a QueryBridge. Logger may be nil.
func NewQueryBridge(qm *queries.Manager, logger *slog.Logger) *QueryBridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueryBridge{manager: qm, logger: logger}
}

// decoratorMatches runs the decorator query and groups captures into sites.
func (b *QueryBridge) decoratorMatches(f *source.SourceFile) ([]decoratorSite, error) {
	query, err := b.manager.Get(f.Lang, queries.QueryTypeDecorators)
	if err != nil {
		return nil, err
	}
	matches, err := b.manager.Execute(f.Tree, query, f.Source)
	if err != nil {
		return nil, err
	}

	var sites []decoratorSite
	for _, match := range matches {
		var site decoratorSite
		var anchor *ts.Node

		for i := range match.Captures {
			c := &match.Captures[i]
			switch c.Name {
			case "decorator.name", "decorator.qualified", "decorator.bare":
				site.name = c.Text
				anchor = c.Node
			case "decorator.args":
				site.args = argumentNodes(c.Node)
			}
		}

		if site.name == "" {
			continue
		}
		site.target = decoratedName(anchor, f.Source)
		sites = append(sites, site)
	}
	return sites, nil
}

// argumentNodes returns the expression children of an arguments node,
// skipping punctuation and comments.
func argumentNodes(args *ts.Node) []*ts.Node {
	var out []*ts.Node
	for i := uint(0); i < uint(args.ChildCount()); i++ {
		child := args.Child(i)
		switch child.Kind() {
		case "(", ")", ",", "comment":
		default:
			out = append(out, child)
		}
	}
	return out
}

// decoratedName walks up from a decorator's callee to the decorated
// declaration and returns its name, or "". Decorators on exported classes
// attach to the export statement, so the declaration field is unwrapped.
func decoratedName(node *ts.Node, src []byte) string {
	if node == nil {
		return ""
	}
	for n := node.Parent(); n != nil; n = n.Parent() {
		switch n.Kind() {
		case "class_declaration", "abstract_class_declaration",
			"method_definition", "public_field_definition":
			return nameField(n, src)
		case "export_statement":
			if decl := n.ChildByFieldName("declaration"); decl != nil {
				return nameField(decl, src)
			}
			return ""
		case "program":
			return ""
		}
	}
	return ""
}

func nameField(n *ts.Node, src []byte) string {
	if name := n.ChildByFieldName("name"); name != nil {
		return name.Utf8Text(src)
	}
	return ""
}
