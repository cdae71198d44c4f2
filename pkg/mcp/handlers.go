package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/tsmeta/pkg/literal"
	"github.com/gnana997/tsmeta/pkg/parser"
)

func (s *Server) handleExtractFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	meta, err := s.extractor.ExtractFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("extract failed: %v", err)), nil
	}
	return jsonResult(meta)
}

func (s *Server) handleExtractSource(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	src, err := req.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	meta, err := s.extractor.ExtractSource(path, []byte(src))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("extract failed: %v", err)), nil
	}
	return jsonResult(meta)
}

func (s *Server) handleDecodeLiteral(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	src, err := req.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Wrap the expression in a declaration so the grammar parses it as a
	// value rather than a statement (bare object literals parse as blocks).
	wrapped := []byte("const __v = (" + src + ");")
	tree, err := s.parsers.Parse(wrapped, parser.LanguageTypeScript, false)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("parse failed: %v", err)), nil
	}
	defer tree.Close()

	node := expressionNode(tree)
	if node == nil {
		return mcp.NewToolResultError("source is not a single expression"), nil
	}

	value := literal.Decode(node, wrapped)
	return jsonResult(map[string]any{
		"value":    literal.ToInterface(value),
		"rendered": renderedOrEmpty(value),
	})
}

func (s *Server) handleResolveType(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	meta, err := s.extractor.ExtractFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("extract failed: %v", err)), nil
	}
	for _, ref := range meta.TypeRefs {
		if ref.Name == name {
			return jsonResult(ref)
		}
	}
	return mcp.NewToolResultError(fmt.Sprintf("type %q is not referenced in %s", name, path)), nil
}

// expressionNode digs the declared value out of the const wrapper used by
// handleDecodeLiteral.
func expressionNode(tree *ts.Tree) *ts.Node {
	root := tree.RootNode()
	decl := root.NamedChild(0)
	if decl == nil || decl.Kind() != "lexical_declaration" {
		return nil
	}
	declarator := decl.NamedChild(0)
	if declarator == nil {
		return nil
	}
	return declarator.ChildByFieldName("value")
}

// renderedOrEmpty round-trips the decoded value through the encoder for
// display. Values outside the encodable surface render as empty.
func renderedOrEmpty(v literal.Value) string {
	node, err := literal.Encode(v)
	if err != nil {
		return ""
	}
	return literal.Render(node)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
