// Package queries provides tree-sitter query compilation, caching, and execution.
package queries

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/tsmeta/pkg/parser"
	"github.com/gnana997/tsmeta/pkg/parser/queries/decorators"
	"github.com/gnana997/tsmeta/pkg/parser/queries/modules"
)

// QueryType identifies which query to execute.
type QueryType int

const (
	// QueryTypeModules extracts import and export declarations for origin
	// resolution and home-module tracing.
	QueryTypeModules QueryType = iota
	// QueryTypeDecorators extracts decorator call sites whose arguments
	// carry static configuration.
	QueryTypeDecorators
)

// String returns the string representation of a QueryType.
func (qt QueryType) String() string {
	switch qt {
	case QueryTypeModules:
		return "modules"
	case QueryTypeDecorators:
		return "decorators"
	default:
		return "unknown"
	}
}

// queryKey uniquely identifies a compiled query (language + type).
type queryKey struct {
	lang  parser.Language
	qtype QueryType
}

// Manager compiles and caches tree-sitter queries.
//
// Queries are compiled lazily on first use and cached behind an RWMutex.
// Compiled queries are freed via Close().
type Manager struct {
	parsers *parser.Manager
	cache   map[queryKey]*ts.Query
	mutex   sync.RWMutex
	logger  *slog.Logger
}

// NewManager creates a query manager. The parser manager is required to
// access language grammars for compilation; logger may be nil.
func NewManager(pm *parser.Manager, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		parsers: pm,
		cache:   make(map[queryKey]*ts.Query),
		logger:  logger,
	}
}

// Get returns a compiled query for the specified language and type,
// compiling on first access. Thread-safe.
func (m *Manager) Get(lang parser.Language, qtype QueryType) (*ts.Query, error) {
	key := queryKey{lang: lang, qtype: qtype}

	m.mutex.RLock()
	query, exists := m.cache[key]
	m.mutex.RUnlock()
	if exists {
		return query, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if query, exists = m.cache[key]; exists {
		return query, nil
	}

	queryString, err := queryString(lang, qtype)
	if err != nil {
		return nil, err
	}

	langPtr, err := m.parsers.LanguagePointer(lang, false)
	if err != nil {
		return nil, fmt.Errorf("get language pointer for %s: %w", lang, err)
	}

	query, qerr := ts.NewQuery(ts.NewLanguage(langPtr), queryString)
	if qerr != nil {
		return nil, fmt.Errorf("compile %s query for %s: %s", qtype, lang, qerr.Message)
	}

	m.cache[key] = query
	m.logger.Debug("compiled query",
		"language", lang.String(),
		"type", qtype.String())

	return query, nil
}

// queryString returns the query source for a language and type.
func queryString(lang parser.Language, qtype QueryType) (string, error) {
	switch qtype {
	case QueryTypeModules:
		switch lang {
		case parser.LanguageTypeScript:
			return modules.TSQueries, nil
		case parser.LanguageJavaScript:
			return modules.JSQueries, nil
		}
	case QueryTypeDecorators:
		switch lang {
		case parser.LanguageTypeScript, parser.LanguageJavaScript:
			return decorators.Queries, nil
		}
	}
	return "", fmt.Errorf("no %s query for language %s", qtype, lang)
}

// Execute runs a compiled query against a parse tree and returns structured
// matches. The source is needed to extract matched text.
func (m *Manager) Execute(tree *ts.Tree, query *ts.Query, source []byte) ([]Match, error) {
	if tree == nil {
		return nil, fmt.Errorf("tree is nil")
	}
	if query == nil {
		return nil, fmt.Errorf("query is nil")
	}

	cursor := ts.NewQueryCursor()
	defer cursor.Close()

	iter := cursor.Matches(query, tree.RootNode(), source)
	captureNames := query.CaptureNames()

	var matches []Match
	for {
		match := iter.Next()
		if match == nil {
			break
		}

		var captures []Capture
		for _, capture := range match.Captures {
			var captureName string
			if int(capture.Index) < len(captureNames) {
				captureName = captureNames[capture.Index]
			}
			category, field := parseCaptureName(captureName)
			node := capture.Node

			captures = append(captures, Capture{
				Name:     captureName,
				Category: category,
				Field:    field,
				Node:     &node,
				Text:     node.Utf8Text(source),
			})
		}

		matches = append(matches, Match{
			PatternIndex: uint32(match.PatternIndex),
			Captures:     captures,
		})
	}

	return matches, nil
}

// Close releases all compiled queries. The Manager cannot be used afterwards.
func (m *Manager) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for key, query := range m.cache {
		if query != nil {
			query.Close()
		}
		delete(m.cache, key)
	}
	return nil
}

// Match represents a single pattern match from query execution.
type Match struct {
	// PatternIndex identifies which query pattern matched.
	PatternIndex uint32

	// Captures contains all captured nodes for this match.
	Captures []Capture
}

// Capture represents a single captured node from a query match.
type Capture struct {
	// Name is the full capture name (e.g. "import.named").
	Name string

	// Category is the first segment of the capture name (e.g. "import").
	Category string

	// Field is the remainder after the first dot, empty if none.
	Field string

	// Node is the captured AST node. Valid only while the source tree is open.
	Node *ts.Node

	// Text is the source text of the captured node.
	Text string
}

// FindCapture returns the first capture with matching category and field,
// or nil.
func FindCapture(captures []Capture, category, field string) *Capture {
	for i := range captures {
		if captures[i].Category == category && captures[i].Field == field {
			return &captures[i]
		}
	}
	return nil
}

// parseCaptureName splits "import.named" into ("import", "named").
// A name with no dot yields (name, "").
func parseCaptureName(name string) (category, field string) {
	parts := strings.SplitN(name, ".", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return name, ""
}
