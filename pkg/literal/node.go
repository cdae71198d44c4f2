package literal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Node is the literal subset of a syntax tree produced by Encode. Every Node
// the encoder produces renders to source text that parses back into one of
// the decoder's recognized shapes (identifiers only for the fixed vocabulary
// String/Number/Boolean/undefined/null plus unresolved passthrough names).
type Node interface {
	literalNode()
	write(sb *strings.Builder)
}

// StringLit is a single-quoted string literal.
type StringLit struct {
	Text string
}

// NumberLit is a numeric literal.
type NumberLit struct {
	Value float64
}

// BoolLit is a true/false keyword.
type BoolLit struct {
	Value bool
}

// BigIntLit is a bigint literal; Text holds the digits without the "n" suffix.
type BigIntLit struct {
	Text string
}

// Ident is a bare identifier.
type Ident struct {
	Name string
}

// ArrayLit is an ordered array literal.
type ArrayLit struct {
	Elems []Node
}

// ObjectLit is an object literal with property order preserved.
type ObjectLit struct {
	Props []Prop
}

// Prop is one property of an ObjectLit.
type Prop struct {
	Key   string
	Value Node
}

func (*StringLit) literalNode() {}
func (*NumberLit) literalNode() {}
func (*BoolLit) literalNode()   {}
func (*BigIntLit) literalNode() {}
func (*Ident) literalNode()     {}
func (*ArrayLit) literalNode()  {}
func (*ObjectLit) literalNode() {}

// Render returns the source text of the literal node.
func Render(n Node) string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *StringLit) write(sb *strings.Builder) {
	sb.WriteString(quoteString(n.Text))
}

func (n *NumberLit) write(sb *strings.Builder) {
	sb.WriteString(formatNumber(n.Value))
}

func (n *BoolLit) write(sb *strings.Builder) {
	if n.Value {
		sb.WriteString("true")
	} else {
		sb.WriteString("false")
	}
}

func (n *BigIntLit) write(sb *strings.Builder) {
	sb.WriteString(n.Text)
	sb.WriteByte('n')
}

func (n *Ident) write(sb *strings.Builder) {
	sb.WriteString(n.Name)
}

func (n *ArrayLit) write(sb *strings.Builder) {
	sb.WriteByte('[')
	for i, el := range n.Elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		el.write(sb)
	}
	sb.WriteByte(']')
}

func (n *ObjectLit) write(sb *strings.Builder) {
	if len(n.Props) == 0 {
		sb.WriteString("{}")
		return
	}
	sb.WriteString("{ ")
	for i, p := range n.Props {
		if i > 0 {
			sb.WriteString(", ")
		}
		if isIdentifierName(p.Key) {
			sb.WriteString(p.Key)
		} else {
			sb.WriteString(quoteString(p.Key))
		}
		sb.WriteString(": ")
		p.Value.write(sb)
	}
	sb.WriteString(" }")
}

// formatNumber renders a float as a JavaScript numeric literal.
// Integral values print without a fractional part; non-finite values fall
// back to their global identifier spellings.
func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// quoteString renders text as a single-quoted JavaScript string literal.
func quoteString(text string) string {
	var sb strings.Builder
	sb.WriteByte('\'')
	for _, r := range text {
		switch r {
		case '\'':
			sb.WriteString(`\'`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\u%04x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}

// isIdentifierName reports whether key can appear unquoted as a property name.
func isIdentifierName(key string) bool {
	if key == "" {
		return false
	}
	for i, r := range key {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
