package literal

import (
	"strconv"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// Decode converts a literal syntax node back into a Value.
//
// Decoding is speculative: the caller does not know in advance whether an
// expression is configuration data or ordinary code, so Decode never fails.
// Node shapes outside the literal grammar decode to Opaque, deferring
// interpretation to the caller.
func Decode(node *ts.Node, source []byte) Value {
	if node == nil {
		return &Undefined{}
	}

	switch node.Kind() {
	case "string":
		return &String{Text: stringText(node, source)}

	case "template_string":
		// Only no-substitution templates are literal; anything with a
		// ${...} hole is an expression.
		if hasChildOfKind(node, "template_substitution") {
			return opaque(node, source)
		}
		return &String{Text: stringText(node, source)}

	case "true":
		return &Bool{Value: true}

	case "false":
		return &Bool{Value: false}

	case "number":
		return decodeNumber(node.Utf8Text(source), node)

	case "unary_expression":
		return decodeSignedNumber(node, source)

	case "object":
		return decodeObject(node, source)

	case "array":
		return decodeArray(node, source)

	case "undefined":
		return &Undefined{}

	case "null":
		return &Null{}

	case "identifier":
		return identifierValue(node.Utf8Text(source))

	case "parenthesized_expression":
		if inner := node.NamedChild(0); inner != nil {
			return Decode(inner, source)
		}
		return opaque(node, source)

	default:
		return opaque(node, source)
	}
}

// opaque wraps an unrecognized node, keeping its source text.
func opaque(node *ts.Node, source []byte) *Opaque {
	return &Opaque{Node: node, Text: node.Utf8Text(source)}
}

// identifierValue maps a bare identifier name to its literal value. Names
// outside the fixed vocabulary stay unresolved; binding them is the
// caller's job, not this codec's.
func identifierValue(name string) Value {
	switch name {
	case "String":
		return &GlobalCtor{Ctor: CtorString}
	case "Number":
		return &GlobalCtor{Ctor: CtorNumber}
	case "Boolean":
		return &GlobalCtor{Ctor: CtorBoolean}
	case "undefined":
		return &Undefined{}
	case "null":
		return &Null{}
	default:
		return &Unresolved{Name: name}
	}
}

// decodeObject converts an object literal, preserving property order.
// Shorthand properties ({ foo }) decode to an unresolved identifier named
// after the property. Properties without a usable name are skipped.
func decodeObject(node *ts.Node, source []byte) Value {
	m := &Mapping{}

	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "pair":
			keyNode := child.ChildByFieldName("key")
			valueNode := child.ChildByFieldName("value")
			key := propertyName(keyNode, source)
			if key == "" || valueNode == nil {
				continue
			}
			m.Entries = append(m.Entries, Entry{Key: key, Value: Decode(valueNode, source)})

		case "shorthand_property_identifier":
			name := child.Utf8Text(source)
			m.Entries = append(m.Entries, Entry{Key: name, Value: &Unresolved{Name: name}})
		}
	}

	return m
}

// decodeArray converts an array literal. Identifiers inside arrays are
// restricted to the global constructor vocabulary; any other bare name
// decodes to an undefined slot rather than an unresolved reference.
func decodeArray(node *ts.Node, source []byte) Value {
	seq := &Sequence{}

	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "object", "array", "string", "template_string",
			"true", "false", "number", "unary_expression":
			seq.Elems = append(seq.Elems, Decode(child, source))

		case "undefined":
			seq.Elems = append(seq.Elems, &Undefined{})

		case "null":
			seq.Elems = append(seq.Elems, &Null{})

		case "identifier":
			switch child.Utf8Text(source) {
			case "String":
				seq.Elems = append(seq.Elems, &GlobalCtor{Ctor: CtorString})
			case "Number":
				seq.Elems = append(seq.Elems, &GlobalCtor{Ctor: CtorNumber})
			case "Boolean":
				seq.Elems = append(seq.Elems, &GlobalCtor{Ctor: CtorBoolean})
			default:
				seq.Elems = append(seq.Elems, &Undefined{})
			}

		case "[", "]", ",", "comment":
			// Punctuation and comments, not elements.

		default:
			seq.Elems = append(seq.Elems, opaque(child, source))
		}
	}

	return seq
}

// decodeNumber parses a numeric literal, including bigint ("1n"), hex,
// octal, binary, and underscore separators. Unparseable text degrades to
// Opaque like any other unrecognized shape.
func decodeNumber(text string, node *ts.Node) Value {
	clean := strings.ReplaceAll(text, "_", "")

	if strings.HasSuffix(clean, "n") {
		return &BigInt{Text: strings.TrimSuffix(clean, "n")}
	}

	if len(clean) > 1 && clean[0] == '0' {
		switch clean[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			if v, err := strconv.ParseUint(clean[2:], baseOf(clean[1]), 64); err == nil {
				return &Number{Value: float64(v)}
			}
			return &Opaque{Node: node, Text: text}
		}
	}

	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return &Opaque{Node: node, Text: text}
	}
	return &Number{Value: v}
}

func baseOf(prefix byte) int {
	switch prefix {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	default:
		return 2
	}
}

// decodeSignedNumber handles a leading minus on a numeric literal, which the
// grammar parses as a unary expression. Any other unary form is opaque.
func decodeSignedNumber(node *ts.Node, source []byte) Value {
	op := node.ChildByFieldName("operator")
	arg := node.ChildByFieldName("argument")
	if op == nil || arg == nil || op.Utf8Text(source) != "-" || arg.Kind() != "number" {
		return opaque(node, source)
	}

	switch v := decodeNumber(arg.Utf8Text(source), arg).(type) {
	case *Number:
		return &Number{Value: -v.Value}
	case *BigInt:
		return &BigInt{Text: "-" + v.Text}
	default:
		return opaque(node, source)
	}
}

// propertyName extracts a usable property name: an identifier, a string
// literal's text, a numeric literal's text, or the literal inside a computed
// property name. Any other shape yields "" and the property is skipped.
func propertyName(node *ts.Node, source []byte) string {
	if node == nil {
		return ""
	}

	switch node.Kind() {
	case "property_identifier", "identifier", "shorthand_property_identifier":
		return node.Utf8Text(source)
	case "string":
		return stringText(node, source)
	case "number":
		return node.Utf8Text(source)
	case "computed_property_name":
		for i := uint(0); i < uint(node.ChildCount()); i++ {
			child := node.Child(i)
			switch child.Kind() {
			case "string":
				return stringText(child, source)
			case "number":
				return child.Utf8Text(source)
			}
		}
		return ""
	default:
		return ""
	}
}

// stringText returns the contents of a string or template literal with
// escape sequences resolved.
func stringText(node *ts.Node, source []byte) string {
	var sb strings.Builder
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "string_fragment":
			sb.WriteString(child.Utf8Text(source))
		case "escape_sequence":
			sb.WriteString(unescape(child.Utf8Text(source)))
		}
	}
	return sb.String()
}

// unescape resolves one JavaScript escape sequence (input includes the
// leading backslash).
func unescape(seq string) string {
	if len(seq) < 2 || seq[0] != '\\' {
		return seq
	}

	switch seq[1] {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case 'b':
		return "\b"
	case 'f':
		return "\f"
	case 'v':
		return "\v"
	case '0':
		return "\x00"
	case 'x':
		if v, err := strconv.ParseUint(seq[2:], 16, 32); err == nil {
			return string(rune(v))
		}
	case 'u':
		hex := seq[2:]
		hex = strings.TrimPrefix(hex, "{")
		hex = strings.TrimSuffix(hex, "}")
		if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
			return string(rune(v))
		}
	}
	// Identity escapes: \', \", \\, \` and anything unrecognized.
	return seq[1:]
}

// hasChildOfKind reports whether node has a direct child of the given kind.
func hasChildOfKind(node *ts.Node, kind string) bool {
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		if node.Child(i).Kind() == kind {
			return true
		}
	}
	return false
}
