// Package literal implements the bidirectional codec between runtime-shaped
// configuration values and their literal syntax representation.
//
// Decode reads a restricted literal grammar out of a parsed source tree
// without executing the program; Encode emits equivalent literal syntax for
// generated output. Anything outside the literal grammar passes through as
// an Opaque value for the caller to interpret.
package literal

import (
	ts "github.com/tree-sitter/go-tree-sitter"
)

// Value is the decoded form of a configuration literal. It is a closed
// tagged union; callers switch on the concrete type.
type Value interface {
	valueNode()
}

// String is a string literal value.
type String struct {
	Text string
}

// Number is a numeric literal value.
type Number struct {
	Value float64
}

// Bool is a boolean literal value.
type Bool struct {
	Value bool
}

// BigInt is a bigint literal value, kept as digit text (without the trailing
// "n") to avoid precision loss.
type BigInt struct {
	Text string
}

// Undefined is the literal undefined value.
type Undefined struct{}

// Null is the literal null value.
type Null struct{}

// Ctor identifies one of the global constructors the codec recognizes.
type Ctor int

const (
	CtorString Ctor = iota
	CtorNumber
	CtorBoolean
)

// String returns the constructor's global name.
func (c Ctor) String() string {
	switch c {
	case CtorString:
		return "String"
	case CtorNumber:
		return "Number"
	case CtorBoolean:
		return "Boolean"
	default:
		return "unknown"
	}
}

// GlobalCtor marks a reference to a global constructor (String, Number,
// Boolean), as used in watch/reflection configuration.
type GlobalCtor struct {
	Ctor Ctor
}

// Unresolved is a bare identifier whose binding this codec does not attempt
// to resolve. The raw name is preserved so a previously decoded identifier
// re-encodes as the same identifier (identifier passthrough), and so callers
// can resolve it against their own scope. Distinct from Undefined and Null.
type Unresolved struct {
	Name string
}

// Sequence is an ordered list of values (an array literal).
type Sequence struct {
	Elems []Value
}

// Mapping is an ordered list of key/value entries (an object literal).
// Insertion order is significant and preserved through encode and decode.
// Mappings are handled by pointer identity so cyclic graphs are representable.
type Mapping struct {
	Entries []Entry
}

// Entry is one key/value pair of a Mapping.
type Entry struct {
	Key   string
	Value Value
}

// Opaque carries a syntax node the decoder did not recognize, returned
// verbatim for the caller to re-inspect. The node is only valid while its
// source tree is open; Text keeps the expression's source so the value
// stays printable after the tree closes.
type Opaque struct {
	Node *ts.Node
	Text string
}

func (*String) valueNode()     {}
func (*Number) valueNode()     {}
func (*Bool) valueNode()       {}
func (*BigInt) valueNode()     {}
func (*Undefined) valueNode()  {}
func (*Null) valueNode()       {}
func (*GlobalCtor) valueNode() {}
func (*Unresolved) valueNode() {}
func (*Sequence) valueNode()   {}
func (*Mapping) valueNode()    {}
func (*Opaque) valueNode()     {}

// Get returns the value for key and whether it is present.
func (m *Mapping) Get(key string) (Value, bool) {
	for _, e := range m.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Set replaces the value for key, or appends a new entry preserving
// insertion order.
func (m *Mapping) Set(key string, v Value) {
	for i := range m.Entries {
		if m.Entries[i].Key == key {
			m.Entries[i].Value = v
			return
		}
	}
	m.Entries = append(m.Entries, Entry{Key: key, Value: v})
}
