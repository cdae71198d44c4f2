package literal

import "fmt"

// UnsupportedValueKindError reports an encode call with a value outside the
// recognized domain. This is a programmer error in the caller; encoding
// fails fast with no partial output.
type UnsupportedValueKindError struct {
	Kind string
}

func (e *UnsupportedValueKindError) Error() string {
	return fmt.Sprintf("cannot encode unsupported value kind: %s", e.Kind)
}

// Encoder converts values to literal nodes.
//
// The zero value matches the historical behavior: cyclic mappings are
// guarded (the cyclic edge encodes as the identifier undefined) while
// cyclic sequences are not and recurse without bound. Set GuardSequences to
// guard all compound containers uniformly.
type Encoder struct {
	GuardSequences bool
}

// Encode converts a value to its literal node using a zero Encoder.
func Encode(v Value) (Node, error) {
	var e Encoder
	return e.Encode(v)
}

// Encode converts a value to its literal node.
//
// Mappings are tracked by identity in a seen set shared across the whole
// recursion (not copied, never removed), so a mapping reached a second time
// on any path encodes as the identifier undefined instead of recursing.
func (e *Encoder) Encode(v Value) (Node, error) {
	return e.encode(v, make(map[Value]struct{}))
}

func (e *Encoder) encode(v Value, seen map[Value]struct{}) (Node, error) {
	switch val := v.(type) {
	case *GlobalCtor:
		return &Ident{Name: val.Ctor.String()}, nil

	case *Undefined:
		return &Ident{Name: "undefined"}, nil

	case *Null:
		return &Ident{Name: "null"}, nil

	case *Sequence:
		if e.GuardSequences {
			if _, ok := seen[v]; ok {
				return &Ident{Name: "undefined"}, nil
			}
			seen[v] = struct{}{}
		}
		elems := make([]Node, 0, len(val.Elems))
		for _, el := range val.Elems {
			n, err := e.encode(el, seen)
			if err != nil {
				return nil, err
			}
			elems = append(elems, n)
		}
		return &ArrayLit{Elems: elems}, nil

	case *Unresolved:
		// Identifier passthrough: a previously decoded bare name re-encodes
		// as the same identifier.
		return &Ident{Name: val.Name}, nil

	case *Mapping:
		if _, ok := seen[v]; ok {
			return &Ident{Name: "undefined"}, nil
		}
		seen[v] = struct{}{}
		props := make([]Prop, 0, len(val.Entries))
		for _, ent := range val.Entries {
			n, err := e.encode(ent.Value, seen)
			if err != nil {
				return nil, err
			}
			props = append(props, Prop{Key: ent.Key, Value: n})
		}
		return &ObjectLit{Props: props}, nil

	case *Number:
		return &NumberLit{Value: val.Value}, nil

	case *BigInt:
		return &BigIntLit{Text: val.Text}, nil

	case *Bool:
		return &BoolLit{Value: val.Value}, nil

	case *String:
		return &StringLit{Text: val.Text}, nil

	case *Opaque:
		return nil, &UnsupportedValueKindError{Kind: "opaque node"}

	case nil:
		return nil, &UnsupportedValueKindError{Kind: "nil"}

	default:
		return nil, &UnsupportedValueKindError{Kind: fmt.Sprintf("%T", v)}
	}
}
