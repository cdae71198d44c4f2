package literal

// ToInterface converts a decoded value into plain Go data for JSON output
// and tests. The conversion is display-oriented and lossy: mappings become
// maps (insertion order is not representable in encoding/json), global
// constructors and unresolved identifiers become their names, bigints
// become their digit text, and opaque nodes become their source text.
// Cyclic mappings convert to nil at the cyclic edge.
func ToInterface(v Value) any {
	return toInterface(v, make(map[Value]struct{}))
}

func toInterface(v Value, seen map[Value]struct{}) any {
	switch val := v.(type) {
	case *String:
		return val.Text
	case *Number:
		return val.Value
	case *Bool:
		return val.Value
	case *BigInt:
		return val.Text + "n"
	case *Undefined, *Null, nil:
		return nil
	case *GlobalCtor:
		return val.Ctor.String()
	case *Unresolved:
		return val.Name
	case *Sequence:
		if _, ok := seen[v]; ok {
			return nil
		}
		seen[v] = struct{}{}
		out := make([]any, 0, len(val.Elems))
		for _, el := range val.Elems {
			out = append(out, toInterface(el, seen))
		}
		return out
	case *Mapping:
		if _, ok := seen[v]; ok {
			return nil
		}
		seen[v] = struct{}{}
		out := make(map[string]any, len(val.Entries))
		for _, ent := range val.Entries {
			out[ent.Key] = toInterface(ent.Value, seen)
		}
		return out
	case *Opaque:
		if val.Text != "" {
			return val.Text
		}
		return "<expression>"
	default:
		return nil
	}
}
