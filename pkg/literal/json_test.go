package literal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gnana997/tsmeta/pkg/literal"
)

func TestToInterface(t *testing.T) {
	m := &literal.Mapping{Entries: []literal.Entry{
		{Key: "tag", Value: &literal.String{Text: "btn"}},
		{Key: "count", Value: &literal.Number{Value: 3}},
		{Key: "big", Value: &literal.BigInt{Text: "99"}},
		{Key: "on", Value: &literal.Bool{Value: true}},
		{Key: "ctor", Value: &literal.GlobalCtor{Ctor: literal.CtorNumber}},
		{Key: "ref", Value: &literal.Unresolved{Name: "x"}},
		{Key: "missing", Value: &literal.Undefined{}},
		{Key: "empty", Value: &literal.Null{}},
		{Key: "raw", Value: &literal.Opaque{}},
		{Key: "list", Value: &literal.Sequence{Elems: []literal.Value{
			&literal.Number{Value: 1},
		}}},
	}}

	want := map[string]any{
		"tag":     "btn",
		"count":   float64(3),
		"big":     "99n",
		"on":      true,
		"ctor":    "Number",
		"ref":     "x",
		"missing": nil,
		"empty":   nil,
		"raw":     "<expression>",
		"list":    []any{float64(1)},
	}
	assert.Equal(t, want, literal.ToInterface(m))
}

func TestToInterfaceCycle(t *testing.T) {
	m := &literal.Mapping{}
	m.Entries = append(m.Entries, literal.Entry{Key: "self", Value: m})

	assert.Equal(t, map[string]any{"self": nil}, literal.ToInterface(m))
}
