package typeref_test

import (
	"testing"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/tsmeta/pkg/source"
)

// annotationOf returns the type_annotation node of the first declarator.
func annotationOf(t *testing.T, f *source.SourceFile) *ts.Node {
	t.Helper()
	decl := f.Root().NamedChild(0)
	require.NotNil(t, decl)
	declarator := decl.NamedChild(0)
	require.NotNil(t, declarator)
	ann := declarator.ChildByFieldName("type")
	require.NotNil(t, ann)
	return ann
}

func TestOracleTypeFromAnnotation(t *testing.T) {
	e := newEnv(t)
	f := e.load(t, "a.ts", `let x: Props;`)

	h := e.oracle.TypeFromAnnotation(f, annotationOf(t, f))
	require.NotNil(t, h)
	assert.Equal(t, "Props", e.oracle.FormatType(h))
	assert.False(t, e.oracle.IsUnionType(h))
	assert.NotEmpty(t, h.TypeKey())
}

func TestOracleUnion(t *testing.T) {
	e := newEnv(t)
	f := e.load(t, "a.ts", `let x: Foo | Bar | 'lit';`)

	h := e.oracle.TypeFromAnnotation(f, annotationOf(t, f))
	require.True(t, e.oracle.IsUnionType(h))

	members := e.oracle.UnionMembers(h)
	require.Len(t, members, 3, "nested unions flatten")
	assert.Equal(t, "Foo", e.oracle.FormatType(members[0]))
	assert.Equal(t, "Bar", e.oracle.FormatType(members[1]))
	assert.Equal(t, "'lit'", e.oracle.FormatType(members[2]))
}

func TestOracleDistinctSitesDistinctKeys(t *testing.T) {
	e := newEnv(t)
	f := e.load(t, "a.ts", `let x: Props;
let y: Props;
`)
	first := e.oracle.TypeFromAnnotation(f, annotationOf(t, f))

	second := f.Root().NamedChild(1)
	require.NotNil(t, second)
	declarator := second.NamedChild(0)
	require.NotNil(t, declarator)
	other := e.oracle.TypeFromAnnotation(f, declarator.ChildByFieldName("type"))

	assert.NotEqual(t, first.TypeKey(), other.TypeKey())
}

func TestOracleNilNode(t *testing.T) {
	e := newEnv(t)
	f := e.load(t, "a.ts", `let x: Props;`)
	assert.Nil(t, e.oracle.TypeFromAnnotation(f, nil))
	assert.Nil(t, e.oracle.TypeAtNode(f, nil))
	assert.Equal(t, "unknown", e.oracle.FormatType(nil))
}
