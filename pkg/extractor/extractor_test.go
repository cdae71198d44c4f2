package extractor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/tsmeta/pkg/parser"
	"github.com/gnana997/tsmeta/pkg/parser/queries"
	"github.com/gnana997/tsmeta/pkg/source"
	"github.com/gnana997/tsmeta/pkg/typelib"
	"github.com/gnana997/tsmeta/pkg/typeref"
	"github.com/gnana997/tsmeta/pkg/util"
)

func newTestExtractor(t *testing.T) (*Extractor, *source.Loader) {
	t.Helper()

	pm := parser.NewManager(nil)
	t.Cleanup(func() { pm.Close() })
	qm := queries.NewManager(pm, nil)
	t.Cleanup(func() { qm.Close() })
	fc := util.NewFileCache(nil)
	t.Cleanup(func() { fc.Close() })

	loader, err := source.NewLoader(pm, qm, fc, 32, nil)
	require.NoError(t, err)
	t.Cleanup(loader.Close)

	oracle := typeref.NewSyntacticOracle()
	resolver := typeref.NewResolver(
		source.NewFileResolver(loader, nil),
		typelib.NewMemoryLibrary(),
		oracle, nil)

	return New(loader, NewQueryBridge(qm, nil), resolver, oracle, nil), loader
}

func TestExtractSource(t *testing.T) {
	ext, _ := newTestExtractor(t)

	src := `import { Props, State as S } from './types';

@Component({ tag: 'app-root', shadow: true })
export class AppRoot {
  @Prop() name: string;
  config: Props;
  state: S;
}
`
	meta, err := ext.ExtractSource("app.ts", []byte(src))
	require.NoError(t, err)

	assert.Equal(t, "app.ts", meta.FilePath)
	assert.Equal(t, "typescript", meta.Language)

	require.Len(t, meta.Imports, 2)
	assert.Equal(t, "Props", meta.Imports[0].LocalName)
	assert.Equal(t, "S", meta.Imports[1].LocalName)
	assert.Equal(t, "State", meta.Imports[1].ImportedName)

	require.Len(t, meta.Exports, 1)
	assert.Equal(t, "AppRoot", meta.Exports[0].Name)
	assert.Equal(t, "class_declaration", meta.Exports[0].DeclKind)

	require.Len(t, meta.Decorators, 2)
	assert.Equal(t, "Component", meta.Decorators[0].Name)
	assert.Equal(t, "AppRoot", meta.Decorators[0].Target)
	require.Len(t, meta.Decorators[0].Args, 1)
	assert.Equal(t, map[string]any{"tag": "app-root", "shadow": true},
		meta.Decorators[0].Args[0])
	assert.Equal(t, "Prop", meta.Decorators[1].Name)
	assert.Equal(t, "name", meta.Decorators[1].Target)
	assert.Empty(t, meta.Decorators[1].Args)

	// Both imported names appear as type refs; './types' does not resolve
	// on disk, so they degrade to ambient.
	names := make(map[string]string)
	for _, ref := range meta.TypeRefs {
		names[ref.Name] = ref.Origin
	}
	assert.Equal(t, map[string]string{"Props": "global", "S": "global"}, names)
}

func TestExtractFileResolvesImports(t *testing.T) {
	ext, _ := newTestExtractor(t)
	dir := t.TempDir()

	typesPath := filepath.Join(dir, "types.ts")
	require.NoError(t, os.WriteFile(typesPath, []byte("export interface Props {}"), 0644))
	appPath := filepath.Join(dir, "app.ts")
	require.NoError(t, os.WriteFile(appPath, []byte(`import { Props } from './types';
let p: Props;
`), 0644))

	meta, err := ext.ExtractFile(appPath)
	require.NoError(t, err)

	require.Len(t, meta.TypeRefs, 1)
	ref := meta.TypeRefs[0]
	assert.Equal(t, "Props", ref.Name)
	assert.Equal(t, "import", ref.Origin)
	assert.Equal(t, "./types", ref.Specifier)
	assert.Equal(t, typesPath+"::Props", ref.ID)
}

func TestExtractFoldsDuplicateTypeRefs(t *testing.T) {
	ext, _ := newTestExtractor(t)

	meta, err := ext.ExtractSource("a.ts", []byte(`
let a: Foo;
let b: Bar;
let c: Foo;
`))
	require.NoError(t, err)

	require.Len(t, meta.TypeRefs, 2, "duplicates fold to one entry per name")
	assert.Equal(t, "Foo", meta.TypeRefs[0].Name, "first-seen order is kept")
	assert.Equal(t, "Bar", meta.TypeRefs[1].Name)
}

func TestExtractFileMissing(t *testing.T) {
	ext, _ := newTestExtractor(t)
	_, err := ext.ExtractFile("does/not/exist.ts")
	assert.Error(t, err)
}

func TestQueryBridgeDecorators(t *testing.T) {
	ext, loader := newTestExtractor(t)

	f, err := loader.LoadSource("dec.ts", []byte(`
@ui.Component({ selector: 'x' })
class Qualified {}

@Injectable
class Bare {}
`))
	require.NoError(t, err)

	bridge, ok := ext.queries.(*QueryBridge)
	require.True(t, ok)

	sites, err := bridge.decoratorMatches(f)
	require.NoError(t, err)
	require.Len(t, sites, 2)

	assert.Equal(t, "ui.Component", sites[0].name)
	assert.Equal(t, "Qualified", sites[0].target)
	require.Len(t, sites[0].args, 1)
	assert.Equal(t, "object", sites[0].args[0].Kind())

	assert.Equal(t, "Injectable", sites[1].name)
	assert.Equal(t, "Bare", sites[1].target)
	assert.Empty(t, sites[1].args)
}

type failingQueries struct{ err error }

func (f *failingQueries) decoratorMatches(*source.SourceFile) ([]decoratorSite, error) {
	return nil, f.err
}

func TestExtractPropagatesDecoratorErrors(t *testing.T) {
	ext, loader := newTestExtractor(t)
	ext.queries = &failingQueries{err: errors.New("query exploded")}

	f, err := loader.LoadSource("a.ts", []byte("let x = 1;"))
	require.NoError(t, err)

	_, err = ext.extract(f)
	assert.ErrorContains(t, err, "query exploded")
}
