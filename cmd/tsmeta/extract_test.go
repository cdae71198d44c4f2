package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDiscoverFiles(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "src/app.ts", "export const x = 1;")
	writeFixture(t, root, "src/util.js", "module.exports = {};")
	writeFixture(t, root, "node_modules/dep/index.ts", "export {};")
	writeFixture(t, root, "dist/out.js", "var x;")
	writeFixture(t, root, "README.md", "# readme")

	files, err := discoverFiles(root, defaultIncludes, defaultExcludes)
	require.NoError(t, err)

	var rel []string
	for _, f := range files {
		r, err := filepath.Rel(root, f)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	assert.ElementsMatch(t, []string{"src/app.ts", "src/util.js"}, rel)
}

func TestDiscoverFiles_InvalidPattern(t *testing.T) {
	_, err := discoverFiles(t.TempDir(), []string{"[invalid"}, nil)
	assert.Error(t, err)
}

func TestExtractParallel(t *testing.T) {
	root := t.TempDir()
	a := writeFixture(t, root, "a.ts", `import { Props } from './b';

@Component({ tag: 'a-root' })
export class ARoot {
  config: Props;
}
`)
	b := writeFixture(t, root, "b.ts", `export interface Props {
  name: string;
}
`)

	st, err := buildStack(&ProjectConfig{LogLevel: "error"})
	require.NoError(t, err)
	defer st.close()

	results := extractParallel(st, []string{a, b})
	require.Len(t, results, 2)

	assert.Equal(t, a, results[0].FilePath)
	require.Len(t, results[0].Decorators, 1)
	assert.Equal(t, "Component", results[0].Decorators[0].Name)
	require.Len(t, results[0].TypeRefs, 1)
	assert.Equal(t, "Props", results[0].TypeRefs[0].Name)
	assert.Equal(t, "import", results[0].TypeRefs[0].Origin)

	assert.Equal(t, b, results[1].FilePath)
	require.Len(t, results[1].Exports, 1)
	assert.Equal(t, "Props", results[1].Exports[0].Name)
}

func TestExtractParallel_SkipsFailedFiles(t *testing.T) {
	st, err := buildStack(&ProjectConfig{LogLevel: "error"})
	require.NoError(t, err)
	defer st.close()

	good := writeFixture(t, t.TempDir(), "ok.ts", "export const x = 1;")
	results := extractParallel(st, []string{"missing.ts", good})
	require.Len(t, results, 1)
	assert.Equal(t, good, results[0].FilePath)
}
