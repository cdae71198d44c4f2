package typeref_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/tsmeta/pkg/source"
	"github.com/gnana997/tsmeta/pkg/typeref"
)

// resolveIn collects refs in f and resolves the one named name.
func resolveIn(t *testing.T, e *env, f *source.SourceFile, name string) typeref.Origin {
	t.Helper()
	for _, ref := range typeref.Collect(f, f.Root(), e.oracle) {
		if ref.Name == name {
			origin, err := e.resolver.ResolveOrigin(ref.Name, ref.Type, f)
			require.NoError(t, err)
			return origin
		}
	}
	t.Fatalf("no reference to %s in %s", name, f.Path)
	return typeref.Origin{}
}

func TestResolveImportedType(t *testing.T) {
	e := newEnv(t)
	typesPath := e.write(t, "types.ts", `export interface Props { name: string; }`)
	appPath := e.write(t, "app.ts", `import { Props } from './types';
let p: Props;
`)

	origin := resolveIn(t, e, e.loadPath(t, appPath), "Props")

	assert.Equal(t, typeref.OriginImport, origin.Kind)
	assert.Equal(t, "./types", origin.SpecifierPath,
		"specifier stays as written, not the resolved path")
	assert.Equal(t, typesPath+"::Props", origin.ID)
}

func TestResolveThroughBarrel(t *testing.T) {
	e := newEnv(t)
	typesPath := e.write(t, "types.ts", `export interface Props { name: string; }`)
	e.write(t, "barrel.ts", `export { Props } from './types';`)
	appPath := e.write(t, "app.ts", `import { Props } from './barrel';
let p: Props;
`)

	origin := resolveIn(t, e, e.loadPath(t, appPath), "Props")

	assert.Equal(t, typeref.OriginImport, origin.Kind)
	assert.Equal(t, "./barrel", origin.SpecifierPath)
	assert.Equal(t, typesPath+"::Props", origin.ID,
		"the id is minted at the home module, not the barrel")
}

func TestResolveAliasedReExport(t *testing.T) {
	e := newEnv(t)
	typesPath := e.write(t, "types.ts", `export interface Props { name: string; }`)
	e.write(t, "barrel.ts", `export { Props as PublicProps } from './types';`)
	appPath := e.write(t, "app.ts", `import { PublicProps } from './barrel';
let p: PublicProps;
`)

	origin := resolveIn(t, e, e.loadPath(t, appPath), "PublicProps")

	assert.Equal(t, typeref.OriginImport, origin.Kind)
	assert.Equal(t, typesPath+"::Props", origin.ID,
		"registration uses the name as declared in the home module")
}

func TestResolveThroughWildcardReExport(t *testing.T) {
	e := newEnv(t)
	typesPath := e.write(t, "types.ts", `export interface Props { name: string; }`)
	e.write(t, "star.ts", `export * from './types';`)
	appPath := e.write(t, "app.ts", `import { Props } from './star';
let p: Props;
`)

	origin := resolveIn(t, e, e.loadPath(t, appPath), "Props")

	assert.Equal(t, typeref.OriginImport, origin.Kind)
	assert.Equal(t, typesPath+"::Props", origin.ID)
}

func TestResolveLocalExport(t *testing.T) {
	e := newEnv(t)
	typesPath := e.write(t, "types.ts", `export interface Props { name: string; }
let p: Props;
`)

	origin := resolveIn(t, e, e.loadPath(t, typesPath), "Props")

	assert.Equal(t, typeref.OriginLocal, origin.Kind)
	assert.Equal(t, typesPath, origin.FilePath)
	assert.Equal(t, typesPath+"::Props", origin.ID)
}

func TestResolveRegistryIdempotence(t *testing.T) {
	// The same declared type reached from an importing file and from its
	// own file must land on one library entry.
	e := newEnv(t)
	typesPath := e.write(t, "types.ts", `export interface Props { name: string; }
let p: Props;
`)
	appPath := e.write(t, "app.ts", `import { Props } from './types';
let q: Props;
`)

	imported := resolveIn(t, e, e.loadPath(t, appPath), "Props")
	local := resolveIn(t, e, e.loadPath(t, typesPath), "Props")

	assert.Equal(t, imported.ID, local.ID)
	assert.Equal(t, 1, e.library.Len(), "one declaration, one entry")
}

func TestResolveExternalImportFallsThrough(t *testing.T) {
	e := newEnv(t)
	appPath := e.write(t, "app.ts", `import { Component } from '@angular/core';
let c: Component;
`)

	origin := resolveIn(t, e, e.loadPath(t, appPath), "Component")

	assert.Equal(t, typeref.OriginGlobal, origin.Kind,
		"bare specifiers leave the workspace; the name degrades to ambient")
	assert.Equal(t, "global::Component", origin.ID)
}

func TestResolveGlobal(t *testing.T) {
	e := newEnv(t)
	appPath := e.write(t, "app.ts", `let d: Date;`)

	origin := resolveIn(t, e, e.loadPath(t, appPath), "Date")

	assert.Equal(t, typeref.OriginGlobal, origin.Kind)
	assert.Equal(t, "global::Date", origin.ID)
	assert.Equal(t, 0, e.library.Len(), "globals never touch the registry")
}

func TestResolveNonExportedLocalIsGlobal(t *testing.T) {
	e := newEnv(t)
	appPath := e.write(t, "app.ts", `interface Hidden { x: number; }
let h: Hidden;
`)

	origin := resolveIn(t, e, e.loadPath(t, appPath), "Hidden")

	assert.Equal(t, typeref.OriginGlobal, origin.Kind,
		"unexported declarations do not count as local exports")
	assert.Equal(t, "global::Hidden", origin.ID)
}

func TestResolveReExportCycle(t *testing.T) {
	e := newEnv(t)
	e.write(t, "cycle1.ts", `export { Props } from './cycle2';`)
	e.write(t, "cycle2.ts", `export { Props } from './cycle1';`)
	appPath := e.write(t, "app.ts", `import { Props } from './cycle1';
let p: Props;
`)

	origin := resolveIn(t, e, e.loadPath(t, appPath), "Props")

	assert.Equal(t, typeref.OriginGlobal, origin.Kind,
		"a chain that never terminates degrades to ambient")
}
