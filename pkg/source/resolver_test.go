package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/tsmeta/pkg/source"
)

func writeFile(t *testing.T, dir, rel string, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestResolveSpecifier(t *testing.T) {
	loader := newLoader(t)
	r := source.NewFileResolver(loader, nil)

	dir := t.TempDir()
	exact := writeFile(t, dir, "exact.ts", "export {};")
	jsFile := writeFile(t, dir, "legacy.js", "export {};")
	index := writeFile(t, dir, "pkg/index.ts", "export {};")
	from := writeFile(t, dir, "app.ts", "export {};")

	tests := []struct {
		name      string
		specifier string
		want      string
	}{
		{"exact extension", "./exact.ts", exact},
		{"probes ts extension", "./exact", exact},
		{"probes js extension", "./legacy", jsFile},
		{"directory index", "./pkg", index},
		{"bare specifier is external", "react", ""},
		{"scoped package is external", "@angular/core", ""},
		{"unresolvable path", "./nope", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, r.ResolveSpecifier(from, tc.specifier))
		})
	}
}

func TestHomeModuleDirect(t *testing.T) {
	loader := newLoader(t)
	r := source.NewFileResolver(loader, nil)

	dir := t.TempDir()
	typesPath := writeFile(t, dir, "types.ts", "export interface Props {}")
	appPath := writeFile(t, dir, "app.ts", "import { Props } from './types';")

	app, err := loader.Load(appPath)
	require.NoError(t, err)

	home, name, err := r.HomeModule(app, "./types", "Props")
	require.NoError(t, err)
	require.NotNil(t, home)
	assert.Equal(t, typesPath, home.Path)
	assert.Equal(t, "Props", name)
}

func TestHomeModuleChainDepthLimit(t *testing.T) {
	// A deep but finite chain resolves; the visited set prevents loops and
	// the depth cap bounds pathological chains.
	loader := newLoader(t)
	r := source.NewFileResolver(loader, nil)

	dir := t.TempDir()
	writeFile(t, dir, "leaf.ts", "export interface Props {}")
	writeFile(t, dir, "hop2.ts", "export { Props } from './leaf';")
	writeFile(t, dir, "hop1.ts", "export { Props } from './hop2';")
	appPath := writeFile(t, dir, "app.ts", "import { Props } from './hop1';")

	app, err := loader.Load(appPath)
	require.NoError(t, err)

	home, name, err := r.HomeModule(app, "./hop1", "Props")
	require.NoError(t, err)
	require.NotNil(t, home)
	assert.Equal(t, filepath.Join(dir, "leaf.ts"), home.Path)
	assert.Equal(t, "Props", name)
}

func TestHomeModuleExternal(t *testing.T) {
	loader := newLoader(t)
	r := source.NewFileResolver(loader, nil)

	dir := t.TempDir()
	appPath := writeFile(t, dir, "app.ts", "import { Component } from '@angular/core';")

	app, err := loader.Load(appPath)
	require.NoError(t, err)

	home, _, err := r.HomeModule(app, "@angular/core", "Component")
	require.NoError(t, err)
	assert.Nil(t, home, "external specifiers have no in-workspace home")
}
