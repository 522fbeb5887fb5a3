package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ebiten-wrap/components"
	"ebiten-wrap/config"
	"ebiten-wrap/gfx"
	"ebiten-wrap/scripts"
)

const kage = `//kage:unit pixels
package main

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	return imageSrc0At(src) * color
}
`

const manifest = `{
	"textures": [{"name": "white", "color": "#ffffff", "width": 2, "height": 2}],
	"shaders": [{"name": "basic", "fragment": "basic.kage", "projection": "perspective"}],
	"meshes": [{"name": "plane", "builtin": "quad"}]
}`

const sceneYAML = `
name: test
entities:
  - name: Plane
    components:
      - type: mesh
        mesh: plane
        shader: basic
        texture: white
      - type: script
        name: plane
        speed: 0.1
  - name: Temporary
    components:
      - type: script
        name: lifetime
        ticks: 3
`

func fixture(t *testing.T) (*Engine, *gfx.NullDevice, string) {
	t.Helper()
	dir := t.TempDir()
	for name, body := range map[string]string{
		"assets.json": manifest,
		"basic.kage":  kage,
		"scene.yaml":  sceneYAML,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	cfg := config.Default()
	cfg.Assets.Manifest = filepath.Join(dir, "assets.json")
	cfg.Assets.Workers = 2
	dev := &gfx.NullDevice{}
	e, err := New(cfg, dev, zerolog.Nop())
	require.NoError(t, err)
	return e, dev, filepath.Join(dir, "scene.yaml")
}

func TestNewLoadsManifest(t *testing.T) {
	e, dev, _ := fixture(t)
	defer e.Close()

	meshes, shaders, textures := e.Assets.Counts()
	assert.Equal(t, 1, meshes)
	assert.Equal(t, 1, shaders)
	assert.Equal(t, 1, textures)
	assert.Equal(t, 1, dev.Shaders)
	assert.Equal(t, 1, dev.Textures)
	assert.Contains(t, e.Registry.ScriptNames(), "plane")
}

func TestNewMissingManifest(t *testing.T) {
	cfg := config.Default()
	cfg.Assets.Manifest = filepath.Join(t.TempDir(), "missing.json")
	_, err := New(cfg, &gfx.NullDevice{}, zerolog.Nop())
	assert.Error(t, err)
}

func TestLoadScene(t *testing.T) {
	e, _, scenePath := fixture(t)
	defer e.Close()

	ents, err := e.LoadScene(scenePath)
	require.NoError(t, err)
	require.Len(t, ents, 2)

	plane, ok := e.World.Lookup("Plane")
	require.True(t, ok)
	assert.Equal(t, ents[0], plane)
	_, ok = components.GetScript[scripts.Plane](e.World, plane)
	assert.True(t, ok)
}

func TestUpdateAndDraw(t *testing.T) {
	e, _, scenePath := fixture(t)
	defer e.Close()
	_, err := e.LoadScene(scenePath)
	require.NoError(t, err)

	target := gfx.NewNullTarget(800, 600)
	e.Update()
	stats := e.Draw(target)
	assert.Equal(t, 1, stats.Commands)
	assert.Equal(t, 2, stats.Triangles)
	assert.Len(t, target.Calls, 1)

	// Drawing again without an update redraws the same frame.
	stats = e.Draw(target)
	assert.Equal(t, 1, stats.Commands)
	assert.Len(t, target.Calls, 1)
}

func TestRunHeadless(t *testing.T) {
	e, _, scenePath := fixture(t)
	defer e.Close()
	_, err := e.LoadScene(scenePath)
	require.NoError(t, err)

	stats, err := e.RunHeadless(context.Background(), HeadlessOptions{Ticks: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Ticks)
	assert.Equal(t, 5, stats.Commands)
	assert.Equal(t, 10, stats.Triangles)
	assert.Zero(t, stats.Culled)
	assert.Equal(t, uint64(5), e.World.Ticks())
	assert.GreaterOrEqual(t, stats.Max, stats.Average())

	// The lifetime script removed its entity after three ticks.
	assert.Equal(t, 1, e.World.Len())
	_, ok := e.World.Lookup("Temporary")
	assert.False(t, ok)

	plane, _ := e.World.Lookup("Plane")
	script, ok := components.GetScript[scripts.Plane](e.World, plane)
	require.True(t, ok)
	assert.InDelta(t, 0.5, script.Angle(), 1e-5)
}

func TestRunHeadlessCancelled(t *testing.T) {
	e, _, _ := fixture(t)
	defer e.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stats, err := e.RunHeadless(ctx, HeadlessOptions{Realtime: true, TPS: 1})
	require.NoError(t, err)
	assert.Zero(t, stats.Ticks)
}

func TestRunHeadlessOptions(t *testing.T) {
	e, _, _ := fixture(t)
	defer e.Close()

	_, err := e.RunHeadless(context.Background(), HeadlessOptions{Ticks: -1})
	assert.Error(t, err)
	_, err = e.RunHeadless(context.Background(), HeadlessOptions{})
	assert.Error(t, err)
}

func TestCloseReleasesAssets(t *testing.T) {
	e, dev, scenePath := fixture(t)
	_, err := e.LoadScene(scenePath)
	require.NoError(t, err)

	e.Close()
	assert.Zero(t, e.World.Len())
	assert.Zero(t, dev.Textures)
	assert.Zero(t, dev.Shaders)
	assert.Empty(t, e.Renderer.Pending())
}
