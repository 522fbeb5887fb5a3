package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ebiten-wrap/assets"
	"ebiten-wrap/components"
	"ebiten-wrap/ecs"
	"ebiten-wrap/gfx"
)

const sceneYAML = `
name: demo
entities:
  - name: Plane
    components:
      - type: mesh
        mesh: plane
        shader: flat
        scale: [2, 2, 2]
      - type: script
        name: counter
        step: 3
  - components:
      - type: script
        name: counter
`

type counter struct {
	components.BaseScript
	Step  int
	Total int
}

func (c *counter) OnUpdate(*ecs.World, ecs.Entity) {
	c.Total += c.Step
}

func writeScene(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func setup(t *testing.T) (*ecs.World, *components.Registry) {
	t.Helper()
	w := ecs.NewWorld()
	lib := assets.NewLibrary(zerolog.Nop())
	mesh, err := gfx.NewMeshBuilder().Name("plane").Vertices(gfx.QuadVertices).Indices(gfx.QuadIndices).Build()
	require.NoError(t, err)
	require.NoError(t, lib.AddMesh(mesh))
	shader, err := gfx.NewShaderBuilder().Name("flat").FragmentSource([]byte("package main")).Build(&gfx.NullDevice{})
	require.NoError(t, err)
	require.NoError(t, lib.AddShader("flat", shader))
	ecs.SetResource(w, lib)
	ecs.SetResource(w, gfx.NewRenderer())

	reg := components.NewRegistry()
	components.RegisterScript[counter](reg, "counter")
	return w, reg
}

func TestLoadAndSpawn(t *testing.T) {
	s, err := Load(writeScene(t, sceneYAML))
	require.NoError(t, err)
	assert.Equal(t, "demo", s.Name)
	require.Len(t, s.Entities, 2)
	assert.Equal(t, "mesh", s.Entities[0].Components[0].Type)
	assert.Equal(t, "plane", s.Entities[0].Components[0].Params["mesh"])

	w, reg := setup(t)
	spawned, err := Spawn(w, reg, s)
	require.NoError(t, err)
	require.Len(t, spawned, 2)

	plane, ok := w.Lookup("Plane")
	require.True(t, ok)
	assert.Equal(t, spawned[0], plane)

	m, ok := ecs.GetComponent[components.MeshComponent](w, plane)
	require.True(t, ok)
	assert.Equal(t, float32(2), m.Transform(0).Scale.X())

	name, ok := w.Name(spawned[1])
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(name, "entity-"))
	assert.Len(t, strings.TrimPrefix(name, "entity-"), 36)

	w.Update()
	w.Update()
	c, ok := components.GetScript[counter](w, plane)
	require.True(t, ok)
	assert.Equal(t, 6, c.Total)
	anon, ok := components.GetScript[counter](w, spawned[1])
	require.True(t, ok)
	assert.Equal(t, 0, anon.Total)
}

func TestSpawnUnknownComponent(t *testing.T) {
	s := &Scene{Entities: []EntitySpec{{
		Name:       "broken",
		Components: []ComponentSpec{{Type: "physics"}},
	}}}
	w, reg := setup(t)
	spawned, err := Spawn(w, reg, s)
	require.Error(t, err)
	assert.True(t, eris.Is(err, components.ErrUnknownComponent))
	assert.Contains(t, err.Error(), "broken")
	assert.Len(t, spawned, 1)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeScene(t, "entities:\n  - name: x\n    components:\n      - mesh: plane\n"))
	assert.ErrorContains(t, err, "no type")
}
