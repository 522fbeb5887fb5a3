package components

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mitchellh/mapstructure"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ebiten-wrap/assets"
	"ebiten-wrap/ecs"
)

func TestRegistryNames(t *testing.T) {
	r := NewRegistry()
	RegisterScript[spinner](r, "Spinner")

	assert.Equal(t, []string{"mesh"}, r.Names())
	assert.Equal(t, []string{"spinner"}, r.ScriptNames())

	_, ok := r.Lookup("MESH")
	assert.True(t, ok)
	_, ok = r.LookupScript("SPINNER")
	assert.True(t, ok)
	_, ok = r.Lookup("position")
	assert.False(t, ok)
}

func TestRegistryAttachMesh(t *testing.T) {
	f := newFixture(t)
	r := NewRegistry()
	e := f.world.NewEntity("Plane")

	err := r.Attach(f.world, e, "Mesh", map[string]any{
		"mesh":      "plane",
		"shader":    "basic",
		"texture":   "cherry",
		"parts":     []any{map[string]any{"mesh": "plane", "shader": "basic"}},
		"translate": []any{1, 0, "2.5"},
		"rotation":  map[string]any{"axis": []any{0, 1, 0}, "degrees": 90},
	})
	require.NoError(t, err)

	m, ok := ecs.GetComponent[MeshComponent](f.world, e)
	require.True(t, ok)
	assert.Equal(t, 2, m.Len())
	assert.Len(t, m.Textures(), 1)
	assert.Equal(t, mgl32.Vec3{1, 0, 2.5}, m.Transform(1).Translation)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, m.Transform(0).Scale)
	assert.Equal(t, mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}), m.Transform(0).Rotation)
}

func TestRegistryAttachMeshErrors(t *testing.T) {
	f := newFixture(t)
	r := NewRegistry()
	e := f.world.NewEntity("Plane")

	err := r.Attach(f.world, e, "mesh", map[string]any{"mesh": "missing", "shader": "basic"})
	assert.True(t, eris.Is(err, assets.ErrNotFound))

	err = r.Attach(f.world, e, "mesh", map[string]any{"mesh": "plane", "shader": "basic", "colour": "red"})
	assert.True(t, eris.Is(err, ErrInvalidParams))

	err = r.Attach(f.world, e, "mesh", map[string]any{"mesh": "plane", "shader": "basic", "scale": []any{1, 2}})
	assert.True(t, eris.Is(err, ErrInvalidParams))

	err = r.Attach(f.world, e, "mesh", nil)
	assert.True(t, eris.Is(err, ErrInvalidParams))

	_, ok := ecs.GetComponent[MeshComponent](f.world, e)
	assert.False(t, ok)

	err = r.Attach(ecs.NewWorld(), e, "mesh", map[string]any{"mesh": "plane", "shader": "basic"})
	assert.Error(t, err)
}

func TestRegistryAttachScript(t *testing.T) {
	w := ecs.NewWorld()
	r := NewRegistry()
	RegisterScript[spinner](r, "spinner")
	e := w.NewEntity("Plane")

	require.NoError(t, r.Attach(w, e, "script", map[string]any{"name": "Spinner", "speed": "0.25"}))
	s, ok := GetScript[spinner](w, e)
	require.True(t, ok)
	assert.Equal(t, float32(0.25), s.Speed)
	assert.Equal(t, 1, s.created)

	err := r.Attach(w, e, "script", map[string]any{"name": "wobble"})
	assert.True(t, eris.Is(err, ErrUnknownComponent))

	err = r.Attach(w, e, "script", map[string]any{})
	assert.True(t, eris.Is(err, ErrInvalidParams))

	err = r.Attach(w, e, "physics", nil)
	assert.True(t, eris.Is(err, ErrUnknownComponent))
}

func TestRegistryAttachScriptBadParams(t *testing.T) {
	w := ecs.NewWorld()
	r := NewRegistry()
	RegisterScript[spinner](r, "spinner")
	e := w.NewEntity("Plane")

	err := r.Attach(w, e, "script", map[string]any{"name": "spinner", "sped": 1})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrInvalidParams))
	assert.Contains(t, err.Error(), "sped")
	_, ok := GetScript[spinner](w, e)
	assert.False(t, ok, "nothing attached after bad params")

	err = r.Attach(w, e, "script", map[string]any{"name": "spinner", "speed": "fast"})
	assert.True(t, eris.Is(err, ErrInvalidParams))
	_, ok = GetScript[spinner](w, e)
	assert.False(t, ok)

	require.NoError(t, r.Attach(w, e, "script", map[string]any{"name": "spinner", "speed": 2}))
	assert.Len(t, ecs.Components[ScriptComponent[spinner, *spinner]](w, e), 1)
}

func TestDecodeParamsKeepsCause(t *testing.T) {
	var out struct {
		Speed float32 `mapstructure:"speed"`
	}
	err := DecodeParams(map[string]any{"speed": 1, "extra": true}, &out)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrInvalidParams))

	var decodeErr *mapstructure.Error
	require.True(t, eris.As(err, &decodeErr))
	assert.Contains(t, decodeErr.Error(), "extra")

	require.NoError(t, DecodeParams(nil, &out))
}
