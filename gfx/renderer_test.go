package gfx

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatShader(t *testing.T) *Shader {
	t.Helper()
	s, err := NewShaderBuilder().Name("flat").FragmentSource([]byte(fragmentSource)).Build(&NullDevice{})
	require.NoError(t, err)
	return s
}

func TestRendererProjectsToScreen(t *testing.T) {
	mesh, err := quadBuilder().Build()
	require.NoError(t, err)
	r := NewRenderer()
	r.Submit(DrawCommand{Mesh: mesh, Shader: flatShader(t), Model: mgl32.Ident4()})
	require.Len(t, r.Pending(), 1)

	target := NewNullTarget(100, 100)
	stats := r.Flush(target)

	assert.Equal(t, FlushStats{Commands: 1, Triangles: 2}, stats)
	assert.Empty(t, r.Pending())
	require.Len(t, target.Calls, 1)

	call := target.Calls[0]
	assert.Equal(t, QuadIndices, call.Indices)
	v := call.Vertices[0]
	assert.InDelta(t, 75, v.X, 1e-4)
	assert.InDelta(t, 25, v.Y, 1e-4)
	assert.Equal(t, float32(1), v.U)
	assert.Nil(t, call.Options.Texture)
}

func TestRendererAppliesModel(t *testing.T) {
	mesh, err := quadBuilder().Build()
	require.NoError(t, err)
	r := NewRenderer()
	tr := NewTransform()
	tr.Translation = mgl32.Vec3{0.5, 0, 0}
	r.Submit(DrawCommand{Mesh: mesh, Shader: flatShader(t), Model: tr.Matrix()})

	target := NewNullTarget(100, 100)
	r.Flush(target)
	require.Len(t, target.Calls, 1)
	assert.InDelta(t, 100, target.Calls[0].Vertices[0].X, 1e-4)
}

func TestRendererTexture(t *testing.T) {
	mesh, err := quadBuilder().Build()
	require.NoError(t, err)
	tex, err := NewTextureFromImage(&NullDevice{}, "t", image.NewRGBA(image.Rect(0, 0, 4, 4)))
	require.NoError(t, err)
	tex.Nearest()

	r := NewRenderer()
	r.Submit(DrawCommand{Mesh: mesh, Shader: flatShader(t), Texture: tex, Model: mgl32.Ident4()})
	target := NewNullTarget(10, 10)
	r.Flush(target)

	require.Len(t, target.Calls, 1)
	assert.Same(t, tex.Native(), target.Calls[0].Options.Texture)
	assert.Equal(t, FilterNearest, target.Calls[0].Options.Filter)
}

func TestRendererCullsBehindCamera(t *testing.T) {
	mesh, err := quadBuilder().Build()
	require.NoError(t, err)
	s, err := NewShaderBuilder().Name("p").FragmentSource([]byte(fragmentSource)).Perspective(100, 100).Build(&NullDevice{})
	require.NoError(t, err)

	r := NewRenderer()
	r.Submit(DrawCommand{Mesh: mesh, Shader: s, Model: mgl32.Translate3D(0, 0, 10)})
	r.Submit(DrawCommand{Mesh: mesh, Shader: s, Model: mgl32.Ident4()})

	target := NewNullTarget(100, 100)
	stats := r.Flush(target)
	assert.Equal(t, FlushStats{Commands: 1, Triangles: 2, Culled: 2}, stats)
	assert.Len(t, target.Calls, 1)
	assert.Equal(t, 2, target.Triangles())
}

func TestRendererDrawKeepsQueue(t *testing.T) {
	mesh, err := quadBuilder().Build()
	require.NoError(t, err)
	r := NewRenderer()
	r.Submit(DrawCommand{Mesh: mesh, Shader: flatShader(t), Model: mgl32.Ident4()})

	target := NewNullTarget(10, 10)
	r.Draw(target)
	r.Draw(target)
	assert.Len(t, target.Calls, 2)
	assert.Len(t, r.Pending(), 1)

	r.Reset()
	assert.Empty(t, r.Pending())
}

func TestRendererDropsIncompleteCommands(t *testing.T) {
	r := NewRenderer()
	r.Submit(DrawCommand{Shader: flatShader(t)})
	r.Submit(DrawCommand{})
	assert.Empty(t, r.Pending())
}

func TestTransformMatrix(t *testing.T) {
	tr := NewTransform()
	assert.Equal(t, mgl32.Ident4(), tr.Matrix())

	tr.Translation = mgl32.Vec3{1, 2, 3}
	tr.Scale = mgl32.Vec3{2, 2, 2}
	tr.SetRotation(mgl32.Vec3{0, 0, 1}, mgl32.DegToRad(90))

	p := tr.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 1, p.X(), 1e-5)
	assert.InDelta(t, 4, p.Y(), 1e-5)
	assert.InDelta(t, 3, p.Z(), 1e-5)

	tr.SetRotation(mgl32.Vec3{}, 1)
	assert.Equal(t, mgl32.QuatIdent(), tr.Rotation)
}
