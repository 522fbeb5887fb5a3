package gfx

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quadBuilder() *MeshBuilder {
	return NewMeshBuilder().
		Name("quad").
		Vertices(QuadVertices).
		Indices(QuadIndices).
		UV(QuadUV)
}

func TestMeshBuild(t *testing.T) {
	m, err := quadBuilder().Build()
	require.NoError(t, err)

	assert.Equal(t, "quad", m.Name())
	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 6, m.IndexCount())
	assert.True(t, m.HasUV())
	assert.Equal(t, float32(1), m.UV(0).X())
	assert.Equal(t, float32(-0.5), m.Positions()[2].X())
	assert.Equal(t, 1, m.Refs())
}

func TestMeshBuildWithoutUV(t *testing.T) {
	m, err := NewMeshBuilder().Name("tri").
		Vertices([]float32{0, 0, 0, 1, 0, 0, 0, 1, 0}).
		Indices([]uint16{0, 1, 2}).
		Build()
	require.NoError(t, err)
	assert.False(t, m.HasUV())
	assert.Zero(t, m.UV(1))
}

func TestMeshBuildMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		builder *MeshBuilder
		msg     string
	}{
		{"no vertices", quadBuilder().Vertices(nil), "vertices"},
		{"no indices", quadBuilder().Indices(nil), "indices"},
		{"no name", quadBuilder().Name(""), "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			require.Error(t, err)
			assert.True(t, eris.Is(err, ErrMissingField))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestMeshBuildInvalid(t *testing.T) {
	tests := []struct {
		name    string
		builder *MeshBuilder
	}{
		{"partial vertex", quadBuilder().Vertices([]float32{0, 0, 0, 1})},
		{"partial triangle", quadBuilder().Indices([]uint16{0, 1})},
		{"index out of range", quadBuilder().Indices([]uint16{0, 1, 4})},
		{"uv count", quadBuilder().UV([]float32{0, 0})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			require.Error(t, err)
			assert.True(t, eris.Is(err, ErrInvalidMesh))
			assert.False(t, eris.Is(err, ErrMissingField))
		})
	}
}

func TestMeshRelease(t *testing.T) {
	m, err := quadBuilder().Build()
	require.NoError(t, err)

	m.Retain()
	assert.False(t, m.Release())
	assert.Equal(t, 4, m.VertexCount())
	assert.True(t, m.Release())
	assert.Zero(t, m.VertexCount())
	assert.False(t, m.Release())
}
