package gfx

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rotisserie/eris"
)

// Unit quad centred on the origin, facing +Z.
var (
	QuadVertices = []float32{
		0.5, 0.5, 0.0,
		0.5, -0.5, 0.0,
		-0.5, -0.5, 0.0,
		-0.5, 0.5, 0.0,
	}
	QuadIndices = []uint16{
		0, 1, 3,
		1, 2, 3,
	}
	QuadUV = []float32{
		1.0, 0.0,
		1.0, 1.0,
		0.0, 1.0,
		0.0, 0.0,
	}
)

// MeshBuilder collects the data for a Mesh.
type MeshBuilder struct {
	name     string
	vertices []float32
	indices  []uint16
	uv       []float32
}

// NewMeshBuilder returns an empty builder.
func NewMeshBuilder() *MeshBuilder {
	return &MeshBuilder{}
}

func (b *MeshBuilder) Name(name string) *MeshBuilder {
	b.name = name
	return b
}

// Vertices sets the vertex positions as consecutive x, y, z triples.
func (b *MeshBuilder) Vertices(v []float32) *MeshBuilder {
	b.vertices = v
	return b
}

// Indices sets the triangle list.
func (b *MeshBuilder) Indices(i []uint16) *MeshBuilder {
	b.indices = i
	return b
}

// UV sets texture coordinates as consecutive u, v pairs, one per vertex.
func (b *MeshBuilder) UV(uv []float32) *MeshBuilder {
	b.uv = uv
	return b
}

// Build validates the collected data and creates the mesh. Vertices, indices
// and a name are required.
func (b *MeshBuilder) Build() (*Mesh, error) {
	if len(b.vertices) == 0 {
		return nil, eris.Wrap(ErrMissingField, "mesh: vertices not supplied")
	}
	if len(b.indices) == 0 {
		return nil, eris.Wrap(ErrMissingField, "mesh: indices not supplied")
	}
	if b.name == "" {
		return nil, eris.Wrap(ErrMissingField, "mesh: name not supplied")
	}

	if len(b.vertices)%3 != 0 {
		return nil, eris.Wrapf(ErrInvalidMesh, "mesh %s: %d vertex floats is not a multiple of 3", b.name, len(b.vertices))
	}
	n := len(b.vertices) / 3
	if n > math.MaxUint16+1 {
		return nil, eris.Wrapf(ErrInvalidMesh, "mesh %s: %d vertices exceed 16-bit indexing", b.name, n)
	}
	if len(b.indices)%3 != 0 {
		return nil, eris.Wrapf(ErrInvalidMesh, "mesh %s: %d indices do not form triangles", b.name, len(b.indices))
	}
	for _, idx := range b.indices {
		if int(idx) >= n {
			return nil, eris.Wrapf(ErrInvalidMesh, "mesh %s: index %d out of range for %d vertices", b.name, idx, n)
		}
	}
	if len(b.uv) != 0 && len(b.uv) != 2*n {
		return nil, eris.Wrapf(ErrInvalidMesh, "mesh %s: %d uv floats for %d vertices", b.name, len(b.uv), n)
	}

	m := &Mesh{
		name:      b.name,
		positions: make([]mgl32.Vec3, n),
		indices:   append([]uint16(nil), b.indices...),
	}
	for i := range m.positions {
		m.positions[i] = mgl32.Vec3{b.vertices[3*i], b.vertices[3*i+1], b.vertices[3*i+2]}
	}
	if len(b.uv) != 0 {
		m.uv = make([]mgl32.Vec2, n)
		for i := range m.uv {
			m.uv[i] = mgl32.Vec2{b.uv[2*i], b.uv[2*i+1]}
		}
	}
	m.init(func() {
		m.positions, m.uv, m.indices = nil, nil, nil
	})
	return m, nil
}

// Mesh is indexed triangle geometry with optional texture coordinates.
type Mesh struct {
	refCount
	name      string
	positions []mgl32.Vec3
	uv        []mgl32.Vec2
	indices   []uint16
}

func (m *Mesh) Name() string            { return m.name }
func (m *Mesh) Positions() []mgl32.Vec3 { return m.positions }
func (m *Mesh) Indices() []uint16       { return m.indices }
func (m *Mesh) VertexCount() int        { return len(m.positions) }
func (m *Mesh) IndexCount() int         { return len(m.indices) }
func (m *Mesh) HasUV() bool             { return m.uv != nil }

// UV returns the texture coordinate of vertex i, or zero if the mesh has none.
func (m *Mesh) UV(i int) mgl32.Vec2 {
	if m.uv == nil {
		return mgl32.Vec2{}
	}
	return m.uv[i]
}
