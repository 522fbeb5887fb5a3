package components

import (
	"github.com/go-gl/mathgl/mgl32"

	"ebiten-wrap/ecs"
	"ebiten-wrap/gfx"
)

// MeshComponent draws one or more meshes for its entity. Each position i
// pairs a mesh with a shader, an optional texture and a transform.
type MeshComponent struct {
	world  *ecs.World
	entity ecs.Entity

	meshes     []*gfx.Mesh
	shaders    []*gfx.Shader
	textures   []*gfx.Texture // nil where a position has no texture
	transforms []gfx.Transform

	// Hidden skips submission while set.
	Hidden bool
}

func (m *MeshComponent) ComponentName() string { return "mesh" }

func (m *MeshComponent) Create(w *ecs.World, e ecs.Entity) {
	m.world = w
	m.entity = e
}

// Add appends a mesh drawn with shader and texture (which may be nil) and
// returns its position. The component retains each resource.
func (m *MeshComponent) Add(mesh *gfx.Mesh, shader *gfx.Shader, texture *gfx.Texture) int {
	mesh.Retain()
	shader.Retain()
	if texture != nil {
		texture.Retain()
	}
	m.meshes = append(m.meshes, mesh)
	m.shaders = append(m.shaders, shader)
	m.textures = append(m.textures, texture)
	m.transforms = append(m.transforms, gfx.NewTransform())
	return len(m.meshes) - 1
}

// Len returns the number of positions.
func (m *MeshComponent) Len() int {
	return len(m.meshes)
}

// SetShader replaces the shader of every position.
func (m *MeshComponent) SetShader(shader *gfx.Shader) {
	for i, old := range m.shaders {
		shader.Retain()
		old.Release()
		m.shaders[i] = shader
	}
}

// SetTranslate sets the translation of every position.
func (m *MeshComponent) SetTranslate(x, y, z float32) {
	for i := range m.transforms {
		m.transforms[i].Translation = mgl32.Vec3{x, y, z}
	}
}

// SetScale sets the scale of every position.
func (m *MeshComponent) SetScale(x, y, z float32) {
	for i := range m.transforms {
		m.transforms[i].Scale = mgl32.Vec3{x, y, z}
	}
}

// SetRotation rotates every position angle radians around axis.
func (m *MeshComponent) SetRotation(axis mgl32.Vec3, angle float32) {
	for i := range m.transforms {
		m.transforms[i].SetRotation(axis, angle)
	}
}

// Transform returns the transform of position i for direct editing.
func (m *MeshComponent) Transform(i int) *gfx.Transform {
	return &m.transforms[i]
}

// Mesh returns the mesh, shader and texture at position i.
func (m *MeshComponent) Mesh(i int) (*gfx.Mesh, *gfx.Shader, *gfx.Texture) {
	return m.meshes[i], m.shaders[i], m.textures[i]
}

// Textures returns the textures that have been supplied, in position order.
func (m *MeshComponent) Textures() []*gfx.Texture {
	out := make([]*gfx.Texture, 0, len(m.textures))
	for _, t := range m.textures {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

// Update submits one draw command per position to the world's renderer.
func (m *MeshComponent) Update() {
	if m.Hidden {
		return
	}
	r, ok := ecs.GetResource[gfx.Renderer](m.world)
	if !ok {
		return
	}
	for i, mesh := range m.meshes {
		r.Submit(gfx.DrawCommand{
			Mesh:    mesh,
			Shader:  m.shaders[i],
			Texture: m.textures[i],
			Model:   m.transforms[i].Matrix(),
		})
	}
}

// Destroy releases the component's references.
func (m *MeshComponent) Destroy() {
	for i := range m.meshes {
		m.meshes[i].Release()
		m.shaders[i].Release()
		if m.textures[i] != nil {
			m.textures[i].Release()
		}
	}
	m.meshes, m.shaders, m.textures, m.transforms = nil, nil, nil, nil
}
