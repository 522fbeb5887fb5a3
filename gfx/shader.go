package gfx

import (
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rotisserie/eris"
)

// Projection selects how a Shader maps view space to clip space.
type Projection int

const (
	ProjectionNone Projection = iota
	ProjectionPerspective
	ProjectionOrthographic
)

func (p Projection) String() string {
	switch p {
	case ProjectionPerspective:
		return "perspective"
	case ProjectionOrthographic:
		return "orthographic"
	default:
		return "none"
	}
}

const (
	fieldOfView = 45
	nearPlane   = 0.1
	farPlane    = 100
)

// DefaultView moves the camera back from the origin so unit meshes are visible.
var DefaultView = mgl32.Translate3D(0, 0, -3)

// ProjectionMatrix builds the projection for a target of the given size.
func ProjectionMatrix(p Projection, width, height float32) mgl32.Mat4 {
	switch p {
	case ProjectionPerspective:
		if height == 0 {
			height = 1
		}
		return mgl32.Perspective(mgl32.DegToRad(fieldOfView), width/height, nearPlane, farPlane)
	case ProjectionOrthographic:
		return mgl32.Ortho(0, width, height, 0, nearPlane, farPlane)
	default:
		return mgl32.Ident4()
	}
}

// ShaderBuilder collects the inputs for a Shader. Only a fragment stage is
// supplied; vertices are transformed by the Renderer.
type ShaderBuilder struct {
	name       string
	fragment   []byte
	readErr    error
	projection Projection
	width      float32
	height     float32
}

// NewShaderBuilder returns an empty builder.
func NewShaderBuilder() *ShaderBuilder {
	return &ShaderBuilder{}
}

func (b *ShaderBuilder) Name(name string) *ShaderBuilder {
	b.name = name
	return b
}

// Fragment reads the fragment program from path. A read failure is
// reported by Build.
func (b *ShaderBuilder) Fragment(path string) *ShaderBuilder {
	src, err := os.ReadFile(path)
	if err != nil {
		b.readErr = eris.Wrapf(err, "read fragment shader %s", path)
		return b
	}
	if b.name == "" {
		b.name = path
	}
	return b.FragmentSource(src)
}

// FragmentSource sets the fragment program directly.
func (b *ShaderBuilder) FragmentSource(src []byte) *ShaderBuilder {
	b.fragment = src
	b.readErr = nil
	return b
}

// Perspective selects a 45 degree perspective projection.
func (b *ShaderBuilder) Perspective(width, height int) *ShaderBuilder {
	b.projection = ProjectionPerspective
	b.width, b.height = float32(width), float32(height)
	return b
}

// Orthographic selects a pixel-space orthographic projection.
func (b *ShaderBuilder) Orthographic(width, height int) *ShaderBuilder {
	b.projection = ProjectionOrthographic
	b.width, b.height = float32(width), float32(height)
	return b
}

// Build compiles the fragment program on dev. It returns an error wrapping
// ErrMissingField when no fragment source was supplied, the read error when
// the fragment file could not be read, and ErrCompile when the device
// rejects it.
func (b *ShaderBuilder) Build(dev Device) (*Shader, error) {
	if b.readErr != nil {
		return nil, b.readErr
	}
	if len(b.fragment) == 0 {
		return nil, eris.Wrap(ErrMissingField, "shader: fragment source not supplied")
	}
	native, err := dev.CompileShader(b.fragment)
	if err != nil {
		return nil, eris.Wrapf(ErrCompile, "shader %s: %v", b.name, err)
	}
	s := &Shader{
		name:       b.name,
		native:     native,
		projection: b.projection,
		proj:       ProjectionMatrix(b.projection, b.width, b.height),
		view:       DefaultView,
	}
	s.init(native.Dispose)
	return s, nil
}

// Shader is a compiled fragment program plus the projection and view used
// for meshes drawn with it.
type Shader struct {
	refCount
	name       string
	native     NativeShader
	projection Projection
	proj       mgl32.Mat4
	view       mgl32.Mat4
}

func (s *Shader) Name() string {
	return s.name
}

func (s *Shader) Native() NativeShader {
	return s.native
}

func (s *Shader) Projection() Projection {
	return s.projection
}

func (s *Shader) ProjectionMatrix() mgl32.Mat4 {
	return s.proj
}

func (s *Shader) View() mgl32.Mat4 {
	return s.view
}

func (s *Shader) SetView(view mgl32.Mat4) {
	s.view = view
}

// UpdateAspectRatio rebuilds the projection for a new target size. It does
// nothing for shaders without a projection.
func (s *Shader) UpdateAspectRatio(width, height int) {
	if s.projection == ProjectionNone {
		return
	}
	s.proj = ProjectionMatrix(s.projection, float32(width), float32(height))
}
