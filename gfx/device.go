package gfx

import (
	"image"
	"image/color"

	"github.com/rotisserie/eris"
)

// Vertex is a vertex already projected into target pixel space. U and V are
// normalized texture coordinates.
type Vertex struct {
	X, Y       float32
	U, V       float32
	R, G, B, A float32
}

// NativeTexture is a texture owned by a Device.
type NativeTexture interface {
	Size() (width, height int)
	Dispose()
}

// NativeShader is a compiled shader program owned by a Device.
type NativeShader interface {
	Dispose()
}

// Device creates native graphics resources.
type Device interface {
	NewTexture(img image.Image) (NativeTexture, error)
	CompileShader(src []byte) (NativeShader, error)
}

// DrawOptions selects the texture and shader for a DrawTriangles call. A nil
// Texture draws untextured, a nil Shader uses the backend's fixed pipeline.
type DrawOptions struct {
	Texture NativeTexture
	Shader  NativeShader
	Filter  Filter
}

// Target is something triangles can be drawn onto, usually the screen.
type Target interface {
	Size() (width, height int)
	Fill(c color.Color)
	DrawTriangles(vertices []Vertex, indices []uint16, opts DrawOptions)
}

// NullDevice is a Device without a GPU. It is used by headless runs and
// tests. CompileFunc, when set, validates shader source.
type NullDevice struct {
	CompileFunc func(src []byte) error

	// Textures and Shaders count live native resources.
	Textures int
	Shaders  int
}

func (d *NullDevice) NewTexture(img image.Image) (NativeTexture, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, eris.Wrapf(ErrInvalidTexture, "empty image %v", b)
	}
	d.Textures++
	return &nullTexture{dev: d, w: b.Dx(), h: b.Dy()}, nil
}

func (d *NullDevice) CompileShader(src []byte) (NativeShader, error) {
	if d.CompileFunc != nil {
		if err := d.CompileFunc(src); err != nil {
			return nil, err
		}
	}
	d.Shaders++
	return &nullShader{dev: d}, nil
}

type nullTexture struct {
	dev      *NullDevice
	w, h     int
	disposed bool
}

func (t *nullTexture) Size() (int, int) { return t.w, t.h }

func (t *nullTexture) Dispose() {
	if t.disposed {
		return
	}
	t.disposed = true
	t.dev.Textures--
}

type nullShader struct {
	dev      *NullDevice
	disposed bool
}

func (s *nullShader) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.dev.Shaders--
}

// DrawCall is one DrawTriangles call recorded by a NullTarget.
type DrawCall struct {
	Vertices []Vertex
	Indices  []uint16
	Options  DrawOptions
}

// NullTarget is an in-memory Target that records what was drawn on it.
type NullTarget struct {
	Width, Height int
	Background    color.Color
	Calls         []DrawCall
}

// NewNullTarget returns a recording target of the given size.
func NewNullTarget(width, height int) *NullTarget {
	return &NullTarget{Width: width, Height: height}
}

func (t *NullTarget) Size() (int, int) { return t.Width, t.Height }

func (t *NullTarget) Fill(c color.Color) {
	t.Background = c
	t.Calls = t.Calls[:0]
}

func (t *NullTarget) DrawTriangles(vertices []Vertex, indices []uint16, opts DrawOptions) {
	t.Calls = append(t.Calls, DrawCall{
		Vertices: append([]Vertex(nil), vertices...),
		Indices:  append([]uint16(nil), indices...),
		Options:  opts,
	})
}

// Triangles returns the total number of triangles drawn.
func (t *NullTarget) Triangles() int {
	n := 0
	for _, c := range t.Calls {
		n += len(c.Indices) / 3
	}
	return n
}
