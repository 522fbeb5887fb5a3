// Package ebitendev implements the gfx device and target interfaces on ebiten.
package ebitendev

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rotisserie/eris"

	"ebiten-wrap/gfx"
)

var (
	whiteImage = ebiten.NewImage(3, 3)

	// whiteSubImage is used as the source of untextured draws.
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Device creates ebiten images and Kage shaders.
type Device struct{}

func New() *Device {
	return &Device{}
}

func (d *Device) NewTexture(img image.Image) (gfx.NativeTexture, error) {
	if img.Bounds().Empty() {
		return nil, eris.Wrapf(gfx.ErrInvalidTexture, "empty image %v", img.Bounds())
	}
	return &Texture{Image: ebiten.NewImageFromImage(img)}, nil
}

func (d *Device) CompileShader(src []byte) (gfx.NativeShader, error) {
	s, err := ebiten.NewShader(src)
	if err != nil {
		return nil, err
	}
	return &Shader{Shader: s}, nil
}

// Texture is an ebiten image used as a gfx texture.
type Texture struct {
	Image *ebiten.Image
}

func (t *Texture) Size() (int, int) {
	b := t.Image.Bounds()
	return b.Dx(), b.Dy()
}

func (t *Texture) Dispose() {
	t.Image.Deallocate()
}

// Shader is a compiled Kage program.
type Shader struct {
	Shader *ebiten.Shader
}

func (s *Shader) Dispose() {
	s.Shader.Deallocate()
}

// Target draws onto an ebiten image, usually the screen passed to Draw.
type Target struct {
	Image *ebiten.Image

	vertices []ebiten.Vertex
}

// NewTarget wraps dst.
func NewTarget(dst *ebiten.Image) *Target {
	return &Target{Image: dst}
}

// Reset points the target at a new destination image.
func (t *Target) Reset(dst *ebiten.Image) {
	t.Image = dst
}

func (t *Target) Size() (int, int) {
	b := t.Image.Bounds()
	return b.Dx(), b.Dy()
}

func (t *Target) Fill(c color.Color) {
	t.Image.Fill(c)
}

func (t *Target) DrawTriangles(vertices []gfx.Vertex, indices []uint16, opts gfx.DrawOptions) {
	src := whiteSubImage
	if tex, ok := opts.Texture.(*Texture); ok && tex != nil {
		src = tex.Image
	}
	b := src.Bounds()
	sw, sh := float32(b.Dx()), float32(b.Dy())
	ox, oy := float32(b.Min.X), float32(b.Min.Y)

	t.vertices = t.vertices[:0]
	for _, v := range vertices {
		t.vertices = append(t.vertices, ebiten.Vertex{
			DstX:   v.X,
			DstY:   v.Y,
			SrcX:   ox + v.U*sw,
			SrcY:   oy + v.V*sh,
			ColorR: v.R,
			ColorG: v.G,
			ColorB: v.B,
			ColorA: v.A,
		})
	}

	if prog, ok := opts.Shader.(*Shader); ok && prog != nil {
		op := &ebiten.DrawTrianglesShaderOptions{}
		op.Images[0] = src
		t.Image.DrawTrianglesShader(t.vertices, indices, prog.Shader, op)
		return
	}

	op := &ebiten.DrawTrianglesOptions{
		Filter: filter(opts.Filter),
	}
	if src != whiteSubImage {
		op.Address = ebiten.AddressRepeat
	}
	t.Image.DrawTriangles(t.vertices, indices, src, op)
}

// filter maps gfx filters onto ebiten's. ebiten picks mipmap levels itself.
func filter(f gfx.Filter) ebiten.Filter {
	if f.Nearest() {
		return ebiten.FilterNearest
	}
	return ebiten.FilterLinear
}
