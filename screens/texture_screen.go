package screens

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"ebiten-wrap/gfx"
	"ebiten-wrap/gfx/ebitendev"
)

// TextureScreen shows a single texture with its size and filter. Arrow keys
// zoom, F cycles the filter.
type TextureScreen struct {
	texture *gfx.Texture
	image   *ebiten.Image
	path    string
	zoom    float64

	screenWidth  int
	screenHeight int
}

// NewTextureScreen loads the image at path onto dev.
func NewTextureScreen(dev *ebitendev.Device, path string, width, height int) (*TextureScreen, error) {
	tex, err := gfx.NewTexture(dev, path)
	if err != nil {
		return nil, err
	}
	return &TextureScreen{
		texture:      tex,
		image:        tex.Native().(*ebitendev.Texture).Image,
		path:         path,
		zoom:         1,
		screenWidth:  width,
		screenHeight: height,
	}, nil
}

// Update handles input for zooming and filtering.
func (t *TextureScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ErrCloseScreen
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) && t.zoom < 16 {
		t.zoom *= 1.05
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) && t.zoom > 0.1 {
		t.zoom /= 1.05
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		t.texture.SetFilter((t.texture.Filter() + 1) % (gfx.FilterNearestMipmapLinear + 1))
	}
	return nil
}

// Draw displays the texture centered on screen.
func (t *TextureScreen) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{30, 30, 30, 255})

	w, h := t.texture.Width(), t.texture.Height()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	op.GeoM.Scale(t.zoom, t.zoom)
	op.GeoM.Translate(float64(t.screenWidth)/2, float64(t.screenHeight)/2)
	if t.texture.Filter().Nearest() {
		op.Filter = ebiten.FilterNearest
	} else {
		op.Filter = ebiten.FilterLinear
	}
	screen.DrawImage(t.image, op)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Texture: %s", t.path), 10, 10)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Size: %dx%d  Zoom: %.2f  Filter: %s", w, h, t.zoom, t.texture.Filter()), 10, 30)
	ebitenutil.DebugPrintAt(screen, "ESC: Quit | Up/Down: Zoom | F: Cycle filter", 10, t.screenHeight-20)
}

// Layout implements ebiten.Game's Layout.
func (t *TextureScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	t.screenWidth, t.screenHeight = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Close releases the texture.
func (t *TextureScreen) Close() {
	t.texture.Release()
}
