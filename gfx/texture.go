package gfx

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Filter is the sampling mode used when a texture is scaled.
type Filter int

const (
	FilterLinear Filter = iota
	FilterNearest
	FilterLinearMipmapNearest
	FilterNearestMipmapNearest
	FilterLinearMipmapLinear
	FilterNearestMipmapLinear
)

// DefaultFilter is applied to newly loaded textures.
const DefaultFilter = FilterLinearMipmapNearest

var filterNames = map[Filter]string{
	FilterLinear:               "linear",
	FilterNearest:              "nearest",
	FilterLinearMipmapNearest:  "linear_mipmap_nearest",
	FilterNearestMipmapNearest: "nearest_mipmap_nearest",
	FilterLinearMipmapLinear:   "linear_mipmap_linear",
	FilterNearestMipmapLinear:  "nearest_mipmap_linear",
}

func (f Filter) String() string {
	if s, ok := filterNames[f]; ok {
		return s
	}
	return "unknown"
}

// Nearest reports whether the filter samples the nearest texel within a level.
func (f Filter) Nearest() bool {
	switch f {
	case FilterNearest, FilterNearestMipmapNearest, FilterNearestMipmapLinear:
		return true
	}
	return false
}

// ParseFilter converts a filter name such as "nearest" or
// "linear-mipmap-linear" into a Filter. The empty string yields DefaultFilter.
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return DefaultFilter, nil
	}
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for f, name := range filterNames {
		if name == norm {
			return f, nil
		}
	}
	return DefaultFilter, eris.Errorf("unknown texture filter %q", s)
}

// Texture is an image uploaded to a Device. Textures wrap with repeat
// addressing. Texture is reference counted; the native texture is disposed
// when the last reference is released.
type Texture struct {
	refCount
	name   string
	native NativeTexture
	width  int
	height int
	filter Filter
}

// LoadImage decodes a PNG or JPEG file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open image %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, eris.Wrapf(err, "decode image %s", path)
	}
	return img, nil
}

// NewTexture loads the image at path and uploads it with the default filter.
func NewTexture(dev Device, path string) (*Texture, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return NewTextureFromImage(dev, filepath.Base(path), img)
}

// NewTextureFromImage uploads img with the default filter.
func NewTextureFromImage(dev Device, name string, img image.Image) (*Texture, error) {
	if img == nil {
		return nil, eris.Wrapf(ErrInvalidTexture, "texture %s: nil image", name)
	}
	native, err := dev.NewTexture(img)
	if err != nil {
		return nil, eris.Wrapf(err, "texture %s", name)
	}
	w, h := native.Size()
	t := &Texture{
		name:   name,
		native: native,
		width:  w,
		height: h,
		filter: DefaultFilter,
	}
	t.init(native.Dispose)
	return t, nil
}

func (t *Texture) Name() string          { return t.name }
func (t *Texture) Width() int            { return t.width }
func (t *Texture) Height() int           { return t.height }
func (t *Texture) Native() NativeTexture { return t.native }
func (t *Texture) Filter() Filter        { return t.filter }

// SetFilter changes how the texture is sampled.
func (t *Texture) SetFilter(f Filter) { t.filter = f }

func (t *Texture) Linear()               { t.filter = FilterLinear }
func (t *Texture) Nearest()              { t.filter = FilterNearest }
func (t *Texture) LinearMipmapNearest()  { t.filter = FilterLinearMipmapNearest }
func (t *Texture) NearestMipmapNearest() { t.filter = FilterNearestMipmapNearest }
func (t *Texture) LinearMipmapLinear()   { t.filter = FilterLinearMipmapLinear }
func (t *Texture) NearestMipmapLinear()  { t.filter = FilterNearestMipmapLinear }
