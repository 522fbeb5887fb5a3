package assets

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/panjf2000/ants/v2"
	"github.com/rotisserie/eris"

	"ebiten-wrap/gfx"
)

// ErrInvalidManifest is returned for manifest entries missing required fields.
var ErrInvalidManifest = eris.New("invalid asset manifest")

// Manifest lists the assets to load into a Library.
type Manifest struct {
	Textures []TextureEntry `json:"textures"`
	Shaders  []ShaderEntry  `json:"shaders"`
	Meshes   []MeshEntry    `json:"meshes"`
}

// TextureEntry describes a texture loaded from an image file or filled with
// a solid color.
type TextureEntry struct {
	Name   string `json:"name"`
	Path   string `json:"path"`   // Image file, relative to the manifest
	Color  string `json:"color"`  // Solid color in hex format (e.g. "#00FF00")
	Width  int    `json:"width"`  // Size of a solid color texture
	Height int    `json:"height"` // Size of a solid color texture
	Filter string `json:"filter"` // e.g. "nearest", "linear_mipmap_linear"
}

// ShaderEntry describes a Kage fragment shader.
type ShaderEntry struct {
	Name       string `json:"name"`
	Fragment   string `json:"fragment"`   // Kage file, relative to the manifest
	Projection string `json:"projection"` // "perspective", "orthographic" or empty
}

// MeshEntry describes mesh geometry, either inline or a builtin shape.
type MeshEntry struct {
	Name     string    `json:"name"`
	Builtin  string    `json:"builtin"` // "quad"
	Vertices []float32 `json:"vertices"`
	Indices  []uint16  `json:"indices"`
	UV       []float32 `json:"uv"`
}

// LoadManifestFile reads and validates a single manifest. Relative paths in
// the manifest are resolved against the manifest's directory.
func LoadManifestFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read manifest %s", path)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, eris.Wrapf(err, "parse manifest %s", path)
	}
	if err := m.Validate(); err != nil {
		return nil, eris.Wrapf(err, "manifest %s", path)
	}
	m.resolve(filepath.Dir(path))
	return &m, nil
}

// LoadManifestsFromDirectory merges every .json manifest in dir, in file
// name order.
func LoadManifestsFromDirectory(dir string) (*Manifest, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "read manifest directory %s", dir)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	merged := &Manifest{}
	for _, name := range names {
		m, err := LoadManifestFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		merged.Merge(m)
	}
	return merged, nil
}

// Merge appends the entries of other.
func (m *Manifest) Merge(other *Manifest) {
	m.Textures = append(m.Textures, other.Textures...)
	m.Shaders = append(m.Shaders, other.Shaders...)
	m.Meshes = append(m.Meshes, other.Meshes...)
}

func (m *Manifest) resolve(dir string) {
	for i := range m.Textures {
		if p := m.Textures[i].Path; p != "" && !filepath.IsAbs(p) {
			m.Textures[i].Path = filepath.Join(dir, p)
		}
	}
	for i := range m.Shaders {
		if p := m.Shaders[i].Fragment; p != "" && !filepath.IsAbs(p) {
			m.Shaders[i].Fragment = filepath.Join(dir, p)
		}
	}
}

// Validate checks that every entry has the fields it needs and that names
// are unique per kind.
func (m *Manifest) Validate() error {
	seen := make(map[string]bool)
	unique := func(kind, name string) error {
		key := kind + "/" + name
		if seen[key] {
			return eris.Wrapf(ErrInvalidManifest, "%s %q listed twice", kind, name)
		}
		seen[key] = true
		return nil
	}

	for i := range m.Textures {
		if err := ValidateTextureEntry(&m.Textures[i]); err != nil {
			return err
		}
		if err := unique("texture", m.Textures[i].Name); err != nil {
			return err
		}
	}
	for i := range m.Shaders {
		if err := ValidateShaderEntry(&m.Shaders[i]); err != nil {
			return err
		}
		if err := unique("shader", m.Shaders[i].Name); err != nil {
			return err
		}
	}
	for i := range m.Meshes {
		if err := ValidateMeshEntry(&m.Meshes[i]); err != nil {
			return err
		}
		if err := unique("mesh", m.Meshes[i].Name); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTextureEntry ensures a texture entry has a name and exactly one source.
func ValidateTextureEntry(e *TextureEntry) error {
	if e.Name == "" {
		return eris.Wrap(ErrInvalidManifest, "texture missing name")
	}
	if (e.Path == "") == (e.Color == "") {
		return eris.Wrapf(ErrInvalidManifest, "texture %q needs exactly one of path or color", e.Name)
	}
	if e.Color != "" {
		if _, err := ParseHexColor(e.Color); err != nil {
			return eris.Wrapf(ErrInvalidManifest, "texture %q: %v", e.Name, err)
		}
	}
	if e.Width < 0 || e.Height < 0 {
		return eris.Wrapf(ErrInvalidManifest, "texture %q has negative size", e.Name)
	}
	if _, err := gfx.ParseFilter(e.Filter); err != nil {
		return eris.Wrapf(ErrInvalidManifest, "texture %q: %v", e.Name, err)
	}
	return nil
}

// ValidateShaderEntry ensures a shader entry has a name, a fragment file and
// a known projection.
func ValidateShaderEntry(e *ShaderEntry) error {
	if e.Name == "" {
		return eris.Wrap(ErrInvalidManifest, "shader missing name")
	}
	if e.Fragment == "" {
		return eris.Wrapf(ErrInvalidManifest, "shader %q missing fragment", e.Name)
	}
	if _, err := parseProjection(e.Projection); err != nil {
		return eris.Wrapf(ErrInvalidManifest, "shader %q: %v", e.Name, err)
	}
	return nil
}

// ValidateMeshEntry ensures a mesh entry has a name and either a builtin
// shape or inline geometry. Geometry itself is checked by gfx.MeshBuilder.
func ValidateMeshEntry(e *MeshEntry) error {
	if e.Name == "" {
		return eris.Wrap(ErrInvalidManifest, "mesh missing name")
	}
	switch strings.ToLower(e.Builtin) {
	case "":
		if len(e.Vertices) == 0 || len(e.Indices) == 0 {
			return eris.Wrapf(ErrInvalidManifest, "mesh %q needs builtin or vertices and indices", e.Name)
		}
	case "quad":
	default:
		return eris.Wrapf(ErrInvalidManifest, "mesh %q: unknown builtin %q", e.Name, e.Builtin)
	}
	return nil
}

func parseProjection(s string) (gfx.Projection, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return gfx.ProjectionNone, nil
	case "perspective":
		return gfx.ProjectionPerspective, nil
	case "orthographic", "ortho":
		return gfx.ProjectionOrthographic, nil
	}
	return gfx.ProjectionNone, eris.Errorf("unknown projection %q", s)
}

// ParseHexColor converts a "#rrggbb" or "#rrggbbaa" string to a color.RGBA.
func ParseHexColor(hex string) (color.RGBA, error) {
	c := color.RGBA{A: 0xff}
	var err error
	switch len(hex) {
	case 7:
		_, err = fmt.Sscanf(hex, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 9:
		_, err = fmt.Sscanf(hex, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		err = eris.Errorf("bad length %d", len(hex))
	}
	if err != nil {
		return color.RGBA{}, eris.Wrapf(err, "invalid hex color %q", hex)
	}
	return c, nil
}

// LoadOptions control Load.
type LoadOptions struct {
	// Workers bounds how many images are decoded at once.
	Workers int
	// Width and Height size shader projections until the first resize.
	Width, Height int
}

// Load creates every asset in m on dev and adds it to lib. Image files are
// decoded in parallel; native resources are created on the calling goroutine.
func Load(dev gfx.Device, lib *Library, m *Manifest, opts LoadOptions) error {
	images, err := decodeImages(m.Textures, opts.Workers)
	if err != nil {
		return err
	}

	for i, e := range m.Textures {
		img := images[i]
		if img == nil {
			img = solidImage(e)
		}
		tex, err := gfx.NewTextureFromImage(dev, e.Name, img)
		if err != nil {
			return err
		}
		f, _ := gfx.ParseFilter(e.Filter)
		tex.SetFilter(f)
		if err := lib.AddTexture(e.Name, tex); err != nil {
			tex.Release()
			return err
		}
	}

	for _, e := range m.Shaders {
		b := gfx.NewShaderBuilder().Fragment(e.Fragment).Name(e.Name)
		proj, err := parseProjection(e.Projection)
		if err != nil {
			return eris.Wrapf(ErrInvalidManifest, "shader %q: %v", e.Name, err)
		}
		switch proj {
		case gfx.ProjectionPerspective:
			b.Perspective(opts.Width, opts.Height)
		case gfx.ProjectionOrthographic:
			b.Orthographic(opts.Width, opts.Height)
		}
		s, err := b.Build(dev)
		if err != nil {
			return err
		}
		if err := lib.AddShader(e.Name, s); err != nil {
			s.Release()
			return err
		}
	}

	for _, e := range m.Meshes {
		b := gfx.NewMeshBuilder().Name(e.Name)
		if strings.EqualFold(e.Builtin, "quad") {
			b.Vertices(gfx.QuadVertices).Indices(gfx.QuadIndices).UV(gfx.QuadUV)
		} else {
			b.Vertices(e.Vertices).Indices(e.Indices).UV(e.UV)
		}
		mesh, err := b.Build()
		if err != nil {
			return err
		}
		if err := lib.AddMesh(mesh); err != nil {
			mesh.Release()
			return err
		}
	}
	return nil
}

// decodeImages decodes the file-backed textures on an ants pool. Entries
// without a path are left nil.
func decodeImages(entries []TextureEntry, workers int) ([]image.Image, error) {
	images := make([]image.Image, len(entries))
	errs := make([]error, len(entries))
	if workers <= 0 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, eris.Wrap(err, "create decode pool")
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range entries {
		path := entries[i].Path
		if path == "" {
			continue
		}
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			images[i], errs[i] = gfx.LoadImage(path)
		})
		if err != nil {
			wg.Done()
			errs[i] = eris.Wrapf(err, "submit decode of %s", path)
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, eris.Wrapf(err, "texture %q", entries[i].Name)
		}
	}
	return images, nil
}

func solidImage(e TextureEntry) image.Image {
	w, h := e.Width, e.Height
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	c, _ := ParseHexColor(e.Color)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}
