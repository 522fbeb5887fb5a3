// Package assets keeps the meshes, shaders and textures shared between
// components and loads them from JSON manifests.
package assets

import (
	"sort"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"ebiten-wrap/gfx"
)

var (
	ErrNotFound  = eris.New("asset not found")
	ErrDuplicate = eris.New("duplicate asset name")
)

// Library owns one reference to every asset added to it. Components that keep
// an asset retain their own reference.
type Library struct {
	meshes   map[string]*gfx.Mesh
	shaders  map[string]*gfx.Shader
	textures map[string]*gfx.Texture
	logger   zerolog.Logger
}

// NewLibrary creates an empty library.
func NewLibrary(logger zerolog.Logger) *Library {
	return &Library{
		meshes:   make(map[string]*gfx.Mesh),
		shaders:  make(map[string]*gfx.Shader),
		textures: make(map[string]*gfx.Texture),
		logger:   logger.With().Str("component", "assets").Logger(),
	}
}

func (l *Library) AddMesh(m *gfx.Mesh) error {
	if _, ok := l.meshes[m.Name()]; ok {
		return eris.Wrapf(ErrDuplicate, "mesh %q", m.Name())
	}
	l.meshes[m.Name()] = m
	l.logger.Debug().Str("mesh", m.Name()).Int("vertices", m.VertexCount()).Msg("mesh added")
	return nil
}

func (l *Library) AddShader(name string, s *gfx.Shader) error {
	if _, ok := l.shaders[name]; ok {
		return eris.Wrapf(ErrDuplicate, "shader %q", name)
	}
	l.shaders[name] = s
	l.logger.Debug().Str("shader", name).Stringer("projection", s.Projection()).Msg("shader added")
	return nil
}

func (l *Library) AddTexture(name string, t *gfx.Texture) error {
	if _, ok := l.textures[name]; ok {
		return eris.Wrapf(ErrDuplicate, "texture %q", name)
	}
	l.textures[name] = t
	l.logger.Debug().Str("texture", name).Int("width", t.Width()).Int("height", t.Height()).Msg("texture added")
	return nil
}

func (l *Library) Mesh(name string) (*gfx.Mesh, error) {
	m, ok := l.meshes[name]
	if !ok {
		return nil, eris.Wrapf(ErrNotFound, "mesh %q", name)
	}
	return m, nil
}

func (l *Library) Shader(name string) (*gfx.Shader, error) {
	s, ok := l.shaders[name]
	if !ok {
		return nil, eris.Wrapf(ErrNotFound, "shader %q", name)
	}
	return s, nil
}

func (l *Library) Texture(name string) (*gfx.Texture, error) {
	t, ok := l.textures[name]
	if !ok {
		return nil, eris.Wrapf(ErrNotFound, "texture %q", name)
	}
	return t, nil
}

// Counts returns how many meshes, shaders and textures are loaded.
func (l *Library) Counts() (meshes, shaders, textures int) {
	return len(l.meshes), len(l.shaders), len(l.textures)
}

// TextureNames returns the texture names in sorted order.
func (l *Library) TextureNames() []string {
	names := make([]string, 0, len(l.textures))
	for name := range l.textures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UpdateAspectRatio forwards a resize to every shader.
func (l *Library) UpdateAspectRatio(width, height int) {
	for _, s := range l.shaders {
		s.UpdateAspectRatio(width, height)
	}
}

// Close releases the library's reference to every asset and empties it.
func (l *Library) Close() {
	for name, m := range l.meshes {
		m.Release()
		delete(l.meshes, name)
	}
	for name, s := range l.shaders {
		s.Release()
		delete(l.shaders, name)
	}
	for name, t := range l.textures {
		t.Release()
		delete(l.textures, name)
	}
}
