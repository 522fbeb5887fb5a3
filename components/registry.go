package components

import (
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mitchellh/mapstructure"
	"github.com/rotisserie/eris"

	"ebiten-wrap/assets"
	"ebiten-wrap/ecs"
	"ebiten-wrap/gfx"
)

var (
	ErrUnknownComponent = eris.New("unknown component")
	ErrInvalidParams    = eris.New("invalid component params")
)

// Factory attaches a component configured from params to e.
type Factory func(w *ecs.World, e ecs.Entity, params map[string]any) error

// Registry maps component and script names to factories so data files can
// attach components by name. Lookups are case-insensitive.
type Registry struct {
	components map[string]Factory
	scripts    map[string]Factory
}

// NewRegistry returns a registry with the builtin "mesh" component.
func NewRegistry() *Registry {
	r := &Registry{
		components: make(map[string]Factory),
		scripts:    make(map[string]Factory),
	}
	r.Register("mesh", AddMeshFromParams)
	return r
}

// Register adds or replaces a component factory.
func (r *Registry) Register(name string, f Factory) {
	r.components[strings.ToLower(name)] = f
}

// RegisterScriptFactory adds or replaces a named script factory.
func (r *Registry) RegisterScriptFactory(name string, f Factory) {
	r.scripts[strings.ToLower(name)] = f
}

// RegisterScript makes script type S available under name. Params given
// when the script is attached are decoded into the script after OnCreate.
// Params are checked against a scratch S first, so a script with bad params
// is never attached.
func RegisterScript[S any, P ScriptPtr[S]](r *Registry, name string) {
	r.RegisterScriptFactory(name, func(w *ecs.World, e ecs.Entity, params map[string]any) error {
		var scratch S
		if err := DecodeParams(params, &scratch); err != nil {
			return err
		}
		var decodeErr error
		_, err := addScript[S, P](w, e, func(s *S) {
			decodeErr = DecodeParams(params, s)
		})
		if err != nil {
			return err
		}
		return decodeErr
	})
}

// Lookup returns the component factory registered under name.
func (r *Registry) Lookup(name string) (Factory, bool) {
	f, ok := r.components[strings.ToLower(name)]
	return f, ok
}

// LookupScript returns the script factory registered under name.
func (r *Registry) LookupScript(name string) (Factory, bool) {
	f, ok := r.scripts[strings.ToLower(name)]
	return f, ok
}

// Names returns the registered component names, sorted.
func (r *Registry) Names() []string {
	return sortedKeys(r.components)
}

// ScriptNames returns the registered script names, sorted.
func (r *Registry) ScriptNames() []string {
	return sortedKeys(r.scripts)
}

// Attach adds the component called kind to e. The kind "script" selects a
// script by the "name" param; the remaining params configure the script.
func (r *Registry) Attach(w *ecs.World, e ecs.Entity, kind string, params map[string]any) error {
	if strings.EqualFold(kind, "script") {
		name, _ := params["name"].(string)
		if name == "" {
			return eris.Wrap(ErrInvalidParams, "script component needs a name")
		}
		f, ok := r.LookupScript(name)
		if !ok {
			return eris.Wrapf(ErrUnknownComponent, "script %q", name)
		}
		rest := make(map[string]any, len(params))
		for k, v := range params {
			if k != "name" {
				rest[k] = v
			}
		}
		return f(w, e, rest)
	}

	f, ok := r.Lookup(kind)
	if !ok {
		return eris.Wrapf(ErrUnknownComponent, "component %q", kind)
	}
	return f(w, e, params)
}

// DecodeParams decodes loosely typed params into out. Unknown keys are an error.
func DecodeParams(params map[string]any, out any) error {
	if len(params) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return eris.Wrap(err, "create params decoder")
	}
	if err := dec.Decode(params); err != nil {
		// eris matches wrap messages, so the result is ErrInvalidParams with
		// the decoder error as its cause.
		return eris.Wrap(err, ErrInvalidParams.Error())
	}
	return nil
}

// MeshPart names the assets for one position of a MeshComponent.
type MeshPart struct {
	Mesh    string `mapstructure:"mesh"`
	Shader  string `mapstructure:"shader"`
	Texture string `mapstructure:"texture"`
}

// MeshParams configures a MeshComponent from data. A top-level mesh and
// shader form the first part.
type MeshParams struct {
	MeshPart  `mapstructure:",squash"`
	Parts     []MeshPart `mapstructure:"parts"`
	Translate []float32  `mapstructure:"translate"`
	Scale     []float32  `mapstructure:"scale"`
	Rotation  struct {
		Axis    []float32 `mapstructure:"axis"`
		Degrees float32   `mapstructure:"degrees"`
	} `mapstructure:"rotation"`
	Hidden bool `mapstructure:"hidden"`
}

type resolvedPart struct {
	mesh    *gfx.Mesh
	shader  *gfx.Shader
	texture *gfx.Texture
}

// AddMeshFromParams is the factory for the "mesh" component. Asset names are
// resolved against the world's assets.Library resource.
func AddMeshFromParams(w *ecs.World, e ecs.Entity, params map[string]any) error {
	var p MeshParams
	if err := DecodeParams(params, &p); err != nil {
		return err
	}
	lib, ok := ecs.GetResource[assets.Library](w)
	if !ok {
		return eris.New("mesh component: no asset library in world")
	}

	parts := p.Parts
	if p.Mesh != "" || p.Shader != "" {
		parts = append([]MeshPart{p.MeshPart}, parts...)
	}
	if len(parts) == 0 {
		return eris.Wrap(ErrInvalidParams, "mesh component needs a mesh and shader")
	}

	resolved := make([]resolvedPart, 0, len(parts))
	for _, part := range parts {
		var rp resolvedPart
		var err error
		if rp.mesh, err = lib.Mesh(part.Mesh); err != nil {
			return err
		}
		if rp.shader, err = lib.Shader(part.Shader); err != nil {
			return err
		}
		if part.Texture != "" {
			if rp.texture, err = lib.Texture(part.Texture); err != nil {
				return err
			}
		}
		resolved = append(resolved, rp)
	}

	translate, err := vec3(p.Translate, mgl32.Vec3{})
	if err != nil {
		return eris.Wrap(err, "translate")
	}
	scale, err := vec3(p.Scale, mgl32.Vec3{1, 1, 1})
	if err != nil {
		return eris.Wrap(err, "scale")
	}
	axis, err := vec3(p.Rotation.Axis, mgl32.Vec3{0, 0, 1})
	if err != nil {
		return eris.Wrap(err, "rotation axis")
	}

	_, err = ecs.AddComponent[MeshComponent](w, e, func(m *MeshComponent) {
		for _, rp := range resolved {
			m.Add(rp.mesh, rp.shader, rp.texture)
		}
		m.SetTranslate(translate.X(), translate.Y(), translate.Z())
		m.SetScale(scale.X(), scale.Y(), scale.Z())
		if p.Rotation.Degrees != 0 {
			m.SetRotation(axis, mgl32.DegToRad(p.Rotation.Degrees))
		}
		m.Hidden = p.Hidden
	})
	return err
}

func vec3(v []float32, def mgl32.Vec3) (mgl32.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return mgl32.Vec3{v[0], v[1], v[2]}, nil
	}
	return def, eris.Wrapf(ErrInvalidParams, "want 3 components, got %d", len(v))
}

func sortedKeys(m map[string]Factory) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
