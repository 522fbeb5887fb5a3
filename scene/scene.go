// Package scene loads YAML scene files and spawns their entities.
package scene

import (
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"

	"ebiten-wrap/components"
	"ebiten-wrap/ecs"
)

// Scene is a list of entities to spawn.
type Scene struct {
	Name     string       `mapstructure:"name"`
	Entities []EntitySpec `mapstructure:"entities"`
}

// EntitySpec describes one entity and its components.
type EntitySpec struct {
	Name       string          `mapstructure:"name"`
	Components []ComponentSpec `mapstructure:"components"`
}

// ComponentSpec names a registered component type. All other keys are passed
// to the component's factory.
type ComponentSpec struct {
	Type   string         `mapstructure:"type"`
	Params map[string]any `mapstructure:",remain"`
}

// Load reads a scene file. The format follows the file extension.
func Load(path string) (*Scene, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, eris.Wrapf(err, "read scene %s", path)
	}

	var s Scene
	if err := v.Unmarshal(&s); err != nil {
		return nil, eris.Wrapf(err, "decode scene %s", path)
	}
	if err := s.Validate(); err != nil {
		return nil, eris.Wrapf(err, "scene %s", path)
	}
	return &s, nil
}

// Validate checks that every component has a type.
func (s *Scene) Validate() error {
	for i, e := range s.Entities {
		for j, c := range e.Components {
			if c.Type == "" {
				return eris.Errorf("entity %d (%q) component %d has no type", i, e.Name, j)
			}
		}
	}
	return nil
}

// Spawn creates the scene's entities in w, attaching components through reg.
// Entities without a name get a random one. On error the entities spawned so
// far are left in the world.
func Spawn(w *ecs.World, reg *components.Registry, s *Scene) ([]ecs.Entity, error) {
	logger := w.Logger().With().Str("scene", s.Name).Logger()
	spawned := make([]ecs.Entity, 0, len(s.Entities))
	for _, spec := range s.Entities {
		name := spec.Name
		if name == "" {
			name = "entity-" + uuid.NewString()
		}
		e := w.NewEntity(name)
		spawned = append(spawned, e)

		for _, c := range spec.Components {
			if err := reg.Attach(w, e, c.Type, c.Params); err != nil {
				return spawned, eris.Wrapf(err, "entity %q component %q", name, c.Type)
			}
		}
		logger.Debug().Str("entity", name).Int("components", len(spec.Components)).Msg("entity spawned")
	}
	logger.Info().Int("entities", len(spawned)).Msg("scene spawned")
	return spawned, nil
}
