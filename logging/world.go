package logging

import (
	"github.com/rs/zerolog"

	"ebiten-wrap/ecs"
)

func componentsArray(types []ecs.ComponentType) *zerolog.Array {
	arr := zerolog.Arr()
	for _, ct := range types {
		arr = arr.Dict(zerolog.Dict().
			Int("component_id", int(ct.ID)).
			Str("component_name", ct.Name).
			Int("count", ct.Count))
	}
	return arr
}

// Components logs every registered component type of w.
func Components(logger *zerolog.Logger, w *ecs.World, level zerolog.Level) {
	types := w.ComponentTypes()
	logger.WithLevel(level).
		Int("total_components", len(types)).
		Array("components", componentsArray(types)).
		Send()
}

// World logs a summary of w: tick count, live entities and component types.
func World(logger *zerolog.Logger, w *ecs.World, level zerolog.Level) {
	types := w.ComponentTypes()
	logger.WithLevel(level).
		Uint64("ticks", w.Ticks()).
		Int("entities", w.Len()).
		Int("total_components", len(types)).
		Array("components", componentsArray(types)).
		Send()
}

// Entity logs the name of e and whether it is alive.
func Entity(logger *zerolog.Logger, w *ecs.World, e ecs.Entity, level zerolog.Level) {
	name, alive := w.Name(e)
	logger.WithLevel(level).
		Stringer("entity", e).
		Str("name", name).
		Bool("alive", alive).
		Send()
}
