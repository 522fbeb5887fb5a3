// Package scripts holds the sample scripts available to scene files.
package scripts

import (
	"github.com/go-gl/mathgl/mgl32"

	"ebiten-wrap/components"
	"ebiten-wrap/ecs"
)

// Register makes every script in this package available to reg.
func Register(reg *components.Registry) {
	components.RegisterScript[Plane](reg, "plane")
	components.RegisterScript[Lifetime](reg, "lifetime")
}

// Plane spins the entity's mesh around Axis by Speed radians per tick.
type Plane struct {
	components.BaseScript
	Speed float32   `mapstructure:"speed"`
	Axis  []float32 `mapstructure:"axis"`

	angle float32
}

func (p *Plane) OnCreate(w *ecs.World, e ecs.Entity) {
	p.Speed = 0.02
	p.Axis = []float32{0, 1, 0}
	w.Logger().Debug().Stringer("entity", e).Msg("plane script created")
}

func (p *Plane) OnUpdate(w *ecs.World, e ecs.Entity) {
	m, ok := ecs.GetComponent[components.MeshComponent](w, e)
	if !ok {
		return
	}
	p.angle += p.Speed
	m.SetRotation(p.axis(), p.angle)
}

// Angle returns the current rotation in radians.
func (p *Plane) Angle() float32 {
	return p.angle
}

func (p *Plane) axis() mgl32.Vec3 {
	if len(p.Axis) != 3 {
		return mgl32.Vec3{0, 1, 0}
	}
	return mgl32.Vec3{p.Axis[0], p.Axis[1], p.Axis[2]}
}

// Lifetime deletes its entity after Ticks updates.
type Lifetime struct {
	components.BaseScript
	Ticks int `mapstructure:"ticks"`
}

func (l *Lifetime) OnUpdate(w *ecs.World, e ecs.Entity) {
	l.Ticks--
	if l.Ticks > 0 {
		return
	}
	if err := w.DeleteEntity(e); err != nil {
		w.Logger().Warn().Err(err).Stringer("entity", e).Msg("lifetime expired on dead entity")
	}
}

func (l *Lifetime) OnDestroy(w *ecs.World, e ecs.Entity) {
	w.Logger().Debug().Stringer("entity", e).Msg("lifetime ended")
}
