package components

import (
	"reflect"
	"strings"

	"ebiten-wrap/ecs"
)

// Scriptable is user behaviour attached to an entity through a
// ScriptComponent. Each hook receives the world and the owning entity.
type Scriptable interface {
	OnCreate(w *ecs.World, e ecs.Entity)
	OnUpdate(w *ecs.World, e ecs.Entity)
	OnDestroy(w *ecs.World, e ecs.Entity)
}

// BaseScript provides no-op hooks for embedding.
type BaseScript struct{}

func (BaseScript) OnCreate(*ecs.World, ecs.Entity)  {}
func (BaseScript) OnUpdate(*ecs.World, ecs.Entity)  {}
func (BaseScript) OnDestroy(*ecs.World, ecs.Entity) {}

// ScriptPtr constrains P to be *S and to implement Scriptable.
type ScriptPtr[S any] interface {
	*S
	Scriptable
}

// ScriptComponent runs a script of type S. The script starts as the zero
// value of S; OnCreate runs when the component is added.
type ScriptComponent[S any, P ScriptPtr[S]] struct {
	Script S

	world  *ecs.World
	entity ecs.Entity
}

func (c *ScriptComponent[S, P]) ComponentName() string {
	return "script:" + strings.ToLower(reflect.TypeFor[S]().Name())
}

func (c *ScriptComponent[S, P]) Create(w *ecs.World, e ecs.Entity) {
	c.world = w
	c.entity = e
	P(&c.Script).OnCreate(w, e)
}

func (c *ScriptComponent[S, P]) Update() {
	P(&c.Script).OnUpdate(c.world, c.entity)
}

func (c *ScriptComponent[S, P]) Destroy() {
	P(&c.Script).OnDestroy(c.world, c.entity)
}

// Entity returns the entity the script is attached to.
func (c *ScriptComponent[S, P]) Entity() ecs.Entity {
	return c.entity
}

// AddScript attaches a new script of type S to e and returns it.
func AddScript[S any, P ScriptPtr[S]](w *ecs.World, e ecs.Entity) (*S, error) {
	return addScript[S, P](w, e, nil)
}

// addScript runs configure on the script after OnCreate, before it is stored.
func addScript[S any, P ScriptPtr[S]](w *ecs.World, e ecs.Entity, configure func(*S)) (*S, error) {
	var script *S
	_, err := ecs.AddComponent[ScriptComponent[S, P]](w, e, func(c *ScriptComponent[S, P]) {
		script = &c.Script
		if configure != nil {
			configure(script)
		}
	})
	if err != nil {
		return nil, err
	}
	return script, nil
}

// GetScript returns the most recently attached script of type S on e.
func GetScript[S any, P ScriptPtr[S]](w *ecs.World, e ecs.Entity) (*S, bool) {
	c, ok := ecs.GetComponent[ScriptComponent[S, P]](w, e)
	if !ok {
		return nil, false
	}
	return &c.Script, true
}
