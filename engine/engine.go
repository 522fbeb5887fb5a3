// Package engine wires the world, assets, renderer and scene together and
// runs the tick loop. It does not depend on a window; the ebiten game in the
// main package and the headless runner both drive an Engine.
package engine

import (
	"image/color"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"ebiten-wrap/assets"
	"ebiten-wrap/components"
	"ebiten-wrap/config"
	"ebiten-wrap/ecs"
	"ebiten-wrap/gfx"
	"ebiten-wrap/logging"
	"ebiten-wrap/scene"
	"ebiten-wrap/scripts"
)

// Engine owns everything a running scene needs.
type Engine struct {
	World    *ecs.World
	Renderer *gfx.Renderer
	Assets   *assets.Library
	Registry *components.Registry

	cfg    *config.Config
	dev    gfx.Device
	logger zerolog.Logger
	clear  color.Color
}

// New creates an engine and loads the configured asset manifest. The scene
// is loaded separately with LoadScene.
func New(cfg *config.Config, dev gfx.Device, logger zerolog.Logger) (*Engine, error) {
	e := &Engine{
		World:    ecs.NewWorld(ecs.WithLogger(*logging.CreateSystemLogger(&logger, "ecs"))),
		Renderer: gfx.NewRenderer(),
		Assets:   assets.NewLibrary(logger),
		Registry: components.NewRegistry(),
		cfg:      cfg,
		dev:      dev,
		logger:   logger,
		clear:    cfg.ClearColor.RGBA(),
	}
	ecs.SetResource(e.World, e.Renderer)
	ecs.SetResource(e.World, e.Assets)
	scripts.Register(e.Registry)

	if cfg.Assets.Manifest != "" {
		if err := e.LoadAssets(cfg.Assets.Manifest); err != nil {
			e.Close()
			return nil, err
		}
	}
	return e, nil
}

// LoadAssets loads a manifest file into the asset library.
func (e *Engine) LoadAssets(path string) error {
	m, err := assets.LoadManifestFile(path)
	if err != nil {
		return err
	}
	w, h := e.cfg.Window.Size()
	err = assets.Load(e.dev, e.Assets, m, assets.LoadOptions{
		Workers: e.cfg.Assets.Workers,
		Width:   w,
		Height:  h,
	})
	if err != nil {
		return eris.Wrapf(err, "load assets from %s", path)
	}
	meshes, shaders, textures := e.Assets.Counts()
	e.logger.Info().
		Str("manifest", path).
		Int("meshes", meshes).
		Int("shaders", shaders).
		Int("textures", textures).
		Msg("assets loaded")
	return nil
}

// LoadScene spawns the entities of the scene file at path.
func (e *Engine) LoadScene(path string) ([]ecs.Entity, error) {
	s, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	return scene.Spawn(e.World, e.Registry, s)
}

// Update advances the world by one tick. Draw commands from the previous
// tick are dropped first.
func (e *Engine) Update() {
	e.Renderer.Reset()
	e.World.Update()
}

// Draw clears t and draws the commands submitted during the last Update.
func (e *Engine) Draw(t gfx.Target) gfx.FlushStats {
	t.Fill(e.clear)
	return e.Renderer.Draw(t)
}

// Resize updates every shader projection for a new target size.
func (e *Engine) Resize(width, height int) {
	e.Assets.UpdateAspectRatio(width, height)
}

// Close deletes all entities, so their components release their assets,
// then releases the library.
func (e *Engine) Close() {
	for _, ent := range e.World.Entities() {
		if err := e.World.DeleteEntity(ent); err != nil {
			e.logger.Warn().Err(err).Stringer("entity", ent).Msg("delete on close")
		}
	}
	e.Renderer.Reset()
	e.Assets.Close()
}
