package screens

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"ebiten-wrap/engine"
	"ebiten-wrap/gfx/ebitendev"
	"ebiten-wrap/logging"
)

// SceneScreen runs an engine. F1 opens the log screen, Escape closes the
// scene.
type SceneScreen struct {
	stack    *Stack
	eng      *engine.Engine
	target   *ebitendev.Target
	messages *logging.MessageLog

	width, height int
}

// NewSceneScreen creates a scene screen. The log screen it opens is pushed
// onto stack.
func NewSceneScreen(stack *Stack, eng *engine.Engine, messages *logging.MessageLog) *SceneScreen {
	return &SceneScreen{
		stack:    stack,
		eng:      eng,
		target:   ebitendev.NewTarget(nil),
		messages: messages,
	}
}

func (s *SceneScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ErrCloseScreen
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) && s.messages != nil {
		s.stack.Push(NewLogScreen(s.messages))
		return nil
	}
	s.eng.Update()
	return nil
}

func (s *SceneScreen) Draw(screen *ebiten.Image) {
	s.target.Reset(screen)
	stats := s.eng.Draw(s.target)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f  TPS: %.1f  Triangles: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), stats.Triangles))
}

// Layout follows the window size and updates shader projections on resize.
func (s *SceneScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != s.width || outsideHeight != s.height {
		s.width, s.height = outsideWidth, outsideHeight
		s.eng.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
