// Package screens stacks ebiten screens: the running scene at the bottom and
// modal overlays on top.
package screens

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rotisserie/eris"
)

// ErrCloseScreen is returned from Update to pop the screen off the stack.
var ErrCloseScreen = eris.New("close screen")

// Screen represents a game screen that can be pushed onto the screen stack
type Screen interface {
	// Update updates the screen state
	Update() error
	// Draw draws the screen
	Draw(screen *ebiten.Image)
	// Layout handles screen layout
	Layout(outsideWidth, outsideHeight int) (int, int)
}

// Stack manages a stack of screens. Only the top screen is updated; all
// screens are drawn, bottom first.
type Stack struct {
	screens []Screen
}

func NewStack(base ...Screen) *Stack {
	return &Stack{screens: base}
}

// Push adds a new screen to the top of the stack
func (s *Stack) Push(screen Screen) {
	s.screens = append(s.screens, screen)
}

// Pop removes the top screen from the stack
func (s *Stack) Pop() Screen {
	if len(s.screens) == 0 {
		return nil
	}
	top := s.screens[len(s.screens)-1]
	s.screens[len(s.screens)-1] = nil
	s.screens = s.screens[:len(s.screens)-1]
	return top
}

// Peek returns the top screen without removing it
func (s *Stack) Peek() Screen {
	if len(s.screens) == 0 {
		return nil
	}
	return s.screens[len(s.screens)-1]
}

func (s *Stack) Len() int {
	return len(s.screens)
}

// Update updates the top screen. A screen returning ErrCloseScreen is
// popped; closing the last screen ends the game.
func (s *Stack) Update() error {
	top := s.Peek()
	if top == nil {
		return ebiten.Termination
	}
	err := top.Update()
	if eris.Is(err, ErrCloseScreen) {
		s.Pop()
		if s.Len() == 0 {
			return ebiten.Termination
		}
		return nil
	}
	return err
}

// Draw draws all screens from bottom to top
func (s *Stack) Draw(screen *ebiten.Image) {
	for _, scr := range s.screens {
		scr.Draw(screen)
	}
}

// Layout lays out every screen and returns the top screen's size.
func (s *Stack) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := outsideWidth, outsideHeight
	for _, scr := range s.screens {
		w, h = scr.Layout(outsideWidth, outsideHeight)
	}
	return w, h
}
