package screens

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"ebiten-wrap/logging"
)

const (
	logScreenWidth  = 600
	logScreenHeight = 400
	lineHeight      = 16
	headerHeight    = 30
)

// LogScreen shows recent log messages in a modal window, newest first.
type LogScreen struct {
	messages     *logging.MessageLog
	scrollOffset int
	modal        *ebiten.Image
	background   color.Color
}

// NewLogScreen creates a new log screen
func NewLogScreen(messages *logging.MessageLog) *LogScreen {
	return &LogScreen{
		messages:   messages,
		modal:      ebiten.NewImage(logScreenWidth, logScreenHeight),
		background: color.RGBA{0, 0, 0, 220},
	}
}

func visibleLines() int {
	return (logScreenHeight - headerHeight - lineHeight) / lineHeight
}

// Update handles scrolling. Escape or F1 closes the screen.
func (s *LogScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		s.modal.Deallocate()
		return ErrCloseScreen
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && s.scrollOffset > 0 {
		s.scrollOffset--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && s.scrollOffset < s.messages.Len()-visibleLines() {
		s.scrollOffset++
	}
	return nil
}

// Draw renders the modal centered on screen.
func (s *LogScreen) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	x := (b.Dx() - logScreenWidth) / 2
	y := (b.Dy() - logScreenHeight) / 2

	s.modal.Fill(s.background)
	vector.StrokeRect(s.modal, 1, 1, logScreenWidth-2, logScreenHeight-2, 2, color.White, false)

	title := "LOG"
	ebitenutil.DebugPrintAt(s.modal, title, (logScreenWidth-len(title)*6)/2, 8)

	maxLines := visibleLines()
	recent := s.messages.RecentMessages(s.scrollOffset + maxLines)
	if s.scrollOffset < len(recent) {
		recent = recent[s.scrollOffset:]
	} else {
		recent = nil
	}
	for i, msg := range recent {
		ebitenutil.DebugPrintAt(s.modal, msg, 10, headerHeight+i*lineHeight)
	}

	if total := s.messages.Len(); total > maxLines {
		track := float32(logScreenHeight - headerHeight - lineHeight)
		barHeight := float32(maxLines) / float32(total) * track
		barY := float32(headerHeight) + float32(s.scrollOffset)/float32(total)*track
		vector.DrawFilledRect(s.modal, logScreenWidth-10, barY, 5, barHeight, color.White, false)
	}

	ebitenutil.DebugPrintAt(s.modal, "Up/Down: Scroll  ESC: Close", 10, logScreenHeight-20)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(s.modal, op)
}

func (s *LogScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
