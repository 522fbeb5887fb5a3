package config

// Window defaults
const (
	DefaultWindowWidth  = 800
	DefaultWindowHeight = 600
	DefaultWindowTitle  = "ebiten-wrap"

	DefaultTPS           = 60
	DefaultHeadlessTicks = 100
)

// WindowConfig describes the game window.
type WindowConfig struct {
	Width      int    `mapstructure:"width"`
	Height     int    `mapstructure:"height"`
	Title      string `mapstructure:"title"`
	Resizable  bool   `mapstructure:"resizable"`
	Fullscreen bool   `mapstructure:"fullscreen"`
}

// Size returns the window dimensions in pixels
func (w WindowConfig) Size() (width, height int) {
	return w.Width, w.Height
}
