package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	w, h := c.Window.Size()
	assert.Equal(t, DefaultWindowWidth, w)
	assert.Equal(t, DefaultWindowHeight, h)
	assert.Equal(t, DefaultWindowTitle, c.Window.Title)
	assert.Equal(t, DefaultTPS, c.TPS)
	assert.Equal(t, DefaultHeadlessTicks, c.Headless.Ticks)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, color.RGBA{R: 77, G: 51, B: 77, A: 255}, c.ClearColor.RGBA())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
window:
  width: 1366
  title: demo
tps: 30
headless:
  ticks: 5
log:
  level: debug
  file: game.log
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1366, c.Window.Width)
	assert.Equal(t, DefaultWindowHeight, c.Window.Height, "unset keys keep defaults")
	assert.Equal(t, "demo", c.Window.Title)
	assert.Equal(t, 30, c.TPS)
	assert.Equal(t, 5, c.Headless.Ticks)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "game.log", c.Log.File)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("EWRAP_WINDOW_HEIGHT", "384")
	t.Setenv("EWRAP_HEADLESS_TICKS", "7")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 384, c.Window.Height)
	assert.Equal(t, 7, c.Headless.Ticks)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tps: 0\n"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "tps")

	require.NoError(t, os.WriteFile(path, []byte("clear_color:\n  r: 2\n"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "clear color")
}
