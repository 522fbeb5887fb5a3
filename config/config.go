// Package config loads runtime settings from a YAML file, EWRAP_ environment
// variables and built-in defaults, in that order of precedence after env.
package config

import (
	"image/color"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. EWRAP_WINDOW_WIDTH.
const EnvPrefix = "EWRAP"

// Config is the full runtime configuration.
type Config struct {
	Window     WindowConfig   `mapstructure:"window"`
	TPS        int            `mapstructure:"tps"`
	ClearColor ColorConfig    `mapstructure:"clear_color"`
	Headless   HeadlessConfig `mapstructure:"headless"`
	Assets     AssetsConfig   `mapstructure:"assets"`
	Scene      string         `mapstructure:"scene"`
	Log        LogConfig      `mapstructure:"log"`
}

// ColorConfig is a color with channels in [0, 1].
type ColorConfig struct {
	R float64 `mapstructure:"r"`
	G float64 `mapstructure:"g"`
	B float64 `mapstructure:"b"`
	A float64 `mapstructure:"a"`
}

// HeadlessConfig controls runs without a window.
type HeadlessConfig struct {
	Ticks int `mapstructure:"ticks"`
}

// AssetsConfig locates the asset manifest.
type AssetsConfig struct {
	Manifest string `mapstructure:"manifest"`
	Workers  int    `mapstructure:"workers"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
	Overlay    int    `mapstructure:"overlay"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.width", DefaultWindowWidth)
	v.SetDefault("window.height", DefaultWindowHeight)
	v.SetDefault("window.title", DefaultWindowTitle)
	v.SetDefault("window.resizable", true)
	v.SetDefault("window.fullscreen", false)
	v.SetDefault("tps", DefaultTPS)
	v.SetDefault("clear_color.r", 0.3)
	v.SetDefault("clear_color.g", 0.2)
	v.SetDefault("clear_color.b", 0.3)
	v.SetDefault("clear_color.a", 1.0)
	v.SetDefault("headless.ticks", DefaultHeadlessTicks)
	v.SetDefault("assets.manifest", "data/assets.json")
	v.SetDefault("assets.workers", 4)
	v.SetDefault("scene", "data/scenes/plane.yaml")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("log.overlay", 100)
}

// New returns a viper instance with defaults and env overrides applied.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Default returns the configuration with nothing but defaults and env.
func Default() *Config {
	c, err := Load("")
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads the YAML file at path, if path is not empty, and returns the
// validated configuration.
func Load(path string) (*Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, eris.Wrapf(err, "read config %s", path)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, eris.Wrap(err, "decode config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return eris.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.TPS <= 0 {
		return eris.Errorf("tps must be positive, got %d", c.TPS)
	}
	if c.Headless.Ticks < 0 {
		return eris.Errorf("headless ticks must not be negative, got %d", c.Headless.Ticks)
	}
	for _, ch := range []float64{c.ClearColor.R, c.ClearColor.G, c.ClearColor.B, c.ClearColor.A} {
		if ch < 0 || ch > 1 {
			return eris.Errorf("clear color channel %v out of [0, 1]", ch)
		}
	}
	return nil
}

// RGBA converts the color to 8-bit channels.
func (c ColorConfig) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}
