package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Default video mode, used when the config leaves the window size unset.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
	DefaultTPS    = 60
)

// AppConfig is the root config for app.toml
type AppConfig struct {
	Window WindowConfig `toml:"window"`
	Log    LogConfig    `toml:"log"`
	Assets AssetsConfig `toml:"assets"`
	Scenes ScenesConfig `toml:"scenes"`
}

type WindowConfig struct {
	Title      string `toml:"title"`
	Width      int    `toml:"width"`  // Logical screen width (pixels)
	Height     int    `toml:"height"` // Logical screen height (pixels)
	Scale      int    `toml:"scale"`  // Window size multiplier
	TPS        int    `toml:"tps"`    // Updates per second
	Resizable  bool   `toml:"resizable"`
	Background string `toml:"background"` // Clear colour, "#rrggbb" or "#rrggbbaa"
}

type LogConfig struct {
	Level  string `toml:"level"` // debug, info, warn, error, fatal
	File   string `toml:"file"`  // Empty = stderr only
	Caller bool   `toml:"caller"`
}

type AssetsConfig struct {
	Dir   string `toml:"dir"`
	Font  string `toml:"font"`  // TrueType/OpenType or .fnt file in Dir; empty = built-in face
	Watch bool   `toml:"watch"` // Reload changed files while running
}

type ScenesConfig struct {
	First  string `toml:"first"`  // Scene activated on the first frame
	Strict bool   `toml:"strict"` // Panic on invalid scene operations
}

// Default returns the configuration used for any key missing from app.toml
func Default() AppConfig {
	return AppConfig{
		Window: WindowConfig{
			Title:      "RAGE",
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			Scale:      1,
			TPS:        DefaultTPS,
			Background: "#000000",
		},
		Log: LogConfig{
			Level: "info",
		},
		Assets: AssetsConfig{
			Dir: "assets",
		},
	}
}

// Validate checks value ranges
func (c *AppConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.Scale <= 0 {
		return fmt.Errorf("invalid window scale %d", c.Window.Scale)
	}
	if c.Window.TPS <= 0 {
		return fmt.Errorf("invalid tps %d", c.Window.TPS)
	}
	if _, err := ParseColor(c.Window.Background); err != nil {
		return fmt.Errorf("invalid background: %w", err)
	}
	return nil
}

// BackgroundColor returns the parsed window clear colour
func (c *AppConfig) BackgroundColor() color.RGBA {
	clr, err := ParseColor(c.Window.Background)
	if err != nil {
		return color.RGBA{A: 255}
	}
	return clr
}

// ParseColor parses "#rrggbb" or "#rrggbbaa"
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
