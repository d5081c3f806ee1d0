package storage

import (
	"time"

	"github.com/user-none/duoscreen/layout"
)

// Config represents the application configuration stored in config.toml
type Config struct {
	Version int           `toml:"version"`
	Display DisplayConfig `toml:"display"`
	Audio   AudioConfig   `toml:"audio"`
	Input   InputConfig   `toml:"input"`
	Theme   ThemeConfig   `toml:"theme"`
	Paths   PathsConfig   `toml:"paths"`
	Network NetworkConfig `toml:"network"`
	System  SystemConfig  `toml:"system"`
}

// DisplayConfig contains the fixed surface geometry and pacing
type DisplayConfig struct {
	TopWidth     int  `toml:"top_width"`
	TopHeight    int  `toml:"top_height"`
	BottomWidth  int  `toml:"bottom_width"`
	BottomHeight int  `toml:"bottom_height"`
	Gap          int  `toml:"gap"`
	FPS          int  `toml:"fps"`
	Brightness   int  `toml:"brightness"` // Startup backlight level, 0-100
	Fullscreen   bool `toml:"fullscreen"`
}

// AudioConfig contains audio-related settings
type AudioConfig struct {
	Volume       int      `toml:"volume"` // 0-100
	Muted        bool     `toml:"muted"`
	SoundEffects bool     `toml:"sound_effects"`
	MusicFormats []string `toml:"music_formats"` // Extensions including the dot
}

// InputConfig contains stick tuning
type InputConfig struct {
	DeadZone    float64 `toml:"dead_zone"`
	Sensitivity float64 `toml:"sensitivity"`
}

// ThemeConfig selects the color theme
type ThemeConfig struct {
	Name string `toml:"name"` // "default", "dark", "nintendo", "forest"
}

// PathsConfig contains data locations. Empty values resolve under the
// config directory.
type PathsConfig struct {
	Data  string `toml:"data"`
	Music string `toml:"music"`
}

// NetworkConfig contains the social backend settings
type NetworkConfig struct {
	Database    string `toml:"database"` // SQLite file; empty uses built-in demo data
	UserID      string `toml:"user_id"`
	AutoConnect bool   `toml:"auto_connect"`
}

// SystemConfig contains miscellaneous system behavior
type SystemConfig struct {
	AutoStartMusic  bool   `toml:"auto_start_music"`
	PerformanceMode string `toml:"performance_mode"` // "balanced", "performance", "battery"
	ScreenTimeout   int    `toml:"screen_timeout"`   // Seconds, 0 disables
	Language        string `toml:"language"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	l := layout.Default()
	return &Config{
		Version: 1,
		Display: DisplayConfig{
			TopWidth:     l.TopWidth,
			TopHeight:    l.TopHeight,
			BottomWidth:  l.BottomWidth,
			BottomHeight: l.BottomHeight,
			Gap:          l.Gap,
			FPS:          60,
			Brightness:   80,
		},
		Audio: AudioConfig{
			Volume:       70,
			SoundEffects: true,
			MusicFormats: []string{".mp3", ".ogg", ".wav", ".flac"},
		},
		Input: InputConfig{
			DeadZone:    0.15,
			Sensitivity: 1.0,
		},
		Theme: ThemeConfig{
			Name: "default",
		},
		Network: NetworkConfig{
			UserID:      "demo_user",
			AutoConnect: true,
		},
		System: SystemConfig{
			PerformanceMode: "balanced",
			ScreenTimeout:   300,
			Language:        "en",
		},
	}
}

// Layout returns the surface geometry described by the display section.
func (c *Config) Layout() layout.Layout {
	return layout.Layout{
		TopWidth:     c.Display.TopWidth,
		TopHeight:    c.Display.TopHeight,
		BottomWidth:  c.Display.BottomWidth,
		BottomHeight: c.Display.BottomHeight,
		Gap:          c.Display.Gap,
	}
}

// FrameDuration returns the frame budget for the configured rate.
func (c *Config) FrameDuration() time.Duration {
	if c.Display.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Display.FPS)
}
