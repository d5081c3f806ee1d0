package storage

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Environment variables that override the config file
const (
	EnvDatabase = "DUOSCREEN_DB"
	EnvTheme    = "DUOSCREEN_THEME"
)

// LoadConfig loads the configuration from path.
// If the file doesn't exist, it returns default configuration.
// If the file is corrupted, it returns an error.
func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	// Check if file exists
	if _, err := fs.Stat(path); errors.Is(err, os.ErrNotExist) {
		// File doesn't exist, return defaults
		return DefaultConfig(), nil
	}

	// Load and parse the file over the defaults so absent keys keep them
	config := DefaultConfig()
	if err := ReadTOML(fs, path, config); err != nil {
		return nil, err
	}

	// Apply any migration for older config versions
	config = migrateConfig(config)

	return config, nil
}

// SaveConfig saves the configuration to path atomically
func SaveConfig(fs afero.Fs, path string, config *Config) error {
	return AtomicWriteTOML(fs, path, config)
}

// CreateConfigIfMissing writes a default config if none exists at path
func CreateConfigIfMissing(fs afero.Fs, path string) error {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return SaveConfig(fs, path, DefaultConfig())
}

// DeleteConfig removes the config file
func DeleteConfig(fs afero.Fs, path string) error {
	if err := fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// ApplyEnv overrides config values from the environment. getenv is
// os.Getenv outside tests.
func ApplyEnv(config *Config, getenv func(string) string) {
	if db := strings.TrimSpace(getenv(EnvDatabase)); db != "" {
		config.Network.Database = db
	}
	if theme := strings.TrimSpace(getenv(EnvTheme)); theme != "" {
		config.Theme.Name = strings.ToLower(theme)
	}
}

// ResolvePaths fills empty path settings relative to dir.
func ResolvePaths(config *Config, dir string) {
	if config.Paths.Data == "" {
		config.Paths.Data = filepath.Join(dir, "data")
	}
	if config.Paths.Music == "" {
		config.Paths.Music = filepath.Join(config.Paths.Data, "music")
	}
}

// migrateConfig handles any necessary migrations from older config versions
func migrateConfig(config *Config) *Config {
	// Currently at version 1, no migrations needed
	if config.Version == 0 {
		config.Version = 1
	}

	// Ensure defaults for any missing fields
	def := DefaultConfig()
	if config.Display.TopWidth <= 0 || config.Display.TopHeight <= 0 {
		config.Display.TopWidth = def.Display.TopWidth
		config.Display.TopHeight = def.Display.TopHeight
	}
	if config.Display.BottomWidth <= 0 || config.Display.BottomHeight <= 0 {
		config.Display.BottomWidth = def.Display.BottomWidth
		config.Display.BottomHeight = def.Display.BottomHeight
	}
	if config.Display.Gap <= 0 {
		config.Display.Gap = def.Display.Gap
	}
	if config.Display.FPS <= 0 {
		config.Display.FPS = def.Display.FPS
	}
	if config.Display.Brightness <= 0 || config.Display.Brightness > 100 {
		config.Display.Brightness = def.Display.Brightness
	}
	if config.Audio.Volume < 0 || config.Audio.Volume > 100 {
		config.Audio.Volume = def.Audio.Volume
	}
	if len(config.Audio.MusicFormats) == 0 {
		config.Audio.MusicFormats = def.Audio.MusicFormats
	}
	if config.Input.DeadZone <= 0 || config.Input.DeadZone >= 1 {
		config.Input.DeadZone = def.Input.DeadZone
	}
	if config.Input.Sensitivity <= 0 {
		config.Input.Sensitivity = def.Input.Sensitivity
	}
	if config.Theme.Name == "" {
		config.Theme.Name = def.Theme.Name
	}
	if config.Network.UserID == "" {
		config.Network.UserID = def.Network.UserID
	}
	if config.System.PerformanceMode == "" {
		config.System.PerformanceMode = def.System.PerformanceMode
	}
	if config.System.Language == "" {
		config.System.Language = def.System.Language
	}

	return config
}

// LoadOrDefault prepares the config at path for startup: it writes defaults
// when the file is missing, falls back to defaults when it is unreadable,
// then applies environment overrides and resolves paths next to the file.
// A corrupt file is left untouched so the user can repair it.
func LoadOrDefault(fs afero.Fs, path string, getenv func(string) string) *Config {
	if err := CreateConfigIfMissing(fs, path); err != nil {
		log.Printf("Warning: failed to create config: %v", err)
	}
	config, err := LoadConfig(fs, path)
	if err != nil {
		log.Printf("Warning: failed to load config, using defaults: %v", err)
		config = DefaultConfig()
	}
	if getenv != nil {
		ApplyEnv(config, getenv)
	}
	ResolvePaths(config, filepath.Dir(path))
	return config
}
