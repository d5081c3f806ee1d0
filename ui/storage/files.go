package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
)

const (
	appDirName     = "duoscreen"
	configFileName = "config.toml"
)

// GetConfigDir returns the per-user configuration directory.
func GetConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// GetConfigPath returns the path of config.toml.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// ReadTOML decodes the TOML file at path into v.
func ReadTOML(fs afero.Fs, path string, v any) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := toml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// AtomicWriteTOML encodes v and replaces path with it. The data is written
// to path+".tmp" and renamed over the target so readers never see a
// partially written file.
func AtomicWriteTOML(fs afero.Fs, path string, v any) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := afero.WriteFile(fs, tmpPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(tmpPath), err)
	}
	if err := fs.Rename(tmpPath, path); err != nil {
		_ = fs.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
