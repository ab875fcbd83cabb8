// Package prefs persists process-wide display preferences. They are read
// once at startup and written back whenever they change.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Preferences are the persisted display settings
type Preferences struct {
	DarkMode bool `yaml:"dark_mode"`
}

// Load reads preferences from path. A missing file yields the defaults.
func Load(path string) (Preferences, error) {
	var p Preferences

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("failed to read preferences %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preferences{}, fmt.Errorf("failed to parse preferences YAML: %w", err)
	}
	return p, nil
}

// Save writes preferences to path, creating its directory
func Save(path string, p Preferences) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write preferences %s: %w", path, err)
	}
	return nil
}
