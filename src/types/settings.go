package types

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings are the persisted defaults shared by the CLI and the viewer.
type Settings struct {
	Plot     PlotOptions `yaml:"plot"`
	LastFile string      `yaml:"last_file,omitempty"`
}

// DefaultSettings returns settings with stock plot options.
func DefaultSettings() Settings {
	return Settings{Plot: DefaultPlotOptions()}
}

// DefaultSettingsPath returns the per-user settings location
// (<user config dir>/dosplot/settings.yaml).
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "dosplot", "settings.yaml"), nil
}

// LoadSettings reads a YAML settings file. A missing file is not an error:
// it returns the defaults so first runs behave sensibly.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("read settings %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s, nil
}

// SaveSettings writes settings as YAML, creating parent directories as needed.
func SaveSettings(path string, s Settings) error {
	b, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write settings %s: %w", path, err)
	}
	return nil
}
