// Package config loads editor configuration from TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the root configuration.
type Config struct {
	Editor  EditorConfig  `toml:"editor"`
	Logging LoggingConfig `toml:"logging"`
}

// EditorConfig holds buffer and input settings.
type EditorConfig struct {
	// TabStop is the tab stop width used for rendering.
	TabStop int `toml:"tabStop"`

	// QuitTimes is how many extra quit presses a dirty buffer requires.
	QuitTimes int `toml:"quitTimes"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is the minimum level: debug, info, warn, error.
	Level string `toml:"level"`

	// File is the log output path; empty disables logging.
	File string `toml:"file"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			TabStop:   8,
			QuitTimes: 3,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from path, applying defaults for missing
// fields. A missing file is not an error and yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if cfg.Editor.TabStop < 1 {
		cfg.Editor.TabStop = Default().Editor.TabStop
	}
	if cfg.Editor.QuitTimes < 0 {
		cfg.Editor.QuitTimes = 0
	}

	return cfg, nil
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "keylite", "config.toml")
}
