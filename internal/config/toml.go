// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice  PracticeConfig  `toml:"practice"`
	Crosshair CrosshairConfig `toml:"crosshair"`
	Sound     SoundConfig     `toml:"sound"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Mode        *string  `toml:"mode"`
	Difficulty  *string  `toml:"difficulty"`
	Seed        *int64   `toml:"seed"`
	HitPolicy   *string  `toml:"hit-policy"`
	Width       *float64 `toml:"width"`
	Height      *float64 `toml:"height"`
	CurveWindow *int     `toml:"curve-window"`
}

// CrosshairConfig maps the cosmetic cursor settings.
type CrosshairConfig struct {
	Preset    *string `toml:"preset"`
	Color     *string `toml:"color"`
	Size      *int    `toml:"size"`
	Gap       *int    `toml:"gap"`
	Thickness *int    `toml:"thickness"`
	Dot       *bool   `toml:"dot"`
}

// SoundConfig maps feedback sound settings.
type SoundConfig struct {
	Enabled *bool `toml:"enabled"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
