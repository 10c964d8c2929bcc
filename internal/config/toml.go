// Package config provides configuration helpers and TOML parsing.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
)

// Defaults for settings absent from both the file and the flags.
const (
	DefaultDuration  = 5
	DefaultTrack     = 1
	DefaultVolume    = 0.5
	DefaultAutoScore = true
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
}

// PracticeConfig maps session defaults. Nil fields were not set in the file.
type PracticeConfig struct {
	Duration  *int     `toml:"duration"`
	Track     *int     `toml:"track"`
	Volume    *float64 `toml:"volume"`
	AutoScore *bool    `toml:"auto-score"`
}

// Settings are the resolved session defaults.
type Settings struct {
	Duration  int
	Track     int
	Volume    float64
	AutoScore bool
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		Duration:  DefaultDuration,
		Track:     DefaultTrack,
		Volume:    DefaultVolume,
		AutoScore: DefaultAutoScore,
	}
}

// Merge returns s with every value set in the file applied.
func (s Settings) Merge(p PracticeConfig) Settings {
	if p.Duration != nil {
		s.Duration = *p.Duration
	}
	if p.Track != nil {
		s.Track = *p.Track
	}
	if p.Volume != nil {
		s.Volume = *p.Volume
	}
	if p.AutoScore != nil {
		s.AutoScore = *p.AutoScore
	}
	return s
}

// Validate checks ranges. Messages name the CLI flag.
func (s Settings) Validate() error {
	if s.Duration < 1 || s.Duration > 60 {
		return fmt.Errorf("--duration must be between 1 and 60")
	}
	if s.Track < 1 {
		return fmt.Errorf("--track must be >= 1")
	}
	if s.Volume < 0 || s.Volume > 1 {
		return fmt.Errorf("--volume must be between 0 and 1")
	}
	return nil
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Template is the commented config file written on first `sukoon config`.
func Template() string {
	return fmt.Sprintf(`# sukoon configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# duration = %d           # Session length in minutes (1-60)
# track = %d              # Ambient track id (see: sukoon ambient --list)
# volume = %.1f           # Ambient volume (0-1)
# auto-score = %t       # Score journal reflections for tone
`,
		DefaultDuration,
		DefaultTrack,
		DefaultVolume,
		DefaultAutoScore,
	)
}
