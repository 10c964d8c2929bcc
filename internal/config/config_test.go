package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
	if cfg.Practice.Duration != nil || cfg.Practice.AutoScore != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `[practice]
duration = 10
track = 3
volume = 0.4
auto-score = false
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	p := cfg.Practice
	if p.Duration == nil || *p.Duration != 10 {
		t.Fatalf("unexpected duration: %v", p.Duration)
	}
	if p.Track == nil || *p.Track != 3 {
		t.Fatalf("unexpected track: %v", p.Track)
	}
	if p.Volume == nil || *p.Volume != 0.4 {
		t.Fatalf("unexpected volume: %v", p.Volume)
	}
	if p.AutoScore == nil || *p.AutoScore {
		t.Fatalf("unexpected auto-score: %v", p.AutoScore)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[practice]\nvolume = 1.0\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Practice.Duration != nil || cfg.Practice.Volume == nil {
		t.Fatalf("expected only volume to be set, got %+v", cfg.Practice)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[practice]\nduration = \"long\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "sukoon", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/tmp/data", "sukoon", "sukoon.db") {
		t.Fatalf("unexpected db path %q", got)
	}
}

func TestSettingsMergeAndValidate(t *testing.T) {
	duration, volume := 20, 0.8
	s := DefaultSettings().Merge(PracticeConfig{Duration: &duration, Volume: &volume})
	if s.Duration != 20 || s.Volume != 0.8 || s.Track != DefaultTrack || !s.AutoScore {
		t.Fatalf("unexpected merged settings: %+v", s)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("expected valid settings, got %v", err)
	}
	bad := []Settings{
		{Duration: 0, Track: 1, Volume: 0.5},
		{Duration: 61, Track: 1, Volume: 0.5},
		{Duration: 5, Track: 0, Volume: 0.5},
		{Duration: 5, Track: 1, Volume: 1.5},
	}
	for _, b := range bad {
		if err := b.Validate(); err == nil {
			t.Fatalf("expected %+v to be invalid", b)
		}
	}
}

func TestTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(Template()), 0o644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("template should decode: %v", err)
	}
	if cfg.Practice.Duration != nil {
		t.Fatalf("expected commented values to stay unset")
	}
}
