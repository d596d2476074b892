package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TUBECOUCH_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Playback.SkipSeconds != 10 {
		t.Errorf("skip seconds = %d, want 10", cfg.Playback.SkipSeconds)
	}
	if cfg.Playback.CountdownSeconds != 2 {
		t.Errorf("countdown = %d, want 2", cfg.Playback.CountdownSeconds)
	}
	if !cfg.Playback.Autoplay {
		t.Error("autoplay default = false, want true")
	}
	if cfg.Keybinds.PlayPause != "Space" {
		t.Errorf("play/pause bind = %q", cfg.Keybinds.PlayPause)
	}
	if cfg.YouTube.APIKey != "" {
		t.Errorf("api key = %q, want empty", cfg.YouTube.APIKey)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("TUBECOUCH_API_KEY", "")

	appDir := filepath.Join(dir, "tubecouch")
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := `
[youtube]
api_key = "from-file"

[playback]
skip_seconds = 30
countdown_seconds = 5

[keybinds]
close = "Q"
`
	if err := os.WriteFile(filepath.Join(appDir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.YouTube.APIKey != "from-file" {
		t.Errorf("api key = %q", cfg.YouTube.APIKey)
	}
	if cfg.Playback.SkipSeconds != 30 || cfg.Playback.CountdownSeconds != 5 {
		t.Errorf("playback = %+v", cfg.Playback)
	}
	// Unset fields keep their defaults
	if cfg.Keybinds.Close != "Q" || cfg.Keybinds.PlayPause != "Space" {
		t.Errorf("keybinds = %+v", cfg.Keybinds)
	}
}

func TestEnvOverridesAPIKey(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("TUBECOUCH_API_KEY", "from-env")

	appDir := filepath.Join(dir, "tubecouch")
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := `
[youtube]
api_key = "from-file"
`
	if err := os.WriteFile(filepath.Join(appDir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.YouTube.APIKey != "from-env" {
		t.Errorf("api key = %q, want env override", cfg.YouTube.APIKey)
	}
}

func TestSaveRoundtrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TUBECOUCH_API_KEY", "")

	cfg := DefaultConfig()
	cfg.Playback.Volume = 80
	cfg.Catalog.Path = "/tmp/cat.toml"
	if err := cfg.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Playback.Volume != 80 || loaded.Catalog.Path != "/tmp/cat.toml" {
		t.Fatalf("loaded = %+v", loaded)
	}
}

func TestConfigDirUsesXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got, err := ConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(dir, "tubecouch") {
		t.Fatalf("config dir = %q", got)
	}
}
