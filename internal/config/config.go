package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	YouTube  YouTubeConfig  `toml:"youtube"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Playback PlaybackConfig `toml:"playback"`
	UI       UIConfig       `toml:"ui"`
	Keybinds KeybindConfig  `toml:"keybinds"`
}

type YouTubeConfig struct {
	// APIKey enables duration prefetching via the Data API.
	// Empty key disables prefetching; playback is unaffected.
	APIKey string `toml:"api_key"`
}

type CatalogConfig struct {
	// Path points at a catalog TOML file. Empty uses the built-in catalog.
	Path string `toml:"path"`
}

type PlaybackConfig struct {
	HWAccel          string `toml:"hwdec"`
	Volume           int    `toml:"volume"`
	Autoplay         bool   `toml:"autoplay"`
	SkipSeconds      int    `toml:"skip_seconds"`
	CountdownSeconds int    `toml:"countdown_seconds"`
}

type UIConfig struct {
	Fullscreen bool `toml:"fullscreen"`
	Width      int  `toml:"width"`
	Height     int  `toml:"height"`
}

type KeybindConfig struct {
	PlayPause    string `toml:"play_pause"`
	SkipForward  string `toml:"skip_forward"`
	SkipBackward string `toml:"skip_backward"`
	Minimize     string `toml:"minimize"`
	Close        string `toml:"close"`
	UpNext       string `toml:"up_next"`
	Fullscreen   string `toml:"fullscreen"`
}

func DefaultConfig() *Config {
	return &Config{
		Playback: PlaybackConfig{
			HWAccel:          "auto-safe",
			Volume:           100,
			Autoplay:         true,
			SkipSeconds:      10,
			CountdownSeconds: 2,
		},
		UI: UIConfig{
			Fullscreen: false,
			Width:      1920,
			Height:     1080,
		},
		Keybinds: KeybindConfig{
			PlayPause:    "Space",
			SkipForward:  "Right",
			SkipBackward: "Left",
			Minimize:     "M",
			Close:        "X",
			UpNext:       "U",
			Fullscreen:   "F",
		},
	}
}

func ConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "tubecouch"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func Load() (*Config, error) {
	cfg := DefaultConfig()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	applyEnv(cfg)
	return cfg, nil
}

// applyEnv lets the environment override the metadata API credential.
func applyEnv(cfg *Config) {
	if key := os.Getenv("TUBECOUCH_API_KEY"); key != "" {
		cfg.YouTube.APIKey = key
	}
}

func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}
