package models

import "time"

// Settings represents the application configuration
type Settings struct {
	UI      UISettings      `yaml:"ui" json:"ui"`
	Server  ServerSettings  `yaml:"server" json:"server"`
	Offline OfflineSettings `yaml:"offline" json:"offline"`
	Log     LogSettings     `yaml:"log" json:"log"`
}

// UISettings controls the terminal keypad
type UISettings struct {
	ShowHelp     bool   `yaml:"show_help" json:"show_help"`
	AccentColor  string `yaml:"accent_color" json:"accent_color"`
	DisplayWidth int    `yaml:"display_width" json:"display_width"`
}

// ServerSettings controls the web keypad server
type ServerSettings struct {
	Addr      string `yaml:"addr" json:"addr"`
	StaticDir string `yaml:"static_dir" json:"static_dir"` // empty serves the embedded assets
	Watch     bool   `yaml:"watch" json:"watch"`
}

// OfflineSettings controls the cache-first wrapper
type OfflineSettings struct {
	Enabled      bool          `yaml:"enabled" json:"enabled"`
	ManifestPath string        `yaml:"manifest" json:"manifest"` // empty uses the built-in manifest
	Origin       string        `yaml:"origin" json:"origin"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
	Concurrency  int           `yaml:"concurrency" json:"concurrency"`
}

// LogSettings controls logging
type LogSettings struct {
	Level string `yaml:"level" json:"level"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		UI: UISettings{
			ShowHelp:     true,
			AccentColor:  "170",
			DisplayWidth: 24,
		},
		Server: ServerSettings{
			Addr:      "127.0.0.1:8080",
			StaticDir: "",
			Watch:     false,
		},
		Offline: OfflineSettings{
			Enabled:      true,
			ManifestPath: "",
			Origin:       "http://127.0.0.1:8080",
			Timeout:      10 * time.Second,
			Concurrency:  4,
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}
