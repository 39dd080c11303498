package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/phototriage/internal/icons"
)

const appName = "phototriage"

type Config struct {
	// Backend connection
	Server ServerConfig `koanf:"server"`

	// Session defaults
	Session SessionConfig `koanf:"session"`

	// Terminal display
	Display DisplayConfig `koanf:"display"`

	// Local audit trail of applied actions
	Journal JournalConfig `koanf:"journal"`

	// Desktop notification on session completion
	Notify NotifyConfig `koanf:"notify"`

	Log LogConfig `koanf:"log"`
}

// ServerConfig holds the backend connection settings.
type ServerConfig struct {
	URL            string `koanf:"url"`             // e.g., "http://127.0.0.1:5000"
	CookieName     string `koanf:"cookie_name"`     // session cookie name (default: "session")
	Cookie         string `koanf:"cookie"`          // session cookie value from a logged-in browser
	TimeoutSeconds int    `koanf:"timeout_seconds"` // per-request timeout (default: 30)
}

// SessionConfig holds session defaults.
type SessionConfig struct {
	Mode string `koanf:"mode"` // "sequential" or "random" (default: "sequential")
}

// DisplayConfig holds terminal display settings.
type DisplayConfig struct {
	Preview      string `koanf:"preview"`       // "auto", "kitty", "sixel" or "none" (default: "auto")
	Icons        string `koanf:"icons"`         // "nerd", "unicode" or "none" (default: "none")
	ToastSeconds int    `koanf:"toast_seconds"` // status message duration (default: 3)
}

// JournalConfig holds journal settings.
type JournalConfig struct {
	Enabled bool   `koanf:"enabled"` // default: true
	Path    string `koanf:"path"`    // default: XDG data dir
}

// NotifyConfig holds desktop notification settings.
type NotifyConfig struct {
	Desktop bool `koanf:"desktop"` // default: true
}

// LogConfig holds log settings.
type LogConfig struct {
	Level string `koanf:"level"` // zerolog level name (default: "info")
	Path  string `koanf:"path"`  // default: XDG state dir
}

// Preview modes.
const (
	PreviewAuto  = "auto"
	PreviewKitty = "kitty"
	PreviewSixel = "sixel"
	PreviewNone  = "none"
)

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:            "http://127.0.0.1:5000",
			CookieName:     "session",
			TimeoutSeconds: 30,
		},
		Session: SessionConfig{Mode: "sequential"},
		Display: DisplayConfig{Preview: PreviewAuto, Icons: "none", ToastSeconds: 3},
		Journal: JournalConfig{Enabled: true},
		Notify:  NotifyConfig{Desktop: true},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads the config files in priority order (last wins). explicit, when
// non-empty, is loaded last and must exist.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	if explicit != "" {
		explicit = expandPath(explicit)
		if err := k.Load(file.Provider(explicit), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", explicit, err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	// Normalize server URL (remove trailing slash)
	c.Server.URL = strings.TrimSuffix(strings.TrimSpace(c.Server.URL), "/")

	c.Session.Mode = strings.ToLower(strings.TrimSpace(c.Session.Mode))
	c.Display.Preview = strings.ToLower(strings.TrimSpace(c.Display.Preview))
	c.Display.Icons = strings.ToLower(strings.TrimSpace(c.Display.Icons))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))

	if c.Server.CookieName == "" {
		c.Server.CookieName = "session"
	}
	if c.Server.TimeoutSeconds <= 0 {
		c.Server.TimeoutSeconds = 30
	}
	if c.Display.ToastSeconds <= 0 {
		c.Display.ToastSeconds = 3
	}
	if c.Session.Mode == "" {
		c.Session.Mode = "sequential"
	}
	if c.Display.Preview == "" {
		c.Display.Preview = PreviewAuto
	}
	if c.Display.Icons == "" {
		c.Display.Icons = "none"
	}

	c.Journal.Path = expandPath(c.Journal.Path)
	c.Log.Path = expandPath(c.Log.Path)
}

// Validate rejects values no component can use.
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server.url is required")
	}
	switch c.Session.Mode {
	case "", "sequential", "random":
	default:
		return fmt.Errorf("session.mode: unknown mode %q (want sequential or random)", c.Session.Mode)
	}
	switch c.Display.Preview {
	case PreviewAuto, PreviewKitty, PreviewSixel, PreviewNone:
	default:
		return fmt.Errorf("display.preview: unknown value %q (want auto, kitty, sixel or none)", c.Display.Preview)
	}
	if !icons.Valid(c.Display.Icons) {
		return fmt.Errorf("display.icons: unknown style %q (want nerd, unicode or none)", c.Display.Icons)
	}
	return nil
}

// Timeout returns the per-request HTTP timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}

// ToastDuration returns how long status messages stay visible.
func (c *Config) ToastDuration() time.Duration {
	return time.Duration(c.Display.ToastSeconds) * time.Second
}

// HasCookie returns true if a session cookie is configured.
func (c *Config) HasCookie() bool {
	return c.Server.Cookie != ""
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/phototriage/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
