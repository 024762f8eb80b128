// Package config loads the host configuration. Values are layered in this
// order, later layers winning: built-in defaults, the TOML config file,
// FACEKEY_* environment variables, command-line overrides.
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"

	"facekey/internal/paths"
)

// EnvPrefix marks environment variables read as configuration.
const EnvPrefix = "FACEKEY_"

// DefaultListen is the loopback address the UI connects to.
const DefaultListen = "127.0.0.1:18181"

// DefaultAllowedOrigins are the origins the desktop webview loads the UI
// from.
var DefaultAllowedOrigins = []string{
	"tauri://localhost",
	"http://tauri.localhost",
	"https://tauri.localhost",
}

// Config represents the application configuration
type Config struct {
	// DataDir holds the settings and profiles documents
	DataDir string `koanf:"data_dir"`

	// Listen is the API server address
	Listen string `koanf:"listen"`

	// Token, when set, is required as a bearer token on API requests
	Token string `koanf:"token"`

	// AllowedOrigins lists the browser origins accepted by the API. Requests
	// with any other Origin header are rejected
	AllowedOrigins []string `koanf:"allowed_origins"`

	// Tray shows the system tray icon while serving
	Tray bool `koanf:"tray"`

	Input InputConfig `koanf:"input"`
}

// InputConfig selects the input injection backend.
type InputConfig struct {
	// Backend is "auto", "xdotool" or "dryrun"
	Backend string `koanf:"backend"`
}

// Defaults returns the built-in configuration layer.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"data_dir":        paths.DataDir(),
		"listen":          DefaultListen,
		"token":           "",
		"allowed_origins": append([]string(nil), DefaultAllowedOrigins...),
		"tray":            false,
		"input.backend":   "auto",
	}
}

// Load builds the configuration. An empty path reads the default config
// file if it exists; an explicit path must exist. Keys in overrides use the
// dotted koanf form, e.g. "input.backend".
func Load(path string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load defaults")
	}

	if path == "" {
		if _, err := os.Stat(paths.ConfigFile()); err == nil {
			path = paths.ConfigFile()
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load config from %s", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load env vars")
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, "failed to load overrides")
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	if cfg.DataDir == "" {
		return nil, errors.New("data_dir must not be empty")
	}
	if cfg.Listen == "" {
		return nil, errors.New("listen must not be empty")
	}
	return &cfg, nil
}

// envKey maps FACEKEY_INPUT_BACKEND to input.backend and FACEKEY_DATA_DIR
// to data_dir.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "input_"); ok {
		return "input." + rest
	}
	return key
}
