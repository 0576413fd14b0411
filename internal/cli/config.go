package cli

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	zverrors "github.com/askonen/zoomview/pkg/errors"
)

// =============================================================================
// Configuration
// =============================================================================

// Config is the optional TOML configuration for the zoomview host.
type Config struct {
	Viewer ViewerConfig `toml:"viewer"`
	Cache  CacheConfig  `toml:"cache"`
	Serve  ServeConfig  `toml:"serve"`
}

// ViewerConfig tunes the transition defaults.
type ViewerConfig struct {
	// DurationMS is the open/close transition length in milliseconds.
	DurationMS int `toml:"duration_ms"`
	// Backdrop is the hex fill color behind the fullscreen image.
	Backdrop string `toml:"backdrop"`
}

// CacheConfig selects the dimension cache backend.
type CacheConfig struct {
	// Backend is "file", "redis" or "none".
	Backend string `toml:"backend"`
	// Dir overrides the XDG cache directory for the file backend.
	Dir string `toml:"dir"`
	// RedisAddr is the host:port for the redis backend.
	RedisAddr string `toml:"redis_addr"`
}

// ServeConfig configures the HTTP host.
type ServeConfig struct {
	// Addr is the listen address.
	Addr string `toml:"addr"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Viewer: ViewerConfig{
			DurationMS: 2000,
			Backdrop:   "#000000",
		},
		Cache: CacheConfig{
			Backend:   "file",
			RedisAddr: "localhost:6379",
		},
		Serve: ServeConfig{
			Addr: ":8080",
		},
	}
}

// LoadConfig reads the TOML config at path, layered over the defaults.
// A missing file is not an error; a malformed or invalid one is.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, zverrors.Wrap(zverrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, zverrors.Wrap(zverrors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Viewer.DurationMS < 0 {
		return zverrors.New(zverrors.ErrCodeInvalidConfig, "viewer.duration_ms must be non-negative, got %d", c.Viewer.DurationMS)
	}
	if c.Viewer.Backdrop != "" && !strings.HasPrefix(c.Viewer.Backdrop, "#") {
		return zverrors.New(zverrors.ErrCodeInvalidConfig, "viewer.backdrop must be a hex color, got %q", c.Viewer.Backdrop)
	}
	switch c.Cache.Backend {
	case "", "file", "redis", "none":
	default:
		return zverrors.New(zverrors.ErrCodeInvalidConfig, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisAddr == "" {
		return zverrors.New(zverrors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
	}
	return nil
}
