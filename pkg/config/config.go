// Package config loads the optional pkgstats configuration file.
//
// The file lives at ~/.config/pkgstats/config.toml (overridable via the
// PKGSTATS_CONFIG environment variable) and tunes defaults the flags would
// otherwise set every run:
//
//	mirror_template = "http://ftp.de.debian.org/debian/dists/stable/main/Contents-<architecture>.gz"
//	top = 10
//
//	[cache]
//	backend = "file"        # file | redis | none
//	ttl = "24h"
//	redis_addr = "localhost:6379"
//
// A missing file is not an error; defaults apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Cache backend names accepted in the config file.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// DefaultTTL is how long aggregated counts stay cached when the config
// file doesn't say otherwise.
const DefaultTTL = 24 * time.Hour

// DefaultTop is the ranked-result size when neither flag nor config set one.
const DefaultTop = 10

// Duration wraps time.Duration for TOML decoding from strings like "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements toml string decoding for durations.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// CacheConfig selects and tunes the cache backend.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	TTL       Duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr"`
}

// Config is the decoded configuration file.
type Config struct {
	MirrorTemplate string      `toml:"mirror_template"`
	Top            int         `toml:"top"`
	Cache          CacheConfig `toml:"cache"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Top: DefaultTop,
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     Duration{DefaultTTL},
		},
	}
}

// Path returns the config file location: $PKGSTATS_CONFIG if set, else
// ~/.config/pkgstats/config.toml (honoring XDG_CONFIG_HOME).
func Path() (string, error) {
	if p := os.Getenv("PKGSTATS_CONFIG"); p != "" {
		return p, nil
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "pkgstats", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "pkgstats", "config.toml"), nil
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file yields [Default] without error; a present but
// malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		if path, err = Path(); err != nil {
			return cfg, nil
		}
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone, "":
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return fmt.Errorf("cache backend %q requires redis_addr", BackendRedis)
	}
	if c.Top < 0 {
		return fmt.Errorf("top must be non-negative, got %d", c.Top)
	}
	return nil
}
