package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Top != DefaultTop {
		t.Errorf("Top = %d, want %d", cfg.Top, DefaultTop)
	}
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("Backend = %q, want %q", cfg.Cache.Backend, BackendFile)
	}
	if cfg.Cache.TTL.Duration != DefaultTTL {
		t.Errorf("TTL = %v, want %v", cfg.Cache.TTL.Duration, DefaultTTL)
	}
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
mirror_template = "http://ftp.de.debian.org/debian/dists/stable/main/Contents-<architecture>.gz"
top = 25

[cache]
backend = "redis"
ttl = "2h30m"
redis_addr = "localhost:6379"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Top != 25 {
		t.Errorf("Top = %d, want 25", cfg.Top)
	}
	if cfg.MirrorTemplate == "" {
		t.Error("MirrorTemplate not decoded")
	}
	if cfg.Cache.Backend != BackendRedis {
		t.Errorf("Backend = %q, want redis", cfg.Cache.Backend)
	}
	if want := 2*time.Hour + 30*time.Minute; cfg.Cache.TTL.Duration != want {
		t.Errorf("TTL = %v, want %v", cfg.Cache.TTL.Duration, want)
	}
	if cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", cfg.Cache.RedisAddr)
	}
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `top = 5`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Top != 5 {
		t.Errorf("Top = %d, want 5", cfg.Top)
	}
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("Backend = %q, want file default", cfg.Cache.Backend)
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	path := writeConfig(t, `top = "ten"`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `mirorr_template = "typo"`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadRejectsBadBackend(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "memcached"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestLoadRejectsRedisWithoutAddr(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "redis"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for redis backend without address")
	}
}

func TestLoadRejectsNegativeTop(t *testing.T) {
	path := writeConfig(t, `top = -3`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for negative top")
	}
}

func TestPathEnvOverride(t *testing.T) {
	t.Setenv("PKGSTATS_CONFIG", "/tmp/custom.toml")

	p, err := Path()
	if err != nil {
		t.Fatalf("Path error: %v", err)
	}
	if p != "/tmp/custom.toml" {
		t.Errorf("Path = %q, want env override", p)
	}
}

func TestPathXDG(t *testing.T) {
	t.Setenv("PKGSTATS_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	p, err := Path()
	if err != nil {
		t.Fatalf("Path error: %v", err)
	}
	if p != "/xdg/pkgstats/config.toml" {
		t.Errorf("Path = %q", p)
	}
}
