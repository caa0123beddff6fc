package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Smooth.Method == "" {
		t.Error("default method should be set")
	}
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("default backend = %q, want %q", cfg.Cache.Backend, BackendFile)
	}
	if cfg.Smooth.Omega != 1.0 {
		t.Errorf("default omega = %g, want 1.0", cfg.Smooth.Omega)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[smooth]
method = "cvt-full"
tol = 1e-8

[cache]
backend = "redis"

[cache.redis]
addr = "cache.internal:6379"
db = 3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := loadConfigFile(path)

	if cfg.Smooth.Method != "cvt-full" {
		t.Errorf("method = %q, want cvt-full", cfg.Smooth.Method)
	}
	if cfg.Smooth.Tol != 1e-8 {
		t.Errorf("tol = %g, want 1e-8", cfg.Smooth.Tol)
	}
	// Unset fields keep defaults
	if cfg.Smooth.MaxSteps != DefaultConfig().Smooth.MaxSteps {
		t.Errorf("max_steps should keep default, got %d", cfg.Smooth.MaxSteps)
	}
	if cfg.Cache.Backend != BackendRedis {
		t.Errorf("backend = %q, want redis", cfg.Cache.Backend)
	}
	if cfg.Cache.Redis.Addr != "cache.internal:6379" || cfg.Cache.Redis.DB != 3 {
		t.Errorf("redis config not applied: %+v", cfg.Cache.Redis)
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	cfg := loadConfigFile(filepath.Join(t.TempDir(), "nope.toml"))
	if cfg != DefaultConfig() {
		t.Errorf("missing file should return defaults, got %+v", cfg)
	}
}

func TestLoadConfigFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := loadConfigFile(path)
	if cfg != DefaultConfig() {
		t.Errorf("malformed file should return defaults, got %+v", cfg)
	}
}

func TestLoadConfigFileBadBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"memcached\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := loadConfigFile(path)
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("unknown backend should fall back to file, got %q", cfg.Cache.Backend)
	}
}
