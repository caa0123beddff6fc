package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/IamSagarRai/optimesh/pkg/pipeline"
)

// Cache backend identifiers for the config file.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config holds user preferences loaded from ~/.config/optimesh/config.toml.
//
// Example config:
//
//	[smooth]
//	method = "cvt-full"
//	tol = 1e-6
//	max_steps = 200
//
//	[cache]
//	backend = "redis"
//
//	[cache.redis]
//	addr = "localhost:6379"
//	db = 2
type Config struct {
	Smooth SmoothConfig `toml:"smooth"`
	Cache  CacheConfig  `toml:"cache"`
}

// SmoothConfig sets default smoothing parameters.
type SmoothConfig struct {
	Method   string  `toml:"method"`
	Tol      float64 `toml:"tol"`
	MaxSteps int     `toml:"max_steps"`
	Omega    float64 `toml:"omega"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend string      `toml:"backend"`
	Redis   RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Smooth: SmoothConfig{
			Method:   pipeline.DefaultMethod,
			Tol:      pipeline.DefaultTol,
			MaxSteps: pipeline.DefaultMaxSteps,
			Omega:    1.0,
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
	}
}

// LoadConfig reads the user config file, falling back to defaults when the
// file is missing or malformed. A malformed file is ignored rather than
// failing the whole CLI.
func LoadConfig() Config {
	path, err := configPath()
	if err != nil {
		return DefaultConfig()
	}
	return loadConfigFile(path)
}

// loadConfigFile parses a single TOML config file on top of the defaults.
func loadConfigFile(path string) Config {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); err != nil {
		return cfg
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultConfig()
	}
	if !validBackend(cfg.Cache.Backend) {
		cfg.Cache.Backend = BackendFile
	}
	return cfg
}

func validBackend(b string) bool {
	return b == BackendFile || b == BackendRedis || b == BackendNone
}

// configPath returns the config file path using XDG standard
// (~/.config/optimesh/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
