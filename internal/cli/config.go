package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Cache backend names accepted in the config file.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Config holds the user-tunable settings, read from a TOML file.
//
// Example ~/.courseflow.toml:
//
//	base_url = "https://api.university.example"
//	cache_backend = "redis"
//	redis_addr = "localhost:6379"
//	cache_ttl_minutes = 120
type Config struct {
	// BaseURL is the catalog API root.
	BaseURL string `toml:"base_url"`

	// CacheBackend selects the cache: "file" (default), "redis", or "none".
	CacheBackend string `toml:"cache_backend"`

	// CacheDir overrides the default ~/.cache/courseflow directory.
	CacheDir string `toml:"cache_dir"`

	// RedisAddr is the host:port of the Redis cache backend.
	RedisAddr string `toml:"redis_addr"`

	// MongoURI enables the MongoDB metadata store when set.
	MongoURI string `toml:"mongo_uri"`

	// CacheTTLMinutes is the cache entry lifetime in minutes.
	CacheTTLMinutes int `toml:"cache_ttl_minutes"`

	// Direction is the default layout direction (TB, BT, LR, RL).
	Direction string `toml:"direction"`

	// ListenAddr is the default bind address for the serve command.
	ListenAddr string `toml:"listen_addr"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		BaseURL:         "http://localhost:8000",
		CacheBackend:    CacheBackendFile,
		RedisAddr:       "localhost:6379",
		CacheTTLMinutes: 60,
		Direction:       "LR",
		ListenAddr:      ":8080",
	}
}

// CacheTTL returns the configured TTL as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// LoadConfig reads the config from path, or from ~/.courseflow.toml when
// path is empty. A missing file is not an error: defaults apply, and any
// fields present in the file override them.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(home, "."+appName+".toml")
	}

	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return DefaultConfig(), nil
		}
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.CacheBackend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return fmt.Errorf("invalid cache_backend: %q (must be 'file', 'redis', or 'none')", c.CacheBackend)
	}
	if c.CacheTTLMinutes < 0 {
		return fmt.Errorf("cache_ttl_minutes must not be negative, got %d", c.CacheTTLMinutes)
	}
	return nil
}
