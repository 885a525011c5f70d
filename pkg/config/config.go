// Package config loads polycalc settings from TOML or YAML files and the
// environment.
//
// Settings are layered: built-in defaults, then the config file, then
// POLYCALC_* environment variables, then command-line flags (applied by the
// CLI). The default file is $XDG_CONFIG_HOME/polycalc/config.toml, falling
// back to ~/.config/polycalc/config.toml; it is optional.
//
// Example config.toml:
//
//	[engine]
//	iterations = 200
//	seed = 42
//
//	[server]
//	addr = ":8080"
//
//	[cache]
//	size = 512
//	dir = "~/.cache/polycalc"
//
//	[log]
//	level = "debug"
package config

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/polycalc/pkg/cache"
	"github.com/matzehuels/polycalc/pkg/errors"
	"github.com/matzehuels/polycalc/pkg/pipeline"
)

// Environment variables that override file settings.
const (
	EnvSeed       = "POLYCALC_SEED"
	EnvIterations = "POLYCALC_ITERATIONS"
	EnvAddr       = "POLYCALC_ADDR"
	EnvLogLevel   = "POLYCALC_LOG_LEVEL"
	EnvCacheDir   = "POLYCALC_CACHE_DIR"
)

// Server defaults.
const (
	DefaultAddr                = ":8080"
	DefaultReadTimeoutSeconds  = 10
	DefaultWriteTimeoutSeconds = 30
	DefaultMaxBodyBytes        = 1 << 20
)

// DefaultCacheSize bounds the in-memory factorization cache.
const DefaultCacheSize = cache.DefaultMemoryEntries

// DefaultLogLevel is used when no level is configured.
const DefaultLogLevel = "info"

// validLevels lists the accepted log levels.
var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Config holds the complete application configuration.
type Config struct {
	Engine EngineConfig `toml:"engine" yaml:"engine"`
	Server ServerConfig `toml:"server" yaml:"server"`
	Cache  CacheConfig  `toml:"cache" yaml:"cache"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// EngineConfig holds root-finding settings.
type EngineConfig struct {
	Iterations    int     `toml:"iterations" yaml:"iterations"`
	InitRange     float64 `toml:"init_range" yaml:"init_range"`
	Tolerance     float64 `toml:"tolerance" yaml:"tolerance"`
	RootPrecision float64 `toml:"root_precision" yaml:"root_precision"`
	Seed          int64   `toml:"seed" yaml:"seed"`
	MaxDegree     int     `toml:"max_degree" yaml:"max_degree"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr                string `toml:"addr" yaml:"addr"`
	ReadTimeoutSeconds  int    `toml:"read_timeout_seconds" yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `toml:"write_timeout_seconds" yaml:"write_timeout_seconds"`
	MaxBodyBytes        int64  `toml:"max_body_bytes" yaml:"max_body_bytes"`
}

// CacheConfig holds factorization cache settings. With Dir set, results are
// kept on disk and shared between runs; otherwise they live in memory for
// the lifetime of the process.
type CacheConfig struct {
	Disabled   bool   `toml:"disabled" yaml:"disabled"`
	Size       int    `toml:"size" yaml:"size"`
	TTLSeconds int    `toml:"ttl_seconds" yaml:"ttl_seconds"`
	Dir        string `toml:"dir" yaml:"dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "polycalc", "config.toml")
}

// Load reads the config file at path, applies defaults and environment
// overrides, and validates the result. An empty path loads DefaultPath if it
// exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}

	cfg := &Config{}
	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyDefaults()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	case ".toml", "":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (use .toml or .yaml)", filepath.Ext(path))
	}
	return nil
}

// applyDefaults sets default values for missing configuration.
func (c *Config) applyDefaults() {
	// Engine
	if c.Engine.Iterations == 0 {
		c.Engine.Iterations = pipeline.DefaultIterations
	}
	if c.Engine.InitRange == 0 {
		c.Engine.InitRange = pipeline.DefaultInitRange
	}
	if c.Engine.Tolerance == 0 {
		c.Engine.Tolerance = pipeline.DefaultTolerance
	}
	if c.Engine.RootPrecision == 0 {
		c.Engine.RootPrecision = pipeline.DefaultRootPrecision
	}
	if c.Engine.MaxDegree == 0 {
		c.Engine.MaxDegree = pipeline.DefaultMaxDegree
	}

	// Server
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = DefaultReadTimeoutSeconds
	}
	if c.Server.WriteTimeoutSeconds == 0 {
		c.Server.WriteTimeoutSeconds = DefaultWriteTimeoutSeconds
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}

	// Cache
	if c.Cache.Size == 0 {
		c.Cache.Size = DefaultCacheSize
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// applyEnv overrides settings from environment variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", EnvSeed)
		}
		c.Engine.Seed = seed
	}
	if v, ok := lookup(EnvIterations); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", EnvIterations)
		}
		c.Engine.Iterations = n
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Server.Addr = v
	}
	if v, ok := lookup(EnvCacheDir); ok && v != "" {
		c.Cache.Dir = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	return nil
}

// Validate rejects settings that cannot be used.
func (c *Config) Validate() error {
	if c.Engine.Iterations < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "engine.iterations must be non-negative, got %d", c.Engine.Iterations)
	}
	if c.Engine.InitRange <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "engine.init_range must be positive, got %g", c.Engine.InitRange)
	}
	if c.Engine.Tolerance <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "engine.tolerance must be positive, got %g", c.Engine.Tolerance)
	}
	if c.Engine.RootPrecision <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "engine.root_precision must be positive, got %g", c.Engine.RootPrecision)
	}
	if c.Engine.MaxDegree < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "engine.max_degree must be at least 1, got %d", c.Engine.MaxDegree)
	}
	if c.Server.ReadTimeoutSeconds < 0 || c.Server.WriteTimeoutSeconds < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server timeouts must be non-negative")
	}
	if c.Server.MaxBodyBytes < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body_bytes must be non-negative, got %d", c.Server.MaxBodyBytes)
	}
	if c.Cache.Size < 0 || c.Cache.TTLSeconds < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.size and cache.ttl_seconds must be non-negative")
	}
	if !validLevels[c.Log.Level] {
		return errors.New(errors.ErrCodeInvalidConfig, "log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}
	return nil
}

// Encode writes the configuration as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// PipelineOptions converts the engine settings to runner options. The cache
// itself is opened separately with NewCache.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Iterations:    c.Engine.Iterations,
		InitRange:     c.Engine.InitRange,
		Tolerance:     c.Engine.Tolerance,
		RootPrecision: c.Engine.RootPrecision,
		MaxDegree:     c.Engine.MaxDegree,
		Seed:          c.Engine.Seed,
		CacheTTL:      c.Cache.TTL(),
	}
}

// NewCache opens the configured factorization cache. A leading "~/" in Dir
// expands to the home directory.
func (c *Config) NewCache() (cache.Cache, error) {
	switch {
	case c.Cache.Disabled:
		return cache.NewNullCache(), nil
	case c.Cache.Dir != "":
		dir := c.Cache.Dir
		if rest, ok := strings.CutPrefix(dir, "~/"); ok {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache.dir")
			}
			dir = filepath.Join(home, rest)
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache.dir %q", c.Cache.Dir)
		}
		return fc, nil
	default:
		return cache.NewMemoryCache(c.Cache.Size), nil
	}
}

// TTL returns how long cached factorizations are reused.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// ReadTimeout returns the server read timeout.
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the server write timeout.
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}
