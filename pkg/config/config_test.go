package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/polycalc/pkg/cache"
	"github.com/matzehuels/polycalc/pkg/errors"
	"github.com/matzehuels/polycalc/pkg/pipeline"
)

// isolate points the default config path at an empty directory and clears
// the POLYCALC_* variables.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{EnvSeed, EnvIterations, EnvAddr, EnvLogLevel, EnvCacheDir} {
		t.Setenv(k, "")
	}
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, pipeline.DefaultIterations, cfg.Engine.Iterations)
	assert.Equal(t, pipeline.DefaultInitRange, cfg.Engine.InitRange)
	assert.Equal(t, pipeline.DefaultTolerance, cfg.Engine.Tolerance)
	assert.Equal(t, pipeline.DefaultRootPrecision, cfg.Engine.RootPrecision)
	assert.Equal(t, pipeline.DefaultMaxDegree, cfg.Engine.MaxDegree)
	assert.Equal(t, int64(0), cfg.Engine.Seed)
	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, int64(DefaultMaxBodyBytes), cfg.Server.MaxBodyBytes)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultCacheSize, cfg.Cache.Size)
	assert.False(t, cfg.Cache.Disabled)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "polycalc", "config.toml"), DefaultPath())
}

func TestLoadMissingDefaultIsNotAnError(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "got %v", err)
}

func TestLoadTOML(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "config.toml", `
[engine]
iterations = 250
seed = 7
root_precision = 1e-8

[server]
addr = "127.0.0.1:9000"
read_timeout_seconds = 3

[log]
level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Engine.Iterations)
	assert.Equal(t, int64(7), cfg.Engine.Seed)
	assert.Equal(t, 1e-8, cfg.Engine.RootPrecision)
	assert.Equal(t, pipeline.DefaultInitRange, cfg.Engine.InitRange)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout())
	assert.Equal(t, time.Duration(DefaultWriteTimeoutSeconds)*time.Second, cfg.Server.WriteTimeout())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadYAML(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "config.yaml", `
engine:
  iterations: 80
  init_range: 4.5
  max_degree: 32
server:
  max_body_bytes: 2048
log:
  level: warn
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.Engine.Iterations)
	assert.Equal(t, 4.5, cfg.Engine.InitRange)
	assert.Equal(t, 32, cfg.Engine.MaxDegree)
	assert.Equal(t, int64(2048), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadDefaultPathFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, filepath.Join("polycalc", "config.toml"), "[engine]\nseed = 99\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(99), cfg.Engine.Seed)
}

func TestLoadRejectsBadFiles(t *testing.T) {
	dir := isolate(t)

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml syntax", "bad.toml", "[engine\niterations = 1"},
		{"yaml syntax", "bad.yaml", "engine: [unclosed"},
		{"unknown extension", "config.json", "{}"},
		{"negative iterations", "neg.toml", "[engine]\niterations = -1"},
		{"bad level", "level.toml", "[log]\nlevel = \"loud\""},
		{"negative range", "range.yml", "engine:\n  init_range: -2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			_, err := Load(path)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "got %v", err)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "config.toml", "[engine]\nseed = 1\niterations = 10\n")

	t.Setenv(EnvSeed, "12345")
	t.Setenv(EnvIterations, "300")
	t.Setenv(EnvAddr, ":9999")
	t.Setenv(EnvLogLevel, "DEBUG")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), cfg.Engine.Seed)
	assert.Equal(t, 300, cfg.Engine.Iterations)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestEnvOverridesRejectGarbage(t *testing.T) {
	isolate(t)

	t.Setenv(EnvSeed, "abc")
	_, err := Load("")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "got %v", err)

	t.Setenv(EnvSeed, "")
	t.Setenv(EnvIterations, "1.5")
	_, err = Load("")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "got %v", err)
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Engine.Seed = 42

	var buf bytes.Buffer
	require.NoError(t, cfg.Encode(&buf))
	assert.Contains(t, buf.String(), "[engine]")
	assert.Contains(t, buf.String(), "seed = 42")

	var back Config
	_, err := toml.Decode(buf.String(), &back)
	require.NoError(t, err)
	assert.Equal(t, *cfg, back)
}

func TestPipelineOptions(t *testing.T) {
	cfg := Default()
	cfg.Engine.Seed = 5

	opts := cfg.PipelineOptions()
	assert.Equal(t, cfg.Engine.Iterations, opts.Iterations)
	assert.Equal(t, int64(5), opts.Seed)

	_, err := pipeline.NewRunner(opts, nil)
	assert.NoError(t, err)
}

func TestNewCache(t *testing.T) {
	cfg := Default()
	c, err := cfg.NewCache()
	require.NoError(t, err)
	assert.IsType(t, &cache.MemoryCache{}, c)

	cfg.Cache.Disabled = true
	c, err = cfg.NewCache()
	require.NoError(t, err)
	assert.IsType(t, cache.NullCache{}, c)

	cfg = Default()
	cfg.Cache.Dir = filepath.Join(t.TempDir(), "results")
	c, err = cfg.NewCache()
	require.NoError(t, err)
	assert.IsType(t, &cache.FileCache{}, c)
	assert.DirExists(t, cfg.Cache.Dir)
}

func TestNewCacheExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := Default()
	cfg.Cache.Dir = "~/.cache/polycalc"
	_, err := cfg.NewCache()
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(home, ".cache", "polycalc"))
}

func TestCacheSettings(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "config.toml", "[cache]\nsize = 16\nttl_seconds = 90\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Cache.Size)
	assert.Equal(t, 90*time.Second, cfg.PipelineOptions().CacheTTL)

	t.Setenv(EnvCacheDir, filepath.Join(dir, "c"))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "c"), cfg.Cache.Dir)

	cfg.Cache.TTLSeconds = -1
	assert.True(t, errors.Is(cfg.Validate(), errors.ErrCodeInvalidConfig))
}
