// Package cli implements the polycalc command-line interface.
//
// This package provides one-shot commands for factoring, differentiating,
// integrating and evaluating polynomials, an interactive REPL (line-based or
// a bubbletea TUI), and a command that serves the HTTP API. The CLI is built
// using cobra and logs via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - factor, derive, integrate, eval: run a single request
//   - repl: read requests interactively (--tui for the full-screen UI)
//   - serve: run the HTTP API
//   - config: print the effective configuration
//
// Running polycalc with no arguments starts the REPL; running it with
// arguments treats them as one line of input.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so commands and hooks share one logger.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/polycalc/pkg/config"
	"github.com/matzehuels/polycalc/pkg/observability"
	"github.com/matzehuels/polycalc/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "polycalc"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// In and Out are the REPL's input and the destination for results.
	In  io.Reader
	Out io.Writer

	// Flag values shared by every command.
	configPath string
	seed       int64
	iterations int

	cfg *config.Config
}

// New creates a new CLI instance with a default logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the config file and applies flag overrides. It lowers the
// log level when the config asks for more detail than the flags did.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.seed != 0 {
		cfg.Engine.Seed = c.seed
	}
	if c.iterations != 0 {
		cfg.Engine.Iterations = c.iterations
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if level := parseLevel(cfg.Log.Level); level < c.Logger.GetLevel() {
		c.Logger.SetLevel(level)
	}
	c.cfg = cfg
	return nil
}

// settings returns the loaded configuration, or the defaults before loading.
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		return config.Default()
	}
	return c.cfg
}

// installHooks routes observability events to the CLI logger.
func (c *CLI) installHooks() {
	h := &logHooks{logger: c.Logger}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner from the effective configuration,
// backed by the configured factorization cache.
func (c *CLI) newRunner() (*pipeline.Runner, error) {
	cfg := c.settings()
	opts := cfg.PipelineOptions()

	store, err := cfg.NewCache()
	if err != nil {
		return nil, err
	}
	opts.Cache = store
	return pipeline.NewRunner(opts, c.Logger)
}
