package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/polycalc/pkg/errors"
	"github.com/matzehuels/polycalc/pkg/observability"
)

// execute runs the root command with args and an isolated config directory.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(observability.Reset)

	var out, logs bytes.Buffer
	c := New(&logs, LogInfo)
	c.In = strings.NewReader(stdin)
	c.Out = &out

	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&logs)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandTree(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"factor", "derive", "integrate", "eval", "repl", "serve", "config", "completion"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"config", "seed", "iterations"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "missing --%s", flag)
	}
}

func TestOneShotCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"factor", []string{"--seed", "42", "factor", "x^2 + 3x + 2"}, []string{"(x + 1)", "(x + 2)"}},
		{"factor words", []string{"--seed", "42", "factor", "x^2", "-", "1"}, []string{"(x - 1)", "(x + 1)"}},
		{"derive", []string{"derive", "x^3 - x"}, []string{"3x^2 - 1"}},
		{"derive alias", []string{"d", "x^2"}, []string{"2x"}},
		{"integrate", []string{"integrate", "3x^2 + 2"}, []string{"x^3 + 2x + c"}},
		{"eval", []string{"eval", "x^2 - 1", "--at", "3"}, []string{"8"}},
		{"eval fraction", []string{"eval", "4x", "--at", "1/2"}, []string{"2"}},
		{"root line", []string{"--seed", "1", "x^2 - 1 at 3"}, []string{"8"}},
		{"root factor", []string{"--seed", "1", "2x + 4"}, []string{"2(x + 2)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestFactorDetail(t *testing.T) {
	out, err := execute(t, "", "--seed", "3", "factor", "--detail", "2x^2 - 2")
	require.NoError(t, err)
	assert.Contains(t, out, "leading")
	assert.Contains(t, out, "residual")
	assert.Contains(t, out, "→")
}

func TestCommandErrors(t *testing.T) {
	_, err := execute(t, "", "factor", "x^")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeParse))

	_, err = execute(t, "", "eval", "x^2")
	require.Error(t, err, "--at is required")

	_, err = execute(t, "", "--iterations", "-1", "factor", "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

func TestConfigCommand(t *testing.T) {
	out, err := execute(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "[engine]")
	assert.Contains(t, out, "[server]")
	assert.Contains(t, out, "iterations = 100")

	out, err = execute(t, "", "--seed", "9", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "seed = 9")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polycalc.toml")
	require.NoError(t, os.WriteFile(path, []byte("[engine]\niterations = 150\n"), 0o644))

	out, err := execute(t, "", "--config", path, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "iterations = 150")

	_, err = execute(t, "", "--config", filepath.Join(t.TempDir(), "missing.toml"), "config")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

func TestConfigPathCommand(t *testing.T) {
	out, err := execute(t, "", "config", "path")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), filepath.Join("polycalc", "config.toml")))
}

func TestRootWithoutArgsStartsREPL(t *testing.T) {
	out, err := execute(t, "derive x^2\nquit\n", "--seed", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "2x")
}

func TestCompletionCommand(t *testing.T) {
	for shell := range shells {
		out, err := execute(t, "", "completion", shell)
		require.NoError(t, err, shell)
		assert.Contains(t, out, "polycalc", shell)
	}

	_, err := execute(t, "", "completion", "tcsh")
	assert.Error(t, err)
}
