package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poisson-lab/internal/arrival"
	"poisson-lab/internal/config"
	"poisson-lab/internal/gof"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 2, exitCode(fmt.Errorf("wrapped: %w", arrival.ErrInvalidParameter)))
	assert.Equal(t, 2, exitCode(gof.ErrInvalidParameter))
	assert.Equal(t, 1, exitCode(gof.ErrInsufficientData))
	assert.Equal(t, 1, exitCode(arrival.ErrGenerationTimeout))
}

func TestInvalidConfigExitsWithTwo(t *testing.T) {
	tests := []struct {
		name    string
		command string
		content string
	}{
		{"negative rate", "generate", "process:\n  rate: -1\n"},
		{"alpha above one", "validate", "validation:\n  alpha: 1.5\n"},
		{"zero service rate", "queue", "service:\n  rate: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := execute(t, tt.command, "--config", path)
			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrInvalid)
			assert.Equal(t, 2, exitCode(err))
		})
	}
}

func TestFlagDefaultsMatchConfig(t *testing.T) {
	defaults := config.Default()
	flags := rootCmd.PersistentFlags()

	horizon, err := strconv.ParseFloat(flags.Lookup("horizon").DefValue, 64)
	require.NoError(t, err)
	assert.Equal(t, defaults.Process.Horizon, horizon)

	alpha, err := strconv.ParseFloat(flags.Lookup("alpha").DefValue, 64)
	require.NoError(t, err)
	assert.Equal(t, defaults.Validation.Alpha, alpha)
}

func TestMissingConfigExitsWithOne(t *testing.T) {
	_, err := execute(t, "generate", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lab.yaml")
	content := fmt.Sprintf(`
random:
  seed: 5
process:
  rate: 2
  horizon: 50
experiment:
  replications: 2
output:
  report_file: %s
log:
  level: error
`, filepath.Join(dir, "report.md"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	out, err := execute(t, "generate", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Arrivals:")

	out, err = execute(t, "validate", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Degrees of Freedom:")

	out, err = execute(t, "queue", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, ">>> Jobs")
	assert.Contains(t, out, "Utilization:")

	out, err = execute(t, "run", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Report saved to:")
	_, err = os.Stat(filepath.Join(dir, "report.md"))
	assert.NoError(t, err)

	out, err = execute(t, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "seed: 5")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "init.yaml")
	out, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
