package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/surfwave/dispersion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const twoLayerYAML = `name: two-layer
layers:
  - {alpha: 519.6, beta: 300, rho: 1800, thickness: 20}
  - {alpha: 1125.8, beta: 650, rho: 2000}
frequencies: [1, 2, 5, 10]
`

func writeModel(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

// execute runs the root command and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

func TestRoot_Table(t *testing.T) {
	stdout, stderr, err := execute(t, "--model", writeModel(t, twoLayerYAML))
	require.NoError(t, err)
	assert.Empty(t, stderr)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 5, "header plus one row per frequency")
	assert.True(t, strings.HasPrefix(lines[0], "FREQ_HZ"))
	assert.True(t, strings.HasPrefix(lines[1], "1 "))
	assert.True(t, strings.HasPrefix(lines[4], "10 "))
}

func TestRoot_YAMLWithFrequencyOverride(t *testing.T) {
	stdout, _, err := execute(t,
		"--model", writeModel(t, twoLayerYAML),
		"--freq", "0.5", "--freq", "3",
		"--output", "yaml", "--workers", "2",
	)
	require.NoError(t, err)

	var doc curveDoc
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "two-layer", doc.Model)
	require.Len(t, doc.Points, 2)
	assert.Equal(t, 0.5, doc.Points[0].Frequency)
	assert.Equal(t, 3.0, doc.Points[1].Frequency)
	assert.Greater(t, doc.Points[0].Velocity, doc.Points[1].Velocity)
	for _, p := range doc.Points {
		assert.Positive(t, p.Evaluations)
		assert.LessOrEqual(t, p.Passes, dispersion.DefaultIterations)
	}
}

func TestRoot_CSVAndPlot(t *testing.T) {
	plotPath := filepath.Join(t.TempDir(), "curve.png")
	stdout, _, err := execute(t,
		"--model", writeModel(t, twoLayerYAML),
		"--output", "csv", "--plot", plotPath,
	)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(stdout)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"frequency_hz", "velocity", "evaluations", "passes"}, rows[0])
	assert.Equal(t, "5", rows[3][0])

	info, err := os.Stat(plotPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRoot_MetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dispcurve.prom")
	_, _, err := execute(t, "--model", writeModel(t, twoLayerYAML), "--metrics-file", path)
	require.NoError(t, err)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(body)
	assert.Contains(t, text, `dispcurve_frequencies_total{result="refined"} 4`)
	assert.Contains(t, text, "dispcurve_evaluations_count 4")
	assert.Contains(t, text, "dispcurve_run_duration_seconds")

	failed := filepath.Join(t.TempDir(), "failed.prom")
	_, _, err = execute(t, "--model", writeModel(t, twoLayerYAML), "--max-steps", "1", "--metrics-file", failed)
	require.ErrorIs(t, err, dispersion.ErrNoBracket)
	body, err = os.ReadFile(failed)
	require.NoError(t, err)
	assert.Contains(t, string(body), `dispcurve_frequencies_total{result="error"} 1`)
}

func TestRoot_VerboseLogsToStderr(t *testing.T) {
	stdout, stderr, err := execute(t, "--model", writeModel(t, twoLayerYAML), "--freq", "2", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stdout, "VELOCITY")
	assert.Contains(t, stderr, "model loaded")
	assert.Contains(t, stderr, "phase velocity found")
	assert.Contains(t, stderr, "run=")
	assert.NotContains(t, stdout, "phase velocity found")
}

func TestRoot_Errors(t *testing.T) {
	path := writeModel(t, twoLayerYAML)

	_, _, err := execute(t)
	assert.Error(t, err, "--model is required")

	_, _, err = execute(t, "--model", path, "--output", "json")
	assert.ErrorContains(t, err, "invalid flags")

	_, _, err = execute(t, "--model", path, "--workers", "0")
	assert.ErrorContains(t, err, "invalid flags")

	_, _, err = execute(t, "--model", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	noFreqs := writeModel(t, "layers:\n  - {alpha: 3464, beta: 2000, rho: 2500}\n")
	_, _, err = execute(t, "--model", noFreqs)
	assert.ErrorIs(t, err, errNoFrequencies)

	_, _, err = execute(t, "--model", path, "--max-steps", "1")
	assert.ErrorIs(t, err, dispersion.ErrNoBracket)
}
