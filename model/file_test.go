package model_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/surfwave/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoLayerYAML = `
name: two-layer
layers:
  - {alpha: 519.6, beta: 300, rho: 1800, thickness: 20}
  - {alpha: 1125.8, beta: 650, rho: 2000}
frequencies: [1, 2, 5, 10]
`

// TestDecode_TwoLayer parses a well-formed file and converts it to a Model.
func TestDecode_TwoLayer(t *testing.T) {
	f, err := model.Decode(strings.NewReader(twoLayerYAML))
	require.NoError(t, err)
	assert.Equal(t, "two-layer", f.Name)
	assert.Equal(t, []float64{1, 2, 5, 10}, f.Frequencies)

	m, err := f.Model()
	require.NoError(t, err)
	assert.Equal(t, 2, m.N())
	assert.Equal(t, []float64{20}, m.Thicknesses())
}

// TestDecode_Invalid covers struct-tag validation and unknown fields.
func TestDecode_Invalid(t *testing.T) {
	_, err := model.Decode(strings.NewReader("layers: []\n"))
	assert.ErrorIs(t, err, model.ErrInvalidFile)

	_, err = model.Decode(strings.NewReader("layers:\n  - {alpha: 1, beta: 2, rho: 1}\n"))
	assert.ErrorIs(t, err, model.ErrInvalidFile, "beta above alpha must fail gtfield")

	_, err = model.Decode(strings.NewReader("layers:\n  - {alpha: 2, beta: 1, rho: 1}\nfrequencies: [1, -2]\n"))
	assert.ErrorIs(t, err, model.ErrInvalidFile)

	_, err = model.Decode(strings.NewReader("layers:\n  - {alpha: 2, beta: 1, rho: 1, vp: 3}\n"))
	assert.Error(t, err, "unknown keys are rejected")
}

// TestFile_ModelMissingThickness reports a finite layer without thickness.
func TestFile_ModelMissingThickness(t *testing.T) {
	f, err := model.Decode(strings.NewReader("layers:\n  - {alpha: 2, beta: 1, rho: 1}\n  - {alpha: 4, beta: 2, rho: 1}\n"))
	require.NoError(t, err)
	_, err = f.Model()
	assert.ErrorIs(t, err, model.ErrNonPositive)
}

// TestEncodeLoad_RoundTrip writes a model to disk and loads it back.
func TestEncodeLoad_RoundTrip(t *testing.T) {
	m, err := model.New([]float64{519.6, 1125.8}, []float64{300, 650}, []float64{1800, 2000}, []float64{20})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, model.Encode(&buf, "rt", m, []float64{1, 2}))

	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	f, err := model.Load(path)
	require.NoError(t, err)
	got, err := f.Model()
	require.NoError(t, err)
	assert.Equal(t, m.Layers, got.Layers)
	assert.Equal(t, []float64{1, 2}, f.Frequencies)
}

// TestLoad_MissingFile wraps the os error.
func TestLoad_MissingFile(t *testing.T) {
	_, err := model.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
