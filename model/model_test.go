package model_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/surfwave/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew_TwoLayer builds the array form and reads it back through accessors.
func TestNew_TwoLayer(t *testing.T) {
	m, err := model.New(
		[]float64{519.6, 1125.8},
		[]float64{300, 650},
		[]float64{1800, 2000},
		[]float64{20},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, m.N())
	assert.Equal(t, []float64{519.6, 1125.8}, m.Alphas())
	assert.Equal(t, []float64{300, 650}, m.Betas())
	assert.Equal(t, []float64{1800, 2000}, m.Rhos())
	assert.Equal(t, []float64{20}, m.Thicknesses())
	assert.Equal(t, 650.0, m.HalfSpace().Beta)
}

// TestNew_HalfSpaceOnly accepts N=1 with an empty thickness list.
func TestNew_HalfSpaceOnly(t *testing.T) {
	m, err := model.New([]float64{3464.1}, []float64{2000}, []float64{2500}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, m.N())
	assert.Empty(t, m.Thicknesses())
}

// TestNew_Errors walks the validation sentinels.
func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name                    string
		alphas, betas, rhos, ds []float64
		want                    error
	}{
		{"empty", nil, nil, nil, nil, model.ErrNoLayers},
		{"short beta", []float64{2, 2}, []float64{1}, []float64{1, 1}, []float64{1}, model.ErrLengthMismatch},
		{"thickness count", []float64{2, 2}, []float64{1, 1}, []float64{1, 1}, []float64{1, 1}, model.ErrLengthMismatch},
		{"zero rho", []float64{2}, []float64{1}, []float64{0}, nil, model.ErrNonPositive},
		{"nan alpha", []float64{math.NaN()}, []float64{1}, []float64{1}, nil, model.ErrNonFinite},
		{"beta above alpha", []float64{1}, []float64{2}, []float64{1}, nil, model.ErrVelocityOrder},
		{"zero thickness", []float64{2, 2}, []float64{1, 1}, []float64{1, 1}, []float64{0}, model.ErrNonPositive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.New(tt.alphas, tt.betas, tt.rhos, tt.ds)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// TestValidate_NilModel ensures a nil model is reported, not dereferenced.
func TestValidate_NilModel(t *testing.T) {
	var m *model.Model
	assert.ErrorIs(t, m.Validate(), model.ErrNoLayers)
}

// TestValidateFrequencies rejects zero, negative and non-finite frequencies.
func TestValidateFrequencies(t *testing.T) {
	assert.NoError(t, model.ValidateFrequencies(nil))
	assert.NoError(t, model.ValidateFrequencies([]float64{0.5, 10}))
	assert.ErrorIs(t, model.ValidateFrequencies([]float64{1, 0}), model.ErrBadFrequency)
	assert.ErrorIs(t, model.ValidateFrequencies([]float64{-1}), model.ErrBadFrequency)
	assert.ErrorIs(t, model.ValidateFrequencies([]float64{math.Inf(1)}), model.ErrBadFrequency)
}
