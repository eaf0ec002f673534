// Package model defines the horizontally layered elastic earth model and the
// frequency list consumed by dispersion-curve solvers.
//
// A Model is a stack of N homogeneous layers, each with compressional velocity
// α, shear velocity β and density ρ. The first N−1 layers have a finite
// thickness; the last one is a semi-infinite half-space.
//
//	    free surface
//	  ─────────────────  z = 0
//	    α₀ β₀ ρ₀   d₀
//	  ─────────────────
//	    α₁ β₁ ρ₁   d₁
//	  ─────────────────
//	    αₙ βₙ ρₙ   (half-space)
//
// Units are the caller's choice but must be consistent; the solver defaults
// (floor velocity 10, step 100) assume m/s, kg/m³ and m.
package model

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for model validation.
var (
	// ErrNoLayers is returned for a model without any layer (not even a half-space).
	ErrNoLayers = errors.New("model: at least one layer (the half-space) is required")

	// ErrLengthMismatch is returned when the α/β/ρ arrays differ in length or
	// when the thickness array is not exactly one shorter.
	ErrLengthMismatch = errors.New("model: layer array lengths mismatch")

	// ErrNonPositive is returned when a velocity, density or finite thickness is ≤ 0.
	ErrNonPositive = errors.New("model: parameter must be positive")

	// ErrNonFinite is returned when a parameter is NaN or ±Inf.
	ErrNonFinite = errors.New("model: parameter must be finite")

	// ErrVelocityOrder is returned when a layer has β ≥ α.
	ErrVelocityOrder = errors.New("model: shear velocity must be below compressional velocity")

	// ErrBadFrequency is returned for a non-positive or non-finite frequency.
	ErrBadFrequency = errors.New("model: frequency must be finite and positive")
)

// Layer is one homogeneous elastic layer.
// Thickness is ignored for the last (half-space) layer of a Model.
type Layer struct {
	Alpha     float64 // compressional velocity
	Beta      float64 // shear velocity
	Rho       float64 // density
	Thickness float64 // layer thickness (finite layers only)
}

// Model is an ordered stack of layers, top first; the last layer is the half-space.
// A Model is immutable once validated and may be shared between goroutines.
type Model struct {
	Layers []Layer
}

// New builds a Model from the array form used by dispersion codes:
// N velocities/densities and N−1 thicknesses.
//
// Errors:
//   - ErrNoLayers, ErrLengthMismatch, and any error of Validate.
//
// Complexity: O(N).
func New(alphas, betas, rhos, ds []float64) (*Model, error) {
	n := len(alphas)
	if n == 0 {
		return nil, ErrNoLayers
	}
	if len(betas) != n || len(rhos) != n || len(ds) != n-1 {
		return nil, fmt.Errorf("model: α=%d β=%d ρ=%d d=%d: %w", n, len(betas), len(rhos), len(ds), ErrLengthMismatch)
	}
	m := &Model{Layers: make([]Layer, n)}
	for i := 0; i < n; i++ {
		m.Layers[i] = Layer{Alpha: alphas[i], Beta: betas[i], Rho: rhos[i]}
		if i < n-1 {
			m.Layers[i].Thickness = ds[i]
		}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// Validate checks every layer.
//
// Contract:
//   - at least one layer;
//   - α, β, ρ finite and > 0 with β < α;
//   - finite layers (all but the last) have finite thickness > 0.
//
// The first offending layer is reported as "layer i: <field>: <sentinel>".
func (m *Model) Validate() error {
	if m == nil || len(m.Layers) == 0 {
		return ErrNoLayers
	}
	last := len(m.Layers) - 1
	for i, l := range m.Layers {
		if err := checkPositive(i, "alpha", l.Alpha); err != nil {
			return err
		}
		if err := checkPositive(i, "beta", l.Beta); err != nil {
			return err
		}
		if err := checkPositive(i, "rho", l.Rho); err != nil {
			return err
		}
		if l.Beta >= l.Alpha {
			return fmt.Errorf("layer %d: beta=%g alpha=%g: %w", i, l.Beta, l.Alpha, ErrVelocityOrder)
		}
		if i < last {
			if err := checkPositive(i, "thickness", l.Thickness); err != nil {
				return err
			}
		}
	}

	return nil
}

func checkPositive(i int, field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("layer %d: %s: %w", i, field, ErrNonFinite)
	}
	if v <= 0 {
		return fmt.Errorf("layer %d: %s=%g: %w", i, field, v, ErrNonPositive)
	}

	return nil
}

// N returns the number of layers including the half-space.
func (m *Model) N() int { return len(m.Layers) }

// HalfSpace returns the bottom layer.
func (m *Model) HalfSpace() Layer { return m.Layers[len(m.Layers)-1] }

// Alphas returns a copy of the compressional velocities.
func (m *Model) Alphas() []float64 { return m.column(func(l Layer) float64 { return l.Alpha }, 0) }

// Betas returns a copy of the shear velocities.
func (m *Model) Betas() []float64 { return m.column(func(l Layer) float64 { return l.Beta }, 0) }

// Rhos returns a copy of the densities.
func (m *Model) Rhos() []float64 { return m.column(func(l Layer) float64 { return l.Rho }, 0) }

// Thicknesses returns a copy of the N−1 finite-layer thicknesses.
func (m *Model) Thicknesses() []float64 {
	return m.column(func(l Layer) float64 { return l.Thickness }, 1)
}

func (m *Model) column(get func(Layer) float64, drop int) []float64 {
	out := make([]float64, 0, len(m.Layers))
	for _, l := range m.Layers[:len(m.Layers)-drop] {
		out = append(out, get(l))
	}

	return out
}

// ValidateFrequencies checks that every frequency is finite and > 0.
// An empty list is valid.
func ValidateFrequencies(freqs []float64) error {
	for i, f := range freqs {
		if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
			return fmt.Errorf("frequency[%d]=%g: %w", i, f, ErrBadFrequency)
		}
	}

	return nil
}
