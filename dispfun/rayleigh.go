package dispfun

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/katalvlaran/surfwave/matrix"
	"github.com/katalvlaran/surfwave/model"
)

// Sentinel errors returned by Evaluate and NewRayleigh.
var (
	// ErrBadFrequency is returned for a non-positive or non-finite angular frequency.
	ErrBadFrequency = errors.New("dispfun: angular frequency must be finite and positive")

	// ErrBadVelocity is returned for a non-positive or non-finite trial velocity.
	ErrBadVelocity = errors.New("dispfun: phase velocity must be finite and positive")

	// ErrScaleLength is returned when the caller's scale buffer is not ScaleLen long.
	ErrScaleLength = errors.New("dispfun: scale buffer length mismatch")

	// ErrScaleOverflow is returned when a layer growth factor exp(2·ν·h) exceeds
	// float64 range; raise the lowest trial velocity or split the layer.
	ErrScaleOverflow = errors.New("dispfun: layer scale factor overflows float64")
)

// maxExponent keeps exp(maxExponent) comfortably below math.MaxFloat64.
const maxExponent = 700.0

// layer holds the precomputed elastic constants of one layer.
type layer struct {
	alpha2, beta2 float64 // α², β²
	rho           float64 // ρ
	mu            float64 // μ = ρβ²
	lambda        float64 // λ = ρ(α² − 2β²)
	modulus       float64 // λ + 2μ = ρα²
	h             float64 // thickness (0 for the half-space)
}

func newLayer(l model.Layer) layer {
	a2, b2 := l.Alpha*l.Alpha, l.Beta*l.Beta
	mu := l.Rho * b2
	return layer{
		alpha2:  a2,
		beta2:   b2,
		rho:     l.Rho,
		mu:      mu,
		lambda:  l.Rho * (a2 - 2*b2),
		modulus: l.Rho * a2,
		h:       l.Thickness,
	}
}

// Rayleigh evaluates the fundamental P-SV secular function of one model.
type Rayleigh struct {
	layers []layer // finite layers, top first
	half   layer   // half-space
	muRef  float64 // stress normalisation (half-space μ)
}

// NewRayleigh validates m and precomputes its layer constants.
func NewRayleigh(m *model.Model) (*Rayleigh, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("dispfun: %w", err)
	}
	n := m.N()
	r := &Rayleigh{layers: make([]layer, n-1)}
	for i := 0; i < n-1; i++ {
		r.layers[i] = newLayer(m.Layers[i])
	}
	hs := m.HalfSpace()
	r.half = newLayer(hs)
	r.muRef = r.half.mu

	return r, nil
}

// ScaleLen returns N−1, the number of finite layers.
func (r *Rayleigh) ScaleLen() int { return len(r.layers) }

// Evaluate returns the scaled secular function at (omega, c) and writes the
// per-layer scale factors into scale (len must be ScaleLen). The unscaled
// function is value·Π scale[i]; every scale[i] is positive.
//
// At or above the half-space shear velocity the decaying eigenvectors turn
// oscillatory (ν → i|ν|) and the real part of the determinant is returned.
// It is continuous at c = β and keeps the sign the function has just below
// β, so bracketing steps that overshoot β still see the sign change.
//
// Errors:
//   - ErrBadFrequency, ErrBadVelocity, ErrScaleLength, ErrScaleOverflow.
//
// Complexity: O(N) small fixed-size matrix products.
func (r *Rayleigh) Evaluate(omega, c float64, scale []float64) (float64, error) {
	if math.IsNaN(omega) || math.IsInf(omega, 0) || omega <= 0 {
		return 0, fmt.Errorf("omega=%g: %w", omega, ErrBadFrequency)
	}
	if math.IsNaN(c) || math.IsInf(c, 0) || c <= 0 {
		return 0, fmt.Errorf("c=%g: %w", c, ErrBadVelocity)
	}
	if len(scale) != len(r.layers) {
		return 0, fmt.Errorf("len(scale)=%d, want %d: %w", len(scale), len(r.layers), ErrScaleLength)
	}

	k := omega / c
	// minors of the surface solution block [e1 e2]: only (0,1) is non-zero.
	minors := []float64{1, 0, 0, 0, 0, 0}
	for i := range r.layers {
		p, growth, err := r.propagator(&r.layers[i], omega, k)
		if err != nil {
			return 0, fmt.Errorf("layer %d: %w", i, err)
		}
		if 2*growth > maxExponent {
			return 0, fmt.Errorf("layer %d: exponent %.1f at c=%g: %w", i, 2*growth, c, ErrScaleOverflow)
		}
		c2, err := matrix.Compound2(p)
		if err != nil {
			return 0, fmt.Errorf("layer %d: %w", i, err)
		}
		if minors, err = matrix.MatVec(c2, minors); err != nil {
			return 0, fmt.Errorf("layer %d: %w", i, err)
		}
		s := maxAbs(minors)
		if s == 0 {
			s = 1
		}
		for j := range minors {
			minors[j] /= s
		}
		scale[i] = s * math.Exp(2*growth)
	}

	return r.contract(minors, omega, k), nil
}

// contract evaluates det[Y₁ Y₂ v_P v_S] by Laplace expansion over the minors
// of the propagated surface block (pairs in matrix.Pairs(4) order) and the
// minors of the half-space eigenvectors. ν_P and ν_S are imaginary above the
// respective half-space velocity; the real part of the determinant is kept.
func (r *Rayleigh) contract(m []float64, omega, k float64) float64 {
	hs := &r.half
	w2 := omega * omega
	na2, nb2 := k*k-w2/hs.alpha2, k*k-w2/hs.beta2
	na := cmplx.Sqrt(complex(na2, 0))
	nb := cmplx.Sqrt(complex(nb2, 0))
	ms := hs.mu / r.muRef

	vp := [4]complex128{
		complex(k, 0),
		na,
		complex(-2*k*ms, 0) * na,
		complex((hs.rho*w2-2*hs.mu*k*k)/r.muRef, 0),
	}
	vs := [4]complex128{
		nb,
		complex(k, 0),
		complex(-(nb2+k*k)*ms, 0),
		complex(-2*k*ms, 0) * nb,
	}
	mv := func(i, j int) float64 { return real(vp[i]*vs[j] - vp[j]*vs[i]) }

	return m[0]*mv(2, 3) - m[1]*mv(1, 3) + m[2]*mv(1, 2) +
		m[3]*mv(0, 3) - m[4]*mv(0, 2) + m[5]*mv(0, 1)
}

func maxAbs(v []float64) float64 {
	var best float64
	for _, x := range v {
		if a := math.Abs(x); a > best {
			best = a
		}
	}

	return best
}
