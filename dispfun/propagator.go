package dispfun

import (
	"math"

	"github.com/katalvlaran/surfwave/matrix"
)

// systemMatrix returns the P-SV coefficient matrix A of dy/dz = A·y for
// y = (u_x, u_z, τ_zx/μref, τ_zz/μref) with exp(i(kx − ωt)) dependence
// (vertical displacement and normal stress carry a factor i, so A is real).
//
//	| 0                 k   μref/μ   0          |
//	| −kλ/M             0   0        μref/M     |
//	| (k²ζ − ω²ρ)/μref  0   0        kλ/M       |
//	| 0        −ω²ρ/μref   −k        0          |
//
// with M = λ + 2μ and ζ = 4μ(λ + μ)/M.
func systemMatrix(l *layer, omega, k, muRef float64) (*matrix.Dense, error) {
	w2 := omega * omega
	zeta := 4 * l.mu * (l.lambda + l.mu) / l.modulus

	return matrix.FromRows([][]float64{
		{0, k, muRef / l.mu, 0},
		{-k * l.lambda / l.modulus, 0, 0, muRef / l.modulus},
		{(k*k*zeta - w2*l.rho) / muRef, 0, 0, k * l.lambda / l.modulus},
		{0, -w2 * l.rho / muRef, -k, 0},
	})
}

// propagator returns P̃ = exp(A·h)·exp(−g) together with the factored
// exponent g = ν_max·h ≥ 0.
//
// A has eigenvalues ±ν_P, ±ν_S with ν² = k² − ω²/v², so A² has the two
// eigenvalues ν_P², ν_S² and (A² − ν_P²)(A² − ν_S²) = 0. On each eigenspace
// of A², exp(A·h) = cosh(νh)·I + sinh(νh)/ν·A, and the spectral projectors
// are (A² − ν_other²)/(ν² − ν_other²). Expanding gives
//
//	Δ·exp(Ah) = (cₚ − cₛ)A² + (sₚ − sₛ)A³ + (cₛν_P² − cₚν_S²)I + (sₛν_P² − sₚν_S²)A
//
// with Δ = ν_P² − ν_S² = ω²(1/β² − 1/α²) > 0, c = cosh(νh), s = sinh(νh)/ν.
func (r *Rayleigh) propagator(l *layer, omega, k float64) (*matrix.Dense, float64, error) {
	a, err := systemMatrix(l, omega, k, r.muRef)
	if err != nil {
		return nil, 0, err
	}
	a2, err := matrix.Mul(a, a)
	if err != nil {
		return nil, 0, err
	}
	a3, err := matrix.Mul(a2, a)
	if err != nil {
		return nil, 0, err
	}
	id, err := matrix.Identity(4)
	if err != nil {
		return nil, 0, err
	}

	w2 := omega * omega
	np2 := k*k - w2/l.alpha2
	ns2 := k*k - w2/l.beta2
	var growth float64
	if np2 > 0 {
		growth = math.Sqrt(np2) * l.h // ν_P ≥ ν_S whenever both are real
	}
	cp, sp := evenFuncs(np2, l.h, growth)
	cs, ss := evenFuncs(ns2, l.h, growth)
	delta := np2 - ns2

	p, err := matrix.AddScaled(
		[]float64{(cs*np2 - cp*ns2) / delta, (ss*np2 - sp*ns2) / delta, (cp - cs) / delta, (sp - ss) / delta},
		id, a, a2, a3,
	)
	if err != nil {
		return nil, 0, err
	}

	return p, growth, nil
}

// evenFuncs returns cosh(νh)·e^(−g) and sinh(νh)/ν·e^(−g) as functions of
// ν² (cos(|ν|h), sin(|ν|h)/|ν| when ν² < 0; 1 and h at ν = 0).
func evenFuncs(nu2, h, g float64) (float64, float64) {
	switch {
	case nu2 > 0:
		nu := math.Sqrt(nu2)
		x := nu * h
		ep, em := math.Exp(x-g), math.Exp(-x-g)
		if x < 1 {
			return (ep + em) / 2, math.Sinh(x) / nu * math.Exp(-g)
		}
		return (ep + em) / 2, (ep - em) / (2 * nu)
	case nu2 < 0:
		nu := math.Sqrt(-nu2)
		x := nu * h
		e := math.Exp(-g)
		return math.Cos(x) * e, math.Sin(x) / nu * e
	default:
		e := math.Exp(-g)
		return e, h * e
	}
}
