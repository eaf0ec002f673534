package dispersion_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/surfwave/dispfun"
	"github.com/katalvlaran/surfwave/model"
	"github.com/stretchr/testify/require"
)

// stubEvaluator adapts a closure to dispersion.Evaluator and counts calls.
// Not safe for concurrent use.
type stubEvaluator struct {
	n     int
	fn    func(c float64, scale []float64) (float64, error)
	calls int
}

func (s *stubEvaluator) ScaleLen() int { return s.n }

func (s *stubEvaluator) Evaluate(_ float64, c float64, scale []float64) (float64, error) {
	s.calls++
	return s.fn(c, scale)
}

// linearStub has its only root at c0; its raw values are divided by a
// c-dependent positive scale spread over n layers.
func linearStub(c0 float64, n int) *stubEvaluator {
	return &stubEvaluator{n: n, fn: func(c float64, scale []float64) (float64, error) {
		total := 1.0
		for i := range scale {
			scale[i] = 1 + c/float64(100*(i+1))
			total *= scale[i]
		}
		return (c0 - c) / total, nil
	}}
}

// Poisson half-space with β = 2000; its Rayleigh velocity is β·√(2 − 2/√3).
const (
	hsAlpha = 3464.1016151377544
	hsBeta  = 2000.0
	hsRho   = 2500.0
)

var poissonRayleigh = hsBeta * math.Sqrt(2-2/math.Sqrt(3))

func halfSpaceEvaluator(tb testing.TB) *dispfun.Rayleigh {
	tb.Helper()
	m, err := model.New([]float64{hsAlpha}, []float64{hsBeta}, []float64{hsRho}, nil)
	require.NoError(tb, err)
	ev, err := dispfun.NewRayleigh(m)
	require.NoError(tb, err)

	return ev
}

// twoLayerEvaluator is a 20 m soft layer (β = 300) over a β = 650 half-space.
func twoLayerEvaluator(tb testing.TB) *dispfun.Rayleigh {
	tb.Helper()
	m, err := model.New(
		[]float64{519.6, 1125.8}, []float64{300, 650}, []float64{1800, 2000}, []float64{20},
	)
	require.NoError(tb, err)
	ev, err := dispfun.NewRayleigh(m)
	require.NoError(tb, err)

	return ev
}

// poissonEvaluator builds a model whose layers all have α = √3·β.
func poissonEvaluator(tb testing.TB, betas, rhos, ds []float64) *dispfun.Rayleigh {
	tb.Helper()
	alphas := make([]float64, len(betas))
	for i, b := range betas {
		alphas[i] = math.Sqrt(3) * b
	}
	m, err := model.New(alphas, betas, rhos, ds)
	require.NoError(tb, err)
	ev, err := dispfun.NewRayleigh(m)
	require.NoError(tb, err)

	return ev
}
