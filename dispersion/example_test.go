package dispersion_test

import (
	"fmt"

	"github.com/katalvlaran/surfwave/dispersion"
	"github.com/katalvlaran/surfwave/dispfun"
	"github.com/katalvlaran/surfwave/model"
)

// ExampleCurve solves a Poisson half-space, whose Rayleigh velocity is
// 0.9194 times its shear velocity at every frequency.
func ExampleCurve() {
	m, err := model.New([]float64{3464.1016151377544}, []float64{2000}, []float64{2500}, nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	ev, err := dispfun.NewRayleigh(m)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	vels, err := dispersion.Curve(ev, []float64{1, 5, 20})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, v := range vels {
		fmt.Printf("%.4f\n", v/2000)
	}
	// Output:
	// 0.9194
	// 0.9194
	// 0.9194
}

// ExampleRelativeScale moves a value computed with scale vector a into the
// frame of scale vector b.
func ExampleRelativeScale() {
	a := []float64{2, 10}
	b := []float64{1, 5}
	fmt.Println(0.5 * dispersion.RelativeScale(a, b))
	// Output:
	// 2
}

// ExampleSolve shows the per-frequency diagnostics of an exact hit.
func ExampleSolve() {
	ev := &zeroAt{c: 510}
	sols, err := dispersion.Solve(ev, []float64{2}, dispersion.WithStep(100))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	s := sols[0]
	fmt.Println(s.Velocity, s.ExactHit, s.Evaluations, s.Bracket)
	// Output:
	// 510 true 6 [510 510]
}

// zeroAt is a straight line through zero at c without any layers.
type zeroAt struct{ c float64 }

func (z *zeroAt) ScaleLen() int { return 0 }

func (z *zeroAt) Evaluate(_, c float64, _ []float64) (float64, error) { return z.c - c, nil }
