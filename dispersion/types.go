package dispersion

import (
	"errors"
	"fmt"
)

// Sentinel errors for curve computation.
var (
	// ErrNumericalInconsistency is returned when the refinement quadratic has a
	// negative (or NaN) determinant although its points bracket a sign change.
	ErrNumericalInconsistency = errors.New("dispersion: quadratic determinant negative inside a sign-changing bracket")

	// ErrRootSelection is returned when no quadratic root lies inside the bracket.
	ErrRootSelection = errors.New("dispersion: no quadratic root inside the bracket")

	// ErrScratchAllocation is returned when the scale scratch buffers cannot be
	// sized (the evaluator reports a negative scale length).
	ErrScratchAllocation = errors.New("dispersion: cannot allocate scale scratch buffers")

	// ErrNoBracket is returned when MaxSteps bracketing steps found no sign change.
	ErrNoBracket = errors.New("dispersion: no sign change found above the minimum velocity")

	// ErrNonFiniteValue is returned when the evaluator yields NaN or ±Inf.
	ErrNonFiniteValue = errors.New("dispersion: evaluator returned a non-finite value")

	// ErrBadFrequency is returned for a non-finite or non-positive frequency.
	ErrBadFrequency = errors.New("dispersion: frequency must be finite and positive")

	// ErrNilEvaluator is returned when a nil Evaluator is passed.
	ErrNilEvaluator = errors.New("dispersion: evaluator is nil")

	// ErrBadConfig is returned by Config.Validate.
	ErrBadConfig = errors.New("dispersion: invalid configuration")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("dispersion: invalid option supplied")
)

// Evaluator is the dispersion-function oracle consumed by the solver.
//
// Evaluate returns the signed, internally rescaled function value at angular
// frequency omega and trial phase velocity c, and writes the per-layer scale
// factors it used into scale (len(scale) == ScaleLen()). The unscaled value is
// value·Π scale[i], so two calls are compared through RelativeScale.
// A value of exactly 0 is treated as a root. Implementations must be
// deterministic and, when used with WithWorkers(n > 1), safe for concurrent use.
type Evaluator interface {
	ScaleLen() int
	Evaluate(omega, c float64, scale []float64) (float64, error)
}

// Solution is the outcome for one frequency.
type Solution struct {
	Frequency float64 // Hz
	Omega     float64 // 2π·Frequency
	Velocity  float64 // phase velocity of the fundamental mode

	// Bracket is the sign-changing interval found by the upward search.
	// Both ends equal Velocity when the search hit an exact zero.
	Bracket [2]float64

	Evaluations int  // evaluator calls spent on this frequency
	Iterations  int  // quadratic refinement passes run
	ExactHit    bool // the evaluator returned exactly 0 at Velocity
}

// StepEvent is reported after every bracketing step.
type StepEvent struct {
	Frequency          float64
	Step               int
	Bot, Top           float64
	BotValue, TopValue float64
}

// RefineEvent is reported after every quadratic fit; values are in the
// bottom point's scale frame.
type RefineEvent struct {
	Frequency     float64
	Pass          int
	Bot, Mid, Top float64
	BotValue      float64
	MidValue      float64
	TopValue      float64
	Next          float64
}

// CurveError carries the diagnostic context of a failed frequency.
// Bot, Mid and Top are the velocities of the search triple at the time of
// failure (zero when not yet set).
type CurveError struct {
	Index     int
	Frequency float64
	Bot       float64
	Mid       float64
	Top       float64
	Err       error
}

// Error implements error.
func (e *CurveError) Error() string {
	return fmt.Sprintf("dispersion: frequency[%d]=%g Hz (bot=%g mid=%g top=%g): %v",
		e.Index, e.Frequency, e.Bot, e.Mid, e.Top, e.Err)
}

// Unwrap exposes the underlying sentinel.
func (e *CurveError) Unwrap() error { return e.Err }
