package dispersion

import (
	"context"
	"fmt"
	"log/slog"
	"math"
)

// Reference constants of the Schwab–Knopoff search.
const (
	DefaultIterations  = 5
	DefaultMinVelocity = 10.0
	DefaultStep        = 100.0 + 1e-10 // jitter keeps trial points off round numbers
	DefaultMaxSteps    = 100000
)

// Config holds the numeric parameters of the root search.
type Config struct {
	// Iterations is the number of quadratic refinement passes (NQUAD).
	Iterations int

	// MinVelocity is the floor the upward search starts from.
	MinVelocity float64

	// Step is the bracketing step.
	Step float64

	// MaxSteps caps the bracketing steps per frequency; 0 means no cap.
	MaxSteps int

	// Tolerance, if > 0, stops refinement once |next − mid| ≤ Tolerance·|next|.
	Tolerance float64

	// StopOnFixedPoint stops refinement when the fitted root equals the
	// current mid exactly.
	StopOnFixedPoint bool
}

// DefaultConfig returns the reference constants:
//   - Iterations 5
//   - MinVelocity 10
//   - Step 100 + 1e-10
//   - MaxSteps 100000
//   - no tolerance, stop on fixed point.
func DefaultConfig() Config {
	return Config{
		Iterations:       DefaultIterations,
		MinVelocity:      DefaultMinVelocity,
		Step:             DefaultStep,
		MaxSteps:         DefaultMaxSteps,
		Tolerance:        0,
		StopOnFixedPoint: true,
	}
}

// Validate reports the first invalid field wrapped in ErrBadConfig.
func (c Config) Validate() error {
	switch {
	case c.Iterations < 1:
		return fmt.Errorf("%w: Iterations must be ≥ 1 (%d)", ErrBadConfig, c.Iterations)
	case !finite(c.MinVelocity) || c.MinVelocity <= 0:
		return fmt.Errorf("%w: MinVelocity must be finite and > 0 (%g)", ErrBadConfig, c.MinVelocity)
	case !finite(c.Step) || c.Step <= 0:
		return fmt.Errorf("%w: Step must be finite and > 0 (%g)", ErrBadConfig, c.Step)
	case c.MaxSteps < 0:
		return fmt.Errorf("%w: MaxSteps cannot be negative (%d)", ErrBadConfig, c.MaxSteps)
	case !finite(c.Tolerance) || c.Tolerance < 0:
		return fmt.Errorf("%w: Tolerance must be finite and ≥ 0 (%g)", ErrBadConfig, c.Tolerance)
	}

	return nil
}

// Option configures a curve computation via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation when
// Curve, Solve or SolveOmega is invoked.
type Option func(*Options)

// Options holds the configuration, hooks and execution settings of a run.
type Options struct {
	Config

	// Ctx allows cancellation; it is checked before every evaluation.
	Ctx context.Context

	// Logger receives progress lines when Verbose is set.
	Logger *slog.Logger

	// Verbose enables Info progress per frequency and Debug search traces.
	Verbose bool

	// Workers > 1 solves frequencies concurrently.
	Workers int

	// OnStep is called after every bracketing step.
	OnStep func(StepEvent)

	// OnRefine is called after every quadratic fit.
	OnRefine func(RefineEvent)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with DefaultConfig, a background context,
// sequential execution, no logging and no-op hooks.
func DefaultOptions() Options {
	return Options{
		Config:   DefaultConfig(),
		Ctx:      context.Background(),
		Workers:  1,
		OnStep:   func(StepEvent) {},
		OnRefine: func(RefineEvent) {},
	}
}

// WithConfig replaces the whole numeric configuration.
func WithConfig(cfg Config) Option {
	return func(o *Options) {
		if err := cfg.Validate(); err != nil {
			o.err = fmt.Errorf("%w: %w", ErrOptionViolation, err)
			return
		}
		o.Config = cfg
	}
}

// WithIterations sets the number of refinement passes (n ≥ 1).
func WithIterations(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: Iterations must be ≥ 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.Iterations = n
	}
}

// WithMinVelocity sets the floor of the upward search (v > 0).
func WithMinVelocity(v float64) Option {
	return func(o *Options) {
		if !finite(v) || v <= 0 {
			o.err = fmt.Errorf("%w: MinVelocity must be finite and > 0 (%g)", ErrOptionViolation, v)
			return
		}
		o.MinVelocity = v
	}
}

// WithStep sets the bracketing step (s > 0).
func WithStep(s float64) Option {
	return func(o *Options) {
		if !finite(s) || s <= 0 {
			o.err = fmt.Errorf("%w: Step must be finite and > 0 (%g)", ErrOptionViolation, s)
			return
		}
		o.Step = s
	}
}

// WithMaxSteps caps the bracketing steps.
//
//	n > 0: at most n steps
//	n == 0: no cap
//	n < 0: invalid option → ErrOptionViolation
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxSteps cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxSteps = n
	}
}

// WithTolerance enables the relative convergence stop (0 disables it).
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if !finite(tol) || tol < 0 {
			o.err = fmt.Errorf("%w: Tolerance must be finite and ≥ 0 (%g)", ErrOptionViolation, tol)
			return
		}
		o.Tolerance = tol
	}
}

// WithFixedPointStop toggles the exact-equality stopping rule.
func WithFixedPointStop(stop bool) Option {
	return func(o *Options) {
		o.StopOnFixedPoint = stop
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithLogger sets the logger used in verbose mode.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithVerbose enables progress logging.
func WithVerbose(v bool) Option {
	return func(o *Options) {
		o.Verbose = v
	}
}

// WithWorkers sets the number of frequencies solved concurrently (n ≥ 1).
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: Workers must be ≥ 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}

// WithStepHook registers a callback run after every bracketing step.
func WithStepHook(fn func(StepEvent)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnStep = fn
		}
	}
}

// WithRefineHook registers a callback run after every quadratic fit.
func WithRefineHook(fn func(RefineEvent)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnRefine = fn
		}
	}
}

// logger returns the verbose logger or a discarding one.
func (o *Options) logger() *slog.Logger {
	if !o.Verbose {
		return slog.New(slog.DiscardHandler)
	}
	if o.Logger != nil {
		return o.Logger
	}

	return slog.Default()
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
