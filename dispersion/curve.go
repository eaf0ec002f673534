package dispersion

import (
	"math"

	"golang.org/x/sync/errgroup"
)

// Curve returns the fundamental-mode phase velocity for every frequency (Hz),
// in input order. Any failure aborts the whole curve; the error is a
// *CurveError unwrapping to one of the package sentinels, an evaluator
// error or a context error.
func Curve(ev Evaluator, freqs []float64, opts ...Option) ([]float64, error) {
	sols, err := Solve(ev, freqs, opts...)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(sols))
	for i, s := range sols {
		out[i] = s.Velocity
	}

	return out, nil
}

// SolveOmega solves a single angular frequency (rad/s).
func SolveOmega(ev Evaluator, omega float64, opts ...Option) (Solution, error) {
	sols, err := run(ev, []float64{omega / (2 * math.Pi)}, []float64{omega}, opts)
	if err != nil {
		return Solution{}, err
	}

	return sols[0], nil
}

// Solve is Curve with per-frequency diagnostics.
//
// Errors before any evaluation: ErrNilEvaluator, ErrOptionViolation,
// ErrBadConfig, ErrScratchAllocation, ErrBadFrequency.
//
// Complexity: O(F·(root/Step + Iterations)) evaluator calls for F frequencies.
func Solve(ev Evaluator, freqs []float64, opts ...Option) ([]Solution, error) {
	omegas := make([]float64, len(freqs))
	for i, f := range freqs {
		omegas[i] = 2 * math.Pi * f
	}

	return run(ev, freqs, omegas, opts)
}

// run validates the inputs and solves omegas[i] (reported as freqs[i]).
func run(ev Evaluator, freqs, omegas []float64, opts []Option) ([]Solution, error) {
	if ev == nil {
		return nil, ErrNilEvaluator
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if err := o.Config.Validate(); err != nil {
		return nil, err
	}
	for i, w := range omegas {
		if !finite(w) || w <= 0 {
			return nil, &CurveError{Index: i, Frequency: freqs[i], Err: ErrBadFrequency}
		}
	}

	n := ev.ScaleLen()
	if o.Workers > 1 && len(freqs) > 1 {
		return solveParallel(ev, freqs, omegas, &o, n)
	}

	sc, err := newScratch(n)
	if err != nil {
		return nil, err
	}
	s := &solver{ev: ev, opts: &o, ctx: o.Ctx, log: o.logger(), sc: sc}
	out := make([]Solution, len(freqs))
	for i := range freqs {
		if out[i], err = s.solveAt(i, freqs[i], omegas[i]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// solveAt solves frequency index i with logging and error context.
func (s *solver) solveAt(i int, f, omega float64) (Solution, error) {
	s.log.Info("solving frequency", "index", i, "freq", f)
	sol, err := s.solve(f, omega)
	if err != nil {
		return sol, &CurveError{Index: i, Frequency: f, Bot: s.bot.c, Mid: s.mid.c, Top: s.top.c, Err: err}
	}
	s.log.Info("phase velocity found",
		"index", i, "freq", f, "velocity", sol.Velocity,
		"evaluations", sol.Evaluations, "passes", sol.Iterations, "exact", sol.ExactHit)

	return sol, nil
}

// solveParallel spreads frequencies over o.Workers goroutines. Each running
// goroutine borrows one scratch from the pool, so no two solvers share buffers.
func solveParallel(ev Evaluator, freqs, omegas []float64, o *Options, n int) ([]Solution, error) {
	workers := min(o.Workers, len(freqs))
	pool := make(chan *scratch, workers)
	for range workers {
		sc, err := newScratch(n)
		if err != nil {
			return nil, err
		}
		pool <- sc
	}

	g, ctx := errgroup.WithContext(o.Ctx)
	g.SetLimit(workers)
	log := o.logger()
	out := make([]Solution, len(freqs))
	for i := range freqs {
		g.Go(func() error {
			sc := <-pool
			defer func() { pool <- sc }()
			s := &solver{ev: ev, opts: o, ctx: ctx, log: log, sc: sc}
			sol, err := s.solveAt(i, freqs[i], omegas[i])
			if err != nil {
				return err
			}
			out[i] = sol
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
