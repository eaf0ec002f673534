// Package dispersion computes fundamental-mode Rayleigh-wave dispersion
// curves: for every frequency, the phase velocity at which an external
// dispersion function changes sign.
//
// 🚀 What is it?
//
//	The Evaluator oracle returns, for (ω, c), a signed function value together
//	with a per-layer scale vector (the value is renormalised internally so
//	that deep layers cannot overflow float64). Values from different calls
//	are only comparable after removing the ratio of their scale vectors,
//	RelativeScale(a, b) = Π a[i]/b[i].
//
// ✨ Algorithm (Schwab & Knopoff):
//  1. Bracketing: starting at MinVelocity, step top = bot + Step upward until
//     bot and top differ in sign (an exact zero is accepted immediately).
//  2. Refinement: take mid halfway, express mid and top in bot's scale frame,
//     fit F(C) = B0 + B1·C + B2·C² through the triple, keep the root inside
//     [bot, top], and let the old mid replace the end on the far side of it.
//     Iterations passes are run; the last one skips its evaluation.
//  3. Curve: frequencies are solved in input order; the first failure aborts.
//
// ⚙️ Usage:
//
//	ev, _ := dispfun.NewRayleigh(m)
//	vels, err := dispersion.Curve(ev, []float64{1, 2, 5, 10},
//		dispersion.WithVerbose(true),
//		dispersion.WithWorkers(4),
//	)
//
// Three scale buffers are allocated per solving worker and reused across
// frequencies and passes; the bot/mid/top roles are indices into that pool.
//
// Errors are *CurveError values carrying the frequency index and the search
// triple, unwrapping to ErrNumericalInconsistency, ErrRootSelection,
// ErrNoBracket, ErrNonFiniteValue, an evaluator error or a context error.
//
// Hooks (WithStepHook, WithRefineHook) run on the solving goroutine; with
// WithWorkers(n > 1) they may be called concurrently.
package dispersion
