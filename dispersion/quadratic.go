package dispersion

import (
	"fmt"
	"math"
)

// quadratic is F(C) = b0 + b1·C + b2·C².
type quadratic struct {
	b0, b1, b2 float64
}

// fitQuadratic returns the Lagrange interpolant through (cb, vb), (cm, vm),
// (ct, vt). The abscissae must be distinct.
func fitQuadratic(cb, cm, ct, vb, vm, vt float64) quadratic {
	db := (cb - cm) * (cb - ct)
	dm := (cm - cb) * (cm - ct)
	dt := (ct - cb) * (ct - cm)

	return quadratic{
		b0: vb*cm*ct/db + vm*cb*ct/dm + vt*cb*cm/dt,
		b1: -(vb*(cm+ct)/db + vm*(cb+ct)/dm + vt*(cb+cm)/dt),
		b2: vb/db + vm/dm + vt/dt,
	}
}

// root returns the zero of q inside [lo, hi]. The zeros are tried in the
// order (−b1 − √D)/(2·b2), then (−b1 + √D)/(2·b2); the first inside wins.
//
// Errors:
//   - ErrNumericalInconsistency if the determinant is negative or NaN, or q is constant.
//   - ErrRootSelection if no zero lies in [lo, hi].
func (q quadratic) root(lo, hi float64) (float64, error) {
	inside := func(r float64) bool { return r >= lo && r <= hi }

	// Stage 1: degenerate to a line when the curvature vanishes.
	if q.b2 == 0 {
		if q.b1 == 0 {
			return 0, fmt.Errorf("%w: constant fit", ErrNumericalInconsistency)
		}
		r := -q.b0 / q.b1
		if !inside(r) {
			return 0, fmt.Errorf("%w: linear root %g outside [%g, %g]", ErrRootSelection, r, lo, hi)
		}
		return r, nil
	}

	// Stage 2: determinant.
	d := q.b1*q.b1 - 4*q.b2*q.b0
	if !(d >= 0) {
		return 0, fmt.Errorf("%w: D=%g", ErrNumericalInconsistency, d)
	}

	// Stage 3: both roots without cancellation. t/b2 carries the −sgn(b1)·√D
	// branch, so for negative b1 the pair is swapped back into r1, r2 order.
	t := -(q.b1 + math.Copysign(math.Sqrt(d), q.b1)) / 2
	r1 := t / q.b2
	r2 := r1
	if t != 0 {
		r2 = q.b0 / t
	}
	if math.Signbit(q.b1) {
		r1, r2 = r2, r1
	}

	// Stage 4: selection.
	if inside(r1) {
		return r1, nil
	}
	if inside(r2) {
		return r2, nil
	}

	return 0, fmt.Errorf("%w: roots %g, %g outside [%g, %g]", ErrRootSelection, r1, r2, lo, hi)
}
