// SPDX-License-Identifier: MIT

// Package matrix - products and linear combinations on *Dense.
//
// Purpose:
//   - Mul / MatVec / AddScaled with strict shape validation and flat-index loops.
//   - Results are always freshly allocated; operands are never mutated.

package matrix

import "fmt"

// ---------- operation tags ----------

const (
	opMul       = "Mul"
	opMatVec    = "MatVec"
	opAddScaled = "AddScaled"
	opCompound2 = "Compound2"
)

// matrixErrorf prefixes an error with the operation tag.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Mul returns the matrix product a×b.
//
// Implementation:
//   - Stage 1: validate non-nil operands and a.Cols == b.Rows.
//   - Stage 2: i→k→j loop over flat buffers, skipping zero a[i,k].
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opMul, ErrNilMatrix)
	}
	if a.c != b.r {
		return nil, matrixErrorf(opMul, fmt.Errorf("%dx%d * %dx%d: %w", a.r, a.c, b.r, b.c, ErrDimensionMismatch))
	}
	res, err := NewDense(a.r, b.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var (
		i, j, k                          int
		av                               float64
		rowOffsetA, rowOffsetB, rowOffsR int
	)
	for i = 0; i < a.r; i++ {
		rowOffsetA = i * a.c
		rowOffsR = i * b.c
		for k = 0; k < a.c; k++ {
			av = a.data[rowOffsetA+k]
			if av == 0 {
				continue // skip zero for performance
			}
			rowOffsetB = k * b.c
			for j = 0; j < b.c; j++ {
				res.data[rowOffsR+j] += av * b.data[rowOffsetB+j]
			}
		}
	}

	return res, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; len(x) == m.Cols().
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m *Dense, x []float64) ([]float64, error) {
	if m == nil {
		return nil, matrixErrorf(opMatVec, ErrNilMatrix)
	}
	if len(x) != m.c {
		return nil, matrixErrorf(opMatVec, fmt.Errorf("len(x)=%d, cols=%d: %w", len(x), m.c, ErrDimensionMismatch))
	}
	y := make([]float64, m.r)
	var (
		i, j, base int
		acc, xv    float64
	)
	for i = 0; i < m.r; i++ {
		acc = 0
		base = i * m.c
		for j = 0; j < m.c; j++ {
			xv = x[j]
			if xv != 0 {
				acc += m.data[base+j] * xv
			}
		}
		y[i] = acc
	}

	return y, nil
}

// AddScaled returns Σ coeffs[t]·terms[t] for same-shaped matrices.
// It is the matrix analogue of an axpy chain and is how closed-form matrix
// functions (polynomials in A) are assembled.
//
// Errors:
//   - ErrDimensionMismatch (len(coeffs) != len(terms), empty input or shape mismatch),
//     ErrNilMatrix.
//
// Complexity:
//   - Time O(t*r*c), Space O(r*c).
func AddScaled(coeffs []float64, terms ...*Dense) (*Dense, error) {
	if len(coeffs) != len(terms) || len(terms) == 0 {
		return nil, matrixErrorf(opAddScaled, ErrDimensionMismatch)
	}
	if terms[0] == nil {
		return nil, matrixErrorf(opAddScaled, ErrNilMatrix)
	}
	res, err := NewDense(terms[0].r, terms[0].c)
	if err != nil {
		return nil, matrixErrorf(opAddScaled, err)
	}
	var (
		t, p int
		w    float64
	)
	for t = 0; t < len(terms); t++ {
		if terms[t] == nil {
			return nil, matrixErrorf(opAddScaled, ErrNilMatrix)
		}
		if terms[t].r != res.r || terms[t].c != res.c {
			return nil, matrixErrorf(opAddScaled, fmt.Errorf("term %d is %dx%d, want %dx%d: %w",
				t, terms[t].r, terms[t].c, res.r, res.c, ErrDimensionMismatch))
		}
		w = coeffs[t]
		if w == 0 {
			continue
		}
		for p = range res.data {
			res.data[p] += w * terms[t].data[p]
		}
	}

	return res, nil
}
