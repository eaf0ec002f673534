// SPDX-License-Identifier: MIT

// Package matrix - second compound matrices.
//
// The second compound C₂(M) of an n×n matrix M is the C(n,2)×C(n,2) matrix of
// all 2×2 minors of M, rows and columns indexed by index pairs (i<j) in
// lexicographic order. By Cauchy–Binet, C₂(A·B) = C₂(A)·C₂(B), so the minors
// of a two-column solution block can be propagated through a product of layer
// matrices without ever forming the (ill-conditioned) block itself.

package matrix

// Pairs returns the lexicographic index pairs (i<j) of {0..n-1}.
// For n=4: (0,1) (0,2) (0,3) (1,2) (1,3) (2,3).
//
// Complexity: Time O(n²), Space O(n²).
func Pairs(n int) [][2]int {
	if n < 2 {
		return nil
	}
	out := make([][2]int, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out = append(out, [2]int{i, j})
		}
	}

	return out
}

// Compound2 returns the second compound matrix of a square m:
//
//	C[(i,j),(k,l)] = m[i,k]·m[j,l] − m[i,l]·m[j,k],   i<j, k<l.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrInvalidDimensions (n < 2).
//
// Complexity:
//   - Time O(n⁴), Space O(n⁴).
func Compound2(m *Dense) (*Dense, error) {
	if m == nil {
		return nil, matrixErrorf(opCompound2, ErrNilMatrix)
	}
	if m.r != m.c {
		return nil, matrixErrorf(opCompound2, ErrNonSquare)
	}
	pairs := Pairs(m.r)
	if len(pairs) == 0 {
		return nil, matrixErrorf(opCompound2, ErrInvalidDimensions)
	}
	res, err := NewDense(len(pairs), len(pairs))
	if err != nil {
		return nil, matrixErrorf(opCompound2, err)
	}
	var (
		row, col   int
		i, j, k, l int
		n          = m.c
		size       = len(pairs)
	)
	for row = 0; row < size; row++ {
		i, j = pairs[row][0], pairs[row][1]
		for col = 0; col < size; col++ {
			k, l = pairs[col][0], pairs[col][1]
			res.data[row*size+col] = m.data[i*n+k]*m.data[j*n+l] - m.data[i*n+l]*m.data[j*n+k]
		}
	}

	return res, nil
}
