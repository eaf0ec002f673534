// SPDX-License-Identifier: MIT

// Package matrix is the small dense linear-algebra kernel behind the layer
// propagators of package dispfun.
//
// 🚀 What is inside?
//
//	A row-major Dense type with error-returning accessors, plus the handful of
//	operations a Thomson–Haskell style propagation needs:
//	  • Mul, MatVec, AddScaled: products and linear combinations
//	  • Compound2: second compound matrix (all 2×2 minors)
//	  • MaxAbs: largest entry magnitude
//
// ✨ Guarantees:
//   - No panics on user input: shapes, indices and NaN/Inf are reported as sentinels.
//   - Deterministic loop orders; no hidden goroutines, no global state.
//   - Every result is freshly allocated; operands are never mutated.
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/surfwave/matrix"
//
//	a, _ := matrix.Identity(4)
//	c, _ := matrix.Compound2(a) // 6×6 identity
//
// Complexity:
//   - Mul: O(r·n·c); MatVec: O(r·c); Compound2: O(n⁴) for an n×n input.
package matrix
