// Package dispfun evaluates the Rayleigh-wave secular (dispersion) function of
// a layered elastic half-space, together with the per-layer scale vector that
// keeps the evaluation inside float64 range.
//
// 🚀 What is the dispersion function?
//
//	For angular frequency ω and trial phase velocity c, the P-SV motion-stress
//	vector y = (u_x, u_z, τ_zx, τ_zz) obeys dy/dz = A(ω, c) y inside every
//	homogeneous layer. A free surface (zero traction at z = 0) and a half-space
//	that only admits decaying waves can be matched by a non-trivial y only at
//	the roots c(ω) of a scalar function F(ω, c): the modes of the structure.
//
// ✨ How it is computed:
//   - Layer propagators exp(A·h) in closed form from A, A², A³ and the even
//     functions cosh(νh), sinh(νh)/ν of ν² (cos/sin for oscillatory layers),
//     with exp(ν_max·h) factored out.
//   - The two surface solutions are carried as their six 2×2 minors through
//     the second compound matrices of the layers (matrix.Compound2), which
//     removes the loss of precision of the raw Thomson–Haskell product.
//   - After every layer the minors are renormalised; the removed factor is
//     written to scale[i]. The returned value times Π scale[i] is F.
//   - The minors are finally contracted with those of the two decaying
//     half-space eigenvectors (Laplace expansion of a 4×4 determinant).
//
// For a lone half-space the value is 4k²ν_αν_β − (2k² − ω²/β²)², i.e. −k⁴
// times the classical Rayleigh function, so its root is the Rayleigh velocity.
// For c ≥ β the half-space ν become imaginary and the real part of the
// determinant is returned, so a search stepping past β still sees the sign
// change of the fundamental root.
//
// ⚙️ Usage:
//
//	m, _ := model.New(alphas, betas, rhos, ds)
//	ev, _ := dispfun.NewRayleigh(m)
//	scale := make([]float64, ev.ScaleLen())
//	v, err := ev.Evaluate(2*math.Pi*5, 250, scale)
//
// A *Rayleigh is immutable and safe for concurrent use; each caller supplies
// its own scale buffer.
package dispfun
