// Package surfwave computes Rayleigh-wave dispersion curves of horizontally
// layered elastic earth models, the forward problem of surface-wave
// seismic inversion.
//
// 🚀 What is surfwave?
//
//	A small numerical library and CLI that brings together:
//		• Layered models: α, β, ρ per layer, thicknesses, YAML model files
//		• A dispersion-function oracle: compound-matrix P-SV propagators
//		  with per-layer scale vectors
//		• A root finder: upward bracketing plus three-point quadratic
//		  (Muller-type) refinement across scale frames
//		• Curves: ordered, optionally concurrent, with per-frequency diagnostics
//
// ✨ Why choose surfwave?
//
//   - Faithful – the Schwab–Knopoff search with explicit, testable constants
//   - Safe – typed errors carrying the failing frequency and bracket
//   - Observable – slog progress lines and step/refinement hooks
//   - Pluggable – any Evaluator can replace the reference one
//
// Packages:
//
//	dispersion/ — bracketing, quadratic refinement, curve driver (the core)
//	dispfun/    — reference Rayleigh secular function with scale vector
//	model/      — layered model, validation, YAML files
//	matrix/     — dense kernel: products, second compound matrices
//	cmd/dispcurve — command-line front end
//
// Quick ASCII example:
//
//	  F(c) at fixed ω
//	   +│ ●──●──●
//	    │         ╲
//	   0┼──────────◆──────── c
//	    │           ╲●
//	   −│
//	     10  110 210  ...     bracket, then refine ◆
//
// Dive into examples/ for a complete two-layer walkthrough.
//
//	go get github.com/katalvlaran/surfwave
package surfwave
