// Package rootfind solves one scalar nonlinear equation f(x) = 0 with a
// damped Newton iteration using central-difference derivatives.
//
// 🚀 What is rootfind?
//
//	The equilibrium-flux balance equations are smooth low-degree
//	polynomials in one unknown with good closed-form starting guesses.
//	rootfind is the minimal solver that fits: Newton steps, numerical
//	derivatives, step damping when an iterate leaves the finite domain,
//	and hard tol/maxIter bounds so results are reproducible run to run.
//
// ✨ Key features:
//   - no allocation, no state: FindRoot is a pure function
//   - damped steps: a step that produces NaN/±Inf is halved until finite
//   - deterministic: fixed tolerance and iteration cap via Options
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/eqpool/rootfind"
//
//	opts := rootfind.DefaultOptions()
//	x, err := rootfind.FindRoot(func(x float64) float64 {
//		return x*x - 2
//	}, 1.0, &opts)
//
// Errors:
//   - ErrBadGuess      — f is not finite at the starting point
//   - ErrFlatFunction  — derivative vanished and nudging did not recover
//   - ErrNoConvergence — iteration cap reached before the step shrank
package rootfind
