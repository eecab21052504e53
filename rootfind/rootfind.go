package rootfind

import (
	"errors"
	"math"
)

var (
	// ErrBadGuess indicates f(x0) is NaN or ±Inf at the starting point.
	ErrBadGuess = errors.New("rootfind: function not finite at initial guess")

	// ErrFlatFunction indicates the numerical derivative vanished and
	// nudging the iterate did not produce a usable slope.
	ErrFlatFunction = errors.New("rootfind: derivative vanished, cannot step")

	// ErrNoConvergence indicates the iteration cap was reached before the
	// Newton step shrank below tolerance.
	ErrNoConvergence = errors.New("rootfind: no convergence within MaxIter")
)

// Func is the scalar equation to solve, f(x) = 0.
type Func func(x float64) float64

// Options bounds the Newton iteration.
//   - Tol: relative step tolerance; converged when |Δx| ≤ Tol·(|x|+Tol).
//   - MaxIter: hard iteration cap.
type Options struct {
	Tol     float64
	MaxIter int
}

// DefaultOptions returns the solver bounds used across eqpool.
func DefaultOptions() Options {
	return Options{Tol: 1e-12, MaxIter: 200}
}

const (
	// diffStep scales the central-difference stencil width.
	diffStep = 1e-6
	// maxDamping caps step halvings when an iterate leaves the finite domain.
	maxDamping = 50
	// maxNudges caps restarts after a vanished derivative.
	maxNudges = 3
)

// FindRoot solves f(x) = 0 by damped Newton iteration from x0.
//
// Algorithm Outline:
//  1. Evaluate f(x0); a non-finite value is ErrBadGuess.
//  2. Each iteration estimates f'(x) by central difference with stencil
//     width diffStep·max(|x|, 1), then takes the Newton step Δx = f/f'.
//  3. A step landing on NaN/±Inf is halved (at most maxDamping times).
//  4. A zero or non-finite derivative nudges x by the stencil width and
//     retries (at most maxNudges times), then fails with ErrFlatFunction.
//  5. Converged when |Δx| ≤ Tol·(|x|+Tol) or f(x) == 0 exactly.
//
// Complexity: O(MaxIter) function evaluations; Memory: O(1).
func FindRoot(f Func, x0 float64, opts *Options) (float64, error) {
	// Stage 1: Resolve options
	tol := 1e-12
	maxIter := 200
	if opts != nil {
		if opts.Tol > 0 {
			tol = opts.Tol
		}
		if opts.MaxIter > 0 {
			maxIter = opts.MaxIter
		}
	}

	// Stage 2: Validate starting point
	x := x0
	fx := f(x)
	if math.IsNaN(fx) || math.IsInf(fx, 0) {
		return 0, ErrBadGuess
	}

	// Stage 3: Newton iteration
	var nudges int
	for iter := 0; iter < maxIter; iter++ {
		if fx == 0 {
			return x, nil
		}

		h := diffStep * math.Max(math.Abs(x), 1)
		d := (f(x+h) - f(x-h)) / (2 * h)
		if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			if nudges >= maxNudges {
				return x, ErrFlatFunction
			}
			nudges++
			x += h
			fx = f(x)
			if math.IsNaN(fx) || math.IsInf(fx, 0) {
				return x, ErrBadGuess
			}
			continue
		}

		step := fx / d
		xn := x - step
		fn := f(xn)
		for k := 0; (math.IsNaN(fn) || math.IsInf(fn, 0)) && k < maxDamping; k++ {
			step /= 2
			xn = x - step
			fn = f(xn)
		}
		if math.IsNaN(fn) || math.IsInf(fn, 0) {
			return x, ErrNoConvergence
		}

		x, fx = xn, fn
		if math.Abs(step) <= tol*(math.Abs(x)+tol) {
			return x, nil
		}
	}
	return x, ErrNoConvergence
}
