package rootfind_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/eqpool/rootfind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFindRoot_Quadratic verifies convergence to sqrt(2) from a nearby guess.
func TestFindRoot_Quadratic(t *testing.T) {
	opts := rootfind.DefaultOptions()

	x, err := rootfind.FindRoot(func(x float64) float64 { return x*x - 2 }, 1.0, &opts)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, x, 1e-10, "must converge to the positive root")
}

// TestFindRoot_Linear verifies a linear balance converges in very few steps.
func TestFindRoot_Linear(t *testing.T) {
	opts := rootfind.Options{Tol: 1e-12, MaxIter: 5}

	x, err := rootfind.FindRoot(func(x float64) float64 { return 4 * x }, -0.5, &opts)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, x, 1e-12, "linear equation root is exact for Newton")
}

// TestFindRoot_BadGuess returns ErrBadGuess when f is not finite at x0.
func TestFindRoot_BadGuess(t *testing.T) {
	opts := rootfind.DefaultOptions()

	_, err := rootfind.FindRoot(func(x float64) float64 { return math.Log(x) }, -1.0, &opts)
	assert.ErrorIs(t, err, rootfind.ErrBadGuess, "log of negative start must error")
}

// TestFindRoot_DampsIntoDomain checks the step-halving safeguard: the root
// of log(x) lies at 1, and overshooting into x ≤ 0 must be damped, not fatal.
func TestFindRoot_DampsIntoDomain(t *testing.T) {
	opts := rootfind.DefaultOptions()

	x, err := rootfind.FindRoot(func(x float64) float64 { return math.Log(x) }, 20.0, &opts)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, x, 1e-9, "must damp steps that leave the log domain")
}

// TestFindRoot_FlatFunction returns ErrFlatFunction for a constant f ≠ 0.
func TestFindRoot_FlatFunction(t *testing.T) {
	opts := rootfind.DefaultOptions()

	_, err := rootfind.FindRoot(func(x float64) float64 { return 3.0 }, 0.0, &opts)
	assert.ErrorIs(t, err, rootfind.ErrFlatFunction, "constant function has no root")
}

// TestFindRoot_IterationCap returns ErrNoConvergence when MaxIter is too small.
func TestFindRoot_IterationCap(t *testing.T) {
	opts := rootfind.Options{Tol: 1e-15, MaxIter: 1}

	_, err := rootfind.FindRoot(func(x float64) float64 { return math.Cos(x) - x }, 10.0, &opts)
	assert.ErrorIs(t, err, rootfind.ErrNoConvergence, "one iteration cannot converge from far away")
}

// TestFindRoot_NilOptions verifies defaults are applied when opts is nil.
func TestFindRoot_NilOptions(t *testing.T) {
	x, err := rootfind.FindRoot(func(x float64) float64 { return x - 3 }, 0.0, nil)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, x, 1e-10)
}
