package connection_test

import (
	"testing"

	"github.com/katalvlaran/eqpool/connection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFlux_SmallRemainderShortcut: a (2,2) step whose equilibrium lies
// within the concentration floor of full conversion resolves to zero
// flux and a zero time constant without invoking the solver.
func TestFlux_SmallRemainderShortcut(t *testing.T) {
	opts := connection.DefaultOptions()
	conn, err := connection.Evaluate(inert(4), []float64{1.0, 0.5, 1e-3, 1e-3}, connection.Params{
		Reactant: 0, Coreactant: 1, Product: 2, Coproduct: 3,
		Temperature: 298, Kf: 1.0, Kb: 1e-25, HasRates: true,
	}, &opts)
	require.NoError(t, err)

	assert.Equal(t, 0.0, conn.EquilibriumFlux)
	require.True(t, conn.HasTimeConstant)
	assert.Equal(t, 0.0, conn.TimeConstant)
}

// TestFlux_ReverseDirection: excess product drives a negative flux, and
// the post-flux mixture still satisfies the equilibrium constant.
func TestFlux_ReverseDirection(t *testing.T) {
	opts := connection.DefaultOptions()
	conn, err := connection.Evaluate(inert(2), []float64{0.1, 2.0}, connection.Params{
		Reactant: 0, Coreactant: connection.NoSpecies,
		Product: 1, Coproduct: connection.NoSpecies,
		Temperature: 298, Kf: 1.0, Kb: 1.0, HasRates: true,
	}, &opts)
	require.NoError(t, err)

	// Keq=1: equilibrium at 1.05 each, so flux = 0.1 − 1.05.
	assert.InDelta(t, -0.95, conn.EquilibriumFlux, 1e-9)
	assert.InEpsilon(t, conn.Keq, impliedKeq(conn), 1e-6)
	require.True(t, conn.HasTimeConstant)
	assert.Greater(t, conn.TimeConstant, 0.0)
}

// TestFlux_ZeroConcentrationCoreactant: a (2,1) step with an absent
// coreactant can still equilibrate by running in reverse.
func TestFlux_ZeroConcentrationCoreactant(t *testing.T) {
	opts := connection.DefaultOptions()
	conn, err := connection.Evaluate(inert(3), []float64{1.0, 0.0, 0.5}, connection.Params{
		Reactant: 0, Coreactant: 1,
		Product: 2, Coproduct: connection.NoSpecies,
		Temperature: 298, Kf: 1.0, Kb: 1.0, HasRates: true,
	}, &opts)
	require.NoError(t, err)

	assert.Less(t, conn.EquilibriumFlux, 0.0, "reaction must run backwards to make coreactant")
	assert.InEpsilon(t, conn.Keq, impliedKeq(conn), 1e-6)
	for _, c := range []float64{
		conn.ReactantConc - conn.EquilibriumFlux,
		conn.CoreactantConc - conn.EquilibriumFlux,
		conn.ProductConc + conn.EquilibriumFlux,
	} {
		assert.Greater(t, c, 0.0)
	}
}

// TestFlux_UnsatisfiableStep: with kb=0 the equilibrium constant is
// infinite and no finite flux satisfies it, so Evaluate reports an
// equilibration failure carrying the step's rates.
func TestFlux_UnsatisfiableStep(t *testing.T) {
	opts := connection.DefaultOptions()
	_, err := connection.Evaluate(inert(2), []float64{1.0, 1.0}, connection.Params{
		Reactant: 0, Coreactant: connection.NoSpecies,
		Product: 1, Coproduct: connection.NoSpecies,
		Temperature: 298, Kf: 3.0, Kb: 0.0, HasRates: true,
	}, &opts)
	require.ErrorIs(t, err, connection.ErrEquilibration)

	var eqErr *connection.EquilibrationError
	require.ErrorAs(t, err, &eqErr)
	assert.Equal(t, 3.0, eqErr.Kf)
	assert.Equal(t, 0.0, eqErr.Kb)
	assert.True(t, eqErr.HasRates)
}
