package connection_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/eqpool/connection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTimeConstant_OneOneClosedForm checks the (1,1) time constant
// against a hand-computed value: with R=1, P=0, kf=1, kb=0.1 the flux
// is 10/11 and t = ln(10)/1.1.
func TestTimeConstant_OneOneClosedForm(t *testing.T) {
	opts := connection.DefaultOptions()
	conn, err := connection.Evaluate(inert(2), []float64{1.0, 0.0}, connection.Params{
		Reactant: 0, Coreactant: connection.NoSpecies,
		Product: 1, Coproduct: connection.NoSpecies,
		Temperature: 298, Kf: 1.0, Kb: 0.1, HasRates: true,
	}, &opts)
	require.NoError(t, err)

	require.True(t, conn.HasTimeConstant)
	assert.InDelta(t, math.Log(10)/1.1, conn.TimeConstant, 1e-6)
}

// TestTimeConstant_MirrorClasses: a (2,1) step and its reversal as a
// (1,2) step describe the same approach to the same equilibrium, so
// their time constants agree.
func TestTimeConstant_MirrorClasses(t *testing.T) {
	opts := connection.DefaultOptions()
	conc := []float64{0.8, 0.3, 0.2}

	fwd, err := connection.Evaluate(inert(3), conc, connection.Params{
		Reactant: 0, Coreactant: 1,
		Product: 2, Coproduct: connection.NoSpecies,
		Temperature: 298, Kf: 5.0, Kb: 1.0, HasRates: true,
	}, &opts)
	require.NoError(t, err)
	rev, err := connection.Evaluate(inert(3), conc, connection.Params{
		Reactant: 2, Coreactant: connection.NoSpecies,
		Product: 0, Coproduct: 1,
		Temperature: 298, Kf: 1.0, Kb: 5.0, HasRates: true,
	}, &opts)
	require.NoError(t, err)

	require.True(t, fwd.HasTimeConstant)
	require.True(t, rev.HasTimeConstant)
	assert.InDelta(t, 0.0, fwd.EquilibriumFlux+rev.EquilibriumFlux, 1e-9,
		"reversed step has the opposite flux")
	assert.InEpsilon(t, fwd.TimeConstant, rev.TimeConstant, 1e-6)
}

// TestTimeConstant_TwoTwoNearUnityAgreement: at kb/kf = 1−1e-4 the
// near-unity closed form must agree with the general one, while at
// kb/kf = 1 exactly the general form degenerates and only the alternate
// remains usable.
func TestTimeConstant_TwoTwoNearUnityAgreement(t *testing.T) {
	opts := connection.DefaultOptions()
	conc := []float64{2.0, 3.0, 1.0, 1.5}
	params := connection.Params{
		Reactant: 0, Coreactant: 1, Product: 2, Coproduct: 3,
		Temperature: 298, Kf: 1.0, Kb: 1.0 - 1e-4, HasRates: true,
	}

	conn, err := connection.Evaluate(inert(4), conc, params, &opts)
	require.NoError(t, err)
	require.True(t, conn.HasTimeConstant)

	general, okG := connection.TimeConstant22General(conn)
	nearUnity, okN := connection.TimeConstant22NearUnity(conn)
	require.True(t, okG, "general form is finite just off symmetry")
	require.True(t, okN)
	assert.InEpsilon(t, general, nearUnity, 1e-2, "two forms agree near kb/kf=1")
	assert.InEpsilon(t, nearUnity, conn.TimeConstant, 1e-12,
		"within tolerance the evaluator picks the near-unity form")

	// Exactly symmetric rates: the (kf−kb) denominator vanishes.
	params.Kb = 1.0
	symm, err := connection.Evaluate(inert(4), conc, params, &opts)
	require.NoError(t, err)
	_, okG = connection.TimeConstant22General(symm)
	assert.False(t, okG, "general form degenerates at kb/kf=1")
	_, okN = connection.TimeConstant22NearUnity(symm)
	assert.True(t, okN, "alternate form stays finite")
}

// TestTimeConstant_ZeroFluxShortcut: a flux below the numerical floor
// reports a zero time constant even with rates present.
func TestTimeConstant_ZeroFluxShortcut(t *testing.T) {
	opts := connection.DefaultOptions()
	// Equal concentrations with kf=kb: already at equilibrium.
	conn, err := connection.Evaluate(inert(2), []float64{0.7, 0.7}, connection.Params{
		Reactant: 0, Coreactant: connection.NoSpecies,
		Product: 1, Coproduct: connection.NoSpecies,
		Temperature: 298, Kf: 2.0, Kb: 2.0, HasRates: true,
	}, &opts)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, conn.EquilibriumFlux, 1e-15)
	require.True(t, conn.HasTimeConstant)
	assert.Equal(t, 0.0, conn.TimeConstant)
}
