package species_test

import (
	"testing"

	"github.com/katalvlaran/eqpool/species"
	"github.com/stretchr/testify/assert"
)

// TestConstant_FreeEnergy verifies G = H298 − T·S298 for the constant model.
func TestConstant_FreeEnergy(t *testing.T) {
	c := species.Constant{H298: -50000.0, S298: 100.0}

	assert.Equal(t, -50000.0, c.Enthalpy(298.0), "enthalpy is temperature independent")
	assert.InDelta(t, -50000.0-298.0*100.0, c.FreeEnergy(298.0), 1e-9, "G must be H-T*S")
}

// TestNASA7_ThermoIdentity checks H, S and the G = H − T·S identity on a
// simple coefficient set (a1 only: Cp = a1·R, ideal rigid model).
func TestNASA7_ThermoIdentity(t *testing.T) {
	n := species.NASA7{Coeffs: [7]float64{3.5, 0, 0, 0, 0, -1000.0, 4.0}}
	temp := 500.0

	wantH := species.R * temp * (3.5 - 1000.0/temp)
	assert.InDelta(t, wantH, n.Enthalpy(temp), 1e-9, "enthalpy from a1 and a6 terms")

	g := n.Enthalpy(temp) - temp*n.Entropy(temp)
	assert.InDelta(t, g, n.FreeEnergy(temp), 1e-9, "free energy identity")
}

// TestComparerFunc_Adapts ensures the function adapter satisfies Comparer.
func TestComparerFunc_Adapts(t *testing.T) {
	var cmp species.Comparer = species.ComparerFunc(func(a, b species.Species) (int, error) {
		return 7, nil
	})

	n, err := cmp.Compare(species.Constant{}, species.Constant{})
	assert.NoError(t, err)
	assert.Equal(t, 7, n)
}
