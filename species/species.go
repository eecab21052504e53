package species

import "math"

// R is the molar gas constant, J/(mol·K).
const R = 8.314462618

// Species is the thermodynamic capability the pooling core requires.
// Both methods take a temperature in kelvin and return J/mol.
type Species interface {
	Enthalpy(temperature float64) float64
	FreeEnergy(temperature float64) float64
}

// Comparer scores structural similarity between two species as a
// bond-overlap count (e.g. the bond count of a maximum common
// substructure). Implementations typically live outside the core and
// type-assert their own concrete species type.
type Comparer interface {
	Compare(a, b Species) (int, error)
}

// ComparerFunc adapts a plain function to the Comparer interface.
type ComparerFunc func(a, b Species) (int, error)

// Compare calls f(a, b).
func (f ComparerFunc) Compare(a, b Species) (int, error) { return f(a, b) }

// NASA7 is the classic 7-coefficient NASA polynomial thermo model:
//
//	Cp/R = a1 + a2·T + a3·T² + a4·T³ + a5·T⁴
//	H/RT = a1 + a2·T/2 + a3·T²/3 + a4·T³/4 + a5·T⁴/5 + a6/T
//	S/R  = a1·ln(T) + a2·T + a3·T²/2 + a4·T³/3 + a5·T⁴/4 + a7
//
// Coeffs holds a1..a7. Tmin/Tmax document the fitted range; evaluation
// does not clamp.
type NASA7 struct {
	Coeffs     [7]float64
	Tmin, Tmax float64
}

// Enthalpy returns H(T) in J/mol.
func (n NASA7) Enthalpy(temperature float64) float64 {
	t := temperature
	a := n.Coeffs
	return R * t * (a[0] + a[1]*t/2 + a[2]*t*t/3 + a[3]*t*t*t/4 + a[4]*t*t*t*t/5 + a[5]/t)
}

// Entropy returns S(T) in J/(mol·K).
func (n NASA7) Entropy(temperature float64) float64 {
	t := temperature
	a := n.Coeffs
	return R * (a[0]*math.Log(t) + a[1]*t + a[2]*t*t/2 + a[3]*t*t*t/3 + a[4]*t*t*t*t/4 + a[6])
}

// FreeEnergy returns G(T) = H(T) − T·S(T) in J/mol.
func (n NASA7) FreeEnergy(temperature float64) float64 {
	return n.Enthalpy(temperature) - temperature*n.Entropy(temperature)
}

// Constant is a temperature-independent thermo model: fixed standard
// enthalpy and entropy. Useful in tests and hand-written scenarios.
type Constant struct {
	H298 float64 // J/mol
	S298 float64 // J/(mol·K)
}

// Enthalpy returns H298 regardless of temperature.
func (c Constant) Enthalpy(_ float64) float64 { return c.H298 }

// FreeEnergy returns H298 − T·S298.
func (c Constant) FreeEnergy(temperature float64) float64 {
	return c.H298 - temperature*c.S298
}
