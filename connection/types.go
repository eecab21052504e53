package connection

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/eqpool/rootfind"
	"github.com/katalvlaran/eqpool/species"
)

// NoSpecies marks an absent coreactant/coproduct index.
const NoSpecies = -1

// Physical constants and numerical floors shared by the evaluator.
const (
	// GasConstant is the molar gas constant R, J/(mol·K).
	GasConstant = species.R

	// RefPressure (Pa) converts a gas-phase standard-state equilibrium
	// constant into concentration units in the thermodynamic Keq route.
	RefPressure = 100000.0

	// concFloor: below this concentration a species is numerically empty.
	concFloor = 1e-18

	// fluxFloor: an equilibrium flux below this magnitude means the step
	// is already equilibrated within numerical precision.
	fluxFloor = 1e-16

	// keqLogTol: maximum |log10(Keq_implied/Keq)| accepted from the solver.
	keqLogTol = 1e-6

	// symmetricRateTol: |kb/kf − 1| at or below this switches the (2,2)
	// time constant to the near-singular-safe closed form.
	symmetricRateTol = 1e-3

	// targetFluxFraction: the time constant measures time to reach this
	// fraction of the equilibrium flux.
	targetFluxFraction = 0.9
)

// Class is the stoichiometry class of a step: (reactant count, product count).
type Class uint8

const (
	// OneOne is A → B.
	OneOne Class = iota
	// TwoOne is A + A′ → B.
	TwoOne
	// OneTwo is A → B + B′.
	OneTwo
	// TwoTwo is A + A′ → B + B′.
	TwoTwo
)

// String implements fmt.Stringer.
func (c Class) String() string {
	switch c {
	case OneOne:
		return "(1,1)"
	case TwoOne:
		return "(2,1)"
	case OneTwo:
		return "(1,2)"
	case TwoTwo:
		return "(2,2)"
	}
	return fmt.Sprintf("Class(%d)", uint8(c))
}

var (
	// ErrUnsupportedStoichiometry is returned for any class outside the
	// four supported reaction stoichiometries.
	ErrUnsupportedStoichiometry = errors.New("connection: unsupported reaction stoichiometry")

	// ErrEquilibration is returned when the flux solver's verification
	// check fails even after the reformulated retry.
	ErrEquilibration = errors.New("connection: equilibrium flux verification failed")

	// ErrSpeciesIndex is returned when a participant index is outside the
	// species/concentration arrays.
	ErrSpeciesIndex = errors.New("connection: species index out of range")
)

// EquilibrationError carries the identity of a step whose flux solve
// could not be verified, for diagnosis at the caller's logging boundary.
type EquilibrationError struct {
	Reactant, Coreactant int
	Product, Coproduct   int
	Kf, Kb               float64
	HasRates             bool
}

// Error implements the error interface.
func (e *EquilibrationError) Error() string {
	if e.HasRates {
		return fmt.Sprintf("connection: equilibration failed for %d(+%d)→%d(+%d) kf=%g kb=%g",
			e.Reactant, e.Coreactant, e.Product, e.Coproduct, e.Kf, e.Kb)
	}
	return fmt.Sprintf("connection: equilibration failed for %d(+%d)→%d(+%d) (thermodynamic Keq)",
		e.Reactant, e.Coreactant, e.Product, e.Coproduct)
}

// Unwrap makes errors.Is(err, ErrEquilibration) hold.
func (e *EquilibrationError) Unwrap() error { return ErrEquilibration }

// side is one side of an identity Key: the named species and its
// co-species (NoSpecies when absent).
type side struct {
	Major, Co int
}

// Key identifies the physical step regardless of direction of discovery:
// an unordered pair of (major, co) sides. Two connections constructed in
// opposite directions over the same species compare equal.
type Key struct {
	Lo, Hi side
}

// makeKey canonicalizes the two sides by lexicographic order.
func makeKey(reactant, coreactant, product, coproduct int) Key {
	a := side{Major: reactant, Co: coreactant}
	b := side{Major: product, Co: coproduct}
	if b.Major < a.Major || (b.Major == a.Major && b.Co < a.Co) {
		a, b = b, a
	}
	return Key{Lo: a, Hi: b}
}

// Params describes one step to evaluate. Coreactant/Coproduct are
// NoSpecies when the side has a single participant. Kf/Kb are in effect
// only when HasRates is true; otherwise Keq is derived from ΔG.
type Params struct {
	Reactant, Coreactant int
	Product, Coproduct   int
	Temperature          float64
	Kf, Kb               float64
	HasRates             bool
}

// Options configures evaluation.
//   - Solver: tolerances and iteration cap for the flux root solve.
//     Fixed bounds keep results reproducible across runs (same inputs,
//     same flux, same time constant).
//   - Comparer: optional structural-similarity collaborator; when set,
//     the reactant/product bond-overlap count is stored on the Connection.
type Options struct {
	Solver   rootfind.Options
	Comparer species.Comparer
}

// DefaultOptions returns evaluation defaults: the rootfind defaults and
// no structural comparer.
func DefaultOptions() Options {
	return Options{Solver: rootfind.DefaultOptions()}
}

// Connection is one evaluated elementary step. Constructed by Evaluate
// and immutable afterwards except for the PoolingTime ratchet.
type Connection struct {
	// Identity. Coreactant/Coproduct are NoSpecies when absent.
	Reactant, Coreactant int
	Product, Coproduct   int
	Class                Class

	// Inputs.
	ReactantConc, CoreactantConc float64
	ProductConc, CoproductConc   float64
	Temperature                  float64
	Kf, Kb                       float64
	HasRates                     bool

	// Derived concentration summaries. For a single-participant side the
	// min is the participant's concentration and the delta is zero.
	MinReactantConc, DeltaReactantConc float64
	MinProductConc, DeltaProductConc   float64

	// Thermodynamics: product side minus reactant side, J/mol.
	DeltaH, DeltaG float64

	// Equilibrium solution.
	Keq             float64
	EquilibriumFlux float64

	// TimeConstant is the time to 90% of equilibrium flux; valid only
	// when HasTimeConstant (requires both rate constants).
	TimeConstant    float64
	HasTimeConstant bool

	// SubstructureBonds is the collaborator-computed bond-overlap count
	// between reactant and product structures (0 when no Comparer).
	SubstructureBonds int

	// PoolingTime is ratcheted downward by callers during incremental
	// processing; valid only when HasPoolingTime.
	PoolingTime    float64
	HasPoolingTime bool

	key Key
}

// Key returns the direction-insensitive identity of the step.
func (c *Connection) Key() Key { return c.key }

// SameStep reports whether two connections represent the same physical
// step regardless of direction of discovery.
func (c *Connection) SameStep(other *Connection) bool { return c.key == other.key }

// RatchetPoolingTime records t as the pooling time if no time is set yet
// or t is smaller than the recorded one (keep-minimum-seen semantics).
func (c *Connection) RatchetPoolingTime(t float64) {
	if !c.HasPoolingTime || c.PoolingTime > t {
		c.PoolingTime = t
		c.HasPoolingTime = true
	}
}

// Dedup returns the hypothesized connections whose identity key does not
// already appear among the observed ones. Duplicate keys are collected
// into a set first; nothing is removed while scanning.
func Dedup(observed, hypothesized []*Connection) []*Connection {
	seen := make(map[Key]struct{}, len(observed))
	for _, c := range observed {
		seen[c.key] = struct{}{}
	}
	kept := make([]*Connection, 0, len(hypothesized))
	for _, c := range hypothesized {
		if _, dup := seen[c.key]; !dup {
			kept = append(kept, c)
		}
	}
	return kept
}
