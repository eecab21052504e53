package connection

import (
	"fmt"
	"math"

	"github.com/katalvlaran/eqpool/species"
)

// Evaluate builds a fully evaluated Connection for one elementary step.
//
// Algorithm Outline:
//  1. Derive the stoichiometry class from which co-indices are present
//     and summarize concentrations (min and spread per side).
//  2. Compute reaction enthalpy/free-energy deltas (product side minus
//     reactant side) from the species thermo capability.
//  3. Compute Keq: kf/kb when both rates are supplied (+Inf for kb = 0),
//     otherwise exp(−ΔG/RT)·(P_ref/RT)^(products−reactants).
//  4. Solve the mass-action balance for the net equilibrium flux and
//     verify it reproduces Keq within 1e-6 in log10 (see flux.go).
//  5. With rate constants present, derive the closed-form time to 90% of
//     the equilibrium flux (see timeconst.go).
//  6. With a Comparer configured, store the reactant/product structural
//     bond-overlap score.
//
// Errors: ErrSpeciesIndex, ErrUnsupportedStoichiometry, and
// *EquilibrationError (wrapping ErrEquilibration) when the flux cannot
// be verified even after the reformulated retry.
func Evaluate(thermo []species.Species, conc []float64, p Params, opts *Options) (*Connection, error) {
	// Stage 1: Resolve options
	defaults := DefaultOptions()
	if opts == nil {
		opts = &defaults
	}

	// Stage 2: Validate indices
	n := len(conc)
	if len(thermo) < n {
		n = len(thermo)
	}
	for _, idx := range []int{p.Reactant, p.Product} {
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("index %d of %d species: %w", idx, n, ErrSpeciesIndex)
		}
	}
	for _, idx := range []int{p.Coreactant, p.Coproduct} {
		if idx != NoSpecies && (idx < 0 || idx >= n) {
			return nil, fmt.Errorf("co-index %d of %d species: %w", idx, n, ErrSpeciesIndex)
		}
	}

	// Stage 3: Identity, class and concentration summaries
	c := &Connection{
		Reactant:     p.Reactant,
		Coreactant:   p.Coreactant,
		Product:      p.Product,
		Coproduct:    p.Coproduct,
		ReactantConc: conc[p.Reactant],
		ProductConc:  conc[p.Product],
		Temperature:  p.Temperature,
		Kf:           p.Kf,
		Kb:           p.Kb,
		HasRates:     p.HasRates,
		key:          makeKey(p.Reactant, p.Coreactant, p.Product, p.Coproduct),
	}
	switch {
	case p.Coreactant != NoSpecies && p.Coproduct != NoSpecies:
		c.Class = TwoTwo
	case p.Coreactant != NoSpecies:
		c.Class = TwoOne
	case p.Coproduct != NoSpecies:
		c.Class = OneTwo
	default:
		c.Class = OneOne
	}
	if p.Coreactant != NoSpecies {
		c.CoreactantConc = conc[p.Coreactant]
		c.MinReactantConc = math.Min(c.ReactantConc, c.CoreactantConc)
		c.DeltaReactantConc = math.Max(c.ReactantConc, c.CoreactantConc) - c.MinReactantConc
	} else {
		c.MinReactantConc = c.ReactantConc
	}
	if p.Coproduct != NoSpecies {
		c.CoproductConc = conc[p.Coproduct]
		c.MinProductConc = math.Min(c.ProductConc, c.CoproductConc)
		c.DeltaProductConc = math.Max(c.ProductConc, c.CoproductConc) - c.MinProductConc
	} else {
		c.MinProductConc = c.ProductConc
	}

	// Stage 4: Reaction thermodynamics (product side minus reactant side)
	temp := p.Temperature
	c.DeltaH = thermo[p.Product].Enthalpy(temp) - thermo[p.Reactant].Enthalpy(temp)
	c.DeltaG = thermo[p.Product].FreeEnergy(temp) - thermo[p.Reactant].FreeEnergy(temp)
	if p.Coproduct != NoSpecies {
		c.DeltaH += thermo[p.Coproduct].Enthalpy(temp)
		c.DeltaG += thermo[p.Coproduct].FreeEnergy(temp)
	}
	if p.Coreactant != NoSpecies {
		c.DeltaH -= thermo[p.Coreactant].Enthalpy(temp)
		c.DeltaG -= thermo[p.Coreactant].FreeEnergy(temp)
	}

	// Stage 5: Equilibrium constant
	if p.HasRates {
		if p.Kb == 0 {
			c.Keq = math.Inf(1)
		} else {
			c.Keq = p.Kf / p.Kb
		}
	} else {
		// Gas-phase standard state converted to concentration units.
		reactants, products := c.Class.counts()
		c.Keq = math.Exp(-c.DeltaG/(GasConstant*temp)) *
			math.Pow(RefPressure/(GasConstant*temp), float64(products-reactants))
	}

	// Stage 6: Equilibrium flux and time constant
	if err := solveFlux(c, &opts.Solver); err != nil {
		return nil, err
	}
	if err := deriveTimeConstant(c); err != nil {
		return nil, err
	}

	// Stage 7: Structural similarity (delegated)
	if opts.Comparer != nil {
		bonds, err := opts.Comparer.Compare(thermo[p.Reactant], thermo[p.Product])
		if err != nil {
			return nil, fmt.Errorf("connection: structure comparison %d→%d: %w", p.Reactant, p.Product, err)
		}
		c.SubstructureBonds = bonds
	}
	return c, nil
}

// counts returns (reactantCount, productCount) for the class.
func (c Class) counts() (int, int) {
	switch c {
	case OneOne:
		return 1, 1
	case TwoOne:
		return 2, 1
	case OneTwo:
		return 1, 2
	case TwoTwo:
		return 2, 2
	}
	return 0, 0
}

// EvaluateAll evaluates a batch of steps with per-connection failure
// isolation: a failed step never aborts the batch. The returned errors
// (one per failed step, indices attached) are the caller's diagnostic
// surface; failed steps do not appear among the returned connections.
func EvaluateAll(thermo []species.Species, conc []float64, params []Params, opts *Options) ([]*Connection, []error) {
	conns := make([]*Connection, 0, len(params))
	var failures []error
	for _, p := range params {
		conn, err := Evaluate(thermo, conc, p, opts)
		if err != nil {
			failures = append(failures, fmt.Errorf("step %d(+%d)→%d(+%d): %w",
				p.Reactant, p.Coreactant, p.Product, p.Coproduct, err))
			continue
		}
		conns = append(conns, conn)
	}
	return conns, failures
}

// FromReactions expands observed reactions into evaluation parameters:
// for every reactant/product pairing of every reaction, the forward step
// and its reversal (with kf and kb swapped). Index value NoSpecies (−1)
// in the reactant/product lists denotes an absent second participant.
// Reactions with zero or more than two participants on a side return
// ErrUnsupportedStoichiometry.
func FromReactions(reactants, products [][]int, kf, kb []float64, temperature float64) ([]Params, error) {
	params := make([]Params, 0, 2*len(reactants))
	for i := range reactants {
		rIDs := present(reactants[i])
		pIDs := present(products[i])
		if len(rIDs) < 1 || len(rIDs) > 2 || len(pIDs) < 1 || len(pIDs) > 2 {
			return nil, fmt.Errorf("reaction %d with %d reactants, %d products: %w",
				i, len(rIDs), len(pIDs), ErrUnsupportedStoichiometry)
		}
		for j := range rIDs {
			for k := range pIDs {
				params = append(params, Params{
					Reactant:    rIDs[j],
					Coreactant:  other(rIDs, j),
					Product:     pIDs[k],
					Coproduct:   other(pIDs, k),
					Temperature: temperature,
					Kf:          kf[i],
					Kb:          kb[i],
					HasRates:    true,
				})
				params = append(params, Params{
					Reactant:    pIDs[k],
					Coreactant:  other(pIDs, k),
					Product:     rIDs[j],
					Coproduct:   other(rIDs, j),
					Temperature: temperature,
					Kf:          kb[i],
					Kb:          kf[i],
					HasRates:    true,
				})
			}
		}
	}
	return params, nil
}

// present filters NoSpecies markers out of an index list.
func present(ids []int) []int {
	kept := make([]int, 0, len(ids))
	for _, id := range ids {
		if id != NoSpecies {
			kept = append(kept, id)
		}
	}
	return kept
}

// other returns the second participant of a side, or NoSpecies for a
// single-participant side.
func other(ids []int, i int) int {
	if len(ids) == 2 {
		return ids[1-i]
	}
	return NoSpecies
}
