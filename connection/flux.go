package connection

import (
	"math"

	"github.com/katalvlaran/eqpool/rootfind"
)

// solveFlux computes the net equilibrium flux x for the step's
// mass-action balance and stores it on c.
//
// Balance equations by class (x = net forward extent of reaction):
//
//	(1,1): (P+x)         = (R−x)·Keq
//	(2,1): (P+x)         = (R−x)(R′−x)·Keq
//	(1,2): (P+x)(P′+x)   = (R−x)·Keq
//	(2,2): (P+x)(P′+x)   = (R−x)(R′−x)·Keq
//
// Algorithm Outline:
//  1. Degenerate shortcut: both limiting concentrations below the floor
//     means the state is numerically equilibrated; the flux is zero.
//  2. Start from the closed-form quadratic/linear initial guess for the
//     class. A guess violating positivity of all post-flux
//     concentrations (or exactly zero) falls back to a bracket guess:
//     half the limiting reactant concentration when the instantaneous
//     reaction quotient is below Keq, else minus half the limiting
//     product concentration.
//  3. Newton-solve the balance, then verify the solved flux reproduces
//     Keq within 1e-6 in log10 with all post-flux concentrations
//     non-negative.
//  4. On verification failure, reactant-limited classes retry with the
//     reformulated unknown y = MinReactantConc − x, which conditions the
//     balance near the depletion boundary. A second failure is final.
func solveFlux(c *Connection, solver *rootfind.Options) error {
	mr, dr := c.MinReactantConc, c.DeltaReactantConc
	mp, dp := c.MinProductConc, c.DeltaProductConc
	rc, crc := c.ReactantConc, c.CoreactantConc
	pc, cpc := c.ProductConc, c.CoproductConc
	keq := c.Keq

	// Stage 1: Degenerate shortcut — numerically equilibrated state.
	if math.Max(mr, mp) < concFloor {
		c.EquilibriumFlux = 0
		return nil
	}

	// Stage 2: Per-class balance, instantaneous quotient and initial guess.
	var balance rootfind.Func
	var instK, guess float64
	switch c.Class {
	case OneOne:
		instK = quotient(pc, rc)
		guess = (keq*rc - pc) / (keq + 1)
		balance = func(x float64) float64 {
			return (pc + x) - (rc-x)*keq
		}
	case TwoOne:
		instK = quotient(pc, rc*crc)
		guess = (2*keq*mr + keq*dr - math.Sqrt(keq*keq*dr*dr+4*keq*mr+4*keq*pc+2*keq*dr+1) + 1) / (2 * keq)
		balance = func(x float64) float64 {
			return (pc + x) - (rc-x)*(crc-x)*keq
		}
	case OneTwo:
		instK = quotient(pc*cpc, rc)
		guess = -keq/2 - mp - dp/2 + math.Sqrt(keq*keq+4*keq*rc+4*keq*mp+2*keq*dp+dp*dp)/2
		balance = func(x float64) float64 {
			return (pc+x)*(cpc+x) - (rc-x)*keq
		}
	case TwoTwo:
		// Small-remainder shortcut: equilibrium leaves less reactant than
		// numerical precision can represent.
		if dr != 0 && (pc+mr)*(cpc+mr)/keq/dr < concFloor {
			c.EquilibriumFlux = 0
			return nil
		}
		instK = quotient(pc*cpc, rc*crc)
		guess = (2*keq*mr + keq*dr + 2*mp + dp -
			math.Sqrt(keq*keq*dr*dr+4*keq*mr*mr+8*keq*mr*mp+4*keq*mr*dp+4*keq*mr*dr+
				4*keq*mp*mp+4*keq*mp*dp+4*keq*mp*dr+2*keq*dr*dp+dp*dp)) / (2 * (keq - 1))
		balance = func(x float64) float64 {
			return (pc+x)*(cpc+x) - (rc-x)*(crc-x)*keq
		}
	default:
		return ErrUnsupportedStoichiometry
	}
	if !positiveAfterFlux(c, guess) || guess == 0 {
		if instK/keq < 1 {
			guess = mr / 2
		} else {
			guess = -mp / 2
		}
	}

	// Stage 3: Solve and verify. A solver error is not final by itself:
	// the best iterate still goes through verification.
	x, _ := rootfind.FindRoot(balance, guess, solver)
	c.EquilibriumFlux = x
	if fluxMatchesKeq(c) {
		return nil
	}

	// Stage 4: Reformulated retry near the reactant-depletion boundary.
	if retryReformulated(c, instK, solver) && fluxMatchesKeq(c) {
		return nil
	}
	return &EquilibrationError{
		Reactant: c.Reactant, Coreactant: c.Coreactant,
		Product: c.Product, Coproduct: c.Coproduct,
		Kf: c.Kf, Kb: c.Kb, HasRates: c.HasRates,
	}
}

// retryReformulated re-solves the balance in y = MinReactantConc − x for
// reactant-limited (1,1)/(2,1)/(2,2) cases. Reports whether a retry ran.
func retryReformulated(c *Connection, instK float64, solver *rootfind.Options) bool {
	mr, dr := c.MinReactantConc, c.DeltaReactantConc
	pc, cpc := c.ProductConc, c.CoproductConc
	keq := c.Keq
	if !(instK/keq < 1) {
		return false
	}

	var reform rootfind.Func
	var guess float64
	switch c.Class {
	case TwoTwo:
		// Only worth reformulating when the solved flux sits hard against
		// the boundary; the log ratio guards its own domain.
		ratio := (mr - c.EquilibriumFlux) / mr
		if !(ratio > 0) || math.Abs(math.Log10(ratio)) <= 1e-5 {
			return false
		}
		reform = func(y float64) float64 {
			return (pc+mr-y)*(cpc+mr-y) - y*(dr+y)*keq
		}
		guess = (pc + mr) * (cpc + mr) / dr / keq
	case TwoOne:
		if dr == 0 || !((pc+mr)/dr/keq/mr < 1e-5) {
			return false
		}
		reform = func(y float64) float64 {
			return (pc + mr - y) - y*(dr+y)*keq
		}
		guess = (pc + mr) / (dr * keq)
	case OneOne:
		reform = func(y float64) float64 {
			return (pc + mr - y) - y*keq
		}
		guess = (pc + mr) / (keq + 1)
	default:
		return false
	}

	y, _ := rootfind.FindRoot(reform, guess, solver)
	c.EquilibriumFlux = mr - y
	return true
}

// quotient is the instantaneous reaction quotient num/den, +Inf when the
// reactant side is fully depleted.
func quotient(num, den float64) float64 {
	if den == 0 {
		return math.Inf(1)
	}
	return num / den
}

// positiveAfterFlux reports whether every post-flux concentration stays
// strictly positive at extent x. NaN fails every comparison, so a
// non-finite guess is rejected here as well.
func positiveAfterFlux(c *Connection, x float64) bool {
	if !(c.ReactantConc-x > 0) || !(c.ProductConc+x > 0) {
		return false
	}
	if c.Coreactant != NoSpecies && !(c.CoreactantConc-x > 0) {
		return false
	}
	if c.Coproduct != NoSpecies && !(c.CoproductConc+x > 0) {
		return false
	}
	return true
}

// fluxMatchesKeq verifies the solved flux: all post-flux concentrations
// non-negative and the implied equilibrium constant within keqLogTol of
// Keq in log10.
func fluxMatchesKeq(c *Connection) bool {
	x := c.EquilibriumFlux
	if c.ReactantConc-x < 0 || c.ProductConc+x < 0 {
		return false
	}
	if c.Coreactant != NoSpecies && c.CoreactantConc-x < 0 {
		return false
	}
	if c.Coproduct != NoSpecies && c.CoproductConc+x < 0 {
		return false
	}

	var implied float64
	switch c.Class {
	case OneOne:
		implied = (c.ProductConc + x) / (c.ReactantConc - x)
	case TwoOne:
		implied = (c.ProductConc + x) / (c.ReactantConc - x) / (c.CoreactantConc - x)
	case OneTwo:
		implied = (c.ProductConc + x) * (c.CoproductConc + x) / (c.ReactantConc - x)
	case TwoTwo:
		implied = (c.ProductConc + x) * (c.CoproductConc + x) /
			(c.ReactantConc - x) / (c.CoreactantConc - x)
	default:
		return false
	}

	ratio := c.Keq / implied
	if !(ratio > 0) || math.IsInf(ratio, 0) {
		return false
	}
	return math.Abs(math.Log10(ratio)) <= keqLogTol
}
