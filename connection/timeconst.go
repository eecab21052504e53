package connection

import (
	"fmt"
	"math"
)

// deriveTimeConstant stores the closed-form time to 90% of the
// equilibrium flux, obtained by integrating the linearized flux ODE for
// the step's class.
//
// Branches:
//   - no rate constants: the time constant stays absent.
//   - |flux| below the flux floor, or both limiting concentrations below
//     the concentration floor: zero (equilibrated within precision).
//   - (1,1): single logarithmic form in kf, kb and the concentrations.
//   - (2,1) and (1,2): three auxiliary quantities — a normalization root
//     a1 and the two roots a2, a3 of the underlying Riccati-type flux
//     ODE — combined into a logarithmic time formula. The two classes
//     are algebraic mirror images (kf↔kb, reactant↔product sides).
//   - (2,2), rates clearly asymmetric: the same three-quantity structure
//     generalized to four concentrations.
//   - (2,2), kb/kf within symmetricRateTol of 1: an alternate closed
//     form that avoids the near-singular (kf−kb) denominator.
//
// Any logarithm of a non-positive argument or division by a vanished
// denominator is detected before it executes and routed to the
// zero-time-constant shortcut, never surfaced as a NaN.
func deriveTimeConstant(c *Connection) error {
	if !c.HasRates {
		return nil
	}
	if math.Abs(c.EquilibriumFlux) < fluxFloor ||
		math.Max(c.MinReactantConc, c.MinProductConc) < concFloor {
		c.TimeConstant = 0
		c.HasTimeConstant = true
		return nil
	}

	var t float64
	var ok bool
	switch c.Class {
	case OneOne:
		t, ok = timeConstant11(c)
	case TwoOne:
		t, ok = timeConstant21(c)
	case OneTwo:
		t, ok = timeConstant12(c)
	case TwoTwo:
		if math.Abs(c.Kb/c.Kf-1) > symmetricRateTol {
			t, ok = timeConstant22General(c)
		} else {
			t, ok = timeConstant22NearUnity(c)
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedStoichiometry, c.Class)
	}
	if !ok {
		t = 0 // degenerate domain: treat as already equilibrated
	}
	c.TimeConstant = t
	c.HasTimeConstant = true
	return nil
}

// timeConstant11 integrates the (1,1) flux ODE:
//
//	t = ln((−R·kf + P·kb)/(−R·kf + P·kb + (kf+kb)·0.9·x_eq)) / (kf+kb)
func timeConstant11(c *Connection) (float64, bool) {
	kf, kb := c.Kf, c.Kb
	x9 := targetFluxFraction * c.EquilibriumFlux
	num := -c.ReactantConc*kf + c.ProductConc*kb
	den := num + (kf+kb)*x9
	lg, ok := safeLog(num / den)
	if !ok || kf+kb == 0 {
		return 0, false
	}
	return lg / (kf + kb), true
}

// timeConstant21 handles A + A′ → B.
func timeConstant21(c *Connection) (float64, bool) {
	kf, kb := c.Kf, c.Kb
	mr, dr := c.MinReactantConc, c.DeltaReactantConc
	pc := c.ProductConc
	x9 := targetFluxFraction * c.EquilibriumFlux

	radicand := 4*mr*kf*kb + 4*pc*kf*kb + dr*dr*kf*kf + 2*dr*kf*kb + kb*kb
	linear := 2*mr*kf + dr*kf + kb
	a1, a2, a3, ok := riccatiRoots(radicand, linear, 2*kf)
	if !ok {
		return 0, false
	}
	lg, ok := safeLog((x9 + a2) * a3 / (a2 * (x9 + a3)))
	if !ok {
		return 0, false
	}
	return a1 * lg, true
}

// timeConstant12 handles A → B + B′, the algebraic mirror of (2,1).
func timeConstant12(c *Connection) (float64, bool) {
	kf, kb := c.Kf, c.Kb
	mr := c.MinReactantConc
	mp, dp := c.MinProductConc, c.DeltaProductConc
	x9 := targetFluxFraction * c.EquilibriumFlux

	radicand := 4*mp*kb*kf + 4*mr*kb*kf + dp*dp*kb*kb + 2*dp*kb*kf + kf*kf
	linear := 2*mp*kb + dp*kb + kf
	a1, a2, a3, ok := riccatiRoots(radicand, linear, 2*kb)
	if !ok {
		return 0, false
	}
	lg, ok := safeLog((a2 - x9) * a3 / (a2 * (a3 - x9)))
	if !ok {
		return 0, false
	}
	return a1 * lg, true
}

// timeConstant22General handles A + A′ → B + B′ away from kf ≈ kb.
func timeConstant22General(c *Connection) (float64, bool) {
	kf, kb := c.Kf, c.Kb
	mr, dr := c.MinReactantConc, c.DeltaReactantConc
	mp, dp := c.MinProductConc, c.DeltaProductConc
	x9 := targetFluxFraction * c.EquilibriumFlux

	radicand := 4*mr*mr*kf*kb + 8*mr*mp*kf*kb + 4*mr*dp*kf*kb + 4*mr*dr*kf*kb +
		4*mp*mp*kf*kb + 4*mp*dp*kf*kb + 4*mp*dr*kf*kb +
		dp*dp*kb*kb + 2*dp*dr*kf*kb + dr*dr*kf*kf
	linear := 2*mr*kf + 2*mp*kb + dp*kb + dr*kf
	a1, a2, a3, ok := riccatiRoots(radicand, linear, 2*(kf-kb))
	if !ok {
		return 0, false
	}
	lg, ok := safeLog((a2 + x9) * a3 / ((a3 + x9) * a2))
	if !ok {
		return 0, false
	}
	return a1 * lg, true
}

// timeConstant22NearUnity handles (2,2) with kb/kf near 1, where the
// general form's (kf−kb) denominator loses all precision.
func timeConstant22NearUnity(c *Connection) (float64, bool) {
	kf := c.Kf
	mr, dr := c.MinReactantConc, c.DeltaReactantConc
	mp, dp := c.MinProductConc, c.DeltaProductConc
	x9 := targetFluxFraction * c.EquilibriumFlux

	sum := 2*mr + 2*mp + dp + dr
	num := -mr*mr - mr*dr + mp*mp + mp*dp
	den := num + x9*sum
	lg, ok := safeLog(num / den)
	if !ok || kf*sum == 0 {
		return 0, false
	}
	return lg / (kf * sum), true
}

// riccatiRoots computes the normalization root a1 = 1/√radicand and the
// two ODE roots a2 = (−radicand·a1 − linear)/den and
// a3 = (radicand·a1 − linear)/den (note radicand·a1 = √radicand).
// ok is false when the radicand or denominator makes the roots
// non-finite.
func riccatiRoots(radicand, linear, den float64) (a1, a2, a3 float64, ok bool) {
	if !(radicand > 0) || den == 0 {
		return 0, 0, 0, false
	}
	a1 = 1 / math.Sqrt(radicand)
	a2 = (-radicand*a1 - linear) / den
	a3 = (radicand*a1 - linear) / den
	if math.IsNaN(a2) || math.IsInf(a2, 0) || math.IsNaN(a3) || math.IsInf(a3, 0) {
		return 0, 0, 0, false
	}
	return a1, a2, a3, true
}

// safeLog guards the logarithm: ok is false for a non-positive or
// non-finite argument.
func safeLog(arg float64) (float64, bool) {
	if !(arg > 0) || math.IsInf(arg, 0) {
		return 0, false
	}
	return math.Log(arg), true
}
