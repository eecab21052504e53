// Package eqpool reduces chemical reaction networks by detecting species
// that sit in fast mutual equilibrium and grouping them into pools.
//
// 🚀 What is eqpool?
//
//	Given species concentrations and pairwise reaction connections, eqpool
//	answers one question: which species equilibrate with each other faster
//	than a chosen characteristic timescale? It combines:
//		• Per-connection equilibrium analysis: equilibrium constants,
//		  a nonlinear net-flux solver, and closed-form time-to-equilibrium
//		  constants for four stoichiometry classes
//		• Pool resolution: fast/strong edge classification, bounded
//		  fixed-point reachability, symmetric-closure pool groups
//		• Multi-scale scanning: a descending log-decade threshold sweep
//		  producing a species×species pooling-time matrix
//
// ✨ Why choose eqpool?
//
//   - Deterministic – fixed solver tolerances and bounded iteration, same
//     inputs always give the same matrix
//   - Pure computation – no I/O inside the core, collaborators enter
//     through small capability interfaces
//   - Diagnosable – one bad connection never aborts a batch; failures
//     carry the offending indices and rate constants
//
// Everything is organized under four subpackages plus a CLI:
//
//	species/    — thermo & structure capability interfaces, NASA-7 model
//	rootfind/   — safeguarded scalar Newton root finder
//	connection/ — Connection records, flux solver, time constants
//	pooling/    — pool builder, threshold scanner, pooling-time matrix
//	cmd/eqpool/ — YAML scenario in, pooling-time matrix out
//
// Quick ASCII example:
//
//	A ⇄ B → C
//
//	A and B equilibrate both ways below the timescale: they pool.
//	C is reached one-way only: it is a broken pool and stays out.
//
// Dive into README.md and the per-package docs for formulas, invariants
// and worked scenarios.
//
//	go get github.com/katalvlaran/eqpool
package eqpool
