// Package species defines the capability interfaces the pooling core
// expects from species records, plus two small reference thermo models.
//
// 🚀 What is species?
//
//	The equilibrium-pooling core never inspects concrete species types.
//	It only needs, per species:
//	  • Enthalpy(T)   — standard enthalpy at temperature T, J/mol
//	  • FreeEnergy(T) — standard Gibbs free energy at T, J/mol
//	plus, optionally, a structural-similarity collaborator that scores
//	bond overlap between two species (Comparer).
//
// ✨ Key pieces:
//   - Species    — the thermo capability interface
//   - NASA7      — 7-coefficient NASA polynomial thermo model
//   - Constant   — fixed H298/S298 thermo, handy for tests & scenarios
//   - Comparer   — substructure-overlap scoring collaborator
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/eqpool/species"
//
//	h2o := species.NASA7{Coeffs: [7]float64{...}}
//	dG := h2o.FreeEnergy(298.0)
//
// Any richer species implementation elsewhere in a simulation stack
// satisfies Species automatically; no adapters needed.
package species
