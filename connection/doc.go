// Package connection evaluates one elementary reaction step between up
// to four species: equilibrium constant, net equilibrium flux, and a
// closed-form time-to-equilibrium constant.
//
// 🚀 What is connection?
//
//	A Connection is a directed step A (+A′) → B (+B′). Evaluating it
//	answers three questions at the given concentrations and temperature:
//	  • Where is equilibrium? (Keq from rate constants or from ΔG)
//	  • How far is the system from it? (net flux x solving the
//	    mass-action balance for the step's stoichiometry class)
//	  • How fast does it get 90% of the way there? (branch-specific
//	    closed forms from the linearized flux ODE)
//
// ✨ Key features:
//   - four stoichiometry classes: (1,1), (2,1), (1,2), (2,2)
//   - closed-form initial guesses + bracket fallback feed a bounded
//     Newton solve; every solution is verified against Keq in log10
//   - a reformulated retry rescues reactant-limited boundary cases
//   - direction-insensitive identity keys and batch deduplication
//   - per-connection failure isolation: EvaluateAll never aborts a batch
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/eqpool/connection"
//
//	opts := connection.DefaultOptions()
//	conn, err := connection.Evaluate(thermo, conc, connection.Params{
//		Reactant: 0, Product: 1, Coreactant: connection.NoSpecies,
//		Coproduct: connection.NoSpecies,
//		Temperature: 298, Kf: 1.0, Kb: 0.1, HasRates: true,
//	}, &opts)
//
// Errors:
//   - ErrUnsupportedStoichiometry — class outside the four supported ones
//   - ErrEquilibration            — flux verification failed after retry;
//     returned wrapped in *EquilibrationError carrying the indices and
//     rate constants of the offending step
//   - ErrSpeciesIndex             — an index is outside the species arrays
package connection
