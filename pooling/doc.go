// Package pooling groups species into fast-equilibrium pools and scans
// pooling behavior across timescales.
//
// 🚀 What is pooling?
//
//	Given a batch of evaluated connections and a characteristic time
//	theta, BuildPools classifies each connection as fast (time constant
//	below theta) and strong (flux is a chemically significant fraction
//	of the smaller pool), computes directed fast-reachability by a
//	bounded fixed point over bit-sets, and resolves pool groups as
//	symmetric closures: two species pool iff each reaches the other.
//	Species reachable only one way are "broken" and purged from every
//	group. ScanPoolingTimes then sweeps theta down a log-decade ladder
//	covering all observed time constants and records, per species pair,
//	the largest decade exponent at which the pair first pooled.
//
// ✨ Key features:
//   - arena-indexed bit-sets: closure in O(N) rounds × O(N²/64) words
//   - deterministic broken-pool purge (snapshot-based, species-local)
//   - first-assignment-wins matrix: descending sweep means the first
//     pooled threshold is the largest valid one
//   - failed/rate-less connections simply contribute no fast edge
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/eqpool/pooling"
//
//	res, err := pooling.BuildPools(conns, speciesCount, 1e-3)
//	mtx, err := pooling.ScanPoolingTimes(conns, speciesCount)
//	if v, ok := mtx.At(i, j); ok { ... } // log10 exponent of pooling time
//
// Complexity:
//
//	BuildPools        — O(C + N²·N/64) time, O(N²/64) memory
//	ScanPoolingTimes  — one BuildPools per log decade in the observed range
package pooling
