package pooling

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/eqpool/connection"
)

var (
	// ErrSpeciesCount is returned for a non-positive species count.
	ErrSpeciesCount = errors.New("pooling: species count must be positive")

	// ErrSpeciesIndex is returned when a connection references a species
	// outside [0, speciesCount).
	ErrSpeciesIndex = errors.New("pooling: connection species index out of range")
)

// strongFraction: a connection is strong when its flux (or limiting
// reactant pool, by class) exceeds this fraction of the limiting product
// pool.
const strongFraction = 0.1

// PoolGroup is the sorted set of species indices pooled with one
// species, including itself. Empty for broken species.
type PoolGroup []int

// Result is the outcome of BuildPools at one characteristic time.
type Result struct {
	// Groups[i] lists the species pooled with i. Symmetric:
	// j ∈ Groups[i] iff i ∈ Groups[j].
	Groups []PoolGroup

	// Broken lists species excluded from pooling because fast
	// connectivity to them is one-directional, sorted ascending.
	Broken []int
}

// BuildPools resolves fast-equilibrium pool groups at characteristic
// time theta.
//
// Algorithm Outline:
//  1. Classify: a connection with a known time constant is fast when
//     TimeConstant < theta. (2,2) steps are skipped entirely when the
//     co-species carries less concentration than the named species on
//     either side (minor-species pairing assumption violated). Fast
//     edges are additionally strong when the equilibrium flux exceeds
//     strongFraction of the limiting product pool ((2,2)) or the
//     limiting reactant pool exceeds that fraction of the limiting
//     product pool (other classes).
//  2. Reachability: per-species fast- and strong-successor bit-sets are
//     closed under a fixed point of speciesCount rounds; the graph has
//     at most speciesCount nodes, which bounds convergence.
//  3. Resolve: i and j pool iff each fast-reaches the other. When i
//     reaches j but j does not reach back, j is broken (equilibrium
//     into j is one-directional); i is broken too when it strongly
//     reaches j, since it leaks a significant flux into an
//     unequilibrated sink.
//  4. Purge: every broken species is removed from all groups and its
//     own group is cleared. The purge works from a snapshot of the
//     broken set, so it is independent of iteration order and does not
//     cascade through former pool mates.
//
// Connections with absent time constants contribute no edge. Errors:
// ErrSpeciesCount, ErrSpeciesIndex.
func BuildPools(conns []*connection.Connection, speciesCount int, theta float64) (Result, error) {
	if speciesCount <= 0 {
		return Result{}, ErrSpeciesCount
	}

	// Stage 1: Classify connections into fast/strong successor sets.
	fast := make([]bitset, speciesCount)
	strong := make([]bitset, speciesCount)
	for i := range fast {
		fast[i] = newBitset(speciesCount)
		strong[i] = newBitset(speciesCount)
	}
	for _, conn := range conns {
		if conn.Reactant < 0 || conn.Reactant >= speciesCount ||
			conn.Product < 0 || conn.Product >= speciesCount {
			return Result{}, fmt.Errorf("%w: %d→%d of %d", ErrSpeciesIndex,
				conn.Reactant, conn.Product, speciesCount)
		}
		if !conn.HasTimeConstant || !(conn.TimeConstant < theta) {
			continue
		}
		if conn.Class == connection.TwoTwo {
			if conn.CoproductConc < conn.ProductConc || conn.CoreactantConc < conn.ReactantConc {
				continue
			}
			fast[conn.Reactant].set(conn.Product)
			if math.Abs(conn.EquilibriumFlux) > strongFraction*conn.MinProductConc {
				strong[conn.Reactant].set(conn.Product)
			}
			continue
		}
		fast[conn.Reactant].set(conn.Product)
		if conn.MinReactantConc > strongFraction*conn.MinProductConc {
			strong[conn.Reactant].set(conn.Product)
		}
	}

	// Stage 2: Forward-reachability closures, speciesCount rounds.
	forward := closure(fast, speciesCount)
	strongForward := closure(strong, speciesCount)

	// Stage 3: Mutual-reachability pools and broken detection.
	pools := make([]bitset, speciesCount)
	broken := newBitset(speciesCount)
	for i := 0; i < speciesCount; i++ {
		pools[i] = newBitset(speciesCount)
		forward[i].each(func(j int) {
			if forward[j].has(i) {
				pools[i].set(j)
				return
			}
			broken.set(j)
			if strongForward[i].has(j) {
				broken.set(i)
			}
		})
	}

	// Stage 4: Species-local purge from the broken snapshot.
	broken.each(func(b int) {
		pools[b] = newBitset(speciesCount)
		for i := 0; i < speciesCount; i++ {
			pools[i].clear(b)
		}
	})

	res := Result{Groups: make([]PoolGroup, speciesCount), Broken: broken.indices()}
	for i := range pools {
		res.Groups[i] = pools[i].indices()
	}
	return res, nil
}

// closure expands successor sets into full forward reachability with a
// bounded fixed point: each species starts reaching itself, and every
// round unions in the reachable sets of its direct successors.
func closure(succ []bitset, n int) []bitset {
	reach := make([]bitset, n)
	for i := 0; i < n; i++ {
		reach[i] = newBitset(n)
		reach[i].set(i)
	}
	for round := 0; round < n; round++ {
		for i := 0; i < n; i++ {
			succ[i].each(func(j int) {
				reach[i].unionWith(reach[j])
			})
		}
	}
	return reach
}
