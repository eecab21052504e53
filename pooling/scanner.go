package pooling

import (
	"math"

	"github.com/katalvlaran/eqpool/connection"
)

// ScanPoolingTimes sweeps BuildPools over a descending ladder of
// characteristic times covering every observed time constant and
// records, for each species pair, the largest decade at which the pair
// first pools.
//
// Algorithm Outline:
//  1. Collect the time constants of all connections that have one. With
//     no finite positive time constant the scan is a no-op and the
//     returned matrix is fully undefined.
//  2. The ladder spans 10^k for k from ceil(log10(max))+1 − 1 down to
//     floor(log10(smallest positive)), one decade per step, loosest
//     (slowest) threshold first.
//  3. Each step resolves pools at theta = 10^k and records k into every
//     pooled pair's cell, first assignment winning. Tighter thresholds
//     only shrink pools, so the first pooling threshold is the largest
//     valid one. Each connection whose endpoints share a group also has
//     its pooling time ratcheted down to theta. Note the units: matrix
//     cells hold the exponent k, Connection.PoolingTime holds the linear
//     time theta = 10^k in seconds.
//
// Running the scan twice over the same connections yields identical
// matrices.
func ScanPoolingTimes(conns []*connection.Connection, speciesCount int) (*Matrix, error) {
	if speciesCount <= 0 {
		return nil, ErrSpeciesCount
	}
	m := NewMatrix(speciesCount)

	// Stage 1: Observed time-constant range.
	minPos := math.Inf(1)
	maxSeen := math.Inf(-1)
	for _, conn := range conns {
		if !conn.HasTimeConstant {
			continue
		}
		if conn.TimeConstant > 0 && conn.TimeConstant < minPos {
			minPos = conn.TimeConstant
		}
		if conn.TimeConstant > maxSeen {
			maxSeen = conn.TimeConstant
		}
	}
	if math.IsInf(minPos, 1) {
		return m, nil // nothing equilibrates at any finite timescale
	}

	// Stage 2: Descending decade ladder.
	lo := int(math.Floor(math.Log10(minPos)))
	hi := int(math.Ceil(math.Log10(maxSeen))) + 1
	for k := hi - 1; k >= lo; k-- {
		theta := math.Pow(10, float64(k))
		res, err := BuildPools(conns, speciesCount, theta)
		if err != nil {
			return nil, err
		}

		// Stage 3: First-assignment-wins recording + pooling-time ratchet.
		for i, grp := range res.Groups {
			for _, j := range grp {
				m.record(i, j, float64(k))
			}
		}
		for _, conn := range conns {
			if inGroup(res.Groups[conn.Reactant], conn.Product) {
				conn.RatchetPoolingTime(theta)
			}
		}
	}
	return m, nil
}

// inGroup reports whether j appears in the sorted group.
func inGroup(grp PoolGroup, j int) bool {
	for _, g := range grp {
		if g == j {
			return true
		}
		if g > j {
			return false
		}
	}
	return false
}
