package pooling

import "math"

// Matrix is the symmetric species×species pooling-time matrix. Cell
// (i,j) holds the log10 exponent of the largest characteristic time at
// which i and j were found in the same pool group; cells for pairs that
// never pooled are undefined.
type Matrix struct {
	n     int
	cells []float64
}

// NewMatrix returns an n×n matrix with every cell undefined.
func NewMatrix(n int) *Matrix {
	if n < 0 {
		n = 0
	}
	m := &Matrix{n: n, cells: make([]float64, n*n)}
	for i := range m.cells {
		m.cells[i] = math.NaN()
	}
	return m
}

// Size returns the species count n.
func (m *Matrix) Size() int { return m.n }

// At returns the value of cell (i, j) and whether it is defined.
// Out-of-range indices read as undefined.
func (m *Matrix) At(i, j int) (float64, bool) {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return 0, false
	}
	v := m.cells[i*m.n+j]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// record writes v into (i, j) unless the cell is already defined.
// First assignment wins: the scanner sweeps thresholds descending, so
// the first write is the largest threshold at which the pair pools.
func (m *Matrix) record(i, j int, v float64) {
	if !math.IsNaN(m.cells[i*m.n+j]) {
		return
	}
	m.cells[i*m.n+j] = v
}
