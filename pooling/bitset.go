package pooling

import "math/bits"

// bitset is a fixed-capacity set of species indices.
type bitset []uint64

func newBitset(n int) bitset {
	return make(bitset, (n+63)/64)
}

func (b bitset) set(i int) {
	b[i/64] |= 1 << (uint(i) % 64)
}

func (b bitset) clear(i int) {
	b[i/64] &^= 1 << (uint(i) % 64)
}

func (b bitset) has(i int) bool {
	return b[i/64]&(1<<(uint(i)%64)) != 0
}

// unionWith folds o into b.
func (b bitset) unionWith(o bitset) {
	for w := range b {
		b[w] |= o[w]
	}
}

// each calls fn for every set index, ascending.
func (b bitset) each(fn func(i int)) {
	for w, word := range b {
		for word != 0 {
			bit := bits.TrailingZeros64(word)
			fn(w*64 + bit)
			word &= word - 1
		}
	}
}

// indices returns the set members as a sorted slice, nil when empty.
func (b bitset) indices() []int {
	var out []int
	b.each(func(i int) { out = append(out, i) })
	return out
}
