// Package fastmod computes a%d without integer division, given a
// precomputed magic number for d (spec.md §4.1). It backs every calibrated
// hash table in this module: domainset's bucket selection, and the simpler
// uint64set/uint64map collaborators.
package fastmod

// M precomputes the fast-modulus magic number for divisor d:
// M = floor((2^64-1)/d) + 1, which is ceil(2^64/d).
func M(d uint32) uint64 {
	return ^uint64(0)/uint64(d) + 1
}

// U32 computes a%d given m = M(d), as the high 64 bits of m*a*d.
func U32(a uint32, m uint64, d uint32) uint32 {
	lo := m * uint64(a)
	hi, _ := mul64(lo, uint64(d))
	return uint32(hi)
}

// mul64 returns the 128-bit product of x*y split into high and low 64-bit
// halves, via four 32x32->64 partial products.
func mul64(x, y uint64) (hi, lo uint64) {
	const mask32 = uint64(0xFFFFFFFF)
	x0, x1 := x&mask32, x>>32
	y0, y1 := y&mask32, y>>32

	w0 := x0 * y0
	t := x1*y0 + (w0 >> 32)
	w1 := t & mask32
	w2 := t >> 32
	w1 += x0 * y1

	hi = x1*y1 + w2 + (w1 >> 32)
	lo = (w1 << 32) | (w0 & mask32)
	return
}
