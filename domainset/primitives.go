package domainset

import (
	"github.com/hipermap-go/hipermap/internal/fastmod"
	"github.com/zeebo/xxh3"
)

// dSlots is D in spec.md: the fixed per-bucket capacity.
const dSlots = 16

// maxPatternLen is the longest pattern/query accepted, trailing dots
// stripped.
const maxPatternLen = 253

const maxPopularSuffixes = 256

// hash64Span is the chained hash primitive: XXH3-64 over a byte span with an
// arbitrary 64-bit seed. Callers are responsible for lowercasing; no case
// folding happens here. Chaining a label sequence right-to-left means
// seeding each call with the previous call's result, which is exactly how
// chainedBucketAndTag and Find advance.
func hash64Span(b []byte, seed uint64) uint64 {
	return xxh3.HashSeed(b, seed)
}

// Hash64SpanCI is the case-insensitive span hash exposed for tests and
// bindings (spec.md §6's hash64_span_ci helper). It lowercases s before
// hashing; unlike hash64Span it takes a string, not a pre-lowered byte span.
func Hash64SpanCI(s string, seed uint64) uint64 {
	if len(s) == 0 {
		return hash64Span(nil, seed)
	}
	var buf []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			if buf == nil {
				buf = []byte(s)
			}
			buf[i] = c | 0x20
		} else if buf != nil {
			buf[i] = c
		}
	}
	if buf == nil {
		return hash64Span([]byte(s), seed)
	}
	return hash64Span(buf, seed)
}

// domainToLower validates src against [A-Za-z0-9._-] and writes its
// lowercase form to dst, which must have the same length as src. Taking src
// as a string rather than []byte lets callers pass a query directly,
// without a string-to-[]byte conversion, on the Find hot path. Returns
// false on any other byte, leaving dst partially written.
func domainToLower(dst []byte, src string) bool {
	for i := 0; i < len(src); i++ {
		c := src[i]
		cl := c | 0x20
		isAlpha := cl >= 'a' && cl <= 'z'
		ok := isAlpha || (c >= '0' && c <= '9') || c == '-' || c == '.' || c == '_'
		if !ok {
			return false
		}
		if isAlpha {
			dst[i] = cl
		} else {
			dst[i] = c
		}
	}
	return true
}

// computeM precomputes the fast-modulus magic number for divisor d.
func computeM(d uint32) uint64 { return fastmod.M(d) }

// fastmodU32 computes a%d given M = computeM(d), avoiding a division on the
// hot path.
func fastmodU32(a uint32, m uint64, d uint32) uint32 { return fastmod.U32(a, m, d) }

func roundUp16(n int) int { return (n + 15) &^ 15 }

// cutLastDomainLabel returns the start offset of the last label in b, or 0
// if b has no '.'.
func cutLastDomainLabel(b []byte) int {
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] == '.' {
			return i + 1
		}
	}
	return 0
}

// cutTwoLastDomainLabels returns the start offset of the last two labels in
// b, or 0 if b has fewer than two labels.
func cutTwoLastDomainLabels(b []byte) int {
	last := -1
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] == '.' {
			last = i
			break
		}
	}
	if last < 0 {
		return 0
	}
	for i := last - 1; i >= 0; i-- {
		if b[i] == '.' {
			return i + 1
		}
	}
	return 0
}

// CutLastDomainLabelOffset returns the byte offset where the last label of s
// starts, or 0 if s has no '.'. Exposed for tests and bindings (spec.md §6).
func CutLastDomainLabelOffset(s string) int {
	return cutLastDomainLabel([]byte(s))
}
