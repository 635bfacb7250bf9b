package domainset

import "fmt"

// Set is a compiled, read-only Static Domain Set. The zero value is not
// usable; obtain one from Compile or FromSerialized. A *Set is safe for
// concurrent Find calls: it is never mutated after construction.
type Set struct {
	fastModM uint64
	seed     uint32
	popCount uint32

	table   []record
	popular []record
	blob    []byte
}

// Compile builds a Set from an immutable list of patterns (spec.md §4.4).
// Patterns are ASCII over [A-Za-z0-9._-], 1..253 bytes after trailing dots
// are stripped, case-insensitive, and must contain at least one '.'.
// Duplicate patterns and proper subdomains of another supplied pattern are
// pruned before compilation (they are redundant: Find already matches every
// whole-label suffix).
func Compile(patterns []string) (*Set, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}

	views, err := preprocess(patterns)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, ErrNoPatterns
	}

	popular := findPopularSuffixes(views)
	if len(popular) > maxPopularSuffixes {
		return nil, ErrTooManyPopular
	}

	p, ok := calibrate(views, popular)
	if !ok {
		return nil, ErrFailedToCalibrate
	}

	return materialize(p)
}

// Buckets returns the number of hash buckets the set was calibrated with.
func (s *Set) Buckets() int {
	if s == nil {
		return 0
	}
	return len(s.table)
}

// PopularCount returns the number of popular suffixes discovered at compile
// time (spec.md: "popular_count <= 256").
func (s *Set) PopularCount() int {
	if s == nil {
		return 0
	}
	return int(s.popCount)
}

// UsedTotal returns the number of patterns actually stored (after pruning).
func (s *Set) UsedTotal() int {
	if s == nil {
		return 0
	}
	total := 0
	for i := range s.table {
		total += int(s.table[i].used)
	}
	return total
}

// HashSeed returns the seed the calibrator settled on.
func (s *Set) HashSeed() uint32 {
	if s == nil {
		return 0
	}
	return s.seed
}

// HeaderBytes is the fixed size of the serialized header (magic excluded).
func HeaderBytes() int { return headerBytes }

// TableBytes returns the byte size of the bucket table.
func (s *Set) TableBytes() int {
	if s == nil {
		return 0
	}
	return len(s.table) * recordBytes
}

// PopularBytes returns the byte size of the popular-suffix table.
func (s *Set) PopularBytes() int {
	if s == nil {
		return 0
	}
	return len(s.popular) * recordBytes
}

// BlobBytes returns the byte size of the pattern-string blob.
func (s *Set) BlobBytes() int {
	if s == nil {
		return 0
	}
	return len(s.blob)
}

// Allocated returns the total size, in bytes, of the materialized database
// (what Serialize would produce).
func (s *Set) Allocated() int {
	if s == nil || len(s.table) == 0 {
		return 0
	}
	return 4 + headerBytes + s.PopularBytes() + s.TableBytes() + s.BlobBytes()
}

// String summarizes the set's fill and layout, mirroring the diagnostics the
// cgo binding prints in cmd/verify.
func (s *Set) String() string {
	if s == nil || len(s.table) == 0 {
		return "domainset.Set{empty}"
	}
	used := s.UsedTotal()
	capacity := len(s.table) * dSlots
	var fillPct float64
	if capacity > 0 {
		fillPct = float64(used) * 100.0 / float64(capacity)
	}
	return fmt.Sprintf(
		"domainset.Set{patterns=%d, popular=%d, fill=%.1f%%, allocated=%d (header=%d, popular=%d, table=%d, blob=%d)}",
		used, s.popCount, fillPct, s.Allocated(), headerBytes, s.PopularBytes(), s.TableBytes(), s.BlobBytes(),
	)
}
