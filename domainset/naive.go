package domainset

import "strings"

// Naive is a simple map-backed reference implementation used as a test
// oracle: it checks every label-suffix of a query against a set of
// lowercased patterns, with none of the calibrated hashing/popular-suffix
// machinery. Slow, but obviously correct, so tests can assert the compiled
// Set agrees with it.
type Naive struct {
	m map[string]struct{}
}

// NewNaive builds a Naive set from the given patterns, lowercasing each.
// Unlike Compile, it performs no validation, pruning or popular-suffix
// bookkeeping.
func NewNaive(patterns []string) *Naive {
	m := make(map[string]struct{}, len(patterns))
	for _, p := range patterns {
		if p == "" {
			continue
		}
		m[strings.ToLower(p)] = struct{}{}
	}
	return &Naive{m: m}
}

// Find mirrors Set.Find's semantics: trims trailing dots, validates and
// lowercases, then checks every whole-label suffix of query against the
// stored pattern set.
func (n *Naive) Find(query string) Result {
	if n == nil || len(n.m) == 0 {
		return NotFound
	}
	for len(query) > 0 && query[len(query)-1] == '.' {
		query = query[:len(query)-1]
	}
	if len(query) == 0 || len(query) > maxPatternLen {
		return InvalidInput
	}
	var queryBuf [maxPatternLen]byte
	lower := queryBuf[:len(query)]
	if !domainToLower(lower, query) {
		return InvalidInput
	}
	s := string(lower)

	labels := strings.Split(s, ".")
	for i := range labels {
		if _, ok := n.m[strings.Join(labels[i:], ".")]; ok {
			return Found
		}
	}
	return NotFound
}
