package domainset

import "sort"

// preprocess trims trailing dots, validates and lowercases every pattern,
// rejects top-level patterns, and prunes proper subdomains whose base is
// already present. Returned strings are owned copies, safe to retain.
func preprocess(patterns []string) ([]string, error) {
	views := make([]string, 0, len(patterns))
	for _, raw := range patterns {
		s := raw
		for len(s) > 0 && s[len(s)-1] == '.' {
			s = s[:len(s)-1]
		}
		if len(s) == 0 || len(s) > maxPatternLen {
			return nil, ErrBadValue
		}
		b := make([]byte, len(s))
		if !domainToLower(b, s) {
			return nil, ErrBadValue
		}
		views = append(views, string(b))
	}

	for _, v := range views {
		if !hasDot(v) {
			return nil, ErrTopLevelDomain
		}
	}

	return pruneSubdomains(views), nil
}

func hasDot(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return true
		}
	}
	return false
}

// pruneSubdomains drops any pattern that is equal to, or a whole-label
// subdomain of, another pattern already kept. Sorting by reversed
// lexicographic order puts a base suffix immediately before its own
// subdomains, so a single left-to-right pass suffices.
func pruneSubdomains(patterns []string) []string {
	if len(patterns) == 0 {
		return patterns
	}
	sorted := append([]string(nil), patterns...)
	sort.Slice(sorted, func(i, j int) bool { return lessReversed(sorted[i], sorted[j]) })

	kept := sorted[:0]
	for _, s := range sorted {
		if len(kept) > 0 && isSubdomainOf(s, kept[len(kept)-1]) {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}

// lessReversed compares two strings character-by-character from the right,
// so "example.com" sorts before "api.example.com".
func lessReversed(a, b string) bool {
	i, j := len(a)-1, len(b)-1
	for i >= 0 && j >= 0 {
		if a[i] != b[j] {
			return a[i] < b[j]
		}
		i--
		j--
	}
	return len(a) < len(b)
}

// isSubdomainOf reports whether s equals base or is a whole-label subdomain
// of it (i.e. s ends with "."+base).
func isSubdomainOf(s, base string) bool {
	if len(s) < len(base) {
		return false
	}
	if s[len(s)-len(base):] != base {
		return false
	}
	if len(s) == len(base) {
		return true
	}
	return s[len(s)-len(base)-1] == '.'
}
