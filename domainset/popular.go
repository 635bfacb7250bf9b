package domainset

import "sort"

// findPopularSuffixes groups patterns by their last k labels, starting at
// k=2, and records any suffix shared by more than dSlots patterns. Members
// of a popular group are re-grouped at k+1 on the next iteration, since a
// popular 2-label suffix can itself be the tail of an even more popular
// 3-label suffix. Returns a deduplicated, sorted list.
func findPopularSuffixes(patterns []string) []string {
	var popular []string
	if len(patterns) == 0 {
		return popular
	}

	frontier := append([]string(nil), patterns...)
	for depth := 2; ; depth++ {
		groups := make(map[string][]string)
		for _, s := range frontier {
			key := lastKLabels(s, depth)
			groups[key] = append(groups[key], s)
		}

		var next []string
		for key, members := range groups {
			if len(members) > dSlots {
				popular = append(popular, key)
				next = append(next, members...)
			}
		}
		if len(next) == 0 {
			break
		}
		frontier = next
	}

	sort.Strings(popular)
	return dedupSorted(popular)
}

// lastKLabels returns the last k labels of s (k>=2), or the whole string if
// it has fewer than k labels.
func lastKLabels(s string, k int) string {
	start := len(s)
	for i := 0; i < k; i++ {
		dot := lastDotBefore(s, start)
		if dot < 0 {
			return s
		}
		start = dot
	}
	return s[start+1:]
}

func lastDotBefore(s string, end int) int {
	for i := end - 1; i >= 0; i-- {
		if s[i] == '.' {
			return i
		}
	}
	return -1
}

func dedupSorted(a []string) []string {
	if len(a) == 0 {
		return a
	}
	out := a[:1]
	for _, s := range a[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}

func containsString(arr []string, s string) bool {
	for _, v := range arr {
		if v == s {
			return true
		}
	}
	return false
}
