// Command popular reads patterns from stdin (one per line), prunes
// subdomains, and prints the suffixes that would become "popular" (shared
// by more than dSlots=16 patterns) along with their group sizes. It is an
// offline sizing aid for operators choosing a pattern list, not part of the
// library itself.
package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
)

const bucketCapacity = 16

func lessReversed(a, b string) bool {
	ia, ib := len(a), len(b)
	for ia > 0 && ib > 0 {
		ca, cb := a[ia-1], b[ib-1]
		if ca != cb {
			return ca < cb
		}
		ia--
		ib--
	}
	return ia < ib
}

func isSubdomainOf(s, base string) bool {
	if !strings.HasSuffix(s, base) {
		return false
	}
	if len(s) == len(base) {
		return true
	}
	return s[len(s)-len(base)-1] == '.'
}

func pruneSubdomains(patterns []string) []string {
	if len(patterns) == 0 {
		return patterns
	}
	sort.Slice(patterns, func(i, j int) bool { return lessReversed(patterns[i], patterns[j]) })
	out := patterns[:0]
	for _, s := range patterns {
		if len(out) > 0 && isSubdomainOf(s, out[len(out)-1]) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func countSuffixes(patterns []string) map[string]int {
	counts := make(map[string]int)
	for _, p := range patterns {
		labels := strings.Split(p, ".")
		for k := 2; k <= len(labels); k++ {
			counts[strings.Join(labels[len(labels)-k:], ".")]++
		}
	}
	for k, v := range counts {
		if v <= bucketCapacity || !strings.Contains(k, ".") {
			delete(counts, k)
		}
	}
	return counts
}

func main() {
	scanner := bufio.NewScanner(os.Stdin)
	seen := make(map[string]struct{})
	var patterns []string
	for scanner.Scan() {
		s := strings.TrimSpace(scanner.Text())
		s = strings.TrimRight(s, ".")
		if s == "" {
			continue
		}
		s = strings.ToLower(s)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		patterns = append(patterns, s)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "read error:", err)
		os.Exit(2)
	}

	patterns = pruneSubdomains(patterns)
	counts := countSuffixes(patterns)

	type item struct {
		suffix string
		count  int
	}
	items := make([]item, 0, len(counts))
	for k, v := range counts {
		items = append(items, item{k, v})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].count != items[j].count {
			return items[i].count > items[j].count
		}
		return items[i].suffix < items[j].suffix
	})

	for _, it := range items {
		fmt.Printf("%s\t%d\n", it.suffix, it.count)
	}
}
