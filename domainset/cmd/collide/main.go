// Command collide searches for inputs whose popular-suffix tag collides
// with an unrelated stored suffix, reproducing the bucket-placement
// mismatch class of bug collision_test.go guards against.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/hipermap-go/hipermap/domainset"
)

func makeGroup(base string, n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, fmt.Sprintf("x%d.%s", i, base))
	}
	return out
}

func main() {
	base := flag.String("base", "popular.example.com", "suffix to make popular (not included in patterns itself)")
	extra := flag.String("extra", "tld", "unrelated base suffix to try collisions against")
	n := flag.Int("n", 40, "number of subdomains to generate for base")
	maxTries := flag.Int("tries", 200000, "max candidates to try")
	brute := flag.Bool("bruteforce", true, "enable brute-force placement-mismatch search")
	flag.Parse()

	patterns := makeGroup(*base, *n)

	ds, err := domainset.Compile(patterns)
	if err != nil {
		fmt.Fprintln(os.Stderr, "compile:", err)
		os.Exit(1)
	}
	fmt.Println(ds.String())

	seed := uint64(ds.HashSeed())

	if !*brute {
		var candidate string
		var found bool
		// The popular table tags base with its chained hash: the last two
		// labels first, then each label to their left.
		b := *base
		cut := 0
		if dot := strings.LastIndexByte(b, '.'); dot > 0 {
			cut = strings.LastIndexByte(b[:dot], '.') + 1
		}
		h := domainset.Hash64SpanCI(b[cut:], seed)
		for cut > 0 {
			end := cut - 1
			start := strings.LastIndexByte(b[:end], '.') + 1
			h = domainset.Hash64SpanCI(b[start:end], h)
			cut = start
		}
		target := uint16(h >> 32)
		for i := 0; i < *maxTries; i++ {
			c := fmt.Sprintf("c%d.%s", i, *extra)
			if uint16(domainset.Hash64SpanCI(c, seed)>>32) == target {
				candidate = c
				found = true
				break
			}
		}
		if !found {
			fmt.Fprintf(os.Stderr, "no 16-bit collision found within %d tries\n", *maxTries)
			os.Exit(2)
		}
		query := "a." + candidate
		fmt.Printf("candidate=%q query=%q\n", candidate, query)

		patterns2 := append(append([]string(nil), patterns...), candidate)
		ds2, err := domainset.Compile(patterns2)
		if err != nil {
			fmt.Fprintln(os.Stderr, "compile (with candidate):", err)
			os.Exit(1)
		}
		naive := domainset.NewNaive(patterns2)
		fast := ds2.Find(query)
		ref := naive.Find(query)
		if fast != ref {
			fmt.Printf("reproduced mismatch: fast=%v naive=%v query=%q\n", fast, ref, query)
			os.Exit(0)
		}
		fmt.Printf("no mismatch observed: fast=%v naive=%v query=%q\n", fast, ref, query)
		os.Exit(3)
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	genLabel := func(min, max int) string {
		n := rnd.Intn(max-min+1) + min
		var b strings.Builder
		b.Grow(n)
		for i := 0; i < n; i++ {
			b.WriteByte(letters[rnd.Intn(len(letters))])
		}
		return b.String()
	}

	for i := 0; i < *maxTries; i++ {
		candidate := fmt.Sprintf("%s.%s", genLabel(3, 8), *extra)
		query := "a." + candidate
		patterns2 := append(append([]string(nil), patterns...), candidate)
		ds2, err := domainset.Compile(patterns2)
		if err != nil {
			fmt.Fprintln(os.Stderr, "compile (with candidate):", err)
			os.Exit(1)
		}
		naive := domainset.NewNaive(patterns2)
		fast := ds2.Find(query)
		ref := naive.Find(query)
		if fast != ref {
			fmt.Printf("reproduced mismatch after %d tries: fast=%v naive=%v query=%q\n", i+1, fast, ref, query)
			fmt.Println(ds2.String())
			os.Exit(0)
		}
		if (i+1)%100 == 0 {
			fmt.Printf("... tried %d, no mismatch yet\n", i+1)
		}
	}
	fmt.Printf("no mismatch observed in %d tries\n", *maxTries)
	os.Exit(3)
}
