// Command verify cross-checks a compiled Set against the naive oracle over
// a patterns file and a "url,count" text corpus, reporting match-rate and
// latency statistics broken down by query class.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hipermap-go/hipermap/domainset"
)

func readPatterns(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" {
			continue
		}
		if i := strings.IndexAny(s, " \t"); i >= 0 {
			s = s[:i]
		}
		s = strings.ToLower(strings.TrimRight(s, "."))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

func extractHost(line string) (string, error) {
	if i := strings.IndexByte(line, ','); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("empty url field")
	}
	raw := line
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	host := u.Host
	if host == "" {
		return "", fmt.Errorf("empty host")
	}
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	host = strings.ToLower(strings.TrimRight(host, "."))
	if host == "" {
		return "", fmt.Errorf("empty host after trim")
	}
	return host, nil
}

var checkLabels = []string{"exact", "add_subdomain", "remove_subdomain", "add_letter", "remove_letter", "trailing_dot"}

func main() {
	patternsPath := flag.String("patterns", "", "path to patterns file (one domain per line)")
	textPath := flag.String("text", "", "path to text file with 'url,count' lines")
	flag.Parse()

	if *patternsPath == "" || *textPath == "" {
		fmt.Fprintln(os.Stderr, "usage: verify -patterns=patterns.txt -text=text.csv")
		os.Exit(2)
	}

	patterns, err := readPatterns(*patternsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read patterns:", err)
		os.Exit(1)
	}
	if len(patterns) == 0 {
		fmt.Fprintln(os.Stderr, "no patterns loaded")
		os.Exit(1)
	}

	ds, err := domainset.Compile(patterns)
	if err != nil {
		fmt.Fprintln(os.Stderr, "compile:", err)
		os.Exit(1)
	}
	fmt.Println(ds.String())

	ser, err := ds.Serialize()
	if err != nil {
		fmt.Fprintln(os.Stderr, "serialize:", err)
		os.Exit(1)
	}
	fmt.Printf("Serialized size: %d\n", len(ser))

	roundTripped, err := domainset.FromSerialized(ser)
	if err != nil {
		fmt.Fprintln(os.Stderr, "deserialize:", err)
		os.Exit(1)
	}

	naive := domainset.NewNaive(patterns)

	totals := map[string]int{}
	mismatches := map[string]int{}
	var patternMismatches int

	checkOne := func(label, query string, alt bool) {
		totals[label]++
		var got domainset.Result
		if alt {
			got = roundTripped.Find(query)
		} else {
			got = ds.Find(query)
		}
		want := naive.Find(query)
		if got != want {
			fmt.Fprintf(os.Stderr, "mismatch label=%s query=%q fast=%v naive=%v\n", label, query, got, want)
			mismatches[label]++
			patternMismatches++
		}
	}

	for idx, p := range patterns {
		alt := idx%2 == 0
		checkOne("exact", p, alt)
		if d := "x." + p; len(d) <= 253 {
			checkOne("add_subdomain", d, alt)
		}
		if i := strings.IndexByte(p, '.'); i >= 0 && i+1 < len(p) {
			checkOne("remove_subdomain", p[i+1:], alt)
		}
		if d := "a" + p; len(d) <= 253 {
			checkOne("add_letter", d, alt)
		}
		if len(p) > 0 {
			checkOne("remove_letter", p[1:], alt)
		}
		checkOne("trailing_dot", p+".", alt)
	}

	f, err := os.Open(*textPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open text:", err)
		os.Exit(1)
	}
	defer f.Close()

	var total, valid, fastMatched, naiveMatched, discrepancies, parseErrors int
	var fastN, naiveN int
	var fastTotal, naiveTotal time.Duration

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		total++
		host, err := extractHost(line)
		if err != nil {
			parseErrors++
			continue
		}
		valid++

		useAlt := total%2 == 0
		t0 := time.Now()
		var got domainset.Result
		if useAlt {
			got = roundTripped.Find(host)
		} else {
			got = ds.Find(host)
		}
		fastTotal += time.Since(t0)
		fastN++

		t1 := time.Now()
		want := naive.Find(host)
		naiveTotal += time.Since(t1)
		naiveN++

		if got != want {
			discrepancies++
		}
		if got == domainset.Found {
			fastMatched++
		}
		if want == domainset.Found {
			naiveMatched++
		}
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "read text:", err)
		os.Exit(1)
	}

	fmt.Printf("Inputs: total=%d valid=%d parse_errors=%d\n", total, valid, parseErrors)
	fmt.Printf("Fast matches:  %d of %d\n", fastMatched, valid)
	fmt.Printf("Naive matches: %d of %d\n", naiveMatched, valid)
	fmt.Println("Pattern checks by label:")
	for _, l := range checkLabels {
		fmt.Printf("  %-16s tests=%d mismatches=%d\n", l+":", totals[l], mismatches[l])
	}
	fmt.Printf("Pattern check mismatches: %d\n", patternMismatches)
	fmt.Printf("Discrepancies: %d of %d\n", discrepancies, valid)
	if fastN > 0 {
		fmt.Printf("Avg find latency (fast):  %.0f ns\n", float64(fastTotal.Nanoseconds())/float64(fastN))
	}
	if naiveN > 0 {
		fmt.Printf("Avg find latency (naive): %.0f ns\n", float64(naiveTotal.Nanoseconds())/float64(naiveN))
	}
}
