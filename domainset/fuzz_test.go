package domainset

import "testing"

// FuzzFind checks runtime safety and parity with the naive oracle for any
// input, valid or not (spec.md §4.5: "never retried and never cause state
// mutation"). Run with: go test -run ^$ -fuzz=FuzzFind -fuzztime=60s .
func FuzzFind(f *testing.F) {
	base := []string{
		"example.com",
		"images.google.com",
		"a..b.com",
		"-start.com",
		"end-.com",
		"mi-d.le-.ex-ample.com",
		"xn--puny-test.com",
		makeLabelN(63),
		makeLabelN(64),
		makeLabelN(120),
		makeLabelN(200),
	}

	ds, err := Compile(base)
	if err != nil {
		f.Fatalf("failed to compile baseline: %v", err)
	}
	naive := NewNaive(base)

	seeds := []string{
		"example.com",
		"api.example.com",
		"example.com.",
		"..example.com...",
		"images.google.com",
		"x.images.google.com",
		"a..b.com",
		"x.a..b.com",
		"-start.com",
		"end-.com",
		string([]byte{0x7f, 'a', '.', 'c', 'o', 'm'}),
		"white space.com",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, s string) {
		if len(s) > 512 {
			s = s[:512]
		}
		b := []byte(s)
		for i := range b {
			b[i] &= 0x7F
		}
		s = string(b)

		got := ds.Find(s)
		want := naive.Find(s)
		if got == InvalidInput || want == InvalidInput {
			return
		}
		if got != want {
			t.Fatalf("parity mismatch for %q: got=%v want=%v", s, got, want)
		}
	})
}

// FuzzCompileNeverPanics exercises Compile against arbitrary, possibly
// malformed pattern lists to ensure it only ever returns an error, never
// panics.
func FuzzCompileNeverPanics(f *testing.F) {
	f.Add("example.com\napi.example.com")
	f.Add("")
	f.Add("...")
	f.Add("a\x00b.com")

	f.Fuzz(func(t *testing.T, blob string) {
		var patterns []string
		start := 0
		for i := 0; i < len(blob); i++ {
			if blob[i] == '\n' {
				patterns = append(patterns, blob[start:i])
				start = i + 1
			}
		}
		patterns = append(patterns, blob[start:])

		_, _ = Compile(patterns)
	})
}
