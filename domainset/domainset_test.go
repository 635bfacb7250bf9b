package domainset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestScenario_Basic is spec.md §8 scenario 1.
func TestScenario_Basic(t *testing.T) {
	ds, err := Compile([]string{"example.com", "site.com.", "images.google.com", "GO.com"})
	require.NoError(t, err)

	cases := []struct {
		query string
		want  Result
	}{
		{"example.com", Found},
		{"api.example.com", Found},
		{"a.b.images.google.com.", Found},
		{"go.com", Found},
		{"com", NotFound},
		{"google.com", NotFound},
		{"not-listed.org", NotFound},
		{"white space.com", InvalidInput},
	}
	for _, tc := range cases {
		require.Equalf(t, tc.want, ds.Find(tc.query), "query=%q", tc.query)
	}
}

// TestScenario_DeepChain is spec.md §8 scenario 2.
func TestScenario_DeepChain(t *testing.T) {
	ds, err := Compile([]string{"a.b.c.d.e"})
	require.NoError(t, err)

	require.Equal(t, Found, ds.Find("a.b.c.d.e"))
	require.Equal(t, NotFound, ds.Find("b.c.d.e"))
	require.Equal(t, Found, ds.Find("x.a.b.c.d.e"))
}

// TestScenario_PopularBase is spec.md §8 scenario 3.
func TestScenario_PopularBase(t *testing.T) {
	var patterns []string
	for i := 0; i < 20; i++ {
		patterns = append(patterns, labelIndex("x", i)+".a.b.c")
		patterns = append(patterns, labelIndex("y", i)+".a.b.c")
	}
	ds, err := Compile(patterns)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		require.Equal(t, Found, ds.Find(labelIndex("x", i)+".a.b.c"))
		require.Equal(t, Found, ds.Find(labelIndex("y", i)+".a.b.c"))
		require.Equal(t, Found, ds.Find("z."+labelIndex("x", i)+".a.b.c"))
	}
	require.Equal(t, NotFound, ds.Find("a.b.c"))
	require.Greater(t, ds.PopularCount(), 0)
}

func labelIndex(prefix string, i int) string {
	return prefix + itoa(i)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var digits []byte
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	return string(digits)
}

// TestScenario_TooManyPopular is spec.md §8 scenario 4.
func TestScenario_TooManyPopular(t *testing.T) {
	var patterns []string
	for g := 0; g < 301; g++ {
		base := labelIndex("grp", g) + ".popular.test"
		for m := 0; m < dSlots+1; m++ {
			patterns = append(patterns, labelIndex("m", m)+"."+base)
		}
	}
	_, err := Compile(patterns)
	require.ErrorIs(t, err, ErrTooManyPopular)
}

// TestScenario_RoundTripDifferentAlignment is spec.md §8 scenario 5.
func TestScenario_RoundTripDifferentAlignment(t *testing.T) {
	ds, err := Compile(sampleDomains)
	require.NoError(t, err)

	ser, err := ds.Serialize()
	require.NoError(t, err)

	// Force a different alignment than the original buffer by
	// prepending 7 bytes of padding before copying.
	padded := make([]byte, 7+len(ser))
	copy(padded[7:], ser)
	roundTripped, err := FromSerialized(padded[7:])
	require.NoError(t, err)

	for _, base := range sampleDomains {
		variants := []string{
			base,
			"x." + base,
			base[1:],
			"q" + base,
			base + ".",
		}
		for _, q := range variants {
			require.Equal(t, ds.Find(q), roundTripped.Find(q), "query=%q", q)
		}
	}

	reSer, err := roundTripped.Serialize()
	require.NoError(t, err)
	require.Equal(t, ser, reSer)
}

// TestScenario_AdversarialDeepQuery is spec.md §8 scenario 6.
func TestScenario_AdversarialDeepQuery(t *testing.T) {
	tail := ".example.com"
	labels := make([]string, 0, 120)
	for len(strings.Join(labels, "."))+len(tail) < 253-2 {
		labels = append(labels, "a")
	}
	query := strings.Join(labels, ".") + tail

	ds, err := Compile([]string{"example.com"})
	require.NoError(t, err)
	require.LessOrEqual(t, len(query), maxPatternLen)
	require.Equal(t, Found, ds.Find(query))
}

// TestDeterminism asserts building the same input twice yields identical
// serialized bytes (spec.md §8: "Determinism under fixed seed").
//
// The calibrator's seed search is itself deterministic (fixed starting
// seed, fixed try order), so two Compiles of the same pattern list always
// settle on the same seed and bucket count.
func TestDeterminism(t *testing.T) {
	a, err := Compile(sampleDomains)
	require.NoError(t, err)
	b, err := Compile(sampleDomains)
	require.NoError(t, err)

	serA, err := a.Serialize()
	require.NoError(t, err)
	serB, err := b.Serialize()
	require.NoError(t, err)
	require.Equal(t, serA, serB)
}

// TestPruning is spec.md §8: "if both example.com and api.example.com are
// supplied, used_total == 1 and both exact queries still succeed".
func TestPruning(t *testing.T) {
	ds, err := Compile([]string{"example.com", "api.example.com"})
	require.NoError(t, err)
	require.Equal(t, 1, ds.UsedTotal())
	require.Equal(t, Found, ds.Find("example.com"))
	require.Equal(t, Found, ds.Find("api.example.com"))
}

// TestCaseInsensitivity is spec.md §8's case-insensitivity property.
func TestCaseInsensitivity(t *testing.T) {
	ds, err := Compile(sampleDomains)
	require.NoError(t, err)
	for _, q := range []string{"Example.COM", "IMAGES.Google.Com", "XN--PUNY-TEST.com"} {
		require.Equal(t, ds.Find(strings.ToLower(q)), ds.Find(q), "query=%q", q)
	}
}

// TestTrailingDots is spec.md §8's trailing-dot property.
func TestTrailingDots(t *testing.T) {
	ds, err := Compile(sampleDomains)
	require.NoError(t, err)
	for _, base := range sampleDomains {
		want := ds.Find(base)
		require.Equal(t, want, ds.Find(base+"."))
		require.Equal(t, want, ds.Find(base+"...."))
	}
}

// TestProbeDepthBound is spec.md §8's bound-on-probe-depth property: every
// query scans at most D*max_scans[bucket] comparisons. We cannot observe
// the comparison count directly from the public API, so this asserts only
// the weaker invariant that every bucket's max_scans is at most 253, the
// longest accepted query, which caps the left-extensions Find can make.
func TestProbeDepthBound(t *testing.T) {
	ds, err := Compile(sampleDomains)
	require.NoError(t, err)
	for b := range ds.table {
		require.LessOrEqual(t, int(ds.table[b].maxScans), 253)
	}
}

func TestNoPatternsError(t *testing.T) {
	_, err := Compile(nil)
	require.ErrorIs(t, err, ErrNoPatterns)
}

func TestTopLevelPatternRejected(t *testing.T) {
	_, err := Compile([]string{"com"})
	require.ErrorIs(t, err, ErrTopLevelDomain)
}

func TestEmptyAndOverlongPatternRejected(t *testing.T) {
	_, err := Compile([]string{""})
	require.Error(t, err)

	long := strings.Repeat("a", 254) + ".com"
	_, err = Compile([]string{long})
	require.Error(t, err)
}

func TestDotOnlyQueriesAreInvalidInput(t *testing.T) {
	ds, err := Compile([]string{"example.com"})
	require.NoError(t, err)
	require.Equal(t, InvalidInput, ds.Find("."))
	require.Equal(t, InvalidInput, ds.Find(".."))
}

func TestNilSetFindIsNotFound(t *testing.T) {
	var ds *Set
	require.Equal(t, NotFound, ds.Find("example.com"))
}
