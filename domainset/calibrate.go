package domainset

const (
	growSteps      = 60
	seedsPerStep   = 100
	initialSeed    = uint32(0xA17F2344)
	growNumerator  = 21
	growDenomiator = 20
)

// bucketPreview accumulates, for one calibration attempt, the patterns
// placed into a single bucket plus their tags and the deepest left-extension
// any of them required.
type bucketPreview struct {
	tags     [dSlots]uint16
	items    []string
	maxScans uint16
}

// plan is the output of a successful calibration: the popular-suffix list
// (unchanged from input), the per-bucket preview, and the winning seed.
type plan struct {
	popular []string
	buckets []bucketPreview
	seed    uint32
}

// calibrate searches {bucket_counts} x {seeds} for the smallest viable
// configuration under which no bucket preview exceeds dSlots members,
// exactly as spec.md §4.4 describes.
func calibrate(patterns []string, popular []string) (plan, bool) {
	numBuckets := uint32((len(patterns)+dSlots-1)/dSlots + 1)
	seed := initialSeed

	for step := 0; step < growSteps; step++ {
		for try := 0; try < seedsPerStep; try++ {
			seed++
			buckets := make([]bucketPreview, numBuckets)
			if place(patterns, seed, buckets, popular) {
				return plan{popular: popular, buckets: buckets, seed: seed}, true
			}
		}
		grown := (numBuckets*growNumerator + growDenomiator - 1) / growDenomiator
		if grown <= numBuckets {
			numBuckets++
		} else {
			numBuckets = grown
		}
	}
	return plan{}, false
}

// place attempts to assign every pattern to a bucket under the given seed
// and bucket count. Returns false as soon as any bucket would overflow
// dSlots members, in which case buckets is left partially filled and must
// be discarded by the caller.
func place(patterns []string, seed uint32, buckets []bucketPreview, popular []string) bool {
	m := computeM(uint32(len(buckets)))
	for _, p := range patterns {
		bucketHash, tag, maxScans := chainedBucketAndTag(p, seed, popular)
		b := fastmodU32(bucketHash, m, uint32(len(buckets)))
		rec := &buckets[b]
		if len(rec.items) >= dSlots {
			return false
		}
		idx := len(rec.items)
		rec.tags[idx] = tag
		if maxScans > rec.maxScans {
			rec.maxScans = maxScans
		}
		rec.items = append(rec.items, p)
	}
	return true
}

// chainedBucketAndTag implements spec.md §4.4's "Placement" steps 1-6 for
// one pattern: hash its last two labels, extend left past any popular
// suffix to choose the bucket, then keep chaining the remaining labels to
// produce the final tag and the scan-depth bound for this pattern.
func chainedBucketAndTag(p string, seed uint32, popular []string) (bucketHash uint32, tag uint16, maxScans uint16) {
	lower := []byte(p)
	sufStart := cutTwoLastDomainLabels(lower)
	h := hash64Span(lower[sufStart:], uint64(seed))

	for sufStart > 0 && containsString(popular, string(lower[sufStart:])) {
		labelEnd := sufStart - 1
		labelStart := cutLastDomainLabel(lower[:labelEnd])
		h = hash64Span(lower[labelStart:labelEnd], h)
		sufStart = labelStart
	}
	bucketHash = uint32(h)

	hf := h
	cur := sufStart
	scans := uint16(1)
	for cur > 0 {
		labelEnd := cur - 1
		labelStart := cutLastDomainLabel(lower[:labelEnd])
		hf = hash64Span(lower[labelStart:labelEnd], hf)
		cur = labelStart
		scans++
	}
	tag = uint16(hf >> 32)
	maxScans = scans
	return
}

// tagForSuffix computes the tag a popular-suffix string would carry if
// looked up from scratch: the chained hash over its own two-label suffix
// extended leftwards to its start. Used only while materializing the
// popular table, where the suffix string itself stands in as its own
// pattern.
func tagForSuffix(suffix string, seed uint32) uint16 {
	lower := []byte(suffix)
	sufStart := cutTwoLastDomainLabels(lower)
	h := hash64Span(lower[sufStart:], uint64(seed))
	cur := sufStart
	for cur > 0 {
		labelEnd := cur - 1
		labelStart := cutLastDomainLabel(lower[:labelEnd])
		h = hash64Span(lower[labelStart:labelEnd], h)
		cur = labelStart
	}
	return uint16(h >> 32)
}
