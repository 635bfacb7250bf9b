package domainset

import "encoding/binary"

// magic identifies the serialized format: "HMDS" read little-endian.
const magic = 0x53444D48

// headerBytes is the fixed, cache-line-padded header size that follows the
// magic (spec.md §4.6).
const headerBytes = 64

// Header field byte offsets within the 64-byte header, relative to its own
// start (i.e. add 4 for the absolute buffer offset, past the magic).
const (
	hdrFastModM       = 0  // u64
	hdrBuckets        = 8  // u32
	hdrHashSeed       = 12 // u32
	hdrDomainsTblPtr  = 16 // u64, ignored on read
	hdrPopularTblPtr  = 24 // u64, ignored on read
	hdrPopularRecords = 32 // u32
	hdrPopularCount   = 36 // u32
	hdrBlobPtr        = 40 // u64, ignored on read
	hdrBlobSize       = 48 // u64
)

// SerializedSize returns the exact number of bytes Serialize will produce.
func (s *Set) SerializedSize() int {
	if s == nil || len(s.table) == 0 {
		return 0
	}
	return 4 + headerBytes + len(s.popular)*recordBytes + len(s.table)*recordBytes + len(s.blob)
}

// Serialize emits the wire format of spec.md §4.6: a 4-byte magic, the
// 64-byte header, the popular records, the bucket records, then the blob.
// Pointer fields in the header are always written as zero; they are
// recomputed from sizes on read, never trusted.
func (s *Set) Serialize() ([]byte, error) {
	if s == nil || len(s.table) == 0 {
		return nil, ErrNoPatterns
	}

	buf := make([]byte, s.SerializedSize())
	binary.LittleEndian.PutUint32(buf[0:4], magic)

	hdr := buf[4 : 4+headerBytes]
	binary.LittleEndian.PutUint64(hdr[hdrFastModM:], s.fastModM)
	binary.LittleEndian.PutUint32(hdr[hdrBuckets:], uint32(len(s.table)))
	binary.LittleEndian.PutUint32(hdr[hdrHashSeed:], s.seed)
	binary.LittleEndian.PutUint32(hdr[hdrPopularRecords:], uint32(len(s.popular)))
	binary.LittleEndian.PutUint32(hdr[hdrPopularCount:], s.popCount)
	binary.LittleEndian.PutUint64(hdr[hdrBlobSize:], uint64(len(s.blob)))

	at := 4 + headerBytes
	for i := range s.popular {
		s.popular[i].writeTo(buf[at : at+recordBytes])
		at += recordBytes
	}
	for i := range s.table {
		s.table[i].writeTo(buf[at : at+recordBytes])
		at += recordBytes
	}
	copy(buf[at:], s.blob)
	return buf, nil
}

// PlaceSizeFromSerialized returns the buffer size FromSerialized needs to
// reconstruct the database encoded in buf, without fully decoding it.
func PlaceSizeFromSerialized(buf []byte) (int, error) {
	popRecords, buckets, blobBytes, err := parseHeader(buf)
	if err != nil {
		return 0, err
	}
	return 4 + headerBytes + int(popRecords)*recordBytes + int(buckets)*recordBytes + int(blobBytes), nil
}

// FromSerialized reconstructs a Set from a buffer produced by Serialize.
// All table and blob references are stored as 32-bit byte offsets, not
// machine addresses, so reconstruction is a plain copy plus bounds
// validation: every slot's computed byte range is checked against the blob
// size, and the popular-table slot count is cross-checked against the
// header's popular_count.
func FromSerialized(buf []byte) (*Set, error) {
	popRecords, buckets, blobBytes, err := parseHeader(buf)
	if err != nil {
		return nil, err
	}

	hdr := buf[4 : 4+headerBytes]
	s := &Set{
		fastModM: binary.LittleEndian.Uint64(hdr[hdrFastModM:]),
		seed:     binary.LittleEndian.Uint32(hdr[hdrHashSeed:]),
		popCount: binary.LittleEndian.Uint32(hdr[hdrPopularCount:]),
		popular:  make([]record, popRecords),
		table:    make([]record, buckets),
	}

	at := 4 + headerBytes
	need := int(popRecords)*recordBytes + int(buckets)*recordBytes + int(blobBytes)
	if len(buf)-at < need {
		return nil, ErrSmallPlace
	}

	for i := range s.popular {
		s.popular[i].readFrom(buf[at : at+recordBytes])
		at += recordBytes
	}
	for i := range s.table {
		s.table[i].readFrom(buf[at : at+recordBytes])
		at += recordBytes
	}
	s.blob = make([]byte, blobBytes)
	copy(s.blob, buf[at:at+int(blobBytes)])

	if err := s.validateRecords(); err != nil {
		return nil, err
	}
	if uint32(s.usedPopularTotal()) != s.popCount {
		return nil, ErrBadValue
	}
	return s, nil
}

func parseHeader(buf []byte) (popRecords, buckets uint32, blobBytes uint64, err error) {
	if len(buf) < 4+headerBytes {
		return 0, 0, 0, ErrSmallPlace
	}
	if binary.LittleEndian.Uint32(buf[0:4]) != magic {
		return 0, 0, 0, ErrBadValue
	}
	hdr := buf[4 : 4+headerBytes]
	buckets = binary.LittleEndian.Uint32(hdr[hdrBuckets:])
	popRecords = binary.LittleEndian.Uint32(hdr[hdrPopularRecords:])
	blobBytes = binary.LittleEndian.Uint64(hdr[hdrBlobSize:])
	if blobBytes%16 != 0 || blobBytes < blobTailPad {
		return 0, 0, 0, ErrBadValue
	}
	if buckets == 0 {
		return 0, 0, 0, ErrBadValue
	}
	return popRecords, buckets, blobBytes, nil
}

// validateRecords bounds-checks every occupied slot's computed byte range
// against the blob, rejecting any record whose offsets would read or
// compare past the end of the blob.
func (s *Set) validateRecords() error {
	blobLen := len(s.blob)
	check := func(r *record) error {
		if int(r.used) > dSlots {
			return ErrBadValue
		}
		for i := 0; i < int(r.used); i++ {
			pos := r.slotOffset(i)
			if pos < 0 || pos >= blobLen {
				return ErrBadValue
			}
			// The stored string runs up to its NUL terminator, which must
			// also lie inside the blob.
			end := pos
			for end < blobLen && s.blob[end] != 0 {
				end++
			}
			if end >= blobLen {
				return ErrBadValue
			}
		}
		return nil
	}
	for i := range s.popular {
		if err := check(&s.popular[i]); err != nil {
			return err
		}
	}
	for i := range s.table {
		if err := check(&s.table[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Set) usedPopularTotal() int {
	total := 0
	for i := range s.popular {
		total += int(s.popular[i].used)
	}
	return total
}
