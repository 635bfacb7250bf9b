// Package uint64set is the external uint64-set collaborator spec.md treats
// as out of scope (interfaces only): a read-only, precompiled set of
// uint64 keys. It is grounded on gostaticuint64set/binding.go's contract
// (Compile/Find/Serialize/FromSerialized) and reuses domainset's fast-
// modulus bucket-selection trick (spec.md §4.1) via internal/fastmod, but
// has none of the domain set's label-chaining or popular-suffix machinery:
// keys are fixed-width, so there is no suffix to bound.
package uint64set

import (
	"encoding/binary"
	"errors"

	"github.com/hipermap-go/hipermap/internal/fastmod"
)

var (
	ErrNoKeys     = errors.New("uint64set: no keys")
	ErrBadValue   = errors.New("uint64set: invalid serialized buffer")
	ErrSmallPlace = errors.New("uint64set: buffer too small")
)

const magic = 0x53343655 // "U64S" little-endian

// Set is a compiled, read-only set of uint64 keys.
type Set struct {
	m       uint64
	buckets []uint64bucket
}

const bucketCapacity = 8

type uint64bucket struct {
	keys [bucketCapacity]uint64
	used uint8
}

// Compile builds a Set from keys, which need not be unique (duplicates are
// collapsed). Returns ErrNoKeys if keys is empty.
func Compile(keys []uint64) (*Set, error) {
	if len(keys) == 0 {
		return nil, ErrNoKeys
	}
	seen := make(map[uint64]struct{}, len(keys))
	unique := make([]uint64, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, k)
	}

	numBuckets := uint32(len(unique)/bucketCapacity + 1)
	for {
		m := fastmod.M(numBuckets)
		buckets := make([]uint64bucket, numBuckets)
		if tryPlace(unique, m, buckets) {
			return &Set{m: m, buckets: buckets}, nil
		}
		numBuckets = numBuckets + numBuckets/16 + 1
	}
}

func tryPlace(keys []uint64, m uint64, buckets []uint64bucket) bool {
	for _, k := range keys {
		b := fastmod.U32(uint32(k), m, uint32(len(buckets)))
		bucket := &buckets[b]
		if int(bucket.used) >= bucketCapacity {
			return false
		}
		bucket.keys[bucket.used] = k
		bucket.used++
	}
	return true
}

// Find reports whether key is in the set.
func (s *Set) Find(key uint64) bool {
	if s == nil || len(s.buckets) == 0 {
		return false
	}
	b := fastmod.U32(uint32(key), s.m, uint32(len(s.buckets)))
	bucket := &s.buckets[b]
	for i := 0; i < int(bucket.used); i++ {
		if bucket.keys[i] == key {
			return true
		}
	}
	return false
}

// SerializedSize returns the exact byte size Serialize produces.
func (s *Set) SerializedSize() int {
	if s == nil {
		return 0
	}
	return 4 + 8 + 4 + len(s.buckets)*(bucketCapacity*8+1)
}

// Serialize emits a compact wire form: magic, fastmod M, bucket count, then
// each bucket as its used count followed by its live keys.
func (s *Set) Serialize() ([]byte, error) {
	if s == nil || len(s.buckets) == 0 {
		return nil, ErrNoKeys
	}
	buf := make([]byte, s.SerializedSize())
	binary.LittleEndian.PutUint32(buf[0:4], magic)
	binary.LittleEndian.PutUint64(buf[4:12], s.m)
	binary.LittleEndian.PutUint32(buf[12:16], uint32(len(s.buckets)))
	at := 16
	for _, b := range s.buckets {
		buf[at] = b.used
		at++
		for i := 0; i < int(b.used); i++ {
			binary.LittleEndian.PutUint64(buf[at:], b.keys[i])
			at += 8
		}
		at += (bucketCapacity - int(b.used)) * 8
	}
	return buf, nil
}

// FromSerialized reconstructs a Set from a buffer produced by Serialize.
func FromSerialized(buf []byte) (*Set, error) {
	if len(buf) < 16 {
		return nil, ErrSmallPlace
	}
	if binary.LittleEndian.Uint32(buf[0:4]) != magic {
		return nil, ErrBadValue
	}
	m := binary.LittleEndian.Uint64(buf[4:12])
	numBuckets := binary.LittleEndian.Uint32(buf[12:16])

	s := &Set{m: m, buckets: make([]uint64bucket, numBuckets)}
	at := 16
	for i := range s.buckets {
		if at >= len(buf) {
			return nil, ErrSmallPlace
		}
		used := buf[at]
		at++
		if int(used) > bucketCapacity {
			return nil, ErrBadValue
		}
		s.buckets[i].used = used
		for j := 0; j < int(used); j++ {
			if at+8 > len(buf) {
				return nil, ErrSmallPlace
			}
			s.buckets[i].keys[j] = binary.LittleEndian.Uint64(buf[at:])
			at += 8
		}
		at += (bucketCapacity - int(used)) * 8
	}
	return s, nil
}

// Len returns the number of distinct keys stored.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	total := 0
	for _, b := range s.buckets {
		total += int(b.used)
	}
	return total
}
