// Package uint64map is the external uint64->uint64 map collaborator
// spec.md treats as out of scope (interfaces only), grounded on
// gostaticuint64map/binding.go's Compile(keys, values)/Find(key) (value,
// ok) contract. Same bucketed-by-fastmod shape as uint64set, with a value
// riding alongside each key.
package uint64map

import (
	"encoding/binary"
	"errors"

	"github.com/hipermap-go/hipermap/internal/fastmod"
)

var (
	ErrLengthMismatch = errors.New("uint64map: len(keys) != len(values)")
	ErrNoKeys         = errors.New("uint64map: no keys")
	ErrBadValue       = errors.New("uint64map: invalid serialized buffer")
	ErrSmallPlace     = errors.New("uint64map: buffer too small")
)

const magic = 0x4D343655 // "U64M" little-endian
const bucketCapacity = 8

type entry struct {
	key, value uint64
}

type bucket struct {
	entries [bucketCapacity]entry
	used    uint8
}

// Map is a compiled, read-only uint64->uint64 map.
type Map struct {
	m       uint64
	buckets []bucket
}

// Compile builds a Map from parallel keys/values slices. A later duplicate
// key overwrites an earlier one's value.
func Compile(keys, values []uint64) (*Map, error) {
	if len(keys) != len(values) {
		return nil, ErrLengthMismatch
	}
	if len(keys) == 0 {
		return nil, ErrNoKeys
	}

	order := make([]uint64, 0, len(keys))
	latest := make(map[uint64]uint64, len(keys))
	for i, k := range keys {
		if _, ok := latest[k]; !ok {
			order = append(order, k)
		}
		latest[k] = values[i]
	}

	numBuckets := uint32(len(order)/bucketCapacity + 1)
	for {
		m := fastmod.M(numBuckets)
		buckets := make([]bucket, numBuckets)
		if tryPlace(order, latest, m, buckets) {
			return &Map{m: m, buckets: buckets}, nil
		}
		numBuckets = numBuckets + numBuckets/16 + 1
	}
}

func tryPlace(order []uint64, values map[uint64]uint64, m uint64, buckets []bucket) bool {
	for _, k := range order {
		b := fastmod.U32(uint32(k), m, uint32(len(buckets)))
		bk := &buckets[b]
		if int(bk.used) >= bucketCapacity {
			return false
		}
		bk.entries[bk.used] = entry{key: k, value: values[k]}
		bk.used++
	}
	return true
}

// Find returns the value associated with key, if present.
func (s *Map) Find(key uint64) (value uint64, ok bool) {
	if s == nil || len(s.buckets) == 0 {
		return 0, false
	}
	b := fastmod.U32(uint32(key), s.m, uint32(len(s.buckets)))
	bk := &s.buckets[b]
	for i := 0; i < int(bk.used); i++ {
		if bk.entries[i].key == key {
			return bk.entries[i].value, true
		}
	}
	return 0, false
}

// Len returns the number of distinct keys stored.
func (s *Map) Len() int {
	if s == nil {
		return 0
	}
	total := 0
	for _, b := range s.buckets {
		total += int(b.used)
	}
	return total
}

// SerializedSize returns the exact byte size Serialize produces.
func (s *Map) SerializedSize() int {
	if s == nil {
		return 0
	}
	return 4 + 8 + 4 + len(s.buckets)*(1+bucketCapacity*16)
}

// Serialize emits magic, fastmod M, bucket count, then each bucket's used
// count followed by its (key, value) pairs.
func (s *Map) Serialize() ([]byte, error) {
	if s == nil || len(s.buckets) == 0 {
		return nil, ErrNoKeys
	}
	buf := make([]byte, s.SerializedSize())
	binary.LittleEndian.PutUint32(buf[0:4], magic)
	binary.LittleEndian.PutUint64(buf[4:12], s.m)
	binary.LittleEndian.PutUint32(buf[12:16], uint32(len(s.buckets)))
	at := 16
	for _, bk := range s.buckets {
		buf[at] = bk.used
		at++
		for i := 0; i < int(bk.used); i++ {
			binary.LittleEndian.PutUint64(buf[at:], bk.entries[i].key)
			binary.LittleEndian.PutUint64(buf[at+8:], bk.entries[i].value)
			at += 16
		}
		at += (bucketCapacity - int(bk.used)) * 16
	}
	return buf, nil
}

// FromSerialized reconstructs a Map from a buffer produced by Serialize.
func FromSerialized(buf []byte) (*Map, error) {
	if len(buf) < 16 {
		return nil, ErrSmallPlace
	}
	if binary.LittleEndian.Uint32(buf[0:4]) != magic {
		return nil, ErrBadValue
	}
	m := binary.LittleEndian.Uint64(buf[4:12])
	numBuckets := binary.LittleEndian.Uint32(buf[12:16])
	if uint64(len(buf)) < 16+uint64(numBuckets)*(1+bucketCapacity*16) {
		return nil, ErrSmallPlace
	}

	s := &Map{m: m, buckets: make([]bucket, numBuckets)}
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
			if at+16 > len(buf) {
				return nil, ErrSmallPlace
			}
			s.buckets[i].entries[j] = entry{
				key:   binary.LittleEndian.Uint64(buf[at:]),
				value: binary.LittleEndian.Uint64(buf[at+8:]),
			}
			at += 16
		}
		at += (bucketCapacity - int(used)) * 16
	}
	return s, nil
}
