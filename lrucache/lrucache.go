// Package lrucache is the external fixed-capacity LRU cache collaborator
// spec.md treats as out of scope (interfaces only), grounded on
// gocache/cache.go's New(capacity, speed)/Add/Remove/Has/Dump contract.
// The teacher's cgo binding delegates to gitlab.com/starius/lru-gen, whose
// generated source is not available to build against here; this port
// reimplements the same eviction policy directly on container/list, the
// idiomatic Go building block for an intrusive doubly linked list.
package lrucache

import (
	"container/list"
	"errors"
)

var ErrBadCapacity = errors.New("lrucache: capacity must be positive")

type entry struct {
	ip, value uint32
	hits      int
}

// Cache is a fixed-capacity, least-recently-used cache keyed by a uint32
// (an IPv4 address in the teacher's usage) with a uint32 payload.
//
// speed controls how many hits an entry accrues before it is promoted to
// the front of the eviction list on access, rather than being moved on
// every touch; higher speed trades eviction precision for fewer list
// operations under heavy re-access of the same keys.
type Cache struct {
	capacity int
	speed    int
	ll       *list.List
	index    map[uint32]*list.Element
}

// New creates a Cache holding up to capacity entries.
func New(capacity, speed int) (*Cache, error) {
	if capacity <= 0 {
		return nil, ErrBadCapacity
	}
	if speed <= 0 {
		speed = 1
	}
	return &Cache{
		capacity: capacity,
		speed:    speed,
		ll:       list.New(),
		index:    make(map[uint32]*list.Element, capacity),
	}, nil
}

// Add inserts or updates ip->value, promoting it to most-recently-used.
// If ip was already present, existed is true. If the cache was at
// capacity and a different key had to be evicted to make room, evicted is
// true and evictedIp/evictedValue describe the evicted entry.
func (c *Cache) Add(ip, value uint32) (existed, evicted bool, evictedIp, evictedValue uint32) {
	if el, ok := c.index[ip]; ok {
		e := el.Value.(*entry)
		e.value = value
		e.hits = 0
		c.ll.MoveToFront(el)
		return true, false, 0, 0
	}

	if len(c.index) >= c.capacity {
		back := c.ll.Back()
		if back != nil {
			oldest := back.Value.(*entry)
			evictedIp, evictedValue = oldest.ip, oldest.value
			evicted = true
			c.ll.Remove(back)
			delete(c.index, oldest.ip)
		}
	}

	el := c.ll.PushFront(&entry{ip: ip, value: value})
	c.index[ip] = el
	return false, evicted, evictedIp, evictedValue
}

// Remove deletes ip from the cache, reporting whether it was present.
func (c *Cache) Remove(ip uint32) (existed bool, existedValue uint32) {
	el, ok := c.index[ip]
	if !ok {
		return false, 0
	}
	e := el.Value.(*entry)
	existedValue = e.value
	c.ll.Remove(el)
	delete(c.index, ip)
	return true, existedValue
}

// Has reports whether ip is cached, returning its value. Each hit counts
// towards promotion: once an entry has accrued speed hits it is moved to
// the front as most-recently-used and its count restarts.
func (c *Cache) Has(ip uint32) (exists bool, value uint32) {
	el, ok := c.index[ip]
	if !ok {
		return false, 0
	}
	e := el.Value.(*entry)
	e.hits++
	if e.hits >= c.speed {
		e.hits = 0
		c.ll.MoveToFront(el)
	}
	return true, e.value
}

// Dump returns the cached keys, most-recently-used first.
func (c *Cache) Dump() []uint32 {
	ips := make([]uint32, 0, len(c.index))
	for el := c.ll.Front(); el != nil; el = el.Next() {
		ips = append(ips, el.Value.(*entry).ip)
	}
	return ips
}

// Len returns the number of entries currently cached.
func (c *Cache) Len() int {
	return len(c.index)
}
