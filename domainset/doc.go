// Package domainset implements the Static Domain Set: a read-only,
// precompiled container answering whether a hostname, or any of its
// whole-label suffixes, belongs to a fixed set of patterns.
//
// A set is built once with Compile and is thereafter immutable; Find is a
// pure function over the compiled Set and allocates nothing on the hot path
// beyond the caller-provided query string. The on-disk/wire layout produced
// by Serialize is stable across processes of the same byte order and is
// documented in serialize.go.
package domainset
