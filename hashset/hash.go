// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashset

import (
	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"
)

// StringHash places a string into [0, buckets).
func StringHash(s string, buckets uint) uint {
	return uint(xxhash.Sum64String(s) % uint64(buckets))
}

// BytesHash places a byte slice into [0, buckets).
func BytesHash(b []byte, buckets uint) uint {
	return uint(xxhash.Sum64(b) % uint64(buckets))
}

// NumberHash places an integer into [0, buckets) after mixing its bits so
// clustered values spread across buckets.
func NumberHash[I constraints.Integer](v I, buckets uint) uint {
	x := uint64(v)
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return uint(x % uint64(buckets))
}

// NewStrings returns a set of strings using the default hash family.
func NewStrings(opts ...Option[string]) *Set[string] {
	return New[string](StringHash, func(a, b string) bool { return a == b }, opts...)
}

// NewNumbers returns a set of integers using the default hash family.
func NewNumbers[I constraints.Integer](opts ...Option[I]) *Set[I] {
	return New[I](NumberHash[I], func(a, b I) bool { return a == b }, opts...)
}
