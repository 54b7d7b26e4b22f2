// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package hashset implements a separately chained hash set with pluggable
// hashing, element reaping and node allocation policies.
//
// A Set is single-owner: no operation may be called concurrently with any
// other operation on the same instance.
package hashset

import (
	"fmt"
	"math"
)

const (
	// DefaultInitialBuckets is the table size used for the first insertion
	// and the lower bound enforced by SetBuckets.
	DefaultInitialBuckets = 4

	// DefaultLoadFactor is the count/buckets ratio above which the table
	// grows.
	DefaultLoadFactor = 0.75
)

// Hash places v into one of buckets slots. It must return a value in
// [0, buckets) and must agree with the set's equality: equal values hash
// identically for every bucket count.
type Hash[V any] func(v V, buckets uint) uint

// Equal reports whether two elements are equivalent.
type Equal[V any] func(a, b V) bool

// Reap is invoked once per element just before the node holding it is
// released. When Clear or Reset runs with an allocator that bulk-frees
// (CollectAll reports true), it is not invoked for the cleared elements.
// It must not fail.
type Reap[V any] func(v V)

// Node is a singly linked cell holding one element. Node identity is stable
// across rehashes.
type Node[V any] struct {
	value V
	next  *Node[V]
}

// Value returns the element held by the node.
func (n *Node[V]) Value() V {
	return n.value
}

// Set is a separately chained hash set over V.
type Set[V any] struct {
	table      []*Node[V]
	count      int
	loadFactor float64
	mutation   uint64
	hash       Hash[V]
	equal      Equal[V]
	reap       Reap[V]
	heap       Allocator[V]
}

// Option configures a Set at construction.
type Option[V any] func(*set[V])

// set carries the construction-time knobs so options stay decoupled from
// Set internals.
type set[V any] struct {
	reap       Reap[V]
	heap       Allocator[V]
	loadFactor float64
	buckets    uint
}

// WithReap installs r as the element reap policy.
func WithReap[V any](r Reap[V]) Option[V] {
	return func(s *set[V]) { s.reap = r }
}

// WithAllocator installs a as the node and table allocator. The allocator
// becomes owned by the set and must not be shared.
func WithAllocator[V any](a Allocator[V]) Option[V] {
	return func(s *set[V]) { s.heap = a }
}

// WithLoadFactor sets the initial load threshold. f must be positive.
func WithLoadFactor[V any](f float64) Option[V] {
	return func(s *set[V]) { s.loadFactor = f }
}

// WithBuckets pre-sizes the bucket table.
func WithBuckets[V any](n uint) Option[V] {
	return func(s *set[V]) { s.buckets = n }
}

// New returns an empty set using hash for placement and equal for element
// equivalence. Both are required.
func New[V any](hash Hash[V], equal Equal[V], opts ...Option[V]) *Set[V] {
	if hash == nil || equal == nil {
		panic("hashset: hash and equal functions are required")
	}
	cfg := set[V]{loadFactor: DefaultLoadFactor}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.loadFactor <= 0 {
		panic("hashset: load factor must be positive")
	}
	if cfg.reap == nil {
		cfg.reap = func(V) {}
	}
	if cfg.heap == nil {
		cfg.heap = heapAlloc[V]{}
	}
	s := &Set[V]{
		loadFactor: cfg.loadFactor,
		hash:       hash,
		equal:      equal,
		reap:       cfg.reap,
		heap:       cfg.heap,
	}
	if cfg.buckets > 0 {
		s.SetBuckets(cfg.buckets)
	}
	return s
}

// Size returns the number of elements stored.
func (s *Set[V]) Size() int {
	return s.count
}

// Add inserts v if no equivalent element exists and reports whether it did.
// The load threshold is only rechecked when the target bucket already held
// an element before the insertion.
func (s *Set[V]) Add(v V) bool {
	if s.table == nil {
		s.table = s.heap.AllocTable(DefaultInitialBuckets)
	}
	i := s.hash(v, uint(len(s.table)))
	head := s.table[i]
	for n := head; n != nil; n = n.next {
		if s.equal(n.value, v) {
			return false
		}
	}
	n := s.heap.AllocNode()
	n.value = v
	n.next = head
	s.table[i] = n
	s.count++
	s.mutation++
	if head != nil && float64(s.count) > s.loadFactor*float64(len(s.table)) {
		s.resize(grownBuckets(s.count, s.loadFactor))
	}
	return true
}

// AddAll inserts every value and returns how many were actually added.
func (s *Set[V]) AddAll(vs ...V) uint {
	var added uint
	for _, v := range vs {
		if s.Add(v) {
			added++
		}
	}
	return added
}

// Contains reports whether an element equivalent to v is present.
func (s *Set[V]) Contains(v V) bool {
	if s.table == nil {
		return false
	}
	for n := s.table[s.hash(v, uint(len(s.table)))]; n != nil; n = n.next {
		if s.equal(n.value, v) {
			return true
		}
	}
	return false
}

// Remove unlinks the element equivalent to v, reaps it, and reports whether
// anything was removed.
func (s *Set[V]) Remove(v V) bool {
	if s.table == nil {
		return false
	}
	i := s.hash(v, uint(len(s.table)))
	var trail *Node[V]
	for n := s.table[i]; n != nil; trail, n = n, n.next {
		if s.equal(n.value, v) {
			if trail == nil {
				s.table[i] = n.next
			} else {
				trail.next = n.next
			}
			s.release(n)
			return true
		}
	}
	return false
}

// RemoveAll removes every listed value and returns the count actually
// removed.
func (s *Set[V]) RemoveAll(vs ...V) uint {
	var removed uint
	for _, v := range vs {
		if s.Remove(v) {
			removed++
		}
	}
	return removed
}

// Take removes and returns some element, choosing the first non-empty
// bucket. It reports false iff the set is empty.
func (s *Set[V]) Take() (V, bool) {
	for i, head := range s.table {
		if head != nil {
			v := head.value
			s.table[i] = head.next
			s.release(head)
			return v, true
		}
	}
	var zero V
	return zero, false
}

// Replace removes old and adds newv. It reports true iff old was present
// and differed from newv. The sequence is remove-then-add: when newv
// collides with an existing element distinct from old, old is still removed,
// nothing is added, and Replace still reports true.
func (s *Set[V]) Replace(old, newv V) bool {
	if s.equal(old, newv) {
		return false
	}
	if !s.Remove(old) {
		return false
	}
	s.Add(newv)
	return true
}

// Clear empties every chain while preserving the bucket table. Elements are
// reaped individually unless the allocator performs a bulk free.
func (s *Set[V]) Clear() {
	s.clear(false)
}

// Reset empties the set and releases the bucket table, leaving the state of
// a freshly constructed instance.
func (s *Set[V]) Reset() {
	s.clear(true)
	if s.table != nil {
		s.heap.CollectTable(s.table)
		s.table = nil
	}
}

func (s *Set[V]) clear(all bool) {
	if s.table == nil {
		return
	}
	bulk := s.heap.CollectAll(all)
	for i, head := range s.table {
		if !bulk {
			for n := head; n != nil; {
				next := n.next
				s.reap(n.value)
				s.heap.CollectNode(n)
				n = next
			}
		}
		s.table[i] = nil
	}
	s.count = 0
	s.mutation++
}

// Buckets returns the current bucket count, zero before the first
// insertion.
func (s *Set[V]) Buckets() uint {
	return uint(len(s.table))
}

// SetBuckets resizes the table to at least DefaultInitialBuckets slots,
// rehashing when the count changes.
func (s *Set[V]) SetBuckets(n uint) {
	if n < DefaultInitialBuckets {
		n = DefaultInitialBuckets
	}
	if s.table == nil {
		s.table = s.heap.AllocTable(n)
		s.mutation++
		return
	}
	if n != uint(len(s.table)) {
		s.resize(n)
	}
}

// Threshold returns the load factor.
func (s *Set[V]) Threshold() float64 {
	return s.loadFactor
}

// SetThreshold replaces the load factor and rechecks the current load,
// growing the table if it is now exceeded. f must be positive.
func (s *Set[V]) SetThreshold(f float64) {
	if f <= 0 {
		panic("hashset: load factor must be positive")
	}
	s.loadFactor = f
	if s.table != nil && float64(s.count) > f*float64(len(s.table)) {
		s.resize(grownBuckets(s.count, f))
	}
}

// ToSlice fills dst with every element and returns it sliced to Size(),
// growing dst when too small. Order follows iteration order.
func (s *Set[V]) ToSlice(dst []V) []V {
	if cap(dst) < s.count {
		dst = make([]V, s.count)
	}
	dst = dst[:s.count]
	i := 0
	for _, head := range s.table {
		for n := head; n != nil; n = n.next {
			dst[i] = n.value
			i++
		}
	}
	return dst
}

// Dup returns an independent copy with the same bucket count and load
// factor. Elements are shared, not deep-cloned; the copy gets its own
// default allocator.
func (s *Set[V]) Dup() *Set[V] {
	d := &Set[V]{
		loadFactor: s.loadFactor,
		hash:       s.hash,
		equal:      s.equal,
		reap:       s.reap,
		heap:       heapAlloc[V]{},
	}
	if s.table == nil {
		return d
	}
	d.table = d.heap.AllocTable(uint(len(s.table)))
	for i, head := range s.table {
		for n := head; n != nil; n = n.next {
			nn := d.heap.AllocNode()
			nn.value = n.value
			nn.next = d.table[i]
			d.table[i] = nn
		}
	}
	d.count = s.count
	return d
}

// Each applies visit to every element in iteration order until visit
// returns false.
func (s *Set[V]) Each(visit func(V) bool) {
	it := s.Iter()
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		if !visit(v) {
			return
		}
	}
}

// Check verifies the structural invariants: element placement matches the
// hash, the count matches the reachable nodes, no node is shared between
// chains and no chain cycles. Intended for tests.
func (s *Set[V]) Check() error {
	if s.loadFactor <= 0 {
		return fmt.Errorf("hashset: load factor %v is not positive", s.loadFactor)
	}
	if s.table == nil {
		if s.count != 0 {
			return fmt.Errorf("hashset: no table but count is %d", s.count)
		}
		return nil
	}
	if len(s.table) == 0 {
		return fmt.Errorf("hashset: table has zero buckets")
	}
	seen := make(map[*Node[V]]bool, s.count)
	reachable := 0
	for i, head := range s.table {
		for n := head; n != nil; n = n.next {
			if seen[n] {
				return fmt.Errorf("hashset: node in bucket %d reachable twice", i)
			}
			seen[n] = true
			if got := s.hash(n.value, uint(len(s.table))); got != uint(i) {
				return fmt.Errorf("hashset: element in bucket %d hashes to %d", i, got)
			}
			reachable++
		}
	}
	if reachable != s.count {
		return fmt.Errorf("hashset: count is %d but %d nodes are reachable", s.count, reachable)
	}
	return nil
}

// release unlinked node n: reap its element, hand the node back to the
// allocator, and account for the structural change.
func (s *Set[V]) release(n *Node[V]) {
	s.reap(n.value)
	s.heap.CollectNode(n)
	s.count--
	s.mutation++
}

// resize rehashes every node into a fresh table of n buckets. Nodes are
// re-prepended, so node identity is preserved.
func (s *Set[V]) resize(n uint) {
	old := s.table
	s.table = s.heap.AllocTable(n)
	for _, head := range old {
		for node := head; node != nil; {
			next := node.next
			i := s.hash(node.value, n)
			node.next = s.table[i]
			s.table[i] = node
			node = next
		}
	}
	s.heap.CollectTable(old)
	s.mutation++
}

// grownBuckets is the table size used when the load threshold is exceeded.
func grownBuckets(count int, loadFactor float64) uint {
	return 2*uint(math.Ceil(float64(count)/loadFactor)) + 1
}
