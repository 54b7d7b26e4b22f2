// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashset

// Iterator is a value-typed cursor over a Set. It captures the mutation
// epoch at creation; any structural change to the set other than the
// iterator's own Remove makes Valid report false. Within a bucket the
// cursor visits nodes in chain order, across buckets in ascending bucket
// order.
type Iterator[V any] struct {
	table    []*Node[V]
	row      int
	cell     *Node[V]
	prior    *Node[V]
	owner    *Set[V]
	mutation uint64
}

// Iter returns a cursor positioned before the first element.
func (s *Set[V]) Iter() Iterator[V] {
	return Iterator[V]{table: s.table, owner: s, mutation: s.mutation}
}

// Next yields the next element, reporting false when the table is
// exhausted.
func (it *Iterator[V]) Next() (V, bool) {
	for it.cell == nil {
		if it.row >= len(it.table) {
			var zero V
			return zero, false
		}
		it.cell = it.table[it.row]
		it.row++
	}
	v := it.cell.value
	it.prior = it.cell
	it.cell = it.cell.next
	return v, true
}

// Remove deletes the element most recently yielded by Next. The links are
// forward-only, so the bucket chain is walked to unlink the node. The
// iterator adjusts its recorded epoch so its own removal does not
// invalidate it. Calling Remove before Next, twice in a row, or on an
// already invalid iterator does nothing.
func (it *Iterator[V]) Remove() {
	if it.prior == nil || it.owner.mutation != it.mutation {
		return
	}
	row := it.row - 1
	var trail *Node[V]
	for n := it.table[row]; n != nil; trail, n = n, n.next {
		if n == it.prior {
			if trail == nil {
				it.table[row] = n.next
			} else {
				trail.next = n.next
			}
			it.owner.release(n)
			break
		}
	}
	it.prior = nil
	it.mutation = it.owner.mutation
}

// Valid reports whether the owning set is structurally unchanged since the
// cursor was created, modulo the iterator's own removals.
func (it *Iterator[V]) Valid() bool {
	return it.owner.mutation == it.mutation
}
