// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashset

import "sync"

// Allocator supplies nodes and bucket tables to a Set. An allocator is
// owned by exactly one set and is only called from that set's methods.
type Allocator[V any] interface {
	// AllocNode returns a zeroed node.
	AllocNode() *Node[V]
	// AllocTable returns a table of n empty buckets.
	AllocTable(n uint) []*Node[V]
	// CollectNode takes back a node that has been unlinked.
	CollectNode(n *Node[V])
	// CollectTable takes back a bucket table after a resize or reset.
	CollectTable(t []*Node[V])
	// CollectAll reclaims every outstanding node at once when the
	// allocator supports it, additionally releasing backing storage when
	// all is true. It reports true when the bulk free happened, in which
	// case the caller skips per-node reaping and collection.
	CollectAll(all bool) bool
}

// heapAlloc is the default policy: plain GC allocation, per-node release.
type heapAlloc[V any] struct{}

func (heapAlloc[V]) AllocNode() *Node[V] {
	return new(Node[V])
}

func (heapAlloc[V]) AllocTable(n uint) []*Node[V] {
	return make([]*Node[V], n)
}

func (heapAlloc[V]) CollectNode(n *Node[V]) {
	var zero V
	n.value = zero
	n.next = nil
}

func (heapAlloc[V]) CollectTable([]*Node[V]) {}

func (heapAlloc[V]) CollectAll(bool) bool {
	return false
}

// PoolAlloc recycles nodes through a sync.Pool. Collected nodes are zeroed
// before they are pooled so reaped elements do not linger.
type PoolAlloc[V any] struct {
	pool sync.Pool
}

// NewPoolAlloc returns a pool-backed allocator.
func NewPoolAlloc[V any]() *PoolAlloc[V] {
	a := &PoolAlloc[V]{}
	a.pool.New = func() any { return new(Node[V]) }
	return a
}

func (a *PoolAlloc[V]) AllocNode() *Node[V] {
	return a.pool.Get().(*Node[V])
}

func (a *PoolAlloc[V]) AllocTable(n uint) []*Node[V] {
	return make([]*Node[V], n)
}

func (a *PoolAlloc[V]) CollectNode(n *Node[V]) {
	var zero V
	n.value = zero
	n.next = nil
	a.pool.Put(n)
}

func (a *PoolAlloc[V]) CollectTable([]*Node[V]) {}

func (a *PoolAlloc[V]) CollectAll(bool) bool {
	return false
}

// ChunkAlloc hands out nodes from slab-allocated chunks and keeps a
// freelist of collected nodes. Because every outstanding node lives in a
// chunk, the whole population can be reclaimed in one sweep, which lets the
// owning set skip per-node reaping on Clear and Reset.
type ChunkAlloc[V any] struct {
	chunkSize int
	chunks    [][]Node[V]
	free      *Node[V]
}

// NewChunkAlloc returns a chunk allocator sized by the given hints; see
// Config.
func NewChunkAlloc[V any](chunkSize, chunkCount int) *ChunkAlloc[V] {
	a := &ChunkAlloc[V]{}
	a.Config(chunkSize, chunkCount)
	return a
}

// Config sets the nodes-per-chunk size and pre-allocates chunkCount chunks.
// Values below one fall back to a 256-node chunk and no pre-allocation.
func (a *ChunkAlloc[V]) Config(chunkSize, chunkCount int) {
	if chunkSize < 1 {
		chunkSize = 256
	}
	a.chunkSize = chunkSize
	for i := 0; i < chunkCount; i++ {
		a.grow()
	}
}

func (a *ChunkAlloc[V]) grow() {
	chunk := make([]Node[V], a.chunkSize)
	for i := range chunk {
		chunk[i].next = a.free
		a.free = &chunk[i]
	}
	a.chunks = append(a.chunks, chunk)
}

func (a *ChunkAlloc[V]) AllocNode() *Node[V] {
	if a.free == nil {
		a.grow()
	}
	n := a.free
	a.free = n.next
	n.next = nil
	return n
}

func (a *ChunkAlloc[V]) AllocTable(n uint) []*Node[V] {
	return make([]*Node[V], n)
}

func (a *ChunkAlloc[V]) CollectNode(n *Node[V]) {
	var zero V
	n.value = zero
	n.next = a.free
	a.free = n
}

func (a *ChunkAlloc[V]) CollectTable([]*Node[V]) {}

func (a *ChunkAlloc[V]) CollectAll(all bool) bool {
	if all {
		a.chunks = nil
		a.free = nil
		return true
	}
	a.free = nil
	for _, chunk := range a.chunks {
		for i := range chunk {
			var zero V
			chunk[i].value = zero
			chunk[i].next = a.free
			a.free = &chunk[i]
		}
	}
	return true
}
