// entry.go: entry lifecycle — allocation, refcounting, deferred reclamation (C2)
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package nodestore

import (
	"sync/atomic"

	"github.com/agilira/nodestore/node"
)

// entry is a heap-allocated wrapper around a Node carrying the map
// metadata the slot table and resize engine need (§3 Entry).
//
// Unlike the teacher cache's entry (a fixed-layout struct designed for
// SeqLock string access), this entry has no hot-path string field: the
// key is the Node's own identifier, read through the Node interface.
// refcount is atomic because, unlike the source's single-interrupt-CPU
// model, Go readers (Get/Iterate) and the serialized writer are genuine
// concurrent goroutines — see DESIGN.md's note on this Open Question.
type entry struct {
	hash      uint32
	orig      *entry
	refcount  atomic.Int32
	deleted   atomic.Bool
	published atomic.Bool
	node      node.Node

	// origTable/origIdx record where orig lived at the moment BorrowCopy
	// produced this entry, so Replace can CAS the exact slot instead of
	// re-deriving presence from a fresh findOccupied scan — a tombstoned
	// or superseded slot must yield Internal, not NotFound (§8 P6).
	origTable *table
	origIdx   int
}

// tombstone is the sentinel pointer used to mark a vacated slot. It is
// never populated with a live Node and is distinguished from Empty (nil)
// and from any real Entry purely by its unique address (§9 "Pointer-
// tagged slot states").
var tombstone = &entry{}

func newEntry(n node.Node, hash uint32) *entry {
	e := &entry{hash: hash, node: n}
	return e
}

// pin increments the entry's refcount, returning a borrowed Node. Called
// by get and iterate.
func (e *entry) pin() node.Node {
	e.refcount.Add(1)
	return e.node
}

// unpin decrements the refcount and reclaims the entry if it is both
// deleted and unreferenced (§4.2 release, cleanup).
func (e *entry) unpin() {
	if e.refcount.Add(-1) < 0 {
		panic("nodestore: release of entry with zero refcount")
	}
	e.cleanup()
}

// markDeleted tombstones the entry itself (distinct from the slot
// tombstone) and attempts immediate reclamation. Called exactly in the
// two situations §4.2 names: the slot was cleared by remove, or the
// entry was superseded by replace.
func (e *entry) markDeleted() {
	e.deleted.Store(true)
	e.cleanup()
}

// cleanup is the idempotent reclamation check of §4.2: an entry with
// deleted=true and refcount=0 is freed (in Go, released for GC) here; an
// outstanding reader defers reclamation to its own unpin.
func (e *entry) cleanup() {
	if e.deleted.Load() && e.refcount.Load() == 0 {
		node.Clear(e.node)
		e.node = nil
		e.orig = nil
	}
}
