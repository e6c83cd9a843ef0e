// table.go: the slot array and its probe scans (C1)
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package nodestore

import (
	"sync/atomic"

	"github.com/agilira/nodestore/node"
)

// table is one generation of the open-addressed slot array. A Store
// swaps its active table wholesale on resize; see resize.go.
type table struct {
	slots      []atomic.Pointer[entry]
	primeIndex int
}

func newTable(primeIndex int) *table {
	return &table{
		slots:      make([]atomic.Pointer[entry], primeLadder[primeIndex]),
		primeIndex: primeIndex,
	}
}

func (t *table) size() int { return len(t.slots) }

// findOccupied scans from id's primary index, returning the slot index
// and the occupied entry whose cached hash and stored identifier both
// match. Returns (-1, nil) on Empty (key absent) or after a full probe
// cycle (§4.1).
func (t *table) findOccupied(id node.ID) (int, *entry) {
	p := t.size()
	hash := id.Hash()
	i0 := primaryIndex(hash, p)
	step := probeStep(hash, p)

	i := i0
	for n := 0; n < p; n++ {
		e := t.slots[i].Load()
		switch {
		case e == nil:
			return -1, nil
		case e == tombstone:
			// probe continues
		default:
			if e.hash == hash && e.node.NodeID().Equal(id) {
				return i, e
			}
		}
		i = (i + step) % p
	}
	return -1, nil
}

// findFreeForInsert scans from id's primary index for a slot to publish
// a new entry into, preferring the earliest tombstone over a later empty
// slot, and failing if id is already present (§4.1).
func (t *table) findFreeForInsert(id node.ID) int {
	p := t.size()
	hash := id.Hash()
	i0 := primaryIndex(hash, p)
	step := probeStep(hash, p)

	candidate := -1
	i := i0
	for n := 0; n < p; n++ {
		e := t.slots[i].Load()
		switch {
		case e == nil:
			if candidate >= 0 {
				return candidate
			}
			return i
		case e == tombstone:
			if candidate < 0 {
				candidate = i
			}
		default:
			if e.hash == hash && e.node.NodeID().Equal(id) {
				return -1
			}
		}
		i = (i + step) % p
	}
	return candidate
}

// occupiedCount scans the whole table and counts live slots. Used only
// by tests, never on a hot path.
func (t *table) occupiedCount() int {
	n := 0
	for i := range t.slots {
		e := t.slots[i].Load()
		if e != nil && e != tombstone {
			n++
		}
	}
	return n
}
