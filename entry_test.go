// entry_test.go: unit tests for entry refcounting and deferred reclamation
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package nodestore

import "testing"

func TestEntry_PinUnpin_NoReclaimWhileReferenced(t *testing.T) {
	e := newEntry(mkNode(0, 1), 123)
	e.pin()
	e.markDeleted()
	if e.node == nil {
		t.Fatal("entry must stay alive while a pin is outstanding")
	}
	e.unpin()
	if e.node != nil {
		t.Fatal("entry should reclaim on last unpin once deleted")
	}
}

func TestEntry_MarkDeleted_ReclaimsImmediatelyIfUnreferenced(t *testing.T) {
	e := newEntry(mkNode(0, 2), 456)
	e.markDeleted()
	if e.node != nil {
		t.Fatal("unreferenced deleted entry should reclaim immediately")
	}
}

func TestEntry_Cleanup_IsIdempotent(t *testing.T) {
	e := newEntry(mkNode(0, 3), 789)
	e.markDeleted()
	e.cleanup()
	e.cleanup()
	if e.node != nil {
		t.Fatal("entry should remain reclaimed across repeated cleanup calls")
	}
}

func TestEntry_UnpinBelowZero_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on unpin of a zero refcount entry")
		}
	}()
	e := newEntry(mkNode(0, 4), 1)
	e.unpin()
}

func TestEntry_MultiplePins(t *testing.T) {
	e := newEntry(mkNode(0, 5), 1)
	e.pin()
	e.pin()
	e.markDeleted()
	e.unpin()
	if e.node == nil {
		t.Fatal("entry must stay alive while a second pin is still outstanding")
	}
	e.unpin()
	if e.node != nil {
		t.Fatal("entry should reclaim once all pins are released")
	}
}
