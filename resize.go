// resize.go: primed capacity selection and rebuild (C3)
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package nodestore

// expand computes the next table generation for the given occupied
// count and rebuilds it from old, following §4.3 exactly:
//
//  1. target index = higherPrimeIndex(count*2)
//  2. early-return (no-op) if neither too full nor too empty
//  3. allocate fresh array, migrate occupied entries via findFreeForInsert
//  4. tombstones do not migrate; entries themselves are not reallocated
//
// A non-nil error here always means the caller's current table is still
// valid and unchanged; resize failure is never destructive (§4.3, §7).
func expand(old *table, count int) (next *table, resized bool, err error) {
	p := old.size()
	targetIdx := higherPrimeIndex(count * 2)
	if targetIdx < initialPrimeIndex() {
		// A shrink must never drop below the ladder's minCapacity floor
		// (primes.go), regardless of how low count*2 computes.
		targetIdx = initialPrimeIndex()
	}

	if count*2 < p && (count*8 > p || p <= minCapacity) {
		return old, false, nil
	}
	if primeLadder[targetIdx] == p {
		// Already at the floor (or otherwise unchanged); nothing to do.
		return old, false, nil
	}

	newTbl, allocErr := safeAllocTable(targetIdx)
	if allocErr != nil {
		return old, false, allocErr
	}

	for i := range old.slots {
		e := old.slots[i].Load()
		if e == nil || e == tombstone {
			continue
		}
		idx := newTbl.findFreeForInsert(e.node.NodeID())
		if idx < 0 {
			// Cannot happen for a table sized >= 2x the migrating count,
			// but guard against a corrupt ladder rather than silently
			// dropping an entry.
			return old, false, errInternal("resize", "no free slot for migrated entry")
		}
		newTbl.slots[idx].Store(e)
	}

	return newTbl, true, nil
}

// safeAllocTable allocates a table of the given ladder index, converting
// an allocation failure (extremely large tables on memory-constrained
// hosts) into an OutOfMemory error instead of crashing the process.
func safeAllocTable(primeIndex int) (t *table, err error) {
	defer func() {
		if r := recover(); r != nil {
			t = nil
			err = errOutOfMemory("table resize", r)
		}
	}()
	return newTable(primeIndex), nil
}

// shouldExpand reports whether load has crossed the upper threshold and
// a mutation should trigger a pre-emptive expand (§3 I4, §4.3).
// numerator/denominator default to 3/4 but may be retuned live via
// HotConfig.
func shouldExpand(count, p, numerator, denominator int) bool {
	return p*numerator <= count*denominator
}

// shouldShrink reports whether load has dropped below the lower
// threshold with a floor on the minimum table size (§3 I5, §4.3).
// numerator/denominator default to 1/8 but may be retuned live via
// HotConfig.
func shouldShrink(count, p, numerator, denominator int) bool {
	return count*denominator < p*numerator && p > DefaultShrinkFloor
}
