// primes.go: prime capacity ladder and double-hash probe sequence (C1)
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package nodestore

import "sort"

// primeLadder holds one prime just below each power of two from 2^6 up
// to the 32-bit range, plus the largest prime below 2^32. Capacities are
// always drawn from this ladder so double hashing's step function stays
// coprime with the table size (§4.1).
var primeLadder = [...]int{
	61, 127, 251, 509, 1021, 2039, 4093, 8191, 16381, 32749,
	65521, 131071, 262139, 524287, 1048573, 2097143, 4194301,
	8388593, 16777213, 33554393, 67108859, 134217689, 268435399,
	536870909, 1073741789, 2147483647, 4294967291,
}

// minCapacity is the smallest table size this store will ever allocate.
const minCapacity = 64

// higherPrimeIndex returns the index into primeLadder of the smallest
// prime that is >= n (§4.3).
func higherPrimeIndex(n int) int {
	idx := sort.Search(len(primeLadder), func(i int) bool {
		return primeLadder[i] >= n
	})
	if idx >= len(primeLadder) {
		idx = len(primeLadder) - 1
	}
	return idx
}

// initialPrimeIndex is the ladder index of the smallest prime >= minCapacity.
func initialPrimeIndex() int {
	return higherPrimeIndex(minCapacity)
}

// probeStep computes the double-hashing step for a table of size p and a
// given hash. The step is always in [1, p-2] and, because p is prime, is
// coprime with p: a full probe cycle visits every slot exactly once
// (§4.1).
func probeStep(hash uint32, p int) int {
	if p <= 2 {
		return 1
	}
	return 1 + int(hash%uint32(p-2))
}

// primaryIndex computes the starting probe index for a hash in a table
// of size p.
func primaryIndex(hash uint32, p int) int {
	return int(hash % uint32(p))
}
