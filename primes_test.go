// primes_test.go: unit tests for the prime ladder and probe math
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package nodestore

import "testing"

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

func TestPrimeLadder_AllPrime(t *testing.T) {
	for _, p := range primeLadder {
		if !isPrime(p) {
			t.Errorf("ladder entry %d is not prime", p)
		}
	}
}

func TestPrimeLadder_Ascending(t *testing.T) {
	for i := 1; i < len(primeLadder); i++ {
		if primeLadder[i] <= primeLadder[i-1] {
			t.Fatalf("ladder not strictly ascending at index %d: %d <= %d", i, primeLadder[i], primeLadder[i-1])
		}
	}
}

func TestHigherPrimeIndex(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{1, 0},
		{61, 0},
		{62, 1},
		{127, 1},
		{128, 2},
	}
	for _, tt := range tests {
		if got := higherPrimeIndex(tt.n); got != tt.want {
			t.Errorf("higherPrimeIndex(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestHigherPrimeIndex_ExceedsLadder(t *testing.T) {
	idx := higherPrimeIndex(1 << 33)
	if idx != len(primeLadder)-1 {
		t.Errorf("expected clamp to last index %d, got %d", len(primeLadder)-1, idx)
	}
}

func TestInitialPrimeIndex_MeetsMinCapacity(t *testing.T) {
	idx := initialPrimeIndex()
	if primeLadder[idx] < minCapacity {
		t.Errorf("initial prime %d is below minCapacity %d", primeLadder[idx], minCapacity)
	}
	if idx > 0 && primeLadder[idx-1] >= minCapacity {
		t.Errorf("initial prime index %d is not the smallest >= minCapacity", idx)
	}
}

func TestProbeStep_CoprimeWithSize(t *testing.T) {
	gcd := func(a, b int) int {
		for b != 0 {
			a, b = b, a%b
		}
		return a
	}
	for _, p := range primeLadder[:8] {
		for h := uint32(0); h < 200; h++ {
			s := probeStep(h, p)
			if s <= 0 || s >= p {
				t.Fatalf("probeStep out of range for p=%d h=%d: %d", p, h, s)
			}
			if gcd(s, p) != 1 {
				t.Fatalf("probeStep(%d, %d) = %d is not coprime with p", h, p, s)
			}
		}
	}
}

func TestProbeStep_FullCycleVisitsEverySlot(t *testing.T) {
	p := primeLadder[0]
	for _, h := range []uint32{0, 1, 7, 12345} {
		i0 := primaryIndex(h, p)
		step := probeStep(h, p)
		seen := make(map[int]bool, p)
		i := i0
		for n := 0; n < p; n++ {
			if seen[i] {
				t.Fatalf("slot %d visited twice before full cycle (h=%d)", i, h)
			}
			seen[i] = true
			i = (i + step) % p
		}
		if i != i0 {
			t.Fatalf("cycle did not return to i0 after p steps (h=%d)", h)
		}
		if len(seen) != p {
			t.Fatalf("full cycle visited %d of %d slots (h=%d)", len(seen), p, h)
		}
	}
}
