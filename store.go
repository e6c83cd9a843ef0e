// store.go: public operations composed from the slot table, entry
// lifecycle, and resize engine (C4)
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package nodestore

import (
	"sync"
	"sync/atomic"

	"github.com/agilira/nodestore/node"
)

// numericAssignBase is the starting point for store-assigned numeric
// identifiers (§4.4 insert, §9 "numeric-id search wrap bound").
const numericAssignBase = 50_000

// Ref is a handle on a Node. A Ref from Get is a pinned borrow whose
// refcount increment is undone by Release (§9 "a language with linear
// ownership should expose pinned borrows"); a Ref from NewNode or
// BorrowCopy holds no pin and owns an unpublished Node until Insert,
// Replace, or DeleteNode consumes it. A Ref must not be used after any
// of those calls consumes it — doing so panics (§7 Misuse).
type Ref struct {
	e *entry
}

// Node returns the Ref's borrowed or owned Node. The Node returned by a
// Ref obtained from Get must not be mutated (§4.4 get); the Node
// returned by a Ref obtained from NewNode or BorrowCopy is owned by the
// caller until fed to Insert/Replace or discarded with DeleteNode.
func (r *Ref) Node() node.Node {
	if r == nil || r.e == nil {
		panic("nodestore: use of a consumed Ref")
	}
	return r.e.node
}

func (r *Ref) consume() *entry {
	if r == nil || r.e == nil {
		panic("nodestore: double-consume of a Ref")
	}
	e := r.e
	r.e = nil
	return e
}

// Store is the concurrently-readable node map described by §1–§5: a
// single serialized writer mutates it (insert/replace/remove/clear) at a
// time, while Get/Iterate may run concurrently with that writer without
// taking the write lock.
type Store struct {
	writeMu sync.Mutex
	tbl     atomic.Pointer[table]
	count   atomic.Int64

	logger       Logger
	metrics      MetricsCollector
	timeProvider TimeProvider

	lastResizeAt   atomic.Int64
	lastResizeGrew atomic.Bool

	// expandThreshold/shrinkThreshold pack numerator<<32|denominator so a
	// HotConfig can retune the load-factor triggers (§3 I4/I5) from a
	// watched file without a store-wide lock (hot-reload.go).
	expandThreshold atomic.Uint64
	shrinkThreshold atomic.Uint64
}

func packThreshold(numerator, denominator int) uint64 {
	return uint64(uint32(numerator))<<32 | uint64(uint32(denominator))
}

func unpackThreshold(packed uint64) (numerator, denominator int) {
	return int(int32(packed >> 32)), int(int32(packed))
}

// setExpandThreshold retunes the upper load-factor trigger (default
// 3/4). Takes effect on the next mutation; safe to call concurrently
// with in-flight operations.
func (s *Store) setExpandThreshold(numerator, denominator int) {
	s.expandThreshold.Store(packThreshold(numerator, denominator))
}

// setShrinkThreshold retunes the lower load-factor trigger (default 1/8).
func (s *Store) setShrinkThreshold(numerator, denominator int) {
	s.shrinkThreshold.Store(packThreshold(numerator, denominator))
}

// Stats reports a point-in-time diagnostic snapshot (§9 "probe for is a
// shrink pending"): current size, capacity, whether the current load is
// already below the shrink threshold, and the timestamp/direction of the
// most recent resize (zero if none has happened yet).
type Stats struct {
	Len            int
	Capacity       int
	ShrinkPending  bool
	LastResizeAt   int64
	LastResizeGrew bool
}

func (s *Store) Stats() Stats {
	t := s.tbl.Load()
	count := int(s.count.Load())
	shrinkNum, shrinkDen := unpackThreshold(s.shrinkThreshold.Load())
	return Stats{
		Len:            count,
		Capacity:       t.size(),
		ShrinkPending:  shouldShrink(count, t.size(), shrinkNum, shrinkDen),
		LastResizeAt:   s.lastResizeAt.Load(),
		LastResizeGrew: s.lastResizeGrew.Load(),
	}
}

// NewStore creates an empty store sized to Config.InitialCapacity
// (rounded up to the ladder's next prime, floor minCapacity).
func NewStore(cfg Config) (*Store, error) {
	cfg.Validate()
	idx := higherPrimeIndex(cfg.InitialCapacity)
	if idx < initialPrimeIndex() {
		idx = initialPrimeIndex()
	}
	t, err := safeAllocTable(idx)
	if err != nil {
		return nil, err
	}
	s := &Store{
		logger:       cfg.Logger,
		metrics:      cfg.MetricsCollector,
		timeProvider: cfg.TimeProvider,
	}
	s.tbl.Store(t)
	s.setExpandThreshold(DefaultExpandLoadNumerator, DefaultExpandLoadDenominator)
	s.setShrinkThreshold(DefaultShrinkLoadNumerator, DefaultShrinkLoadDenominator)
	return s, nil
}

// Len returns the number of entries currently published (§3 I3).
func (s *Store) Len() int { return int(s.count.Load()) }

// Capacity returns the current table size P.
func (s *Store) Capacity() int { return s.tbl.Load().size() }

// NewNode allocates an unpublished Node of the given class (§4.2
// new_node). The returned Ref is not reachable through the store until
// fed to Insert.
func (s *Store) NewNode(class node.Class) *Ref {
	n := node.New(class)
	if n == nil {
		return nil
	}
	return &Ref{e: newEntry(n, 0)}
}

// DeleteNode discards an unpublished Ref (§4.2 delete_node). It must not
// be called on a Ref that has already been consumed by Insert or
// Replace.
func (s *Store) DeleteNode(r *Ref) {
	e := r.consume()
	if e.published.Load() {
		panic("nodestore: delete_node on a published entry")
	}
	node.Clear(e.node)
	e.node = nil
}

// Get looks up id and, on a hit, pins and returns a read-only borrow
// (§4.4 get). The caller must eventually Release it.
func (s *Store) Get(id node.ID) (*Ref, bool) {
	start := s.timeProvider.Now()
	t := s.tbl.Load()
	_, e := t.findOccupied(id)
	if e == nil {
		s.metrics.RecordGet(s.timeProvider.Now()-start, false)
		return nil, false
	}
	e.pin()
	s.metrics.RecordGet(s.timeProvider.Now()-start, true)
	return &Ref{e: e}, true
}

// Release undoes the pin taken by Get (§4.2 release). It must not be
// called for a Ref handed to an Iterate visitor: Iterate unpins that Ref
// itself as soon as the visitor returns, so the visitor's Ref is valid
// only for the duration of the call and must never be retained or passed
// to Release.
func (s *Store) Release(r *Ref) {
	e := r.consume()
	e.unpin()
}

// BorrowCopy produces a mutable deep copy of the Node stored under id,
// linked back to the entry it was copied from (§4.4 borrow_copy). The
// caller owns the returned Ref until it feeds it to Replace or discards
// it with DeleteNode.
func (s *Store) BorrowCopy(id node.ID) (*Ref, error) {
	t := s.tbl.Load()
	idx, found := t.findOccupied(id)
	if found == nil {
		return nil, errNodeIDUnknown(id)
	}

	cp, err := safeCopyNode(found.node)
	if err != nil {
		return nil, err
	}
	ne := newEntry(cp, found.hash)
	ne.orig = found
	ne.origTable = t
	ne.origIdx = idx
	return &Ref{e: ne}, nil
}

func safeCopyNode(n node.Node) (cp node.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			cp = nil
			err = errOutOfMemory("borrow_copy", r)
		}
	}()
	cp = node.Copy(n)
	return cp, nil
}

// Insert publishes r's Node, assigning a fresh numeric identifier first
// if the Node carries a numeric id of value zero (§4.4 insert). Insert
// always consumes r, on both success and failure.
func (s *Store) Insert(r *Ref) (node.ID, error) {
	start := s.timeProvider.Now()
	e := r.consume()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	t := s.tbl.Load()
	count := int(s.count.Load())

	expandNum, expandDen := unpackThreshold(s.expandThreshold.Load())
	if shouldExpand(count, t.size(), expandNum, expandDen) {
		grown, resized, err := expand(t, count)
		if err != nil {
			node.Clear(e.node)
			return node.ID{}, errInternal("insert", "pre-expand failed: "+err.Error())
		}
		if resized {
			t = grown
			s.tbl.Store(t)
			s.logger.Debug("nodestore: table expanded", "capacity", t.size())
			s.metrics.RecordResize(t.size(), true)
			s.lastResizeAt.Store(s.timeProvider.Now())
			s.lastResizeGrew.Store(true)
		}
	}

	id := e.node.NodeID()
	if id.IsNumericZero() {
		assigned, slotIdx, ok := assignNumericID(t, id, count)
		if !ok {
			node.Clear(e.node)
			return node.ID{}, errNodeIDExists(id)
		}
		id = assigned
		e.node.SetNodeID(id)
		e.hash = id.Hash()
		prev := t.slots[slotIdx].Load()
		e.published.Store(true)
		if !t.slots[slotIdx].CompareAndSwap(prev, e) {
			node.Clear(e.node)
			return node.ID{}, errInternal("insert", "losing CAS on publish")
		}
		s.count.Add(1)
		s.metrics.RecordInsert(s.timeProvider.Now() - start)
		return id, nil
	}

	slotIdx := t.findFreeForInsert(id)
	if slotIdx < 0 {
		node.Clear(e.node)
		return node.ID{}, errNodeIDExists(id)
	}
	e.hash = id.Hash()
	prev := t.slots[slotIdx].Load()
	e.published.Store(true)
	if !t.slots[slotIdx].CompareAndSwap(prev, e) {
		node.Clear(e.node)
		return node.ID{}, errInternal("insert", "losing CAS on publish")
	}
	s.count.Add(1)
	s.metrics.RecordInsert(s.timeProvider.Now() - start)
	return id, nil
}

// assignNumericID implements §4.4's numeric-identifier assignment and
// §9's "numeric-id search wrap bound" note verbatim: candidates wrap
// modulo P (not 2^32), so the residue class covers every slot exactly
// once before aliasing.
func assignNumericID(t *table, base node.ID, count int) (node.ID, int, bool) {
	p := t.size()
	candidate := uint32((numericAssignBase + p + 1) % (1 << 32))
	step := uint32(1+((count+1)%(p-2))) % uint32(p)
	if step == 0 {
		step = 1
	}

	for n := 0; n < p; n++ {
		id := base.WithNumeric(candidate)
		if idx := t.findFreeForInsert(id); idx >= 0 {
			return id, idx, true
		}
		candidate = (candidate + step) % uint32(p)
	}
	return node.ID{}, -1, false
}

// Replace publishes a Ref produced by BorrowCopy in place of the entry
// it was copied from, failing with an Internal (retryable) error if
// that entry was removed, replaced, or otherwise superseded since the
// copy was taken (§4.4 replace, §8 P6, scenario 4): BorrowCopy already
// established the key's presence, so any divergence observed here is a
// concurrency race, never a genuine absence — NotFound is not a
// possible outcome of Replace. Replace always consumes r.
func (s *Store) Replace(r *Ref) error {
	start := s.timeProvider.Now()
	e := r.consume()
	if e.orig == nil {
		node.Clear(e.node)
		return errInternal("replace", "ref was not produced by BorrowCopy")
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	t := s.tbl.Load()
	slotIdx := e.origIdx
	if t != e.origTable {
		// The table was resized since BorrowCopy; the old table (and
		// e.origIdx within it) is stale, but entries migrate by pointer
		// on resize, so relocate orig's current slot by key. Absence
		// here means orig was removed since the copy was taken, not
		// that the key never existed.
		id := e.node.NodeID()
		idx, current := t.findOccupied(id)
		if current == nil {
			node.Clear(e.node)
			return errInternal("replace", "entry removed since borrow_copy")
		}
		if current != e.orig {
			node.Clear(e.node)
			return errInternal("replace", "entry was superseded since borrow_copy")
		}
		slotIdx = idx
	}

	e.hash = e.orig.hash
	if !t.slots[slotIdx].CompareAndSwap(e.orig, e) {
		node.Clear(e.node)
		return errInternal("replace", "entry was removed or superseded since borrow_copy")
	}
	e.orig.markDeleted()
	s.metrics.RecordReplace(s.timeProvider.Now() - start)
	return nil
}

// Remove tombstones the slot holding id (§4.4 remove).
func (s *Store) Remove(id node.ID) error {
	start := s.timeProvider.Now()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	t := s.tbl.Load()
	slotIdx, e := t.findOccupied(id)
	if e == nil {
		return errNodeIDUnknown(id)
	}
	if !t.slots[slotIdx].CompareAndSwap(e, tombstone) {
		return errInternal("remove", "losing CAS on vacate")
	}
	e.markDeleted()
	count := s.count.Add(-1)
	s.metrics.RecordRemove(s.timeProvider.Now() - start)

	shrinkNum, shrinkDen := unpackThreshold(s.shrinkThreshold.Load())
	if shouldShrink(int(count), t.size(), shrinkNum, shrinkDen) {
		shrunk, resized, err := expand(t, int(count))
		if err != nil {
			s.logger.Warn("nodestore: post-remove shrink failed", "error", err.Error())
			return nil
		}
		if resized {
			s.tbl.Store(shrunk)
			s.logger.Debug("nodestore: table shrunk", "capacity", shrunk.size())
			s.metrics.RecordResize(shrunk.size(), false)
			s.lastResizeAt.Store(s.timeProvider.Now())
			s.lastResizeGrew.Store(false)
		}
	}
	return nil
}

// Iterate visits every occupied slot with no ordering guarantee and no
// snapshot isolation: concurrent mutations may cause the scan to see
// entries inserted or miss entries removed during the pass, but each
// visited entry is internally consistent (§4.4 iterate). The visitor's
// Ref is valid only for the duration of the call; return false to stop
// early.
func (s *Store) Iterate(visitor func(*Ref) bool) {
	t := s.tbl.Load()
	for i := range t.slots {
		e := t.slots[i].Load()
		if e == nil || e == tombstone {
			continue
		}
		e.pin()
		cont := visitor(&Ref{e: e})
		e.unpin()
		if !cont {
			return
		}
	}
}

// Clear reclaims every entry and the array, asserting all refcounts are
// zero (§6 clear). Panics on a nonzero refcount — a programmer error,
// not a runtime condition (§7 Misuse).
func (s *Store) Clear() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	t := s.tbl.Load()
	for i := range t.slots {
		e := t.slots[i].Load()
		if e == nil || e == tombstone {
			continue
		}
		if e.refcount.Load() != 0 {
			panic("nodestore: clear with outstanding references")
		}
		node.Clear(e.node)
		t.slots[i].Store(nil)
	}
	s.count.Store(0)
	idx := initialPrimeIndex()
	fresh, err := safeAllocTable(idx)
	if err != nil {
		// Allocation of the minimum-size table should never fail; if it
		// does, keep the emptied table rather than leave the store in a
		// half-cleared state.
		s.logger.Error("nodestore: failed to reallocate after clear", "error", err.Error())
		return
	}
	s.tbl.Store(fresh)
}
