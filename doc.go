// Package nodestore implements the in-memory, concurrently-readable
// associative store that backs an OPC UA-style address space: a map
// from NodeIDs to polymorphic Node records, safe to read from one or
// more lookup paths while a single serialized writer mutates it.
//
// The map is open-addressed with double hashing over a table sized to
// a prime drawn from a fixed ladder (primes.go), with tombstone-aware
// probing (table.go), refcounted entries with deferred reclamation
// (entry.go), and load-factor-triggered resize in either direction
// (resize.go). The public surface (store.go) composes those into
// Get/BorrowCopy/Insert/Replace/Remove/Iterate.
//
// Example usage:
//
//	store, _ := nodestore.NewStore(nodestore.DefaultConfig())
//
//	ref := store.NewNode(node.ClassVariable)
//	ref.Node().SetNodeID(node.NewNumericID(node.NamespaceDefault, 0))
//	id, err := store.Insert(ref) // numeric id 0 is assigned by the store
//
//	got, ok := store.Get(id)
//	// ... read got.Node() ...
//	store.Release(got)
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package nodestore

// Version of the node store library.
const Version = "v0.1.0-dev"
