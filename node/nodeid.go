// nodeid.go: identifier type for address-space entries
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

// Package node provides a concrete NodeID/Node pair for the nodestore
// package. The store itself treats identifiers and payloads as external
// collaborators (hash, equality, copy, clear); this package supplies one
// real instantiation of that contract so the store can be built, tested,
// and benchmarked end to end.
package node

import (
	"fmt"
	"hash/fnv"
)

// IDType distinguishes the identifier subtypes a NodeID may carry.
// Numeric identifiers with Value == 0 are the "assign me" sentinel the
// store recognizes on insert.
type IDType uint8

const (
	// Numeric identifies a NodeID carrying a uint32 value.
	Numeric IDType = iota
	// String identifies a NodeID carrying a string value.
	String
)

// NamespaceDefault is the namespace used when none is specified.
const NamespaceDefault uint16 = 0

// ID is a structured identifier: a namespace index plus a numeric or
// string value, following the two identifier subtypes named by the
// store's contract (numeric identifiers of value zero mean "assign me").
type ID struct {
	Namespace uint16
	Type      IDType
	Numeric   uint32
	Str       string
}

// NewNumericID builds a numeric identifier. Value 0 requests assignment.
func NewNumericID(ns uint16, value uint32) ID {
	return ID{Namespace: ns, Type: Numeric, Numeric: value}
}

// NewStringID builds a string identifier.
func NewStringID(ns uint16, value string) ID {
	return ID{Namespace: ns, Type: String, Str: value}
}

// IsNumericZero reports whether id is a numeric identifier requesting
// store-assigned allocation.
func (id ID) IsNumericZero() bool {
	return id.Type == Numeric && id.Numeric == 0
}

// Equal reports whether two identifiers denote the same address-space
// entry.
func (id ID) Equal(other ID) bool {
	if id.Namespace != other.Namespace || id.Type != other.Type {
		return false
	}
	if id.Type == Numeric {
		return id.Numeric == other.Numeric
	}
	return id.Str == other.Str
}

// Hash computes a 32-bit hash of the identifier. This is the hash the
// store caches in each Entry and uses for probing (spec I1).
func (id ID) Hash() uint32 {
	h := fnv.New32a()
	var buf [7]byte
	buf[0] = byte(id.Namespace)
	buf[1] = byte(id.Namespace >> 8)
	buf[2] = byte(id.Type)
	if id.Type == Numeric {
		buf[3] = byte(id.Numeric)
		buf[4] = byte(id.Numeric >> 8)
		buf[5] = byte(id.Numeric >> 16)
		buf[6] = byte(id.Numeric >> 24)
		_, _ = h.Write(buf[:])
	} else {
		_, _ = h.Write(buf[:3])
		_, _ = h.Write([]byte(id.Str))
	}
	return h.Sum32()
}

// WithNumeric returns a copy of id with its numeric value replaced. Used
// by the store when assigning a fresh identifier on insert.
func (id ID) WithNumeric(value uint32) ID {
	id.Numeric = value
	return id
}

// String renders the identifier for logs and error context.
func (id ID) String() string {
	if id.Type == Numeric {
		return fmt.Sprintf("ns=%d;i=%d", id.Namespace, id.Numeric)
	}
	return fmt.Sprintf("ns=%d;s=%s", id.Namespace, id.Str)
}
