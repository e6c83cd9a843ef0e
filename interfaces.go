// interfaces.go: public collaborator interfaces for the node store
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package nodestore

// Logger defines a minimal logging interface with zero overhead on the
// hot path. The store only logs on cold paths: resize transitions and
// swallowed shrink failures (§4.3, §7).
type Logger interface {
	Debug(msg string, keyvals ...interface{})
	Info(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
}

// NoOpLogger discards everything. Used as the default so callers never
// need a nil check.
type NoOpLogger struct{}

func (NoOpLogger) Debug(msg string, keyvals ...interface{}) {}
func (NoOpLogger) Info(msg string, keyvals ...interface{})  {}
func (NoOpLogger) Warn(msg string, keyvals ...interface{})  {}
func (NoOpLogger) Error(msg string, keyvals ...interface{}) {}

// TimeProvider supplies a monotonic-ish clock for diagnostics: the last
// resize timestamp exposed by Stats (§9 "probe for is a shrink pending")
// and the per-operation latencies passed to MetricsCollector. The store
// has no TTL of its own; tests can substitute a fake clock here.
type TimeProvider interface {
	Now() int64
}

// MetricsCollector receives operation latencies and outcome counters.
// Nil-safe: the store always has a non-nil collector (NoOpMetricsCollector
// by default) so call sites never branch on nil.
type MetricsCollector interface {
	RecordGet(latencyNanos int64, hit bool)
	RecordInsert(latencyNanos int64)
	RecordReplace(latencyNanos int64)
	RecordRemove(latencyNanos int64)
	RecordResize(newCapacity int, grew bool)
}

// NoOpMetricsCollector implements MetricsCollector with zero overhead.
type NoOpMetricsCollector struct{}

func (NoOpMetricsCollector) RecordGet(int64, bool)       {}
func (NoOpMetricsCollector) RecordInsert(int64)          {}
func (NoOpMetricsCollector) RecordReplace(int64)         {}
func (NoOpMetricsCollector) RecordRemove(int64)          {}
func (NoOpMetricsCollector) RecordResize(int, bool)      {}
