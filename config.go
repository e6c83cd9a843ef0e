// config.go: store configuration
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package nodestore

import "github.com/agilira/go-timecache"

// Default tunables, mirroring the thresholds named in §3 (I4, I5).
const (
	DefaultExpandLoadNumerator   = 3
	DefaultExpandLoadDenominator = 4
	DefaultShrinkLoadNumerator   = 1
	DefaultShrinkLoadDenominator = 8
	DefaultShrinkFloor           = 32
)

// Config holds configuration parameters for a Store.
type Config struct {
	// InitialCapacity is the minimum number of slots the store starts
	// with. Rounded up to the smallest ladder prime >= this value, and
	// never below the ladder prime for minCapacity (127).
	// Default: minCapacity (64).
	InitialCapacity int

	// Logger is used for resize/shrink diagnostics. Default: NoOpLogger.
	Logger Logger

	// TimeProvider supplies the clock used to timestamp resize
	// diagnostics and to time the operations reported to
	// MetricsCollector. Default: a go-timecache-backed system clock.
	TimeProvider TimeProvider

	// MetricsCollector receives per-operation latency and outcome
	// samples. Default: NoOpMetricsCollector.
	MetricsCollector MetricsCollector
}

// Validate normalizes the configuration, applying defaults for anything
// left unset. It never rejects a Config outright — only NewStore's own
// table allocation can fail, and that is reported from NewStore itself,
// not Validate.
func (c *Config) Validate() {
	if c.InitialCapacity <= 0 {
		c.InitialCapacity = minCapacity
	}
	if c.Logger == nil {
		c.Logger = NoOpLogger{}
	}
	if c.TimeProvider == nil {
		c.TimeProvider = &systemTimeProvider{}
	}
	if c.MetricsCollector == nil {
		c.MetricsCollector = NoOpMetricsCollector{}
	}
}

// DefaultConfig returns a Config with sensible defaults applied.
func DefaultConfig() Config {
	c := Config{}
	c.Validate()
	return c
}

// systemTimeProvider wraps go-timecache for a cached, allocation-free
// clock (the same default the teacher library uses for TTL timestamps;
// here it timestamps resize diagnostics and times operations for
// metrics).
type systemTimeProvider struct{}

func (systemTimeProvider) Now() int64 { return timecache.CachedTimeNano() }
