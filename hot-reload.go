// hot-reload.go: dynamic load-factor tuning with Argus integration
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package nodestore

import (
	"fmt"
	"sync"
	"time"

	"github.com/agilira/argus"
)

// Thresholds is the subset of store behavior that can be changed while
// the store is running, without reconstructing it. InitialCapacity is
// deliberately excluded: like the teacher library's MaxSize, changing
// the starting table size requires a fresh Store.
type Thresholds struct {
	// ExpandLoadNumerator/Denominator override the upper load-factor
	// trigger (default 3/4, §3 I4). Applied on the next mutation.
	ExpandLoadNumerator   int
	ExpandLoadDenominator int

	// ShrinkLoadNumerator/Denominator override the lower load-factor
	// trigger (default 1/8, §3 I5).
	ShrinkLoadNumerator   int
	ShrinkLoadDenominator int
}

// HotConfig watches a configuration file and applies Thresholds changes
// to a Store without disruption, the same way the teacher library's
// HotConfig hot-reloads cache tunables via Argus.
type HotConfig struct {
	store   *Store
	watcher *argus.Watcher
	mu      sync.RWMutex
	current Thresholds

	// OnReload is called after thresholds are successfully reloaded.
	// Must be fast and non-blocking.
	OnReload func(old, new Thresholds)
}

// HotConfigOptions configures hot reload behavior.
type HotConfigOptions struct {
	// ConfigPath is the configuration file to watch (JSON, YAML, TOML,
	// HCL, INI, or Properties — anything argus.UniversalConfigWatcher
	// supports).
	ConfigPath string

	// PollInterval is how often to check for changes. Default 1s,
	// minimum 100ms.
	PollInterval time.Duration

	OnReload func(old, new Thresholds)
}

// NewHotConfig starts watching ConfigPath and applying Thresholds
// changes to store as they are detected.
//
// Supported configuration keys:
//   - nodestore.expand_numerator / expand_denominator
//   - nodestore.shrink_numerator / shrink_denominator
func NewHotConfig(store *Store, opts HotConfigOptions) (*HotConfig, error) {
	if opts.ConfigPath == "" {
		return nil, fmt.Errorf("config_path is required")
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = time.Second
	} else if opts.PollInterval < 100*time.Millisecond {
		opts.PollInterval = 100 * time.Millisecond
	}

	hc := &HotConfig{
		store:    store,
		OnReload: opts.OnReload,
		current: Thresholds{
			ExpandLoadNumerator:   DefaultExpandLoadNumerator,
			ExpandLoadDenominator: DefaultExpandLoadDenominator,
			ShrinkLoadNumerator:   DefaultShrinkLoadNumerator,
			ShrinkLoadDenominator: DefaultShrinkLoadDenominator,
		},
	}

	store.setExpandThreshold(hc.current.ExpandLoadNumerator, hc.current.ExpandLoadDenominator)
	store.setShrinkThreshold(hc.current.ShrinkLoadNumerator, hc.current.ShrinkLoadDenominator)

	watcher, err := argus.UniversalConfigWatcherWithConfig(
		opts.ConfigPath, hc.handleConfigChange, argus.Config{PollInterval: opts.PollInterval},
	)
	if err != nil {
		return nil, err
	}
	hc.watcher = watcher
	return hc, nil
}

// Start begins watching the configuration file.
func (hc *HotConfig) Start() error {
	if hc.watcher.IsRunning() {
		return nil
	}
	return hc.watcher.Start()
}

// Stop stops watching the configuration file.
func (hc *HotConfig) Stop() error { return hc.watcher.Stop() }

// Current returns the thresholds currently in effect.
func (hc *HotConfig) Current() Thresholds {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.current
}

func (hc *HotConfig) handleConfigChange(data map[string]interface{}) {
	hc.mu.Lock()
	old := hc.current
	next := old
	if v, ok := parsePositiveInt(data["nodestore.expand_numerator"]); ok {
		next.ExpandLoadNumerator = v
	}
	if v, ok := parsePositiveInt(data["nodestore.expand_denominator"]); ok {
		next.ExpandLoadDenominator = v
	}
	if v, ok := parsePositiveInt(data["nodestore.shrink_numerator"]); ok {
		next.ShrinkLoadNumerator = v
	}
	if v, ok := parsePositiveInt(data["nodestore.shrink_denominator"]); ok {
		next.ShrinkLoadDenominator = v
	}
	hc.current = next
	hc.mu.Unlock()

	hc.store.setExpandThreshold(next.ExpandLoadNumerator, next.ExpandLoadDenominator)
	hc.store.setShrinkThreshold(next.ShrinkLoadNumerator, next.ShrinkLoadDenominator)

	if hc.OnReload != nil {
		hc.OnReload(old, next)
	}
}

// parsePositiveInt extracts a positive integer from an interface{}
// value. Supports both int and float64 (JSON/YAML decode differently).
func parsePositiveInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		if v > 0 {
			return v, true
		}
	case float64:
		if v > 0 {
			return int(v), true
		}
	}
	return 0, false
}
