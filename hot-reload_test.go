// hot-reload_test.go: tests for dynamic load-factor threshold reload
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package nodestore

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(DefaultConfig())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return s
}

func TestNewHotConfig_EmptyPath(t *testing.T) {
	s := newTestStore(t)
	if _, err := NewHotConfig(s, HotConfigOptions{}); err == nil {
		t.Error("expected an error for an empty ConfigPath")
	}
}

func TestNewHotConfig_DefaultsApplied(t *testing.T) {
	s := newTestStore(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "nodestore.yaml")
	if err := os.WriteFile(path, []byte("nodestore:\n  expand_numerator: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	hc, err := NewHotConfig(s, HotConfigOptions{ConfigPath: path})
	if err != nil {
		t.Fatalf("NewHotConfig failed: %v", err)
	}
	defer func() { _ = hc.Stop() }()

	cur := hc.Current()
	if cur.ExpandLoadNumerator != DefaultExpandLoadNumerator || cur.ExpandLoadDenominator != DefaultExpandLoadDenominator {
		t.Errorf("unexpected initial thresholds: %+v", cur)
	}
}

func TestHotConfig_ReloadAppliesToStore(t *testing.T) {
	s := newTestStore(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "nodestore.yaml")
	if err := os.WriteFile(path, []byte("nodestore:\n  shrink_numerator: 1\n  shrink_denominator: 8\n"), 0644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan Thresholds, 4)
	hc, err := NewHotConfig(s, HotConfigOptions{
		ConfigPath:   path,
		PollInterval: 50 * time.Millisecond,
		OnReload:     func(_, next Thresholds) { reloaded <- next },
	})
	if err != nil {
		t.Fatalf("NewHotConfig failed: %v", err)
	}
	defer func() { _ = hc.Stop() }()

	if err := hc.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("nodestore:\n  shrink_numerator: 1\n  shrink_denominator: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case next := <-reloaded:
		if next.ShrinkLoadDenominator != 2 {
			t.Errorf("expected reloaded ShrinkLoadDenominator=2, got %+v", next)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for hot reload")
	}

	num, den := unpackThreshold(s.shrinkThreshold.Load())
	if num != 1 || den != 2 {
		t.Errorf("store shrink threshold not updated: num=%d den=%d", num, den)
	}
}

func TestHotConfig_StartIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "nodestore.yaml")
	if err := os.WriteFile(path, []byte("nodestore: {}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	hc, err := NewHotConfig(s, HotConfigOptions{ConfigPath: path})
	if err != nil {
		t.Fatalf("NewHotConfig failed: %v", err)
	}
	defer func() { _ = hc.Stop() }()

	if err := hc.Start(); err != nil {
		t.Fatalf("first Start failed: %v", err)
	}
	if err := hc.Start(); err != nil {
		t.Fatalf("second Start should be a no-op, got error: %v", err)
	}
}

func TestParsePositiveInt(t *testing.T) {
	if v, ok := parsePositiveInt(5); !ok || v != 5 {
		t.Errorf("int 5 should parse as (5, true), got (%d, %v)", v, ok)
	}
	if v, ok := parsePositiveInt(5.0); !ok || v != 5 {
		t.Errorf("float64 5.0 should parse as (5, true), got (%d, %v)", v, ok)
	}
	if _, ok := parsePositiveInt(-1); ok {
		t.Error("negative int should not parse")
	}
	if _, ok := parsePositiveInt("nope"); ok {
		t.Error("non-numeric value should not parse")
	}
	if _, ok := parsePositiveInt(nil); ok {
		t.Error("nil should not parse")
	}
}
