// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package demo

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchNotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shaders.yaml")
	if err := os.WriteFile(path, builtinShaders, 0o644); err != nil {
		t.Fatal(err)
	}

	changes, stop, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer stop()

	if err := os.WriteFile(path, builtinShaders, 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	set, err := LoadShaders(path)
	if err != nil {
		t.Fatalf("LoadShaders() error = %v", err)
	}
	if len(set) != 2 {
		t.Errorf("len(set) = %d, want 2", len(set))
	}
}

func TestWatchMissingDir(t *testing.T) {
	if _, _, err := Watch(filepath.Join(t.TempDir(), "missing", "set.yaml")); err == nil {
		t.Error("Watch() on a missing directory succeeded")
	}
}
