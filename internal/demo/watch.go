// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package demo

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/window"
)

// Watch reports changes to the directory holding path, where the shader
// set and any source files it references live. Editors often replace files
// by rename, so the directory is watched rather than the file. Bursts of
// events collapse into one pending notification.
func Watch(path string) (<-chan struct{}, func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("watch: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, nil, fmt.Errorf("watch: %w", err)
	}

	changed := make(chan struct{}, 1)
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				window.Logger().Debug("demo: change", "file", ev.Name, "op", ev.Op)
				select {
				case changed <- struct{}{}:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				window.Logger().Warn("demo: watch error", "err", err)
			}
		}
	}()
	return changed, func() { _ = w.Close() }, nil
}
