// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/window/internal/logx"
)

// Factory opens a surface with the given options.
type Factory func(opts Options) (Surface, error)

// Entry is a registered backend.
type Entry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority orders automatic selection (higher first). Negative
	// priorities opt out of automatic selection.
	//   - 100: native windows
	//   - -1: headless
	Priority int

	// Factory opens surfaces.
	Factory Factory

	// Available reports whether the backend can run on this system.
	Available func() bool
}

// auto reports whether NewSurface may pick the entry.
func (e *Entry) auto() bool { return e.Priority >= 0 && e.Available() }

var globalRegistry = &Registry{}

// Registry holds the known backends.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewRegistry creates an empty registry. Most code uses the global one
// through Register and NewSurface.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Register adds a backend to the global registry. A nil available means
// always available. Registering an existing name replaces it.
func Register(name string, priority int, factory Factory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered backend names, highest priority first.
func List() []string {
	return globalRegistry.List()
}

// Get returns a copy of a registered backend.
func Get(name string) (*Entry, bool) {
	return globalRegistry.Get(name)
}

// NewSurface opens a surface on the best available backend.
func NewSurface(opts Options) (Surface, error) {
	return globalRegistry.NewSurface(opts)
}

// NewSurfaceByName opens a surface on the named backend.
func NewSurfaceByName(name string, opts Options) (Surface, error) {
	return globalRegistry.NewSurfaceByName(name, opts)
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*Entry)
	}
	if available == nil {
		available = func() bool { return true }
	}
	r.entries[name] = &Entry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered backend names, highest priority first.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(func(*Entry) bool { return true })
}

// Get returns a copy of a registered backend.
func (r *Registry) Get(name string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	cp := *e
	return &cp, true
}

// NewSurface tries each automatically selectable backend in priority
// order and returns the first surface that opens. If every backend fails
// the error wraps ErrNoBackendAvailable and the last failure.
func (r *Registry) NewSurface(opts Options) (Surface, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	names := r.sortedNames((*Entry).auto)
	r.mu.RUnlock()

	var errs []error
	for _, name := range names {
		s, err := r.NewSurfaceByName(name, opts)
		if err == nil {
			return s, nil
		}
		logx.L().Warn("surface: backend failed", "backend", name, "err", err)
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, ErrNoBackendAvailable
	}
	return nil, fmt.Errorf("%w: %w", ErrNoBackendAvailable, errors.Join(errs...))
}

// NewSurfaceByName opens a surface on the named backend.
func (r *Registry) NewSurfaceByName(name string, opts Options) (Surface, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if !e.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}
	s, err := e.Factory(opts)
	if err != nil {
		return nil, &BackendError{Name: name, Err: err}
	}
	logx.L().Info("surface: opened", "backend", name, "width", opts.Width, "height", opts.Height)
	return s, nil
}

// sortedNames returns the names of entries matching keep, highest priority
// first and by name among equals. Must be called with the lock held.
func (r *Registry) sortedNames(keep func(*Entry) bool) []string {
	entries := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if keep(e) {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// ErrNoBackendAvailable is returned when no backend could open a surface.
var ErrNoBackendAvailable = errors.New("surface: no backend available")

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but cannot run here.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "surface: backend unavailable: " + e.Name
}

// BackendError wraps a factory failure.
type BackendError struct {
	Name string
	Err  error
}

func (e *BackendError) Error() string {
	return "surface: " + e.Name + ": " + e.Err.Error()
}

func (e *BackendError) Unwrap() error { return e.Err }
