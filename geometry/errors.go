// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geometry

import (
	"errors"
	"fmt"

	"github.com/gogpu/window/shader"
)

var (
	// ErrGeometryAlreadyFinished is returned when a builder is used after
	// Finish.
	ErrGeometryAlreadyFinished = errors.New("geometry: already finished")

	// ErrGroupClosed is returned when pushing into a closed group.
	ErrGroupClosed = errors.New("geometry: group closed")

	// ErrNoTexCoords is returned by PushRegion for layouts without
	// texture coordinates.
	ErrNoTexCoords = errors.New("geometry: layout has no texture coordinates")
)

// MalformedVertexDataError reports vertex data whose length is not a
// multiple of the layout stride.
type MalformedVertexDataError struct {
	ExpectedStride int
	ActualLen      int
}

func (e *MalformedVertexDataError) Error() string {
	return fmt.Sprintf("geometry: malformed vertex data: %d floats with stride %d", e.ActualLen, e.ExpectedStride)
}

// LayoutMismatchError reports a shape pushed into a group laid out for
// different vertex records. Layouts can differ even when their strides
// agree: 2D with a gradient and 3D with texture coordinates are both five
// floats wide.
type LayoutMismatchError struct {
	Group shader.Capabilities
	Shape shader.Capabilities
}

func (e *LayoutMismatchError) Error() string {
	return fmt.Sprintf("geometry: shape layout %s does not match group layout %s",
		layoutString(e.Shape), layoutString(e.Group))
}

func layoutString(c shader.Capabilities) string {
	return fmt.Sprintf("{pos:%d color:%d uv:%d}", c.Dims(), c.Components(), c.TexComponents())
}

// sameLayout reports whether records of a and b are interchangeable.
func sameLayout(a, b shader.Capabilities) bool {
	return a.Dims() == b.Dims() &&
		a.Components() == b.Components() &&
		a.TexComponents() == b.TexComponents()
}
