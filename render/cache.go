// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"github.com/gogpu/window/gpu"
	"github.com/gogpu/window/graphic"
)

const (
	bitPosition = uint32(1) << gpu.SlotPosition
	bitColor    = uint32(1) << gpu.SlotColor
	bitTexCoord = uint32(1) << gpu.SlotTexCoord

	// optionalAttribs are the slots toggled per program; position is
	// toggled per frame.
	optionalAttribs = bitColor | bitTexCoord
)

// cache is the last known GPU binding state. gpu.InvalidID or nil means
// nothing (or something unknown) is bound.
//
// Geometry and textures are keyed by the Go value rather than the GL name:
// a name freed by Close can be handed out again, but a value held here is
// never reused for another resource.
type cache struct {
	program  gpu.ProgramID
	geometry Geometry
	texture  *graphic.Graphic
	blend    bool
	depth    bool
	attribs  uint32
}

// reset forgets every binding; the GL defaults (blend and depth off, no
// arrays enabled) are assumed.
func (c *cache) reset() {
	*c = cache{}
}
