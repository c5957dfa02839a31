// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package graphic manages RGBA8 textures with a CPU-side mirror.
//
// The mirror holds the base level only. It is what Update edits and what
// Resize replaces; every change is re-uploaded synchronously.
package graphic

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/window/gpu"
	"github.com/gogpu/window/internal/logx"
)

// BytesPerPixel is the size of one RGBA8 pixel.
const BytesPerPixel = 4

var (
	// ErrInvalidSize is matched by every *SizeError.
	ErrInvalidSize = errors.New("graphic: invalid size")

	// ErrReleased is returned when operating on a closed graphic.
	ErrReleased = errors.New("graphic: released")
)

// SizeError reports pixel data that does not match the requested
// dimensions.
type SizeError struct {
	Width, Height int
	Len           int
}

func (e *SizeError) Error() string {
	if e.Height < 0 {
		return fmt.Sprintf("graphic: %d bytes is not a whole number of rows %d pixels wide", e.Len, e.Width)
	}
	return fmt.Sprintf("graphic: %d bytes for %dx%d pixels, need %d",
		e.Len, e.Width, e.Height, e.Width*e.Height*BytesPerPixel)
}

// Is reports whether target is ErrInvalidSize.
func (e *SizeError) Is(target error) bool { return target == ErrInvalidSize }

// Graphic is a mip-mapped 2D texture plus the CPU copy of its base level.
type Graphic struct {
	dev    gpu.Device
	id     gpu.TextureID
	pixels []byte
	width  int
	height int
	levels int
}

// New uploads pixels as a width×height texture.
//
// Bytes past the base level are read as a precomputed mip chain: each
// level halves both dimensions, until either dimension reaches 1 or the
// remaining data cannot hold the next level. The highest level uploaded
// becomes the texture's maximum mip level.
func New(dev gpu.Device, pixels []byte, width, height int) (*Graphic, error) {
	if width <= 0 || height <= 0 || len(pixels) < width*height*BytesPerPixel {
		return nil, &SizeError{Width: width, Height: height, Len: len(pixels)}
	}
	id, err := dev.CreateTexture()
	if err != nil {
		var de *gpu.DeviceError
		if !errors.As(err, &de) {
			err = &gpu.DeviceError{Op: "create texture", Err: err}
		}
		return nil, err
	}

	base := width * height * BytesPerPixel
	g := &Graphic{
		dev:    dev,
		id:     id,
		pixels: append([]byte(nil), pixels[:base]...),
		width:  width,
		height: height,
	}

	dev.BindTexture(id)
	dev.TexImage2D(0, extent(width, height), gputypes.TextureFormatRGBA8Unorm, pixels[:base])

	w, h, offset := width, height, base
	for w > 1 && h > 1 && offset < len(pixels) {
		w, h = w/2, h/2
		size := w * h * BytesPerPixel
		if offset+size > len(pixels) {
			break
		}
		g.levels++
		dev.TexImage2D(g.levels, extent(w, h), gputypes.TextureFormatRGBA8Unorm, pixels[offset:offset+size])
		offset += size
	}
	dev.SetMaxMipLevel(g.levels)

	logx.L().Debug("graphic: uploaded", "id", id, "width", width, "height", height, "levels", g.levels+1)
	return g, nil
}

func extent(w, h int) gputypes.Extent3D {
	return gputypes.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1}
}

// mipLevels returns the index of the 1×1 level for a full chain.
func mipLevels(w, h int) int {
	n := 0
	for m := max(w, h); m > 1; m /= 2 {
		n++
	}
	return n
}

// Resize replaces the texture with pixels, width pixels wide. The height is
// derived from the length. Mip levels are generated by the device.
func (g *Graphic) Resize(pixels []byte, width int) error {
	if g.Closed() {
		return ErrReleased
	}
	row := width * BytesPerPixel
	if width <= 0 || len(pixels) == 0 || len(pixels)%row != 0 {
		return &SizeError{Width: width, Height: -1, Len: len(pixels)}
	}

	g.pixels = append(g.pixels[:0], pixels...)
	g.width = width
	g.height = len(pixels) / row
	g.levels = mipLevels(g.width, g.height)

	g.dev.BindTexture(g.id)
	g.dev.TexImage2D(0, extent(g.width, g.height), gputypes.TextureFormatRGBA8Unorm, g.pixels)
	g.dev.SetMaxMipLevel(g.levels)
	g.dev.GenerateMipmap()
	return nil
}

// Update calls fn with the CPU mirror and the width in pixels, then
// re-uploads the base level. fn may modify the pixels in place but must
// not retain the slice.
func (g *Graphic) Update(fn func(pixels []byte, width int)) error {
	if g.Closed() {
		return ErrReleased
	}
	fn(g.pixels, g.width)

	g.dev.BindTexture(g.id)
	g.dev.TexImage2D(0, extent(g.width, g.height), gputypes.TextureFormatRGBA8Unorm, g.pixels)
	if g.levels > 0 {
		g.dev.GenerateMipmap()
	}
	return nil
}

// ID returns the texture id, or gpu.InvalidID after Close.
func (g *Graphic) ID() gpu.TextureID { return g.id }

// Width returns the width in pixels.
func (g *Graphic) Width() int { return g.width }

// Height returns the height in pixels.
func (g *Graphic) Height() int { return g.height }

// Levels returns the maximum mip level.
func (g *Graphic) Levels() int { return g.levels }

// Pixels returns the CPU mirror of the base level. Use Update to modify it.
func (g *Graphic) Pixels() []byte { return g.pixels }

// Closed reports whether Close has been called.
func (g *Graphic) Closed() bool { return g.id == gpu.InvalidID }

// Close releases the texture. It is safe to call more than once.
func (g *Graphic) Close() {
	if g.Closed() {
		return
	}
	g.dev.DeleteTexture(g.id)
	g.id = gpu.InvalidID
	g.pixels = nil
}
