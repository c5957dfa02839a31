// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package graphic

import (
	"image"

	"golang.org/x/image/draw"
)

// FromImage converts img to tightly packed, non-premultiplied RGBA8.
func FromImage(img image.Image) (pixels []byte, width, height int) {
	n := toNRGBA(img)
	return n.Pix, n.Rect.Dx(), n.Rect.Dy()
}

// MipChain converts img and appends a bilinear-filtered mip chain, in the
// layout New expects.
func MipChain(img image.Image) (pixels []byte, width, height int) {
	level := toNRGBA(img)
	width, height = level.Rect.Dx(), level.Rect.Dy()
	pixels = append(pixels, level.Pix...)

	w, h := width, height
	for w > 1 && h > 1 {
		w, h = w/2, h/2
		next := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.BiLinear.Scale(next, next.Rect, level, level.Rect, draw.Src, nil)
		pixels = append(pixels, next.Pix...)
		level = next
	}
	return pixels, width, height
}

func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) && n.Stride == 4*b.Dx() {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return dst
}
