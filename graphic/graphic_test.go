// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package graphic

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/window/gpu"
	"github.com/gogpu/window/gpu/noop"
)

func fill(n int, v byte) []byte {
	return bytes.Repeat([]byte{v}, n)
}

func TestNewMipChain(t *testing.T) {
	tests := []struct {
		name      string
		w, h, n   int
		wantLevel int
	}{
		{"base only", 4, 4, 64, 0},
		{"full chain", 4, 4, 64 + 16 + 4, 2},
		{"partial chain", 4, 4, 64 + 16 + 2, 1},
		{"extra tail", 4, 4, 64 + 16 + 4 + 100, 2},
		{"non-square", 4, 2, 32 + 8 + 4, 1},
		{"single row", 8, 1, 32 + 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := noop.New()
			g, err := New(dev, fill(tt.n, 0x7f), tt.w, tt.h)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			tex, _ := dev.Texture(g.ID())
			if tex.MaxLevel != tt.wantLevel || g.Levels() != tt.wantLevel {
				t.Errorf("MaxLevel = %d, Levels() = %d, want %d", tex.MaxLevel, g.Levels(), tt.wantLevel)
			}
			if len(tex.Levels) != tt.wantLevel+1 {
				t.Errorf("uploaded %d levels, want %d", len(tex.Levels), tt.wantLevel+1)
			}
			if got := len(g.Pixels()); got != tt.w*tt.h*4 {
				t.Errorf("len(Pixels()) = %d, want %d", got, tt.w*tt.h*4)
			}
		})
	}
}

func TestNewLevelSizes(t *testing.T) {
	dev := noop.New()
	pixels := append(append(fill(64, 1), fill(16, 2)...), fill(4, 3)...)
	g, err := New(dev, pixels, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	tex, _ := dev.Texture(g.ID())
	for level, want := range map[int]uint32{0: 4, 1: 2, 2: 1} {
		if got := tex.Sizes[level]; got.Width != want || got.Height != want {
			t.Errorf("level %d size = %dx%d, want %dx%d", level, got.Width, got.Height, want, want)
		}
	}
	if tex.Levels[1][0] != 2 || tex.Levels[2][0] != 3 {
		t.Error("mip levels not read from the tail of the buffer")
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name    string
		n, w, h int
	}{
		{"too small", 63, 4, 4},
		{"zero width", 64, 0, 4},
		{"negative height", 64, 4, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := noop.New()
			_, err := New(dev, fill(tt.n, 0), tt.w, tt.h)
			if !errors.Is(err, ErrInvalidSize) {
				t.Errorf("New() error = %v, want ErrInvalidSize", err)
			}
			if dev.Live() != 0 {
				t.Errorf("Live() = %d, want 0", dev.Live())
			}
		})
	}

	dev := noop.New()
	dev.CreateErr = noop.ErrInjected
	if _, err := New(dev, fill(64, 0), 4, 4); !errors.Is(err, gpu.ErrDevice) {
		t.Errorf("New() error = %v, want device error", err)
	}
}

func TestResize(t *testing.T) {
	dev := noop.New()
	g, err := New(dev, fill(64, 0xff), 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Resize(fill(16, 0x10), 2); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if g.Width() != 2 || g.Height() != 2 {
		t.Errorf("size = %dx%d, want 2x2", g.Width(), g.Height())
	}
	if len(g.Pixels()) != 16 {
		t.Errorf("len(Pixels()) = %d, want 16", len(g.Pixels()))
	}
	tex, _ := dev.Texture(g.ID())
	if tex.Mipmaps != 1 || tex.MaxLevel != 1 {
		t.Errorf("Mipmaps = %d, MaxLevel = %d; want 1, 1", tex.Mipmaps, tex.MaxLevel)
	}
	if !bytes.Equal(tex.Levels[0], fill(16, 0x10)) {
		t.Error("base level not re-uploaded")
	}

	if err := g.Resize(fill(12, 0), 2); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Resize(12 bytes, 2) error = %v, want ErrInvalidSize", err)
	}
	if err := g.Resize(fill(16, 0), 0); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Resize(width 0) error = %v, want ErrInvalidSize", err)
	}
	if g.Width() != 2 {
		t.Errorf("failed Resize changed width to %d", g.Width())
	}
}

func TestUpdate(t *testing.T) {
	dev := noop.New()
	g, _ := New(dev, fill(16, 0), 2, 2)

	var gotWidth int
	err := g.Update(func(p []byte, width int) {
		gotWidth = width
		p[0], p[1], p[2], p[3] = 1, 2, 3, 4
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if gotWidth != 2 {
		t.Errorf("callback width = %d, want 2", gotWidth)
	}
	tex, _ := dev.Texture(g.ID())
	if !bytes.Equal(tex.Levels[0][:4], []byte{1, 2, 3, 4}) {
		t.Errorf("uploaded base = %v", tex.Levels[0][:4])
	}
	if tex.Mipmaps != 0 {
		t.Errorf("Mipmaps = %d for a single-level texture", tex.Mipmaps)
	}
}

func TestClose(t *testing.T) {
	dev := noop.New()
	g, _ := New(dev, fill(16, 0), 2, 2)
	g.Close()
	g.Close()
	if got := dev.Calls("DeleteTexture"); got != 1 {
		t.Errorf("DeleteTexture calls = %d, want 1", got)
	}
	if err := g.Update(func([]byte, int) {}); !errors.Is(err, ErrReleased) {
		t.Errorf("Update() after Close error = %v, want ErrReleased", err)
	}
	if err := g.Resize(fill(16, 0), 2); !errors.Is(err, ErrReleased) {
		t.Errorf("Resize() after Close error = %v, want ErrReleased", err)
	}
}
