// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package demo is the scene windemo draws: a spinning gradient cube and a
// pair of textured sprites, with shaders that can be reloaded while
// running.
package demo

import (
	_ "embed"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/gogpu/window"
	"github.com/gogpu/window/geometry"
	"github.com/gogpu/window/graphic"
	"github.com/gogpu/window/mat4"
	"github.com/gogpu/window/shader"
)

//go:embed shaders.yaml
var builtinShaders []byte

// LoadShaders reads the shader set at path, or the built-in set when path
// is empty.
func LoadShaders(path string) (map[string]shader.Config, error) {
	if path == "" {
		return shader.ParseConfigs(builtinShaders)
	}
	return shader.LoadConfigs(path)
}

// Scene holds the scene's GPU resources.
type Scene struct {
	w       *window.Window
	shaders map[string]*shader.Shader
	cube    *geometry.Group
	sprites *geometry.Group
	tex     *graphic.Graphic
	now     func() time.Time
	start   time.Time
	frame   int
}

// NewScene compiles set and uploads the scene. set must define "cube"
// and "sprite".
func NewScene(w *window.Window, set map[string]shader.Config) (*Scene, error) {
	shaders, err := w.NewShaders(set)
	if err != nil {
		return nil, err
	}
	sc := &Scene{w: w, shaders: shaders, now: time.Now}
	sc.start = sc.now()
	if err := sc.build(); err != nil {
		sc.Release()
		return nil, err
	}
	sc.applyUniforms()
	return sc, nil
}

func (sc *Scene) build() error {
	cubeSh, spriteSh := sc.shaders["cube"], sc.shaders["sprite"]
	if cubeSh == nil || spriteSh == nil {
		return fmt.Errorf("shader set needs %q and %q", "cube", "sprite")
	}

	box, err := sc.w.BuildGeometry(cubeSh).Vertices(cubeVertices()).Face(mat4.Identity()).Finish()
	if err != nil {
		return fmt.Errorf("cube: %w", err)
	}
	if sc.cube, err = sc.w.Upload(cubeSh, box); err != nil {
		return fmt.Errorf("cube: %w", err)
	}

	quad, err := sc.w.BuildGeometry(spriteSh).Vertices(quadVertices()).Face(mat4.Identity()).Finish()
	if err != nil {
		return fmt.Errorf("sprite: %w", err)
	}
	if sc.sprites, err = sc.w.NewGroup(spriteSh); err != nil {
		return fmt.Errorf("sprite: %w", err)
	}
	// Left: the whole texture. Right: its top-right quarter.
	left := mat4.Identity().Translate(-0.6, -0.6, 0).Scale(0.5, 0.5, 1)
	right := mat4.Identity().Translate(0.6, -0.6, 0).Scale(0.5, 0.5, 1)
	if err := sc.sprites.PushRegion(quad, left, geometry.FullRegion); err != nil {
		return err
	}
	quarter := geometry.Region{Translate: [2]float32{0.5, 0.5}, Scale: [2]float32{0.5, 0.5}}
	if err := sc.sprites.PushRegion(quad, right, quarter); err != nil {
		return err
	}

	if sc.tex, err = sc.w.UploadImage(checker(64, 8)); err != nil {
		return fmt.Errorf("texture: %w", err)
	}
	return nil
}

// applyUniforms sets the uniforms that do not change per frame.
func (sc *Scene) applyUniforms() {
	sprite := sc.shaders["sprite"]
	sc.w.SetTint(sprite, [4]float32{1, 1, 1, 0.9})
	sc.w.SetRegion(sprite, geometry.FullRegion)
}

// Draw renders one frame. Call it from the window's Run callback.
func (sc *Scene) Draw() error {
	t := float32(sc.now().Sub(sc.start).Seconds())
	cube := sc.shaders["cube"]

	sc.w.SetCamera(cube, mat4.Perspective(0.2, sc.w.Aspect(), 0.1, 100))
	sc.cube.SetInstances([]mat4.Transform{
		mat4.Identity().Translate(0, 0.3, -3).Rotate(1, 1, 0, t*0.1),
	})
	if err := sc.w.Draw(cube, sc.cube); err != nil {
		return err
	}

	sc.frame++
	if sc.frame%30 == 0 {
		if err := sc.w.UpdateGraphic(sc.tex, invert); err != nil {
			return err
		}
	}
	return sc.w.DrawGraphic(sc.shaders["sprite"], sc.sprites, sc.tex)
}

// SwapShaders compiles set and replaces the scene's shaders with the
// results. A shader whose capabilities changed is rejected, since the
// uploaded geometry is laid out for the old ones.
func (sc *Scene) SwapShaders(set map[string]shader.Config) {
	next, err := sc.w.NewShaders(set)
	if err != nil {
		window.Logger().Warn("demo: reload failed", "err", err)
		return
	}
	for name, sh := range next {
		old, ok := sc.shaders[name]
		if !ok || old.Capabilities() != sh.Capabilities() {
			window.Logger().Warn("demo: shader layout changed, keeping old", "shader", name)
			sc.w.ReleaseShader(sh)
			continue
		}
		sc.w.ReleaseShader(old)
		sc.shaders[name] = sh
	}
	sc.applyUniforms()
	window.Logger().Info("demo: shaders reloaded", "count", len(next))
}

// Release frees everything NewScene created.
func (sc *Scene) Release() {
	if sc.cube != nil {
		sc.w.ReleaseGroup(sc.cube)
	}
	if sc.sprites != nil {
		sc.w.ReleaseGroup(sc.sprites)
	}
	if sc.tex != nil {
		sc.w.ReleaseGraphic(sc.tex)
	}
	for _, sh := range sc.shaders {
		sc.w.ReleaseShader(sh)
	}
}

// cubeVertices returns a unit cube as triangles of position and color,
// one color per face.
func cubeVertices() []float32 {
	faces := []struct {
		corners [4][3]float32
		color   [3]float32
	}{
		{[4][3]float32{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}, [3]float32{0.9, 0.3, 0.3}},
		{[4][3]float32{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}, [3]float32{0.3, 0.9, 0.3}},
		{[4][3]float32{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}, [3]float32{0.3, 0.3, 0.9}},
		{[4][3]float32{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}}, [3]float32{0.9, 0.9, 0.3}},
		{[4][3]float32{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}}, [3]float32{0.3, 0.9, 0.9}},
		{[4][3]float32{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}, [3]float32{0.9, 0.3, 0.9}},
	}
	v := make([]float32, 0, len(faces)*6*6)
	for _, f := range faces {
		for _, i := range [6]int{0, 1, 2, 0, 2, 3} {
			c := f.corners[i]
			v = append(v, c[0]*0.5, c[1]*0.5, c[2]*0.5, f.color[0], f.color[1], f.color[2])
		}
	}
	return v
}

// quadVertices returns a unit square centered on the origin, as two
// triangles of position and texture coordinate.
func quadVertices() []float32 {
	return []float32{
		-0.5, -0.5, 0, 1,
		0.5, -0.5, 1, 1,
		0.5, 0.5, 1, 0,
		-0.5, -0.5, 0, 1,
		0.5, 0.5, 1, 0,
		-0.5, 0.5, 0, 0,
	}
}

// checker returns a size×size two-tone checkerboard with cell-pixel squares.
func checker(size, cell int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	light := color.NRGBA{R: 0xee, G: 0xe8, B: 0xd5, A: 0xff}
	dark := color.NRGBA{R: 0x26, G: 0x8b, B: 0xd2, A: 0xff}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetNRGBA(x, y, light)
			} else {
				img.SetNRGBA(x, y, dark)
			}
		}
	}
	return img
}

// invert flips the color channels of every pixel, keeping alpha.
func invert(pixels []byte, _ int) {
	for i := 0; i+3 < len(pixels); i += 4 {
		pixels[i] = 0xff - pixels[i]
		pixels[i+1] = 0xff - pixels[i+1]
		pixels[i+2] = 0xff - pixels[i+2]
	}
}
