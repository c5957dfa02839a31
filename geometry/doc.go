// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package geometry compiles raw vertex data into deduplicated, indexed
// vertex buffers laid out for a shader.
//
// A Builder turns blocks of interleaved floats into a Shape:
//
//	shape, err := geometry.NewBuilder(sh.Capabilities()).
//		Vertices(quad).
//		Face(mat4.Identity()).
//		Face(mat4.Identity().Translate(1, 0, 0)).
//		Finish()
//
// Every record passed to Face is transformed (position only) and compared
// against the records already in the shape; nearly equal records share a
// slot. Shapes are CPU-side. To draw them, push them into a Group, which
// owns the GPU vertex and index buffers and lets one draw call render many
// shapes.
package geometry
