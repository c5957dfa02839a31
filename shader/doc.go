// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package shader compiles GPU programs from a declarative capability set.
//
// The capability flags decide everything downstream: which attribute slots
// are bound before linking, which uniforms must exist after linking, and
// the interleaved vertex layout the geometry package emits.
//
//	| flag     | vertex data          | uniforms                 |
//	|----------|----------------------|--------------------------|
//	| depth    | xyz instead of xy    | camera                   |
//	| gradient | rgb (rgba if blend)  |                          |
//	| graphic  | uv                   | atlas translate + scale  |
//	| tint     |                      | tint                     |
//
// Attribute slots are fixed: position 0, color 1, texture coordinates 2.
//
// Shader sets can be described in YAML:
//
//	textured:
//	  graphic: true
//	  vertex_file: textured.vert
//	  fragment_file: textured.frag
//
// and loaded with LoadConfigs.
package shader
