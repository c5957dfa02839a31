// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render submits draw calls while skipping redundant GPU state
// changes.
//
// A Renderer keeps a snapshot of what is currently bound (program,
// geometry, texture, blend and depth toggles, enabled attribute arrays)
// and only issues a state-changing call when a draw needs something
// different:
//
//	r.BeginFrame()
//	r.Draw(flat, background)      // binds flat, background
//	r.Draw(flat, sprites)         // binds sprites only
//	r.DrawGraphic(tex, quad, img) // binds tex, quad, img
//	stats := r.EndFrame()
//
// Drawing S1, S1, S2, S1 binds programs three times, never four.
//
// The snapshot is only valid while every GPU call goes through the
// Renderer. Resource uploads and releases therefore have Renderer methods
// (UploadGraphic, ReleaseGroup, ...) that keep it coherent.
//
// A Renderer is owned by the render thread and is not safe for concurrent
// use.
package render
