// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "log/slog"

// Stats counts the GPU calls issued during one frame.
type Stats struct {
	ProgramBinds  int
	GeometryBinds int
	TextureBinds  int
	BlendToggles  int
	DepthToggles  int
	AttribToggles int
	DrawCalls     int
	Indices       int
}

// StateChanges returns the total number of state-changing calls.
func (s Stats) StateChanges() int {
	return s.ProgramBinds + s.GeometryBinds + s.TextureBinds +
		s.BlendToggles + s.DepthToggles + s.AttribToggles
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("programs", s.ProgramBinds),
		slog.Int("geometries", s.GeometryBinds),
		slog.Int("textures", s.TextureBinds),
		slog.Int("blend", s.BlendToggles),
		slog.Int("depth", s.DepthToggles),
		slog.Int("attribs", s.AttribToggles),
		slog.Int("draws", s.DrawCalls),
		slog.Int("indices", s.Indices),
	)
}
