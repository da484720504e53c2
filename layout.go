// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vhslogo

// Layout places the shape for a window width.
type Layout struct {
	Scale      float64
	PosX, PosY float64
}

// Layout breakpoints, in window pixels.
const (
	BreakpointSmall  = 640
	BreakpointMedium = 1024
)

// LayoutFor returns the layout for a window of width w.
func LayoutFor(w int) Layout {
	switch {
	case w < BreakpointSmall:
		return Layout{Scale: 1.1, PosX: -100, PosY: 80}
	case w < BreakpointMedium:
		return Layout{Scale: 1.8, PosX: -50, PosY: 5}
	default:
		return Layout{Scale: 2.0, PosX: -50, PosY: 0}
	}
}
