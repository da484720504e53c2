// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package host defines what the renderer needs from the environment it runs
// in: a container to size the buffers from, document attributes to read the
// theme from, the scroll position, window-level event listeners and a
// millisecond-resolution clock.
//
// Implementations deliver listener callbacks on the same goroutine that
// drives frames, never concurrently with a frame.
package host

import "time"

// Container is the element id the renderer attaches to.
const Container = "canvas-container"

// ThemeAttribute is the document attribute holding "light" or "dark".
const ThemeAttribute = "data-theme"

// EventKind identifies a window-level event.
type EventKind int

const (
	EventResize EventKind = iota
	EventScroll
)

// String returns the DOM-style event name.
func (k EventKind) String() string {
	switch k {
	case EventResize:
		return "resize"
	case EventScroll:
		return "scroll"
	default:
		return "unknown"
	}
}

// ListenerID identifies a registered listener. The zero value is never
// issued.
type ListenerID uint64

// ScrollState is the vertical scroll position of the document.
type ScrollState struct {
	Y            float64 // scrolled distance from the top
	ScrollHeight float64 // full document height
	InnerHeight  float64 // viewport height
}

// Progress returns Y over the scrollable range, clamped to [0, 1]. A
// document that cannot scroll reports 0.
func (s ScrollState) Progress() float64 {
	span := s.ScrollHeight - s.InnerHeight
	if !(span > 0) {
		return 0
	}
	p := s.Y / span
	switch {
	case !(p > 0):
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

// Host is the environment a renderer runs in.
type Host interface {
	// Viewport returns the container size, or ok=false when the container
	// is missing.
	Viewport() (w, h int, ok bool)

	// WindowWidth returns the window's inner width used for layout
	// breakpoints.
	WindowWidth() int

	// Attribute returns a document attribute, or "" when unset.
	Attribute(name string) string

	// Scroll returns the current scroll state.
	Scroll() ScrollState

	AddListener(kind EventKind, fn func()) ListenerID
	RemoveListener(id ListenerID)

	// Now returns the time since an arbitrary origin.
	Now() time.Duration
}
