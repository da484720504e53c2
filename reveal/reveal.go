// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package reveal turns a frame counter into the progressive "build up"
// visibility of an ordered set of entities.
//
// The sequence is a pure function of the frame number: restarting at frame 0
// replays the same animation, and once the factor reaches 1 everything stays
// visible.
package reveal

import "math"

// DefaultRate reveals the whole sequence in 20 frames.
const DefaultRate = 0.05

// Schedule maps frames to a reveal factor in [0, 1].
type Schedule struct {
	// Rate is the reveal factor gained per frame. Non-positive rates
	// reveal everything immediately.
	Rate float64
}

// Default returns a Schedule using DefaultRate.
func Default() Schedule {
	return Schedule{Rate: DefaultRate}
}

// Factor returns the reveal factor at frame. It is monotonic in frame and
// clamped to [0, 1] for any input.
func (s Schedule) Factor(frame int64) float64 {
	if s.Rate <= 0 || math.IsNaN(s.Rate) {
		return 1
	}
	return clamp01(float64(frame) * s.Rate)
}

// Visibility returns how far entity i of n is revealed at factor, in [0, 1].
func Visibility(factor float64, i, n int) float64 {
	return clamp01(factor*float64(n) - float64(i))
}

// Visible reports whether entity i of n should be drawn at factor.
func Visible(factor float64, i, n int) bool {
	return Visibility(factor, i, n) > 0
}

// Complete reports whether every entity is visible at factor.
func Complete(factor float64) bool {
	return factor >= 1
}

func clamp01(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
