// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package host

import (
	"math"
	"testing"
)

func TestScrollProgress(t *testing.T) {
	tests := []struct {
		name string
		s    ScrollState
		want float64
	}{
		{"top", ScrollState{Y: 0, ScrollHeight: 3000, InnerHeight: 1000}, 0},
		{"middle", ScrollState{Y: 1000, ScrollHeight: 3000, InnerHeight: 1000}, 0.5},
		{"bottom", ScrollState{Y: 2000, ScrollHeight: 3000, InnerHeight: 1000}, 1},
		{"overscroll", ScrollState{Y: 2500, ScrollHeight: 3000, InnerHeight: 1000}, 1},
		{"bounce", ScrollState{Y: -50, ScrollHeight: 3000, InnerHeight: 1000}, 0},
		{"no scroll range", ScrollState{Y: 10, ScrollHeight: 1000, InnerHeight: 1000}, 0},
		{"taller viewport", ScrollState{Y: 10, ScrollHeight: 500, InnerHeight: 1000}, 0},
		{"nan", ScrollState{Y: math.NaN(), ScrollHeight: 3000, InnerHeight: 1000}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.Progress(); got != tt.want {
				t.Errorf("Progress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEventKindString(t *testing.T) {
	if EventResize.String() != "resize" || EventScroll.String() != "scroll" || EventKind(7).String() != "unknown" {
		t.Error("EventKind.String() returned an unexpected name")
	}
}
