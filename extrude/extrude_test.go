// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package extrude

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/gogpu/vhslogo/svgpath"
)

func TestBuildWallCount(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		depth     float64
		wantWalls int
	}{
		{"square", "M0 0H10V10H0Z", 4, 4},
		{"logo", svgpath.LogoPath, 100, 17},
		{"single segment", "M0 0L5 5", 1, 1},
		{"zero depth", "M0 0H10V10Z", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts := svgpath.Parse(tt.path)
			s := Build(pts, tt.depth)
			if len(s.Walls) != len(pts)-1 {
				t.Errorf("len(Walls) = %d, want len(Points)-1 = %d", len(s.Walls), len(pts)-1)
			}
			if len(s.Walls) != tt.wantWalls {
				t.Errorf("len(Walls) = %d, want %d", len(s.Walls), tt.wantWalls)
			}
			if len(s.Front) != len(pts) || len(s.Back) != len(pts) {
				t.Errorf("faces have %d/%d vertices, want %d", len(s.Front), len(s.Back), len(pts))
			}
		})
	}
}

func TestBuildWallDepths(t *testing.T) {
	const depth = 100.0
	s := Build(svgpath.Parse(svgpath.LogoPath), depth)

	for _, w := range s.Walls {
		top, bottom := 0, 0
		for _, v := range w.Vertices {
			switch v.Z {
			case depth / 2:
				top++
			case -depth / 2:
				bottom++
			default:
				t.Errorf("wall %d has vertex z=%v", w.Index, v.Z)
			}
		}
		if top != 2 || bottom != 2 {
			t.Errorf("wall %d: %d top and %d bottom vertices, want 2 and 2", w.Index, top, bottom)
		}
	}
}

func TestBuildWallVertexOrder(t *testing.T) {
	s := Build([]svgpath.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}, 10)
	w := s.Walls[0]
	want := [4][3]float64{{1, 2, 5}, {3, 4, 5}, {3, 4, -5}, {1, 2, -5}}
	for i, v := range w.Vertices {
		if got := [3]float64{v.X, v.Y, v.Z}; got != want[i] {
			t.Errorf("Vertices[%d] = %v, want %v", i, got, want[i])
		}
	}
	if w.A != 0 || w.B != 1 {
		t.Errorf("wall endpoints = (%d, %d), want (0, 1)", w.A, w.B)
	}
}

func TestBuildTooFewPoints(t *testing.T) {
	for _, pts := range [][]svgpath.Point{nil, {{X: 1, Y: 1}}} {
		s := Build(pts, 10)
		if !s.Empty() || len(s.Front) != 0 || len(s.Back) != 0 {
			t.Errorf("Build(%v) = %+v, want empty geometry", pts, s)
		}
	}
}

func TestBuildCopiesPoints(t *testing.T) {
	pts := []svgpath.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}
	s := Build(pts, 1)
	pts[0].X = 99
	if s.Points[0].X != 0 {
		t.Error("Build should not alias the caller's point slice")
	}
}

func TestWallOrderIndex(t *testing.T) {
	got := WallOrder(5, OrderIndex, rand.New(rand.NewPCG(1, 2)))
	if want := []int{0, 1, 2, 3, 4}; !slices.Equal(got, want) {
		t.Errorf("WallOrder(index) = %v, want %v", got, want)
	}
}

func TestWallOrderShuffledIsPermutation(t *testing.T) {
	got := WallOrder(17, OrderShuffled, rand.New(rand.NewPCG(7, 7)))
	sorted := slices.Clone(got)
	slices.Sort(sorted)
	for i, v := range sorted {
		if v != i {
			t.Fatalf("WallOrder(shuffled) = %v, not a permutation", got)
		}
	}
}

func TestWallOrderShuffledIsReproducible(t *testing.T) {
	a := WallOrder(17, OrderShuffled, rand.New(rand.NewPCG(3, 4)))
	b := WallOrder(17, OrderShuffled, rand.New(rand.NewPCG(3, 4)))
	if !slices.Equal(a, b) {
		t.Errorf("same seed produced %v and %v", a, b)
	}
}

func TestWallOrderEmpty(t *testing.T) {
	if got := WallOrder(0, OrderShuffled, nil); got != nil {
		t.Errorf("WallOrder(0) = %v, want nil", got)
	}
}
