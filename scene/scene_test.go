// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/gg"

	"github.com/gogpu/vhslogo/extrude"
	"github.com/gogpu/vhslogo/geom"
	"github.com/gogpu/vhslogo/svgpath"
)

var testPalette = Palette{
	Background: gg.Hex("#171717"),
	Stroke:     gg.Hex("#a3a3a3"),
	Fill:       gg.Hex("#ff0000"),
	FloorLine:  gg.Hex("#404040"),
}

func logoFrame(revealFactor float64) Frame {
	return Frame{
		Palette:     testPalette,
		Shape:       extrude.Build(svgpath.Parse(svgpath.LogoPath), 100),
		Reveal:      revealFactor,
		Scale:       2,
		Zoom:        1,
		PosX:        -50,
		RotationX:   RotationX(0),
		RotationY:   RotationY,
		RotationZ:   RotationZ,
		StrokeWidth: 1,
	}
}

func newScene(t *testing.T, w, h int) *Scene {
	t.Helper()
	s, err := New(w, h)
	if err != nil {
		t.Fatalf("New(%d, %d) error = %v", w, h, err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func pixmap(t *testing.T, s *Scene) *gg.Pixmap {
	t.Helper()
	pm, err := s.Pixmap()
	if err != nil {
		t.Fatalf("Pixmap() error = %v", err)
	}
	return pm
}

func sameColor(a, b gg.RGBA) bool {
	const eps = 1.5 / 255
	return math.Abs(a.R-b.R) <= eps && math.Abs(a.G-b.G) <= eps && math.Abs(a.B-b.B) <= eps
}

func countColor(pm *gg.Pixmap, c gg.RGBA) int {
	n := 0
	for y := 0; y < pm.Height(); y++ {
		for x := 0; x < pm.Width(); x++ {
			if sameColor(pm.GetPixel(x, y), c) {
				n++
			}
		}
	}
	return n
}

func TestRotationX(t *testing.T) {
	tests := []struct {
		scroll float64
		want   float64
	}{
		{0, 48},
		{0.5, 108},
		{1, 168},
		{-1, 48},
		{3, 168},
		{math.NaN(), 48},
	}
	for _, tt := range tests {
		if got := RotationX(tt.scroll); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("RotationX(%v) = %v, want %v", tt.scroll, got, tt.want)
		}
	}
}

func TestFloorLineY(t *testing.T) {
	const h = 600.0
	if got := FloorLineY(0, FloorLines, h); got != 450 {
		t.Errorf("first line at %v, want horizon 450", got)
	}
	if got := FloorLineY(FloorLines-1, FloorLines, h); got != h {
		t.Errorf("last line at %v, want bottom %v", got, h)
	}

	prevGap := 0.0
	for i := 1; i < FloorLines; i++ {
		gap := FloorLineY(i, FloorLines, h) - FloorLineY(i-1, FloorLines, h)
		if gap <= prevGap {
			t.Errorf("gap %d = %v, want wider than %v (lines compress toward the horizon)", i, gap, prevGap)
		}
		prevGap = gap
	}
}

func TestNewInvalidSize(t *testing.T) {
	for _, sz := range [][2]int{{0, 10}, {10, 0}, {-1, -1}} {
		if _, err := New(sz[0], sz[1]); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("New(%d, %d) error = %v, want ErrInvalidSize", sz[0], sz[1], err)
		}
	}
}

func TestDrawNothingRevealed(t *testing.T) {
	s := newScene(t, 320, 240)

	info, err := s.Draw(logoFrame(0))
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if info.WallsDrawn != 0 || info.FrontVertices != 0 || info.BackVertices != 0 {
		t.Errorf("Draw() at reveal 0 = %+v, want no geometry", info)
	}
	if len(info.FloorLines) != FloorLines {
		t.Fatalf("len(FloorLines) = %d, want %d", len(info.FloorLines), FloorLines)
	}
	for i, l := range info.FloorLines {
		if l.Color != testPalette.FloorLine {
			t.Errorf("floor line %d color = %v, want %v", i, l.Color, testPalette.FloorLine)
		}
	}

	pm, err := s.Pixmap()
	if err != nil {
		t.Fatalf("Pixmap() error = %v", err)
	}
	if got := pm.GetPixel(0, 0); !sameColor(got, testPalette.Background) {
		t.Errorf("pixel (0,0) = %v, want background %v", got, testPalette.Background)
	}
	if n := countColor(pm, testPalette.Fill); n != 0 {
		t.Errorf("%d fill pixels at reveal 0, want 0", n)
	}
}

func TestDrawFullyRevealed(t *testing.T) {
	s := newScene(t, 800, 600)

	info, err := s.Draw(logoFrame(1))
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if info.WallsDrawn != 17 {
		t.Errorf("WallsDrawn = %d, want 17", info.WallsDrawn)
	}
	if info.FrontVertices != 18 || info.BackVertices != 18 {
		t.Errorf("face vertices = %d/%d, want 18/18", info.FrontVertices, info.BackVertices)
	}
	if n := countColor(pixmap(t, s), testPalette.Fill); n < 1000 {
		t.Errorf("%d fill pixels, want a visible shape", n)
	}
}

func TestDrawPartialReveal(t *testing.T) {
	s := newScene(t, 200, 150)

	f := logoFrame(0.5)
	info, err := s.Draw(f)
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	// 0.5*17 - i > 0 for i <= 8; 0.5*18 - i > 0 for i <= 8.
	if info.WallsDrawn != 9 || info.FrontVertices != 9 || info.BackVertices != 9 {
		t.Errorf("Draw() at reveal 0.5 = %+v, want 9 walls and 9 vertices per face", info)
	}

	rank := make([]int, 17)
	for i := range rank {
		rank[i] = 16 - i
	}
	f.WallRank = rank
	if info, _ = s.Draw(f); info.WallsDrawn != 9 {
		t.Errorf("WallsDrawn with reversed ranks = %d, want 9", info.WallsDrawn)
	}

	f.WallRank = []int{0, 1}
	if info, _ = s.Draw(f); info.WallsDrawn != 9 {
		t.Errorf("WallsDrawn with mismatched ranks = %d, want 9", info.WallsDrawn)
	}
}

func TestDrawEmptyShape(t *testing.T) {
	s := newScene(t, 64, 64)
	for _, shape := range []*extrude.Shape{nil, extrude.Build(nil, 10)} {
		f := logoFrame(1)
		f.Shape = shape
		info, err := s.Draw(f)
		if err != nil {
			t.Fatalf("Draw() error = %v", err)
		}
		if info.WallsDrawn != 0 || len(info.FloorLines) != FloorLines {
			t.Errorf("Draw(empty) = %+v, want floor lines only", info)
		}
	}
}

func TestDrawZeroDepth(t *testing.T) {
	s := newScene(t, 320, 240)
	f := logoFrame(1)
	f.Shape = extrude.Build(svgpath.Parse(svgpath.LogoPath), 0)
	if _, err := s.Draw(f); err != nil {
		t.Fatalf("Draw() with zero depth error = %v", err)
	}
}

func TestModel(t *testing.T) {
	f := Frame{Scale: 2, PosX: -50, PosY: 5}
	got := Model(f).MulPosition(geom.V3(10, 0, 0))
	if want := geom.V3(-80, 10, 0); !geom.Approx(got, want, 1e-9) {
		t.Errorf("Model().MulPosition() = %v, want %v", got, want)
	}

	f = Frame{Scale: 1, Zoom: 1, RotationX: 90}
	got = Model(f).MulPosition(geom.V3(0, 1, 0))
	if want := geom.V3(0, 0, 1); !geom.Approx(got, want, 1e-9) {
		t.Errorf("RotationX 90: MulPosition() = %v, want %v", got, want)
	}
}

func TestResize(t *testing.T) {
	s := newScene(t, 100, 80)
	if err := s.Resize(300, 200); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if w, h := s.Size(); w != 300 || h != 200 {
		t.Errorf("Size() = %dx%d, want 300x200", w, h)
	}
	if pm := pixmap(t, s); pm.Width() != 300 || pm.Height() != 200 {
		t.Errorf("Pixmap() = %dx%d, want 300x200", pm.Width(), pm.Height())
	}
	if err := s.Resize(0, 200); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Resize(0, 200) error = %v, want ErrInvalidSize", err)
	}
}

func TestPixmapReportsFlushError(t *testing.T) {
	s := newScene(t, 40, 30)
	errDevice := errors.New("device lost")
	s.flush = func() error { return errDevice }

	pm, err := s.Pixmap()
	if !errors.Is(err, errDevice) {
		t.Fatalf("Pixmap() error = %v, want wrapped device error", err)
	}
	if pm == nil || pm.Width() != 40 || pm.Height() != 30 {
		t.Errorf("Pixmap() on flush failure = %v, want the 40x30 buffer", pm)
	}
}

func TestCloseIdempotent(t *testing.T) {
	s, err := New(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}
	if _, err := s.Draw(logoFrame(1)); !errors.Is(err, ErrClosed) {
		t.Errorf("Draw() after Close error = %v, want ErrClosed", err)
	}
	if err := s.Resize(10, 10); !errors.Is(err, ErrClosed) {
		t.Errorf("Resize() after Close error = %v, want ErrClosed", err)
	}
	if pm, err := s.Pixmap(); pm != nil || !errors.Is(err, ErrClosed) {
		t.Errorf("Pixmap() after Close = %v, %v, want nil, ErrClosed", pm, err)
	}
}
