// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package scene draws the extruded logotype and its floor guides into an
// off-screen gg buffer.
//
// A Scene owns one gg.Context sized to the viewport. Each call to Draw clears
// it and paints, back to front in submission order:
//
//   - the floor guide lines,
//   - every revealed wall quad,
//   - the front face polygon,
//   - the back face polygon.
//
// Geometry is transformed by the model matrix and projected with the default
// perspective camera of geom, so the z=0 plane maps onto buffer pixels.
package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gg"
	"github.com/soypat/geometry/md3"

	"github.com/gogpu/vhslogo/extrude"
	"github.com/gogpu/vhslogo/geom"
	"github.com/gogpu/vhslogo/reveal"
)

// Floor guide layout.
const (
	FloorLines    = 7
	FloorTopRatio = 0.75 // horizon, as a fraction of buffer height
)

// Resting orientation of the shape, in degrees.
const (
	BaseRotationX = 48.0
	ScrollTilt    = 120.0
	RotationY     = -21.0
	RotationZ     = -2.0
)

var (
	// ErrClosed is returned when drawing into a closed Scene.
	ErrClosed = errors.New("scene: closed")

	// ErrInvalidSize is returned for non-positive buffer dimensions.
	ErrInvalidSize = errors.New("scene: invalid size")
)

// Palette holds the four colors a frame is painted with.
type Palette struct {
	Background gg.RGBA
	Stroke     gg.RGBA
	Fill       gg.RGBA
	FloorLine  gg.RGBA
}

// Frame describes one draw.
type Frame struct {
	Palette Palette
	Shape   *extrude.Shape

	// Reveal is the reveal factor in [0, 1].
	Reveal float64

	// WallRank optionally remaps wall i to reveal slot WallRank[i]. A nil or
	// mismatched slice reveals walls in index order.
	WallRank []int

	Scale      float64 // layout scale
	Zoom       float64 // camera zoom, multiplied into Scale
	PosX, PosY float64

	// Rotations in degrees, applied X then Y then Z.
	RotationX, RotationY, RotationZ float64

	StrokeWidth float64
}

// FloorLine is one drawn floor guide.
type FloorLine struct {
	Y     float64
	Color gg.RGBA
}

// Info reports what Draw painted.
type Info struct {
	FloorLines    []FloorLine
	RotationX     float64
	WallsDrawn    int
	FrontVertices int
	BackVertices  int
}

// RotationX returns the X tilt for a scroll progress. Progress is clamped to
// [0, 1], so the tilt stays within [48, 168] degrees.
func RotationX(scroll float64) float64 {
	return BaseRotationX + clamp01(scroll)*ScrollTilt
}

// FloorLineY returns the y of floor guide i of n in a buffer of height h.
// Spacing compresses quadratically toward the horizon.
func FloorLineY(i, n int, h float64) float64 {
	bottom, top := h, h*FloorTopRatio
	if n < 2 {
		return top
	}
	t := float64(i) / float64(n-1)
	return lerp(bottom, top, 1-t*t)
}

// Scene is an off-screen drawing buffer. It is not safe for concurrent use.
type Scene struct {
	dc     *gg.Context
	flush  func() error
	closed bool
}

// New allocates a w x h buffer.
func New(w, h int) (*Scene, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	dc := gg.NewContext(w, h)
	dc.SetFillRule(gg.FillRuleNonZero)
	return &Scene{dc: dc, flush: dc.FlushGPU}, nil
}

// Size returns the buffer dimensions.
func (s *Scene) Size() (w, h int) {
	if s.closed {
		return 0, 0
	}
	return s.dc.Width(), s.dc.Height()
}

// Resize reallocates the buffer when the dimensions change.
func (s *Scene) Resize(w, h int) error {
	if s.closed {
		return ErrClosed
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	if err := s.dc.Resize(w, h); err != nil {
		return fmt.Errorf("scene: resize: %w", err)
	}
	return nil
}

// Pixmap returns the buffer contents after flushing pending accelerator
// work. A failed flush is reported with the buffer as it stands, so callers
// may still present a partial frame.
func (s *Scene) Pixmap() (*gg.Pixmap, error) {
	if s.closed {
		return nil, ErrClosed
	}
	pm := s.dc.ResizeTarget()
	if err := s.flush(); err != nil {
		return pm, fmt.Errorf("scene: flush: %w", err)
	}
	return pm, nil
}

// Close releases the buffer. Close is idempotent.
func (s *Scene) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	err := s.dc.Close()
	s.dc = nil
	return err
}

// Draw paints f into the buffer.
func (s *Scene) Draw(f Frame) (Info, error) {
	if s.closed {
		return Info{}, ErrClosed
	}
	dc := s.dc
	w, h := float64(dc.Width()), float64(dc.Height())

	info := Info{RotationX: f.RotationX}

	dc.ClearPath()
	dc.ClearWithColor(f.Palette.Background)

	setColor(dc, f.Palette.FloorLine)
	dc.SetLineWidth(1)
	info.FloorLines = make([]FloorLine, 0, FloorLines)
	for i := range FloorLines {
		y := FloorLineY(i, FloorLines, h)
		dc.MoveTo(0, y)
		dc.LineTo(w, y)
		if err := dc.Stroke(); err != nil {
			return info, fmt.Errorf("scene: floor line %d: %w", i, err)
		}
		info.FloorLines = append(info.FloorLines, FloorLine{Y: y, Color: f.Palette.FloorLine})
	}

	shape := f.Shape
	if shape == nil || shape.Empty() {
		return info, nil
	}

	model := Model(f)
	cam := geom.NewCamera(w, h)
	project := func(v geom.Vec3) (float64, float64) {
		return cam.Project(model.MulPosition(v))
	}

	stroke := f.StrokeWidth
	if stroke <= 0 {
		stroke = 1
	}
	dc.SetLineWidth(stroke)

	nw := len(shape.Walls)
	rank := f.WallRank
	if len(rank) != nw {
		rank = nil
	}
	for i, wall := range shape.Walls {
		slot := i
		if rank != nil {
			slot = rank[i]
		}
		if !reveal.Visible(f.Reveal, slot, nw) {
			continue
		}
		for j, v := range wall.Vertices {
			x, y := project(v)
			if j == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
		if err := fillStroke(dc, f.Palette); err != nil {
			return info, fmt.Errorf("scene: wall %d: %w", i, err)
		}
		info.WallsDrawn++
	}

	var err error
	if info.FrontVertices, err = face(dc, shape.Front, f, project); err != nil {
		return info, fmt.Errorf("scene: front face: %w", err)
	}
	if info.BackVertices, err = face(dc, shape.Back, f, project); err != nil {
		return info, fmt.Errorf("scene: back face: %w", err)
	}
	return info, nil
}

// Model returns the model transform of f: scale, then translation, then the
// X, Y and Z rotations, composed so that the rotations apply first.
func Model(f Frame) md3.Mat4 {
	zoom := f.Zoom
	if zoom == 0 {
		zoom = 1
	}
	return geom.Compose(
		geom.Scale(f.Scale*zoom),
		geom.Translate(f.PosX, f.PosY, 0),
		geom.RotateX(geom.Radians(f.RotationX)),
		geom.RotateY(geom.Radians(f.RotationY)),
		geom.RotateZ(geom.Radians(f.RotationZ)),
	)
}

// face draws the revealed prefix of a face outline as one closed polygon and
// returns the number of vertices used.
func face(dc *gg.Context, pts []geom.Vec3, f Frame, project func(geom.Vec3) (float64, float64)) (int, error) {
	n := 0
	for i, v := range pts {
		if !reveal.Visible(f.Reveal, i, len(pts)) {
			continue
		}
		x, y := project(v)
		if n == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
		n++
	}
	if n == 0 {
		return 0, nil
	}
	dc.ClosePath()
	return n, fillStroke(dc, f.Palette)
}

func fillStroke(dc *gg.Context, p Palette) error {
	setColor(dc, p.Fill)
	if err := dc.FillPreserve(); err != nil {
		dc.ClearPath()
		return err
	}
	setColor(dc, p.Stroke)
	return dc.Stroke()
}

func setColor(dc *gg.Context, c gg.RGBA) {
	dc.SetRGBA(c.R, c.G, c.B, c.A)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
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
