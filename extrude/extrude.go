// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package extrude sweeps a flat outline along the Z axis into a solid made
// of a front face, a back face and one quad wall per outline edge.
package extrude

import (
	"github.com/gogpu/vhslogo/geom"
	"github.com/gogpu/vhslogo/svgpath"
)

// Wall is the side quad between outline points A and B. Vertices are ordered
// a-top, b-top, b-bottom, a-bottom, where top is z=+depth/2.
type Wall struct {
	Index    int
	A, B     int
	Vertices [4]geom.Vec3
}

// Shape is an extruded outline. It is read-only once built.
type Shape struct {
	Points []svgpath.Point
	Depth  float64

	// Front and Back hold the outline at z=+depth/2 and z=-depth/2.
	Front []geom.Vec3
	Back  []geom.Vec3

	// Walls has len(Points)-1 entries, one per consecutive point pair.
	Walls []Wall
}

// Build extrudes points by depth. With fewer than two points the result has
// no faces and no walls. A non-positive depth is allowed and collapses both
// faces onto one plane.
func Build(points []svgpath.Point, depth float64) *Shape {
	s := &Shape{
		Points: append([]svgpath.Point(nil), points...),
		Depth:  depth,
	}
	if len(points) < 2 {
		return s
	}

	top, bottom := depth/2, -depth/2
	s.Front = make([]geom.Vec3, len(points))
	s.Back = make([]geom.Vec3, len(points))
	for i, p := range points {
		s.Front[i] = geom.V3(p.X, p.Y, top)
		s.Back[i] = geom.V3(p.X, p.Y, bottom)
	}

	s.Walls = make([]Wall, len(points)-1)
	for i := range s.Walls {
		a, b := points[i], points[i+1]
		s.Walls[i] = Wall{
			Index: i,
			A:     i,
			B:     i + 1,
			Vertices: [4]geom.Vec3{
				geom.V3(a.X, a.Y, top),
				geom.V3(b.X, b.Y, top),
				geom.V3(b.X, b.Y, bottom),
				geom.V3(a.X, a.Y, bottom),
			},
		}
	}
	return s
}

// Empty reports whether the shape has no renderable geometry.
func (s *Shape) Empty() bool {
	return len(s.Walls) == 0
}
