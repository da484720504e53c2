// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package geom adapts github.com/soypat/geometry/md3 to the scene renderer:
// model transforms built from md3.Mat4 and a perspective camera.
//
// The coordinate system matches a 2D canvas extended into depth: X grows to
// the right, Y grows down, Z grows toward the viewer. Angles are in radians.
package geom

import (
	"math"

	"github.com/soypat/geometry/md3"
)

// Vec3 is a point or direction in 3D space.
type Vec3 = md3.Vec

// V3 is shorthand for Vec3{x, y, z}.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Approx reports whether a and b are within eps of each other.
func Approx(a, b Vec3, eps float64) bool {
	return md3.Norm(md3.Sub(a, b)) <= eps
}

var (
	axisX = Vec3{X: 1}
	axisY = Vec3{Y: 1}
	axisZ = Vec3{Z: 1}
)

// Translate returns a translation by (x, y, z).
func Translate(x, y, z float64) md3.Mat4 {
	return md3.TranslatingMat4(V3(x, y, z))
}

// Scale returns a uniform scale by s.
func Scale(s float64) md3.Mat4 {
	return md3.ScalingMat4(V3(s, s, s))
}

// RotateX returns a right-handed rotation about the X axis.
func RotateX(angle float64) md3.Mat4 { return md3.RotationMat4(angle, axisX) }

// RotateY returns a right-handed rotation about the Y axis.
func RotateY(angle float64) md3.Mat4 { return md3.RotationMat4(angle, axisY) }

// RotateZ returns a right-handed rotation about the Z axis.
func RotateZ(angle float64) md3.Mat4 { return md3.RotationMat4(angle, axisZ) }

// Compose returns ms[0] * ms[1] * ... * ms[n-1]: the last transform is
// applied to a point first. Compose() is the identity.
func Compose(ms ...md3.Mat4) md3.Mat4 {
	m := md3.IdentityMat4()
	for _, o := range ms {
		m = md3.MulMat4(m, o)
	}
	return m
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// DefaultFOV is the vertical field of view of a default sketch camera.
const DefaultFOV = math.Pi / 3

// Camera projects world points onto a width x height viewport. The eye sits
// on the +Z axis at a distance chosen so that the z=0 plane maps to screen
// pixels one-to-one, with the origin at the viewport center.
type Camera struct {
	Width, Height float64
	EyeZ          float64
	Near          float64

	// View moves world points into eye space, where the eye is at the
	// origin looking down -Z.
	View md3.Mat4
}

// NewCamera returns the default perspective camera for a viewport.
func NewCamera(width, height float64) Camera {
	eye := (height / 2) / math.Tan(DefaultFOV/2)
	return Camera{
		Width:  width,
		Height: height,
		EyeZ:   eye,
		Near:   eye / 10,
		View:   Translate(0, 0, -eye),
	}
}

// Project maps a world point to screen coordinates. Points at or behind the
// near plane are pinned to it rather than flipped through the eye.
func (c Camera) Project(v Vec3) (x, y float64) {
	e := c.View.MulPosition(v)
	d := -e.Z
	if d < c.Near {
		d = c.Near
	}
	f := c.EyeZ / d
	return c.Width/2 + e.X*f, c.Height/2 + e.Y*f
}
