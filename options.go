// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vhslogo

import (
	"math/rand/v2"
	"runtime"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/vhslogo/extrude"
	"github.com/gogpu/vhslogo/glitch"
	"github.com/gogpu/vhslogo/reveal"
	"github.com/gogpu/vhslogo/scene"
	"github.com/gogpu/vhslogo/svgpath"
)

// DefaultDepth is the extrusion depth of the logotype in path units.
const DefaultDepth = 100

// Rand is the random source for startup pulses and wall shuffling.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Option configures a Renderer during Start.
//
// Example:
//
//	r, err := vhslogo.Start(doc,
//	    vhslogo.WithRand(rand.New(rand.NewPCG(1, 2))),
//	    vhslogo.WithWallOrder(extrude.OrderShuffled),
//	)
type Option func(*options)

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

type options struct {
	path        string
	depth       float64
	revealRate  float64
	rand        Rand
	glitch      glitch.Settings
	zoom        float64
	strokeWidth float64
	rotationY   float64
	rotationZ   float64
	wallOrder   extrude.Order
	workers     int
	format      gputypes.TextureFormat
	gpu         bool
}

func defaultOptions() options {
	return options{
		path:        svgpath.LogoPath,
		depth:       DefaultDepth,
		revealRate:  reveal.DefaultRate,
		rand:        globalRand{},
		glitch:      glitch.DefaultSettings(),
		zoom:        1,
		strokeWidth: 1,
		rotationY:   scene.RotationY,
		rotationZ:   scene.RotationZ,
		wallOrder:   extrude.OrderIndex,
		workers:     runtime.GOMAXPROCS(0),
		format:      gputypes.TextureFormatRGBA8Unorm,
	}
}

// WithPath sets the outline to extrude, in SVG path syntax restricted to
// M, L, H, V and Z. Unsupported tokens are ignored.
func WithPath(d string) Option {
	return func(o *options) {
		o.path = d
	}
}

// WithDepth sets the extrusion depth.
func WithDepth(depth float64) Option {
	return func(o *options) {
		o.depth = depth
	}
}

// WithRevealRate sets the reveal factor gained per frame. Non-positive
// rates show the whole shape from the first frame.
func WithRevealRate(rate float64) Option {
	return func(o *options) {
		o.revealRate = rate
	}
}

// WithRand sets the random source. Without it, or with nil, the global
// source is used and runs are not reproducible.
func WithRand(r Rand) Option {
	return func(o *options) {
		if r == nil {
			r = globalRand{}
		}
		o.rand = r
	}
}

// WithGlitchSettings replaces the glitch timing constants.
func WithGlitchSettings(s glitch.Settings) Option {
	return func(o *options) {
		o.glitch = s
	}
}

// WithCameraZoom multiplies the layout scale.
func WithCameraZoom(zoom float64) Option {
	return func(o *options) {
		o.zoom = zoom
	}
}

// WithStrokeWidth sets the outline width of walls and faces.
func WithStrokeWidth(w float64) Option {
	return func(o *options) {
		o.strokeWidth = w
	}
}

// WithRotation sets the fixed Y and Z rotations in degrees. The X rotation
// always follows the scroll position.
func WithRotation(y, z float64) Option {
	return func(o *options) {
		o.rotationY = y
		o.rotationZ = z
	}
}

// WithWallOrder selects the wall reveal order. The shuffled order is drawn
// once at Start from the Rand source.
func WithWallOrder(order extrude.Order) Option {
	return func(o *options) {
		o.wallOrder = order
	}
}

// WithWorkers limits the goroutines used by the compositor.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithGPU runs the glitch program on a wgpu device when an adapter is
// present, falling back to the CPU compositor otherwise.
func WithGPU(enabled bool) Option {
	return func(o *options) {
		o.gpu = enabled
	}
}

// WithOutputFormat sets the channel order of the visible canvas.
func WithOutputFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		o.format = f
	}
}
