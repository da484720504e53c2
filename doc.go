// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package vhslogo renders an animated, extruded 3D logotype with a VHS-style
// glitch post-process.
//
// # Overview
//
// A closed 2D outline is parsed from SVG path data, extruded into a prism
// and drawn with filled, outlined faces over a receding floor grid. The
// walls of the prism appear one after another over the first frames. Scrolling the
// host document tilts the logotype around its X axis. Every frame is then
// run through a glitch program that adds scanlines, chromatic aberration,
// block displacement, noise and screen shake, driven by a timer that
// alternates a startup burst, a quiet baseline and periodic spikes.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/vhslogo"
//	    "github.com/gogpu/vhslogo/host"
//	    "github.com/gogpu/vhslogo/host/memhost"
//	)
//
//	doc := memhost.New(800, 600)
//	doc.SetAttribute(host.ThemeAttribute, "dark")
//
//	r, err := vhslogo.Start(doc)
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	for range 60 {
//	    doc.Advance(16 * time.Millisecond)
//	    if err := r.Frame(); err != nil {
//	        return err
//	    }
//	}
//	img := r.Canvas()
//
// # Architecture
//
// The package is organized into:
//   - svgpath: outline parsing (M, L, H, V, Z)
//   - extrude: prism construction and wall reveal order
//   - reveal: per-frame visibility schedule
//   - geom: model transforms and the perspective camera (soypat/geometry)
//   - scene: floor grid and face drawing with gg
//   - glitch: effect parameters and the startup/idle/spike timer
//   - post: the WGSL glitch program, its uniforms and the GPU and CPU compositors
//   - host: the document abstraction (container, theme, scroll, clock)
//
// # Coordinate System
//
// Canvas coordinates have the origin at the top-left with Y increasing
// down. The logotype is transformed by scale, translation and rotations
// about X, Y and Z (in that order, angles in degrees) and projected with
// a perspective camera centered on the canvas. The camera looks down -Z
// from a distance at which the plane Z=0 maps one unit to one pixel.
//
// # Logging
//
// The package is silent by default. Use SetLogger to enable structured
// logging through log/slog.
package vhslogo

// Version is the current version of the library.
const Version = "0.1.0"
