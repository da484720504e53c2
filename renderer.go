// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vhslogo

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gg"

	"github.com/gogpu/vhslogo/extrude"
	"github.com/gogpu/vhslogo/glitch"
	"github.com/gogpu/vhslogo/host"
	"github.com/gogpu/vhslogo/post"
	"github.com/gogpu/vhslogo/reveal"
	"github.com/gogpu/vhslogo/scene"
	"github.com/gogpu/vhslogo/svgpath"
)

// State is a snapshot of the renderer after the last frame.
type State struct {
	// Frame is the counter value the last frame was drawn with.
	Frame  int64
	Width  int
	Height int

	Theme     Theme
	Scroll    float64
	RotationX float64
	Layout    Layout
	Reveal    float64

	Regime glitch.Regime
	Params glitch.Params

	Scene scene.Info
}

// Renderer draws the logotype into an off-screen buffer and composites it
// onto the canvas once per Frame. Frame, Close and the host's listener
// callbacks must not run concurrently.
type Renderer struct {
	host host.Host
	opts options

	shape    *extrude.Shape
	wallRank []int

	scene  *scene.Scene
	comp   *post.Compositor
	timer  *glitch.Timer
	canvas *image.RGBA

	layout   Layout
	frame    int64
	listener host.ListenerID
	state    State
	closed   bool
}

// At most one renderer is active; starting another tears it down first.
var (
	activeMu sync.Mutex
	active   *Renderer
)

// Start creates the renderer for h and makes it the active one, closing any
// previous renderer. It fails with ErrNoContainer when h has no container
// and with an error wrapping post.ErrShaderCompile when the glitch program
// does not compile.
func Start(h host.Host, opts ...Option) (*Renderer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	activeMu.Lock()
	defer activeMu.Unlock()

	if active != nil {
		prev := active
		active = nil
		if err := prev.close(); err != nil {
			Logger().Warn("vhslogo: previous renderer teardown failed", "err", err)
		}
	}

	w, ht, ok := h.Viewport()
	if !ok {
		Logger().Warn("vhslogo: container not found, not starting", "id", host.Container)
		return nil, ErrNoContainer
	}
	w, ht = max(w, 1), max(ht, 1)

	comp, err := post.New(
		post.WithWorkers(o.workers),
		post.WithFormat(o.format),
		post.WithLogger(Logger()),
		post.WithGPU(o.gpu),
	)
	if err != nil {
		Logger().Warn("vhslogo: compositor unavailable", "err", err)
		return nil, fmt.Errorf("vhslogo: %w", err)
	}

	sc, err := scene.New(w, ht)
	if err != nil {
		comp.Close()
		return nil, fmt.Errorf("vhslogo: %w", err)
	}

	shape := extrude.Build(svgpath.Parse(o.path), o.depth)

	r := &Renderer{
		host:     h,
		opts:     o,
		shape:    shape,
		wallRank: extrude.WallOrder(len(shape.Walls), o.wallOrder, o.rand),
		scene:    sc,
		comp:     comp,
		timer:    glitch.NewTimer(h.Now(), o.glitch, o.rand),
		canvas:   image.NewRGBA(image.Rect(0, 0, w, ht)),
		layout:   LayoutFor(h.WindowWidth()),
	}
	r.listener = h.AddListener(host.EventResize, r.onResize)
	active = r

	Logger().Info("vhslogo: renderer started",
		"width", w, "height", ht,
		"points", len(shape.Points), "walls", len(shape.Walls),
		"wall_order", o.wallOrder, "gpu", comp.Accelerated())
	return r, nil
}

// Frame advances the glitch timer, draws the scene and composites it onto
// the canvas. Theme and scroll are read from the host once per frame.
func (r *Renderer) Frame() error {
	if r.closed {
		return ErrClosed
	}

	params := r.timer.Advance(r.host.Now())
	theme := ParseTheme(r.host.Attribute(host.ThemeAttribute))
	scroll := r.host.Scroll().Progress()
	rotX := scene.RotationX(scroll)
	factor := reveal.Schedule{Rate: r.opts.revealRate}.Factor(r.frame)

	wallRank := r.wallRank
	if r.opts.wallOrder == extrude.OrderIndex {
		wallRank = nil
	}

	info, err := r.scene.Draw(scene.Frame{
		Palette:     theme.Palette(),
		Shape:       r.shape,
		Reveal:      factor,
		WallRank:    wallRank,
		Scale:       r.layout.Scale,
		Zoom:        r.opts.zoom,
		PosX:        r.layout.PosX,
		PosY:        r.layout.PosY,
		RotationX:   rotX,
		RotationY:   r.opts.rotationY,
		RotationZ:   r.opts.rotationZ,
		StrokeWidth: r.opts.strokeWidth,
	})
	if err != nil {
		return fmt.Errorf("vhslogo: frame %d: %w", r.frame, err)
	}

	pm, err := r.scene.Pixmap()
	if err != nil {
		return fmt.Errorf("vhslogo: frame %d: %w", r.frame, err)
	}
	if err := r.comp.Apply(r.canvas, pm, post.UniformsFrom(params, r.frame)); err != nil {
		return fmt.Errorf("vhslogo: frame %d: %w", r.frame, err)
	}

	w, h := r.scene.Size()
	r.state = State{
		Frame:     r.frame,
		Width:     w,
		Height:    h,
		Theme:     theme,
		Scroll:    scroll,
		RotationX: rotX,
		Layout:    r.layout,
		Reveal:    factor,
		Regime:    r.timer.Regime(),
		Params:    params,
		Scene:     info,
	}
	r.frame++
	return nil
}

// Canvas returns the composited output of the last frame, or nil after
// Close. The image is reused across frames.
func (r *Renderer) Canvas() *image.RGBA {
	return r.canvas
}

// Buffer returns the off-screen scene buffer. It fails with ErrClosed after
// Close.
func (r *Renderer) Buffer() (*gg.Pixmap, error) {
	if r.closed {
		return nil, ErrClosed
	}
	return r.scene.Pixmap()
}

// State returns the snapshot taken at the end of the last frame.
func (r *Renderer) State() State {
	return r.state
}

// Phase returns the glitch timer state.
func (r *Renderer) Phase() glitch.Phase {
	return r.timer.Phase()
}

// Close detaches the renderer from its host and releases its buffers. Close
// is idempotent.
func (r *Renderer) Close() error {
	activeMu.Lock()
	defer activeMu.Unlock()
	if active == r {
		active = nil
	}
	return r.close()
}

func (r *Renderer) close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.host.RemoveListener(r.listener)
	err := r.scene.Close()
	r.comp.Close()
	r.canvas = nil
	Logger().Info("vhslogo: renderer stopped", "frames", r.frame)
	return err
}

// onResize follows the container size and re-applies the layout
// breakpoints.
func (r *Renderer) onResize() {
	if r.closed {
		return
	}
	w, h, ok := r.host.Viewport()
	if !ok {
		return
	}
	w, h = max(w, 1), max(h, 1)
	if err := r.scene.Resize(w, h); err != nil {
		Logger().Warn("vhslogo: resize failed", "err", err)
		return
	}
	if b := r.canvas.Bounds(); b.Dx() != w || b.Dy() != h {
		r.canvas = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	r.layout = LayoutFor(r.host.WindowWidth())
	Logger().Debug("vhslogo: resized",
		"width", w, "height", h,
		"scale", r.layout.Scale, "pos_x", r.layout.PosX, "pos_y", r.layout.PosY)
}
