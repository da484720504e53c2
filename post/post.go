// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package post composites the off-screen scene buffer onto the visible
// canvas through the VHS glitch program.
//
// The program exists three times: as a render program in WGSL
// (shaders/glitch.wgsl), validated by compiling it to SPIR-V with naga when
// a Compositor is created; as a compute program (shaders/glitch_compute.wgsl)
// that WithGPU dispatches through wgpu when an adapter is present; and as
// the float32 Go function Fragment, which Apply runs over every output pixel
// whenever the GPU path is off or fails. All three read the same Uniforms
// block.
//
// Build with the nogpu tag to leave out the wgpu backend.
package post

import (
	_ "embed"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"sync/atomic"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/vhslogo/internal/progcache"
)

//go:embed shaders/glitch.wgsl
var glitchShaderWGSL string

//go:embed shaders/glitch_compute.wgsl
var glitchComputeWGSL string

// programs holds validated SPIR-V across compositors.
var programs = progcache.New(progcache.DefaultCapacity)

// ShaderSource returns the WGSL source of the glitch program.
func ShaderSource() string {
	return glitchShaderWGSL
}

// ComputeShaderSource returns the WGSL source of the compute variant run on
// the GPU.
func ComputeShaderSource() string {
	return glitchComputeWGSL
}

var (
	// ErrShaderCompile is returned when the glitch program fails to compile.
	ErrShaderCompile = errors.New("post: shader compilation failed")

	// ErrSizeMismatch is returned when source and destination differ in size.
	ErrSizeMismatch = errors.New("post: source and destination sizes differ")

	// ErrUnsupportedFormat is returned for output formats other than RGBA8 and BGRA8.
	ErrUnsupportedFormat = errors.New("post: unsupported output format")

	// ErrFallbackToCPU reports that the GPU path is unavailable and the
	// frame must be shaded on the CPU.
	ErrFallbackToCPU = errors.New("post: falling back to CPU")
)

// Option configures a Compositor.
type Option func(*options)

type options struct {
	workers int
	format  gputypes.TextureFormat
	logger  *slog.Logger
	source  string
	gpu     bool
}

func defaultOptions() options {
	return options{
		workers: runtime.GOMAXPROCS(0),
		format:  gputypes.TextureFormatRGBA8Unorm,
		source:  glitchShaderWGSL,
	}
}

// WithWorkers limits how many row bands are shaded concurrently. Values
// below 1 shade on the calling goroutine only.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithFormat sets the channel order written to the destination image.
// TextureFormatRGBA8Unorm and TextureFormatBGRA8Unorm are supported.
func WithFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithLogger sets the logger used during creation and afterwards.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithShaderSource replaces the WGSL program validated at creation.
func WithShaderSource(wgsl string) Option {
	return func(o *options) {
		o.source = wgsl
	}
}

// WithGPU runs the compute variant of the glitch program on a wgpu device
// when one can be opened. Without an adapter, or when the compute program
// does not compile, the Compositor logs a warning and shades on the CPU.
func WithGPU(enabled bool) Option {
	return func(o *options) {
		o.gpu = enabled
	}
}

// Compositor applies the glitch program. Apply may be called from one
// goroutine at a time; it fans out internally.
type Compositor struct {
	workers int
	format  gputypes.TextureFormat
	spirv   []byte
	gpu     *gpuProgram
	log     atomic.Pointer[slog.Logger]
}

// New validates the glitch program and returns a Compositor. A compile
// failure is reported as ErrShaderCompile.
func New(opts ...Option) (*Compositor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	switch o.format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, o.format)
	}

	c := &Compositor{workers: o.workers, format: o.format}
	c.SetLogger(o.logger)

	spirv, cached, err := programs.GetOrCompile(o.source, naga.Compile)
	if err != nil {
		c.logger().Warn("post: glitch program rejected", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrShaderCompile, err)
	}
	c.spirv = spirv
	c.logger().Info("post: glitch program validated", "spirv_bytes", len(spirv), "cached", cached)

	if o.gpu {
		c.enableGPU()
	}
	return c, nil
}

func (c *Compositor) enableGPU() {
	spirv, _, err := programs.GetOrCompile(glitchComputeWGSL, naga.Compile)
	if err != nil {
		c.logger().Warn("post: compute program rejected, shading on CPU", "err", err)
		return
	}
	g, err := openGPU(spirv)
	if err != nil {
		c.logger().Warn("post: GPU unavailable, shading on CPU", "err", err)
		return
	}
	c.gpu = g
	c.logger().Info("post: GPU compositor ready", "adapter", g.name(), "spirv_bytes", len(spirv))
}

// Accelerated reports whether Apply runs on the GPU.
func (c *Compositor) Accelerated() bool {
	return c.gpu != nil
}

// Close releases the GPU device, if any. The Compositor keeps working on
// the CPU afterwards. Close is idempotent.
func (c *Compositor) Close() {
	if c.gpu != nil {
		c.gpu.close()
		c.gpu = nil
	}
}

// SetLogger replaces the logger. Nil silences the compositor.
func (c *Compositor) SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	c.log.Store(l)
}

func (c *Compositor) logger() *slog.Logger {
	return c.log.Load()
}

// SPIRV returns the compiled glitch program.
func (c *Compositor) SPIRV() []byte {
	return c.spirv
}

// Format returns the destination channel order.
func (c *Compositor) Format() gputypes.TextureFormat {
	return c.format
}

// Apply shades every pixel of dst from src under u. dst and src must have
// the same dimensions.
func (c *Compositor) Apply(dst *image.RGBA, src *gg.Pixmap, u Uniforms) error {
	if dst == nil || src == nil {
		return fmt.Errorf("%w: nil image", ErrSizeMismatch)
	}
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if w != src.Width() || h != src.Height() {
		return fmt.Errorf("%w: dst %dx%d, src %dx%d", ErrSizeMismatch, w, h, src.Width(), src.Height())
	}
	if w == 0 || h == 0 {
		return nil
	}

	u = u.Clamped()
	if c.gpu != nil {
		err := c.gpu.run(dst, src, u, c.format == gputypes.TextureFormatBGRA8Unorm)
		if err == nil {
			return nil
		}
		c.logger().Warn("post: GPU pass failed, shading on CPU from now on", "err", err)
		c.Close()
	}

	smp := NewPixmapSampler(src)
	ri, bi := 0, 2
	if c.format == gputypes.TextureFormatBGRA8Unorm {
		ri, bi = 2, 0
	}

	shade := func(y0, y1 int) {
		fw, fh := float32(w), float32(h)
		for y := y0; y < y1; y++ {
			off := dst.PixOffset(b.Min.X, b.Min.Y+y)
			row := dst.Pix[off : off+w*4]
			v := (float32(y) + 0.5) / fh
			for x := 0; x < w; x++ {
				r, g, bl := Fragment((float32(x)+0.5)/fw, v, u, smp)
				px := row[x*4 : x*4+4 : x*4+4]
				px[ri] = toByte(r)
				px[1] = toByte(g)
				px[bi] = toByte(bl)
				px[3] = 0xff
			}
		}
	}

	bands := c.workers
	if bands < 1 {
		shade(0, h)
		return nil
	}
	if bands > h {
		bands = h
	}
	var g errgroup.Group
	g.SetLimit(bands)
	per := (h + bands - 1) / bands
	for y0 := 0; y0 < h; y0 += per {
		y1 := min(y0+per, h)
		g.Go(func() error {
			shade(y0, y1)
			return nil
		})
	}
	return g.Wait()
}

func toByte(v float32) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 1:
		return 0xff
	default:
		return uint8(v*255 + 0.5)
	}
}
