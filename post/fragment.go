// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package post

import (
	"github.com/chewxy/math32"
	"github.com/gogpu/gg"
)

// Sampler reads a texture at normalized coordinates with (0, 0) at the
// top-left corner.
type Sampler interface {
	Sample(u, v float32) (r, g, b float32)
}

// PixmapSampler samples a gg.Pixmap with bilinear filtering and
// clamp-to-edge addressing.
type PixmapSampler struct {
	data []uint8
	w, h int
}

// NewPixmapSampler wraps pm. The pixmap must not be resized while the
// sampler is in use.
func NewPixmapSampler(pm *gg.Pixmap) PixmapSampler {
	return PixmapSampler{data: pm.Data(), w: pm.Width(), h: pm.Height()}
}

// Sample implements Sampler.
func (s PixmapSampler) Sample(u, v float32) (r, g, b float32) {
	if s.w <= 0 || s.h <= 0 {
		return 0, 0, 0
	}
	x := u*float32(s.w) - 0.5
	y := v*float32(s.h) - 0.5
	x0, y0 := math32.Floor(x), math32.Floor(y)
	fx, fy := x-x0, y-y0

	ix0, iy0 := clampIndex(x0, s.w), clampIndex(y0, s.h)
	ix1, iy1 := clampIndex(x0+1, s.w), clampIndex(y0+1, s.h)

	var c [3]float32
	for ch := range c {
		p00 := s.texel(ix0, iy0, ch)
		p10 := s.texel(ix1, iy0, ch)
		p01 := s.texel(ix0, iy1, ch)
		p11 := s.texel(ix1, iy1, ch)
		top := p00 + (p10-p00)*fx
		bot := p01 + (p11-p01)*fx
		c[ch] = top + (bot-top)*fy
	}
	return c[0], c[1], c[2]
}

func (s PixmapSampler) texel(x, y, ch int) float32 {
	return float32(s.data[(y*s.w+x)*4+ch]) / 255
}

func clampIndex(v float32, n int) int {
	switch {
	case !(v >= 0):
		return 0
	case v >= float32(n-1):
		return n - 1
	default:
		return int(v)
	}
}

// Fragment runs the glitch program for the texture coordinate (x, y) and
// returns the unclamped output color. Alpha is always 1.
func Fragment(x, y float32, u Uniforms, s Sampler) (r, g, b float32) {
	t := u.Time

	noiseA := random(t*0.1, math32.Floor(y*30))
	noiseB := random(t*0.23, math32.Floor(y*70))
	major := step(0.99, noiseA)
	minor := step(0.98, noiseB)
	x += (major*0.5 + minor*0.2) * math32.Sin(t*5) * u.GlitchStrength

	if random(t*0.7, t*0.7) > 0.95 {
		y += random(t*0.5, t*0.5) * u.ShakeAmount
	}

	dx, dy := x-0.5, y-0.5
	dist := math32.Sqrt(dx*dx + dy*dy)
	aberr := (u.ChromaOffset + dist*u.RadialDistortion) * u.AberrationAmount
	r, _, _ = s.Sample(x+aberr, y)
	_, g, _ = s.Sample(x, y+u.ScanlineWarp)
	_, _, b = s.Sample(x-aberr, y)

	scan := clamp01(math32.Sin(y*800*u.ScanlineDensity) * u.ScanlineEffect)
	r += (u.ScanlineColor[0] - r) * scan
	g += (u.ScanlineColor[1] - g) * scan
	b += (u.ScanlineColor[2] - b) * scan

	grain := random(x*t*0.1, y*t*0.1) * u.NoiseAmount
	r, g, b = r+grain, g+grain, b+grain

	block := step(1-u.BlockGlitchChance, random(math32.Floor(x*10), math32.Floor(t*0.3)))
	r += block * 0.3
	b -= block * 0.2
	return r, g, b
}

// random is the classic sine hash: fract(sin(dot(st, (12.9898, 78.233))) * 43758.5453123).
func random(x, y float32) float32 {
	return fract(math32.Sin(x*12.9898+y*78.233) * 43758.5453123)
}

// fract stays in [0, 1) even when rounding of tiny negatives would yield 1.
func fract(v float32) float32 {
	f := v - math32.Floor(v)
	if f >= 1 {
		return 0
	}
	return f
}

func step(edge, x float32) float32 {
	if x < edge {
		return 0
	}
	return 1
}
