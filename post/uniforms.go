// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package post

import (
	"encoding/binary"
	"math"

	"github.com/chewxy/math32"

	"github.com/gogpu/vhslogo/glitch"
)

// TimeStep is the virtual time advanced per frame.
const TimeStep = 0.05

// UniformSize is the byte size of the GlitchUniforms block in glitch.wgsl.
const UniformSize = 64

// Uniforms are the inputs of the glitch program for one frame. Field order
// matches the GlitchUniforms block in glitch.wgsl.
type Uniforms struct {
	Time              float32
	GlitchStrength    float32
	ShakeAmount       float32
	AberrationAmount  float32
	ChromaOffset      float32
	RadialDistortion  float32
	ScanlineDensity   float32
	ScanlineWarp      float32
	ScanlineEffect    float32
	NoiseAmount       float32
	BlockGlitchChance float32
	ScanlineColor     [3]float32
}

// UniformsFrom builds the uniforms for frame from the glitch parameters. Time
// is the frame counter times TimeStep, so it never depends on wall-clock
// time. The scanline color is white.
func UniformsFrom(p glitch.Params, frame int64) Uniforms {
	if frame < 0 {
		frame = 0
	}
	return Uniforms{
		Time:              float32(float64(frame) * TimeStep),
		GlitchStrength:    p.GlitchStrength,
		ShakeAmount:       p.ShakeAmount,
		AberrationAmount:  p.AberrationAmount,
		ChromaOffset:      p.ChromaOffset,
		RadialDistortion:  p.RadialDistortion,
		ScanlineDensity:   p.ScanlineDensity,
		ScanlineWarp:      p.ScanlineWarp,
		ScanlineEffect:    p.ScanlineEffect,
		NoiseAmount:       p.NoiseAmount,
		BlockGlitchChance: p.BlockGlitchChance,
		ScanlineColor:     [3]float32{1, 1, 1},
	}
}

// Clamped returns u with non-finite values zeroed, the block chance and
// scanline color limited to [0, 1] and the time made non-negative.
func (u Uniforms) Clamped() Uniforms {
	fields := []*float32{
		&u.Time, &u.GlitchStrength, &u.ShakeAmount, &u.AberrationAmount,
		&u.ChromaOffset, &u.RadialDistortion, &u.ScanlineDensity,
		&u.ScanlineWarp, &u.ScanlineEffect, &u.NoiseAmount,
	}
	for _, f := range fields {
		*f = finite(*f)
	}
	if u.Time < 0 {
		u.Time = 0
	}
	u.BlockGlitchChance = clamp01(finite(u.BlockGlitchChance))
	for i := range u.ScanlineColor {
		u.ScanlineColor[i] = clamp01(finite(u.ScanlineColor[i]))
	}
	return u
}

// Bytes encodes u in the uniform buffer layout of glitch.wgsl: eleven f32
// scalars, one pad word, then the scanline color as a vec4.
func (u Uniforms) Bytes() []byte {
	words := [UniformSize / 4]float32{
		u.Time, u.GlitchStrength, u.ShakeAmount, u.AberrationAmount,
		u.ChromaOffset, u.RadialDistortion, u.ScanlineDensity, u.ScanlineWarp,
		u.ScanlineEffect, u.NoiseAmount, u.BlockGlitchChance, 0,
		u.ScanlineColor[0], u.ScanlineColor[1], u.ScanlineColor[2], 1,
	}
	buf := make([]byte, UniformSize)
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(w))
	}
	return buf
}

func finite(v float32) float32 {
	if math32.IsNaN(v) || math32.IsInf(v, 0) {
		return 0
	}
	return v
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
