// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glitch

import "time"

// Params is the bundle of effect intensities handed to the compositor each
// frame. Every field is a shader uniform.
type Params struct {
	GlitchStrength    float32 // horizontal tearing displacement
	ShakeAmount       float32 // vertical jitter
	AberrationAmount  float32 // red/blue channel separation multiplier
	ChromaOffset      float32 // base channel offset before aberration
	RadialDistortion  float32 // extra offset per unit distance from center
	ScanlineDensity   float32
	ScanlineWarp      float32 // vertical offset of the green channel
	ScanlineEffect    float32 // scanline opacity
	NoiseAmount       float32
	BlockGlitchChance float32
}

// Baseline returns the non-animated parameter values applied before every
// regime evaluation.
func Baseline() Params {
	return Params{
		GlitchStrength:    0,
		ShakeAmount:       0,
		AberrationAmount:  2.0,
		ChromaOffset:      0,
		RadialDistortion:  0.01,
		ScanlineDensity:   1.0,
		ScanlineWarp:      0.002,
		ScanlineEffect:    0.01,
		NoiseAmount:       0,
		BlockGlitchChance: 0,
	}
}

// Settings holds the timing and intensity constants of the three regimes.
type Settings struct {
	// Baseline is re-applied at the start of every evaluation.
	Baseline Params

	// Startup decay.
	StartupDuration time.Duration
	StartupEase     float64 // progress exponent; below 1 front-loads the decay
	StartStrength   float32
	EndStrength     float32
	StartShake      float32
	EndShake        float32

	// Aberration pulses during startup.
	MaxPulses      int
	PulseSpacing   time.Duration // pulses need strictly more than this apart
	PulseMin       float32
	PulseSpan      float32 // pulse aberration is PulseMin + rand*PulseSpan
	RestAberration float32

	// Idle and spike.
	AmbientStrength float32
	SpikeInterval   time.Duration // measured from the start of the previous spike
	SpikeDuration   time.Duration
	SpikeStrength   float32
	SpikeShake      float32
	SpikeAberration float32
}

// DefaultSettings returns the tuned constants of the logo effect.
func DefaultSettings() Settings {
	return Settings{
		Baseline: Baseline(),

		StartupDuration: 700 * time.Millisecond,
		StartupEase:     0.8,
		StartStrength:   1.0,
		EndStrength:     0,
		StartShake:      0.12,
		EndShake:        0,

		MaxPulses:      3,
		PulseSpacing:   100 * time.Millisecond,
		PulseMin:       2.0,
		PulseSpan:      5.0,
		RestAberration: 2.0,

		AmbientStrength: 0,
		SpikeInterval:   15 * time.Second,
		SpikeDuration:   100 * time.Millisecond,
		SpikeStrength:   0.05,
		SpikeShake:      0.005,
		SpikeAberration: 0.8,
	}
}
