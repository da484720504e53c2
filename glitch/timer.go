// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package glitch sequences the intensity of the VHS post-process.
//
// A Timer moves through three regimes: a short startup decay from a heavy
// glitch to rest, a long ambient idle, and brief periodic spikes. Each call
// to Advance re-applies the baseline parameters, evaluates the current
// regime and returns the resulting Params.
//
// Time is whatever monotonic-ish clock the caller uses, expressed as a
// time.Duration since an arbitrary origin. A clock that steps backwards is
// treated as standing still.
package glitch

import (
	"math"
	"math/rand/v2"
	"time"
)

// Regime identifies the active timing phase.
type Regime int

const (
	RegimeStartupDecay Regime = iota
	RegimeIdle
	RegimeSpike
)

// String returns the regime name.
func (r Regime) String() string {
	switch r {
	case RegimeStartupDecay:
		return "StartupDecay"
	case RegimeIdle:
		return "Idle"
	case RegimeSpike:
		return "Spike"
	default:
		return "Regime(?)"
	}
}

// Phase is the timer state as a tagged union: one of StartupDecay, Idle or
// Spike.
type Phase interface {
	Regime() Regime
	isPhase()
}

// StartupDecay is the phase right after start.
type StartupDecay struct {
	Elapsed time.Duration
	Pulses  int
}

// Idle is the ambient phase between spikes.
type Idle struct {
	SinceLastSpike time.Duration
}

// Spike is a short burst of elevated glitching.
type Spike struct {
	Elapsed time.Duration
}

func (StartupDecay) Regime() Regime { return RegimeStartupDecay }
func (Idle) Regime() Regime         { return RegimeIdle }
func (Spike) Regime() Regime        { return RegimeSpike }

func (StartupDecay) isPhase() {}
func (Idle) isPhase()         {}
func (Spike) isPhase()        {}

// Rand supplies pulse magnitudes. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// Timer is the glitch state machine. It is not safe for concurrent use; it
// belongs to the single frame callback.
type Timer struct {
	s   Settings
	rnd Rand

	regime  Regime
	entered time.Duration // entry time of the current regime
	now     time.Duration // latest time seen by Advance

	pulses    int
	pulsed    bool
	lastPulse time.Duration
	lastSpike time.Duration

	params Params
}

// NewTimer returns a timer in StartupDecay entered at start. A nil r uses
// the unseeded global source.
func NewTimer(start time.Duration, s Settings, r Rand) *Timer {
	if r == nil {
		r = globalRand{}
	}
	return &Timer{
		s:         s,
		rnd:       r,
		regime:    RegimeStartupDecay,
		entered:   start,
		now:       start,
		lastSpike: start,
		params:    s.Baseline,
	}
}

// Advance evaluates the state machine at now and returns this frame's
// parameters.
func (t *Timer) Advance(now time.Duration) Params {
	if now < t.now {
		now = t.now
	}
	t.now = now

	p := t.s.Baseline
	switch t.regime {
	case RegimeStartupDecay:
		t.startup(now, &p)
	case RegimeIdle:
		if since(t.lastSpike, now) >= t.s.SpikeInterval {
			t.regime = RegimeSpike
			t.entered = now
			t.lastSpike = now
			t.spike(now, &p)
		} else {
			p.GlitchStrength = t.s.AmbientStrength
		}
	case RegimeSpike:
		t.spike(now, &p)
	}

	t.params = p
	return p
}

func (t *Timer) startup(now time.Duration, p *Params) {
	s := &t.s
	progress := 1.0
	if s.StartupDuration > 0 {
		progress = clamp01(float64(since(t.entered, now)) / float64(s.StartupDuration))
	}
	eased := float32(math.Pow(progress, s.StartupEase))

	p.GlitchStrength = lerp(s.StartStrength, s.EndStrength, eased)
	p.ShakeAmount = lerp(s.StartShake, s.EndShake, eased)

	switch {
	case t.pulses < s.MaxPulses && (!t.pulsed || since(t.lastPulse, now) > s.PulseSpacing):
		p.AberrationAmount = t.pulse()
		t.pulses++
		t.pulsed = true
		t.lastPulse = now
	case t.pulses >= s.MaxPulses:
		p.AberrationAmount = s.RestAberration
	}

	if progress >= 1 {
		end := t.entered + s.StartupDuration
		t.regime = RegimeIdle
		t.entered = end
		t.lastSpike = end
		t.rest(p)
	}
}

// pulse draws an aberration magnitude in [PulseMin, PulseMin+PulseSpan).
// The sum is taken in float64 since rounding to float32 can reach the upper
// bound for draws just below 1.
func (t *Timer) pulse() float32 {
	lo, span := t.s.PulseMin, t.s.PulseSpan
	v := float32(float64(lo) + t.rnd.Float64()*float64(span))
	if hi := lo + span; span > 0 && v >= hi {
		v = math.Nextafter32(hi, lo)
	}
	return v
}

func (t *Timer) spike(now time.Duration, p *Params) {
	if since(t.entered, now) >= t.s.SpikeDuration {
		t.regime = RegimeIdle
		t.entered = now
		t.rest(p)
		return
	}
	p.GlitchStrength = t.s.SpikeStrength
	p.ShakeAmount = t.s.SpikeShake
	p.AberrationAmount = t.s.SpikeAberration
}

// rest snaps the animated fields to their idle values.
func (t *Timer) rest(p *Params) {
	p.GlitchStrength = t.s.AmbientStrength
	p.ShakeAmount = 0
	p.AberrationAmount = t.s.RestAberration
}

// Regime returns the regime after the last Advance.
func (t *Timer) Regime() Regime {
	return t.regime
}

// Phase returns the current state with its elapsed times measured at the
// last Advance.
func (t *Timer) Phase() Phase {
	switch t.regime {
	case RegimeIdle:
		return Idle{SinceLastSpike: since(t.lastSpike, t.now)}
	case RegimeSpike:
		return Spike{Elapsed: since(t.entered, t.now)}
	default:
		return StartupDecay{Elapsed: since(t.entered, t.now), Pulses: t.pulses}
	}
}

// Params returns the parameters computed by the last Advance.
func (t *Timer) Params() Params {
	return t.params
}

// Pulses returns how many aberration pulses fired during startup.
func (t *Timer) Pulses() int {
	return t.pulses
}

// LastSpike returns the time the most recent spike started, or the end of
// startup if none has fired yet.
func (t *Timer) LastSpike() time.Duration {
	return t.lastSpike
}

// since returns now-from, never negative.
func since(from, now time.Duration) time.Duration {
	if now <= from {
		return 0
	}
	return now - from
}

func lerp(a, b, t float32) float32 {
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
