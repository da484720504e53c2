// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package window shows a renderer in a desktop window. The window acts as
// the host document: its client area is the container, the mouse wheel
// scrolls a virtual page and the T key toggles the theme attribute.
package window

import (
	"image"
	"time"

	"github.com/gogpu/vhslogo/host"
)

// WheelStep is the scroll progress moved by one wheel notch.
const WheelStep = 0.02

// Config describes the window.
type Config struct {
	Title  string
	Width  int
	Height int

	// Theme is the initial theme attribute, "dark" or "light".
	Theme string

	// TPS is the update rate. Zero selects 60.
	TPS int
}

// Presenter is what the window drives once per tick. *vhslogo.Renderer
// satisfies it.
type Presenter interface {
	Frame() error
	Canvas() *image.RGBA
	Close() error
}

// StartFunc creates the presenter once the window host exists.
type StartFunc func(h host.Host) (Presenter, error)

// ScrollBy returns the scroll progress after a wheel movement of dy notches.
// Positive dy scrolls up, as reported by the wheel.
func ScrollBy(p, dy float64) float64 {
	return min(max(p-dy*WheelStep, 0), 1)
}

// ToggleTheme flips a theme attribute between dark and light.
func ToggleTheme(theme string) string {
	if theme == "dark" {
		return "light"
	}
	return "dark"
}

func (c Config) withDefaults() Config {
	if c.Title == "" {
		c.Title = "vhslogo"
	}
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 600
	}
	if c.TPS <= 0 {
		c.TPS = 60
	}
	return c
}

// tick is the fixed clock step of one update at tps.
func tick(tps int) time.Duration {
	return time.Second / time.Duration(max(tps, 1))
}
