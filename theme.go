// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vhslogo

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/vhslogo/scene"
)

// Theme selects the palette.
type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

// String returns "light" or "dark".
func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// ParseTheme maps a theme attribute value to a Theme. Anything other than
// "dark" is light.
func ParseTheme(s string) Theme {
	if s == "dark" {
		return ThemeDark
	}
	return ThemeLight
}

// Palette holds the background, stroke, fill and floor line colors.
type Palette = scene.Palette

// Neutral grays the palettes are built from.
var (
	neutral200 = gg.Hex("#e5e5e5")
	neutral300 = gg.Hex("#d4d4d4")
	neutral400 = gg.Hex("#a3a3a3")
	neutral500 = gg.Hex("#737373")
	neutral700 = gg.Hex("#404040")
	neutral900 = gg.Hex("#171717")
)

var palettes = [...]Palette{
	ThemeLight: {
		Background: neutral200,
		Stroke:     neutral500,
		Fill:       neutral200,
		FloorLine:  neutral300,
	},
	ThemeDark: {
		Background: neutral900,
		Stroke:     neutral400,
		Fill:       neutral900,
		FloorLine:  neutral700,
	},
}

// Palette returns the colors of t.
func (t Theme) Palette() Palette {
	if t == ThemeDark {
		return palettes[ThemeDark]
	}
	return palettes[ThemeLight]
}
