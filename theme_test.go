// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vhslogo

import (
	"testing"

	"github.com/gogpu/gg"
)

func TestParseTheme(t *testing.T) {
	tests := map[string]Theme{
		"dark":  ThemeDark,
		"light": ThemeLight,
		"":      ThemeLight,
		"Dark":  ThemeLight,
		"sepia": ThemeLight,
	}
	for in, want := range tests {
		if got := ParseTheme(in); got != want {
			t.Errorf("ParseTheme(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestPalettes(t *testing.T) {
	tests := []struct {
		theme                      Theme
		bg, stroke, fill, floorHex string
	}{
		{ThemeLight, "#e5e5e5", "#737373", "#e5e5e5", "#d4d4d4"},
		{ThemeDark, "#171717", "#a3a3a3", "#171717", "#404040"},
	}
	for _, tt := range tests {
		p := tt.theme.Palette()
		if p.Background != gg.Hex(tt.bg) || p.Stroke != gg.Hex(tt.stroke) ||
			p.Fill != gg.Hex(tt.fill) || p.FloorLine != gg.Hex(tt.floorHex) {
			t.Errorf("%v.Palette() = %+v", tt.theme, p)
		}
	}
	if Theme(5).Palette() != ThemeLight.Palette() {
		t.Error("unknown theme should fall back to the light palette")
	}
}

func TestThemeString(t *testing.T) {
	if ThemeLight.String() != "light" || ThemeDark.String() != "dark" {
		t.Errorf("Theme.String() = %q/%q", ThemeLight, ThemeDark)
	}
}

func TestLayoutFor(t *testing.T) {
	small := Layout{Scale: 1.1, PosX: -100, PosY: 80}
	medium := Layout{Scale: 1.8, PosX: -50, PosY: 5}
	large := Layout{Scale: 2.0, PosX: -50, PosY: 0}

	tests := []struct {
		w    int
		want Layout
	}{
		{0, small},
		{375, small},
		{639, small},
		{640, medium},
		{1023, medium},
		{1024, large},
		{2560, large},
	}
	for _, tt := range tests {
		if got := LayoutFor(tt.w); got != tt.want {
			t.Errorf("LayoutFor(%d) = %+v, want %+v", tt.w, got, tt.want)
		}
	}
}
