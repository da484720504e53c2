// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package svgpath

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Point
	}{
		{
			name: "move line horizontal vertical close",
			in:   "M0 0L10 0H20V10Z",
			want: []Point{{0, 0}, {10, 0}, {20, 0}, {20, 10}, {0, 0}},
		},
		{
			name: "comma separators and lowercase close",
			in:   "M1,2 L3,4 z",
			want: []Point{{1, 2}, {3, 4}, {1, 2}},
		},
		{
			name: "adjacent signed numbers",
			in:   "M10-5L-3-4",
			want: []Point{{10, -5}, {-3, -4}},
		},
		{
			name: "exponent",
			in:   "M1e2 2.5E-1",
			want: []Point{{100, 0.25}},
		},
		{
			name: "second move starts new subpath",
			in:   "M0 0H5ZM10 10V20Z",
			want: []Point{{0, 0}, {5, 0}, {0, 0}, {10, 10}, {10, 20}, {10, 10}},
		},
		{
			name: "curve commands are skipped",
			in:   "M0 0C1 1 2 2 3 3L4 4Q5 5 6 6A1 1 0 0 1 7 7L8 8",
			want: []Point{{0, 0}, {4, 4}, {8, 8}},
		},
		{
			name: "relative commands are skipped",
			in:   "M1 1l5 5h3v3L2 2",
			want: []Point{{1, 1}, {2, 2}},
		},
		{
			name: "missing operands skip command",
			in:   "M1 1L5H9",
			want: []Point{{1, 1}, {9, 1}},
		},
		{
			name: "garbage tokens ignored",
			in:   "12 M0 0 L# 3 4",
			want: []Point{{0, 0}, {3, 4}},
		},
		{
			name: "empty",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseLogoPath(t *testing.T) {
	pts := Parse(LogoPath)
	if len(pts) != 18 {
		t.Fatalf("len(Parse(LogoPath)) = %d, want 18", len(pts))
	}
	if pts[0] != pts[len(pts)-1] {
		t.Errorf("closed path should end at its start: first %v, last %v", pts[0], pts[len(pts)-1])
	}
	if want := (Point{0.00031157, 51.947}); pts[12] != want {
		t.Errorf("pts[12] = %v, want %v", pts[12], want)
	}
}

func TestParseStrict(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantOffset int
		wantErr    bool
	}{
		{"valid", "M0 0L10 0H20V10Z", 0, false},
		{"logo", LogoPath, 0, false},
		{"curve", "M0 0C1 1 2 2 3 3", 4, true},
		{"extra operand", "M0 0 1", 0, true},
		{"missing operand", "M0 0H", 4, true},
		{"malformed number", "M0 0L1 .", 7, true},
		{"leading number", "5 M0 0", 0, true},
		{"close with operand", "M0 0Z 3", 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStrict(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStrict(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("error %v does not wrap ErrSyntax", err)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("error %T is not *SyntaxError", err)
			}
			if se.Offset != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", se.Offset, tt.wantOffset)
			}
		})
	}
}

func TestParseStrictMatchesParse(t *testing.T) {
	in := "M0 0L10 0H20V10Z"
	strict, err := ParseStrict(in)
	if err != nil {
		t.Fatalf("ParseStrict() error = %v", err)
	}
	if lenient := Parse(in); !reflect.DeepEqual(strict, lenient) {
		t.Errorf("ParseStrict() = %v, Parse() = %v", strict, lenient)
	}
}
