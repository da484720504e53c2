// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package svgpath parses the polygonal subset of SVG path data into an
// ordered point list.
//
// Only absolute M (move), L (line), H (horizontal line), V (vertical line)
// and Z/z (close) are understood. Every other command, including curves and
// arcs, is skipped together with its operands. Parse never fails: malformed
// input yields whatever points could be extracted. ParseStrict reports the
// first problem instead.
//
// Points are emitted in traversal order and are never deduplicated, so a
// closed subpath ends with a copy of its start point.
package svgpath

import (
	"errors"
	"fmt"
	"strconv"
)

// LogoPath is the outline of the default logotype.
const LogoPath = "M233.649 107.76H106.207L106.199 125.001H155.768V155.843H233.654L256 200H178.117" +
	"L155.772 155.845H103.845V200H0L0.00031157 51.947H103.845V0H233.649V107.76Z"

// ErrSyntax is returned (wrapped in a *SyntaxError) by ParseStrict.
var ErrSyntax = errors.New("svgpath: syntax error")

// Point is a position in path-local units.
type Point struct {
	X, Y float64
}

// SyntaxError describes the first problem found by ParseStrict.
type SyntaxError struct {
	// Offset is the byte offset of the offending token.
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("svgpath: %s at offset %d", e.Msg, e.Offset)
}

// Unwrap allows errors.Is(err, ErrSyntax).
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// Parse converts path data into points. Unsupported commands and malformed
// numbers are ignored.
func Parse(d string) []Point {
	pts, _ := parse(d, false)
	return pts
}

// ParseStrict is like Parse but returns a *SyntaxError for unsupported
// commands, stray or malformed numbers, and wrong operand counts.
func ParseStrict(d string) ([]Point, error) {
	return parse(d, true)
}

func parse(d string, strict bool) ([]Point, error) {
	var (
		pts        []Point
		cur, start Point
		args       []float64
	)
	sc := scanner{s: d}

	for {
		sc.skipSeparators()
		if sc.eof() {
			return pts, nil
		}

		off := sc.pos
		cmd := sc.s[sc.pos]
		if !isLetter(cmd) {
			// Operands with no command in front of them.
			if strict {
				return pts, &SyntaxError{Offset: off, Msg: "expected command"}
			}
			sc.skipToken()
			continue
		}
		sc.pos++

		args = args[:0]
		malformed := -1
		for {
			sc.skipSeparators()
			if sc.eof() || isLetter(sc.s[sc.pos]) {
				break
			}
			v, ok := sc.number()
			if !ok {
				if malformed < 0 {
					malformed = sc.pos
				}
				sc.skipToken()
				continue
			}
			args = append(args, v)
		}

		if strict && malformed >= 0 {
			return pts, &SyntaxError{Offset: malformed, Msg: "malformed number"}
		}

		want, supported := operandCount(cmd)
		if !supported {
			if strict {
				return pts, &SyntaxError{Offset: off, Msg: fmt.Sprintf("unsupported command %q", cmd)}
			}
			continue
		}
		if len(args) < want || (strict && len(args) != want) {
			if strict {
				return pts, &SyntaxError{
					Offset: off,
					Msg:    fmt.Sprintf("command %q takes %d operands, got %d", cmd, want, len(args)),
				}
			}
			continue
		}

		switch cmd {
		case 'M':
			cur = Point{X: args[0], Y: args[1]}
			start = cur
		case 'L':
			cur = Point{X: args[0], Y: args[1]}
		case 'H':
			cur.X = args[0]
		case 'V':
			cur.Y = args[0]
		case 'Z', 'z':
			cur = start
		}
		pts = append(pts, cur)
	}
}

// operandCount reports how many numbers a supported command consumes.
func operandCount(cmd byte) (int, bool) {
	switch cmd {
	case 'M', 'L':
		return 2, true
	case 'H', 'V':
		return 1, true
	case 'Z', 'z':
		return 0, true
	default:
		return 0, false
	}
}

type scanner struct {
	s   string
	pos int
}

func (sc *scanner) eof() bool {
	return sc.pos >= len(sc.s)
}

func (sc *scanner) skipSeparators() {
	for sc.pos < len(sc.s) && isSeparator(sc.s[sc.pos]) {
		sc.pos++
	}
}

// skipToken advances past one unusable token: everything up to the next
// separator or command letter, and at least one byte.
func (sc *scanner) skipToken() {
	sc.pos++
	for sc.pos < len(sc.s) && !isSeparator(sc.s[sc.pos]) && !isLetter(sc.s[sc.pos]) {
		sc.pos++
	}
}

// number scans one float at the current position. A sign or a second
// decimal point starts a new number, so "10-5" and "1.5.5" each yield two.
func (sc *scanner) number() (float64, bool) {
	s := sc.s
	i := sc.pos
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}

	v, err := strconv.ParseFloat(s[sc.pos:i], 64)
	if err != nil {
		return 0, false
	}
	sc.pos = i
	return v, true
}

func isSeparator(c byte) bool {
	return c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isLetter reports command letters. 'e' and 'E' only occur inside numbers,
// which the number scanner consumes first.
func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
