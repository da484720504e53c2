// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !cgo

package window

import "errors"

// ErrUnavailable is returned by Run in builds without cgo.
var ErrUnavailable = errors.New("window: window mode requires cgo (build with CGO_ENABLED=1)")

// Run reports that no window backend is available.
func Run(_ Config, _ StartFunc) error {
	return ErrUnavailable
}
