// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vhslogo

import "errors"

var (
	// ErrNoContainer is returned by Start when the host has no container
	// element to attach to.
	ErrNoContainer = errors.New("vhslogo: container not found")

	// ErrClosed is returned when using a Renderer after Close.
	ErrClosed = errors.New("vhslogo: renderer closed")
)
