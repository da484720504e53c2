// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build nogpu

package post

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
)

// gpuProgram is unavailable in nogpu builds; the compositor always shades
// on the CPU.
type gpuProgram struct{}

func openGPU([]byte) (*gpuProgram, error) {
	return nil, fmt.Errorf("%w: built with nogpu", ErrFallbackToCPU)
}

func (*gpuProgram) name() string { return "" }

func (*gpuProgram) run(*image.RGBA, *gg.Pixmap, Uniforms, bool) error {
	return ErrFallbackToCPU
}

func (*gpuProgram) close() {}
