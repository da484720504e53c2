// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package post

import (
	"encoding/binary"
	"image"
)

// packPixels packs RGBA8 bytes into little-endian u32 words, red in the low
// byte, as the compute program reads them.
func packPixels(data []uint8, pixelCount int) []byte {
	out := make([]byte, pixelCount*4)
	for i := 0; i < pixelCount; i++ {
		s := data[i*4 : i*4+4 : i*4+4]
		packed := uint32(s[0]) | uint32(s[1])<<8 | uint32(s[2])<<16 | uint32(s[3])<<24
		binary.LittleEndian.PutUint32(out[i*4:], packed)
	}
	return out
}

// unpackRows copies tightly packed w x h words into dst, honoring its stride
// and origin. The words are already in dst's channel order.
func unpackRows(packed []byte, dst *image.RGBA, w, h int) {
	b := dst.Bounds()
	for y := 0; y < h; y++ {
		off := dst.PixOffset(b.Min.X, b.Min.Y+y)
		row := dst.Pix[off : off+w*4]
		for x := 0; x < w; x++ {
			val := binary.LittleEndian.Uint32(packed[(y*w+x)*4:])
			px := row[x*4 : x*4+4 : x*4+4]
			px[0] = uint8(val & 0xFF)         //nolint:gosec // masked to 8 bits
			px[1] = uint8((val >> 8) & 0xFF)  //nolint:gosec // masked to 8 bits
			px[2] = uint8((val >> 16) & 0xFF) //nolint:gosec // masked to 8 bits
			px[3] = uint8((val >> 24) & 0xFF) //nolint:gosec // masked to 8 bits
		}
	}
}

// spirvWords converts SPIR-V bytes to little-endian 32-bit words.
func spirvWords(spirv []byte) []uint32 {
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirv[i*4:])
	}
	return words
}
