package main

import (
	"image"
	"image/color/palette"
	"image/gif"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/draw"
)

func writePNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// animation collects frames for an animated GIF.
type animation struct {
	gif   gif.GIF
	delay int
	scale float64
}

func newAnimation(fps, scale float64) *animation {
	if !(scale > 0) {
		scale = 1
	}
	return &animation{
		delay: max(int(math.Round(100/fps)), 1),
		scale: scale,
	}
}

func (a *animation) add(src *image.RGBA) {
	a.gif.Image = append(a.gif.Image, quantize(src, a.scale))
	a.gif.Delay = append(a.gif.Delay, a.delay)
}

func (a *animation) save(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &a.gif); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// quantize scales src and dithers it to the Plan 9 palette.
func quantize(src *image.RGBA, scale float64) *image.Paletted {
	sb := src.Bounds()
	w := max(int(math.Round(float64(sb.Dx())*scale)), 1)
	h := max(int(math.Round(float64(sb.Dy())*scale)), 1)
	rect := image.Rect(0, 0, w, h)

	var img image.Image = src
	if w != sb.Dx() || h != sb.Dy() {
		scaled := image.NewRGBA(rect)
		draw.ApproxBiLinear.Scale(scaled, rect, src, sb, draw.Src, nil)
		img = scaled
	}

	dst := image.NewPaletted(rect, palette.Plan9)
	draw.FloydSteinberg.Draw(dst, rect, img, img.Bounds().Min)
	return dst
}
