// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build cgo

package window

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gogpu/vhslogo/host"
	"github.com/gogpu/vhslogo/host/memhost"
)

// Run opens the window and blocks until it is closed or Escape is pressed.
func Run(cfg Config, start StartFunc) error {
	cfg = cfg.withDefaults()

	doc := memhost.New(cfg.Width, cfg.Height)
	doc.SetAttribute(host.ThemeAttribute, cfg.Theme)
	doc.ScrollTo(0)

	p, err := start(doc)
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	defer func() { _ = p.Close() }()

	g := &game{doc: doc, p: p, theme: cfg.Theme, step: tick(cfg.TPS), w: cfg.Width, h: cfg.Height}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

type game struct {
	doc   *memhost.Document
	p     Presenter
	theme string
	step  time.Duration

	scroll float64
	w, h   int
	resize bool

	img *ebiten.Image
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.theme = ToggleTheme(g.theme)
		g.doc.SetAttribute(host.ThemeAttribute, g.theme)
	}
	if g.resize {
		g.resize = false
		g.doc.Resize(g.w, g.h)
		g.doc.ScrollTo(g.scroll)
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.scroll = ScrollBy(g.scroll, dy)
		g.doc.ScrollTo(g.scroll)
	}

	g.doc.Advance(g.step)
	return g.p.Frame()
}

func (g *game) Draw(screen *ebiten.Image) {
	c := g.p.Canvas()
	if c == nil {
		return
	}
	b := c.Bounds()
	if g.img == nil || g.img.Bounds().Dx() != b.Dx() || g.img.Bounds().Dy() != b.Dy() {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.img.WritePixels(c.Pix)
	screen.DrawImage(g.img, nil)
}

// Layout follows the window size. The resize is applied on the next Update
// so listeners run on the update goroutine.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := max(outsideWidth, 1), max(outsideHeight, 1)
	if w != g.w || h != g.h {
		g.w, g.h = w, h
		g.resize = true
	}
	return w, h
}
