// Command vhslogo renders the animated logotype headless to PNG frames or an
// animated GIF, or live in a window.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/vhslogo"
	"github.com/gogpu/vhslogo/extrude"
	"github.com/gogpu/vhslogo/host"
	"github.com/gogpu/vhslogo/host/memhost"
	"github.com/gogpu/vhslogo/host/window"
)

type config struct {
	width, height int
	frames        int
	fps           float64
	theme         string
	scroll        float64
	seed          uint64
	shuffle       bool
	out           string
	gif           string
	scale         float64
	window        bool
	gpu           bool
	verbose       bool
}

func main() {
	var cfg config
	flag.IntVar(&cfg.width, "width", 800, "canvas width")
	flag.IntVar(&cfg.height, "height", 600, "canvas height")
	flag.IntVar(&cfg.frames, "frames", 60, "number of frames to render headless")
	flag.Float64Var(&cfg.fps, "fps", 30, "frames per second of the simulated clock")
	flag.StringVar(&cfg.theme, "theme", "dark", "theme attribute (dark or light)")
	flag.Float64Var(&cfg.scroll, "scroll", 0, "scroll progress in [0, 1]")
	flag.Uint64Var(&cfg.seed, "seed", 0, "random seed, 0 for a random run")
	flag.BoolVar(&cfg.shuffle, "shuffle", false, "reveal walls in a shuffled order")
	flag.StringVar(&cfg.out, "out", "", "directory for PNG frames")
	flag.StringVar(&cfg.gif, "gif", "", "animated GIF output file")
	flag.Float64Var(&cfg.scale, "scale", 0.5, "GIF scale factor")
	flag.BoolVar(&cfg.window, "window", false, "show the animation in a window")
	flag.BoolVar(&cfg.gpu, "gpu", true, "run the glitch pass on the GPU when an adapter is present")
	flag.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	flag.Parse()

	if cfg.verbose {
		vhslogo.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var err error
	if cfg.window {
		err = window.Run(window.Config{
			Title:  "vhslogo",
			Width:  cfg.width,
			Height: cfg.height,
			Theme:  cfg.theme,
		}, func(h host.Host) (window.Presenter, error) {
			r, err := vhslogo.Start(h, cfg.options()...)
			if err != nil {
				return nil, err
			}
			return r, nil
		})
	} else {
		err = run(cfg)
	}
	if err != nil {
		log.Fatalf("vhslogo: %v", err)
	}
}

func (c config) options() []vhslogo.Option {
	var opts []vhslogo.Option
	if c.seed != 0 {
		opts = append(opts, vhslogo.WithRand(rand.New(rand.NewPCG(c.seed, c.seed))))
	}
	if c.shuffle {
		opts = append(opts, vhslogo.WithWallOrder(extrude.OrderShuffled))
	}
	if c.gpu {
		opts = append(opts, vhslogo.WithGPU(true))
	}
	return opts
}

// run renders cfg.frames frames against an in-memory document whose clock
// advances by one frame interval per step.
func run(cfg config) error {
	if cfg.frames < 1 {
		return fmt.Errorf("frames must be positive, got %d", cfg.frames)
	}
	if !(cfg.fps > 0) {
		return fmt.Errorf("fps must be positive, got %v", cfg.fps)
	}

	doc := memhost.New(cfg.width, cfg.height)
	doc.SetAttribute(host.ThemeAttribute, cfg.theme)
	doc.ScrollTo(cfg.scroll)

	r, err := vhslogo.Start(doc, cfg.options()...)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	if cfg.out != "" {
		if err := os.MkdirAll(cfg.out, 0o755); err != nil {
			return err
		}
	}

	step := time.Duration(float64(time.Second) / cfg.fps)
	var anim *animation
	if cfg.gif != "" {
		anim = newAnimation(cfg.fps, cfg.scale)
	}

	for i := range cfg.frames {
		if i > 0 {
			doc.Advance(step)
		}
		if err := r.Frame(); err != nil {
			return err
		}
		if cfg.out != "" {
			name := filepath.Join(cfg.out, fmt.Sprintf("frame_%04d.png", i))
			if err := writePNG(name, r.Canvas()); err != nil {
				return err
			}
		}
		if anim != nil {
			anim.add(r.Canvas())
		}
	}

	if anim != nil {
		if err := anim.save(cfg.gif); err != nil {
			return err
		}
		log.Printf("Animation saved to %s (%d frames)", cfg.gif, cfg.frames)
	}
	if cfg.out != "" {
		log.Printf("Frames saved to %s (%dx%d)", cfg.out, cfg.width, cfg.height)
	}
	return nil
}
