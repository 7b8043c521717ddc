package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli"

	"github.com/valerio/go-jazz/jazz/asset"
	"github.com/valerio/go-jazz/jazz/backend"
	"github.com/valerio/go-jazz/jazz/backend/headless"
	"github.com/valerio/go-jazz/jazz/backend/sdl2"
	"github.com/valerio/go-jazz/jazz/backend/terminal"
	"github.com/valerio/go-jazz/jazz/display"
	"github.com/valerio/go-jazz/jazz/effects"
	"github.com/valerio/go-jazz/jazz/resource"
	"github.com/valerio/go-jazz/jazz/timing"
	"github.com/valerio/go-jazz/jazz/video"
)

func depthOf(c *cli.Context) video.Depth {
	if c.Bool("vga6") {
		return video.Depth6
	}
	return video.Depth8
}

// loadPicture resolves the first argument on the search path and decodes it.
func loadPicture(c *cli.Context) (*asset.Picture, string, error) {
	name := c.Args().First()
	if name == "" {
		cli.ShowCommandHelp(c, c.Command.Name)
		return nil, "", errors.New("no picture name provided")
	}

	dirs := c.StringSlice("path")
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	loader := asset.NewLoader(resource.NewSearchPath(dirs...), depthOf(c))

	f, err := loader.Open(name)
	if err != nil {
		return nil, name, err
	}
	defer f.Close()

	pic, err := f.LoadPicture()
	if err != nil {
		return nil, name, err
	}
	return pic, name, nil
}

func runView(c *cli.Context) error {
	pic, name, err := loadPicture(c)
	if err != nil {
		return err
	}

	mode, err := display.ParseMode(c.String("mode"))
	if err != nil {
		return err
	}
	chain, err := effectChain(c.String("effect"))
	if err != nil {
		return err
	}

	frames := c.Int("frames")
	b, limiter, err := selectBackend(c, name, frames)
	if err != nil {
		return err
	}
	defer stopLimiter(limiter)

	quit := false
	disp, err := display.New(b, display.Config{
		Title:  fmt.Sprintf("jazz - %s", name),
		Width:  pic.Image.Width(),
		Height: pic.Image.Height(),
		Mode:   mode,
		OnQuit: func() { quit = true },
	})
	if err != nil {
		return err
	}
	defer disp.Close()

	if err := disp.SetPalette(&pic.Palette); err != nil {
		return err
	}
	drawCentered(disp.Screen(), pic.Image)

	slog.Info("Showing picture",
		"name", name,
		"width", pic.Image.Width(),
		"height", pic.Image.Height(),
		"effect", c.String("effect"),
		"frames", frames)

	limiter.Reset()
	shown := 0
	for !quit && (frames <= 0 || shown < frames) {
		mspf := limiter.WaitForNextFrame()
		if err := disp.Flip(mspf, chain, false); err != nil {
			return err
		}
		shown++
	}

	slog.Info("Viewer finished", "frames", shown)
	return nil
}

// selectBackend builds the backend named by --backend. Headless runs use a
// limiter that never sleeps.
func selectBackend(c *cli.Context, name string, frames int) (backend.Backend, timing.Limiter, error) {
	fps := c.Int("fps")

	switch c.String("backend") {
	case "headless":
		if frames <= 0 {
			return nil, nil, errors.New("headless mode requires --frames option with a positive value")
		}
		snapshots, err := headless.CreateSnapshotConfig(c.Int("snapshot-interval"), c.String("snapshot-dir"), name)
		if err != nil {
			return nil, nil, err
		}
		return headless.New(frames, snapshots), timing.NewNoOpLimiter(fps), nil
	case "terminal":
		return terminal.New(), timing.NewAdaptiveLimiter(fps), nil
	case "sdl2":
		return sdl2.New(), timing.NewTickerLimiter(fps), nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", c.String("backend"))
}

// stopLimiter releases limiters that hold a running ticker.
func stopLimiter(l timing.Limiter) {
	if s, ok := l.(interface{ Stop() }); ok {
		s.Stop()
	}
}

func effectChain(name string) (*effects.Chain, error) {
	switch name {
	case "", "none":
		return nil, nil
	case "rotate":
		// index 0 stays put so the background keeps its color
		return effects.NewChain(effects.NewRotate(1, video.PaletteSize-1, 20)), nil
	case "fade":
		return effects.NewChain(effects.NewFade(effects.FadeIn, 0, video.PaletteSize, 2000)), nil
	case "hue":
		return effects.NewChain(effects.NewHueShift(0, video.PaletteSize, 0, 90)), nil
	}
	return nil, fmt.Errorf("unknown effect %q", name)
}

// drawCentered copies src into the middle of dst, clipping whatever does not fit.
func drawCentered(dst, src *video.IndexedImage) {
	offX := (dst.Width() - src.Width()) / 2
	offY := (dst.Height() - src.Height()) / 2
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			dst.Set(x+offX, y+offY, src.At(x, y))
		}
	}
}
