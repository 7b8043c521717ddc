package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli"
)

func main() {
	app := newApp()

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running jazz", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "jazz"
	app.Description = "Viewer and packer for palette-indexed game pictures"
	app.Usage = "jazz [options] <command> <picture>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug logging",
		},
	}
	app.Before = setupLogging
	app.Commands = []cli.Command{
		{
			Name:      "view",
			Usage:     "Show a picture with optional palette effects",
			ArgsUsage: "<picture>",
			Flags: []cli.Flag{
				pathFlag,
				depthFlag,
				cli.StringFlag{
					Name:  "backend",
					Usage: "Output backend: headless, terminal or sdl2",
					Value: "terminal",
				},
				cli.StringFlag{
					Name:  "mode",
					Usage: "Display mode: emulated, direct or fixed",
					Value: "emulated",
				},
				cli.IntFlag{
					Name:  "frames",
					Usage: "Number of frames to show (required for headless, 0 = until quit)",
					Value: 0,
				},
				cli.IntFlag{
					Name:  "fps",
					Usage: "Target frame rate",
					Value: 70,
				},
				cli.StringFlag{
					Name:  "effect",
					Usage: "Palette effect: rotate, fade, hue or none",
					Value: "none",
				},
				cli.IntFlag{
					Name:  "snapshot-interval",
					Usage: "Save frame snapshots every N frames in headless mode (0 = disabled)",
					Value: 0,
				},
				cli.StringFlag{
					Name:  "snapshot-dir",
					Usage: "Directory to save frame snapshots (default: temp directory)",
				},
			},
			Action: runView,
		},
		{
			Name:      "pack",
			Usage:     "Convert a PNG, GIF or JPEG image into a picture file",
			ArgsUsage: "<image>",
			Flags: []cli.Flag{
				depthFlag,
				cli.StringFlag{
					Name:  "out",
					Usage: "Path of the picture file to write",
				},
			},
			Action: runPack,
		},
		{
			Name:      "info",
			Usage:     "Print the size and palette of a picture",
			ArgsUsage: "<picture>",
			Flags:     []cli.Flag{pathFlag, depthFlag},
			Action:    runInfo,
		},
	}

	return app
}

var (
	pathFlag = cli.StringSliceFlag{
		Name:   "path",
		Usage:  "Directory to search for pictures, may be repeated",
		EnvVar: "JAZZ_PATH",
	}
	depthFlag = cli.BoolFlag{
		Name:  "vga6",
		Usage: "Palette channels are stored as 6-bit VGA values",
	}
)

func setupLogging(c *cli.Context) error {
	level := slog.LevelInfo
	if c.GlobalBool("verbose") {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
	return nil
}
