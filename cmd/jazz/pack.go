package main

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/valerio/go-jazz/jazz/asset"
	"github.com/valerio/go-jazz/jazz/video"
)

func runPack(c *cli.Context) error {
	in := c.Args().First()
	out := c.String("out")
	if in == "" || out == "" {
		cli.ShowCommandHelp(c, c.Command.Name)
		return errors.New("pack needs an input image and --out")
	}

	src, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer src.Close()

	m, format, err := image.Decode(src)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", in, err)
	}
	paletted := asset.Quantize(m)

	dst, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create picture file: %w", err)
	}
	if err := asset.EncodePicture(dst, paletted, depthOf(c)); err != nil {
		dst.Close()
		return err
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("failed to write picture file: %w", err)
	}

	slog.Info("Packed picture",
		"input", in,
		"format", format,
		"output", out,
		"width", paletted.Rect.Dx(),
		"height", paletted.Rect.Dy(),
		"colors", len(paletted.Palette))
	return nil
}

func runInfo(c *cli.Context) error {
	pic, name, err := loadPicture(c)
	if err != nil {
		return err
	}

	used := make(map[uint8]bool)
	for _, index := range pic.Image.Pix() {
		used[index] = true
	}
	distinct := make(map[video.Color]bool)
	for index := range used {
		distinct[pic.Palette[index]] = true
	}

	w := c.App.Writer
	fmt.Fprintf(w, "%s: %dx%d\n", name, pic.Image.Width(), pic.Image.Height())
	fmt.Fprintf(w, "indices used: %d, distinct colors: %d\n", len(used), len(distinct))
	for index := 0; index < video.PaletteSize; index++ {
		if !used[uint8(index)] {
			continue
		}
		col := pic.Palette[index]
		fmt.Fprintf(w, "  %3d  #%02x%02x%02x\n", index, col.R, col.G, col.B)
	}
	return nil
}
