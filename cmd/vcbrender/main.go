package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/GriffinCanCode/vcbot/internal/domain/blueprint"
	"github.com/GriffinCanCode/vcbot/internal/domain/icons"
	"github.com/GriffinCanCode/vcbot/internal/domain/render"
	"github.com/GriffinCanCode/vcbot/internal/domain/stats"
	"github.com/GriffinCanCode/vcbot/internal/infrastructure/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	cfg := config.LoadOrDefault()

	fs := flag.NewFlagSet("vcbrender", flag.ContinueOnError)
	statsOnly := fs.Bool("stats", false, "Print component statistics instead of rendering")
	out := fs.String("o", "", "Output PNG path (stdout when empty)")
	iconDir := fs.String("icons", cfg.Render.IconDir, "Directory of LogicIcons-*.png glyphs (builtin atlas when empty)")
	zoom := fs.Int("zoom", 0, "Explicit zoom factor (automatic when 0)")
	maxPixels := fs.Int64("max-pixels", cfg.Render.MaxCanvasPixels, "Largest canvas, in pixels, the renderer will allocate")
	if err := fs.Parse(args); err != nil {
		return err
	}

	text, err := readInput(fs.Arg(0), stdin)
	if err != nil {
		return err
	}

	bp, err := blueprint.Decode(text)
	if err != nil {
		return err
	}

	if *statsOnly {
		_, err := fmt.Fprintln(stdout, stats.Summarize(bp).String())
		return err
	}

	atlas, err := icons.LoadDir(*iconDir)
	if err != nil {
		return err
	}
	r := render.New(atlas, render.Options{
		TargetWidth:   cfg.Render.TargetWidth,
		MaxZoom:       cfg.Render.MaxZoom,
		IconThreshold: cfg.Render.IconThreshold,
	})

	z := r.Zoom(bp.Width)
	if *zoom > 0 {
		z = *zoom
	}
	if px := render.CanvasPixels(bp.Width, bp.Height, z); px > uint64(*maxPixels) {
		return fmt.Errorf("%dx%d at zoom %d is %d pixels, limit %d", bp.Width, bp.Height, z, px, *maxPixels)
	}
	img, _ := r.ImageAt(bp, z)

	var buf bytes.Buffer
	if err := render.Encode(&buf, img); err != nil {
		return err
	}
	if *out == "" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	return os.WriteFile(*out, buf.Bytes(), 0o644)
}

func readInput(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read blueprint: %w", err)
	}
	return string(data), nil
}
