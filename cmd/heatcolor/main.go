// Command heatcolor colors a heat map intensity tile with a gradient.
//
// Usage:
//
//	heatcolor -in density.png -out colored.png [-gradient ramp.json] [-gray] [-watch]
//
// The gradient file is JSON, either {"0.4": "blue", "1": "red"} or
// [[0.4, "blue"], [1, "red"]]. Without -gradient the default heat ramp is used.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/heatmap"
)

// errUsage reports bad flags; main exits with status 2 for it.
var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("heatcolor", flag.ContinueOnError)
	var (
		input    = fs.String("in", "", "input intensity image (PNG or JPEG)")
		output   = fs.String("out", "colored.png", "output PNG file")
		gradient = fs.String("gradient", "", "gradient JSON file (default: built-in heat ramp)")
		gray     = fs.Bool("gray", false, "use luminance instead of alpha as intensity")
		workers  = fs.Int("workers", 0, "colorize workers (0 = GOMAXPROCS)")
		watch    = fs.Bool("watch", false, "re-render whenever the gradient file changes")
		verbose  = fs.Bool("v", false, "verbose logging")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return errUsage
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	heatmap.SetLogger(logger)

	if *input == "" {
		fs.Usage()
		return errUsage
	}
	if *watch && *gradient == "" {
		fmt.Fprintln(os.Stderr, "heatcolor: -watch requires -gradient")
		return errUsage
	}

	src, err := loadImage(*input)
	if err != nil {
		logger.Error("load input", "path", *input, "err", err)
		return err
	}

	r := heatmap.NewRenderer(heatmap.WithWorkers(*workers))
	defer r.Close()

	job := &renderJob{
		renderer: r,
		tile:     heatmap.ImageTile{Image: src, Gray: *gray},
		gradient: *gradient,
		output:   *output,
		logger:   logger,
	}

	if err := job.run(); err != nil {
		logger.Error("render", "err", err)
		if !*watch {
			return err
		}
	}
	if !*watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := watchGradient(ctx, *gradient, job.run, logger); err != nil {
		logger.Error("watch", "path", *gradient, "err", err)
		return err
	}
	return nil
}

// renderJob renders one input tile to one output file.
type renderJob struct {
	renderer *heatmap.Renderer
	tile     heatmap.Tile
	gradient string
	output   string
	logger   *slog.Logger
}

func (j *renderJob) run() error {
	stops := heatmap.DefaultGradient()
	if j.gradient != "" {
		data, err := os.ReadFile(j.gradient)
		if err != nil {
			return err
		}
		if stops, err = heatmap.ParseGradient(data); err != nil {
			return err
		}
	}

	table, err := j.renderer.Gradient(stops)
	if err != nil {
		return err
	}

	pm, err := j.tile.Draw()
	if err != nil {
		return err
	}
	if err := j.renderer.Colorize(pm.Data(), table); err != nil {
		return err
	}
	if err := pm.SavePNG(j.output); err != nil {
		return err
	}

	j.logger.Info("tile colored", "out", j.output, "width", pm.Width(), "height", pm.Height(), "stops", len(stops))
	return nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	img, _, err := image.Decode(f)
	return img, err
}
