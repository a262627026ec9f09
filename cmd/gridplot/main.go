// Command gridplot renders charts described by YAML files.
//
// Usage:
//
//	gridplot [-format svg|png|layout] [-o dir] [-v] chart.yaml...
//
// Every chart is written next to its description, or into dir, with the
// extension of the format. The layout format writes an SVG outline of the
// component boxes.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/vdobler/gridplot/chart"
	"github.com/vdobler/gridplot/component"
)

var extensions = map[string]string{
	"svg":    ".svg",
	"png":    ".png",
	"layout": ".layout.svg",
}

func main() {
	var (
		format  = flag.String("format", "svg", "output format: svg, png or layout")
		outDir  = flag.String("o", "", "output directory (default: next to the input)")
		verbose = flag.Bool("v", false, "log layout and render passes")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] chart.yaml...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if _, ok := extensions[*format]; !ok || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, path := range flag.Args() {
		path := path
		g.Go(func() error {
			out, err := renderFile(path, *format, *outDir, logger.With("chart", path))
			if err != nil {
				return err
			}
			logger.Info("wrote chart", "file", out)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("rendering failed", "err", err)
		os.Exit(1)
	}
}

// renderFile renders the chart described in path and returns the name of
// the written file.
func renderFile(path, format, outDir string, logger *slog.Logger) (string, error) {
	cfg, err := chart.LoadConfig(path)
	if err != nil {
		return "", err
	}
	root, err := cfg.Build(component.WithLogger(logger))
	if err != nil {
		return "", errors.Wrapf(err, "%s", path)
	}
	defer root.Destroy()

	dir := outDir
	if dir == "" {
		dir = filepath.Dir(path)
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	out := filepath.Join(dir, base+extensions[format])

	f, err := os.Create(out)
	if err != nil {
		return "", err
	}
	switch format {
	case "svg":
		err = root.WriteSVG(f)
	case "png":
		err = root.WritePNG(f)
	case "layout":
		root.WriteLayout(f)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return out, errors.Wrapf(err, "%s", out)
}
