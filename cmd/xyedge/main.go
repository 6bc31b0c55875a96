// Command xyedge lays out a diagram described by a YAML scene file and
// draws it as an image or an SVG document.
//
// Usage:
//
//	xyedge -scene diagram.yaml -out diagram.png [-scale 2]
//	xyedge -scene diagram.yaml -out diagram.svg
//
// Logging is configured with -log-level, -log-format and -log-file, or with
// the XYEDGE_LOG_* environment variables.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"honnef.co/go/xyedge/internal/logging"
	"honnef.co/go/xyedge/internal/render"
	"honnef.co/go/xyedge/internal/scene"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("xyedge", flag.ContinueOnError)
	var (
		scenePath = fs.String("scene", "", "scene `file` to lay out")
		outPath   = fs.String("out", "", "output `file`; the extension selects the format (svg, png, jpg, gif, tif, bmp)")
		scale     = fs.Float64("scale", 1, "pixels per scene unit for raster output")
		flatness  = fs.Float64("flatness", 0, "polyline spacing for raster strokes, in scene units")
		logOpts   logging.Options
	)
	fs.StringVar(&logOpts.Level, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&logOpts.Format, "log-format", "", "log format (console, json)")
	fs.StringVar(&logOpts.File, "log-file", "", "also log to a rotated JSON `file`")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *scenePath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "xyedge: -scene and -out are required")
		fs.Usage()
		return 2
	}

	log, closer, err := logging.New(os.Stderr, logging.FromEnv().Override(logOpts))
	if err != nil {
		fmt.Fprintln(os.Stderr, "xyedge:", err)
		return 2
	}
	defer closer.Close()

	s, err := scene.Load(*scenePath)
	if err != nil {
		log.Error("load scene", slog.Any("err", err))
		return 1
	}
	log.Debug("scene loaded", slog.String("path", *scenePath), slog.Int("nodes", len(s.Nodes)), slog.Int("edges", len(s.Edges)))

	d, err := s.Layout(render.MeasureLabel)
	if err != nil {
		log.Error("layout", slog.Any("err", err))
		return 1
	}
	logDiagram(log, d)

	if err := write(*outPath, d, render.Options{Scale: *scale, Flatness: *flatness}); err != nil {
		log.Error("write output", slog.String("path", *outPath), slog.Any("err", err))
		return 1
	}
	log.Info("wrote diagram", slog.String("path", *outPath), slog.Float64("width", d.Width), slog.Float64("height", d.Height))
	return 0
}

func logDiagram(log *slog.Logger, d scene.Diagram) {
	for _, e := range d.Edges {
		attrs := []any{slog.String("from", e.From), slog.String("to", e.To)}
		if e.Name != "" {
			attrs = append(attrs, slog.String("edge", e.Name))
		}
		if e.Skipped {
			log.Warn("edge skipped", append(attrs, slog.String("reason", e.Reason))...)
			continue
		}
		c := e.Shape.Curve()
		log.Debug("edge placed", append(attrs,
			slog.Float64("length", c.Length()),
			slog.Int("pieces", len(e.Shape.VisibleIntervals())),
		)...)
		for _, l := range e.Labels {
			if !l.Exact {
				log.Info("label placed at closest approach", append(attrs, slog.String("label", l.Text), slog.Float64("t", l.At))...)
			}
		}
	}
	if len(d.Crossings) > 0 {
		log.Debug("edge crossings", slog.Int("count", len(d.Crossings)))
	}
}

func write(path string, d scene.Diagram, opts render.Options) error {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := render.SVG(f, d); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return render.Save(path, render.Raster(d, opts))
}
