// seehuhn.de/go/trackpath - draw recorded tracks as map paths
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command trackrender draws a recorded GPX track onto a blank map canvas.
//
// Usage:
//
//	trackrender [-config file.yml] [-o out.png] [-format png|pdf] [-dump] [-v] track.gpx
//
// The samples are added to the map in batches, the way a track which is
// still being recorded would be drawn.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"
	"os"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/trackpath"
	"seehuhn.de/go/trackpath/gpx"
	"seehuhn.de/go/trackpath/internal/config"
	"seehuhn.de/go/trackpath/stroke"
)

func main() {
	configFile := flag.String("config", "", "YAML configuration file")
	out := flag.String("o", "", "output file (default: track.png or track.pdf)")
	format := flag.String("format", "", "output format png|pdf (overrides config)")
	dump := flag.Bool("dump", false, "print the path operations to stdout")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	trackpath.SetLogger(logger)

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: trackrender [flags] track.gpx")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			logger.Error("cannot load configuration", "error", err)
			os.Exit(1)
		}
	}
	if *format != "" {
		cfg.Output.Format = *format
		if err := cfg.Validate(); err != nil {
			logger.Error("invalid output format", "format", *format, "error", err)
			os.Exit(2)
		}
	}
	if *out == "" {
		*out = "track." + cfg.Output.Format
	}

	if err := run(logger, cfg, flag.Arg(0), *out, *dump); err != nil {
		logger.Error("rendering failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, cfg *config.Config, in, out string, dump bool) error {
	samples, err := gpx.ReadFile(in)
	if err != nil {
		return err
	}
	view := makeView(cfg, samples)
	logger.Info("track loaded",
		"file", in,
		"samples", len(samples),
		"zoom", view.Zoom,
		"lat", view.Center.Lat,
		"lon", view.Center.Lon)

	if dump {
		rec := &trackpath.Recorder{}
		trackpath.UpdatePath(view, view.Viewport(), 0, false, samples, rec)
		for _, op := range rec.Ops {
			fmt.Println(op)
		}
	}

	switch cfg.Output.Format {
	case "pdf":
		err = writePDF(cfg, view, samples, out)
	default:
		err = writePNG(logger, cfg, view, samples, out)
	}
	if err != nil {
		return err
	}
	logger.Info("output written", "file", out)
	return nil
}

// makeView returns the configured view, or a view fitted to the track.
func makeView(cfg *config.Config, samples []trackpath.Sample) trackpath.MapView {
	v := trackpath.FitView(samples, cfg.View.Width, cfg.View.Height, cfg.View.Padding)
	if cfg.View.Zoom != nil {
		v.Zoom = *cfg.View.Zoom
	}
	if c := cfg.View.Center; c != nil {
		v.Center = trackpath.Coord{Lat: c.Lat, Lon: c.Lon}
	}
	return v
}

func strokeStyle(cfg *config.Config) stroke.Style {
	s := stroke.DefaultStyle(cfg.Stroke.Width)
	s.Cap = cfg.Stroke.LineCap()
	s.Join = cfg.Stroke.LineJoin()
	s.MiterLimit = cfg.Stroke.MiterLimit
	return s
}

func writePNG(logger *slog.Logger, cfg *config.Config, view trackpath.MapView, samples []trackpath.Sample, out string) (err error) {
	fg, err := config.ParseColor(cfg.Stroke.Color)
	if err != nil {
		return err
	}

	overlay := trackpath.NewOverlay(view)
	batch := cfg.BatchSize
	if batch == 0 {
		batch = len(samples)
	}
	redraws := 0
	for i := 0; i < len(samples); i += batch {
		overlay.Add(samples[i:min(i+batch, len(samples))]...)
		if overlay.Update() {
			redraws++
		}
	}
	logger.Debug("track drawn", "batches", (len(samples)+batch-1)/batch, "redraws", redraws)

	img := image.NewNRGBA(image.Rect(0, 0, view.Width, view.Height))
	if cfg.Output.Background != "" {
		bg, err := config.ParseColor(cfg.Output.Background)
		if err != nil {
			return err
		}
		draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}
	strokeStyle(cfg).Draw(img, overlay.Path(), image.NewUniform(fg))

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}

func writePDF(cfg *config.Config, view trackpath.MapView, samples []trackpath.Sample, out string) error {
	fg, err := config.ParseColor(cfg.Stroke.Color)
	if err != nil {
		return err
	}
	var bg pdfcolor.Color
	if cfg.Output.Background != "" {
		c, err := config.ParseColor(cfg.Output.Background)
		if err != nil {
			return err
		}
		bg = deviceRGB(c)
	}

	// 1 point = 1 pixel
	paper := &pdf.Rectangle{
		URx: float64(view.Width),
		URy: float64(view.Height),
	}
	page, err := document.CreateSinglePage(out, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}
	drawPDF(page, view, samples, strokeStyle(cfg), deviceRGB(fg), bg)
	return page.Close()
}

// drawPDF paints the track onto page.  If bg is not nil, the page is filled
// with this colour first.
func drawPDF(page *document.Page, view trackpath.MapView, samples []trackpath.Sample, style stroke.Style, fg, bg pdfcolor.Color) {
	w, h := float64(view.Width), float64(view.Height)
	if bg != nil {
		page.SetFillColor(bg)
		page.Rectangle(0, 0, w, h)
		page.Fill()
	}

	// PDF origin is bottom-left, screen coordinates start top-left.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, h})

	page.SetStrokeColor(fg)
	page.SetLineWidth(style.Width)
	page.SetLineCap(style.Cap)
	page.SetLineJoin(style.Join)
	page.SetMiterLimit(style.MiterLimit)

	// the page implements trackpath.Sink
	trackpath.UpdatePath(view, view.Viewport(), 0, false, samples, page)
	page.Stroke()
}

func deviceRGB(c color.NRGBA) pdfcolor.DeviceRGB {
	return pdfcolor.DeviceRGB{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}
