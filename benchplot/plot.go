// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchplot renders comparison charts of benchmark results
// with gonum/plot.
//
// Each chart constructor returns a *Chart, which Save writes in the
// format named by the file extension. Values that cannot be drawn
// (NaN, infinities, and non-positive values on a logarithmic axis) are
// dropped; a chart left with nothing to draw fails with ErrNoData.
package benchplot

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// ErrNoData is returned for a chart that has no drawable values.
var ErrNoData = errors.New("no drawable data")

// Options control the layout shared by all charts.
type Options struct {
	Title  string
	XLabel string
	YLabel string

	// LogY draws the y axis in powers of ten.
	LogY bool

	// ClampY fixes the y axis to [YMin, YMax].
	ClampY     bool
	YMin, YMax float64

	// IncludeOne extends the y axis to include 1 and draws ratio
	// grid lines around it. It is meant for speedup charts on a
	// linear axis.
	IncludeOne bool

	// RotateX turns the x tick labels vertical.
	RotateX bool

	// Width and Height are the chart size in centimetres. Zero
	// means 16 by 10.
	Width, Height float64

	// DPI is the PNG resolution. Zero means 150.
	DPI int
}

// A Chart is a plot ready to be saved.
type Chart struct {
	Plot          *plot.Plot
	Width, Height vg.Length
	DPI           int
}

func newChart(opts Options) (*Chart, *axis) {
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.Legend.Top = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	p.Add(grid)

	if opts.RotateX {
		p.X.Tick.Label.Rotation = math.Pi / 2
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}

	w, h := opts.Width, opts.Height
	if w == 0 {
		w = 16
	}
	if h == 0 {
		h = 10
	}
	dpi := opts.DPI
	if dpi == 0 {
		dpi = 150
	}
	c := &Chart{
		Plot:   p,
		Width:  vg.Length(w) * vg.Centimeter,
		Height: vg.Length(h) * vg.Centimeter,
		DPI:    dpi,
	}
	return c, &axis{opts: opts}
}

// An axis maps data values onto the y axis of a chart.
//
// On a log axis a value v is drawn at log10(v) - floor, so that bars
// grow up from the lowest power of ten in the chart.
type axis struct {
	opts  Options
	floor float64
}

// fit prepares a to draw vals, which must already be filtered by
// a.keep.
func (a *axis) fit(vals []float64) {
	if !a.opts.LogY {
		return
	}
	if a.opts.ClampY && a.opts.YMin > 0 {
		a.floor = math.Log10(a.opts.YMin)
		return
	}
	min := math.Inf(1)
	for _, v := range vals {
		min = math.Min(min, v)
	}
	if !math.IsInf(min, 1) {
		a.floor = math.Floor(math.Log10(min))
	}
}

// keep reports whether v can be drawn on a.
func (a *axis) keep(v float64) bool {
	return finite(v) && (!a.opts.LogY || v > 0)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// y returns the plot coordinate of v. Bars below the axis floor are
// flattened to it.
func (a *axis) y(v float64) float64 {
	if !a.opts.LogY {
		return v
	}
	return math.Max(0, math.Log10(v)-a.floor)
}

// finish applies the axis scale and clamping to p after all plotters
// have been added.
func (a *axis) finish(p *plot.Plot) {
	if a.opts.LogY {
		p.Y.Tick.Marker = logTicks{floor: a.floor}
		if p.Y.Min > 0 {
			p.Y.Min = 0
		}
	}
	if a.opts.IncludeOne && !a.opts.LogY {
		p.Y.Tick.Marker = ratioTicks{}
		if p.Y.Min > 1 {
			p.Y.Min = 1
		}
		if p.Y.Max < 1 {
			p.Y.Max = 1
		}
	}
	if a.opts.ClampY {
		lo, hi := a.opts.YMin, a.opts.YMax
		if a.opts.LogY {
			lo, hi = 0, math.Log10(hi)-a.floor
		}
		p.Y.Min, p.Y.Max = lo, hi
	}
}

// colors returns n colors from a qualitative brewer palette, reusing
// colors if n exceeds the palette size.
func colors(n int) ([]color.Color, error) {
	const name, max = "Paired", 12
	k := n
	if k < 3 {
		k = 3
	}
	if k > max {
		k = max
	}
	pal, err := brewer.GetPalette(brewer.TypeQualitative, name, k)
	if err != nil {
		return nil, err
	}
	cs := pal.Colors()
	out := make([]color.Color, n)
	for i := range out {
		out[i] = cs[i%len(cs)]
	}
	return out, nil
}

// Save writes c to path. The format is chosen by the file extension:
// ".svg", ".pdf" or ".png". A path without an extension gets ".png".
// Parent directories are created as needed.
func Save(c *Chart, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		ext = ".png"
		path += ext
	}

	var can vg.CanvasWriterTo
	switch ext {
	case ".png":
		can = vgimg.PngCanvas{Canvas: vgimg.NewWith(
			vgimg.UseWH(c.Width, c.Height),
			vgimg.UseDPI(c.DPI),
			vgimg.UseBackgroundColor(color.White))}
	case ".svg":
		can = vgsvg.New(c.Width, c.Height)
	case ".pdf":
		can = vgpdf.New(c.Width, c.Height)
	default:
		return fmt.Errorf("save %s: unsupported chart format %q", path, ext)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return err
		}
	}
	c.Plot.Draw(draw.New(can))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := can.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	return f.Close()
}
