// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchplot

import (
	"image/color"
	"sort"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// A Series is a named sequence of points for Lines.
type Series struct {
	Name string
	XYs  plotter.XYs
}

// Lines draws each series as a line with point markers. Points are
// drawn in order of increasing x.
func Lines(opts Options, series ...Series) (*Chart, error) {
	c, ax := newChart(opts)

	var kept []Series
	var all []float64
	for _, s := range series {
		var xys plotter.XYs
		for _, xy := range s.XYs {
			if finite(xy.X) && ax.keep(xy.Y) {
				xys = append(xys, xy)
				all = append(all, xy.Y)
			}
		}
		if len(xys) == 0 {
			continue
		}
		sort.SliceStable(xys, func(i, j int) bool { return xys[i].X < xys[j].X })
		kept = append(kept, Series{Name: s.Name, XYs: xys})
	}
	if len(kept) == 0 {
		return nil, ErrNoData
	}
	ax.fit(all)

	cs, err := colors(len(kept))
	if err != nil {
		return nil, err
	}
	for i, s := range kept {
		xys := make(plotter.XYs, len(s.XYs))
		for j, xy := range s.XYs {
			xys[j] = plotter.XY{X: xy.X, Y: ax.y(xy.Y)}
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, err
		}
		line.Color = cs[i]
		points.Color = cs[i]
		points.Shape = draw.CircleGlyph{}
		c.Plot.Add(line, points)
		c.Plot.Legend.Add(s.Name, line, points)
	}
	ax.finish(c.Plot)
	return c, nil
}

// A Bar is one category of a bar chart.
type Bar struct {
	Category string
	Value    float64
}

// Bars draws one bar per category. Categories whose value cannot be
// drawn keep their slot on the x axis.
func Bars(opts Options, bars ...Bar) (*Chart, error) {
	g := Group{Series: []string{""}, Values: [][]float64{make([]float64, len(bars))}}
	for i, b := range bars {
		g.Categories = append(g.Categories, b.Category)
		g.Values[0][i] = b.Value
	}
	return GroupedBars(opts, g)
}

// A Group holds the values of several series over shared categories.
// Values[i][j] is the value of series i in category j.
type Group struct {
	Categories []string
	Series     []string
	Values     [][]float64
}

// GroupedBars draws, for every category, one bar per series side by
// side. A single series with an empty name gets no legend.
func GroupedBars(opts Options, g Group) (*Chart, error) {
	c, ax := newChart(opts)
	if len(g.Categories) == 0 || len(g.Series) == 0 {
		return nil, ErrNoData
	}

	var all []float64
	for _, vals := range g.Values {
		for _, v := range vals {
			if ax.keep(v) {
				all = append(all, v)
			}
		}
	}
	if len(all) == 0 {
		return nil, ErrNoData
	}
	ax.fit(all)

	cs, err := colors(len(g.Series))
	if err != nil {
		return nil, err
	}

	// Share 80% of each category slot among the series.
	plotWidth := c.Width - 3*vg.Centimeter
	slot := plotWidth / vg.Length(len(g.Categories))
	barWidth := slot * 0.8 / vg.Length(len(g.Series))
	groupWidth := barWidth * vg.Length(len(g.Series)-1)

	for i, name := range g.Series {
		vals := make(plotter.Values, len(g.Categories))
		for j := range vals {
			if j < len(g.Values[i]) && ax.keep(g.Values[i][j]) {
				vals[j] = ax.y(g.Values[i][j])
			}
		}
		bc, err := plotter.NewBarChart(vals, barWidth)
		if err != nil {
			return nil, err
		}
		bc.Offset = barWidth*vg.Length(i) - groupWidth/2
		bc.Color = cs[i]
		bc.LineStyle.Width = 0
		c.Plot.Add(bc)
		if name != "" || len(g.Series) > 1 {
			c.Plot.Legend.Add(name, bc)
		}
	}
	c.Plot.NominalX(g.Categories...)
	ax.finish(c.Plot)
	return c, nil
}

// A Sample is a named set of observations for Boxes.
type Sample struct {
	Name   string
	Values []float64
}

// Boxes draws a box plot of each sample. Samples with no drawable
// values are left out.
func Boxes(opts Options, samples ...Sample) (*Chart, error) {
	c, ax := newChart(opts)

	var kept []Sample
	var all []float64
	for _, s := range samples {
		var vs []float64
		for _, v := range s.Values {
			if ax.keep(v) {
				vs = append(vs, v)
			}
		}
		if len(vs) == 0 {
			continue
		}
		kept = append(kept, Sample{Name: s.Name, Values: vs})
		all = append(all, vs...)
	}
	if len(kept) == 0 {
		return nil, ErrNoData
	}
	ax.fit(all)

	cs, err := colors(len(kept))
	if err != nil {
		return nil, err
	}
	w := (c.Width - 3*vg.Centimeter) / vg.Length(len(kept)) / 2
	var names []string
	for i, s := range kept {
		vals := make(plotter.Values, len(s.Values))
		for j, v := range s.Values {
			vals[j] = ax.y(v)
		}
		b, err := plotter.NewBoxPlot(w, float64(i), vals)
		if err != nil {
			return nil, err
		}
		b.BoxStyle.Color = color.Black
		b.FillColor = cs[i]
		c.Plot.Add(b)
		names = append(names, s.Name)
	}
	c.Plot.NominalX(names...)
	ax.finish(c.Plot)
	return c, nil
}
