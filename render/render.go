// Copyright 2026 The benchagg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws the charts of an aggregated experiment.
//
// The output format of every chart is chosen by the extension of the
// destination path, as with (*plot.Plot).Save. Supported extensions
// include .png, .svg and .pdf.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/divsynth/benchagg/costagg"
	"github.com/divsynth/benchagg/stratname"
	"github.com/divsynth/benchagg/timeline"
)

// Chart dimensions.
const (
	Width  = 10 * vg.Inch
	Height = 5 * vg.Inch
)

// ErrNoData is returned when there is nothing to draw. No file is
// written in that case.
var ErrNoData = errors.New("render: no data to plot")

var baselineColor = color.Gray{Y: 96}

// CostBoxPlot draws one box per strategy group of s, labeled with the
// group's ".<strategy>.<rate>" suffix. If s has a baseline, it is drawn
// as a dashed horizontal line.
func CostBoxPlot(s *costagg.Summary, names stratname.Table, path string) error {
	if len(s.Groups) == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = s.Kind.String()
	p.Y.Label.Text = fmt.Sprintf("%s of %s", s.Kind.Aggregator(), s.Kind)

	labels := make([]string, len(s.Groups))
	for i, g := range s.Groups {
		box, err := plotter.NewBoxPlot(vg.Points(20), float64(i), plotter.Values(g.Values))
		if err != nil {
			return fmt.Errorf("group %s: %w", g.Name.Dir, err)
		}
		box.FillColor = plotutil.Color(i)
		p.Add(box)
		labels[i] = g.Name.Suffix(names)
	}
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	if s.Baseline != nil {
		base := *s.Baseline
		line := plotter.NewFunction(func(float64) float64 { return base })
		line.Color = baselineColor
		line.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		p.Add(line)
		p.Legend.Add("baseline", line)
		p.Legend.Top = true
		// Functions have no data range of their own.
		p.Y.Min = math.Min(p.Y.Min, base)
		p.Y.Max = math.Max(p.Y.Max, base)
	}

	return p.Save(Width, Height, path)
}

// GadgetBars draws ratios, a distribution already sorted in descending
// order, as a bar chart.
func GadgetBars(title string, ratios []float64, path string) error {
	if len(ratios) == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "gadget"
	p.Y.Label.Text = "occurrence ratio"

	w := Width * 3 / 4 / vg.Length(len(ratios))
	if w < vg.Points(1) {
		w = vg.Points(1)
	}
	bars, err := plotter.NewBarChart(plotter.Values(ratios), w)
	if err != nil {
		return err
	}
	bars.LineStyle.Width = 0
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.Y.Min = 0
	p.Y.Max = math.Max(p.Y.Max, 1)

	return p.Save(Width, Height, path)
}

// Timeline draws one line per series: elapsed seconds against the
// number of emitted solutions. Function boundaries are marked with a
// glyph and each line ends with its total elapsed time.
func Timeline(series []*timeline.Series, path string) error {
	if len(series) == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = "function generation time"
	p.X.Label.Text = "elapsed (s)"
	p.Y.Label.Text = "solutions"
	p.Legend.Top = true
	p.Legend.Left = true

	for i, s := range series {
		pts := make(plotter.XYs, len(s.Elapsed))
		for j, ms := range s.Elapsed {
			pts[j].X = float64(ms) / 1000
			pts[j].Y = float64(j)
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("strategy %s: %w", s.Strategy, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)

		marks := make(plotter.XYs, len(s.Markers))
		for j, m := range s.Markers {
			marks[j] = pts[m]
		}
		glyphs, err := plotter.NewScatter(marks)
		if err != nil {
			return fmt.Errorf("strategy %s: %w", s.Strategy, err)
		}
		glyphs.GlyphStyle.Color = plotutil.Color(i)
		glyphs.GlyphStyle.Shape = plotutil.Shape(i)

		total, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    plotter.XYs{pts[len(pts)-1]},
			Labels: []string{timeline.FormatElapsed(s.Total())},
		})
		if err != nil {
			return fmt.Errorf("strategy %s: %w", s.Strategy, err)
		}

		p.Add(line, glyphs, total)
		p.Legend.Add(s.Display, line, glyphs)
	}

	return p.Save(Width, Height, path)
}
