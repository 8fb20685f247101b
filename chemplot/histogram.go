/*
 * histogram.go, part of goccd.
 *
 * Copyright 2024 The goccd Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chemplot

import (
	"fmt"
	"sort"

	"github.com/pdbe-tools/goccd/histo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ZScoreHistogram plots the histograms in data, one series per key, overlaid
// with translucent colors, and saves the plot to file. If threshold is larger
// than 0, dashed lines are drawn at -threshold and threshold. The Y axis is
// labeled as a density when the histograms are normalized.
func ZScoreHistogram(data map[string]*histo.Data, threshold float64, title, file string) error {
	if len(data) == 0 {
		return fmt.Errorf("ZScoreHistogram: no data")
	}
	names := make([]string, 0, len(data))
	for k := range data {
		names = append(names, k)
	}
	sort.Strings(names)
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "z-score"
	p.Y.Label.Text = "count"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	maxy := 0.0
	for key, name := range names {
		D := data[name]
		if D.Normalized() {
			p.Y.Label.Text = "density"
		}
		div := D.CopyDividers()
		counts := D.View()
		bins := make([]plotter.HistogramBin, len(counts))
		for i, c := range counts {
			bins[i] = plotter.HistogramBin{Min: div[i], Max: div[i+1], Weight: c}
		}
		if m := D.Max(); m > maxy {
			maxy = m
		}
		h := &plotter.Histogram{
			Bins:      bins,
			Width:     div[1] - div[0],
			FillColor: colors(key, len(names), 140),
			LineStyle: plotter.DefaultLineStyle,
		}
		h.LineStyle.Width = vg.Points(0.5)
		p.Add(h)
		p.Legend.Add(name, h)
	}
	if maxy <= 0 {
		maxy = 1
	}
	if threshold > 0 {
		for _, x := range []float64{-threshold, threshold} {
			l, err := plotter.NewLine(plotter.XYs{{X: x, Y: 0}, {X: x, Y: maxy}})
			if err != nil {
				return err
			}
			l.LineStyle.Color = outlierColor
			l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
			p.Add(l)
		}
	}
	if err := p.Save(14*vg.Centimeter, 9*vg.Centimeter, file); err != nil {
		return fmt.Errorf("ZScoreHistogram: %w", err)
	}
	return nil
}
