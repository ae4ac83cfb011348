// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package distplot renders the divergence distribution
// of the taxa at each taxonomic rank
// as a PNG plot.
//
// The package is a pure consumer
// of the tables and summaries of package outlier.
package distplot

import (
	"fmt"
	"image/color"

	"github.com/js-arias/blind"
	"github.com/js-arias/phyrank/outlier"
	"github.com/js-arias/phyrank/rank"
	"github.com/js-arias/phyrank/reldist"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var grayColor = color.RGBA{127, 127, 127, 255}
var tickColor = color.RGBA{190, 30, 45, 255}
var boundColor = color.RGBA{0, 140, 90, 255}

// Distribution plots the divergence of every taxon of a table,
// one rank per row,
// with the inferred distribution of each rank,
// its 10, 50 and 90 percentiles,
// and the classification boundaries around the median.
// Taxa in the inference set are highlighted.
func Distribution(name string, tb reldist.Table, sum map[rank.Rank]outlier.Dist, inference map[string]bool) error {
	p := plot.New()
	p.X.Label.Text = "relative divergence"
	p.Y.Label.Text = "rank (no. taxa)"
	p.X.Min = -0.05
	p.X.Max = 1.05

	var names []string
	for i, r := range tb.Ranks() {
		d, ok := sum[r]
		if !ok {
			return fmt.Errorf("distplot: on file %q: rank %s: %w", name, r, outlier.ErrEmptyDistribution)
		}
		names = append(names, fmt.Sprintf("%s (%d)", r, len(tb[r])))

		if err := addCurve(p, d, float64(i)); err != nil {
			return fmt.Errorf("distplot: on file %q: %v", name, err)
		}
		for _, x := range []float64{d.P10, d.P50, d.P90} {
			if err := addTick(p, x, float64(i), tickColor); err != nil {
				return fmt.Errorf("distplot: on file %q: %v", name, err)
			}
		}
		for _, x := range d.Boundaries() {
			if err := addTick(p, x, float64(i), boundColor); err != nil {
				return fmt.Errorf("distplot: on file %q: %v", name, err)
			}
		}

		if err := addTaxa(p, tb, r, float64(i), inference); err != nil {
			return fmt.Errorf("distplot: on file %q: %v", name, err)
		}
	}
	p.NominalY(names...)

	if err := p.Save(12*vg.Inch, 6*vg.Inch, name); err != nil {
		return fmt.Errorf("distplot: %v", err)
	}
	return nil
}

// AddCurve adds the density curve
// of the divergence distribution of a rank,
// scaled to the height of the rank row.
func addCurve(p *plot.Plot, d outlier.Dist, y float64) error {
	if d.StdDev == 0 {
		return nil
	}
	n := distuv.Normal{Mu: d.Mean, Sigma: d.StdDev}
	max := n.Prob(d.Mean)

	pts := make(plotter.XYs, 0, 200)
	for i := 0; i < 200; i++ {
		x := d.Mean + (float64(i)/100-1)*3*d.StdDev
		pts = append(pts, plotter.XY{X: x, Y: 0.75*n.Prob(x)/max + y})
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.Color = blind.Sequential(blind.Iridescent, 0.25)
	p.Add(l)

	return addTick(p, d.Mean, y, blind.Sequential(blind.Iridescent, 0.25))
}

// AddTick adds a vertical mark
// on the row of a rank.
func addTick(p *plot.Plot, x, y float64, c color.Color) error {
	l, err := plotter.NewLine(plotter.XYs{
		{X: x, Y: y},
		{X: x, Y: y + 0.5},
	})
	if err != nil {
		return err
	}
	l.Color = c
	p.Add(l)
	return nil
}

// AddTaxa adds the scatter of the taxa of a rank.
// Taxa used for the distribution inference
// are drawn with a solid color,
// any other taxon in gray.
func addTaxa(p *plot.Plot, tb reldist.Table, r rank.Rank, y float64, inference map[string]bool) error {
	var in, out plotter.XYs
	for _, taxon := range tb.Taxa(r) {
		xy := plotter.XY{X: tb[r][taxon], Y: y}
		if inference == nil || inference[taxon] {
			in = append(in, xy)
			continue
		}
		out = append(out, xy)
	}

	for _, sp := range []struct {
		pts plotter.XYs
		c   color.Color
	}{
		{pts: in, c: blind.Sequential(blind.Incandescent, 0.75)},
		{pts: out, c: grayColor},
	} {
		if len(sp.pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(sp.pts)
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = sp.c
		s.GlyphStyle.Radius = vg.Points(3)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
	}
	return nil
}
