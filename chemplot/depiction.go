/*
 * depiction.go, part of goccd.
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
	"math"

	ccd "github.com/pdbe-tools/goccd"
	v3 "github.com/pdbe-tools/goccd/v3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Highlights marks the bonds (by bond index) and atoms (by atom index) drawn
// in the outlier color in a depiction.
type Highlights struct {
	Bonds map[int]bool
	Atoms map[int]bool
}

// DepictionOptions tune a depiction. The zero value draws hydrogens and labels
// every non-carbon atom with its name.
type DepictionOptions struct {
	HideHydrogens bool
	LabelCarbons  bool
	Size          vg.Length //width and height of the image, 12 cm if zero
}

// Project2D returns the coordinates projected onto the plane that best fits
// them, as an Nx2 matrix. The plane is found from the singular value
// decomposition of the centered coordinates.
func Project2D(coords *v3.Matrix) (*mat.Dense, error) {
	n := coords.NVecs()
	centered := mat.DenseCopyOf(coords.Dense)
	c := coords.Centroid()
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			centered.Set(i, j, centered.At(i, j)-c.At(0, j))
		}
	}
	ret := mat.NewDense(n, 2, nil)
	if n < 2 {
		return ret, nil
	}
	var svd mat.SVD
	if ok := svd.Factorize(centered, mat.SVDThin); !ok {
		return nil, fmt.Errorf("Project2D: SVD failed")
	}
	var v mat.Dense
	svd.VTo(&v)
	ret.Mul(centered, v.Slice(0, 3, 0, 2))
	return ret, nil
}

// Depiction draws a 2D depiction of the component, with its coordinates
// projected on their best plane, and saves it to file. The format is taken
// from the file extension (svg, png, pdf...).
func Depiction(comp *ccd.Component, coords *v3.Matrix, hl Highlights, title, file string, opts ...DepictionOptions) error {
	var o DepictionOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Size == 0 {
		o.Size = 12 * vg.Centimeter
	}
	if comp.Len() == 0 || coords.NVecs() != comp.Len() {
		return fmt.Errorf("Depiction: %d coordinates for %d atoms", coords.NVecs(), comp.Len())
	}
	comp.FillIndexes()
	xy, err := Project2D(coords)
	if err != nil {
		return err
	}
	hidden := func(a *ccd.Atom) bool {
		return o.HideHydrogens && a.Symbol == "H"
	}
	p := plot.New()
	p.Title.Text = title
	p.HideAxes()
	for _, b := range comp.Bonds {
		if hidden(b.At1) || hidden(b.At2) {
			continue
		}
		pts := plotter.XYs{
			{X: xy.At(b.At1.Index, 0), Y: xy.At(b.At1.Index, 1)},
			{X: xy.At(b.At2.Index, 0), Y: xy.At(b.At2.Index, 1)},
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		l.LineStyle.Color = bondColor
		l.LineStyle.Width = vg.Points(1.2 * float64(bondMultiplicity(b)))
		if b.MDLOrder() == 4 {
			l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		}
		if hl.Bonds[b.Index] {
			l.LineStyle.Color = outlierColor
		}
		p.Add(l)
	}
	var labels plotter.XYLabels
	var labelAtoms []*ccd.Atom
	for i, a := range comp.Atoms {
		if hidden(a) {
			continue
		}
		if a.Symbol == "C" && !o.LabelCarbons && !hl.Atoms[i] && len(a.Bonds) > 0 {
			continue
		}
		labels.XYs = append(labels.XYs, plotter.XY{X: xy.At(i, 0), Y: xy.At(i, 1)})
		labels.Labels = append(labels.Labels, a.Name)
		labelAtoms = append(labelAtoms, a)
	}
	if len(labelAtoms) > 0 {
		lab, err := plotter.NewLabels(labels)
		if err != nil {
			return err
		}
		for i, a := range labelAtoms {
			lab.TextStyle[i].Color = elementColor(a.Symbol)
			if hl.Atoms[a.Index] {
				lab.TextStyle[i].Color = outlierColor
			}
			lab.TextStyle[i].XAlign = draw.XCenter
			lab.TextStyle[i].YAlign = draw.YCenter
		}
		p.Add(lab)
	}
	squareRanges(p, xy)
	if err := p.Save(o.Size, o.Size, file); err != nil {
		return fmt.Errorf("Depiction: %w", err)
	}
	return nil
}

func bondMultiplicity(b *ccd.Bond) int {
	switch b.MDLOrder() {
	case 2:
		return 2
	case 3:
		return 3
	}
	return 1
}

// squareRanges sets the same span for both axes, so the depiction is not
// distorted, with some padding around the atoms.
func squareRanges(p *plot.Plot, xy *mat.Dense) {
	n, _ := xy.Dims()
	minx, maxx := math.Inf(1), math.Inf(-1)
	miny, maxy := math.Inf(1), math.Inf(-1)
	for i := 0; i < n; i++ {
		minx = math.Min(minx, xy.At(i, 0))
		maxx = math.Max(maxx, xy.At(i, 0))
		miny = math.Min(miny, xy.At(i, 1))
		maxy = math.Max(maxy, xy.At(i, 1))
	}
	span := math.Max(maxx-minx, maxy-miny) + 2 //Angstrom
	cx, cy := (maxx+minx)/2, (maxy+miny)/2
	p.X.Min, p.X.Max = cx-span/2, cx+span/2
	p.Y.Min, p.Y.Max = cy-span/2, cy+span/2
}
