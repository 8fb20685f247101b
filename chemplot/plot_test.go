/*
 * plot_test.go, part of goccd.
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
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ccd "github.com/pdbe-tools/goccd"
	"github.com/pdbe-tools/goccd/histo"
	v3 "github.com/pdbe-tools/goccd/v3"
)

func TestProject2D(Te *testing.T) {
	//a square in the xz plane, shifted.
	c, _ := v3.NewMatrix([]float64{1, 5, 1, 3, 5, 1, 3, 5, 3, 1, 5, 3})
	xy, err := Project2D(c)
	if err != nil {
		Te.Fatal(err)
	}
	//all the distances to the centroid are sqrt(2) in the plane.
	for i := 0; i < 4; i++ {
		d := math.Hypot(xy.At(i, 0), xy.At(i, 1))
		if math.Abs(d-math.Sqrt2) > 1e-9 {
			Te.Errorf("point %d is at %f from the center, expected sqrt(2)", i, d)
		}
	}
	one, _ := v3.NewMatrix([]float64{1, 2, 3})
	xy, err = Project2D(one)
	if err != nil || xy.At(0, 0) != 0 || xy.At(0, 1) != 0 {
		Te.Errorf("a single atom should be at the origin, got %v, %v", xy, err)
	}
}

func TestDepiction(Te *testing.T) {
	comp, err := ccd.ComponentFileRead("../test/BNZ.cif")
	if err != nil {
		Te.Fatal(err)
	}
	coords, _, err := comp.Coords(ccd.AutoCoords)
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(Te.TempDir(), "bnz.svg")
	hl := Highlights{Bonds: map[int]bool{6: true}, Atoms: map[int]bool{0: true}}
	if err := Depiction(comp, coords, hl, "BNZ", name); err != nil {
		Te.Fatal(err)
	}
	b, err := os.ReadFile(name)
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(string(b), "<svg") {
		Te.Error("the depiction is not an SVG file")
	}
	if err := Depiction(comp, v3.Zeros(3), hl, "BNZ", name); err == nil {
		Te.Error("expected an error for mismatched coordinates")
	}
}

func TestZScoreHistogram(Te *testing.T) {
	div := histo.ZDividers(4, 0.5)
	data := map[string]*histo.Data{
		"bonds":  histo.NewData(div, []float64{0.1, -0.3, 1.2, 2.5}),
		"angles": histo.NewData(div, []float64{-1.1, 0.7}),
	}
	name := filepath.Join(Te.TempDir(), "z.svg")
	if err := ZScoreHistogram(data, 2, "z-scores", name); err != nil {
		Te.Fatal(err)
	}
	if st, err := os.Stat(name); err != nil || st.Size() == 0 {
		Te.Errorf("no histogram written: %v", err)
	}
	for _, D := range data {
		D.Normalize()
	}
	dens := filepath.Join(Te.TempDir(), "density.svg")
	if err := ZScoreHistogram(data, 2, "z-scores", dens); err != nil {
		Te.Fatal(err)
	}
	if svg, _ := os.ReadFile(dens); !strings.Contains(string(svg), "density") {
		Te.Error("normalized histograms should be plotted as a density")
	}
	if err := ZScoreHistogram(nil, 2, "z-scores", name); err == nil {
		Te.Error("expected an error without data")
	}
}

func TestColors(Te *testing.T) {
	seen := make(map[[3]uint8]bool)
	for i := 0; i < 4; i++ {
		c := colors(i, 4, 255)
		seen[[3]uint8{c.R, c.G, c.B}] = true
	}
	if len(seen) != 4 {
		Te.Errorf("expected 4 different colors, got %d", len(seen))
	}
}
