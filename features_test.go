/*
 * features_test.go, part of goccd.
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

package ccd

import (
	"math"
	"testing"

	v3 "github.com/pdbe-tools/goccd/v3"
)

func readCoords(Te *testing.T, name string) (*Component, *v3.Matrix) {
	Te.Helper()
	comp, err := ComponentFileRead(name)
	if err != nil {
		Te.Fatal(err)
	}
	coords, _, err := comp.Coords(AutoCoords)
	if err != nil {
		Te.Fatal(err)
	}
	return comp, coords
}

func TestDihedral(Te *testing.T) {
	p, _ := v3.NewMatrix([]float64{1, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 1})
	d := Rad2Deg(Dihedral(p.VecView(0), p.VecView(1), p.VecView(2), p.VecView(3)))
	if math.Abs(d+90) > 1e-9 {
		Te.Errorf("expected -90 degrees, got %f", d)
	}
	a := Rad2Deg(VertexAngle(p.VecView(0), p.VecView(1), p.VecView(2)))
	if math.Abs(a-90) > 1e-9 {
		Te.Errorf("expected 90 degrees, got %f", a)
	}
	if dist := Distance(p.VecView(1), p.VecView(3)); math.Abs(dist-math.Sqrt2) > 1e-9 {
		Te.Errorf("expected sqrt(2), got %f", dist)
	}
}

func TestBenzeneFeatures(Te *testing.T) {
	comp, coords := readCoords(Te, "test/BNZ.cif")
	bonds := BondFeatures(comp, coords)
	angles := AngleFeatures(comp, coords)
	torsions := TorsionFeatures(comp, coords)
	if len(bonds) != 12 || len(angles) != 18 || len(torsions) != 24 {
		Te.Fatalf("expected 12 bonds, 18 angles and 24 torsions, got %d, %d and %d", len(bonds), len(angles), len(torsions))
	}
	if math.Abs(bonds[0].Value-1.39) > 1e-3 {
		Te.Errorf("expected a C-C bond of 1.39, got %f", bonds[0].Value)
	}
	for _, a := range angles {
		if math.Abs(a.Value-120) > 0.1 {
			Te.Errorf("expected 120 degrees for %v, got %f", a.Atoms, a.Value)
		}
	}
	for _, t := range torsions {
		if v := math.Abs(t.Value); v > 0.1 && math.Abs(v-180) > 0.1 {
			Te.Errorf("benzene torsions are 0 or 180, got %f for %v", t.Value, t.Atoms)
		}
	}
	rings := RingFeatures(coords, [][]int{{0, 1, 2, 3, 4, 5}, {0, 1}})
	if len(rings) != 1 || rings[0].Value > 1e-6 {
		Te.Errorf("expected a single planar ring, got %v", rings)
	}
}

func TestEthanolFeatures(Te *testing.T) {
	comp, coords := readCoords(Te, "test/EOH.cif")
	if n := len(BondFeatures(comp, coords)); n != 8 {
		Te.Errorf("expected 8 bonds, got %d", n)
	}
	if n := len(AngleFeatures(comp, coords)); n != 13 {
		Te.Errorf("expected 13 angles, got %d", n)
	}
	if n := len(TorsionFeatures(comp, coords)); n != 12 {
		Te.Errorf("expected 12 torsions, got %d", n)
	}
}

func TestMeasureErrors(Te *testing.T) {
	_, coords := readCoords(Te, "test/EOH.cif")
	if _, err := Measure(BondKind, coords, []int{0, 9}); err == nil {
		Te.Error("expected an error for an out of range atom")
	}
	if _, err := Measure(AngleKind, coords, []int{0, 1}); err == nil {
		Te.Error("expected an error for an angle with 2 atoms")
	}
	if _, err := Measure(RingKind, coords, []int{0, 1}); err == nil {
		Te.Error("expected an error for a 2-membered ring")
	}
}

func TestFeatureKindText(Te *testing.T) {
	for _, k := range Kinds {
		b, _ := k.MarshalText()
		var back FeatureKind
		if err := back.UnmarshalText(b); err != nil || back != k {
			Te.Errorf("%s didn't survive the text round: %v", k, err)
		}
	}
	if k, err := ParseFeatureKind("Torsions"); err != nil || k != TorsionKind {
		Te.Errorf("expected torsion, got %s, %v", k, err)
	}
	if _, err := ParseFeatureKind("chiral"); err == nil {
		Te.Error("expected an error for an unknown kind")
	}
}
