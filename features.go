/*
 * features.go, part of goccd.
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
	"fmt"
	"math"

	v3 "github.com/pdbe-tools/goccd/v3"
)

// Torsions are not defined around nearly linear triples.
const linearAngle = 175.0

// FeatureKind is the kind of geometric feature: bond, angle, torsion or ring.
type FeatureKind int

const (
	BondKind FeatureKind = iota
	AngleKind
	TorsionKind
	RingKind
)

// Kinds lists all the feature kinds, in report order.
var Kinds = []FeatureKind{BondKind, AngleKind, TorsionKind, RingKind}

func (k FeatureKind) String() string {
	switch k {
	case BondKind:
		return "bond"
	case AngleKind:
		return "angle"
	case TorsionKind:
		return "torsion"
	case RingKind:
		return "ring"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k FeatureKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *FeatureKind) UnmarshalText(b []byte) error {
	p, err := ParseFeatureKind(string(b))
	if err != nil {
		return err
	}
	*k = p
	return nil
}

// ParseFeatureKind parses the name of a feature kind (case-insensitive, plural
// forms accepted).
func ParseFeatureKind(s string) (FeatureKind, error) {
	switch tl(s) {
	case "bond", "bonds":
		return BondKind, nil
	case "angle", "angles":
		return AngleKind, nil
	case "torsion", "torsions":
		return TorsionKind, nil
	case "ring", "rings":
		return RingKind, nil
	}
	return BondKind, fmt.Errorf("unknown feature kind %q", s)
}

// Atoms returns the number of atoms that define a feature of the kind, or 0 if
// it is variable (rings).
func (k FeatureKind) Atoms() int {
	switch k {
	case BondKind:
		return 2
	case AngleKind:
		return 3
	case TorsionKind:
		return 4
	}
	return 0
}

// Feature is a measured geometric feature of a component. Value is in Angstrom
// for bonds and in degrees for the rest. The value of a ring is the mean absolute
// endocyclic torsion, 0 for a planar ring.
type Feature struct {
	Kind  FeatureKind
	Atoms []int
	Value float64
}

// Measure returns the value of the feature of the given kind defined by atoms.
func Measure(kind FeatureKind, coords *v3.Matrix, atoms []int) (float64, error) {
	n := coords.NVecs()
	for _, a := range atoms {
		if a < 0 || a >= n {
			return math.NaN(), fmt.Errorf("Measure: atom index %d out of range (%d atoms)", a, n)
		}
	}
	if want := kind.Atoms(); (want > 0 && len(atoms) != want) || (kind == RingKind && len(atoms) < 3) {
		return math.NaN(), fmt.Errorf("Measure: %d atoms given for a %s", len(atoms), kind)
	}
	v := coords.VecView
	switch kind {
	case BondKind:
		return Distance(v(atoms[0]), v(atoms[1])), nil
	case AngleKind:
		return Rad2Deg(VertexAngle(v(atoms[0]), v(atoms[1]), v(atoms[2]))), nil
	case TorsionKind:
		return Rad2Deg(Dihedral(v(atoms[0]), v(atoms[1]), v(atoms[2]), v(atoms[3]))), nil
	}
	l := len(atoms)
	sum := 0.0
	for i := range atoms {
		sum += math.Abs(Rad2Deg(Dihedral(v(atoms[i]), v(atoms[(i+1)%l]), v(atoms[(i+2)%l]), v(atoms[(i+3)%l]))))
	}
	return sum / float64(l), nil
}

// BondFeatures returns the bond lengths of the component, in bond order.
func BondFeatures(comp *Component, coords *v3.Matrix) []Feature {
	comp.FillIndexes()
	ret := make([]Feature, 0, len(comp.Bonds))
	for _, b := range comp.Bonds {
		at := []int{b.At1.Index, b.At2.Index}
		d, _ := Measure(BondKind, coords, at)
		ret = append(ret, Feature{Kind: BondKind, Atoms: at, Value: d})
	}
	return ret
}

// AngleFeatures returns all the bond angles i-j-k of the component, grouped by
// central atom j.
func AngleFeatures(comp *Component, coords *v3.Matrix) []Feature {
	comp.FillIndexes()
	var ret []Feature
	for _, j := range comp.Atoms {
		n := j.Neighbors()
		for a := 0; a < len(n); a++ {
			for b := a + 1; b < len(n); b++ {
				at := []int{n[a].Index, j.Index, n[b].Index}
				ang, _ := Measure(AngleKind, coords, at)
				ret = append(ret, Feature{Kind: AngleKind, Atoms: at, Value: ang})
			}
		}
	}
	return ret
}

// TorsionFeatures returns the torsions i-j-k-l around every bond j-k where neither
// j nor k is terminal. Torsions with a nearly linear i-j-k or j-k-l triple, and
// those closing a 3-membered ring, are skipped.
func TorsionFeatures(comp *Component, coords *v3.Matrix) []Feature {
	comp.FillIndexes()
	var ret []Feature
	v := coords.VecView
	for _, b := range comp.Bonds {
		j, k := b.At1, b.At2
		if len(j.Bonds) < 2 || len(k.Bonds) < 2 {
			continue
		}
		for _, i := range j.Neighbors() {
			if i == k {
				continue
			}
			if Rad2Deg(VertexAngle(v(i.Index), v(j.Index), v(k.Index))) > linearAngle {
				continue
			}
			for _, l := range k.Neighbors() {
				if l == j || l == i {
					continue
				}
				if Rad2Deg(VertexAngle(v(j.Index), v(k.Index), v(l.Index))) > linearAngle {
					continue
				}
				at := []int{i.Index, j.Index, k.Index, l.Index}
				t, _ := Measure(TorsionKind, coords, at)
				ret = append(ret, Feature{Kind: TorsionKind, Atoms: at, Value: t})
			}
		}
	}
	return ret
}

// RingFeatures measures the given rings, each given as atom indexes in cyclic order.
func RingFeatures(coords *v3.Matrix, rings [][]int) []Feature {
	ret := make([]Feature, 0, len(rings))
	for _, r := range rings {
		val, err := Measure(RingKind, coords, r)
		if err != nil {
			continue
		}
		ret = append(ret, Feature{Kind: RingKind, Atoms: r, Value: val})
	}
	return ret
}
