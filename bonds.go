/*
 * bonds.go, part of goccd.
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
	"sort"

	v3 "github.com/pdbe-tools/goccd/v3"
)

// constants from DOI:10.1186/1758-2946-3-33
const (
	tooclose = 0.63
	bondtol  = 0.45
)

// Bond is a _chem_comp_bond record. Order is the mmCIF value_order (SING, DOUB,
// TRIP, AROM, DELO, PI, POLY or QUAD).
type Bond struct {
	Index    int
	At1      *Atom
	At2      *Atom
	Order    string
	Aromatic bool
}

// Cross returns the atom at the other end of the bond from origin.
func (B *Bond) Cross(origin *Atom) *Atom {
	if origin.Index == B.At1.Index {
		return B.At2
	}
	if origin.Index == B.At2.Index {
		return B.At1
	}
	panic("Trying to cross a bond: The origin atom given is not present in the bond!")
}

// MDLOrder returns the bond type used in MDL molfiles: 1, 2, 3 or 4 (aromatic).
// Orders without an MDL equivalent are written as single bonds.
func (B *Bond) MDLOrder() int {
	switch B.Order {
	case "DOUB":
		return 2
	case "TRIP":
		return 3
	case "AROM":
		return 4
	case "SING":
		return 1
	}
	if B.Aromatic {
		return 4
	}
	return 1
}

func newBond(index int, at1, at2 *Atom, order string, aromatic bool) *Bond {
	b := &Bond{Index: index, At1: at1, At2: at2, Order: order, Aromatic: aromatic}
	at1.Bonds = append(at1.Bonds, b)
	at2.Bonds = append(at2.Bonds, b)
	return b
}

// AssignBonds assigns single bonds to a component based on a simple distance
// criterion, similar to that described in DOI:10.1186/1758-2946-3-33. It is used
// for components that come without _chem_comp_bond records. Existing bonds are
// discarded.
func AssignBonds(coord *v3.Matrix, comp *Component) error {
	comp.FillIndexes()
	for _, a := range comp.Atoms {
		a.Bonds = nil
	}
	comp.Bonds = nil
	t3 := v3.Zeros(1)
	tot := comp.Len()
	if coord.NVecs() != tot {
		return &Error{message: fmt.Sprintf("%d coordinates for %d atoms", coord.NVecs(), tot), filename: comp.FileName, deco: []string{"AssignBonds"}, critical: true}
	}
	for i := 0; i < tot; i++ {
		at1 := comp.Atoms[i]
		cov1 := covalentRadius(at1.Symbol)
		if cov1 == 0 {
			return &Error{message: fmt.Sprintf("Couldn't find the covalent radius for %s %d", at1.Symbol, i), filename: comp.FileName, deco: []string{"AssignBonds"}, critical: true}
		}
		for j := i + 1; j < tot; j++ {
			at2 := comp.Atoms[j]
			cov2 := covalentRadius(at2.Symbol)
			if cov2 == 0 {
				return &Error{message: fmt.Sprintf("Couldn't find the covalent radius for %s %d", at2.Symbol, j), filename: comp.FileName, deco: []string{"AssignBonds"}, critical: true}
			}
			t3.Sub(coord.VecView(j), coord.VecView(i))
			d := t3.Norm()
			if d < cov1+cov2+bondtol && d > tooclose {
				comp.Bonds = append(comp.Bonds, newBond(len(comp.Bonds), at1, at2, "SING", false))
			}
		}
	}

	//Now we check that no atom has too many bonds, removing the longest ones.
	dist := func(b *Bond) float64 {
		t3.Sub(coord.VecView(b.At1.Index), coord.VecView(b.At2.Index))
		return t3.Norm()
	}
	removed := make(map[*Bond]bool)
	for _, at := range comp.Atoms {
		max := maxBonds(at.Symbol)
		if max == 0 || len(at.Bonds) <= max {
			continue
		}
		sort.SliceStable(at.Bonds, func(i, j int) bool { return dist(at.Bonds[i]) < dist(at.Bonds[j]) })
		for _, b := range at.Bonds[max:] {
			removed[b] = true
		}
	}
	if len(removed) == 0 {
		return nil
	}
	kept := comp.Bonds[:0]
	for _, b := range comp.Bonds {
		if !removed[b] {
			kept = append(kept, b)
		}
	}
	comp.Bonds = kept
	for _, a := range comp.Atoms {
		ab := a.Bonds[:0]
		for _, b := range a.Bonds {
			if !removed[b] {
				ab = append(ab, b)
			}
		}
		a.Bonds = ab
	}
	comp.FillIndexes()
	return nil
}
