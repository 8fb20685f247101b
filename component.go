/*
 * component.go, part of goccd.
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
	"strings"

	v3 "github.com/pdbe-tools/goccd/v3"
)

// Atom contains the information of one _chem_comp_atom record. Coordinates are
// nil when the corresponding set is not given in the file.
type Atom struct {
	Index        int //0-based position in the component
	Name         string
	AltName      string
	Symbol       string
	Charge       int
	Aromatic     bool
	Leaving      bool
	StereoConfig string
	Model        []float64
	Ideal        []float64
	Bonds        []*Bond
}

// Neighbors returns the atoms bonded to A, in bond order.
func (A *Atom) Neighbors() []*Atom {
	ret := make([]*Atom, 0, len(A.Bonds))
	for _, b := range A.Bonds {
		ret = append(ret, b.Cross(A))
	}
	return ret
}

// Descriptor is a _pdbx_chem_comp_descriptor record (SMILES, InChI, InChIKey...).
type Descriptor struct {
	Type    string
	Program string
	Version string
	Value   string
}

// Component is a PDB Chemical Component Dictionary entry.
type Component struct {
	ID           string
	Name         string
	Type         string
	Formula      string
	FormalCharge int
	Atoms        []*Atom
	Bonds        []*Bond
	Descriptors  []Descriptor
	FileName     string
}

// Len returns the number of atoms in the component.
func (C *Component) Len() int {
	return len(C.Atoms)
}

// Atom returns the ith atom. It panics if i is out of range.
func (C *Component) Atom(i int) *Atom {
	return C.Atoms[i]
}

// AtomByName returns the atom with the given name, or nil.
func (C *Component) AtomByName(name string) *Atom {
	for _, a := range C.Atoms {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Names returns the names of the atoms with the given indexes.
func (C *Component) Names(indexes []int) []string {
	ret := make([]string, 0, len(indexes))
	for _, i := range indexes {
		if i < 0 || i >= len(C.Atoms) {
			ret = append(ret, "?")
			continue
		}
		ret = append(ret, C.Atoms[i].Name)
	}
	return ret
}

// Descriptor returns the value of the first descriptor of type typ (case-insensitive),
// or the empty string.
func (C *Component) Descriptor(typ string) string {
	for _, d := range C.Descriptors {
		if strings.EqualFold(d.Type, typ) {
			return d.Value
		}
	}
	return ""
}

// InChIKey returns the InChIKey descriptor of the component, or the empty string
// if the file doesn't carry one.
func (C *Component) InChIKey() string {
	return C.Descriptor("InChIKey")
}

// CoordSet selects which of the coordinate sets of a component is used.
type CoordSet int

const (
	AutoCoords CoordSet = iota
	IdealCoords
	ModelCoords
)

func (c CoordSet) String() string {
	switch c {
	case IdealCoords:
		return "ideal"
	case ModelCoords:
		return "model"
	default:
		return "auto"
	}
}

func (c CoordSet) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseCoordSet parses "ideal", "model" or "auto".
func ParseCoordSet(s string) (CoordSet, error) {
	switch tl(strings.TrimSpace(s)) {
	case "ideal":
		return IdealCoords, nil
	case "model":
		return ModelCoords, nil
	case "auto", "":
		return AutoCoords, nil
	}
	return AutoCoords, fmt.Errorf("unknown coordinate set %q, expected ideal, model or auto", s)
}

// Coords returns a matrix with one row per atom with the requested coordinate
// set, and the set actually used. AutoCoords prefers ideal coordinates and falls
// back to model coordinates.
func (C *Component) Coords(set CoordSet) (*v3.Matrix, CoordSet, error) {
	if len(C.Atoms) == 0 {
		return nil, set, &Error{message: "getting coordinates", filename: C.FileName, err: ErrNoAtoms, deco: []string{"Coords"}, critical: true}
	}
	if set == AutoCoords {
		m, _, err := C.Coords(IdealCoords)
		if err == nil {
			return m, IdealCoords, nil
		}
		m, _, err = C.Coords(ModelCoords)
		if err != nil {
			return nil, AutoCoords, &Error{message: "neither ideal nor model coordinates are complete", filename: C.FileName, err: ErrNoCoords, deco: []string{"Coords"}, critical: true}
		}
		return m, ModelCoords, nil
	}
	data := make([]float64, 0, 3*len(C.Atoms))
	for _, a := range C.Atoms {
		c := a.Ideal
		if set == ModelCoords {
			c = a.Model
		}
		if len(c) != 3 {
			return nil, set, &Error{message: fmt.Sprintf("atom %s has no %s coordinates", a.Name, set), filename: C.FileName, err: ErrNoCoords, deco: []string{"Coords"}, critical: true}
		}
		data = append(data, c...)
	}
	m, err := v3.NewMatrix(data)
	if err != nil {
		return nil, set, err
	}
	return m, set, nil
}

// FillIndexes sets the Index field of each atom to its position.
func (C *Component) FillIndexes() {
	for i, a := range C.Atoms {
		a.Index = i
	}
	for i, b := range C.Bonds {
		b.Index = i
	}
}
