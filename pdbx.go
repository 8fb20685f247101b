/*
 * pdbx.go, part of goccd.
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
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// ReadComponent reads a chemical component from the first data block of a PDB-CCD
// mmCIF stream.
func ReadComponent(r io.Reader) (*Component, error) {
	blocks, err := ReadCIF(r)
	if err != nil {
		return nil, errDecorate(err, "ReadComponent")
	}
	comp, err := ComponentFromBlock(blocks[0])
	return comp, errDecorate(err, "ReadComponent")
}

// *zstd.Decoder doesn't implement io.ReadCloser, as its Close returns nothing.
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// openMaybeCompressed opens name, decompressing it on the fly when the name ends
// in .gz (gzip) or .zst (zstandard).
func openMaybeCompressed(name string) (io.ReadCloser, func() error, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	var r io.ReadCloser
	switch {
	case strings.HasSuffix(tl(name), ".gz"):
		r, err = gzip.NewReader(f)
	case strings.HasSuffix(tl(name), ".zst"):
		var d *zstd.Decoder
		d, err = zstd.NewReader(f)
		if err == nil {
			r = zstdCloser{d}
		}
	default:
		return f, f.Close, nil
	}
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	closer := func() error {
		r.Close()
		return f.Close()
	}
	return r, closer, nil
}

// ComponentFileRead reads a chemical component from a PDB-CCD mmCIF file. Files
// ending in .gz or .zst are decompressed.
func ComponentFileRead(name string) (*Component, error) {
	r, closer, err := openMaybeCompressed(name)
	if err != nil {
		return nil, &Error{message: "unable to open file", filename: name, err: err, deco: []string{"ComponentFileRead"}, critical: true}
	}
	defer closer()
	comp, err := ReadComponent(r)
	if err != nil {
		return nil, setFileName(errDecorate(err, "ComponentFileRead"), name)
	}
	comp.FileName = name
	return comp, nil
}

// ComponentFromBlock builds a component from an mmCIF data block.
func ComponentFromBlock(B *Block) (*Component, error) {
	comp := &Component{ID: B.Name}
	cc := B.Table("_chem_comp")
	if cc.Len() > 0 {
		if id, ok := cc.Field(0, "id"); ok {
			comp.ID = id
		}
		comp.Name, _ = cc.Field(0, "name")
		comp.Type, _ = cc.Field(0, "type")
		comp.Formula, _ = cc.Field(0, "formula")
		if s, ok := cc.Field(0, "pdbx_formal_charge"); ok {
			q, err := strconv.Atoi(s)
			if err != nil {
				return nil, &Error{message: fmt.Sprintf("pdbx_formal_charge %q", s), err: ErrBadValue, deco: []string{"ComponentFromBlock"}, critical: true}
			}
			comp.FormalCharge = q
		}
	}
	atoms := B.Table("_chem_comp_atom")
	if atoms.Len() == 0 {
		return nil, &Error{message: "reading component " + comp.ID, err: ErrNoAtoms, deco: []string{"ComponentFromBlock"}, critical: true}
	}
	for i := 0; i < atoms.Len(); i++ {
		at, err := atomFromRow(atoms, i)
		if err != nil {
			return nil, &Error{message: fmt.Sprintf("atom %d of %s", i+1, comp.ID), err: err, deco: []string{"atomFromRow", "ComponentFromBlock"}, critical: true}
		}
		at.Index = i
		comp.Atoms = append(comp.Atoms, at)
	}
	names := make(map[string]*Atom, len(comp.Atoms))
	for _, a := range comp.Atoms {
		names[a.Name] = a
	}
	bonds := B.Table("_chem_comp_bond")
	for i := 0; i < bonds.Len(); i++ {
		n1, _ := bonds.Field(i, "atom_id_1")
		n2, _ := bonds.Field(i, "atom_id_2")
		a1, a2 := names[n1], names[n2]
		if a1 == nil || a2 == nil || a1 == a2 {
			return nil, &Error{message: fmt.Sprintf("bond %d of %s (%s-%s)", i+1, comp.ID, n1, n2), err: ErrUnknownAtom, deco: []string{"ComponentFromBlock"}, critical: true}
		}
		order, _ := bonds.Field(i, "value_order")
		arom, _ := bonds.Field(i, "pdbx_aromatic_flag")
		comp.Bonds = append(comp.Bonds, newBond(len(comp.Bonds), a1, a2, strings.ToUpper(order), yes(arom)))
	}
	desc := B.Table("_pdbx_chem_comp_descriptor")
	for i := 0; i < desc.Len(); i++ {
		d := Descriptor{}
		d.Type, _ = desc.Field(i, "type")
		d.Program, _ = desc.Field(i, "program")
		d.Version, _ = desc.Field(i, "program_version")
		d.Value, _ = desc.Field(i, "descriptor")
		comp.Descriptors = append(comp.Descriptors, d)
	}
	if bonds.Len() == 0 && len(comp.Atoms) > 1 {
		//Some entries (and many hand-made files) come without bonds.
		coords, _, err := comp.Coords(AutoCoords)
		if err == nil {
			if err := AssignBonds(coords, comp); err != nil {
				return nil, errDecorate(err, "ComponentFromBlock")
			}
		}
	}
	return comp, nil
}

func yes(s string) bool {
	s = tl(s)
	return s == "y" || s == "yes"
}

// atomFromRow reads the ith _chem_comp_atom record.
func atomFromRow(T *Table, i int) (*Atom, error) {
	at := new(Atom)
	var ok bool
	at.Name, ok = T.Field(i, "atom_id")
	if !ok {
		return nil, fmt.Errorf("missing atom_id: %w", ErrBadValue)
	}
	at.AltName, _ = T.Field(i, "alt_atom_id")
	sym, ok := T.Field(i, "type_symbol")
	if !ok {
		return nil, fmt.Errorf("atom %s: missing type_symbol: %w", at.Name, ErrBadValue)
	}
	at.Symbol = NormalizeSymbol(sym)
	if s, ok := T.Field(i, "charge"); ok {
		q, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("atom %s: charge %q: %w", at.Name, s, ErrBadValue)
		}
		at.Charge = q
	}
	arom, _ := T.Field(i, "pdbx_aromatic_flag")
	at.Aromatic = yes(arom)
	leaving, _ := T.Field(i, "pdbx_leaving_atom_flag")
	at.Leaving = yes(leaving)
	at.StereoConfig, _ = T.Field(i, "pdbx_stereo_config")
	var err error
	at.Model, err = fillCoords(T, i, "model_cartn_x", "model_cartn_y", "model_cartn_z")
	if err != nil {
		return nil, fmt.Errorf("atom %s: %w", at.Name, err)
	}
	at.Ideal, err = fillCoords(T, i, "pdbx_model_cartn_x_ideal", "pdbx_model_cartn_y_ideal", "pdbx_model_cartn_z_ideal")
	if err != nil {
		return nil, fmt.Errorf("atom %s: %w", at.Name, err)
	}
	return at, nil
}

// fillCoords returns the 3 coordinates in the given columns, or nil if any of
// them is missing.
func fillCoords(T *Table, i int, cols ...string) ([]float64, error) {
	ret := make([]float64, 0, 3)
	for _, c := range cols {
		s, ok := T.Field(i, c)
		if !ok {
			return nil, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("Couldn't parse %s from %q: %w", c, s, ErrBadValue)
		}
		ret = append(ret, f)
	}
	return ret, nil
}
