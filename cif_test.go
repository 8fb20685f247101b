/*
 * cif_test.go, part of goccd.
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
	"errors"
	"strings"
	"testing"
)

const smallCIF = `data_TST
# a comment
_chem_comp.id   TST
_chem_comp.name 'it''s "quoted"'
_chem_comp.pdbx_synonyms
;
first line
second line
;
loop_
_chem_comp_atom.comp_id
_chem_comp_atom.atom_id
_chem_comp_atom.type_symbol
TST "O1'" O
TST C1 C # trailing comment
data_OTHER
_chem_comp.id OTHER
`

func TestReadCIF(Te *testing.T) {
	blocks, err := ReadCIF(strings.NewReader(smallCIF))
	if err != nil {
		Te.Fatal(err)
	}
	if len(blocks) != 2 || blocks[0].Name != "TST" || blocks[1].Name != "OTHER" {
		Te.Fatalf("expected blocks TST and OTHER, got %d", len(blocks))
	}
	B := blocks[0]
	cc := B.Table("_CHEM_COMP")
	if cc.Len() != 1 {
		Te.Fatalf("expected a single-row _chem_comp, got %d rows", cc.Len())
	}
	if v := cc.Value(0, "name"); v != `it''s "quoted"` {
		Te.Errorf("wrong quoted value %q", v)
	}
	if v := cc.Value(0, "pdbx_synonyms"); v != "first line\nsecond line" {
		Te.Errorf("wrong text field %q", v)
	}
	atoms := B.Table("_chem_comp_atom")
	if atoms.Len() != 2 {
		Te.Fatalf("expected 2 atoms, got %d", atoms.Len())
	}
	if v := atoms.Value(0, "atom_id"); v != "O1'" {
		Te.Errorf("expected O1', got %q", v)
	}
	if v, ok := atoms.Field(1, "charge"); ok || v != "" {
		Te.Errorf("absent attribute should not be ok, got %q", v)
	}
	if cats := B.Categories(); len(cats) != 2 || cats[0] != "_chem_comp" {
		Te.Errorf("unexpected categories %v", cats)
	}
}

func TestReadCIFErrors(Te *testing.T) {
	cases := map[string]struct {
		in   string
		want error
	}{
		"empty":       {"# nothing here\n", ErrNoDataBlock},
		"no block":    {"_chem_comp.id X\n", ErrSyntax},
		"open quote":  {"data_X\n_chem_comp.name 'oops\n", ErrSyntax},
		"open text":   {"data_X\n_chem_comp.name\n;\nnever closed\n", ErrSyntax},
		"ragged loop": {"data_X\nloop_\n_a.b\n_a.c\n1 2 3\n", ErrSyntax},
		"valueless":   {"data_X\n_chem_comp.id\n_chem_comp.name N\n", ErrSyntax},
		"mixed loop":  {"data_X\nloop_\n_a.b\n_c.d\n1 2\n", ErrSyntax},
		"stray value": {"data_X\n_a.b 1 2\n", ErrSyntax},
	}
	for name, c := range cases {
		_, err := ReadCIF(strings.NewReader(c.in))
		if !errors.Is(err, c.want) {
			Te.Errorf("%s: expected %v, got %v", name, c.want, err)
		}
	}
}
