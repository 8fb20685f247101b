/*
 * csv.go, part of goccd.
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

package mogul

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	ccd "github.com/pdbe-tools/goccd"
)

// columns of the engine CSV output, by normalized header name.
const (
	colType     = "type"
	colAtoms    = "atomindices"
	colObserved = "queryvalue"
	colHits     = "nhits"
	colMean     = "mean"
	colSD       = "stddev"
	colZ        = "zscore"
	colDMin     = "dmin"
)

// normalizeHeader lowercases h and drops everything that is not a letter or a
// digit, so "Std. dev." becomes "stddev" and "z-score" becomes "zscore".
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseCSV reads the CSV results of the engine. The columns are found by their
// header, so their order doesn't matter and unknown columns are ignored. The
// Type and Atom Indices columns are required. Rows whose type is not a bond,
// angle, torsion or ring are skipped. Atom indices are 1-based in the file,
// separated by spaces, and must be smaller than or equal to natoms. Missing or
// non-numeric values are set to NaN (0 for the number of hits).
func ParseCSV(r io.Reader, natoms int) ([]*Fragment, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("ParseCSV: empty results: %w", ErrNoResults)
	}
	if err != nil {
		return nil, fmt.Errorf("ParseCSV: reading header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = normalizeHeader(strings.TrimPrefix(h, "\ufeff"))
		if _, ok := cols[h]; !ok {
			cols[h] = i
		}
	}
	for _, req := range []string{colType, colAtoms} {
		if _, ok := cols[req]; !ok {
			return nil, fmt.Errorf("ParseCSV: missing column %q: %w", req, ErrBadResults)
		}
	}
	field := func(rec []string, col string) string {
		i, ok := cols[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	number := func(rec []string, col string) float64 {
		f, err := strconv.ParseFloat(field(rec, col), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	}
	var ret []*Fragment
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ParseCSV: line %d: %w", line, err)
		}
		kind, err := ccd.ParseFeatureKind(field(rec, colType))
		if err != nil {
			continue
		}
		atoms, err := parseIndices(field(rec, colAtoms), natoms)
		if err != nil {
			return nil, fmt.Errorf("ParseCSV: line %d: %v: %w", line, err, ErrBadResults)
		}
		if n := kind.Atoms(); (n > 0 && len(atoms) != n) || (kind == ccd.RingKind && len(atoms) < 3) {
			return nil, fmt.Errorf("ParseCSV: line %d: %d atoms for a %s: %w", line, len(atoms), kind, ErrBadResults)
		}
		hits, _ := strconv.Atoi(field(rec, colHits))
		ret = append(ret, &Fragment{
			Kind:      kind,
			Atoms:     atoms,
			Observed:  number(rec, colObserved),
			Hits:      hits,
			Mean:      number(rec, colMean),
			SD:        number(rec, colSD),
			Z:         number(rec, colZ),
			DMin:      number(rec, colDMin),
			Puckering: math.NaN(),
		})
	}
	return ret, nil
}

func parseIndices(s string, natoms int) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' || r == ';' })
	ret := make([]int, 0, len(fields))
	for _, f := range fields {
		i, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad atom index %q", f)
		}
		if i < 1 || i > natoms {
			return nil, fmt.Errorf("atom index %d out of range (%d atoms)", i, natoms)
		}
		ret = append(ret, i-1)
	}
	return ret, nil
}
