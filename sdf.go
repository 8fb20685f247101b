/*
 * sdf.go, part of goccd.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	v3 "github.com/pdbe-tools/goccd/v3"
)

const maxV2000 = 999

// SDFFileWrite writes the component with the given coordinates to the file name,
// as a single-record SD file.
func SDFFileWrite(name string, comp *Component, coords *v3.Matrix) error {
	out, err := os.Create(name)
	if err != nil {
		return &Error{message: "unable to create file", filename: name, err: err, deco: []string{"SDFFileWrite"}, critical: true}
	}
	if err := SDFWrite(out, comp, coords); err != nil {
		out.Close()
		return setFileName(errDecorate(err, "SDFFileWrite"), name)
	}
	return out.Close()
}

// SDFWrite writes the component with the given coordinates to out as an MDL V2000
// molfile, followed by the $$$$ record separator. Formal charges go in M  CHG lines.
func SDFWrite(out io.Writer, comp *Component, coords *v3.Matrix) error {
	if comp.Len() == 0 {
		return &Error{message: "writing SDF", err: ErrNoAtoms, deco: []string{"SDFWrite"}, critical: true}
	}
	if comp.Len() > maxV2000 || len(comp.Bonds) > maxV2000 {
		return &Error{message: fmt.Sprintf("%d atoms, %d bonds", comp.Len(), len(comp.Bonds)), err: ErrTooManyAtoms, deco: []string{"SDFWrite"}, critical: true}
	}
	if coords.NVecs() != comp.Len() {
		return &Error{message: fmt.Sprintf("writing SDF: component (%d) and coordinates (%d) don't have the same number of atoms", comp.Len(), coords.NVecs()), deco: []string{"SDFWrite"}, critical: true}
	}
	comp.FillIndexes()
	w := bufio.NewWriter(out)
	//header block: name, program line, comment.
	fmt.Fprintf(w, "%s\n", comp.ID)
	fmt.Fprintf(w, "  %-8s%10s3D\n", "goccd", "")
	fmt.Fprintf(w, "%s\n", firstLine(comp.Name, 80))
	fmt.Fprintf(w, "%3d%3d  0  0  0  0  0  0  0  0999 V2000\n", comp.Len(), len(comp.Bonds))
	var charged []*Atom
	for i, a := range comp.Atoms {
		c := coords.RawRowView(i)
		fmt.Fprintf(w, "%10.4f%10.4f%10.4f %-3s 0  0  0  0  0  0  0  0  0  0  0  0\n", c[0], c[1], c[2], a.Symbol)
		if a.Charge != 0 {
			charged = append(charged, a)
		}
	}
	for _, b := range comp.Bonds {
		fmt.Fprintf(w, "%3d%3d%3d  0  0  0  0\n", b.At1.Index+1, b.At2.Index+1, b.MDLOrder())
	}
	for len(charged) > 0 {
		n := len(charged)
		if n > 8 {
			n = 8
		}
		fmt.Fprintf(w, "M  CHG%3d", n)
		for _, a := range charged[:n] {
			fmt.Fprintf(w, " %3d %3d", a.Index+1, a.Charge)
		}
		fmt.Fprint(w, "\n")
		charged = charged[n:]
	}
	fmt.Fprint(w, "M  END\n")
	fmt.Fprintf(w, "> <ID>\n%s\n\n", comp.ID)
	fmt.Fprint(w, "$$$$\n")
	return w.Flush()
}

func firstLine(s string, max int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > max {
		s = s[:max]
	}
	return s
}
