/*
 * puckering.go, part of goccd.
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
	"gonum.org/v1/gonum/floats"
)

// Puckering returns the total puckering amplitude Q, in A, of the ring
// given by atoms in cyclic order, and the displacement of each ring atom
// from the mean plane. A planar ring has Q = 0.
// Based on Cremer and Pople, J Am Chem Soc, 96, 1354, (1975).
func Puckering(coords *v3.Matrix, atoms []int) (float64, []float64, error) {
	N := len(atoms)
	if N < 3 {
		return math.NaN(), nil, fmt.Errorf("Puckering: a ring needs at least 3 atoms, got %d", N)
	}
	for _, a := range atoms {
		if a < 0 || a >= coords.NVecs() {
			return math.NaN(), nil, fmt.Errorf("Puckering: atom index %d out of range", a)
		}
	}
	ring := v3.Zeros(N)
	ring.SomeVecs(coords, atoms)
	centered := v3.Zeros(N)
	centered.SubVec(ring, ring.Centroid())
	Rp := v3.Zeros(1)
	Rpp := v3.Zeros(1)
	rp, rpp := Rp.RawRowView(0), Rpp.RawRowView(0)
	for j := 0; j < N; j++ {
		r := centered.RawRowView(j)
		a := 2 * math.Pi * float64(j) / float64(N)
		floats.AddScaled(rp, math.Sin(a), r)
		floats.AddScaled(rpp, math.Cos(a), r)
	}
	normal := cross(Rp, Rpp)
	if normal.Norm() <= appzero {
		return math.NaN(), nil, fmt.Errorf("Puckering: degenerate ring geometry")
	}
	normal.Unit(normal)
	z := make([]float64, N)
	sq := 0.0
	for j := range z {
		z[j] = centered.VecView(j).Dot(normal)
		sq += z[j] * z[j]
	}
	return math.Sqrt(sq), z, nil
}
