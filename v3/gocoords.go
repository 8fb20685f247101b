/*
 * gocoords.go, part of goccd.
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

package v3

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

// Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

// NVecs returns the number of vecs in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

// SomeVecs puts in F the vectors of A whose indexes are in clist.
// F must have len(clist) vectors.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	if F.NVecs() != len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		copy(F.RawRowView(key), A.RawRowView(val))
	}
}

// SubVec subtracts the vector vec from each vector of A, putting the result in F.
func (F *Matrix) SubVec(A, vec *Matrix) {
	ar, _ := A.Dims()
	fr, _ := F.Dims()
	if vec.NVecs() != 1 || ar != fr {
		panic(ErrShape)
	}
	v := vec.RawRowView(0)
	for i := 0; i < ar; i++ {
		floats.SubTo(F.RawRowView(i), A.RawRowView(i), v)
	}
}

// Cross puts in F the cross product of the 1-vector matrices a and b.
func (F *Matrix) Cross(a, b *Matrix) {
	if a.NVecs() != 1 || b.NVecs() != 1 || F.NVecs() != 1 {
		panic(ErrNoCrossProduct)
	}
	av := a.RawRowView(0)
	bv := b.RawRowView(0)
	F.Set(0, 0, av[1]*bv[2]-av[2]*bv[1])
	F.Set(0, 1, av[2]*bv[0]-av[0]*bv[2])
	F.Set(0, 2, av[0]*bv[1]-av[1]*bv[0])
}

// Dot returns the dot product between the 1-vector matrices F and B.
func (F *Matrix) Dot(B *Matrix) float64 {
	if F.NVecs() != 1 || B.NVecs() != 1 {
		panic(ErrShape)
	}
	return floats.Dot(F.RawRowView(0), B.RawRowView(0))
}

// Norm returns the euclidean norm of the 1-vector matrix F.
func (F *Matrix) Norm() float64 {
	if F.NVecs() != 1 {
		panic(ErrShape)
	}
	return floats.Norm(F.RawRowView(0), 2)
}

// Unit puts in F the unitary vector in the direction of the 1-vector matrix A.
// A zero vector stays zero. F and A can be the same matrix.
func (F *Matrix) Unit(A *Matrix) {
	if F.NVecs() != 1 {
		panic(ErrShape)
	}
	n := A.Norm()
	if n <= appzero {
		F.Zero()
		return
	}
	floats.ScaleTo(F.RawRowView(0), 1/n, A.RawRowView(0))
}

// Centroid returns a 1-vector matrix with the geometric center of the vectors in F.
func (F *Matrix) Centroid() *Matrix {
	n := F.NVecs()
	if n == 0 {
		panic(ErrNotEnoughElements)
	}
	c := Zeros(1)
	cv := c.RawRowView(0)
	for i := 0; i < n; i++ {
		floats.Add(cv, F.RawRowView(i))
	}
	floats.Scale(1/float64(n), cv)
	return c
}

// String returns a human-readable representation of F, one vector per line.
func (F *Matrix) String() string {
	r, _ := F.Dims()
	lines := make([]string, 0, r)
	for i := 0; i < r; i++ {
		v := F.RawRowView(i)
		lines = append(lines, fmt.Sprintf("%8.3f %8.3f %8.3f", v[0], v[1], v[2]))
	}
	return strings.Join(lines, "\n")
}
