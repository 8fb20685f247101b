/*
 * geometric.go, part of goccd.
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

	v3 "github.com/pdbe-tools/goccd/v3"
)

const appzero float64 = 0.0000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

// Deg2Rad converts degrees to radians.
func Deg2Rad(f float64) float64 {
	return f * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(f float64) float64 {
	return f * 180 / math.Pi
}

// Distance returns the distance between the points a and b.
func Distance(a, b *v3.Matrix) float64 {
	d := v3.Zeros(1)
	d.Sub(b, a)
	return d.Norm()
}

// Angle takes 2 vectors and calculate the angle in radians between them
// It does not check for correctness or return errors!
func Angle(v1, v2 *v3.Matrix) float64 {
	normproduct := v1.Norm() * v2.Norm()
	if normproduct <= appzero {
		return 0
	}
	argument := v1.Dot(v2) / normproduct
	//Take care of floating point math errors
	if argument > 1 {
		argument = 1
	} else if argument < -1 {
		argument = -1
	}
	angle := math.Acos(argument)
	if math.Abs(angle) <= appzero {
		return 0.00
	}
	return angle
}

// VertexAngle returns the angle a-b-c, in radians, with vertex in b.
func VertexAngle(a, b, c *v3.Matrix) float64 {
	ba := v3.Zeros(1)
	bc := v3.Zeros(1)
	ba.Sub(a, b)
	bc.Sub(c, b)
	return Angle(ba, bc)
}

// Dihedral calculate the dihedral between the points a, b, c, d, where the first plane
// is defined by abc and the second by bcd. The result is in radians, in (-pi, pi].
func Dihedral(a, b, c, d *v3.Matrix) float64 {
	for _, point := range []*v3.Matrix{a, b, c, d} {
		if point.NVecs() != 1 {
			panic(v3.ErrShape)
		}
	}
	//bma=b minus a
	bma := v3.Zeros(1)
	cmb := v3.Zeros(1)
	dmc := v3.Zeros(1)
	bmascaled := v3.Zeros(1)
	bma.Sub(b, a)
	cmb.Sub(c, b)
	dmc.Sub(d, c)
	bmascaled.Scale(cmb.Norm(), bma)
	first := bmascaled.Dot(cross(cmb, dmc))
	v1 := cross(bma, cmb)
	v2 := cross(cmb, dmc)
	second := v1.Dot(v2)
	return math.Atan2(first, second)
}

func cross(a, b *v3.Matrix) *v3.Matrix {
	c := v3.Zeros(1)
	c.Cross(a, b)
	return c
}
