/*
 * doc.go, part of goccd.
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

/*
Package v3 implements a Matrix type representing a row-major Nx3 matrix, that is,
a set of N points in 3D space. goccd uses it for the cartesian coordinates of the
atoms in a chemical component.

It is based on gonum's (gonum.org/v1/gonum/mat) Dense type, with the additional
restriction of a fixed number of columns, plus a few functions that are useful
for molecular geometry. Methods that receive a matrix with the wrong shape panic
with a PanicMsg, as gonum does.
*/
package v3
