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

//Package mogul drives a geometry-validation engine (the CSD Mogul program) for a
//chemical component and collects its results. For each bond, angle, torsion and
//ring of the component, the engine searches a database of experimental structures
//for similar fragments and returns the distribution of the corresponding values.
//
//The engine is used through the Handle interface, so the program that performs
//the search is separated from the handling of its results. CSDHandle runs the
//command-line engine, ReplayHandle reads the results of a previous run.

package mogul
