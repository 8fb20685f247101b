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
Package ccd reads chemical components from the PDB Chemical Component
Dictionary (PDB-CCD) and prepares them for geometry validation.

		**goccd capabilities**

	    Reads PDB-CCD mmCIF files, plain or compressed with gzip or zstd, into
		Component values with atoms, bonds, descriptors and both the ideal and
		the model coordinate sets.

	    Assigns bonds from covalent radii when a file has no bond table.

	    Enumerates the bonds, angles, torsions and rings of a component and
		measures them on a set of coordinates.

	    Writes components as MDL V2000 molfiles, the input format of most
		structure-analysis programs.

Subpackages:

	mogul: runs the CCDC Mogul program (or replays its saved results) and
	classifies every fragment as normal, outlier or without hits.

	chemgraph: the molecular graph of a component and its smallest set of
	smallest rings.

	histo: histograms, used for the z-score distributions.

	chemplot: 2D depictions of components and z-score plots.

	report: the HTML report of a validation.

	pubchem: a PUG REST client and a downloader for PubChem 2D templates.

	config: settings shared by the commands.

	v3: the Nx3 coordinate matrix.

Commands: ccd-mogul and pubchem-downloader, in cmd/.
*/
package ccd
