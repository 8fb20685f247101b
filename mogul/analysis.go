/*
 * analysis.go, part of goccd.
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
	"context"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/charmbracelet/log"
	ccd "github.com/pdbe-tools/goccd"
	"github.com/pdbe-tools/goccd/chemgraph"
	v3 "github.com/pdbe-tools/goccd/v3"
	"gonum.org/v1/gonum/stat"
)

// Analysis contains the engine results for a component, with one store of
// fragments per feature kind.
type Analysis struct {
	Component  *ccd.Component `json:"-"`
	Coords     *v3.Matrix     `json:"-"`
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Formula    string         `json:"formula"`
	CoordSet   ccd.CoordSet   `json:"coordinates"`
	Thresholds Thresholds     `json:"thresholds"`
	Bonds      []*Fragment    `json:"bonds"`
	Angles     []*Fragment    `json:"angles"`
	Torsions   []*Fragment    `json:"torsions"`
	Rings      []*Fragment    `json:"rings"`
	//Expected is the number of features of each kind found in the component,
	//which can be compared with the number of fragments the engine reported.
	Expected map[ccd.FeatureKind]int `json:"expected"`
}

// Store returns the fragments of the given kind.
func (A *Analysis) Store(kind ccd.FeatureKind) []*Fragment {
	switch kind {
	case ccd.BondKind:
		return A.Bonds
	case ccd.AngleKind:
		return A.Angles
	case ccd.TorsionKind:
		return A.Torsions
	case ccd.RingKind:
		return A.Rings
	}
	return nil
}

func (A *Analysis) add(F *Fragment) {
	switch F.Kind {
	case ccd.BondKind:
		A.Bonds = append(A.Bonds, F)
	case ccd.AngleKind:
		A.Angles = append(A.Angles, F)
	case ccd.TorsionKind:
		A.Torsions = append(A.Torsions, F)
	case ccd.RingKind:
		A.Rings = append(A.Rings, F)
	}
}

// Len returns the number of fragments of the given kind.
func (A *Analysis) Len(kind ccd.FeatureKind) int {
	return len(A.Store(kind))
}

// Outliers returns the outlier fragments of the given kind, the worst ones
// first: by |z| for bonds and angles, by d(min) for torsions and rings.
func (A *Analysis) Outliers(kind ccd.FeatureKind) []*Fragment {
	var ret []*Fragment
	for _, f := range A.Store(kind) {
		if f.Status == Outlier {
			ret = append(ret, f)
		}
	}
	score := func(f *Fragment) float64 {
		if kind == ccd.BondKind || kind == ccd.AngleKind {
			return math.Abs(f.Z)
		}
		return f.DMin
	}
	sort.SliceStable(ret, func(i, j int) bool { return score(ret[i]) > score(ret[j]) })
	return ret
}

// RMSZ returns the root mean square of the z-scores of the fragments of the
// given kind, or NaN if no fragment has a z-score.
func (A *Analysis) RMSZ(kind ccd.FeatureKind) float64 {
	var sq []float64
	for _, f := range A.Store(kind) {
		if f.Status != NoHits && !math.IsNaN(f.Z) {
			sq = append(sq, f.Z*f.Z)
		}
	}
	if len(sq) == 0 {
		return math.NaN()
	}
	return math.Sqrt(stat.Mean(sq, nil))
}

// ZScores returns the z-scores of the classified fragments of the given kind.
func (A *Analysis) ZScores(kind ccd.FeatureKind) []float64 {
	var ret []float64
	for _, f := range A.Store(kind) {
		if f.Status != NoHits && !math.IsNaN(f.Z) {
			ret = append(ret, f.Z)
		}
	}
	return ret
}

// Options for Analyze. The zero value uses the automatic coordinate set, the
// default thresholds and the default logger.
type Options struct {
	Coords     ccd.CoordSet
	Thresholds *Thresholds
	Log        *log.Logger
}

// Analyze runs the engine behind H on the component and returns the classified
// results. If H is an io.Closer, it is closed before returning.
func Analyze(ctx context.Context, H Handle, comp *ccd.Component, opts Options) (*Analysis, error) {
	if closer, ok := H.(io.Closer); ok {
		defer closer.Close()
	}
	l := opts.Log
	if l == nil {
		l = log.Default()
	}
	th := DefaultThresholds()
	if opts.Thresholds != nil {
		th = *opts.Thresholds
	}
	coords, set, err := comp.Coords(opts.Coords)
	if err != nil {
		return nil, fmt.Errorf("Analyze: %w", err)
	}
	l.Debug("analyzing component", "id", comp.ID, "atoms", comp.Len(), "bonds", len(comp.Bonds), "coordinates", set)
	name := comp.ID
	if name == "" {
		name = "goccd"
	}
	H.SetName(name)
	if err := H.BuildInput(comp, coords); err != nil {
		return nil, decorate(err, "Analyze")
	}
	if err := H.Run(ctx); err != nil {
		return nil, decorate(err, "Analyze")
	}
	frags, err := H.Results()
	if err != nil {
		return nil, decorate(err, "Analyze")
	}
	A := &Analysis{
		Component:  comp,
		Coords:     coords,
		ID:         comp.ID,
		Name:       comp.Name,
		Formula:    comp.Formula,
		CoordSet:   set,
		Thresholds: th,
		Expected:   expected(comp, coords),
	}
	for _, f := range frags {
		f.Names = comp.Names(f.Atoms)
		if math.IsNaN(f.Observed) {
			f.Observed, _ = ccd.Measure(f.Kind, coords, f.Atoms)
		}
		f.Puckering = math.NaN()
		if f.Kind == ccd.RingKind {
			if f.Puckering, _, err = ccd.Puckering(coords, f.Atoms); err != nil {
				l.Debug("cannot measure ring puckering", "atoms", f.Names, "err", err)
			}
		}
		if math.IsNaN(f.Z) && f.SD > 0 && !math.IsNaN(f.Mean) && !math.IsNaN(f.Observed) {
			f.Z = (f.Observed - f.Mean) / f.SD
		}
		f.Status = th.Classify(f)
		A.add(f)
	}
	for _, k := range ccd.Kinds {
		if got, want := A.Len(k), A.Expected[k]; got != want {
			l.Debug("engine fragments differ from the component's features", "kind", k, "fragments", got, "features", want)
		}
	}
	return A, nil
}

func expected(comp *ccd.Component, coords *v3.Matrix) map[ccd.FeatureKind]int {
	return map[ccd.FeatureKind]int{
		ccd.BondKind:    len(ccd.BondFeatures(comp, coords)),
		ccd.AngleKind:   len(ccd.AngleFeatures(comp, coords)),
		ccd.TorsionKind: len(ccd.TorsionFeatures(comp, coords)),
		ccd.RingKind:    len(chemgraph.Rings(comp)),
	}
}

func decorate(err error, caller string) error {
	if e, ok := err.(*Error); ok {
		e.Decorate(caller)
	}
	return err
}
