/*
 * report.go, part of goccd.
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

// Package report renders the results of a geometry validation as a static HTML
// report, with a depiction of the component, the z-score distribution and a
// machine-readable copy of the results.
package report

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	ccd "github.com/pdbe-tools/goccd"
	"github.com/pdbe-tools/goccd/chemplot"
	"github.com/pdbe-tools/goccd/histo"
	"github.com/pdbe-tools/goccd/mogul"
)

// Names of the files written in the report directory.
const (
	IndexFile   = "index.html"
	DiagramFile = "diagram.svg"
	ZScoreFile  = "zscores.svg"
	JSONFile    = "mogul.json"
)

//go:embed templates/index.html.tmpl
var templates embed.FS

var funcs = template.FuncMap{
	"num":   num,
	"lower": strings.ToLower,
	"rowclass": func(s mogul.Status) string {
		switch s {
		case mogul.Outlier:
			return "outlier"
		case mogul.NoHits:
			return "nohits"
		}
		return "normal"
	},
}

var index = template.Must(template.New("index.html.tmpl").Funcs(funcs).ParseFS(templates, "templates/index.html.tmpl"))

// num formats f with prec decimals, or a dash if f is not a number.
func num(f float64, prec int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "-"
	}
	return strconv.FormatFloat(f, 'f', prec, 64)
}

// Options for Write. The zero value is usable.
type Options struct {
	ZLimit        float64 //z-scores are histogrammed in [-ZLimit, ZLimit), 5 if zero
	HideHydrogens bool
	NoFigures     bool
	Density       bool //plot the z-score histogram as fractions of the total
	Log           *log.Logger
}

type kindView struct {
	Title     string
	Unit      string
	Rings     bool
	Count     int
	Expected  int
	NOutliers int
	NoHits    int
	RMSZ      float64
	Outliers  []*mogul.Fragment
	Fragments []*mogul.Fragment
}

type page struct {
	ID         string
	Name       string
	Formula    string
	CoordSet   string
	Thresholds mogul.Thresholds
	Kinds      []kindView
	Diagram    string
	ZScores    string
	JSON       string
}

var titles = map[ccd.FeatureKind]string{
	ccd.BondKind:    "Bonds",
	ccd.AngleKind:   "Angles",
	ccd.TorsionKind: "Torsions",
	ccd.RingKind:    "Rings",
}

// Write writes the report for the analysis A in the directory dir, which must
// exist.
func Write(dir string, A *mogul.Analysis, opts Options) error {
	l := opts.Log
	if l == nil {
		l = log.Default()
	}
	if opts.ZLimit <= 0 {
		opts.ZLimit = 5
	}
	st, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("report.Write: %w", err)
	}
	if !st.IsDir() {
		return fmt.Errorf("report.Write: %s is not a directory", dir)
	}
	p := page{
		ID:         A.ID,
		Name:       A.Name,
		Formula:    A.Formula,
		CoordSet:   A.CoordSet.String(),
		Thresholds: A.Thresholds,
		JSON:       JSONFile,
	}
	for _, k := range ccd.Kinds {
		kv := kindView{
			Title:     titles[k],
			Unit:      "(°)",
			Rings:     k == ccd.RingKind,
			Count:     A.Len(k),
			Expected:  A.Expected[k],
			RMSZ:      A.RMSZ(k),
			Outliers:  A.Outliers(k),
			Fragments: A.Store(k),
		}
		if k == ccd.BondKind {
			kv.Unit = "(Å)"
		}
		kv.NOutliers = len(kv.Outliers)
		for _, f := range kv.Fragments {
			if f.Status == mogul.NoHits {
				kv.NoHits++
			}
		}
		p.Kinds = append(p.Kinds, kv)
	}
	if !opts.NoFigures {
		if err := writeDiagram(filepath.Join(dir, DiagramFile), A, opts); err != nil {
			//a report without figures is still useful.
			l.Warn("could not draw the component", "id", A.ID, "err", err)
		} else {
			p.Diagram = DiagramFile
		}
		ok, err := writeZScores(filepath.Join(dir, ZScoreFile), A, opts, l)
		if err != nil {
			l.Warn("could not plot the z-scores", "id", A.ID, "err", err)
		} else if ok {
			p.ZScores = ZScoreFile
		}
	}
	j, err := json.MarshalIndent(A, "", "  ")
	if err != nil {
		return fmt.Errorf("report.Write: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, JSONFile), j, 0o644); err != nil {
		return fmt.Errorf("report.Write: %w", err)
	}
	var buf bytes.Buffer
	if err := index.Execute(&buf, p); err != nil {
		return fmt.Errorf("report.Write: rendering %s: %w", IndexFile, err)
	}
	if err := os.WriteFile(filepath.Join(dir, IndexFile), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("report.Write: %w", err)
	}
	l.Debug("report written", "dir", dir, "diagram", p.Diagram != "", "zscores", p.ZScores != "")
	return nil
}

// Highlights returns the bonds and atoms involved in outliers: the bonds of
// outlier bonds and torsions (the central bond), the central atom of outlier
// angles and the atoms of outlier rings.
func Highlights(A *mogul.Analysis) chemplot.Highlights {
	hl := chemplot.Highlights{Bonds: map[int]bool{}, Atoms: map[int]bool{}}
	if A.Component == nil {
		return hl
	}
	bonds := make(map[[2]int]int, len(A.Component.Bonds))
	for _, b := range A.Component.Bonds {
		bonds[[2]int{b.At1.Index, b.At2.Index}] = b.Index
		bonds[[2]int{b.At2.Index, b.At1.Index}] = b.Index
	}
	markBond := func(i, j int) {
		if b, ok := bonds[[2]int{i, j}]; ok {
			hl.Bonds[b] = true
		}
	}
	for _, f := range A.Outliers(ccd.BondKind) {
		markBond(f.Atoms[0], f.Atoms[1])
	}
	for _, f := range A.Outliers(ccd.AngleKind) {
		hl.Atoms[f.Atoms[1]] = true
	}
	for _, f := range A.Outliers(ccd.TorsionKind) {
		markBond(f.Atoms[1], f.Atoms[2])
	}
	for _, f := range A.Outliers(ccd.RingKind) {
		for _, a := range f.Atoms {
			hl.Atoms[a] = true
		}
	}
	return hl
}

func writeDiagram(name string, A *mogul.Analysis, opts Options) error {
	if A.Component == nil || A.Coords == nil {
		return fmt.Errorf("no structure to draw")
	}
	return chemplot.Depiction(A.Component, A.Coords, Highlights(A), A.ID, name, chemplot.DepictionOptions{HideHydrogens: opts.HideHydrogens})
}

// writeZScores plots the z-scores of bonds and angles. It returns false
// without error if there are no z-scores to plot.
func writeZScores(name string, A *mogul.Analysis, opts Options, l *log.Logger) (bool, error) {
	div := histo.ZDividers(opts.ZLimit, 0.5)
	data := make(map[string]*histo.Data)
	for _, k := range []ccd.FeatureKind{ccd.BondKind, ccd.AngleKind} {
		z := A.ZScores(k)
		if len(z) == 0 {
			continue
		}
		D := histo.NewData(div, nil, int(k))
		D.AddClamped(z...)
		if opts.Density {
			D.Normalize()
		}
		l.Debug("z-score histogram", "kind", k, "points", D.Total(), "bins", D.String())
		data[strings.ToLower(titles[k])] = D
	}
	if len(data) == 0 {
		return false, nil
	}
	return true, chemplot.ZScoreHistogram(data, A.Thresholds.Z, A.ID+" z-scores", name)
}
