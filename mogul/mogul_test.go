/*
 * mogul_test.go, part of goccd.
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
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	ccd "github.com/pdbe-tools/goccd"
)

func benzene(Te *testing.T) *ccd.Component {
	Te.Helper()
	comp, err := ccd.ComponentFileRead("../test/BNZ.cif")
	if err != nil {
		Te.Fatal(err)
	}
	return comp
}

func TestParseCSV(Te *testing.T) {
	f, err := os.Open("../test/BNZ_mogul.csv")
	if err != nil {
		Te.Fatal(err)
	}
	defer f.Close()
	frags, err := ParseCSV(f, 12)
	if err != nil {
		Te.Fatal(err)
	}
	count := make(map[ccd.FeatureKind]int)
	for _, fr := range frags {
		count[fr.Kind]++
	}
	want := map[ccd.FeatureKind]int{ccd.BondKind: 12, ccd.AngleKind: 18, ccd.TorsionKind: 24, ccd.RingKind: 1}
	for k, n := range want {
		if count[k] != n {
			Te.Errorf("expected %d %ss, got %d", n, k, count[k])
		}
	}
	first := frags[0]
	if first.Atoms[0] != 0 || first.Atoms[1] != 1 {
		Te.Errorf("atom indexes should be 0-based, got %v", first.Atoms)
	}
	if first.Hits != 2146 || math.Abs(first.Mean-1.384) > 1e-9 || math.Abs(first.Z-0.6) > 1e-9 {
		Te.Errorf("wrongly parsed fragment: %+v", first)
	}
	ring := frags[len(frags)-1]
	if ring.Kind != ccd.RingKind || len(ring.Atoms) != 6 || !math.IsNaN(ring.Z) {
		Te.Errorf("wrongly parsed ring: %+v", ring)
	}
}

func TestParseCSVErrors(Te *testing.T) {
	cases := map[string]string{
		"out of range": "Type,Atom Indices\nBond,1 13\n",
		"bad index":    "Type,Atom Indices\nBond,1 x\n",
		"wrong atoms":  "Type,Atom Indices\nAngle,1 2\n",
		"no column":    "Type,Value\nBond,1.0\n",
	}
	for name, in := range cases {
		if _, err := ParseCSV(strings.NewReader(in), 12); !errors.Is(err, ErrBadResults) {
			Te.Errorf("%s: expected ErrBadResults, got %v", name, err)
		}
	}
	if _, err := ParseCSV(strings.NewReader(""), 12); !errors.Is(err, ErrNoResults) {
		Te.Errorf("empty input: expected ErrNoResults, got %v", err)
	}
}

func TestClassify(Te *testing.T) {
	th := DefaultThresholds()
	nan := math.NaN()
	cases := []struct {
		f    Fragment
		want Status
	}{
		{Fragment{Kind: ccd.BondKind, Hits: 10, Z: 2.5, DMin: nan}, Outlier},
		{Fragment{Kind: ccd.BondKind, Hits: 10, Z: -2.5, DMin: nan}, Outlier},
		{Fragment{Kind: ccd.AngleKind, Hits: 10, Z: 1.9, DMin: nan}, Normal},
		{Fragment{Kind: ccd.AngleKind, Hits: 0, Z: 9, DMin: nan}, NoHits},
		{Fragment{Kind: ccd.TorsionKind, Hits: 10, Z: 9, DMin: 2}, Normal},
		{Fragment{Kind: ccd.TorsionKind, Hits: 10, Z: nan, DMin: 12}, Outlier},
		{Fragment{Kind: ccd.RingKind, Hits: 3, Z: nan, DMin: 10.5}, Outlier},
		{Fragment{Kind: ccd.RingKind, Hits: 3, Z: nan, DMin: nan}, Normal},
	}
	for i, c := range cases {
		if got := th.Classify(&c.f); got != c.want {
			Te.Errorf("case %d: expected %s, got %s", i, c.want, got)
		}
	}
}

func checkBenzene(Te *testing.T, A *Analysis) {
	Te.Helper()
	for k, n := range map[ccd.FeatureKind]int{ccd.BondKind: 12, ccd.AngleKind: 18, ccd.TorsionKind: 24, ccd.RingKind: 1} {
		if A.Len(k) != n {
			Te.Errorf("expected %d %ss, got %d", n, k, A.Len(k))
		}
		if A.Expected[k] != n {
			Te.Errorf("expected %d %s features, got %d", n, k, A.Expected[k])
		}
	}
	bo := A.Outliers(ccd.BondKind)
	if len(bo) != 1 || bo[0].Label() != "C1-H1" {
		Te.Errorf("expected C1-H1 as the only bond outlier, got %v", bo)
	}
	ao := A.Outliers(ccd.AngleKind)
	if len(ao) != 1 || math.Abs(ao[0].Z-3) > 1e-6 {
		Te.Errorf("expected one angle outlier with a computed z of 3, got %v", ao)
	}
	if to := A.Outliers(ccd.TorsionKind); len(to) != 1 || to[0].DMin != 25 {
		Te.Errorf("expected one torsion outlier, got %v", to)
	}
	nohits := 0
	for _, f := range A.Torsions {
		if f.Status == NoHits {
			nohits++
		}
	}
	if nohits != 1 {
		Te.Errorf("expected 1 torsion without hits, got %d", nohits)
	}
	if r := A.RMSZ(ccd.BondKind); math.Abs(r-4.3509) > 1e-3 {
		Te.Errorf("expected bond RMSZ 4.3509, got %f", r)
	}
	if r := A.RMSZ(ccd.RingKind); !math.IsNaN(r) {
		Te.Errorf("rings have no z-scores, RMSZ should be NaN, got %f", r)
	}
	ring := A.Rings[0]
	if ring.Observed > 1e-6 || ring.Puckering > 1e-6 {
		Te.Errorf("the benzene ring is planar, got %f (Q=%f)", ring.Observed, ring.Puckering)
	}
}

func TestAnalyzeReplay(Te *testing.T) {
	comp := benzene(Te)
	A, err := Analyze(context.Background(), NewReplayHandle("../test/BNZ_mogul.csv"), comp, Options{})
	if err != nil {
		Te.Fatal(err)
	}
	if A.CoordSet != ccd.IdealCoords {
		Te.Errorf("expected ideal coordinates to be chosen, got %s", A.CoordSet)
	}
	checkBenzene(Te, A)
	b, err := json.Marshal(A)
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(string(b), `"status":"outlier"`) || !strings.Contains(string(b), `"z":null`) {
		Te.Errorf("unexpected JSON: %s", b)
	}
	var back struct {
		Rings []*Fragment `json:"rings"`
	}
	if err := json.Unmarshal(b, &back); err != nil {
		Te.Fatal(err)
	}
	if len(back.Rings) != 1 || !math.IsNaN(back.Rings[0].Z) || back.Rings[0].DMin != 1.2 {
		Te.Errorf("ring didn't survive the JSON round: %+v", back.Rings)
	}
}

func TestAnalyzeMissingResults(Te *testing.T) {
	comp := benzene(Te)
	_, err := Analyze(context.Background(), NewReplayHandle("../test/nothere.csv"), comp, Options{})
	if !errors.Is(err, ErrNoResults) {
		Te.Errorf("expected ErrNoResults, got %v", err)
	}
}

func fakeEngine(Te *testing.T) string {
	Te.Helper()
	if runtime.GOOS == "windows" {
		Te.Skip("the fake engine is a shell script")
	}
	cmd, err := filepath.Abs("../test/fake-mogul.sh")
	if err != nil {
		Te.Fatal(err)
	}
	csv, err := filepath.Abs("../test/BNZ_mogul.csv")
	if err != nil {
		Te.Fatal(err)
	}
	Te.Setenv("FAKE_MOGUL_CSV", csv)
	return cmd
}

func TestCSDHandle(Te *testing.T) {
	cmd := fakeEngine(Te)
	comp := benzene(Te)
	work := Te.TempDir()
	H := NewCSDHandle()
	H.SetCommand(cmd)
	H.SetWorkDir(work)
	H.SetKeep(true)
	A, err := Analyze(context.Background(), H, comp, Options{})
	if err != nil {
		Te.Fatal(err)
	}
	checkBenzene(Te, A)
	ins, err := os.ReadFile(filepath.Join(H.Dir(), "BNZ.ins"))
	if err != nil {
		Te.Fatal(err)
	}
	for _, l := range []string{"BOND ALL", "ANGLE ALL", "TORSION ALL", "RING ALL", "MOGUL OUTPUT_FORMAT CSV"} {
		if !strings.Contains(string(ins), l) {
			Te.Errorf("instruction file lacks %q:\n%s", l, ins)
		}
	}
	sdf, err := os.ReadFile(filepath.Join(H.Dir(), "BNZ.sdf"))
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(string(sdf), " 12 12  0") {
		Te.Errorf("unexpected counts line in:\n%s", sdf)
	}
}

func TestCSDHandleCleansUp(Te *testing.T) {
	cmd := fakeEngine(Te)
	comp := benzene(Te)
	work := Te.TempDir()
	H := NewCSDHandle()
	H.SetCommand(cmd)
	H.SetWorkDir(work)
	if _, err := Analyze(context.Background(), H, comp, Options{}); err != nil {
		Te.Fatal(err)
	}
	entries, err := os.ReadDir(work)
	if err != nil {
		Te.Fatal(err)
	}
	if len(entries) != 0 {
		Te.Errorf("the job directory should have been removed, found %v", entries)
	}
}

func TestCSDHandleFailure(Te *testing.T) {
	cmd := fakeEngine(Te)
	Te.Setenv("FAKE_MOGUL_FAIL", "no licence")
	comp := benzene(Te)
	H := NewCSDHandle()
	H.SetCommand(cmd)
	H.SetWorkDir(Te.TempDir())
	_, err := Analyze(context.Background(), H, comp, Options{})
	if !errors.Is(err, ErrNotRunning) {
		Te.Fatalf("expected ErrNotRunning, got %v", err)
	}
	var e *Error
	if !errors.As(err, &e) || !e.Critical() || len(e.Decorate("")) < 2 {
		Te.Errorf("expected a decorated critical *Error, got %#v", err)
	}
}

func TestCSDHandleDefaults(Te *testing.T) {
	Te.Setenv("CSDHOME", "/opt/csd")
	if c := NewCSDHandle().Command(); c != "/opt/csd/bin/mogul" {
		Te.Errorf("expected /opt/csd/bin/mogul, got %s", c)
	}
	Te.Setenv("CSDHOME", "")
	if c := NewCSDHandle().Command(); c != "mogul" {
		Te.Errorf("expected mogul, got %s", c)
	}
}
