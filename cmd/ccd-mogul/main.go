/*
 * main.go, part of goccd.
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

// Command ccd-mogul reads a PDB-CCD mmCIF file, validates its geometry against
// the CSD with Mogul and writes an HTML report of the results.
//
//	ccd-mogul [flags] CIF OUT_DIR
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	ccd "github.com/pdbe-tools/goccd"
	"github.com/pdbe-tools/goccd/config"
	"github.com/pdbe-tools/goccd/mogul"
	"github.com/pdbe-tools/goccd/report"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	debug   bool
	config  string
	results string
	coords  string
	keep    bool
	print   bool
	density bool
}

// parseArgs parses args allowing flags after the positional arguments.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var pos []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return pos, nil
		}
		pos = append(pos, args[0])
		args = args[1:]
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	var o options
	fs := flag.NewFlagSet("ccd-mogul", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: ccd-mogul [flags] CIF OUT_DIR")
		fmt.Fprintln(stderr, "Runs Mogul on the coordinates of a PDB-CCD mmCIF file and writes an HTML report in OUT_DIR.")
		fs.PrintDefaults()
	}
	fs.BoolVar(&o.debug, "debug", false, "turn on debug message logging output")
	fs.StringVar(&o.config, "config", "", "YAML configuration `file`")
	fs.StringVar(&o.results, "results", "", "use the Mogul CSV results in `file` instead of running Mogul")
	fs.StringVar(&o.coords, "coords", "", "coordinate set to analyze: ideal, model or auto")
	fs.BoolVar(&o.keep, "keep", false, "keep the Mogul work directory")
	fs.BoolVar(&o.density, "density", false, "plot the z-score histogram as a density instead of counts")
	fs.BoolVar(&o.print, "print-config", false, "print the effective configuration as YAML and exit")
	pos, err := parseArgs(fs, args)
	if err == flag.ErrHelp {
		return 0
	}
	if err != nil {
		return 2
	}
	if len(pos) != 2 && !o.print {
		fs.Usage()
		return 2
	}

	l := log.NewWithOptions(stderr, log.Options{Prefix: "ccd-mogul"})
	if o.debug {
		l.SetLevel(log.DebugLevel)
	}
	cfg, err := config.Load(o.config)
	if err != nil {
		fmt.Fprintf(stdout, "ERROR %v\n", err)
		return 1
	}
	if o.coords != "" {
		cfg.Mogul.Coordinates = o.coords
	}
	cfg.Mogul.Keep = cfg.Mogul.Keep || o.keep
	set, err := cfg.Mogul.CoordSet()
	if err != nil {
		fmt.Fprintf(stderr, "ccd-mogul: %v\n", err)
		return 2
	}
	if o.print {
		if err := cfg.WriteYAML(stdout); err != nil {
			fmt.Fprintf(stdout, "ERROR %v\n", err)
			return 1
		}
		return 0
	}
	cifFile, outDir := pos[0], pos[1]
	l.Debug("input PDB-CCD cif file", "file", cifFile)
	l.Debug("output directory", "dir", outDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	comp, err := ccd.ComponentFileRead(cifFile)
	if err != nil {
		fmt.Fprintf(stdout, "ERROR %v\n", err)
		return 1
	}
	var H mogul.Handle
	if o.results != "" {
		H = mogul.NewReplayHandle(o.results)
	} else {
		h := mogul.NewCSDHandle()
		h.SetCommand(cfg.Mogul.Command)
		h.SetWorkDir(cfg.Mogul.WorkDir)
		h.SetKeep(cfg.Mogul.Keep)
		h.SetLogger(l)
		H = h
	}
	th := cfg.Mogul.Thresholds
	A, err := mogul.Analyze(ctx, H, comp, mogul.Options{Coords: set, Thresholds: &th, Log: l})
	if err != nil {
		fmt.Fprintf(stdout, "ERROR %v\n", err)
		return 1
	}
	l.Debug(fmt.Sprintf("mogul results for %d bonds, %d angles, %d torsions and %d rings",
		A.Len(ccd.BondKind), A.Len(ccd.AngleKind), A.Len(ccd.TorsionKind), A.Len(ccd.RingKind)))

	if st, err := os.Stat(outDir); err != nil || !st.IsDir() {
		if err := os.Mkdir(outDir, 0o755); err != nil {
			fmt.Fprintf(stdout, "ERROR cannot mkdir %s as %v\n", outDir, err)
			return 1
		}
		l.Debug("have made output directory", "dir", outDir)
	}
	if err := report.Write(outDir, A, report.Options{ZLimit: max(5, 2*th.Z), Density: o.density, Log: l}); err != nil {
		fmt.Fprintf(stdout, "ERROR %v\n", err)
		return 1
	}
	nout := 0
	for _, k := range ccd.Kinds {
		nout += len(A.Outliers(k))
	}
	l.Info("report written", "id", A.ID, "outliers", nout, "dir", outDir)
	return 0
}
