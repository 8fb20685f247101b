/*
 * handle.go, part of goccd.
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
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	ccd "github.com/pdbe-tools/goccd"
	v3 "github.com/pdbe-tools/goccd/v3"
)

// Handle allows to analyze a component with different engines, or without
// running one.
type Handle interface {
	//SetName sets the name of the job, used for the input
	//and output files.
	SetName(name string)

	//BuildInput prepares the engine input for the component with the
	//given coordinates.
	BuildInput(comp *ccd.Component, coords *v3.Matrix) error

	//Run runs the engine for the input previously built, and waits
	//for it to finish, or for ctx to be done.
	Run(ctx context.Context) error

	//Results parses the output of the last run.
	Results() ([]*Fragment, error)
}

const CSD = "Mogul"

// CSDHandle runs the command-line Mogul program from the CSD suite. Each job
// runs in its own work directory, which is removed by Close unless the handle
// was told to keep it.
type CSDHandle struct {
	command   string
	inputname string
	workdir   string //parent of the job directory, the system's default if empty
	dir       string //job directory
	keep      bool
	natoms    int
	log       *log.Logger
}

func NewCSDHandle() *CSDHandle {
	run := new(CSDHandle)
	run.SetDefaults()
	return run
}

// SetDefaults sets the command to $CSDHOME/bin/mogul if CSDHOME is defined,
// or to mogul (found in the PATH) otherwise.
func (O *CSDHandle) SetDefaults() {
	O.command = "mogul"
	if os.Getenv("CSDHOME") != "" {
		O.command = os.ExpandEnv("$CSDHOME/bin/mogul")
	}
	O.log = log.Default()
}

func (O *CSDHandle) SetName(name string) {
	O.inputname = name
}

// SetCommand sets the engine command. Environment variables in it are expanded,
// and extra words are passed to the program as arguments before the
// instruction file.
func (O *CSDHandle) SetCommand(command string) {
	O.command = os.ExpandEnv(command)
}

func (O *CSDHandle) Command() string {
	return O.command
}

// SetWorkDir sets the directory under which job directories are created.
func (O *CSDHandle) SetWorkDir(dir string) {
	O.workdir = dir
}

// SetKeep sets whether the job directory is kept after Close.
func (O *CSDHandle) SetKeep(keep bool) {
	O.keep = keep
}

func (O *CSDHandle) SetLogger(l *log.Logger) {
	if l != nil {
		O.log = l
	}
}

// Dir returns the job directory, empty before BuildInput.
func (O *CSDHandle) Dir() string {
	return O.dir
}

func (O *CSDHandle) file(ext string) string {
	return filepath.Join(O.dir, O.inputname+ext)
}

// BuildInput writes the component as an SD file and an instruction file that
// asks for the analysis of all bonds, angles, torsions and rings, with the results
// in CSV format.
func (O *CSDHandle) BuildInput(comp *ccd.Component, coords *v3.Matrix) error {
	if O.inputname == "" {
		O.inputname = "goccd"
	}
	if comp == nil || coords == nil {
		return newError(ErrCantInput, CSD, O.inputname, "no component or coordinates", "BuildInput")
	}
	if O.dir == "" {
		dir, err := os.MkdirTemp(O.workdir, "goccd-mogul-")
		if err != nil {
			return newError(ErrCantInput, CSD, O.inputname, err.Error(), "os.MkdirTemp", "BuildInput")
		}
		O.dir = dir
	}
	if err := ccd.SDFFileWrite(O.file(".sdf"), comp, coords); err != nil {
		return newError(ErrCantInput, CSD, O.inputname, err.Error(), "SDFFileWrite", "BuildInput")
	}
	O.natoms = comp.Len()
	ins, err := os.Create(O.file(".ins"))
	if err != nil {
		return newError(ErrCantInput, CSD, O.inputname, err.Error(), "os.Create", "BuildInput")
	}
	defer ins.Close()
	lines := []string{
		"MOGUL MOLECULE_FILE " + O.file(".sdf"),
		"MOGUL OUTPUT_FILE " + O.file(".csv"),
		"MOGUL OUTPUT_FORMAT CSV",
		"MOGUL OUTPUT_ITEMS FRAGMENT_TYPE ATOM_INDICES QUERY_VALUE NUMBER_HITS MEAN STANDARD_DEVIATION Z_SCORE DMIN",
		"BOND ALL",
		"ANGLE ALL",
		"TORSION ALL",
		"RING ALL",
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(ins, l); err != nil {
			return newError(ErrCantInput, CSD, O.inputname, err.Error(), "fmt.Fprintln", "BuildInput")
		}
	}
	return nil
}

// Run runs the engine on the instruction file, with the output of the program
// going to <name>.log in the job directory.
func (O *CSDHandle) Run(ctx context.Context) error {
	if O.dir == "" {
		return newError(ErrNotRunning, CSD, O.inputname, "no input built", "Run")
	}
	args := strings.Fields(O.command)
	if len(args) == 0 {
		return newError(ErrNotRunning, CSD, O.inputname, "empty command", "Run")
	}
	args = append(args, "-ins", O.file(".ins"))
	logfile, err := os.Create(O.file(".log"))
	if err != nil {
		return newError(ErrNotRunning, CSD, O.inputname, err.Error(), "os.Create", "Run")
	}
	defer logfile.Close()
	command := exec.CommandContext(ctx, args[0], args[1:]...)
	command.Dir = O.dir
	command.Stdout = logfile
	command.Stderr = logfile
	O.log.Debug("running engine", "command", strings.Join(args, " "), "dir", O.dir)
	if err := command.Run(); err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return newError(ErrNotRunning, CSD, O.inputname, fmt.Sprintf("%v (see %s)", err, O.file(".log")), "exec.Run", "Run")
	}
	return nil
}

// Results parses the CSV file written by the engine.
func (O *CSDHandle) Results() ([]*Fragment, error) {
	f, err := os.Open(O.file(".csv"))
	if err != nil {
		return nil, newError(ErrNoResults, CSD, O.inputname, err.Error(), "os.Open", "Results")
	}
	defer f.Close()
	frags, err := ParseCSV(f, O.natoms)
	if err != nil {
		return nil, newError(ErrBadResults, CSD, O.inputname, err.Error(), "ParseCSV", "Results")
	}
	return frags, nil
}

// Close removes the job directory, unless the handle keeps it.
func (O *CSDHandle) Close() error {
	if O.dir == "" {
		return nil
	}
	if O.keep {
		O.log.Info("keeping engine files", "dir", O.dir)
		return nil
	}
	err := os.RemoveAll(O.dir)
	O.dir = ""
	return err
}

// ReplayHandle reads the results of a previous engine run from a CSV file
// instead of running the engine.
type ReplayHandle struct {
	results   string
	inputname string
	natoms    int
}

func NewReplayHandle(results string) *ReplayHandle {
	return &ReplayHandle{results: results}
}

func (O *ReplayHandle) SetName(name string) {
	O.inputname = name
}

func (O *ReplayHandle) BuildInput(comp *ccd.Component, coords *v3.Matrix) error {
	if comp == nil {
		return newError(ErrCantInput, "replay", O.inputname, "no component", "BuildInput")
	}
	O.natoms = comp.Len()
	return nil
}

func (O *ReplayHandle) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return newError(ErrNotRunning, "replay", O.inputname, err.Error(), "Run")
	}
	if _, err := os.Stat(O.results); err != nil {
		return newError(ErrNoResults, "replay", O.inputname, err.Error(), "os.Stat", "Run")
	}
	return nil
}

func (O *ReplayHandle) Results() ([]*Fragment, error) {
	f, err := os.Open(O.results)
	if err != nil {
		return nil, newError(ErrNoResults, "replay", O.inputname, err.Error(), "os.Open", "Results")
	}
	defer f.Close()
	frags, err := ParseCSV(f, O.natoms)
	if err != nil {
		return nil, newError(ErrBadResults, "replay", O.inputname, err.Error(), "ParseCSV", "Results")
	}
	return frags, nil
}
