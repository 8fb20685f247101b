package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdbe-tools/goccd/report"
)

func TestRun(Te *testing.T) {
	out := filepath.Join(Te.TempDir(), "BNZ_report")
	var stdout, stderr bytes.Buffer
	//flags after the positional arguments are accepted.
	code := run([]string{"../../test/BNZ.cif", out, "--results", "../../test/BNZ_mogul.csv", "--debug"}, &stdout, &stderr)
	if code != 0 {
		Te.Fatalf("exit code %d, stdout %q stderr %q", code, stdout.String(), stderr.String())
	}
	if _, err := os.Stat(filepath.Join(out, report.IndexFile)); err != nil {
		Te.Errorf("no report written: %v", err)
	}
	if !strings.Contains(stderr.String(), "mogul results for 12 bonds, 18 angles, 24 torsions and 1 rings") {
		Te.Errorf("missing debug summary in %q", stderr.String())
	}
	//an existing directory is reused.
	stdout.Reset()
	if code := run([]string{"--results=../../test/BNZ_mogul.csv", "../../test/BNZ.cif", out}, &stdout, &stderr); code != 0 {
		Te.Errorf("exit code %d on an existing directory: %s", code, stdout.String())
	}
	stdout.Reset()
	if code := run([]string{"--density", "--results=../../test/BNZ_mogul.csv", "../../test/BNZ.cif", out}, &stdout, &stderr); code != 0 {
		Te.Fatalf("exit code %d with --density: %s", code, stdout.String())
	}
	svg, err := os.ReadFile(filepath.Join(out, report.ZScoreFile))
	if err != nil || !strings.Contains(string(svg), "density") {
		Te.Errorf("expected a density z-score plot: %v", err)
	}
}

func TestRunBadInput(Te *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"../../test/bad.cif", Te.TempDir(), "--results", "../../test/BNZ_mogul.csv"}, &stdout, &stderr)
	if code != 1 || !strings.HasPrefix(stdout.String(), "ERROR ") {
		Te.Errorf("expected exit 1 and an ERROR line, got %d %q", code, stdout.String())
	}
	stdout.Reset()
	code = run([]string{"../../test/nothere.cif", Te.TempDir(), "--results", "../../test/BNZ_mogul.csv"}, &stdout, &stderr)
	if code != 1 || !strings.HasPrefix(stdout.String(), "ERROR ") {
		Te.Errorf("expected exit 1 for a missing file, got %d %q", code, stdout.String())
	}
}

func TestRunEngineFailure(Te *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"../../test/BNZ.cif", Te.TempDir(), "--results", "../../test/nothere.csv"}, &stdout, &stderr)
	if code != 1 || !strings.HasPrefix(stdout.String(), "ERROR ") {
		Te.Errorf("expected exit 1 for missing results, got %d %q", code, stdout.String())
	}
}

func TestRunMkdirFailure(Te *testing.T) {
	var stdout, stderr bytes.Buffer
	out := filepath.Join(Te.TempDir(), "a", "b")
	code := run([]string{"../../test/BNZ.cif", out, "--results", "../../test/BNZ_mogul.csv"}, &stdout, &stderr)
	if code != 1 || !strings.HasPrefix(stdout.String(), "ERROR cannot mkdir "+out+" as ") {
		Te.Errorf("expected exit 1 and a mkdir error, got %d %q", code, stdout.String())
	}
}

func TestRunUsage(Te *testing.T) {
	for _, args := range [][]string{
		{},
		{"../../test/BNZ.cif"},
		{"a", "b", "c"},
		{"--nosuchflag", "a", "b"},
		{"--coords", "experimental", "a", "b"},
	} {
		var stdout, stderr bytes.Buffer
		if code := run(args, &stdout, &stderr); code != 2 {
			Te.Errorf("%v: expected exit 2, got %d", args, code)
		}
	}
}

func TestPrintConfig(Te *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--print-config", "--coords", "model", "--keep"}, &stdout, &stderr); code != 0 {
		Te.Fatalf("exit code %d: %s", code, stderr.String())
	}
	for _, s := range []string{"coordinates: model", "keep: true", "min_hits: 1"} {
		if !strings.Contains(stdout.String(), s) {
			Te.Errorf("configuration lacks %q:\n%s", s, stdout.String())
		}
	}
}
