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

// Command pubchem-downloader fetches from PubChem the 2D structures of the
// components in a PDB-CCD directory that do not have a template yet.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/pdbe-tools/goccd/config"
	"github.com/pdbe-tools/goccd/pubchem"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pubchem-downloader", flag.ContinueOnError)
	fs.SetOutput(stderr)
	components := fs.String("components", "", "Path to the component library")
	templates := fs.String("pubchem_templates", "", "Path to the pubchem templates.")
	debug := fs.Bool("debug", false, "turn on debug message logging output")
	cfgFile := fs.String("config", "", "YAML configuration `file`")
	baseURL := fs.String("base_url", "", "PUG REST base URL")
	timeout := fs.Duration("timeout", 0, "timeout of each request")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if *components == "" || *templates == "" || fs.NArg() > 0 {
		fmt.Fprintln(stderr, "pubchem-downloader: -components and -pubchem_templates are required")
		fs.Usage()
		return 2
	}
	l := log.NewWithOptions(stderr, log.Options{Prefix: "pubchem-downloader"})
	if *debug {
		l.SetLevel(log.DebugLevel)
	}
	cfg, err := config.Load(*cfgFile)
	if err != nil {
		l.Error("reading the configuration", "err", err)
		return 1
	}
	if *baseURL != "" {
		cfg.PubChem.BaseURL = *baseURL
	}
	if *timeout > 0 {
		cfg.PubChem.Timeout = *timeout
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	D := &pubchem.Downloader{
		Components: *components,
		Templates:  *templates,
		Client: &pubchem.Client{
			BaseURL:   cfg.PubChem.BaseURL,
			HTTP:      &http.Client{Timeout: cfg.PubChem.Timeout},
			UserAgent: cfg.PubChem.UserAgent,
		},
		Log:      l,
		Out:      stdout,
		Progress: stdout == io.Writer(os.Stdout) && isatty.IsTerminal(os.Stderr.Fd()),
	}
	start := time.Now()
	if _, err := D.Run(ctx); err != nil {
		l.Error("download failed", "err", err)
		return 1
	}
	l.Debug("done", "elapsed", time.Since(start).Round(time.Millisecond))
	return 0
}
