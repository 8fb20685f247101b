/*
 * downloader.go, part of goccd.
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

package pubchem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/log"
	ccd "github.com/pdbe-tools/goccd"
)

// Downloader retrieves from PubChem the 2D templates of every component file in
// Components and stores them as <Templates>/<ID>.sdf. Templates that already
// exist are never downloaded again.
type Downloader struct {
	Components string
	Templates  string
	Client     *Client
	Log        *log.Logger
	Out        io.Writer //user-facing messages, os.Stdout if nil
	Progress   bool      //show a spinner with the progress on stderr
}

// progress shows the downloader's progress in a spinner. A nil *progress does
// nothing.
type progress struct {
	s *spinner.Spinner
}

func newProgress(f *os.File) *progress {
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriterFile(f))
	s.Start()
	return &progress{s: s}
}

// set updates the suffix. The spinner goroutine reads it under the lock.
func (p *progress) set(counter, n int) {
	if p == nil {
		return
	}
	p.s.Lock()
	p.s.Suffix = fmt.Sprintf(" %d | new %d", counter, n)
	p.s.Unlock()
}

func (p *progress) suffix() string {
	if p == nil {
		return ""
	}
	p.s.Lock()
	defer p.s.Unlock()
	return p.s.Suffix
}

// pause stops the spinner while f writes to the terminal.
func (p *progress) pause(f func()) {
	if p == nil {
		f()
		return
	}
	p.s.Stop()
	f()
	p.s.Start()
}

func (p *progress) stop() {
	if p != nil {
		p.s.Stop()
	}
}

// Run downloads the missing templates and returns how many were written.
func (D *Downloader) Run(ctx context.Context) (int, error) {
	out := D.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintln(out, "Querying pubchem database...")
	n, err := D.Download(ctx)
	if err != nil {
		return n, err
	}
	fmt.Fprintf(out, "Downloaded %d new structures.\n", n)
	return n, nil
}

// ID returns the component identifier for the file name: its base name
// up to the first dot.
func ID(file string) string {
	id, _, _ := strings.Cut(filepath.Base(file), ".")
	return id
}

// Download does the work of Run without printing the summary.
func (D *Downloader) Download(ctx context.Context) (int, error) {
	l := D.Log
	if l == nil {
		l = log.Default()
	}
	C := D.Client
	if C == nil {
		C = &Client{}
	}
	entries, err := os.ReadDir(D.Components)
	if err != nil {
		return 0, fmt.Errorf("Download: %w", err)
	}
	if err := os.MkdirAll(D.Templates, 0o755); err != nil {
		return 0, fmt.Errorf("Download: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	var pr *progress
	if D.Progress {
		pr = newProgress(os.Stderr)
		defer pr.stop()
	}
	debug := func(f func()) {
		if l.GetLevel() <= log.DebugLevel {
			pr.pause(f)
		}
	}
	counter, n := 0, 0
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if e.IsDir() {
			continue
		}
		counter++
		pr.set(counter, n)
		id := ID(e.Name())
		dest := filepath.Join(D.Templates, id+".sdf")
		if st, err := os.Stat(dest); err == nil && st.Mode().IsRegular() {
			continue
		}
		err := D.fetch(ctx, C, filepath.Join(D.Components, e.Name()), id, dest)
		switch {
		case err == nil:
			n++
			debug(func() { l.Debug("template downloaded", "id", id) })
		case ctx.Err() != nil:
			return n, ctx.Err()
		case errors.Is(err, ErrNotFound):
			debug(func() { l.Debug("not in pubchem", "id", id) })
		default:
			pr.pause(func() { l.Warn("skipping component", "id", id, "err", err) })
		}
	}
	return n, nil
}

func (D *Downloader) fetch(ctx context.Context, C *Client, file, id, dest string) error {
	comp, err := ccd.ComponentFileRead(file)
	if err != nil {
		return err
	}
	key := comp.InChIKey()
	if key == "" {
		return fmt.Errorf("%s has no InChIKey", file)
	}
	cids, err := C.CIDs(ctx, key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(D.Templates, "."+id+"-*.sdf.part")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //no-op once renamed
	if err := C.Record2D(ctx, cids[0], id+".sdf", tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dest)
}
