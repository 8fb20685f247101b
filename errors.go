/*
 * errors.go, part of goccd.
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

package ccd

import (
	"errors"
	"fmt"
)

// Error is the error type returned by the component readers and writers. The Decorate
// method allows to add and retrieve the chain of callers through which the error
// passed, without wrapping it in something else. The underlying cause, if any, is
// available through errors.Unwrap.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
	err      error
}

func (err *Error) Error() string {
	msg := err.message
	if err.err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err.err)
	}
	if err.filename == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", err.filename, msg)
}

// Decorate adds new information to the error. If passed an empty string it just
// returns the current decoration.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file associated to the error, if any.
func (err *Error) FileName() string { return err.filename }

// Critical returns true if the error is critical, false otherwise
func (err *Error) Critical() bool { return err.critical }

func (err *Error) Unwrap() error { return err.err }

// errDecorate decorates err with the caller's name if it is an *Error, and
// returns it. Other errors are returned unchanged.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}

// setFileName sets the file name of err, if it is an *Error without one.
func setFileName(err error, name string) error {
	var e *Error
	if errors.As(err, &e) && e.filename == "" {
		e.filename = name
	}
	return err
}

var (
	ErrNoDataBlock  = errors.New("no data block found")
	ErrSyntax       = errors.New("mmCIF syntax error")
	ErrNoAtoms      = errors.New("no _chem_comp_atom records")
	ErrBadValue     = errors.New("unparseable value")
	ErrUnknownAtom  = errors.New("bond to an unknown atom")
	ErrNoCoords     = errors.New("incomplete coordinates")
	ErrTooManyAtoms = errors.New("too many atoms for the V2000 format")
)
