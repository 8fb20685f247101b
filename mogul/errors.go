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

package mogul

import "fmt"

// errCode identifies the kind of failure of an engine run. It can be used as
// the target of errors.Is.
type errCode string

func (e errCode) Error() string { return string(e) }

const (
	ErrCantInput  errCode = "Can't build the engine input"
	ErrNotRunning errCode = "The engine couldn't be run"
	ErrNoResults  errCode = "Results not found"
	ErrBadResults errCode = "Results couldn't be parsed"
)

// Error is the error returned by the engine handles.
type Error struct {
	code     errCode
	engine   string //the program that failed
	name     string //the job name
	extra    string
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	msg := fmt.Sprintf("%s: %s, job %q", err.engine, err.code, err.name)
	if err.extra != "" {
		msg = msg + ": " + err.extra
	}
	return msg
}

// Code returns the failure kind, one of the Err* constants.
func (err *Error) Code() error { return err.code }

// Is makes errors.Is(err, ErrNotRunning) and friends work.
func (err *Error) Is(target error) bool {
	c, ok := target.(errCode)
	return ok && c == err.code
}

// Decorate adds new information to the error. If passed an empty string it just
// returns the current decoration.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err *Error) Critical() bool { return err.critical }

func newError(code errCode, engine, name, extra string, deco ...string) *Error {
	return &Error{code: code, engine: engine, name: name, extra: extra, deco: deco, critical: true}
}
