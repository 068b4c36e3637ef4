/*
 * errors.go, part of godefect.
 *
 *
 * Copyright 2023 Raul Mera <rmera{at}usachDOTcl>
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
 *
 */

package defect

import "fmt"

//CError is the concrete error type of the defect package. It fulfills the
//Error interface. All correction errors are critical: either the full
//computation succeeds, or no result is returned.
type CError struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err CError) Error() string {
	return err.message
}

//Decorate adds dec to the decoration slice of strings of the error,
//unless dec is empty, and returns the resulting slice.
func (err CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or it can be ignored.
func (err CError) Critical() bool { return err.critical }

//fmt.Errorf-like constructor for the package's critical errors.
func errorf(format string, args ...interface{}) CError {
	return CError{message: "goDefect: " + fmt.Sprintf(format, args...), critical: true}
}

//errDecorate asserts that err implements Error, decorates it with the
//caller's name and returns it. It panics on a non-Error error.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

//PanicMsg is a message used for panics. It does satisfy the error interface
//but for returned errors use CError.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNilStructure    = PanicMsg("goDefect: nil structure given")
	ErrNot3x3          = PanicMsg("goDefect: a lattice needs 3x3 elements")
	ErrShape           = PanicMsg("goDefect: dimension mismatch")
	ErrIndexOutOfRange = PanicMsg("goDefect: index out of range")
)

//used to correct floating point errors. Everything equal or less
//than this is considered zero.
const appzero float64 = 0.0000001
