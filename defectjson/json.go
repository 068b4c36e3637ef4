/*
 * json.go, part of godefect.
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

//Package defectjson serializes correction results, so the correction and its
//full diagnostic metadata (site potentials, planar averages, warnings) can be
//stored alongside the calculation and re-plotted or re-checked later without
//redoing the Ewald sums. Plain JSON and zstd-compressed JSON, the latter for
//the planar-average profiles of dense grids, are supported.
package defectjson

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	defect "github.com/rmera/godefect"
)

//Error fulfills the defect.Error interface. Serialization errors are always
//critical: a half-written result file is worse than none.
type Error struct {
	deco     []string
	Function string //which go function gave the error
	Message  string //the error itself
}

//Error implements the error interface
func (err Error) Error() string {
	return strings.Join([]string{"goDefect/defectjson:", err.Function, err.Message}, " ")
}

//Decorate will add the dec string to the decoration slice of strings of the
//error, and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or it can be ignored.
func (err Error) Critical() bool { return true }

func newError(function string, err error) Error {
	return Error{Function: function, Message: err.Error()}
}

//Send encodes the result as one JSON document and writes it to out.
func Send(R *defect.CorrectionResult, out io.Writer) error {
	if R == nil {
		return Error{Function: "Send", Message: "nil correction result"}
	}
	enc := json.NewEncoder(out)
	if err := enc.Encode(R); err != nil {
		return newError("Send", err)
	}
	return nil
}

//Recover decodes one JSON document from in into a correction result.
func Recover(in io.Reader) (*defect.CorrectionResult, error) {
	R := new(defect.CorrectionResult)
	dec := json.NewDecoder(in)
	if err := dec.Decode(R); err != nil {
		return nil, newError("Recover", err)
	}
	return R, nil
}

//SendCompressed writes the result as zstd-compressed JSON. The dense
//planar-average curves of the FNV diagnostics compress very well.
func SendCompressed(R *defect.CorrectionResult, out io.Writer) error {
	if R == nil {
		return Error{Function: "SendCompressed", Message: "nil correction result"}
	}
	zw, err := zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return newError("SendCompressed", err)
	}
	bw := bufio.NewWriter(zw)
	enc := json.NewEncoder(bw)
	if err := enc.Encode(R); err != nil {
		zw.Close()
		return newError("SendCompressed", err)
	}
	if err := bw.Flush(); err != nil {
		zw.Close()
		return newError("SendCompressed", err)
	}
	if err := zw.Close(); err != nil {
		return newError("SendCompressed", err)
	}
	return nil
}

//RecoverCompressed decodes a result written by SendCompressed.
func RecoverCompressed(in io.Reader) (*defect.CorrectionResult, error) {
	zr, err := zstd.NewReader(in)
	if err != nil {
		return nil, newError("RecoverCompressed", err)
	}
	defer zr.Close()
	R := new(defect.CorrectionResult)
	dec := json.NewDecoder(zr)
	if err := dec.Decode(R); err != nil {
		return nil, newError("RecoverCompressed", err)
	}
	return R, nil
}
