/*
 * interfaces.go, part of godefect.
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

//Error is the interface for errors that all packages in this library
//implement. The Decorate method allows to add and retrieve info from the
//error, without changing its type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Decorate adds information when an error is passed up the calling stack. Each call also returns the current decoration slice. If passed an empty string it just returns the current value without adding anything.
	Critical() bool
}

//WarningKind labels the advisory (never fatal) conditions a correction can
//report. They signal "trust this number less", not "this number is wrong".
type WarningKind int

const (
	//The estimated correction error exceeds the caller's tolerance.
	WarnReliability WarningKind = iota
	//More than one usable potential-data source was given; one was picked
	//deterministically.
	WarnAmbiguousInput
	//The defect center had to be inferred from atomic displacements.
	WarnDefectCenter
	//The sampling region is ill-posed (e.g. a defect region radius at or
	//beyond the half-cell, or no sites left to sample).
	WarnSampling
)

//String returns a short label for the warning kind.
func (k WarningKind) String() string {
	switch k {
	case WarnReliability:
		return "reliability"
	case WarnAmbiguousInput:
		return "ambiguous-input"
	case WarnDefectCenter:
		return "defect-center"
	case WarnSampling:
		return "sampling"
	}
	return "unknown"
}

//Warning is an advisory diagnostic attached to a CorrectionResult. Warnings
//never abort a computation; the correction is still returned and usable.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}

func suppressed(k WarningKind, suppress []WarningKind) bool {
	for _, s := range suppress {
		if s == k {
			return true
		}
	}
	return false
}
