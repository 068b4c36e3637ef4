/*
 * fnv.go, part of godefect.
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

//The FNV (Freysoldt) planar-averaging engine. Per lattice direction, the
//planar-averaged DFT potential difference is split into the long-range
//potential of the periodic point-charge model, evaluated in reciprocal space
//over the axis grid, and a short-range residual from whose flat region the
//alignment constant is fitted. The model charge carries a Gaussian shape of
//tunable width; far from the defect, where the fit happens, the result is
//insensitive to it.

package defect

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	angToBohr = 1.8897261246257702
	hartToEv  = 27.211386245988
)

//fnvAxisProfile aligns the planar averages along one axis. defAvg and
//bulkAvg must be sampled on the same grid; positions is that grid in
//Angstrom along the axis, starting at zero. The returned profile has the
//defect plane rolled to the origin.
func fnvAxisProfile(positions, defAvg, bulkAvg []float64, lat *Lattice, charge int, defectFrac [3]float64, axis int, epsScalar float64, set *FreysoldtSettings) (*PlanarProfile, error) {
	nx := len(positions)
	if nx < 4 {
		return nil, errorf("fnvAxisProfile: axis %d: %d planar-average points are too few", axis, nx)
	}
	q := float64(charge)
	axLen := lat.Lengths()[axis]

	//roll the averages so the defect plane sits at the origin
	axval := defectFrac[axis] * axLen
	for axval < 0 {
		axval += axLen
	}
	for axval >= axLen {
		axval -= axLen
	}
	def := append([]float64{}, defAvg...)
	bulk := append([]float64{}, bulkAvg...)
	if axval > 0 {
		i := nx
		for j, x := range positions {
			if axval < x {
				i = j
				break
			}
		}
		def = roll(def, nx-i)
		bulk = roll(bulk, nx-i)
	}

	//long-range model potential on the same grid, built in reciprocal
	//space (atomic units) and transformed back
	dg := lat.ReciprocalLengths()[axis] / angToBohr
	beta := set.GaussianWidth
	vG := make([]complex128, nx)
	vG[0] = complex(4*math.Pi*(-q)/epsScalar*(-0.25*beta*beta), 0)
	for j := 1; j < nx; j++ {
		gi := j
		if j > (nx-1)/2 {
			gi = j - nx
		}
		g := float64(gi) * dg
		g2 := g * g
		vG[j] = complex(4*math.Pi/(epsScalar*g2)*(-q)*math.Exp(-0.25*beta*beta*g2), 0)
	}
	if nx%2 == 0 {
		vG[nx/2] = 0 //unpaired Nyquist component
	}
	fft := fourier.NewCmplxFFT(nx)
	vRc := fft.Coefficients(nil, vG)
	volBohr := lat.Volume() * angToBohr * angToBohr * angToBohr
	vR := make([]float64, nx)
	for j, c := range vRc {
		if math.Abs(imag(c)) > set.MadelungTolerance {
			return nil, errorf("fnvAxisProfile: axis %d: imaginary long-range potential %g above tolerance %g", axis, imag(c), set.MadelungTolerance)
		}
		vR[j] = real(c) / volBohr * hartToEv
	}

	dftDiff := make([]float64, nx)
	floats.SubTo(dftDiff, def, bulk)
	short := make([]float64, nx)
	floats.SubTo(short, dftDiff, vR)

	//flat sampling window of the residual, as far from the defect plane
	//as the cell allows
	spacing := positions[1] - positions[0]
	lo, hi := set.window(short, spacing)
	if lo < 0 || hi > nx || hi-lo < 1 {
		return nil, errorf("fnvAxisProfile: axis %d: bad sampling window [%d,%d) for %d points", axis, lo, hi, nx)
	}
	sample := short[lo:hi]
	c := -stat.Mean(sample, nil)
	uncertainty := 0.0
	if len(sample) > 1 {
		uncertainty = math.Sqrt(stat.Variance(sample, nil))
	}

	//report the post-alignment curves, which is what one wants to inspect
	shortShifted := make([]float64, nx)
	vRShifted := make([]float64, nx)
	for j := 0; j < nx; j++ {
		shortShifted[j] = short[j] + c
		vRShifted[j] = vR[j] - c
	}
	return &PlanarProfile{
		Axis:        axis,
		Positions:   append([]float64{}, positions...),
		DFTDiff:     dftDiff,
		LongRange:   vRShifted,
		ShortRange:  shortShifted,
		Window:      [2]int{lo, hi},
		Alignment:   c,
		Uncertainty: uncertainty,
	}, nil
}

//window picks the flat sampling region: a strip of WindowWidth Angstrom
//centered at the cell midpoint (the defect having been rolled to the origin,
//the midpoint is the farthest plane from it). A caller-supplied Window
//function replaces this heuristic wholesale.
func (set *FreysoldtSettings) window(short []float64, spacing float64) (int, int) {
	if set.Window != nil {
		return set.Window(short, spacing)
	}
	nx := len(short)
	mid := nx / 2
	checkdis := int((set.WindowWidth / 2) / spacing)
	if checkdis < 1 {
		checkdis = 1
	}
	lo := mid - checkdis
	hi := mid + checkdis + 1
	if lo < 0 {
		lo = 0
	}
	if hi > nx {
		hi = nx
	}
	return lo, hi
}

//roll shifts x circularly by n (like numpy's roll): the element at index j
//ends at index (j+n) mod len.
func roll(x []float64, n int) []float64 {
	l := len(x)
	if l == 0 {
		return x
	}
	n = ((n % l) + l) % l
	if n == 0 {
		return x
	}
	out := make([]float64, l)
	for j, v := range x {
		out[(j+n)%l] = v
	}
	copy(x, out)
	return x
}
