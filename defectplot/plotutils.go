/*
 * plotutils.go, part of godefect.
 *
 * Copyright 2023 Raul Mera <rmera{at}usachDOTcl>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

package defectplot

//Some internal convenience functions, plus the package's error type.

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/plotter"
)

func toXYs(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i] = plotter.XY{X: x[i], Y: y[i]}
	}
	return pts
}

//yRange returns the overall min and max over the given curves, for placing
//vertical marker lines.
func yRange(curves ...[]float64) (float64, float64) {
	ymin, ymax := floats.Min(curves[0]), floats.Max(curves[0])
	for _, c := range curves[1:] {
		if m := floats.Min(c); m < ymin {
			ymin = m
		}
		if m := floats.Max(c); m > ymax {
			ymax = m
		}
	}
	return ymin, ymax
}

//Error fulfills the defect.Error interface.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return err.message }

//Decorate adds dec to the decoration slice of strings of the error,
//unless dec is empty, and returns the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or it can be ignored.
func (err Error) Critical() bool { return err.critical }

//errDecorate wraps a plotting-backend error into the package's type.
func errDecorate(err error, caller string) error {
	return Error{message: "goDefect/defectplot: " + caller + ": " + err.Error(), critical: true}
}
