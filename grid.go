/*
 * grid.go, part of godefect.
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

//PotentialGrid is a 3-D electrostatic potential sampled on a regular
//N[0]xN[1]xN[2] fractional-coordinate grid of the supercell, in V. Data is
//row-major with the last axis fastest: Data[(i*N[1]+j)*N[2]+k]. This is what
//an external parser of, e.g., a VASP LOCPOT produces.
type PotentialGrid struct {
	N    [3]int
	Data []float64
}

//NewPotentialGrid checks the dimensions against the data length.
func NewPotentialGrid(n [3]int, data []float64) (*PotentialGrid, error) {
	if n[0] <= 0 || n[1] <= 0 || n[2] <= 0 {
		return nil, errorf("NewPotentialGrid: non-positive grid dimensions %v", n)
	}
	if len(data) != n[0]*n[1]*n[2] {
		return nil, errorf("NewPotentialGrid: %d values given for a %dx%dx%d grid", len(data), n[0], n[1], n[2])
	}
	return &PotentialGrid{N: n, Data: data}, nil
}

//At returns the value at grid indices i,j,k. No bounds checking beyond the
//slice's own.
func (g *PotentialGrid) At(i, j, k int) float64 {
	return g.Data[(i*g.N[1]+j)*g.N[2]+k]
}

//AverageAlongAxis reduces the grid to the 1-D profile along the given axis by
//averaging over the two complementary axes, exactly the planar average the
//FNV scheme aligns.
func (g *PotentialGrid) AverageAlongAxis(axis int) []float64 {
	if axis < 0 || axis > 2 {
		panic(ErrIndexOutOfRange)
	}
	n := g.N[axis]
	out := make([]float64, n)
	var count int
	switch axis {
	case 0:
		count = g.N[1] * g.N[2]
		for i := 0; i < g.N[0]; i++ {
			s := 0.0
			for j := 0; j < g.N[1]; j++ {
				for k := 0; k < g.N[2]; k++ {
					s += g.At(i, j, k)
				}
			}
			out[i] = s / float64(count)
		}
	case 1:
		count = g.N[0] * g.N[2]
		for j := 0; j < g.N[1]; j++ {
			s := 0.0
			for i := 0; i < g.N[0]; i++ {
				for k := 0; k < g.N[2]; k++ {
					s += g.At(i, j, k)
				}
			}
			out[j] = s / float64(count)
		}
	case 2:
		count = g.N[0] * g.N[1]
		for k := 0; k < g.N[2]; k++ {
			s := 0.0
			for i := 0; i < g.N[0]; i++ {
				for j := 0; j < g.N[1]; j++ {
					s += g.At(i, j, k)
				}
			}
			out[k] = s / float64(count)
		}
	}
	return out
}
