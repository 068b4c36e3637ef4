/*
 * lattice.go, part of godefect.
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

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

//LatticeTolerance is the largest element-wise difference (Angstrom) between
//defect and bulk lattice matrices that is still accepted, after which the
//bulk cell is proportionally rescaled to the defect cell. Beyond it, the
//supercells are incompatible and the corrections are invalid.
const LatticeTolerance = 0.01

//Lattice is a periodic supercell defined by a 3x3 matrix whose rows are the
//lattice vectors, in Angstrom. It is immutable: all "mutating" operations
//return a new Lattice.
type Lattice struct {
	m [3][3]float64
}

//NewLattice builds a Lattice from 9 row-major values (rows are the lattice
//vectors, Angstrom).
func NewLattice(data []float64) (*Lattice, error) {
	if len(data) != 9 {
		return nil, errorf("NewLattice: a lattice needs 9 elements, got %d", len(data))
	}
	L := new(Lattice)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			L.m[i][j] = data[3*i+j]
		}
	}
	if L.Volume() <= appzero {
		return nil, errorf("NewLattice: lattice vectors are coplanar (zero volume)")
	}
	return L, nil
}

//CubicLattice returns the lattice of a cubic cell with side a.
func CubicLattice(a float64) *Lattice {
	L, _ := NewLattice([]float64{a, 0, 0, 0, a, 0, 0, 0, a})
	return L
}

//Matrix returns a newly allocated 3x3 gonum matrix with the lattice vectors
//as rows.
func (L *Lattice) Matrix() *mat.Dense {
	d := make([]float64, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			d[3*i+j] = L.m[i][j]
		}
	}
	return mat.NewDense(3, 3, d)
}

//Vector returns the i-th lattice vector.
func (L *Lattice) Vector(i int) [3]float64 {
	if i < 0 || i > 2 {
		panic(ErrIndexOutOfRange)
	}
	return L.m[i]
}

//Lengths returns the norms of the three lattice vectors.
func (L *Lattice) Lengths() [3]float64 {
	var r [3]float64
	for i := 0; i < 3; i++ {
		r[i] = math.Sqrt(L.m[i][0]*L.m[i][0] + L.m[i][1]*L.m[i][1] + L.m[i][2]*L.m[i][2])
	}
	return r
}

//Volume returns the cell volume in cubic Angstrom.
func (L *Lattice) Volume() float64 {
	a, b, c := L.m[0], L.m[1], L.m[2]
	return math.Abs(a[0]*(b[1]*c[2]-b[2]*c[1]) - a[1]*(b[0]*c[2]-b[2]*c[0]) + a[2]*(b[0]*c[1]-b[1]*c[0]))
}

//Cart converts a fractional coordinate to cartesian (Angstrom).
func (L *Lattice) Cart(frac [3]float64) [3]float64 {
	var cart [3]float64
	for k := 0; k < 3; k++ {
		cart[k] = frac[0]*L.m[0][k] + frac[1]*L.m[1][k] + frac[2]*L.m[2][k]
	}
	return cart
}

//ReciprocalLengths returns the norms of the three reciprocal lattice vectors
//(2 pi convention), in inverse Angstrom.
func (L *Lattice) ReciprocalLengths() [3]float64 {
	var inv mat.Dense
	if err := inv.Inverse(L.Matrix()); err != nil {
		panic(PanicMsg("goDefect: singular lattice: " + err.Error()))
	}
	var r [3]float64
	for i := 0; i < 3; i++ {
		//the i-th reciprocal vector is 2 pi times the i-th column of inv
		r[i] = 2 * math.Pi * math.Sqrt(inv.At(0, i)*inv.At(0, i)+inv.At(1, i)*inv.At(1, i)+inv.At(2, i)*inv.At(2, i))
	}
	return r
}

//MaxSphereRadius returns the radius of the largest sphere, centered on a
//lattice point, fitting along the least-dense lattice direction: half the
//largest distance between neighbouring lattice planes. It is the default
//defect region radius for the eFNV sampling.
func (L *Lattice) MaxSphereRadius() float64 {
	max := 0.0
	for i := 0; i < 3; i++ {
		aj := L.m[(i+1)%3]
		ak := L.m[(i+2)%3]
		cr := [3]float64{
			aj[1]*ak[2] - aj[2]*ak[1],
			aj[2]*ak[0] - aj[0]*ak[2],
			aj[0]*ak[1] - aj[1]*ak[0],
		}
		crNorm := math.Sqrt(cr[0]*cr[0] + cr[1]*cr[1] + cr[2]*cr[2])
		d := math.Abs(cr[0]*L.m[i][0]+cr[1]*L.m[i][1]+cr[2]*L.m[i][2]) / crNorm
		if d > max {
			max = d
		}
	}
	return max / 2
}

//Distance returns the minimum-image distance (Angstrom) between the
//fractional coordinates f1 and f2, together with the lattice translation
//(image) applied to f2 to attain it.
func (L *Lattice) Distance(f1, f2 [3]float64) (float64, [3]int) {
	min := math.Inf(1)
	var image [3]int
	for nx := -2; nx <= 2; nx++ {
		for ny := -2; ny <= 2; ny++ {
			for nz := -2; nz <= 2; nz++ {
				d := [3]float64{
					f2[0] + float64(nx) - f1[0],
					f2[1] + float64(ny) - f1[1],
					f2[2] + float64(nz) - f1[2],
				}
				cart := L.Cart(d)
				r := math.Sqrt(cart[0]*cart[0] + cart[1]*cart[1] + cart[2]*cart[2])
				if r < min {
					min = r
					image = [3]int{nx, ny, nz}
				}
			}
		}
	}
	return min, image
}

//Equal reports whether the two lattices are element-wise identical.
func (L *Lattice) Equal(o *Lattice) bool {
	return L.ApproxEqual(o, 0)
}

//ApproxEqual reports whether the two lattice matrices agree element-wise
//within tol (Angstrom).
func (L *Lattice) ApproxEqual(o *Lattice, tol float64) bool {
	if o == nil {
		return false
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(L.m[i][j]-o.m[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

//ScaledToVolume returns a copy of the lattice proportionally rescaled to the
//given cell volume. Used to absorb sub-tolerance lattice mismatches between
//defect and bulk cells.
func (L *Lattice) ScaledToVolume(vol float64) *Lattice {
	f := math.Cbrt(vol / L.Volume())
	n := new(Lattice)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			n.m[i][j] = L.m[i][j] * f
		}
	}
	return n
}

//Copy returns a new, identical Lattice.
func (L *Lattice) Copy() *Lattice {
	n := new(Lattice)
	n.m = L.m
	return n
}
