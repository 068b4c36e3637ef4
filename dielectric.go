/*
 * dielectric.go, part of godefect.
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

import "gonum.org/v1/gonum/mat"

//Dielectric is the total (ionic plus high-frequency electronic) relative
//dielectric response of the host compound, normalized at construction to a
//canonical 3x3 tensor. The zero value is "unset", which the correction entry
//points reject; build one with Isotropic, Diagonal, Tensor or
//NormalizeDielectric. Symmetry is assumed, not enforced; eigenvalues must be
//positive for a physical insulator, which is likewise not checked here.
type Dielectric struct {
	t   [3][3]float64
	set bool
}

//Isotropic returns the isotropic dielectric e (the tensor e times identity).
func Isotropic(e float64) Dielectric {
	var D Dielectric
	D.t[0][0], D.t[1][1], D.t[2][2] = e, e, e
	D.set = true
	return D
}

//Diagonal returns the diagonal dielectric tensor with the given principal
//components.
func Diagonal(xx, yy, zz float64) Dielectric {
	var D Dielectric
	D.t[0][0], D.t[1][1], D.t[2][2] = xx, yy, zz
	D.set = true
	return D
}

//Tensor builds a Dielectric from a full 3x3 tensor, passed through unchanged.
func Tensor(m *mat.Dense) (Dielectric, error) {
	var D Dielectric
	if m == nil {
		return D, errorf("Tensor: nil dielectric matrix")
	}
	r, c := m.Dims()
	if r != 3 || c != 3 {
		return D, errorf("Tensor: dielectric must be 3x3, got %dx%d", r, c)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			D.t[i][j] = m.At(i, j)
		}
	}
	D.set = true
	return D, nil
}

//NormalizeDielectric converts a scalar (1 value), principal components
//(3 values) or a full row-major tensor (9 values) into a canonical
//Dielectric. Any other length is an input-validation error.
func NormalizeDielectric(values []float64) (Dielectric, error) {
	var D Dielectric
	switch len(values) {
	case 1:
		return Isotropic(values[0]), nil
	case 3:
		return Diagonal(values[0], values[1], values[2]), nil
	case 9:
		return Tensor(mat.NewDense(3, 3, values))
	}
	return D, errorf("NormalizeDielectric: dielectric must be given as 1, 3 or 9 values, got %d", len(values))
}

//IsSet reports whether the dielectric has been given a value.
func (D Dielectric) IsSet() bool { return D.set }

//Tensor returns a newly allocated 3x3 matrix with the dielectric tensor.
func (D Dielectric) Tensor() *mat.Dense {
	d := make([]float64, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			d[3*i+j] = D.t[i][j]
		}
	}
	return mat.NewDense(3, 3, d)
}

//MeanDiagonal returns the mean of the diagonal components, the scalar
//reduction used by the isotropic (FNV) scheme.
func (D Dielectric) MeanDiagonal() float64 {
	return (D.t[0][0] + D.t[1][1] + D.t[2][2]) / 3
}
