/*
 * ewald_test.go, part of godefect.
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

package ewald

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func cubic(a float64) *mat.Dense {
	return mat.NewDense(3, 3, []float64{a, 0, 0, 0, a, 0, 0, 0, a})
}

func eye(e float64) *mat.Dense {
	return mat.NewDense(3, 3, []float64{e, 0, 0, 0, e, 0, 0, 0, e})
}

//The point-charge energy of a simple cubic charge array in a neutralizing
//background is the textbook reference: E = -alpha * e^2/(8 pi eps0 L) with
//alpha = 2.8373. For L = 10 A and eps = 1 the correction energy
//-E_lat * q^2 * UnitConversion must then be 2.8373*14.39964/(2*10) eV.
func TestMadelungReference(Te *testing.T) {
	const alpha = 2.837297
	const hartreeAA = 14.39964 //e^2/(4 pi eps0), eV*A
	L := 10.0
	S, err := New(cubic(L), eye(1))
	if err != nil {
		Te.Fatal(err)
	}
	got := -S.LatticeEnergy() * UnitConversion
	want := alpha * hartreeAA / (2 * L)
	fmt.Println("Madelung: got", got, "want", want)
	if math.Abs(got-want) > 5e-3 {
		Te.Errorf("simple-cubic Madelung energy: got %f want %f", got, want)
	}
}

//The energy must scale as 1/eps for an isotropic dielectric.
func TestIsotropicScaling(Te *testing.T) {
	S1, err := New(cubic(10), eye(1))
	if err != nil {
		Te.Fatal(err)
	}
	S4, err := New(cubic(10), eye(4))
	if err != nil {
		Te.Fatal(err)
	}
	r := S1.LatticeEnergy() / S4.LatticeEnergy()
	fmt.Println("eps scaling ratio:", r)
	if math.Abs(r-4) > 1e-3 {
		Te.Errorf("isotropic scaling: E(1)/E(4) = %f, want 4", r)
	}
}

//Tightening the accuracy must not change the converged value appreciably.
func TestAccuracyConvergence(Te *testing.T) {
	lo, err := New(cubic(8.5), eye(2), 8)
	if err != nil {
		Te.Fatal(err)
	}
	hi, err := New(cubic(8.5), eye(2), DefaultAccuracy)
	if err != nil {
		Te.Fatal(err)
	}
	a, b := lo.LatticeEnergy(), hi.LatticeEnergy()
	fmt.Println("accuracy 8:", a, "accuracy 15:", b)
	if math.Abs((a-b)/b) > 1e-4 {
		Te.Errorf("lattice energy not converged: %g vs %g", a, b)
	}
}

//An anisotropic tensor must be bracketed by its extreme principal components
//and differ from the mean-diagonal isotropic reduction.
func TestAnisotropicTensor(Te *testing.T) {
	diag := mat.NewDense(3, 3, []float64{2, 0, 0, 0, 4, 0, 0, 0, 8})
	S, err := New(cubic(9), diag)
	if err != nil {
		Te.Fatal(err)
	}
	Slo, _ := New(cubic(9), eye(2))
	Shi, _ := New(cubic(9), eye(8))
	Smean, _ := New(cubic(9), eye((2.0+4.0+8.0)/3.0))
	e := math.Abs(S.LatticeEnergy())
	if e >= math.Abs(Slo.LatticeEnergy()) || e <= math.Abs(Shi.LatticeEnergy()) {
		Te.Errorf("anisotropic energy %g not bracketed by %g and %g", e, Slo.LatticeEnergy(), Shi.LatticeEnergy())
	}
	if math.Abs(S.LatticeEnergy()-Smean.LatticeEnergy()) < 1e-6 {
		Te.Error("anisotropic tensor indistinguishable from its mean-diagonal reduction")
	}
}

//In a cubic cell the site potential must respect the cubic symmetry.
func TestSitePotentialSymmetry(Te *testing.T) {
	S, err := New(cubic(10), eye(3), 10)
	if err != nil {
		Te.Fatal(err)
	}
	px := S.SitePotential([3]float64{0.5, 0, 0})
	py := S.SitePotential([3]float64{0, 0.5, 0})
	pz := S.SitePotential([3]float64{0, 0, 0.5})
	fmt.Println("face-center potentials:", px, py, pz)
	if math.Abs(px-py) > 1e-8 || math.Abs(px-pz) > 1e-8 {
		Te.Errorf("cubic symmetry broken: %g %g %g", px, py, pz)
	}
}

func TestBadInput(Te *testing.T) {
	_, err := New(nil, eye(1))
	if err == nil {
		Te.Error("nil lattice accepted")
	}
	_, err = New(cubic(10), mat.NewDense(2, 2, []float64{1, 0, 0, 1}))
	if err == nil {
		Te.Error("2x2 dielectric accepted")
	}
}
