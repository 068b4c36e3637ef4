/*
 * lattice_test.go, part of godefect.
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
	"fmt"
	"math"
	"testing"
)

func TestLatticeBasics(Te *testing.T) {
	L := CubicLattice(10)
	if math.Abs(L.Volume()-1000) > 1e-10 {
		Te.Errorf("cubic volume %f, want 1000", L.Volume())
	}
	lens := L.Lengths()
	if lens[0] != 10 || lens[1] != 10 || lens[2] != 10 {
		Te.Errorf("cubic lengths %v", lens)
	}
	if math.Abs(L.MaxSphereRadius()-5) > 1e-10 {
		Te.Errorf("cubic max sphere radius %f, want 5", L.MaxSphereRadius())
	}
	rl := L.ReciprocalLengths()
	want := 2 * math.Pi / 10
	if math.Abs(rl[0]-want) > 1e-10 {
		Te.Errorf("reciprocal length %f, want %f", rl[0], want)
	}
	if _, err := NewLattice([]float64{1, 2, 3}); err == nil {
		Te.Error("3-element lattice accepted")
	}
	if _, err := NewLattice(make([]float64, 9)); err == nil {
		Te.Error("zero-volume lattice accepted")
	}
}

//An orthorhombic cell's sampling sphere follows its longest interplane
//spacing.
func TestMaxSphereRadiusOrthorhombic(Te *testing.T) {
	L, err := NewLattice([]float64{6, 0, 0, 0, 10, 0, 0, 0, 14})
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(L.MaxSphereRadius()-7) > 1e-10 {
		Te.Errorf("max sphere radius %f, want 7", L.MaxSphereRadius())
	}
}

func TestMinimumImage(Te *testing.T) {
	L := CubicLattice(10)
	d, image := L.Distance([3]float64{0, 0, 0}, [3]float64{0.9, 0, 0})
	fmt.Println("minimum image distance:", d, "image:", image)
	if math.Abs(d-1) > 1e-10 {
		Te.Errorf("minimum image distance %f, want 1", d)
	}
	if image[0] != -1 {
		Te.Errorf("image %v, want {-1 0 0}", image)
	}
	d, _ = L.Distance([3]float64{0.1, 0.1, 0.1}, [3]float64{0.2, 0.1, 0.1})
	if math.Abs(d-1) > 1e-10 {
		Te.Errorf("direct distance %f, want 1", d)
	}
}

func TestScaledToVolume(Te *testing.T) {
	L := CubicLattice(10.005)
	S := L.ScaledToVolume(1000)
	if math.Abs(S.Volume()-1000) > 1e-9 {
		Te.Errorf("rescaled volume %f, want 1000", S.Volume())
	}
	//the original is untouched
	if L.Equal(S) {
		Te.Error("rescaling mutated the original lattice")
	}
}

func TestGridPlanarAverage(Te *testing.T) {
	//2x2x2 grid where the value is the first index: the axis-0 average is
	//the index itself, the others average to 0.5
	data := []float64{0, 0, 0, 0, 1, 1, 1, 1}
	g, err := NewPotentialGrid([3]int{2, 2, 2}, data)
	if err != nil {
		Te.Fatal(err)
	}
	a0 := g.AverageAlongAxis(0)
	if a0[0] != 0 || a0[1] != 1 {
		Te.Errorf("axis-0 average %v, want [0 1]", a0)
	}
	for axis := 1; axis < 3; axis++ {
		a := g.AverageAlongAxis(axis)
		if a[0] != 0.5 || a[1] != 0.5 {
			Te.Errorf("axis-%d average %v, want [0.5 0.5]", axis, a)
		}
	}
	if _, err := NewPotentialGrid([3]int{2, 2, 2}, make([]float64, 7)); err == nil {
		Te.Error("grid with wrong data length accepted")
	}
}

func TestDisplacementCentroid(Te *testing.T) {
	bulk := cubicStructure(4, 10)
	def, mapping := vacancy(bulk)
	//one atom relaxed: the centroid is that atom's new position
	moved := -1
	for i, s := range def.Sites {
		if s.Frac == [3]float64{0.25, 0, 0} {
			moved = i
			break
		}
	}
	if moved < 0 {
		Te.Fatal("expected site not found")
	}
	def.Sites[moved].Frac = [3]float64{0.3, 0, 0}
	c, total := def.DisplacementCentroid(bulk, mapping)
	fmt.Println("centroid:", c, "total displacement:", total)
	if total <= 0 {
		Te.Fatal("no displacement detected")
	}
	if math.Abs(c[0]-0.3) > 1e-10 || math.Abs(c[1]) > 1e-10 || math.Abs(c[2]) > 1e-10 {
		Te.Errorf("centroid %v, want {0.3 0 0}", c)
	}
	//no relaxation, no centroid
	def2, mapping2 := vacancy(bulk)
	_, total = def2.DisplacementCentroid(bulk, mapping2)
	if total != 0 {
		Te.Errorf("displacement %f on an unrelaxed structure", total)
	}
}

func TestRoll(Te *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	roll(x, 2)
	want := []float64{4, 5, 1, 2, 3}
	for i := range x {
		if x[i] != want[i] {
			Te.Fatalf("roll: got %v want %v", x, want)
		}
	}
	roll(x, -2)
	if x[0] != 1 || x[4] != 5 {
		Te.Errorf("negative roll: got %v", x)
	}
}
