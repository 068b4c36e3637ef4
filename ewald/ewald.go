/*
 * ewald.go, part of godefect.
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

//Package ewald computes electrostatic lattice sums for a point charge and its
//periodic images embedded in an anisotropic dielectric medium, with a
//compensating background. The slowly-converging Coulomb sum is split into a
//real-space and a reciprocal-space part, each truncated once the included
//terms fall below an accuracy target. The anisotropy is handled by working in
//the dielectric-scaled metric, so the sums remain real-valued.
//Energies and potentials are returned per unit charge and have to be
//multiplied by UnitConversion to obtain eV and V, respectively, when the
//lattice is given in Angstroms and charges in elementary-charge units.
package ewald

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

//UnitConversion converts the per-unit-charge lattice sums to eV (energies) or
//V (potentials), for lattices in Angstrom and charges in units of the
//elementary charge. It is e * 1e10 / epsilon_0, i.e. e^2/(4 pi epsilon_0)
//times the 4 pi carried explicitly by the sums.
const UnitConversion = 180.95128169876497

//DefaultAccuracy is the default relative magnitude at which real- and
//reciprocal-space terms stop being accumulated. It is a tunable, not a
//guaranteed error bound.
const DefaultAccuracy = 15.0

//Summation holds the precomputed quantities for the Ewald sums of one
//lattice/dielectric pair. It is read-only after creation so a single value
//can be shared by concurrent calls.
type Summation struct {
	lattice    [3][3]float64 //rows are the lattice vectors, Angstrom
	rec        [3][3]float64 //rows are the reciprocal lattice vectors
	eps        [3][3]float64
	epsInv     [3][3]float64
	detEps     float64
	rootDetEps float64
	volume     float64
	accuracy   float64
	param      float64 //dimensionless splitting parameter
}

//New returns a Summation for the given 3x3 lattice (rows are lattice vectors,
//in Angstrom) and 3x3 relative dielectric tensor. The variadic accuracy, if
//given, replaces DefaultAccuracy. A non-positive-definite dielectric is not
//detected here; it simply produces unphysical sums.
func New(lattice, dielectric *mat.Dense, accuracy ...float64) (*Summation, error) {
	if err := check3x3(lattice, "lattice"); err != nil {
		return nil, err
	}
	if err := check3x3(dielectric, "dielectric"); err != nil {
		return nil, err
	}
	S := new(Summation)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			S.lattice[i][j] = lattice.At(i, j)
			S.eps[i][j] = dielectric.At(i, j)
		}
	}
	S.volume = math.Abs(mat.Det(lattice))
	if S.volume <= 0 {
		return nil, Error{message: "goDefect/ewald: lattice has zero volume", critical: true}
	}
	var inv mat.Dense
	if err := inv.Inverse(lattice); err != nil {
		return nil, Error{message: "goDefect/ewald: singular lattice: " + err.Error(), critical: true}
	}
	//rows of rec are the reciprocal vectors b_i, with b_i . a_j = 2 pi delta_ij
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			S.rec[i][j] = 2 * math.Pi * inv.At(j, i)
		}
	}
	S.detEps = mat.Det(dielectric)
	var epsInv mat.Dense
	if err := epsInv.Inverse(dielectric); err != nil {
		return nil, Error{message: "goDefect/ewald: singular dielectric tensor: " + err.Error(), critical: true}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			S.epsInv[i][j] = epsInv.At(i, j)
		}
	}
	S.rootDetEps = math.Sqrt(S.detEps)
	S.accuracy = DefaultAccuracy
	if len(accuracy) > 0 && accuracy[0] > 0 {
		S.accuracy = accuracy[0]
	}
	//Splitting parameter balancing real and reciprocal convergence, from the
	//mean norms of the direct and reciprocal lattice vectors.
	lr := (norm3(S.lattice[0]) + norm3(S.lattice[1]) + norm3(S.lattice[2])) / 3
	lg := (norm3(S.rec[0]) + norm3(S.rec[1]) + norm3(S.rec[2])) / 3
	S.param = math.Sqrt(lg/lr/2) * math.Cbrt(S.volume) / S.rootDetEps
	return S, nil
}

//SetParam overrides the automatically determined splitting parameter.
//Mostly useful for convergence studies.
func (S *Summation) SetParam(p float64) { S.param = p }

//Accuracy returns the truncation accuracy in use.
func (S *Summation) Accuracy() float64 { return S.accuracy }

//splitting coefficient in inverse length units
func (S *Summation) coeff() float64 {
	return S.param / math.Cbrt(S.volume) * S.rootDetEps
}

//LatticeEnergy returns the electrostatic energy, per squared unit charge, of
//a point charge interacting with its own periodic images and the neutralizing
//background. The value is negative for a physical (positive-definite)
//dielectric; the point-charge correction energy of a defect with charge q is
//-LatticeEnergy()*q*q*UnitConversion.
func (S *Summation) LatticeEnergy() float64 {
	g := S.coeff()
	real := S.realSum(false, [3]float64{})
	rec := S.recSum([3]float64{})
	self := -g / (2.0 * math.Pi * math.Sqrt(math.Pi*S.detEps))
	background := -0.25 / (S.volume * g * g)
	return (real + rec + self + background) / 2
}

//SitePotential returns the potential, per unit charge, at the fractional
//coordinate frac (relative to the charge position) generated by the periodic
//point-charge array and its background. frac must not be a lattice point:
//the potential diverges at the charges themselves.
func (S *Summation) SitePotential(frac [3]float64) float64 {
	g := S.coeff()
	cart := S.fracToCart(frac)
	real := S.realSum(true, cart)
	rec := S.recSum(frac)
	background := -0.25 / (S.volume * g * g)
	return real + rec + background
}

//realSum accumulates erfc(g*r_eps)/r_eps over the real-space images R+shift,
//with r_eps the norm in the inverse-dielectric metric. The R=0 image is
//skipped unless includeSelf is true (the potential at an off-lattice point
//does include the charge in the home cell).
func (S *Summation) realSum(includeSelf bool, shift [3]float64) float64 {
	g := S.coeff()
	maxNorm := S.accuracy / g
	var bound [3]int
	for i := 0; i < 3; i++ {
		bound[i] = int(math.Ceil(maxNorm/norm3(S.lattice[i]))) + 1
	}
	sum := 0.0
	for nx := -bound[0]; nx <= bound[0]; nx++ {
		for ny := -bound[1]; ny <= bound[1]; ny++ {
			for nz := -bound[2]; nz <= bound[2]; nz++ {
				if !includeSelf && nx == 0 && ny == 0 && nz == 0 {
					continue
				}
				var v [3]float64
				for k := 0; k < 3; k++ {
					v[k] = float64(nx)*S.lattice[0][k] + float64(ny)*S.lattice[1][k] + float64(nz)*S.lattice[2][k] + shift[k]
				}
				if norm3(v) > maxNorm {
					continue
				}
				r := math.Sqrt(quadForm(S.epsInv, v))
				if r <= 0 {
					continue //shift put us exactly on a charge; the caller gets what it asked for
				}
				sum += math.Erfc(g*r) / r
			}
		}
	}
	return sum / (4 * math.Pi * S.rootDetEps)
}

//recSum accumulates exp(-G.eps.G/4g^2)/(G.eps.G) cos(G.r) over the nonzero
//reciprocal vectors, evaluated at the cartesian position of frac.
func (S *Summation) recSum(frac [3]float64) float64 {
	g := S.coeff()
	maxNorm := 2 * g * S.accuracy
	cart := S.fracToCart(frac)
	var bound [3]int
	for i := 0; i < 3; i++ {
		bound[i] = int(math.Ceil(maxNorm/norm3(S.rec[i]))) + 1
	}
	sum := 0.0
	for mx := -bound[0]; mx <= bound[0]; mx++ {
		for my := -bound[1]; my <= bound[1]; my++ {
			for mz := -bound[2]; mz <= bound[2]; mz++ {
				if mx == 0 && my == 0 && mz == 0 {
					continue
				}
				var gv [3]float64
				for k := 0; k < 3; k++ {
					gv[k] = float64(mx)*S.rec[0][k] + float64(my)*S.rec[1][k] + float64(mz)*S.rec[2][k]
				}
				if norm3(gv) > maxNorm {
					continue
				}
				geg := quadForm(S.eps, gv)
				phase := gv[0]*cart[0] + gv[1]*cart[1] + gv[2]*cart[2]
				sum += math.Exp(-geg/(4*g*g)) / geg * math.Cos(phase)
			}
		}
	}
	return sum / S.volume
}

func (S *Summation) fracToCart(frac [3]float64) [3]float64 {
	var cart [3]float64
	for k := 0; k < 3; k++ {
		cart[k] = frac[0]*S.lattice[0][k] + frac[1]*S.lattice[1][k] + frac[2]*S.lattice[2][k]
	}
	return cart
}

func norm3(v [3]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

//v^T M v for a 3x3 M
func quadForm(m [3][3]float64, v [3]float64) float64 {
	s := 0.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s += v[i] * m[i][j] * v[j]
		}
	}
	return s
}

func check3x3(m *mat.Dense, name string) error {
	if m == nil {
		return Error{message: "goDefect/ewald: nil " + name + " matrix", critical: true}
	}
	r, c := m.Dims()
	if r != 3 || c != 3 {
		return Error{message: "goDefect/ewald: " + name + " matrix must be 3x3", critical: true}
	}
	return nil
}

//Error is the error type for the ewald package. It fulfills defect.Error.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return err.message }

//Decorate adds dec to the decoration slice of the error, unless dec is
//empty, and returns the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or can be ignored.
func (err Error) Critical() bool { return err.critical }
