/*
 * structure.go, part of godefect.
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

import "math"

//Site is one atom of a periodic structure: a bare species label (no
//oxidation-state decoration) and fractional coordinates.
type Site struct {
	Species string
	Frac    [3]float64
}

//Structure is the minimal periodic-supercell view the corrections need: a
//lattice and an ordered sequence of atomic sites. The ordering must match
//whatever ordering the per-atom potential sequences follow.
type Structure struct {
	Lattice *Lattice
	Sites   []Site
}

//Len returns the number of sites.
func (S *Structure) Len() int {
	return len(S.Sites)
}

//Copy returns a deep copy. The corrections defensively copy their input
//structures before the local mutations (e.g. lattice rescaling), so callers
//can assume their own structures are preserved.
func (S *Structure) Copy() *Structure {
	if S == nil {
		return nil
	}
	n := new(Structure)
	if S.Lattice != nil {
		n.Lattice = S.Lattice.Copy()
	}
	n.Sites = make([]Site, len(S.Sites))
	copy(n.Sites, S.Sites)
	return n
}

//DisplacementCentroid infers the defect position as the displacement-weighted
//centroid of the atomic displacements between the defect structure S and the
//bulk reference, under the given defect-to-bulk site mapping. It returns the
//fractional coordinate and the total displacement; a total below numerical
//zero means no structural relaxation was detectable and the returned centroid
//is meaningless (callers should then require explicit defect coordinates).
func (S *Structure) DisplacementCentroid(bulk *Structure, mapping map[int]int) ([3]float64, float64) {
	var centroid [3]float64
	if S == nil || bulk == nil || S.Lattice == nil {
		panic(ErrNilStructure)
	}
	//reference: the atom that moved the most, so the other contributions
	//can be expressed by minimum image around it.
	maxd := -1.0
	var ref [3]float64
	for d, p := range mapping {
		if d < 0 || d >= len(S.Sites) || p < 0 || p >= len(bulk.Sites) {
			panic(ErrIndexOutOfRange)
		}
		dist, _ := S.Lattice.Distance(bulk.Sites[p].Frac, S.Sites[d].Frac)
		if dist > maxd {
			maxd = dist
			ref = S.Sites[d].Frac
		}
	}
	total := 0.0
	for d, p := range mapping {
		w, _ := S.Lattice.Distance(bulk.Sites[p].Frac, S.Sites[d].Frac)
		if w <= appzero {
			continue
		}
		_, image := S.Lattice.Distance(ref, S.Sites[d].Frac)
		for k := 0; k < 3; k++ {
			centroid[k] += w * (S.Sites[d].Frac[k] + float64(image[k]))
		}
		total += w
	}
	if total <= appzero {
		return [3]float64{}, 0
	}
	for k := 0; k < 3; k++ {
		centroid[k] /= total
		centroid[k] -= math.Floor(centroid[k]) //wrap into the cell
	}
	return centroid, total
}
