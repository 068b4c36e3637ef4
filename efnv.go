/*
 * efnv.go, part of godefect.
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

//The extended FNV (Kumagai-Oba) site-potential sampling engine.
//
//Notes:
//(1) The YK2014 formulae have to be divided by 4 pi in SI units.
//(2) For an elementary charge at the defect position and lengths in
//    Angstrom, with a relative dielectric tensor, multiplying by
//    elementary_charge * 1e10 / epsilon_0 = 180.95128169876497
//    (ewald.UnitConversion) gives the potential in V.
//(3) The returned correction energy is the point-charge term alone. The
//    mean potential offset of the sampling region (AvePotDiff) is reported
//    as a diagnostic and feeds the reliability estimate, but is not added
//    to the energy. This follows the reference behaviour of the method;
//    adding "-q*AvePotDiff" on top is a common misimplementation.

package defect

import (
	"math"
	"sort"

	"github.com/rmera/godefect/ewald"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

//everything here is pre-validated by KumagaiCorrection
type efnvParams struct {
	charge       int
	defectS      *Structure
	defectPots   []float64
	bulkPots     []float64
	dielectric   *mat.Dense
	defectCoords [3]float64
	radius       float64 //defect region radius, Angstrom; always > 0 here
	accuracy     float64
	excluded     []int
	mapping      map[int]int //defect site index -> bulk site index
}

//makeEFNVCorrection computes the per-site potential table, the Ewald
//point-charge energy and the alignment diagnostic for one defect.
func makeEFNVCorrection(p efnvParams) (*KumagaiData, error) {
	lattice := p.defectS.Lattice
	ew, err := ewald.New(lattice.Matrix(), p.dielectric, p.accuracy)
	if err != nil {
		return nil, errDecorate(err, "makeEFNVCorrection")
	}
	//deterministic site order regardless of map iteration
	dIndices := make([]int, 0, len(p.mapping))
	for d := range p.mapping {
		dIndices = append(dIndices, d)
	}
	sort.Ints(dIndices)

	sites := make([]PotentialSite, 0, len(dIndices))
	relCoords := make([][3]float64, 0, len(dIndices))
	for _, d := range dIndices {
		if isInInt(p.excluded, d) {
			continue
		}
		b := p.mapping[d]
		frac := p.defectS.Sites[d].Frac
		distance, _ := lattice.Distance(p.defectCoords, frac)
		pot := p.defectPots[d] - p.bulkPots[b]
		sites = append(sites, PotentialSite{
			Species:   p.defectS.Sites[d].Species,
			Distance:  distance,
			Potential: pot,
		})
		relCoords = append(relCoords, [3]float64{
			frac[0] - p.defectCoords[0],
			frac[1] - p.defectCoords[1],
			frac[2] - p.defectCoords[2],
		})
	}

	q := float64(p.charge)
	pcCorrection := 0.0
	if p.charge != 0 {
		pcCorrection = -ew.LatticeEnergy() * q * q * ewald.UnitConversion
	}
	for i := range sites {
		if sites[i].Distance <= p.radius {
			continue //inside the defect region: excluded from the fit, not corrected
		}
		sites[i].HasPcPotential = true
		if p.charge != 0 {
			sites[i].PcPotential = ew.SitePotential(relCoords[i]) * q * ewald.UnitConversion
		}
	}

	diffs := make([]float64, 0, len(sites))
	for _, s := range sites {
		if s.HasPcPotential {
			diffs = append(diffs, s.DiffPot())
		}
	}
	data := &KumagaiData{
		Charge:                p.charge,
		PointChargeCorrection: pcCorrection,
		DefectRegionRadius:    p.radius,
		DefectCoords:          p.defectCoords,
		Sites:                 sites,
	}
	if len(diffs) > 0 {
		data.AvePotDiff = stat.Mean(diffs, nil)
		if len(diffs) > 1 {
			data.Uncertainty = math.Sqrt(stat.Variance(diffs, nil))
		}
	} else {
		data.AvePotDiff = math.NaN()
	}
	return data, nil
}

//isIn returns true if test is in container, false otherwise.
func isInInt(container []int, test int) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}
