/*
 * result.go, part of godefect.
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

import "golang.org/x/exp/slices"

//PotentialSite is the per-atom record of the eFNV sampling: the species, the
//minimum-image distance from the defect center, and the potential difference
//(defect minus bulk, in V). For atoms outside the defect region the
//point-charge model potential at the site is also filled in; those atoms
//form the sampling region the alignment constant is fitted from.
type PotentialSite struct {
	Species        string  `json:"species"`
	Distance       float64 `json:"distance"`
	Potential      float64 `json:"potential"`
	PcPotential    float64 `json:"pc_potential"`
	HasPcPotential bool    `json:"has_pc_potential"`
}

//DiffPot returns the deviation of the measured potential difference from the
//point-charge model at this site. Only meaningful when HasPcPotential.
func (p PotentialSite) DiffPot() float64 {
	return p.Potential - p.PcPotential
}

//KumagaiData is the diagnostic metadata of an eFNV (Kumagai) correction,
//sufficient to reconstruct the site-potential plot.
type KumagaiData struct {
	Charge int `json:"charge"`
	//The Ewald point-charge interaction energy term, in eV. This is the
	//whole correction energy; see CorrectionResult.CorrectionEnergy.
	PointChargeCorrection float64 `json:"point_charge_correction"`
	//Radius (Angstrom) of the excluded defect region around DefectCoords.
	DefectRegionRadius float64    `json:"defect_region_radius"`
	DefectCoords       [3]float64 `json:"defect_coords"`
	Sites              []PotentialSite `json:"sites"`
	//AvePotDiff is the fitted alignment constant: the mean of
	//(potential difference - point-charge potential) over the sampling
	//region, in V. Reported as a diagnostic; it is deliberately NOT added
	//to the correction energy (see the package notes on the eFNV total).
	AvePotDiff float64 `json:"ave_pot_diff"`
	//Sample standard deviation of the same quantity; the reliability
	//estimate checked against the error tolerance.
	Uncertainty float64 `json:"uncertainty"`
}

//SampledSites returns the sites of the sampling region (those with a model
//potential), sorted by distance from the defect.
func (K *KumagaiData) SampledSites() []PotentialSite {
	r := make([]PotentialSite, 0, len(K.Sites))
	for _, s := range K.Sites {
		if s.HasPcPotential {
			r = append(r, s)
		}
	}
	slices.SortFunc(r, func(a, b PotentialSite) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})
	return r
}

//Species returns the distinct species labels of the site table, sorted.
//Plotters group the per-site records by species.
func (K *KumagaiData) Species() []string {
	var r []string
	for _, s := range K.Sites {
		if !slices.Contains(r, s.Species) {
			r = append(r, s.Species)
		}
	}
	slices.Sort(r)
	return r
}

//PlanarProfile is the per-axis record of an FNV correction: the sampled
//planar-average curves and the alignment fit along one lattice direction.
//All potentials in V, positions in Angstrom along the axis. The defect plane
//is rolled to position zero.
type PlanarProfile struct {
	Axis      int       `json:"axis"`
	Positions []float64 `json:"positions"`
	//Planar-averaged DFT potential difference (defect - bulk).
	DFTDiff []float64 `json:"dft_diff"`
	//Long-range point-charge model potential, already shifted by the
	//alignment constant as in the original diagnostic plots.
	LongRange []float64 `json:"long_range"`
	//Short-range residual DFTDiff - LongRange, after alignment.
	ShortRange []float64 `json:"short_range"`
	//Index window [lo,hi) of the flat sampling region of the residual.
	Window [2]int `json:"window"`
	//Alignment is the fitted alignment constant C, in V.
	Alignment float64 `json:"alignment"`
	//Sample standard deviation of the residual over the window.
	Uncertainty float64 `json:"uncertainty"`
}

//FreysoldtData is the diagnostic metadata of an FNV (Freysoldt) correction.
type FreysoldtData struct {
	Charge int `json:"charge"`
	//Ewald point-charge term, eV.
	ElectrostaticCorrection float64 `json:"electrostatic_correction"`
	//Axis-averaged potential-alignment term -q*C, eV.
	AlignmentCorrection float64 `json:"alignment_correction"`
	//One profile per lattice direction. Empty (nil entries) for a neutral
	//defect, for which no potential alignment exists.
	Profiles [3]*PlanarProfile `json:"profiles"`
	//Axis whose profile the caller asked to single out for reporting, or
	//-1. Does not affect which axes enter the energy.
	ReportAxis int `json:"report_axis"`
}

//CorrectionResult is the outcome of one correction computation: the scalar
//correction energy and the method-specific diagnostic metadata. Exactly one
//of Kumagai/Freysoldt is non-nil. Results are never partial: a failed
//computation returns an error and no result.
type CorrectionResult struct {
	//Correction energy to be added to the defect formation energy, eV.
	CorrectionEnergy float64        `json:"correction_energy"`
	Kumagai          *KumagaiData   `json:"kumagai,omitempty"`
	Freysoldt        *FreysoldtData `json:"freysoldt,omitempty"`
	//Advisory diagnostics; see Warning.
	Warnings []Warning `json:"warnings,omitempty"`
}

//warn appends an advisory unless its kind is suppressed.
func (R *CorrectionResult) warn(k WarningKind, msg string, suppress []WarningKind) {
	if suppressed(k, suppress) {
		return
	}
	R.Warnings = append(R.Warnings, Warning{Kind: k, Message: msg})
}
