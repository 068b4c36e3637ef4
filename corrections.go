/*
 * corrections.go, part of godefect.
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
	"log"
	"math"

	"github.com/rmera/godefect/ewald"
	"gonum.org/v1/gonum/stat"
)

//DefaultErrorTolerance is the advisory threshold (eV) for the estimated
//correction error. Above it, a reliability warning is attached to the
//result; the correction itself is still returned.
const DefaultErrorTolerance = 0.05

//FreysoldtSettings are the tunables of the FNV correction. The zero value of
//every field selects a sensible default, except ReportAxis where the zero
//value means axis 0; use -1 (or NewFreysoldtSettings) to report all axes.
type FreysoldtSettings struct {
	//Axis singled out for reporting/plotting, 0-2, or negative for all.
	//The correction energy always combines all three axes.
	ReportAxis int
	//Width (Angstrom) of the flat sampling window of the short-range
	//residual, centered on the plane farthest from the defect. 0 means 1.
	WindowWidth float64
	//Window, if non-nil, replaces the default flat-window heuristic: it
	//receives the short-range residual and the grid spacing and returns
	//the [lo,hi) sampling index range.
	Window func(short []float64, spacing float64) (lo, hi int)
	//Width (bohr) of the Gaussian shape regularizing the model charge.
	//0 means 1. The alignment is insensitive to it by construction.
	GaussianWidth float64
	//Largest tolerable imaginary remnant in the transformed long-range
	//potential. 0 means 1e-4.
	MadelungTolerance float64
	//Accuracy of the Ewald point-charge term. 0 means ewald.DefaultAccuracy.
	Accuracy float64
	//Reliability threshold, eV. 0 means DefaultErrorTolerance.
	ErrorTolerance float64
	//Advisory classes not to attach to the result.
	Suppress []WarningKind
	//Log the computed correction.
	Verbose bool
}

//NewFreysoldtSettings returns the default settings, reporting all axes.
func NewFreysoldtSettings() *FreysoldtSettings {
	return &FreysoldtSettings{ReportAxis: -1}
}

func (set *FreysoldtSettings) fillDefaults() *FreysoldtSettings {
	if set == nil {
		return NewFreysoldtSettings().fillDefaults()
	}
	s := *set
	if s.WindowWidth <= 0 {
		s.WindowWidth = 1.0
	}
	if s.GaussianWidth <= 0 {
		s.GaussianWidth = 1.0
	}
	if s.MadelungTolerance <= 0 {
		s.MadelungTolerance = 1e-4
	}
	if s.Accuracy <= 0 {
		s.Accuracy = ewald.DefaultAccuracy
	}
	if s.ErrorTolerance <= 0 {
		s.ErrorTolerance = DefaultErrorTolerance
	}
	if s.ReportAxis > 2 {
		s.ReportAxis = -1
	}
	return &s
}

//FreysoldtInput collects the inputs of the FNV correction. The potential
//data can be given either as raw 3-D grids or as pre-extracted per-axis
//planar averages; when both are present the raw grids win and an advisory is
//attached.
type FreysoldtInput struct {
	Charge     int
	Dielectric Dielectric
	//The common supercell lattice of both calculations.
	Lattice *Lattice
	//Relaxed defect position, fractional.
	DefectFracCoords [3]float64
	//Raw potential grids, defect and bulk.
	DefectGrid *PotentialGrid
	BulkGrid   *PotentialGrid
	//Pre-extracted planar averages per axis (all three non-nil to be used).
	DefectPlanarAverages [3][]float64
	BulkPlanarAverages   [3][]float64
	Settings             *FreysoldtSettings
}

//FreysoldtCorrection computes the isotropic FNV finite-size charge
//correction. The dielectric is reduced to the mean of its diagonal; for
//anisotropic systems prefer KumagaiCorrection. The returned result carries
//the correction energy (point-charge term plus axis-averaged potential
//alignment) and the per-axis profiles needed to inspect the alignment.
func FreysoldtCorrection(in FreysoldtInput) (*CorrectionResult, error) {
	set := in.Settings.fillDefaults()
	if !in.Dielectric.IsSet() {
		return nil, errorf("FreysoldtCorrection: no dielectric constant given")
	}
	if in.Lattice == nil {
		return nil, errorf("FreysoldtCorrection: no supercell lattice given")
	}
	res := new(CorrectionResult)
	var defAvgs, bulkAvgs [3][]float64
	haveExtracted := in.DefectPlanarAverages[0] != nil && in.DefectPlanarAverages[1] != nil && in.DefectPlanarAverages[2] != nil &&
		in.BulkPlanarAverages[0] != nil && in.BulkPlanarAverages[1] != nil && in.BulkPlanarAverages[2] != nil
	switch {
	case in.DefectGrid != nil && in.BulkGrid != nil:
		if haveExtracted {
			res.warn(WarnAmbiguousInput, "both raw potential grids and pre-extracted planar averages given; using the raw grids", set.Suppress)
		}
		for axis := 0; axis < 3; axis++ {
			defAvgs[axis] = in.DefectGrid.AverageAlongAxis(axis)
			bulkAvgs[axis] = in.BulkGrid.AverageAlongAxis(axis)
		}
	case haveExtracted:
		if in.DefectGrid != nil || in.BulkGrid != nil {
			res.warn(WarnAmbiguousInput, "only one raw potential grid given; falling back to the pre-extracted planar averages", set.Suppress)
		}
		defAvgs = in.DefectPlanarAverages
		bulkAvgs = in.BulkPlanarAverages
	case in.DefectGrid == nil && in.BulkGrid != nil:
		return nil, errorf("FreysoldtCorrection: no defect potential data (grid or planar averages) given")
	case in.DefectGrid != nil && in.BulkGrid == nil:
		return nil, errorf("FreysoldtCorrection: no bulk potential data (grid or planar averages) given")
	default:
		return nil, errorf("FreysoldtCorrection: no potential data (grids or planar averages) given for either defect or bulk")
	}
	for axis := 0; axis < 3; axis++ {
		if len(defAvgs[axis]) != len(bulkAvgs[axis]) {
			return nil, errorf("FreysoldtCorrection: defect and bulk planar averages along axis %d differ in length (%d vs %d); the supercells are incompatible", axis, len(defAvgs[axis]), len(bulkAvgs[axis]))
		}
	}

	data := &FreysoldtData{Charge: in.Charge, ReportAxis: set.ReportAxis}
	res.Freysoldt = data
	if in.Charge == 0 {
		//no charge, no correction; there is no meaningful potential
		//alignment either, so the profiles stay empty.
		res.CorrectionEnergy = 0
		if set.Verbose {
			log.Printf("goDefect: Calculated Freysoldt (FNV) correction is 0.000 eV (neutral defect)")
		}
		return res, nil
	}

	epsScalar := in.Dielectric.MeanDiagonal()
	ew, err := ewald.New(in.Lattice.Matrix(), Isotropic(epsScalar).Tensor(), set.Accuracy)
	if err != nil {
		return nil, errDecorate(err, "FreysoldtCorrection")
	}
	q := float64(in.Charge)
	data.ElectrostaticCorrection = -ew.LatticeEnergy() * q * q * ewald.UnitConversion

	lengths := in.Lattice.Lengths()
	potCorrs := make([]float64, 3)
	for axis := 0; axis < 3; axis++ {
		nx := len(defAvgs[axis])
		positions := make([]float64, nx)
		for i := range positions {
			positions[i] = float64(i) * lengths[axis] / float64(nx)
		}
		prof, err := fnvAxisProfile(positions, defAvgs[axis], bulkAvgs[axis], in.Lattice, in.Charge, in.DefectFracCoords, axis, epsScalar, set)
		if err != nil {
			return nil, errDecorate(err, "FreysoldtCorrection")
		}
		data.Profiles[axis] = prof
		potCorrs[axis] = -q * prof.Alignment
		if prof.Uncertainty > set.ErrorTolerance {
			res.warn(WarnReliability, fmt.Sprintf("estimated error of the axis-%d potential alignment exceeds the tolerance; inspect the short-range residual flatness", axis), set.Suppress)
		}
	}
	data.AlignmentCorrection = stat.Mean(potCorrs, nil)
	res.CorrectionEnergy = data.ElectrostaticCorrection + data.AlignmentCorrection
	if set.Verbose {
		log.Printf("goDefect: Calculated Freysoldt (FNV) correction is %.3f eV", res.CorrectionEnergy)
	}
	return res, nil
}

//KumagaiSettings are the tunables of the eFNV correction. The zero value of
//every field selects the default.
type KumagaiSettings struct {
	//Radius (Angstrom) of the defect region whose sites are excluded from
	//the potential sampling. 0 means the Wigner-Seitz (maximum sphere)
	//radius of the supercell. For layered materials, where the defect
	//charge localises in one layer, adjusting this (and ExcludedIndices)
	//so that only other layers are sampled usually fixes a reliability
	//warning at small supercell sizes.
	DefectRegionRadius float64
	//Site indices (defect supercell) excluded from the sampling no matter
	//their distance, e.g. polaronic sites.
	ExcludedIndices []int
	//Ewald accuracy. 0 means ewald.DefaultAccuracy.
	Accuracy float64
	//Reliability threshold, eV. 0 means DefaultErrorTolerance.
	ErrorTolerance float64
	//Advisory classes not to attach to the result.
	Suppress []WarningKind
	//Log the computed correction.
	Verbose bool
}

func (set *KumagaiSettings) fillDefaults() *KumagaiSettings {
	if set == nil {
		set = new(KumagaiSettings)
	}
	s := *set
	if s.Accuracy <= 0 {
		s.Accuracy = ewald.DefaultAccuracy
	}
	if s.ErrorTolerance <= 0 {
		s.ErrorTolerance = DefaultErrorTolerance
	}
	return &s
}

//KumagaiInput collects the inputs of the eFNV correction. The per-site
//potential sequences must follow the site ordering of their structures; they
//are what an external parser extracts from, e.g., VASP OUTCARs (with the
//sign flipped to potentials felt by a positive test charge).
type KumagaiInput struct {
	Charge     int
	Dielectric Dielectric
	//Defect and bulk supercells. Lattices must match exactly or within
	//LatticeTolerance (the bulk is then rescaled); a larger mismatch is a
	//hard error.
	DefectStructure *Structure
	BulkStructure   *Structure
	//Atomic-site electrostatic potentials, one per site, in V.
	DefectSitePotentials []float64
	BulkSitePotentials   []float64
	//Defect-to-bulk site index mapping from the external structure
	//matcher. nil is accepted only when both supercells have the same
	//number of sites, in which case the identity mapping is used.
	SiteMapping map[int]int
	//Relaxed defect position, fractional, length 3. nil infers it from
	//the displacement centroid (with an advisory attached).
	DefectCoords []float64
	Settings     *KumagaiSettings
}

//KumagaiCorrection computes the eFNV (extended FNV, Kumagai-Oba) finite-size
//charge correction, valid for isotropic and anisotropic dielectrics alike.
//The correction energy is the anisotropic Ewald point-charge term; the
//fitted potential-alignment constant and the per-site table are returned as
//diagnostics in the result's KumagaiData.
func KumagaiCorrection(in KumagaiInput) (*CorrectionResult, error) {
	set := in.Settings.fillDefaults()
	if !in.Dielectric.IsSet() {
		return nil, errorf("KumagaiCorrection: no dielectric constant given")
	}
	if in.DefectStructure == nil || in.DefectStructure.Lattice == nil {
		return nil, errorf("KumagaiCorrection: no defect supercell given")
	}
	if in.BulkStructure == nil || in.BulkStructure.Lattice == nil {
		return nil, errorf("KumagaiCorrection: no bulk supercell given")
	}
	if in.DefectSitePotentials == nil {
		return nil, errorf("KumagaiCorrection: no defect atomic-site potentials given; the eFNV correction cannot be computed without them")
	}
	if in.BulkSitePotentials == nil {
		return nil, errorf("KumagaiCorrection: no bulk atomic-site potentials given; the eFNV correction cannot be computed without them")
	}
	//the engines mutate their local copies (lattice rescaling); inputs
	//stay untouched
	defectS := in.DefectStructure.Copy()
	bulkS := in.BulkStructure.Copy()
	if len(in.DefectSitePotentials) != defectS.Len() {
		return nil, errorf("KumagaiCorrection: %d defect site potentials for %d defect sites; the defect potential data is incomplete", len(in.DefectSitePotentials), defectS.Len())
	}
	if len(in.BulkSitePotentials) != bulkS.Len() {
		return nil, errorf("KumagaiCorrection: %d bulk site potentials for %d bulk sites; the bulk potential data is incomplete", len(in.BulkSitePotentials), bulkS.Len())
	}

	if !defectS.Lattice.Equal(bulkS.Lattice) {
		if defectS.Lattice.ApproxEqual(bulkS.Lattice, LatticeTolerance) {
			bulkS.Lattice = bulkS.Lattice.ScaledToVolume(defectS.Lattice.Volume())
		} else {
			return nil, errorf("KumagaiCorrection: bulk and defect supercells have different lattices, so the eFNV correction cannot be computed. Bulk: %v Defect: %v", bulkS.Lattice.m, defectS.Lattice.m)
		}
	}

	mapping := in.SiteMapping
	if mapping == nil {
		if defectS.Len() != bulkS.Len() {
			return nil, errorf("KumagaiCorrection: no defect-to-bulk site mapping given and the supercells differ in size (%d vs %d sites)", defectS.Len(), bulkS.Len())
		}
		mapping = make(map[int]int, defectS.Len())
		for i := 0; i < defectS.Len(); i++ {
			mapping[i] = i
		}
	}
	for d, b := range mapping {
		if d < 0 || d >= defectS.Len() || b < 0 || b >= bulkS.Len() {
			return nil, errorf("KumagaiCorrection: site mapping entry %d->%d out of range", d, b)
		}
	}
	for _, i := range set.ExcludedIndices {
		if i < 0 || i >= defectS.Len() {
			return nil, errorf("KumagaiCorrection: excluded site index %d out of range", i)
		}
	}

	res := new(CorrectionResult)
	var center [3]float64
	switch {
	case in.DefectCoords != nil:
		if len(in.DefectCoords) != 3 {
			return nil, errorf("KumagaiCorrection: defect coordinates need 3 components, got %d", len(in.DefectCoords))
		}
		copy(center[:], in.DefectCoords)
	default:
		var total float64
		center, total = defectS.DisplacementCentroid(bulkS, mapping)
		if total <= appzero {
			return nil, errorf("KumagaiCorrection: no defect coordinates given and no structural displacement to infer them from; pass DefectCoords explicitly")
		}
		res.warn(WarnDefectCenter, "defect center inferred from the displacement centroid; pass DefectCoords to override", set.Suppress)
	}

	radius := set.DefectRegionRadius
	if radius <= 0 {
		radius = defectS.Lattice.MaxSphereRadius()
	}

	data, err := makeEFNVCorrection(efnvParams{
		charge:       in.Charge,
		defectS:      defectS,
		defectPots:   in.DefectSitePotentials,
		bulkPots:     in.BulkSitePotentials,
		dielectric:   in.Dielectric.Tensor(),
		defectCoords: center,
		radius:       radius,
		accuracy:     set.Accuracy,
		excluded:     set.ExcludedIndices,
		mapping:      mapping,
	})
	if err != nil {
		return nil, errDecorate(err, "KumagaiCorrection")
	}
	res.Kumagai = data
	res.CorrectionEnergy = data.PointChargeCorrection
	if math.IsNaN(data.AvePotDiff) {
		res.warn(WarnSampling, "no sites outside the defect region radius; the potential alignment could not be sampled. Decrease DefectRegionRadius or use a larger supercell", set.Suppress)
	} else if data.Uncertainty > set.ErrorTolerance {
		res.warn(WarnReliability, "standard deviation of the sampled potential offsets exceeds the tolerance; consider adjusting DefectRegionRadius or ExcludedIndices for a better plateau", set.Suppress)
	}
	if set.Verbose {
		log.Printf("goDefect: Calculated Kumagai (eFNV) correction is %.3f eV", res.CorrectionEnergy)
	}
	return res, nil
}
