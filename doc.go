/*
 * doc.go, part of godefect.
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

//Package defect computes finite-size electrostatic charge corrections for
//charged point defects simulated in periodic supercells.
//
//Two independent schemes are implemented:
//
//  1. The extended FNV (eFNV, Kumagai-Oba) correction, which samples the
//     atomic-site electrostatic potentials outside a defect region and works
//     for both isotropic and anisotropic dielectric tensors. This is the
//     recommended default. See KumagaiCorrection.
//  2. The FNV (Freysoldt-Neugebauer-Van de Walle) correction, which aligns
//     planar-averaged potentials and assumes an isotropic dielectric. See
//     FreysoldtCorrection.
//
//Both build the periodic point-charge interaction energy on the ewald
//subpackage. Parsing of simulation output into potential grids, per-atom
//potentials and structures, as well as defect/bulk site matching, is the
//caller's responsibility; this package starts from such in-memory data and
//returns a scalar correction energy plus the full diagnostic data needed to
//judge it (see the defectplot and defectjson subpackages for consumers).
//
//If you use these corrections, please cite Kumagai and Oba,
//Phys. Rev. B 89, 195205 (2014) for eFNV, or Freysoldt, Neugebauer and
//Van de Walle, Phys. Status Solidi B 248, 1067 (2011) for FNV.
//
//Note that, ideally, the "defect site" given to either correction should be
//the centre of the localised charge in the defect supercell. This usually
//coincides with the defect site, but not always (e.g. a vacancy where the
//charge localises as a polaron on a neighbouring atom). For large supercells
//the difference is negligible; for small cells with large corrections it can
//matter, and the sampling region should be adjusted accordingly.
package defect
