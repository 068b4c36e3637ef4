/*
 * plot.go, part of godefect.
 *
 * Copyright 2023 Raul Mera <rmera{at}usachDOTcl>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

//Package defectplot renders the diagnostic plots of the charge corrections:
//the planar-average alignment curves of the FNV scheme and the site-potential
//scatter of the eFNV scheme. The plots are the main tool to judge whether a
//correction can be trusted, so a result without plottable content (a neutral
//defect, an empty site table) is an error here, not an empty picture.
package defectplot

import (
	"fmt"
	"image/color"

	"github.com/rmera/godefect"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

//PlanarAverage plots one axis of an FNV correction: the planar-averaged DFT
//potential difference, the long-range point-charge model and the short-range
//residual, with the sampling window marked by vertical lines. The plot is
//saved as plotname.png.
func PlanarAverage(prof *defect.PlanarProfile, plotname string) error {
	if prof == nil || len(prof.Positions) == 0 {
		return Error{message: "goDefect/defectplot: PlanarAverage: no planar-average data to plot", critical: true}
	}
	p := basicPlot(fmt.Sprintf("Freysoldt planar average, axis %d", prof.Axis), "Distance along axis (A)", "Potential (V)")
	curves := []struct {
		name string
		y    []float64
	}{
		{"DFT difference", prof.DFTDiff},
		{"Point-charge model", prof.LongRange},
		{"Short-range residual", prof.ShortRange},
	}
	for i, c := range curves {
		if len(c.y) != len(prof.Positions) {
			return Error{message: fmt.Sprintf("goDefect/defectplot: PlanarAverage: curve %q has %d points for %d positions", c.name, len(c.y), len(prof.Positions)), critical: true}
		}
		l, err := plotter.NewLine(toXYs(prof.Positions, c.y))
		if err != nil {
			return errDecorate(err, "PlanarAverage")
		}
		l.LineStyle.Width = vg.Points(1)
		l.LineStyle.Color = plotutil.Color(i)
		l.LineStyle.Dashes = plotutil.Dashes(i)
		p.Add(l)
		p.Legend.Add(c.name, l)
	}
	//mark the sampling window of the alignment fit
	ymin, ymax := yRange(prof.DFTDiff, prof.LongRange, prof.ShortRange)
	lo, hi := prof.Window[0], prof.Window[1]
	if lo >= 0 && hi <= len(prof.Positions) && hi > lo {
		xhi := prof.Positions[hi-1]
		for _, x := range []float64{prof.Positions[lo], xhi} {
			v, err := plotter.NewLine(plotter.XYs{{X: x, Y: ymin}, {X: x, Y: ymax}})
			if err != nil {
				return errDecorate(err, "PlanarAverage")
			}
			v.LineStyle.Color = color.RGBA{R: 128, G: 128, B: 128, A: 255}
			v.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
			p.Add(v)
		}
	}
	p.Legend.Top = true
	if err := p.Save(5*vg.Inch, 4*vg.Inch, plotname+".png"); err != nil {
		return errDecorate(err, "PlanarAverage")
	}
	return nil
}

//Freysoldt plots the planar-average curves of an FNV correction: the axis
//singled out in the data, or, if all axes were requested (ReportAxis < 0),
//one plot per axis, saved as plotname_axisN.png. A neutral defect has no
//alignment curves and is an error.
func Freysoldt(data *defect.FreysoldtData, plotname string) error {
	if data == nil {
		return Error{message: "goDefect/defectplot: Freysoldt: nil correction data", critical: true}
	}
	if data.Charge == 0 {
		return Error{message: "goDefect/defectplot: Freysoldt: a neutral defect has no potential-alignment data to plot", critical: true}
	}
	if data.ReportAxis >= 0 && data.ReportAxis <= 2 {
		prof := data.Profiles[data.ReportAxis]
		if prof == nil {
			return Error{message: fmt.Sprintf("goDefect/defectplot: Freysoldt: no profile for axis %d", data.ReportAxis), critical: true}
		}
		return PlanarAverage(prof, plotname)
	}
	for axis, prof := range data.Profiles {
		if prof == nil {
			return Error{message: fmt.Sprintf("goDefect/defectplot: Freysoldt: no profile for axis %d", axis), critical: true}
		}
		if err := PlanarAverage(prof, fmt.Sprintf("%s_axis%d", plotname, axis)); err != nil {
			return err
		}
	}
	return nil
}

//Kumagai plots the site-potential data of an eFNV correction: the potential
//difference at each atomic site against its distance from the defect, one
//glyph per species, the point-charge model at the sampled sites, and the
//fitted mean offset as a horizontal line. The defect region boundary is
//marked by a vertical line. Saved as plotname.png.
func Kumagai(data *defect.KumagaiData, plotname string) error {
	if data == nil || len(data.Sites) == 0 {
		return Error{message: "goDefect/defectplot: Kumagai: no site-potential data to plot", critical: true}
	}
	if data.Charge == 0 {
		return Error{message: "goDefect/defectplot: Kumagai: a neutral defect has no site-potential data to plot", critical: true}
	}
	p := basicPlot("Kumagai site potentials", "Distance from defect (A)", "Potential difference (V)")
	var xmax float64
	for key, species := range data.Species() {
		pts := make(plotter.XYs, 0)
		for _, s := range data.Sites {
			if s.Species != species {
				continue
			}
			pts = append(pts, plotter.XY{X: s.Distance, Y: s.Potential})
			if s.Distance > xmax {
				xmax = s.Distance
			}
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return errDecorate(err, "Kumagai")
		}
		sc.GlyphStyle.Shape = getShape(key)
		sc.GlyphStyle.Color = plotutil.Color(key)
		p.Add(sc)
		p.Legend.Add(species, sc)
	}
	//the model the sampled sites are fitted against
	sampled := data.SampledSites()
	if len(sampled) > 0 {
		pc := make(plotter.XYs, len(sampled))
		for i, s := range sampled {
			pc[i] = plotter.XY{X: s.Distance, Y: s.PcPotential}
		}
		l, err := plotter.NewLine(pc)
		if err != nil {
			return errDecorate(err, "Kumagai")
		}
		l.LineStyle.Color = color.RGBA{A: 255}
		l.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}
		p.Add(l)
		p.Legend.Add("Point-charge model", l)
		ave, err := plotter.NewLine(plotter.XYs{{X: 0, Y: data.AvePotDiff}, {X: xmax, Y: data.AvePotDiff}})
		if err != nil {
			return errDecorate(err, "Kumagai")
		}
		ave.LineStyle.Color = color.RGBA{R: 200, A: 255}
		p.Add(ave)
		p.Legend.Add("Mean offset", ave)
	}
	//defect region boundary
	ys := make([]float64, len(data.Sites))
	for i, s := range data.Sites {
		ys[i] = s.Potential
	}
	ymin, ymax := yRange(ys)
	b, err := plotter.NewLine(plotter.XYs{{X: data.DefectRegionRadius, Y: ymin}, {X: data.DefectRegionRadius, Y: ymax}})
	if err != nil {
		return errDecorate(err, "Kumagai")
	}
	b.LineStyle.Color = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	b.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	p.Add(b)
	p.Legend.Top = true
	if err := p.Save(5*vg.Inch, 4*vg.Inch, plotname+".png"); err != nil {
		return errDecorate(err, "Kumagai")
	}
	return nil
}

func getShape(key int) draw.GlyphDrawer {
	switch key % 5 {
	case 0:
		return draw.CircleGlyph{}
	case 1:
		return draw.PyramidGlyph{}
	case 2:
		return draw.SquareGlyph{}
	case 3:
		return draw.CrossGlyph{}
	default:
		return draw.RingGlyph{}
	}
}
