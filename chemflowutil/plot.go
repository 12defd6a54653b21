/*
Copyright © 2019 the ChemFlow authors.
This file is part of ChemFlow.

ChemFlow is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ChemFlow is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ChemFlow.  If not, see <http://www.gnu.org/licenses/>.
*/

package chemflowutil

import (
	"fmt"

	"github.com/spatialmodel/chemflow/species"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	figWidth  = 6 * vg.Inch
	figHeight = 4 * vg.Inch
)

// Plot draws the specific heat of each species at n temperatures between
// tMin and tMax and saves the figure to file.
func Plot(tbl *species.Table, tMin, tMax float64, n int, file string) error {
	if n < 2 || !(tMax > tMin) {
		return fmt.Errorf("chemflow: invalid plot range: %d points in [%g, %g] K", n, tMin, tMax)
	}
	p, err := plot.New()
	if err != nil {
		return fmt.Errorf("chemflow: creating plot: %v", err)
	}
	p.Title.Text = "Specific heat"
	p.X.Label.Text = "Temperature [K]"
	p.Y.Label.Text = "cp [J/(kg K)]"
	p.Add(plotter.NewGrid())

	curves := make([]plotter.XYs, tbl.NSpec)
	for i := range curves {
		curves[i] = make(plotter.XYs, n)
	}
	cp := make([]float64, tbl.NSpec)
	for j := 0; j < n; j++ {
		t := tMin + (tMax-tMin)*float64(j)/float64(n-1)
		tbl.SpecificHeat(t, cp)
		for i := range curves {
			curves[i][j].X = t
			curves[i][j].Y = cp[i]
		}
	}
	for i, name := range tbl.Names() {
		l, err := plotter.NewLine(curves[i])
		if err != nil {
			return fmt.Errorf("chemflow: plotting %s: %v", name, err)
		}
		l.Color = plotutil.Color(i)
		l.Dashes = plotutil.Dashes(i)
		p.Add(l)
		p.Legend.Add(name, l)
	}
	p.Legend.Top = true
	if err := p.Save(figWidth, figHeight, file); err != nil {
		return fmt.Errorf("chemflow: saving plot: %v", err)
	}
	return nil
}
