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
	"io"
	"strings"
	"text/tabwriter"

	"github.com/BurntSushi/toml"
	"github.com/ctessum/unit"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/chemflow"
	"github.com/spatialmodel/chemflow/chem"
	"github.com/spatialmodel/chemflow/device"
	"github.com/spatialmodel/chemflow/species"
)

var (
	// viscosityUnits is Pa·s.
	viscosityUnits = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -1, unit.TimeDim: -1}
	// conductivityUnits is W/(m·K).
	conductivityUnits = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 1, unit.TimeDim: -3, unit.TemperatureDim: -1}
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
}

// Params writes the parameters in p to w in TOML format.
func Params(w io.Writer, p *chemflow.Parameter) error {
	if err := toml.NewEncoder(w).Encode(p.Values()); err != nil {
		return fmt.Errorf("chemflow: writing parameters: %v", err)
	}
	return nil
}

// Species writes a table describing each species to w.
func Species(w io.Writer, tbl *species.Table) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "index\tname\tcomposition\tMW [g/mol]\tTLow [K]\tTMid [K]\tTHigh [K]\teps/k [K]")
	elems := tbl.Elements()
	for s, name := range tbl.Names() {
		var comp []string
		for e, elem := range elems {
			if n := tbl.ElemComp.Get(s, e); n != 0 {
				comp = append(comp, fmt.Sprintf("%s%d", elem, n))
			}
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.4f\t%g\t%g\t%g\t%.2f\n", s, name, strings.Join(comp, " "),
			tbl.MW[s], tbl.TLow[s], tbl.TMid[s], tbl.THigh[s], 1/tbl.LJPotentInv[s])
	}
	return tw.Flush()
}

// Thermo writes the specific heat, enthalpy and entropy of each species at
// temperature t to w.
func Thermo(w io.Writer, tbl *species.Table, t float64) error {
	n := tbl.NSpec
	cp, h, s := make([]float64, n), make([]float64, n), make([]float64, n)
	tbl.SpecificHeat(t, cp)
	tbl.Enthalpy(t, h)
	tbl.Entropy(t, s)
	warnRange(tbl, t)

	tw := newTable(w)
	fmt.Fprintf(tw, "T = %g K\n", t)
	fmt.Fprintln(tw, "name\tcp [J/(kg K)]\th [J/kg]\ts [J/(kg K)]")
	for i, name := range tbl.Names() {
		fmt.Fprintf(tw, "%s\t%.6g\t%.6g\t%.6g\n", name, cp[i], h[i], s[i])
	}
	return tw.Flush()
}

// Transport writes the viscosity and thermal conductivity of a mixture with
// mole fractions x at temperature t to w and returns them.
func Transport(w io.Writer, tbl *species.Table, t float64, x []float64) (mu, lambda *unit.Unit, err error) {
	muV, lambdaV := tbl.Transport(x, t, tbl.NewScratch())
	mu = unit.New(muV, viscosityUnits)
	lambda = unit.New(lambdaV, conductivityUnits)
	warnRange(tbl, t)

	tw := newTable(w)
	fmt.Fprintf(tw, "T = %g K\n", t)
	for i, name := range tbl.Names() {
		fmt.Fprintf(tw, "x[%s]\t%.6g\n", name, x[i])
	}
	fmt.Fprintf(tw, "viscosity\t%.6g\n", mu)
	fmt.Fprintf(tw, "conductivity\t%.6g\n", lambda)
	return mu, lambda, tw.Flush()
}

// Mirror copies the parameters and chemistry data to device memory
// provided by alloc, writes a summary to w and releases the copy.
func Mirror(w io.Writer, p *chemflow.Parameter, data *chem.Data, alloc device.Allocator) error {
	d, err := device.New(p, data, alloc)
	if err != nil {
		return err
	}
	defer d.Release()

	tw := newTable(w)
	fmt.Fprintf(tw, "dimension\t%d\n", d.Dim)
	fmt.Fprintf(tw, "inviscid scheme\t%d\n", d.InviscidScheme)
	fmt.Fprintf(tw, "reconstruction\t%d\n", d.Reconstruction)
	fmt.Fprintf(tw, "limiter\t%d\n", d.Limiter)
	fmt.Fprintf(tw, "viscous scheme\t%d\n", d.ViscousScheme)
	fmt.Fprintf(tw, "temporal scheme\t%d\n", d.TemporalScheme)
	fmt.Fprintf(tw, "Prandtl number\t%g\n", d.Pr)
	fmt.Fprintf(tw, "Schmidt number\t%g\n", d.Sc)
	fmt.Fprintf(tw, "species\t%d\n", d.NSpec)
	fmt.Fprintf(tw, "elements\t%d\n", d.NElem)
	if m, ok := alloc.(*device.HostMemory); ok {
		fmt.Fprintf(tw, "elements allocated\t%d\n", m.InUse())
	}
	fmt.Fprintf(tw, "fingerprint\t%s\n", d.Fingerprint())
	return tw.Flush()
}

// warnRange logs a warning if t is outside of the data range of any
// species.
func warnRange(tbl *species.Table, t float64) {
	x := make([]float64, tbl.NSpec)
	for i := range x {
		x[i] = 1 / float64(tbl.NSpec)
	}
	if err := tbl.CheckState(t, x); err != nil {
		logrus.WithFields(logrus.Fields{
			"temperature": t,
		}).Warnf("chemflow: %v; properties are evaluated at the range limit", err)
	}
}
