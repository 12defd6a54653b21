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

package species

import "math"

// ContinuityTolerance is the largest relative difference between the
// specific heats from the low- and high-temperature polynomials at the
// mid-range temperature that is not reported as a discontinuity.
const ContinuityTolerance = 1e-3

// Discontinuity describes a species whose polynomial rows disagree at
// the mid-range temperature.
type Discontinuity struct {
	Species   string
	TMid      float64
	Low, High float64 // cp/R from each row at TMid
	RelDiff   float64
}

// CheckContinuity returns the species whose low- and high-temperature
// specific heats at TMid differ by more than tol relative to each other.
func (t *Table) CheckContinuity(tol float64) []Discontinuity {
	var o []Discontinuity
	for s, name := range t.specNames {
		tm := t.TMid[s]
		lo := cpPoly(t.LowTempCoeff.RawRowView(s), tm)
		hi := cpPoly(t.HighTempCoeff.RawRowView(s), tm)
		d := 2 * math.Abs(lo-hi) / math.Abs(lo+hi)
		if d > tol || math.IsNaN(d) {
			o = append(o, Discontinuity{Species: name, TMid: tm, Low: lo, High: hi, RelDiff: d})
		}
	}
	return o
}
