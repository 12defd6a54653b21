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

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spatialmodel/chemflow"
	"github.com/spatialmodel/chemflow/internal/textio"
)

// chapmanEnskog is the Chapman-Enskog viscosity prefactor for molecular
// weight in g/mol, collision diameter in Å and temperature in K, giving
// viscosity in Pa·s.
const chapmanEnskog = 2.6693e-6

// Column indices of a CHEMKIN transport data row.
const (
	tranGeometry = iota + 1
	tranEpsilon
	tranSigma
)

// readTran reads the Lennard-Jones parameters of every registered species
// from a CHEMKIN transport data file.
func (t *Table) readTran(r *textio.Reader) error {
	for s, name := range t.specNames {
		line, ok := findRecord(r, name, firstField)
		if !ok {
			return &chemflow.ConfigurationError{File: r.Name(), Name: name,
				Err: errors.New("transport data not found")}
		}
		eps, sigma, err := parseTranRow(stripComment(line))
		if err != nil {
			return &chemflow.ConfigurationError{File: r.Name(), Name: name, Line: r.Line(), Err: err}
		}
		t.LJPotentInv[s] = 1 / eps
		t.VisCoeff[s] = chapmanEnskog * math.Sqrt(t.MW[s]) / (sigma * sigma)
	}
	return nil
}

// parseTranRow returns the Lennard-Jones well depth ε/k [K] and
// collision diameter σ [Å] from a transport row.
func parseTranRow(line string) (eps, sigma float64, err error) {
	f := strings.Fields(line)
	if len(f) <= tranSigma {
		return 0, 0, fmt.Errorf("found %d fields, need at least %d", len(f), tranSigma+1)
	}
	v, err := parseFloats(f[tranEpsilon : tranSigma+1])
	if err != nil {
		return 0, 0, err
	}
	eps, sigma = v[0], v[1]
	if !(eps > 0) || !(sigma > 0) {
		return 0, 0, fmt.Errorf("non-positive Lennard-Jones parameters: eps/k=%g, sigma=%g", eps, sigma)
	}
	return eps, sigma, nil
}
