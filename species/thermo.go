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
	"strconv"
	"strings"

	"github.com/spatialmodel/chemflow"
	"github.com/spatialmodel/chemflow/internal/textio"
)

// atomicWeight holds standard atomic weights [g/mol].
var atomicWeight = map[string]float64{
	"E":  5.48579909e-4,
	"H":  1.00794,
	"D":  2.014102,
	"HE": 4.002602,
	"C":  12.011,
	"N":  14.0067,
	"O":  15.999,
	"F":  18.998403,
	"NE": 20.1797,
	"NA": 22.98977,
	"S":  32.065,
	"CL": 35.453,
	"AR": 39.948,
	"KR": 83.798,
	"XE": 131.293,
}

// Column layout of a CHEMKIN thermodynamic record. Element fields are
// 5 columns wide: 2 for the symbol, 3 for the count. The fifth element
// field follows the mid-range temperature.
const (
	nameWidth   = 18
	compStart   = 24
	compFields  = 4
	compWidth   = 5
	tLowStart   = 45
	tHighStart  = 55
	tMidStart   = 65
	tWidth      = 10
	tMidWidth   = 8
	comp5Start  = 73
	headerWidth = 80

	coeffLines     = 3
	coeffWidth     = 15
	coeffsPerLine  = 5
	coeffsPerBlock = 2 * NCoeff
)

var fortranExp = strings.NewReplacer("D", "E", "d", "e")

// readTherm reads the NASA polynomial record of every registered species
// from a CHEMKIN thermodynamic data file.
func (t *Table) readTherm(r *textio.Reader) error {
	r.Rewind()
	tDefault := [3]float64{300, 1000, 5000} // low, mid, high
	if _, ok := r.ReadUntil("THERMO", textio.Upper); ok {
		if line, ok := r.NextNonBlank(textio.Upper); ok {
			if v, err := parseFloats(strings.Fields(line)); err == nil && len(v) >= 3 {
				copy(tDefault[:], v[:3])
			}
		}
	}
	for s, name := range t.specNames {
		header, ok := findRecord(r, name, thermName)
		if !ok {
			return &chemflow.ConfigurationError{File: r.Name(), Name: name,
				Err: errors.New("thermodynamic data not found")}
		}
		if err := t.readThermRecord(r, s, header, tDefault); err != nil {
			return &chemflow.ConfigurationError{File: r.Name(), Name: name, Line: r.Line(), Err: err}
		}
	}
	return nil
}

// readThermRecord parses the header line and the following three
// coefficient lines of the record for species s.
func (t *Table) readThermRecord(r *textio.Reader, s int, header string, tDefault [3]float64) error {
	header = fmt.Sprintf("%-*s", headerWidth, header)
	var mw float64
	for _, start := range compColumns() {
		f := header[start : start+compWidth]
		sym := strings.TrimSpace(f[:2])
		cnt := strings.TrimSpace(f[2:])
		if sym == "" || cnt == "" {
			continue
		}
		c, err := strconv.ParseFloat(cnt, 64)
		if err != nil {
			return fmt.Errorf("element count for %s: %w", sym, err)
		}
		n := int(math.Round(c))
		if n == 0 {
			continue
		}
		e, ok := t.ElemList[sym]
		if !ok {
			return fmt.Errorf("element %s is not declared in the mechanism", sym)
		}
		aw, ok := atomicWeight[sym]
		if !ok {
			return fmt.Errorf("no atomic weight for element %s", sym)
		}
		t.ElemComp.Set(t.ElemComp.Get(s, e)+n, s, e)
		mw += float64(n) * aw
	}
	if mw <= 0 {
		return errors.New("empty element composition")
	}
	t.MW[s] = mw

	temps := tDefault
	for i, col := range [][2]int{{tLowStart, tWidth}, {tMidStart, tMidWidth}, {tHighStart, tWidth}} {
		f := strings.TrimSpace(header[col[0] : col[0]+col[1]])
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return fmt.Errorf("temperature range: %w", err)
		}
		temps[i] = v
	}
	if !(temps[0] <= temps[1] && temps[1] <= temps[2]) {
		return fmt.Errorf("temperature ranges are out of order: low=%g, mid=%g, high=%g",
			temps[0], temps[1], temps[2])
	}
	t.TLow[s], t.TMid[s], t.THigh[s] = temps[0], temps[1], temps[2]

	coeffs := make([]float64, 0, coeffsPerBlock)
	for i := 0; i < coeffLines; i++ {
		line, ok := r.Next(textio.Upper)
		if !ok {
			return errors.New("record is truncated")
		}
		n := coeffsPerLine
		if rest := coeffsPerBlock - len(coeffs); rest < n {
			n = rest
		}
		v, err := parseCoeffs(line, n)
		if err != nil {
			return fmt.Errorf("coefficient line %d: %w", i+2, err)
		}
		coeffs = append(coeffs, v...)
	}
	t.HighTempCoeff.SetRow(s, coeffs[:NCoeff])
	t.LowTempCoeff.SetRow(s, coeffs[NCoeff:coeffsPerBlock])
	return nil
}

// compColumns returns the starting columns of the element fields of a
// record header.
func compColumns() []int {
	c := make([]int, 0, compFields+1)
	for k := 0; k < compFields; k++ {
		c = append(c, compStart+k*compWidth)
	}
	return append(c, comp5Start)
}

// parseCoeffs reads the first n fixed-width coefficient fields of a
// record line. Every one of them must hold a number.
func parseCoeffs(line string, n int) ([]float64, error) {
	line = fmt.Sprintf("%-*s", coeffWidth*coeffsPerLine, line)
	v := make([]float64, n)
	for k := range v {
		f := strings.TrimSpace(line[k*coeffWidth : (k+1)*coeffWidth])
		if f == "" {
			return nil, fmt.Errorf("missing coefficient in field %d", k+1)
		}
		var err error
		v[k], err = strconv.ParseFloat(fortranExp.Replace(f), 64)
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}

// thermName returns the species name field of a thermodynamic record
// header.
func thermName(line string) string {
	if len(line) > nameWidth {
		line = line[:nameWidth]
	}
	return firstField(line)
}

// findRecord returns the first line at or after the beginning of r whose
// name, as extracted by key, is name. The cursor is left after the line.
func findRecord(r *textio.Reader, name string, key func(string) string) (string, bool) {
	r.Rewind()
	for {
		line, ok := r.ReadUntil(name, textio.Upper)
		if !ok {
			return line, false
		}
		if key(line) == name {
			return line, true
		}
	}
}

func firstField(line string) string {
	f := strings.Fields(line)
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

func parseFloats(s []string) ([]float64, error) {
	v := make([]float64, len(s))
	for i, f := range s {
		var err error
		v[i], err = strconv.ParseFloat(fortranExp.Replace(f), 64)
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}
