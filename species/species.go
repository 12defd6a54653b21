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

// Package species holds the thermodynamic and transport properties of the
// chemical species in a multi-species simulation, read from CHEMKIN-format
// mechanism, thermodynamic and transport data files.
package species

import (
	"fmt"
	"math"
	"os"

	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/chemflow"
	"github.com/spatialmodel/chemflow/internal/textio"
	"gonum.org/v1/gonum/mat"
)

// Configuration keys holding the locations of the species input files.
const (
	MechanismFileKey = "mechanism_file"
	ThermFileKey     = "therm_file"
	TransportFileKey = "transport_file"
)

// NCoeff is the number of coefficients in each NASA polynomial row.
const NCoeff = 7

// Parameters is the configuration store the species input file locations
// are read from.
type Parameters interface {
	GetString(name string) (string, error)
}

// Table holds the properties of every species in the simulation.
// It is built once by New or Read and its fields must not be modified
// afterwards. Species and elements are indexed in the order they are
// declared in the mechanism file.
type Table struct {
	NSpec int // number of species

	ElemList map[string]int // element name to index
	SpecList map[string]int // species name to index

	// ElemComp is the NSpec×NElem element composition: ElemComp.Get(s, e)
	// is the number of atoms of element e in species s.
	ElemComp *sparse.DenseArrayInt

	MW []float64 // molecular weight [g/mol]

	// Temperature breakpoints of the two-range polynomial fits [K].
	TLow, TMid, THigh []float64

	// NSpec×7 NASA polynomial coefficients for [TLow, TMid] and
	// [TMid, THigh].
	LowTempCoeff, HighTempCoeff *mat.Dense

	LJPotentInv []float64 // inverse Lennard-Jones well depth k/ε [1/K]
	VisCoeff    []float64 // 2.6693e-6·sqrt(MW)/σ² [Pa·s/K^½]

	// Pairwise molecular-weight terms of Wilke's mixture rule:
	// WjDivWiToOne4th(i, j) = (MW[j]/MW[i])^¼ and
	// SqrtWiDivWjPl1Mul8(i, j) = 1/sqrt(8·(1+MW[i]/MW[j])).
	WjDivWiToOne4th, SqrtWiDivWjPl1Mul8 *mat.Dense

	elemNames, specNames []string
}

// New reads the species input files named by the mechanism_file,
// therm_file and transport_file configuration keys and returns the
// resulting property table. If log is nil, the standard logger is used.
func New(cfg Parameters, log logrus.FieldLogger) (*Table, error) {
	var r [3]*textio.Reader
	for i, key := range []string{MechanismFileKey, ThermFileKey, TransportFileKey} {
		path, err := cfg.GetString(key)
		if err != nil {
			return nil, &chemflow.ConfigurationError{Name: key, Err: err}
		}
		r[i], err = textio.Open(os.ExpandEnv(path))
		if err != nil {
			return nil, &chemflow.ConfigurationError{File: path, Name: key, Err: err}
		}
	}
	return Read(r[0], r[1], r[2], log)
}

// Read builds a property table from a mechanism file declaring the elements
// and species, a thermodynamic data file and a transport data file.
func Read(mech, therm, tran *textio.Reader, log logrus.FieldLogger) (*Table, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	t := &Table{
		ElemList: make(map[string]int),
		SpecList: make(map[string]int),
	}
	if err := t.readMechanism(mech); err != nil {
		return nil, err
	}
	t.setNSpec()
	if err := t.readTherm(therm); err != nil {
		return nil, err
	}
	if err := t.readTran(tran); err != nil {
		return nil, err
	}
	t.setPairwise()

	for _, d := range t.CheckContinuity(ContinuityTolerance) {
		log.WithFields(logrus.Fields{
			"species": d.Species,
			"cp_low":  d.Low,
			"cp_high": d.High,
			"reldiff": d.RelDiff,
		}).Warn("species: specific heat is discontinuous at the mid-range temperature")
	}
	for s, name := range t.specNames {
		log.WithFields(logrus.Fields{
			"species": name,
			"index":   s,
			"mw":      t.MW[s],
		}).Debug("species: registered")
	}
	log.WithFields(logrus.Fields{
		"species":  t.NSpec,
		"elements": len(t.elemNames),
	}).Info("species: property table built")
	return t, nil
}

// registerElement returns the index of element name, adding it if it
// has not been seen before.
func (t *Table) registerElement(name string) int {
	if i, ok := t.ElemList[name]; ok {
		return i
	}
	i := len(t.elemNames)
	t.ElemList[name] = i
	t.elemNames = append(t.elemNames, name)
	return i
}

// registerSpecies adds species name and returns its index. Species
// names must be unique.
func (t *Table) registerSpecies(name string) (int, error) {
	if _, ok := t.SpecList[name]; ok {
		return -1, fmt.Errorf("species %s is declared more than once", name)
	}
	i := len(t.specNames)
	t.SpecList[name] = i
	t.specNames = append(t.specNames, name)
	return i, nil
}

// setNSpec sizes the property arrays once all species are registered.
func (t *Table) setNSpec() {
	n := len(t.specNames)
	t.NSpec = n
	t.ElemComp = sparse.ZerosDenseInt(n, len(t.elemNames))
	t.MW = make([]float64, n)
	t.TLow = make([]float64, n)
	t.TMid = make([]float64, n)
	t.THigh = make([]float64, n)
	t.LowTempCoeff = mat.NewDense(n, NCoeff, nil)
	t.HighTempCoeff = mat.NewDense(n, NCoeff, nil)
	t.LJPotentInv = make([]float64, n)
	t.VisCoeff = make([]float64, n)
	t.WjDivWiToOne4th = mat.NewDense(n, n, nil)
	t.SqrtWiDivWjPl1Mul8 = mat.NewDense(n, n, nil)
}

// setPairwise computes the molecular-weight terms of Wilke's rule.
func (t *Table) setPairwise() {
	for i := 0; i < t.NSpec; i++ {
		for j := 0; j < t.NSpec; j++ {
			t.WjDivWiToOne4th.Set(i, j, math.Pow(t.MW[j]/t.MW[i], 0.25))
			t.SqrtWiDivWjPl1Mul8.Set(i, j, 1/math.Sqrt(8*(1+t.MW[i]/t.MW[j])))
		}
	}
}

// Names returns the species names in index order.
func (t *Table) Names() []string {
	return append([]string(nil), t.specNames...)
}

// Elements returns the element names in index order.
func (t *Table) Elements() []string {
	return append([]string(nil), t.elemNames...)
}

// Index returns the index of the named species.
func (t *Table) Index(name string) (int, bool) {
	i, ok := t.SpecList[name]
	return i, ok
}

// Props returns a flattened view of the table for use with the
// evaluation kernels. The view shares storage with t.
func (t *Table) Props() Props {
	return Props{
		NSpec:              t.NSpec,
		MW:                 t.MW,
		TLow:               t.TLow,
		TMid:               t.TMid,
		THigh:              t.THigh,
		LowTempCoeff:       t.LowTempCoeff.RawMatrix().Data,
		HighTempCoeff:      t.HighTempCoeff.RawMatrix().Data,
		LJPotentInv:        t.LJPotentInv,
		VisCoeff:           t.VisCoeff,
		WjDivWiToOne4th:    t.WjDivWiToOne4th.RawMatrix().Data,
		SqrtWiDivWjPl1Mul8: t.SqrtWiDivWjPl1Mul8.RawMatrix().Data,
	}
}

// NewScratch returns working storage for one caller of Transport.
func (t *Table) NewScratch() *Scratch { return NewScratch(t.NSpec) }

// SpecificHeat writes the specific heat [J/(kg·K)] of each species at
// temperature temp into cp, which must have length NSpec.
func (t *Table) SpecificHeat(temp float64, cp []float64) { t.Props().SpecificHeat(temp, cp) }

// Enthalpy writes the specific enthalpy [J/kg] of each species at
// temperature temp into h.
func (t *Table) Enthalpy(temp float64, h []float64) { t.Props().Enthalpy(temp, h) }

// Entropy writes the specific entropy [J/(kg·K)] at the standard
// pressure of each species at temperature temp into s.
func (t *Table) Entropy(temp float64, s []float64) { t.Props().Entropy(temp, s) }

// Transport returns the mixture viscosity [Pa·s] and thermal conductivity
// [W/(m·K)] for mole fractions x at temperature temp, using s as
// working storage.
func (t *Table) Transport(x []float64, temp float64, s *Scratch) (mu, lambda float64) {
	return t.Props().Transport(x, temp, s)
}

// MoleFractions converts the mass fractions y into mole fractions x.
func (t *Table) MoleFractions(y, x []float64) { t.Props().MoleFractions(y, x) }

// CheckState returns a *chemflow.RangeError if temperature temp or mole
// fractions x are outside of the range the data are valid for.
func (t *Table) CheckState(temp float64, x []float64) error {
	return t.Props().CheckState(temp, x)
}
