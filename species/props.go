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
	"math"

	"github.com/spatialmodel/chemflow"
	"gonum.org/v1/gonum/floats"
)

// Props is a flattened, read-only view of species properties that the
// evaluation kernels operate on. It can be backed by a Table or by a
// device mirror. Matrices are row major: coefficient j of species s is
// at s*NCoeff+j, and pairwise term (i, j) is at i*NSpec+j.
type Props struct {
	NSpec int

	MW, TLow, TMid, THigh       []float64
	LowTempCoeff, HighTempCoeff []float64
	LJPotentInv, VisCoeff       []float64

	WjDivWiToOne4th, SqrtWiDivWjPl1Mul8 []float64
}

// Scratch is the working storage for one caller of Transport. Scratch
// values must not be shared between concurrent callers.
type Scratch struct {
	X            []float64 // normalized mole fractions
	VisSpec      []float64 // species viscosities [Pa·s]
	Lambda       []float64 // species thermal conductivities [W/(m·K)]
	Cp           []float64 // species specific heats [J/(kg·K)]
	PartitionFun []float64 // NSpec×NSpec Wilke coefficients, row major
}

// NewScratch returns working storage for nSpec species.
func NewScratch(nSpec int) *Scratch {
	return &Scratch{
		X:            make([]float64, nSpec),
		VisSpec:      make([]float64, nSpec),
		Lambda:       make([]float64, nSpec),
		Cp:           make([]float64, nSpec),
		PartitionFun: make([]float64, nSpec*nSpec),
	}
}

// SpecificHeat writes the specific heat [J/(kg·K)] of each species at
// temperature t into cp. Temperatures outside of a species' data range
// are clamped to it.
func (p Props) SpecificHeat(t float64, cp []float64) {
	for s := 0; s < p.NSpec; s++ {
		cp[s] = p.cp(s, p.clamp(s, t))
	}
}

// Enthalpy writes the specific enthalpy [J/kg] of each species at
// temperature t into h. Outside of a species' data range the enthalpy is
// extended with the specific heat at the nearest range boundary.
func (p Props) Enthalpy(t float64, h []float64) {
	for s := 0; s < p.NSpec; s++ {
		tc := p.clamp(s, t)
		h[s] = p.gasConstant(s) * tc * hPoly(p.coeff(s, tc), tc)
		if t > 0 && tc != t {
			h[s] += p.cp(s, tc) * (t - tc)
		}
	}
}

// Entropy writes the specific entropy [J/(kg·K)] at the standard pressure
// of each species at temperature t into s. Outside of a species' data
// range the entropy is extended with the specific heat at the nearest
// range boundary.
func (p Props) Entropy(t float64, s []float64) {
	for i := 0; i < p.NSpec; i++ {
		tc := p.clamp(i, t)
		s[i] = p.gasConstant(i) * sPoly(p.coeff(i, tc), tc)
		if t > 0 && tc != t {
			s[i] += p.cp(i, tc) * math.Log(t/tc)
		}
	}
}

// Transport returns the viscosity [Pa·s] and thermal conductivity
// [W/(m·K)] of a mixture with mole fractions x at temperature t.
//
// Species viscosities follow Chapman-Enskog theory and species
// conductivities the Eucken relation; both are combined with
// Wilke's mixture rule. Negative and NaN mole fractions are treated as
// zero and the remainder is renormalized. If no species is present, both
// results are zero.
func (p Props) Transport(x []float64, t float64, s *Scratch) (mu, lambda float64) {
	n := p.NSpec
	for i := 0; i < n; i++ {
		if x[i] > 0 {
			s.X[i] = x[i]
		} else {
			s.X[i] = 0
		}
	}
	sum := floats.Sum(s.X[:n])
	if !(sum > 0) || math.IsInf(sum, 0) {
		return 0, 0
	}
	floats.Scale(1/sum, s.X[:n])

	for i := 0; i < n; i++ {
		tc := p.clamp(i, t)
		s.VisSpec[i] = p.VisCoeff[i] * math.Sqrt(tc) / collisionIntegral(tc*p.LJPotentInv[i])
		s.Cp[i] = p.cp(i, tc)
		s.Lambda[i] = s.VisSpec[i] * (s.Cp[i] + 1.25*p.gasConstant(i))
	}
	for i := 0; i < n; i++ {
		phi := s.PartitionFun[i*n : (i+1)*n]
		for j := 0; j < n; j++ {
			f := 1 + math.Sqrt(s.VisSpec[i]/s.VisSpec[j])*p.WjDivWiToOne4th[i*n+j]
			phi[j] = f * f * p.SqrtWiDivWjPl1Mul8[i*n+j]
		}
		if s.X[i] == 0 {
			continue
		}
		d := floats.Dot(s.X[:n], phi)
		mu += s.X[i] * s.VisSpec[i] / d
		lambda += s.X[i] * s.Lambda[i] / d
	}
	return mu, lambda
}

// MoleFractions converts the mass fractions y into mole fractions x.
// Negative mass fractions are treated as zero. If no species is present,
// x is set to zero.
func (p Props) MoleFractions(y, x []float64) {
	var sum float64
	for i := 0; i < p.NSpec; i++ {
		x[i] = 0
		if y[i] > 0 {
			x[i] = y[i] / p.MW[i]
		}
		sum += x[i]
	}
	if sum > 0 {
		floats.Scale(1/sum, x[:p.NSpec])
	}
}

// moleFractionTolerance is the allowed deviation of a mole fraction sum
// from one in CheckState.
const moleFractionTolerance = 1e-6

// CheckState returns a *chemflow.RangeError if t is outside of the data
// range of any species, or if x contains a value outside [0, 1] or does
// not sum to one.
func (p Props) CheckState(t float64, x []float64) error {
	for s := 0; s < p.NSpec; s++ {
		if !(t >= p.TLow[s] && t <= p.THigh[s]) {
			return &chemflow.RangeError{Quantity: "temperature", Value: t, Min: p.TLow[s], Max: p.THigh[s]}
		}
	}
	if len(x) != p.NSpec {
		return &chemflow.RangeError{Quantity: "species count", Value: float64(len(x)),
			Min: float64(p.NSpec), Max: float64(p.NSpec)}
	}
	var sum float64
	for _, v := range x {
		if !(v >= 0 && v <= 1) {
			return &chemflow.RangeError{Quantity: "mole fraction", Value: v, Min: 0, Max: 1}
		}
		sum += v
	}
	if math.Abs(sum-1) > moleFractionTolerance {
		return &chemflow.RangeError{Quantity: "mole fraction sum", Value: sum,
			Min: 1 - moleFractionTolerance, Max: 1 + moleFractionTolerance}
	}
	return nil
}

// clamp limits t to the data range of species s. Non-positive and NaN
// temperatures map to the low end of the range.
func (p Props) clamp(s int, t float64) float64 {
	switch {
	case !(t > p.TLow[s]):
		return p.TLow[s]
	case t > p.THigh[s]:
		return p.THigh[s]
	default:
		return t
	}
}

// coeff returns the polynomial row of species s that covers temperature t.
func (p Props) coeff(s int, t float64) []float64 {
	if t <= p.TMid[s] {
		return p.LowTempCoeff[s*NCoeff : (s+1)*NCoeff]
	}
	return p.HighTempCoeff[s*NCoeff : (s+1)*NCoeff]
}

// gasConstant returns the specific gas constant [J/(kg·K)] of species s.
func (p Props) gasConstant(s int) float64 {
	return chemflow.RUniversal / (p.MW[s] * 1e-3)
}

func (p Props) cp(s int, t float64) float64 {
	return p.gasConstant(s) * cpPoly(p.coeff(s, t), t)
}

// cpPoly returns cp/R.
func cpPoly(a []float64, t float64) float64 {
	return a[0] + t*(a[1]+t*(a[2]+t*(a[3]+t*a[4])))
}

// hPoly returns h/(RT).
func hPoly(a []float64, t float64) float64 {
	return a[0] + t*(a[1]/2+t*(a[2]/3+t*(a[3]/4+t*a[4]/5))) + a[5]/t
}

// sPoly returns s/R.
func sPoly(a []float64, t float64) float64 {
	return a[0]*math.Log(t) + t*(a[1]+t*(a[2]/2+t*(a[3]/3+t*a[4]/4))) + a[6]
}

// collisionIntegral returns the reduced viscosity collision integral
// Ω(2,2)* at reduced temperature tStar = kT/ε, from the fit of
// Neufeld, Janzen and Aziz (1972).
func collisionIntegral(tStar float64) float64 {
	return 1.16145*math.Pow(tStar, -0.14874) +
		0.52487*math.Exp(-0.77320*tStar) +
		2.16178*math.Exp(-2.43787*tStar)
}
