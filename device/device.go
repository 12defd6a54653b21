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

// Package device mirrors the simulation parameters and species property
// table into buffers owned by an accelerator device, so that property
// kernels running on the device read the same data as the host.
package device

import (
	"errors"

	"github.com/spatialmodel/chemflow"
	"github.com/spatialmodel/chemflow/chem"
	"github.com/spatialmodel/chemflow/internal/hash"
	"github.com/spatialmodel/chemflow/species"
)

// Parameters is the configuration store the scheme parameters are
// copied from.
type Parameters interface {
	GetInt(name string) (int, error)
	GetReal(name string) (float64, error)
}

// Scalars holds the scheme and physical parameters used by device kernels.
type Scalars struct {
	MyID           int
	Dim            int
	InviscidScheme int
	Reconstruction int
	Limiter        int
	ViscousScheme  int
	TemporalScheme int
	Pr, Sc         float64 // Prandtl and Schmidt numbers
}

// Parameter is the device-side copy of the simulation parameters. The
// species buffers are nil and NSpec is zero when chemistry is disabled.
// A Parameter is read-only after New returns and until Release is called.
type Parameter struct {
	Scalars

	NSpec, NElem int

	MW, TLow, TMid, THigh *Buffer // NSpec
	LJPotentInv, VisCoeff *Buffer // NSpec

	LowTempCoeff, HighTempCoeff *Buffer // NSpec×species.NCoeff

	WjDivWiToOne4th, SqrtWiDivWjPl1Mul8 *Buffer // NSpec×NSpec

	ElemComp *Buffer // NSpec×NElem atom counts

	alloc Allocator
	bufs  []*Buffer
}

// New copies the scheme parameters in p and, when data holds enabled
// chemistry, the species property table into device buffers obtained
// from alloc. If alloc is nil, host memory is used. If an allocation
// fails, every buffer allocated so far is released and a
// *chemflow.AllocationError is returned.
func New(p Parameters, data *chem.Data, alloc Allocator) (*Parameter, error) {
	d := new(Parameter)
	if err := d.readScalars(p); err != nil {
		return nil, err
	}
	if !data.Enabled() {
		return d, nil
	}
	if alloc == nil {
		alloc = new(HostMemory)
	}
	d.alloc = alloc

	t := data.Species
	props := t.Props()
	n, ne := t.NSpec, len(t.Elements())
	elemComp := make([]float64, len(t.ElemComp.Elements))
	for i, v := range t.ElemComp.Elements {
		elemComp[i] = float64(v)
	}
	copies := []struct {
		dst   **Buffer
		name  string
		src   []float64
		shape []int
	}{
		{&d.MW, "MW", props.MW, []int{n}},
		{&d.TLow, "TLow", props.TLow, []int{n}},
		{&d.TMid, "TMid", props.TMid, []int{n}},
		{&d.THigh, "THigh", props.THigh, []int{n}},
		{&d.LowTempCoeff, "LowTempCoeff", props.LowTempCoeff, []int{n, species.NCoeff}},
		{&d.HighTempCoeff, "HighTempCoeff", props.HighTempCoeff, []int{n, species.NCoeff}},
		{&d.LJPotentInv, "LJPotentInv", props.LJPotentInv, []int{n}},
		{&d.VisCoeff, "VisCoeff", props.VisCoeff, []int{n}},
		{&d.WjDivWiToOne4th, "WjDivWiToOne4th", props.WjDivWiToOne4th, []int{n, n}},
		{&d.SqrtWiDivWjPl1Mul8, "SqrtWiDivWjPl1Mul8", props.SqrtWiDivWjPl1Mul8, []int{n, n}},
		{&d.ElemComp, "ElemComp", elemComp, []int{n, ne}},
	}
	for _, c := range copies {
		b, err := alloc.Alloc(c.name, c.shape...)
		if err != nil {
			d.Release()
			var allocErr *chemflow.AllocationError
			if errors.As(err, &allocErr) {
				return nil, err
			}
			return nil, &chemflow.AllocationError{Buffer: c.name, Size: len(c.src), Err: err}
		}
		d.bufs = append(d.bufs, b)
		copy(b.Data(), c.src)
		*c.dst = b
	}
	d.NSpec, d.NElem = n, ne
	return d, nil
}

func (d *Parameter) readScalars(p Parameters) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"myid", &d.MyID},
		{"dimension", &d.Dim},
		{"inviscid_scheme", &d.InviscidScheme},
		{"reconstruction", &d.Reconstruction},
		{"limiter", &d.Limiter},
		{"viscous_order", &d.ViscousScheme},
		{"temporal_scheme", &d.TemporalScheme},
	}
	for _, v := range ints {
		var err error
		if *v.dst, err = p.GetInt(v.key); err != nil {
			return &chemflow.ConfigurationError{Name: v.key, Err: err}
		}
	}
	reals := []struct {
		key string
		dst *float64
	}{
		{"prandtl_number", &d.Pr},
		{"schmidt_number", &d.Sc},
	}
	for _, v := range reals {
		var err error
		if *v.dst, err = p.GetReal(v.key); err != nil {
			return &chemflow.ConfigurationError{Name: v.key, Err: err}
		}
	}
	return nil
}

// Release frees the species buffers. It is safe to call more than once.
func (d *Parameter) Release() {
	for _, b := range d.bufs {
		d.alloc.Free(b)
	}
	d.bufs = nil
	d.MW, d.TLow, d.TMid, d.THigh = nil, nil, nil, nil
	d.LJPotentInv, d.VisCoeff = nil, nil
	d.LowTempCoeff, d.HighTempCoeff = nil, nil
	d.WjDivWiToOne4th, d.SqrtWiDivWjPl1Mul8 = nil, nil
	d.ElemComp = nil
	d.NSpec, d.NElem = 0, 0
}

// Props returns a view of the species buffers for the property kernels.
func (d *Parameter) Props() species.Props {
	return species.Props{
		NSpec:              d.NSpec,
		MW:                 d.MW.Data(),
		TLow:               d.TLow.Data(),
		TMid:               d.TMid.Data(),
		THigh:              d.THigh.Data(),
		LowTempCoeff:       d.LowTempCoeff.Data(),
		HighTempCoeff:      d.HighTempCoeff.Data(),
		LJPotentInv:        d.LJPotentInv.Data(),
		VisCoeff:           d.VisCoeff.Data(),
		WjDivWiToOne4th:    d.WjDivWiToOne4th.Data(),
		SqrtWiDivWjPl1Mul8: d.SqrtWiDivWjPl1Mul8.Data(),
	}
}

// ElemCount returns the number of atoms of element e in species s.
func (d *Parameter) ElemCount(s, e int) int {
	return int(d.ElemComp.Data()[s*d.NElem+e])
}

// Fingerprint returns a hash of the mirror contents. Mirrors of the same
// parameters and species data have the same fingerprint.
func (d *Parameter) Fingerprint() string {
	return hash.Sum(struct {
		Scalars
		NSpec, NElem int
		Buffers      [][]float64
	}{
		Scalars: d.Scalars,
		NSpec:   d.NSpec,
		NElem:   d.NElem,
		Buffers: [][]float64{
			d.MW.Data(), d.TLow.Data(), d.TMid.Data(), d.THigh.Data(),
			d.LowTempCoeff.Data(), d.HighTempCoeff.Data(),
			d.LJPotentInv.Data(), d.VisCoeff.Data(),
			d.WjDivWiToOne4th.Data(), d.SqrtWiDivWjPl1Mul8.Data(),
			d.ElemComp.Data(),
		},
	})
}
