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

// Package reaction holds the chemical reaction model of a multi-species
// simulation.
package reaction

import (
	"errors"

	"github.com/spatialmodel/chemflow/species"
)

// Parameters is the configuration store the reaction model is set up
// from.
type Parameters interface {
	GetString(name string) (string, error)
}

// Reaction is the reaction model. It does not yet describe any kinetics;
// species are transported without chemical source terms.
type Reaction struct {
	nSpec int
}

// New creates the reaction model for the species in spec.
// spec must already be fully built.
func New(cfg Parameters, spec *species.Table) (*Reaction, error) {
	if spec == nil {
		return nil, errors.New("reaction: species table is nil")
	}
	return &Reaction{nSpec: spec.NSpec}, nil
}

// NSpec returns the number of species the model was created for.
func (r *Reaction) NSpec() int { return r.nSpec }
