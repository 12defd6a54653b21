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

// Package chem gathers the species property table and reaction model of a
// multi-species simulation into the aggregate handed to the flow solver.
package chem

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/chemflow"
	"github.com/spatialmodel/chemflow/reaction"
	"github.com/spatialmodel/chemflow/species"
)

// SpeciesKey is the configuration key selecting single-species (0) or
// multi-species (1) simulation.
const SpeciesKey = "species"

// Data holds the chemistry of a simulation. When chemistry is disabled,
// both fields are nil.
type Data struct {
	Species  *species.Table
	Reaction *reaction.Reaction
}

// Enabled returns whether d holds multi-species chemistry.
func (d *Data) Enabled() bool {
	return d != nil && d.Species != nil
}

// New creates the chemistry data for the simulation configured in p.
// The species table is built before the reaction model, which depends
// on it. If log is nil, the standard logger is used.
func New(p *chemflow.Parameter, log logrus.FieldLogger) (*Data, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	mode, err := p.GetInt(SpeciesKey)
	if err != nil {
		return nil, &chemflow.ConfigurationError{Name: SpeciesKey, Err: err}
	}
	switch mode {
	case 0:
		log.Info("chem: single-species simulation; chemistry is disabled")
		return &Data{}, nil
	case 1:
	default:
		return nil, &chemflow.ConfigurationError{Name: SpeciesKey,
			Err: fmt.Errorf("invalid value %d; must be 0 or 1", mode)}
	}

	d := new(Data)
	if d.Species, err = species.New(p, log); err != nil {
		return nil, fmt.Errorf("chem: building species table: %w", err)
	}
	if d.Reaction, err = reaction.New(p, d.Species); err != nil {
		return nil, fmt.Errorf("chem: building reaction model: %w", err)
	}
	log.WithFields(logrus.Fields{
		"species": d.Species.NSpec,
	}).Info("chem: chemistry is enabled")
	return d, nil
}
