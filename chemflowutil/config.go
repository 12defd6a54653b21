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
	"os"
	"strings"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/chemflow"
	"github.com/spatialmodel/chemflow/chem"
	"github.com/spatialmodel/chemflow/species"
	"github.com/spf13/cast"
)

// inputFiles returns the setup file locations in cfg with environment
// variables expanded.
func inputFiles(cfg *viper.Viper) chemflow.InputFiles {
	get := func(key string) string { return os.ExpandEnv(cfg.GetString("InputFiles." + key)) }
	return chemflow.InputFiles{
		GlobalControl:    get("GlobalControl"),
		Grid:             get("Grid"),
		Scheme:           get("Scheme"),
		SpeciesReactions: get("SpeciesReactions"),
		Turbulence:       get("Turbulence"),
		Transport:        get("Transport"),
	}
}

// LoadParameter reads the setup files named in cfg.
func LoadParameter(cfg *viper.Viper) (*chemflow.Parameter, error) {
	return chemflow.ReadParameter(inputFiles(cfg), logrus.StandardLogger())
}

// LoadChem reads the setup files named in cfg and the species data they
// refer to.
func LoadChem(cfg *viper.Viper) (*chemflow.Parameter, *chem.Data, error) {
	p, err := LoadParameter(cfg)
	if err != nil {
		return nil, nil, err
	}
	data, err := chem.New(p, logrus.StandardLogger())
	if err != nil {
		return nil, nil, err
	}
	return p, data, nil
}

// LoadSpecies returns the species property table of the simulation
// configured in cfg, which must have multi-species chemistry enabled.
func LoadSpecies(cfg *viper.Viper) (*species.Table, error) {
	_, data, err := LoadChem(cfg)
	if err != nil {
		return nil, err
	}
	if !data.Enabled() {
		return nil, fmt.Errorf("chemflow: chemistry is disabled; set '%s = 1' in %s",
			chem.SpeciesKey, inputFiles(cfg).SpeciesReactions)
	}
	return data.Species, nil
}

// MoleFractions parses mixture composition pairs in the form
// "species=fraction". Species that are not listed have a fraction of
// zero. If pairs is empty, all species have equal fractions.
func MoleFractions(tbl *species.Table, pairs []string) ([]float64, error) {
	x := make([]float64, tbl.NSpec)
	if len(pairs) == 0 {
		for i := range x {
			x[i] = 1 / float64(tbl.NSpec)
		}
		return x, nil
	}
	for _, pair := range pairs {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("chemflow: invalid mole fraction '%s'; the format is species=fraction", pair)
		}
		name := strings.ToUpper(strings.TrimSpace(kv[0]))
		i, ok := tbl.Index(name)
		if !ok {
			return nil, fmt.Errorf("chemflow: mole fraction given for unknown species '%s'", name)
		}
		v, err := cast.ToFloat64E(strings.TrimSpace(kv[1]))
		if err != nil {
			return nil, fmt.Errorf("chemflow: mole fraction of %s: %v", name, err)
		}
		x[i] = v
	}
	return x, nil
}
