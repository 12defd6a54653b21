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

package chemflow

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

// InputFiles lists the setup files the configuration store is populated
// from, one per configuration domain. Empty entries are skipped.
type InputFiles struct {
	GlobalControl    string // basic information about the simulation
	Grid             string // grid information
	Scheme           string // numerical scheme selection
	SpeciesReactions string // species and reaction input file locations
	Turbulence       string // laminar/turbulent settings
	Transport        string // transport property settings
}

// DefaultInputFiles returns the conventional setup file locations,
// relative to the working directory.
func DefaultInputFiles() InputFiles {
	return InputFiles{
		GlobalControl:    "./input_files/setup/0_global_control.txt",
		Grid:             "./input_files/setup/1_grid_information.txt",
		Scheme:           "./input_files/setup/2_scheme.txt",
		SpeciesReactions: "./input_files/setup/3_species_reactions.txt",
		Turbulence:       "./input_files/setup/4_laminar_turbulent.txt",
		Transport:        "./input_files/setup/9_transport_property.txt",
	}
}

func (f InputFiles) paths() []string {
	return []string{f.GlobalControl, f.Grid, f.Scheme, f.SpeciesReactions, f.Turbulence, f.Transport}
}

// Default values for the scheme and physical parameters. They are
// registered before any setup file is read, so a setup file only
// needs to list the values it changes.
var (
	defaultInts = map[string]int{
		"myid":            0, // process id
		"dimension":       3,
		"inviscid_scheme": 3, // AUSM+
		"reconstruction":  2,
		"limiter":         0,
		"viscous_order":   2, // 2nd order central discretization
		"temporal_scheme": 1, // 1st order explicit Euler
		"species":         0, // 0: single species; 1: multi-species
	}
	defaultReals = map[string]float64{
		"prandtl_number": 0.72,
		"schmidt_number": 0.9,
	}
)

// Parameter is a registry of named integer, real, boolean and string
// scalars. Names are case-insensitive. There is no fallback for unknown
// names: every lookup of an unregistered name fails with a *LookupError.
//
// A Parameter is populated once at startup and is not safe for concurrent
// modification.
type Parameter struct {
	ints    map[string]int
	reals   map[string]float64
	bools   map[string]bool
	strings map[string]string
}

// NewParameter returns an empty configuration store.
func NewParameter() *Parameter {
	return &Parameter{
		ints:    make(map[string]int),
		reals:   make(map[string]float64),
		bools:   make(map[string]bool),
		strings: make(map[string]string),
	}
}

// ReadParameter creates a configuration store holding the default scheme
// parameters overlaid with the contents of the given setup files, which are
// read in order so later files override earlier ones. If log is nil, the
// standard logger is used.
func ReadParameter(files InputFiles, log logrus.FieldLogger) (*Parameter, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	p := NewParameter()
	p.SetDefaults()
	for _, f := range files.paths() {
		if f == "" {
			continue
		}
		if err := p.ReadFile(f, log); err != nil {
			return nil, err
		}
	}
	log.WithFields(logrus.Fields{
		"parameters": len(p.Keys()),
	}).Info("chemflow: configuration loaded")
	return p, nil
}

// SetDefaults registers the default scheme and physical parameters,
// overwriting any existing values with the same names.
func (p *Parameter) SetDefaults() {
	for k, v := range defaultInts {
		p.SetInt(k, v)
	}
	for k, v := range defaultReals {
		p.SetReal(k, v)
	}
}

// ReadFile adds the parameters in the TOML file at path to p.
// Environment variables in string values are expanded.
func (p *Parameter) ReadFile(path string, log logrus.FieldLogger) error {
	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return &ConfigurationError{File: path, Err: err}
	}
	defer f.Close()
	return p.Read(path, f, log)
}

// Read adds the parameters in TOML format from r to p. name identifies the
// source in error messages. Nested tables are flattened into
// "table.key" names. Array and other non-scalar values are skipped.
func (p *Parameter) Read(name string, r io.Reader, log logrus.FieldLogger) error {
	if log == nil {
		log = logrus.StandardLogger()
	}
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(r); err != nil {
		return &ConfigurationError{File: name, Err: err}
	}
	for _, k := range v.AllKeys() {
		switch val := v.Get(k).(type) {
		case bool:
			p.SetBool(k, val)
		case string:
			p.SetString(k, os.ExpandEnv(val))
		case float32, float64:
			f, err := cast.ToFloat64E(val)
			if err != nil {
				return &ConfigurationError{File: name, Name: k, Err: err}
			}
			p.SetReal(k, f)
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			i, err := cast.ToIntE(val)
			if err != nil {
				return &ConfigurationError{File: name, Name: k, Err: err}
			}
			p.SetInt(k, i)
		default:
			log.WithFields(logrus.Fields{
				"file": name,
				"key":  k,
				"type": fmt.Sprintf("%T", val),
			}).Debug("chemflow: skipping non-scalar parameter")
		}
	}
	return nil
}

// clear removes name from every kind so a name only ever has one kind.
func (p *Parameter) clear(name string) {
	delete(p.ints, name)
	delete(p.reals, name)
	delete(p.bools, name)
	delete(p.strings, name)
}

// SetInt registers an integer parameter.
func (p *Parameter) SetInt(name string, v int) {
	name = strings.ToLower(name)
	p.clear(name)
	p.ints[name] = v
}

// SetReal registers a real parameter.
func (p *Parameter) SetReal(name string, v float64) {
	name = strings.ToLower(name)
	p.clear(name)
	p.reals[name] = v
}

// SetBool registers a boolean parameter.
func (p *Parameter) SetBool(name string, v bool) {
	name = strings.ToLower(name)
	p.clear(name)
	p.bools[name] = v
}

// SetString registers a string parameter.
func (p *Parameter) SetString(name string, v string) {
	name = strings.ToLower(name)
	p.clear(name)
	p.strings[name] = v
}

// GetInt returns the integer parameter with the given name.
func (p *Parameter) GetInt(name string) (int, error) {
	v, ok := p.ints[strings.ToLower(name)]
	if !ok {
		return 0, &LookupError{Name: name, Kind: "int"}
	}
	return v, nil
}

// GetReal returns the real parameter with the given name. A parameter
// registered as an integer is also accepted, since setup files may
// write whole numbers without a decimal point.
func (p *Parameter) GetReal(name string) (float64, error) {
	lname := strings.ToLower(name)
	if v, ok := p.reals[lname]; ok {
		return v, nil
	}
	if v, ok := p.ints[lname]; ok {
		return float64(v), nil
	}
	return 0, &LookupError{Name: name, Kind: "real"}
}

// GetBool returns the boolean parameter with the given name.
func (p *Parameter) GetBool(name string) (bool, error) {
	v, ok := p.bools[strings.ToLower(name)]
	if !ok {
		return false, &LookupError{Name: name, Kind: "bool"}
	}
	return v, nil
}

// GetString returns the string parameter with the given name.
func (p *Parameter) GetString(name string) (string, error) {
	v, ok := p.strings[strings.ToLower(name)]
	if !ok {
		return "", &LookupError{Name: name, Kind: "string"}
	}
	return v, nil
}

// Keys returns the sorted names of all registered parameters.
func (p *Parameter) Keys() []string {
	keys := make([]string, 0, len(p.ints)+len(p.reals)+len(p.bools)+len(p.strings))
	for k := range p.ints {
		keys = append(keys, k)
	}
	for k := range p.reals {
		keys = append(keys, k)
	}
	for k := range p.bools {
		keys = append(keys, k)
	}
	for k := range p.strings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns a copy of all registered parameters keyed by name.
func (p *Parameter) Values() map[string]interface{} {
	o := make(map[string]interface{})
	for k, v := range p.ints {
		o[k] = v
	}
	for k, v := range p.reals {
		o[k] = v
	}
	for k, v := range p.bools {
		o[k] = v
	}
	for k, v := range p.strings {
		o[k] = v
	}
	return o
}
