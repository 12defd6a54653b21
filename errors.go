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
	"strings"
)

// ConfigurationError reports a problem with the simulation input: a missing
// key or file section, a duplicate species, or a malformed value. It is
// always fatal at startup.
type ConfigurationError struct {
	File string // input file, if any
	Name string // offending key, species or element name, if any
	Line int    // 1-based line number, or 0 if unknown
	Err  error
}

func (e *ConfigurationError) Error() string {
	var loc []string
	if e.File != "" {
		if e.Line > 0 {
			loc = append(loc, fmt.Sprintf("%s:%d", e.File, e.Line))
		} else {
			loc = append(loc, e.File)
		}
	}
	if e.Name != "" {
		loc = append(loc, fmt.Sprintf("'%s'", e.Name))
	}
	if len(loc) == 0 {
		return fmt.Sprintf("chemflow: configuration error: %v", e.Err)
	}
	return fmt.Sprintf("chemflow: configuration error (%s): %v", strings.Join(loc, " "), e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigurationError) Unwrap() error { return e.Err }

// LookupError is returned by the configuration store when a key has not
// been registered with the requested kind.
type LookupError struct {
	Name string
	Kind string // "int", "real", "bool" or "string"
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("chemflow: %s parameter '%s' is not registered", e.Kind, e.Name)
}

// RangeError reports a quantity outside its physically valid bounds.
// Evaluation kernels never return it; they clamp instead. It is returned
// by explicit validation functions.
type RangeError struct {
	Quantity string
	Value    float64
	Min, Max float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("chemflow: %s=%g is outside of the valid range [%g, %g]",
		e.Quantity, e.Value, e.Min, e.Max)
}

// AllocationError reports that a device buffer could not be allocated.
type AllocationError struct {
	Buffer string
	Size   int // number of elements requested
	Err    error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("chemflow: allocating %d elements for buffer %s: %v", e.Size, e.Buffer, e.Err)
}

// Unwrap returns the underlying error.
func (e *AllocationError) Unwrap() error { return e.Err }
