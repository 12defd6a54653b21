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
	"strings"

	"github.com/spatialmodel/chemflow"
	"github.com/spatialmodel/chemflow/internal/textio"
)

var errNoSpecies = errors.New("no species are declared")

// readMechanism registers the elements and species declared in the
// ELEMENTS and SPECIES blocks of a CHEMKIN mechanism file. Reading stops
// at the REACTIONS block.
func (t *Table) readMechanism(r *textio.Reader) error {
	r.Rewind()
	for {
		line, ok := r.NextNonBlank(textio.Upper)
		if !ok {
			break
		}
		fields := strings.Fields(stripComment(line))
		if len(fields) == 0 {
			continue
		}
		var (
			name string
			err  error
		)
		switch kw := fields[0]; {
		case strings.HasPrefix(kw, "ELEM"):
			name, err = readBlock(r, fields[1:], func(name string) error {
				t.registerElement(name)
				return nil
			})
		case strings.HasPrefix(kw, "SPEC"):
			name, err = readBlock(r, fields[1:], func(name string) error {
				_, err := t.registerSpecies(name)
				return err
			})
		case strings.HasPrefix(kw, "REAC"):
			return t.checkMechanism(r)
		}
		if err != nil {
			return &chemflow.ConfigurationError{File: r.Name(), Name: name, Line: r.Line(), Err: err}
		}
	}
	return t.checkMechanism(r)
}

func (t *Table) checkMechanism(r *textio.Reader) error {
	if len(t.specNames) == 0 {
		return &chemflow.ConfigurationError{File: r.Name(), Err: errNoSpecies}
	}
	if len(t.elemNames) == 0 {
		return &chemflow.ConfigurationError{File: r.Name(), Err: errors.New("no elements are declared")}
	}
	return nil
}

// readBlock passes each name in a keyword block to add until the END
// keyword. first holds the names on the keyword line itself. Names may
// span any number of lines. When add fails, the rejected name is returned
// with the error.
func readBlock(r *textio.Reader, first []string, add func(name string) error) (string, error) {
	names := first
	for {
		for _, name := range names {
			if name == textio.End {
				return "", nil
			}
			// Elements may carry a user-supplied atomic weight: "D/2.014/".
			if i := strings.Index(name, "/"); i >= 0 {
				name = name[:i]
			}
			if name == "" {
				continue
			}
			if err := add(name); err != nil {
				return name, err
			}
		}
		line, ok := r.NextNonBlank(textio.Upper)
		if !ok {
			return "", fmt.Errorf("block is missing %s", textio.End)
		}
		names = strings.Fields(stripComment(line))
	}
}

// stripComment removes a trailing "!" comment.
func stripComment(line string) string {
	if i := strings.Index(line, "!"); i >= 0 {
		return line[:i]
	}
	return line
}
