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

// Package textio reads line-oriented input files. Lines are returned with
// leading white space removed, so fixed-column records that start in the
// first column keep their column positions.
package textio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// End is returned in place of a line when the input is exhausted or a
// searched-for marker does not exist.
const End = "END"

// Case specifies how letter case is normalized.
type Case int

// Case normalization options.
const (
	Keep Case = iota
	Upper
	Lower
)

const whiteSpace = " \n\t\r\f\v"

var (
	upper = cases.Upper(language.Und)
	lower = cases.Lower(language.Und)
)

// Reader holds the lines of a file and a cursor into them.
type Reader struct {
	name  string
	lines []string
	pos   int // index of the next line to return
}

// Open reads the file at path.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return NewReader(path, f)
}

// NewReader reads all lines from r. name identifies the input in
// error messages.
func NewReader(name string, r io.Reader) (*Reader, error) {
	rr := &Reader{name: name}
	s := bufio.NewScanner(r)
	for s.Scan() {
		rr.lines = append(rr.lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("textio: reading %s: %w", name, err)
	}
	return rr, nil
}

// Name returns the name of the input.
func (r *Reader) Name() string { return r.name }

// Line returns the 1-based number of the line most recently returned.
func (r *Reader) Line() int { return r.pos }

// Rewind moves the cursor back to the beginning of the input.
func (r *Reader) Rewind() { r.pos = 0 }

// Next returns the next line with leading white space removed and case
// normalized, or End and false at the end of the input.
func (r *Reader) Next(c Case) (string, bool) {
	if r.pos >= len(r.lines) {
		return End, false
	}
	line := normalize(r.lines[r.pos], c)
	r.pos++
	return line, true
}

// NextNonBlank is like Next but skips empty lines.
func (r *Reader) NextNonBlank(c Case) (string, bool) {
	for {
		line, ok := r.Next(c)
		if !ok {
			return line, false
		}
		if strings.TrimRight(line, whiteSpace) != "" {
			return line, true
		}
	}
}

// ReadUntil scans forward to the next line that starts with marker after
// normalization and returns it. If no such line exists, it returns End
// and false and the cursor is left at the end of the input.
func (r *Reader) ReadUntil(marker string, c Case) (string, bool) {
	for {
		line, ok := r.Next(c)
		if !ok {
			return End, false
		}
		if strings.HasPrefix(line, marker) {
			return line, true
		}
	}
}

func normalize(line string, c Case) string {
	line = strings.TrimLeft(line, whiteSpace)
	switch c {
	case Upper:
		return upper.String(line)
	case Lower:
		return lower.String(line)
	default:
		return line
	}
}
