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
	"io/ioutil"
	"math"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/chemflow"
	"github.com/spatialmodel/chemflow/internal/textio"
)

const testdata = "../testdata/"

func testConfig(mech, therm, tran string) *chemflow.Parameter {
	p := chemflow.NewParameter()
	p.SetString(MechanismFileKey, testdata+mech)
	p.SetString(ThermFileKey, testdata+therm)
	p.SetString(TransportFileKey, testdata+tran)
	return p
}

func airTable(t *testing.T, mech string) *Table {
	tbl, err := New(testConfig(mech, "air/therm.dat", "air/tran.dat"), nil)
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

// recordHook keeps every log entry it receives.
type recordHook struct {
	entries []*logrus.Entry
}

func (h *recordHook) Levels() []logrus.Level { return logrus.AllLevels }
func (h *recordHook) Fire(e *logrus.Entry) error {
	h.entries = append(h.entries, e)
	return nil
}

func testLogger() (*logrus.Logger, *recordHook) {
	log := logrus.New()
	log.Out = ioutil.Discard
	log.Level = logrus.DebugLevel
	h := new(recordHook)
	log.AddHook(h)
	return log, h
}

func TestNew(t *testing.T) {
	tbl := airTable(t, "air/mechanism.inp")

	if tbl.NSpec != 2 {
		t.Fatalf("NSpec: have %d, want 2", tbl.NSpec)
	}
	if have, want := tbl.Names(), []string{"N2", "O2"}; !reflect.DeepEqual(have, want) {
		t.Errorf("names: %v", pretty.Diff(have, want))
	}
	if have, want := tbl.Elements(), []string{"N", "O"}; !reflect.DeepEqual(have, want) {
		t.Errorf("elements: %v", pretty.Diff(have, want))
	}
	if i, ok := tbl.Index("O2"); !ok || i != 1 {
		t.Errorf("index of O2: have %d %v", i, ok)
	}
	if _, ok := tbl.Index("AR"); ok {
		t.Error("AR should not be registered")
	}

	mw := []float64{28.0134, 31.998}
	for s, want := range mw {
		if different(tbl.MW[s], want, 1e-12) {
			t.Errorf("MW[%d]: have %g, want %g", s, tbl.MW[s], want)
		}
	}
	comp := [][]int{{2, 0}, {0, 2}}
	for s := range comp {
		for e, want := range comp[s] {
			if have := tbl.ElemComp.Get(s, e); have != want {
				t.Errorf("ElemComp(%d, %d): have %d, want %d", s, e, have, want)
			}
		}
	}

	type ranges struct{ Low, Mid, High float64 }
	wantRanges := []ranges{{300, 1000, 5000}, {200, 1000, 3500}}
	for s, want := range wantRanges {
		have := ranges{tbl.TLow[s], tbl.TMid[s], tbl.THigh[s]}
		if have != want {
			t.Errorf("ranges of species %d: %v", s, pretty.Diff(have, want))
		}
		if !(have.Low <= have.Mid && have.Mid <= have.High) {
			t.Errorf("ranges of species %d are out of order: %+v", s, have)
		}
	}

	if have, want := tbl.LowTempCoeff.At(0, 0), 3.298677; have != want {
		t.Errorf("N2 low a1: have %g, want %g", have, want)
	}
	if have, want := tbl.HighTempCoeff.At(1, 6), 5.45323129; have != want {
		t.Errorf("O2 high a7: have %g, want %g", have, want)
	}
	if have, want := tbl.LJPotentInv[0], 1/97.53; different(have, want, 1e-15) {
		t.Errorf("N2 LJPotentInv: have %g, want %g", have, want)
	}
	if have, want := tbl.VisCoeff[1], chapmanEnskog*math.Sqrt(31.998)/(3.458*3.458); different(have, want, 1e-12) {
		t.Errorf("O2 VisCoeff: have %g, want %g", have, want)
	}
}

func TestPairwise(t *testing.T) {
	tbl := airTable(t, "air/mechanism_argon.inp")
	for i := 0; i < tbl.NSpec; i++ {
		for j := 0; j < tbl.NSpec; j++ {
			a := math.Pow(tbl.MW[j]/tbl.MW[i], 0.25)
			b := 1 / math.Sqrt(8*(1+tbl.MW[i]/tbl.MW[j]))
			if have := tbl.WjDivWiToOne4th.At(i, j); different(have, a, 1e-14) {
				t.Errorf("A(%d, %d): have %g, want %g", i, j, have, a)
			}
			if have := tbl.SqrtWiDivWjPl1Mul8.At(i, j); different(have, b, 1e-14) {
				t.Errorf("B(%d, %d): have %g, want %g", i, j, have, b)
			}
		}
		if have := tbl.WjDivWiToOne4th.At(i, i); have != 1 {
			t.Errorf("A(%d, %d) = %g", i, i, have)
		}
	}
}

func TestRegisterElement(t *testing.T) {
	tbl := &Table{ElemList: make(map[string]int), SpecList: make(map[string]int)}
	n := tbl.registerElement("N")
	o := tbl.registerElement("O")
	if n2 := tbl.registerElement("N"); n2 != n {
		t.Errorf("re-registering N: have %d, want %d", n2, n)
	}
	if o != 1 || len(tbl.Elements()) != 2 {
		t.Errorf("elements: %v", tbl.Elements())
	}
	if _, err := tbl.registerSpecies("N2"); err != nil {
		t.Fatal(err)
	}
	if _, err := tbl.registerSpecies("N2"); err == nil {
		t.Error("duplicate species should be an error")
	}
}

func TestPermutation(t *testing.T) {
	fwd := airTable(t, "air/mechanism.inp")
	rev := airTable(t, "air/mechanism_reversed.inp")
	if have, want := rev.Names(), []string{"O2", "N2"}; !reflect.DeepEqual(have, want) {
		t.Fatalf("names: %v", pretty.Diff(have, want))
	}
	if have, want := rev.Elements(), []string{"O", "N"}; !reflect.DeepEqual(have, want) {
		t.Fatalf("elements: %v", pretty.Diff(have, want))
	}
	for _, temp := range []float64{250, 300, 1000, 2500, 4000} {
		mu1, l1 := fwd.Transport([]float64{0.79, 0.21}, temp, fwd.NewScratch())
		mu2, l2 := rev.Transport([]float64{0.21, 0.79}, temp, rev.NewScratch())
		if different(mu1, mu2, 1e-12) {
			t.Errorf("viscosity at %g K: %g != %g", temp, mu1, mu2)
		}
		if different(l1, l2, 1e-12) {
			t.Errorf("conductivity at %g K: %g != %g", temp, l1, l2)
		}
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name             string
		mech, therm, tran string
		species          string // offending name, if any
	}{
		{name: "duplicate species", mech: "bad/mechanism_duplicate.inp", therm: "air/therm.dat", tran: "air/tran.dat", species: "N2"},
		{name: "missing thermo", mech: "bad/mechanism_nothermo.inp", therm: "air/therm.dat", tran: "air/tran.dat", species: "NO"},
		{name: "missing transport", mech: "air/mechanism.inp", therm: "air/therm.dat", tran: "bad/tran_missing_o2.dat", species: "O2"},
		{name: "missing file", mech: "air/mechanism.inp", therm: "air/xxxx.dat", tran: "air/tran.dat"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := New(testConfig(test.mech, test.therm, test.tran), nil)
			var cfgErr *chemflow.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("have %v, want a configuration error", err)
			}
			if test.species != "" && cfgErr.Name != test.species {
				t.Errorf("name: have %s, want %s", cfgErr.Name, test.species)
			}
		})
	}

	t.Run("missing key", func(t *testing.T) {
		p := chemflow.NewParameter()
		p.SetString(MechanismFileKey, testdata+"air/mechanism.inp")
		_, err := New(p, nil)
		var lookupErr *chemflow.LookupError
		if !errors.As(err, &lookupErr) {
			t.Fatalf("have %v, want a lookup error", err)
		}
		if lookupErr.Name != ThermFileKey {
			t.Errorf("have %s, want %s", lookupErr.Name, ThermFileKey)
		}
	})
	t.Run("file not found", func(t *testing.T) {
		_, err := New(testConfig("air/mechanism.inp", "air/xxxx.dat", "air/tran.dat"), nil)
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("have %v, want a not-exist error", err)
		}
	})
}

func TestReadInvalid(t *testing.T) {
	therm, err := textio.Open(testdata + "air/therm.dat")
	if err != nil {
		t.Fatal(err)
	}
	tran, err := textio.Open(testdata + "air/tran.dat")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name, mech string
	}{
		{name: "no species", mech: "ELEMENTS N O END\n"},
		{name: "no elements", mech: "SPECIES N2 END\n"},
		{name: "undeclared element", mech: "ELEM N END\nSPEC N2O END\n"},
		{name: "unterminated block", mech: "ELEMENTS\nN O\nSPECIES N2\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mech, err := textio.NewReader(test.name, strings.NewReader(test.mech))
			if err != nil {
				t.Fatal(err)
			}
			_, err = Read(mech, therm, tran, nil)
			var cfgErr *chemflow.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Errorf("have %v, want a configuration error", err)
			}
		})
	}
	t.Run("no species sentinel", func(t *testing.T) {
		mech, _ := textio.NewReader("empty", strings.NewReader("ELEM N END\n"))
		if _, err := Read(mech, therm, tran, nil); !errors.Is(err, errNoSpecies) {
			t.Errorf("have %v, want %v", err, errNoSpecies)
		}
	})
}

// N2 thermodynamic and transport records in CHEMKIN column layout.
const (
	n2Header  = "N2                121286N   2               G   300.000  5000.000 1000.00      1"
	n2Coeffs1 = " 0.02926640E+02 0.14879768E-02-0.05684760E-05 0.10097038E-09-0.06753351E-13    2"
	n2Coeffs2 = "-0.09227977E+04 0.05980528E+02 0.03298677E+02 0.14082404E-02-0.03963222E-04    3"
	n2Coeffs3 = " 0.05641515E-07-0.02444854E-10-0.10208999E+04 0.03950372E+02                   4"
	n2Tran    = "N2   1   97.530   3.621   0.000   1.760   4.000"
)

func readN2(therm, tran string) (*Table, error) {
	mech, err := textio.NewReader("mech", strings.NewReader("ELEMENTS N O AR END\nSPECIES N2 END\n"))
	if err != nil {
		return nil, err
	}
	th, err := textio.NewReader("therm", strings.NewReader("THERMO\n"+therm+"\nEND\n"))
	if err != nil {
		return nil, err
	}
	tr, err := textio.NewReader("tran", strings.NewReader(tran+"\n"))
	if err != nil {
		return nil, err
	}
	return Read(mech, th, tr, nil)
}

func n2Record(header string, coeffs ...string) string {
	return strings.Join(append([]string{header}, coeffs...), "\n")
}

func TestReadThermRecord(t *testing.T) {
	tests := []struct {
		name, header string
	}{
		{name: "four element fields", header: n2Header},
		{name: "fifth element field", header: "N2                121286                    G   300.000  5000.000 1000.00N   2 1"},
		{name: "split composition", header: "N2                121286N   1               G   300.000  5000.000 1000.00N   1 1"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tbl, err := readN2(n2Record(test.header, n2Coeffs1, n2Coeffs2, n2Coeffs3), n2Tran)
			if err != nil {
				t.Fatal(err)
			}
			n := tbl.ElemList["N"]
			if have := tbl.ElemComp.Get(0, n); have != 2 {
				t.Errorf("N atoms: have %d, want 2", have)
			}
			if different(tbl.MW[0], 28.0134, 1e-12) {
				t.Errorf("MW: have %g, want 28.0134", tbl.MW[0])
			}
			if tbl.TLow[0] != 300 || tbl.TMid[0] != 1000 || tbl.THigh[0] != 5000 {
				t.Errorf("ranges: have %g, %g, %g", tbl.TLow[0], tbl.TMid[0], tbl.THigh[0])
			}
			if have := tbl.HighTempCoeff.At(0, 0); different(have, 2.92664, 1e-15) {
				t.Errorf("high a1: have %g, want 2.92664", have)
			}
			if have := tbl.LowTempCoeff.At(0, 6); different(have, 3.950372, 1e-15) {
				t.Errorf("low a7: have %g, want 3.950372", have)
			}
		})
	}
}

func TestReadRecordErrors(t *testing.T) {
	good := n2Record(n2Header, n2Coeffs1, n2Coeffs2, n2Coeffs3)
	tests := []struct {
		name, therm, tran string
	}{
		{
			name:  "malformed coefficient",
			therm: n2Record(n2Header, " 0.02926640E+0Z"+n2Coeffs1[15:], n2Coeffs2, n2Coeffs3),
			tran:  n2Tran,
		},
		{
			name:  "missing coefficient",
			therm: n2Record(n2Header, n2Coeffs1, n2Coeffs2, n2Coeffs3[:45]),
			tran:  n2Tran,
		},
		{
			name:  "truncated record",
			therm: n2Record(n2Header, n2Coeffs1, n2Coeffs2),
			tran:  n2Tran,
		},
		{
			name:  "ranges out of order",
			therm: n2Record("N2                121286N   2               G  1500.000  5000.000 1000.00      1", n2Coeffs1, n2Coeffs2, n2Coeffs3),
			tran:  n2Tran,
		},
		{
			name:  "malformed temperature",
			therm: n2Record("N2                121286N   2               G   3x0.000  5000.000 1000.00      1", n2Coeffs1, n2Coeffs2, n2Coeffs3),
			tran:  n2Tran,
		},
		{
			name:  "empty composition",
			therm: n2Record("N2                121286N   0               G   300.000  5000.000 1000.00      1", n2Coeffs1, n2Coeffs2, n2Coeffs3),
			tran:  n2Tran,
		},
		{
			name:  "undeclared element",
			therm: n2Record("N2                121286C   2               G   300.000  5000.000 1000.00      1", n2Coeffs1, n2Coeffs2, n2Coeffs3),
			tran:  n2Tran,
		},
		{name: "malformed transport number", therm: good, tran: "N2   1   97.53x   3.621   0.000   1.760   4.000"},
		{name: "zero well depth", therm: good, tran: "N2   1    0.000   3.621   0.000   1.760   4.000"},
		{name: "negative diameter", therm: good, tran: "N2   1   97.530  -3.621   0.000   1.760   4.000"},
		{name: "short transport row", therm: good, tran: "N2   1   97.530"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := readN2(test.therm, test.tran)
			var cfgErr *chemflow.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("have %v, want a configuration error", err)
			}
			if cfgErr.Name != "N2" {
				t.Errorf("name: have %q, want N2", cfgErr.Name)
			}
		})
	}
}

func TestReadLogging(t *testing.T) {
	log, hook := testLogger()
	if _, err := New(testConfig("air/mechanism.inp", "air/therm.dat", "air/tran.dat"), log); err != nil {
		t.Fatal(err)
	}
	var debug, info int
	for _, e := range hook.entries {
		switch e.Level {
		case logrus.DebugLevel:
			debug++
		case logrus.InfoLevel:
			info++
			if e.Data["species"] != 2 {
				t.Errorf("species field: have %v, want 2", e.Data["species"])
			}
		case logrus.WarnLevel:
			t.Errorf("unexpected warning: %s %v", e.Message, e.Data)
		}
	}
	if debug != 2 || info != 1 {
		t.Errorf("have %d debug and %d info entries, want 2 and 1", debug, info)
	}
}

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}
