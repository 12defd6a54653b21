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
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/chemflow"
)

const configFile = "../testdata/configExample.toml"

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	Root.SetOutput(buf)
	Cfg.Set("config", configFile)
	Root.SetArgs(args)
	err := Root.Execute()
	return buf.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if want := "chemflow v" + chemflow.Version; !strings.Contains(out, want) {
		t.Errorf("have %q, want %q", out, want)
	}
}

func TestParams(t *testing.T) {
	out, err := execute(t, "params")
	if err != nil {
		t.Fatal(err)
	}
	var params map[string]interface{}
	if _, err := toml.Decode(out, &params); err != nil {
		t.Fatalf("%v: %s", err, out)
	}
	want := map[string]interface{}{
		"dimension":      int64(3),
		"limiter":        int64(1),
		"species":        int64(1),
		"prandtl_number": 0.72,
		"therm_file":     "../testdata/air/therm.dat",
	}
	for k, v := range want {
		if params[k] != v {
			t.Errorf("%s: have %v (%T), want %v (%T)", k, params[k], params[k], v, v)
		}
	}
}

func TestSpecies(t *testing.T) {
	out, err := execute(t, "species")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"N2", "O2", "28.0134", "31.9980", "97.53"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestThermo(t *testing.T) {
	Cfg.Set("temperature", 1000.0)
	defer Cfg.Set("temperature", 300.0)
	out, err := execute(t, "thermo")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "T = 1000 K") {
		t.Errorf("output:\n%s", out)
	}
}

func TestTransport(t *testing.T) {
	Cfg.Set("molefractions", []string{"N2=0.79", "o2=0.21"})
	defer Cfg.Set("molefractions", []string{})
	out, err := execute(t, "transport")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"x[N2]", "0.79", "viscosity", "conductivity", "kg"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestTransportUnits(t *testing.T) {
	Cfg.Set("config", configFile)
	if err := setConfig(); err != nil {
		t.Fatal(err)
	}
	tbl, err := LoadSpecies(Cfg)
	if err != nil {
		t.Fatal(err)
	}
	x, err := MoleFractions(tbl, []string{"N2=79", "O2=21"})
	if err != nil {
		t.Fatal(err)
	}
	mu, lambda, err := Transport(new(bytes.Buffer), tbl, 300, x)
	if err != nil {
		t.Fatal(err)
	}
	if err := mu.Check(viscosityUnits); err != nil {
		t.Error(err)
	}
	if err := lambda.Check(conductivityUnits); err != nil {
		t.Error(err)
	}
	if v := mu.Value(); v < 1.8e-5 || v > 1.9e-5 {
		t.Errorf("viscosity: have %g", v)
	}
}

func TestMoleFractions(t *testing.T) {
	Cfg.Set("config", configFile)
	if err := setConfig(); err != nil {
		t.Fatal(err)
	}
	tbl, err := LoadSpecies(Cfg)
	if err != nil {
		t.Fatal(err)
	}
	x, err := MoleFractions(tbl, nil)
	if err != nil {
		t.Fatal(err)
	}
	if x[0] != 0.5 || x[1] != 0.5 {
		t.Errorf("default composition: %v", x)
	}
	x, err = MoleFractions(tbl, []string{"O2 = 1"})
	if err != nil {
		t.Fatal(err)
	}
	if x[0] != 0 || x[1] != 1 {
		t.Errorf("pure oxygen: %v", x)
	}
	for _, bad := range []string{"AR=0.01", "N2", "N2=abc"} {
		if _, err := MoleFractions(tbl, []string{bad}); err == nil {
			t.Errorf("%s should be an error", bad)
		}
	}
}

func TestMirror(t *testing.T) {
	out, err := execute(t, "mirror")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"species", "fingerprint", "elements allocated"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}

	Cfg.Set("capacity", 10)
	defer Cfg.Set("capacity", 0)
	if _, err := execute(t, "mirror"); err == nil || !strings.Contains(err.Error(), "out of memory") {
		t.Errorf("have %v, want an out of memory error", err)
	}
}

func TestPlot(t *testing.T) {
	const file = "tmp_cp.png"
	Cfg.Set("output", file)
	defer os.Remove(file)
	if _, err := execute(t, "plot"); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(file); err != nil || fi.Size() == 0 {
		t.Errorf("plot was not written: %v", err)
	}

	tbl, err := LoadSpecies(Cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := Plot(tbl, 1000, 300, 10, file); err == nil {
		t.Error("reversed range should be an error")
	}
}

func TestDisabledChemistry(t *testing.T) {
	Cfg.Set("InputFiles.SpeciesReactions", "")
	defer Cfg.Set("InputFiles.SpeciesReactions", "../testdata/setup/3_species_reactions.txt")
	if _, err := execute(t, "species"); err == nil || !strings.Contains(err.Error(), "disabled") {
		t.Errorf("have %v, want a disabled chemistry error", err)
	}
	out, err := execute(t, "mirror")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "fingerprint") {
		t.Errorf("output:\n%s", out)
	}
}

func TestInputFiles(t *testing.T) {
	os.Setenv("CHEMFLOW_TEST_SETUP", "../testdata/setup")
	defer os.Unsetenv("CHEMFLOW_TEST_SETUP")
	Cfg.Set("InputFiles.Scheme", "${CHEMFLOW_TEST_SETUP}/2_scheme.txt")
	defer Cfg.Set("InputFiles.Scheme", "../testdata/setup/2_scheme.txt")
	if have, want := inputFiles(Cfg).Scheme, "../testdata/setup/2_scheme.txt"; have != want {
		t.Errorf("have %s, want %s", have, want)
	}
}
