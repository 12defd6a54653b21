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

// Package chemflowutil implements the chemflow command-line interface.
package chemflowutil

import (
	"fmt"
	"strings"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/chemflow"
	"github.com/spatialmodel/chemflow/device"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	files := chemflow.DefaultInputFiles()

	// Options are the configuration options available to the command.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "loglevel",
			usage: `
              loglevel sets the logging level: debug, info, warning or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "InputFiles.GlobalControl",
			usage: `
              InputFiles.GlobalControl is the setup file holding basic
              information about the simulation, such as the process id
              and the number of spatial dimensions.`,
			defaultVal: files.GlobalControl,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "InputFiles.Grid",
			usage: `
              InputFiles.Grid is the setup file holding grid information.
              Set it to an empty string to skip it.`,
			defaultVal: files.Grid,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "InputFiles.Scheme",
			usage: `
              InputFiles.Scheme is the setup file selecting the inviscid,
              reconstruction, limiter, viscous and temporal schemes.`,
			defaultVal: files.Scheme,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "InputFiles.SpeciesReactions",
			usage: `
              InputFiles.SpeciesReactions is the setup file selecting
              single- or multi-species simulation and giving the locations
              of the mechanism, thermodynamic and transport data files.`,
			defaultVal: files.SpeciesReactions,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "InputFiles.Turbulence",
			usage: `
              InputFiles.Turbulence is the setup file holding laminar and
              turbulent flow settings. Set it to an empty string to skip it.`,
			defaultVal: files.Turbulence,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "InputFiles.Transport",
			usage: `
              InputFiles.Transport is the setup file holding the Prandtl
              and Schmidt numbers.`,
			defaultVal: files.Transport,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "temperature",
			usage: `
              temperature specifies the temperature [K] properties are
              evaluated at.`,
			shorthand:  "t",
			defaultVal: 300.0,
			flagsets:   []*pflag.FlagSet{thermoCmd.Flags(), transportCmd.Flags()},
		},
		{
			name: "molefractions",
			usage: `
              molefractions specifies the mixture composition as a list of
              species=fraction pairs, for example N2=0.79,O2=0.21. Fractions
              are normalized to sum to one. If empty, all species have
              equal fractions.`,
			shorthand:  "x",
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{transportCmd.Flags()},
		},
		{
			name: "capacity",
			usage: `
              capacity specifies the device memory capacity in number of
              float64 elements. Zero means unlimited.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{mirrorCmd.Flags()},
		},
		{
			name: "tmin",
			usage: `
              tmin specifies the lowest temperature [K] to plot.`,
			defaultVal: 300.0,
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "tmax",
			usage: `
              tmax specifies the highest temperature [K] to plot.`,
			defaultVal: 3000.0,
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "points",
			usage: `
              points specifies the number of temperatures to evaluate
              between tmin and tmax.`,
			defaultVal: 200,
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "output",
			usage: `
              output specifies the plot file location. The format is
              chosen by the file extension (.png, .svg, .pdf, ...).`,
			shorthand:  "o",
			defaultVal: "cp.png",
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("CHEMFLOW")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, v, option.usage)
			case []string:
				set.StringSliceP(option.name, option.shorthand, v, option.usage)
			case int:
				set.IntP(option.name, option.shorthand, v, option.usage)
			case float64:
				set.Float64P(option.name, option.shorthand, v, option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(paramsCmd)
	Root.AddCommand(speciesCmd)
	Root.AddCommand(thermoCmd)
	Root.AddCommand(transportCmd)
	Root.AddCommand(mirrorCmd)
	Root.AddCommand(plotCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the logging level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("chemflow: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("loglevel"))
	if err != nil {
		return fmt.Errorf("chemflow: %v", err)
	}
	logrus.SetLevel(level)
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "chemflow",
	Short: "Species properties for multi-species reacting flow simulations.",
	Long: `chemflow reads the setup files and CHEMKIN-format species data of a
multi-species reacting flow simulation and evaluates the resulting
thermodynamic and transport properties.
Use the subcommands specified below to access the functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'CHEMFLOW_var' where 'var' is the
name of the variable to be set, with '.' replaced by '_'.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of chemflow.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "chemflow v%s\n", chemflow.Version)
	},
	DisableAutoGenTag: true,
}

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Print the simulation parameters",
	Long: `params reads the setup files and prints every registered parameter,
including defaults, in TOML format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := LoadParameter(Cfg)
		if err != nil {
			return err
		}
		return Params(cmd.OutOrStdout(), p)
	},
	DisableAutoGenTag: true,
}

var speciesCmd = &cobra.Command{
	Use:   "species",
	Short: "List the species",
	Long: `species lists the species of a multi-species simulation with their
element composition, molecular weight, polynomial temperature ranges and
Lennard-Jones parameters.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := LoadSpecies(Cfg)
		if err != nil {
			return err
		}
		return Species(cmd.OutOrStdout(), tbl)
	},
	DisableAutoGenTag: true,
}

var thermoCmd = &cobra.Command{
	Use:   "thermo",
	Short: "Evaluate thermodynamic properties",
	Long: `thermo prints the specific heat, enthalpy and entropy of each species
at the given temperature.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := LoadSpecies(Cfg)
		if err != nil {
			return err
		}
		return Thermo(cmd.OutOrStdout(), tbl, Cfg.GetFloat64("temperature"))
	},
	DisableAutoGenTag: true,
}

var transportCmd = &cobra.Command{
	Use:   "transport",
	Short: "Evaluate mixture transport properties",
	Long: `transport prints the viscosity and thermal conductivity of a mixture
with the given composition and temperature.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := LoadSpecies(Cfg)
		if err != nil {
			return err
		}
		x, err := MoleFractions(tbl, Cfg.GetStringSlice("molefractions"))
		if err != nil {
			return err
		}
		_, _, err = Transport(cmd.OutOrStdout(), tbl, Cfg.GetFloat64("temperature"), x)
		return err
	},
	DisableAutoGenTag: true,
}

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Copy the parameters to device memory",
	Long: `mirror copies the simulation parameters and species data into device
buffers, as done before a simulation starts, and prints a summary and a
fingerprint of the device copy.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, data, err := LoadChem(Cfg)
		if err != nil {
			return err
		}
		mem := &device.HostMemory{Capacity: Cfg.GetInt("capacity")}
		return Mirror(cmd.OutOrStdout(), p, data, mem)
	},
	DisableAutoGenTag: true,
}

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Plot specific heat against temperature",
	Long: `plot draws the specific heat of each species over a temperature range
and saves the figure to a file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := LoadSpecies(Cfg)
		if err != nil {
			return err
		}
		return Plot(tbl, Cfg.GetFloat64("tmin"), Cfg.GetFloat64("tmax"),
			Cfg.GetInt("points"), Cfg.GetString("output"))
	},
	DisableAutoGenTag: true,
}
