/*
Copyright © 2025 the Bathyplot authors.
This file is part of Bathyplot.

Bathyplot is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Bathyplot is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Bathyplot.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package bathyplotutil holds the command-line interface of the
// bathyplot program.
package bathyplotutil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/inogs/bathyplot"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to Bathyplot.
	// Defaults for the domain are the western Mediterranean extent the
	// program was written for.
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
			name: "output",
			usage: `
              output specifies where the rendered map is written: either an
              existing directory, which receives the default file name, or a
              file path. If output is empty the map is opened in the system
              image viewer instead.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.Flags()},
		},
		{
			name: "DatasetURL",
			usage: `
              DatasetURL is the griddap endpoint the bathymetry is
              downloaded from.`,
			defaultVal: bathyplot.EMODnetURL,
			flagsets:   []*pflag.FlagSet{Root.Flags()},
		},
		{
			name: "Domain.MinLat",
			usage: `
              Domain.MinLat specifies the minimum latitude of the domain in
              signed degrees.`,
			defaultVal: 34.0,
			flagsets:   []*pflag.FlagSet{Root.Flags()},
		},
		{
			name: "Domain.MaxLat",
			usage: `
              Domain.MaxLat specifies the maximum latitude of the domain in
              signed degrees.`,
			defaultVal: 42.0,
			flagsets:   []*pflag.FlagSet{Root.Flags()},
		},
		{
			name: "Domain.MinLon",
			usage: `
              Domain.MinLon specifies the minimum longitude of the domain in
              signed degrees.`,
			defaultVal: -10.0,
			flagsets:   []*pflag.FlagSet{Root.Flags()},
		},
		{
			name: "Domain.MaxLon",
			usage: `
              Domain.MaxLon specifies the maximum longitude of the domain in
              signed degrees.`,
			defaultVal: 2.0,
			flagsets:   []*pflag.FlagSet{Root.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("BATHYPLOT")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
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
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("bathyplot: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// domain assembles the bounding box from the configuration. The bounds
// are passed through exactly as configured.
func domain(cfg *viper.Viper) (bathyplot.DomainGeometry, error) {
	var d bathyplot.DomainGeometry
	for _, b := range []struct {
		name string
		dst  *float64
	}{
		{"Domain.MinLat", &d.MinLat},
		{"Domain.MaxLat", &d.MaxLat},
		{"Domain.MinLon", &d.MinLon},
		{"Domain.MaxLon", &d.MaxLon},
	} {
		v, err := cast.ToFloat64E(cfg.Get(b.name))
		if err != nil {
			return d, fmt.Errorf("bathyplot: reading %s: %v", b.name, err)
		}
		*b.dst = v
	}
	return d, nil
}

// Root is the main command: it downloads the configured bathymetry
// subset, prints a summary of it, renders the map, and routes the image
// to a file or to the system image viewer.
var Root = &cobra.Command{
	Use:   "bathyplot",
	Short: "Download and map EMODnet bathymetry.",
	Long: `bathyplot downloads the part of the EMODnet bathymetry dataset that
falls within the configured geographic domain, prints a summary of the
fetched grid, and renders the elevation variable as a map. The map is
saved to the location given with --output, or opened in the system
image viewer if no output location is given.

Configuration can be changed by using a configuration file (and providing
the path to the file using the --config flag), by using command-line
arguments, or by setting environment variables in the format
'BATHYPLOT_var' where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := domain(Cfg)
		if err != nil {
			return err
		}
		ds, err := bathyplot.DownloadBathymetry(d, Cfg.GetString("DatasetURL"))
		if err != nil {
			return err
		}
		fmt.Println(ds)

		c, err := bathyplot.RenderMap(ds)
		if err != nil {
			return err
		}
		return Dispatch(c, OutputTarget{Path: Cfg.GetString("output")})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of Bathyplot.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("Bathyplot v%s\n", bathyplot.Version)
	},
	DisableAutoGenTag: true,
}
