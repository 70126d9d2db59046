/*
Copyright © 2026 the roughmesh authors.
This file is part of roughmesh.

roughmesh is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

roughmesh is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with roughmesh.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command roughmesh refines a hexahedral mesh to resolve a rough surface
// and writes the refined mesh to a VTK file.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/roughmesh"
	"github.com/spatialmodel/roughmesh/config"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

// Cfg holds the command line configuration.
type Cfg struct {
	*viper.Viper

	Root *cobra.Command
	log  *logrus.Logger
}

// InitializeConfig creates the command and binds its flags and the
// ROUGHMESH_* environment variables.
func InitializeConfig() *Cfg {
	cfg := &Cfg{
		Viper: viper.New(),
		log:   logrus.New(),
	}
	cfg.log.Formatter = &logrus.TextFormatter{FullTimestamp: true}

	cfg.Root = &cobra.Command{
		Use:   "roughmesh",
		Short: "Refine a hexahedral mesh to resolve a rough surface.",
		Long: `roughmesh repeatedly splits the elements of a hexahedral mesh in x and y
until the height of the surface sampled over each element footprint varies by
no more than the horizontal threshold, then splits elements in z once where
their own height exceeds the vertical threshold.

Settings are read from the TOML file given by --config. The tolerance and the
iteration limit can be overridden with flags or with the ROUGHMESH_TOLERANCE
and ROUGHMESH_MAX_ITERATIONS environment variables.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cfg.settings()
			if err != nil {
				return err
			}
			return Run(cmd.Context(), c, cfg.log)
		},
	}

	flags := cfg.Root.Flags()
	flags.String("config", "", "TOML configuration file; defaults are used if empty")
	flags.Float64("tolerance", 0, "distance within which column corners match (default from config)")
	flags.Int("max-iterations", 0, "maximum number of horizontal refinement scans (default from config)")
	for _, name := range []string{"config", "tolerance", "max-iterations"} {
		if err := cfg.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
	cfg.SetEnvPrefix("ROUGHMESH")
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()
	return cfg
}

// settings loads the configuration file and applies the flag and
// environment overrides.
func (cfg *Cfg) settings() (*config.Config, error) {
	c := config.Default()
	if path := cfg.GetString("config"); path != "" {
		var err error
		if c, err = config.ReadFile(path); err != nil {
			return nil, err
		}
	}
	// The file values are the fallback for the overridable keys.
	cfg.SetDefault("tolerance", c.Tolerance)
	cfg.SetDefault("max-iterations", c.MaxIterations)

	tol, err := cast.ToFloat64E(cfg.Get("tolerance"))
	if err != nil {
		return nil, fmt.Errorf("tolerance: %v: %w", err, roughmesh.ErrInvalidInput)
	}
	iter, err := cast.ToIntE(cfg.Get("max-iterations"))
	if err != nil {
		return nil, fmt.Errorf("max-iterations: %v: %w", err, roughmesh.ErrInvalidInput)
	}
	c.Tolerance, c.MaxIterations = tol, iter
	if err := c.Validate(); err != nil {
		return nil, err
	}
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	cfg.log.SetLevel(level)
	return c, nil
}

func main() {
	cfg := InitializeConfig()
	if err := cfg.Root.ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, roughmesh.ErrInvalidInput) {
			cfg.log.WithError(err).Error("could not load input")
		} else {
			cfg.log.WithError(err).Error("refinement failed")
		}
		os.Exit(1)
	}
}
