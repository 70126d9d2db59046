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

// Package config holds the settings of a roughmesh run and reads and
// writes them as TOML.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/roughmesh"
	"github.com/spatialmodel/roughmesh/approx"
	"github.com/spatialmodel/roughmesh/mesh"
	"github.com/spatialmodel/roughmesh/refine"
	"github.com/spatialmodel/roughmesh/surface"
)

// Config holds the settings of a refinement run. Lengths are in meters.
type Config struct {
	// MeshFile is the mesh3d file holding the initial hexahedral mesh.
	MeshFile string `toml:"mesh_file"`

	// SurfaceFile is the point file describing the rough surface.
	SurfaceFile string `toml:"surface_file"`

	// OutputPrefix is prepended to the names of all output files.
	OutputPrefix string `toml:"output_prefix"`

	// LogLevel is a logrus level name.
	LogLevel string `toml:"log_level"`

	HorizontalThreshold float64 `toml:"horizontal_threshold"`
	VerticalThreshold   float64 `toml:"vertical_threshold"`
	MaxIterations       int     `toml:"max_iterations"`

	// Tolerance is the distance within which two column corners are
	// treated as the same point.
	Tolerance float64 `toml:"tolerance"`

	// SampleStep is the spacing of surface samples in x and y.
	SampleStep float64 `toml:"sample_step"`

	// MaxSamples is the largest number of surface heights evaluated
	// for one element footprint. Zero means no limit.
	MaxSamples int `toml:"max_samples"`

	// Sampling is "grid" or "diagonal".
	Sampling string `toml:"sampling"`

	// ColumnPolicy is "persist" or "reset".
	ColumnPolicy string `toml:"column_policy"`

	// MaxRefineLevel limits the number of splits of an element along
	// each axis.
	MaxRefineLevel int `toml:"max_refine_level"`
}

// Default returns the default settings.
func Default() *Config {
	r := refine.DefaultConfig()
	return &Config{
		MeshFile:            "lshape_hex.mesh3d",
		SurfaceFile:         "1.surf",
		OutputPrefix:        "mesh",
		LogLevel:            "info",
		HorizontalThreshold: r.HorizontalThreshold,
		VerticalThreshold:   r.VerticalThreshold,
		MaxIterations:       r.MaxIterations,
		Tolerance:           float64(r.Tolerance),
		SampleStep:          surface.DefaultStep,
		MaxSamples:          surface.DefaultMaxSamples,
		Sampling:            surface.GridSampling.String(),
		ColumnPolicy:        "persist",
		MaxRefineLevel:      mesh.DefaultMaxLevel,
	}
}

// Decode reads settings from TOML in r. Settings missing from r keep
// their default values.
func Decode(r io.Reader) (*Config, error) {
	c := Default()
	if _, err := toml.DecodeReader(r, c); err != nil {
		return nil, fmt.Errorf("config: %v: %w", err, roughmesh.ErrInvalidInput)
	}
	return c, c.Validate()
}

// ReadFile reads settings from the TOML file at path.
func ReadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %v: %w", err, roughmesh.ErrInvalidInput)
	}
	defer f.Close()
	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return c, nil
}

// Write writes c to w as TOML.
func (c *Config) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("config: %v: %w", err, roughmesh.ErrIOFailure)
	}
	return nil
}

// WriteFile writes c to a TOML file at path.
func (c *Config) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: could not open file %s for writing: %v: %w", path, err, roughmesh.ErrIOFailure)
	}
	if err := c.Write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("config: %v: %w", err, roughmesh.ErrIOFailure)
	}
	return nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	if c.MeshFile == "" {
		return fmt.Errorf("config: mesh_file needs to be set: %w", roughmesh.ErrInvalidInput)
	}
	if c.SurfaceFile == "" {
		return fmt.Errorf("config: surface_file needs to be set: %w", roughmesh.ErrInvalidInput)
	}
	if !(c.SampleStep > 0) {
		return fmt.Errorf("config: sample_step=%g. It needs to be set to a positive value: %w",
			c.SampleStep, roughmesh.ErrInvalidInput)
	}
	if c.MaxSamples < 0 {
		return fmt.Errorf("config: max_samples=%d. It must not be negative: %w",
			c.MaxSamples, roughmesh.ErrInvalidInput)
	}
	if c.MaxRefineLevel < 0 {
		return fmt.Errorf("config: max_refine_level=%d. It must not be negative: %w",
			c.MaxRefineLevel, roughmesh.ErrInvalidInput)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := surface.ParseSampling(c.Sampling); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	r, err := c.Refine()
	if err != nil {
		return err
	}
	return r.Validate()
}

// Level returns the logrus level named by LogLevel.
func (c *Config) Level() (logrus.Level, error) {
	l, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("config: %v: %w", err, roughmesh.ErrInvalidInput)
	}
	return l, nil
}

// Refine returns the refinement parameters.
func (c *Config) Refine() (refine.Config, error) {
	r := refine.Config{
		MaxIterations:       c.MaxIterations,
		HorizontalThreshold: c.HorizontalThreshold,
		VerticalThreshold:   c.VerticalThreshold,
		Tolerance:           approx.Tolerance(c.Tolerance),
	}
	switch strings.ToLower(c.ColumnPolicy) {
	case "persist", "":
		r.Columns = refine.PersistColumns
	case "reset":
		r.Columns = refine.ResetColumns
	default:
		return r, fmt.Errorf("config: invalid column_policy %q: %w", c.ColumnPolicy, roughmesh.ErrInvalidInput)
	}
	return r, nil
}

// Sampler returns a sampler of f using the configured step and mode.
func (c *Config) Sampler(f surface.HeightField) (*surface.Sampler, error) {
	mode, err := surface.ParseSampling(c.Sampling)
	if err != nil {
		return nil, err
	}
	s, err := surface.NewSampler(f, c.SampleStep, c.SampleStep, mode)
	if err != nil {
		return nil, err
	}
	s.MaxSamples = c.MaxSamples
	return s, nil
}

// Output returns the name of an output file with the given suffix.
func (c *Config) Output(suffix string) string {
	return c.OutputPrefix + suffix
}
