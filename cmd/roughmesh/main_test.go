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

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spatialmodel/roughmesh"
	"github.com/spatialmodel/roughmesh/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes a configuration for the test inputs that sends all
// outputs to a temporary directory.
func writeConfig(t *testing.T, edit func(*config.Config)) (path, prefix string) {
	t.Helper()
	dir := t.TempDir()
	c := config.Default()
	c.MeshFile = filepath.Join("testdata", "box.mesh3d")
	c.SurfaceFile = filepath.Join("testdata", "ramp.surf")
	c.OutputPrefix = filepath.Join(dir, "box")
	c.LogLevel = "warn"
	if edit != nil {
		edit(c)
	}
	path = filepath.Join(dir, "roughmesh.toml")
	require.NoError(t, c.WriteFile(path))
	return path, c.OutputPrefix
}

func TestRoughmesh(t *testing.T) {
	path, prefix := writeConfig(t, nil)
	cfg := InitializeConfig()
	cfg.Root.SetArgs([]string{"--config", path})
	require.NoError(t, cfg.Root.Execute())

	for _, suffix := range []string{".vtk", "_columns.shp", "_plan.png", "_config.toml"} {
		fi, err := os.Stat(prefix + suffix)
		if assert.NoError(t, err, suffix) {
			assert.NotZero(t, fi.Size(), suffix)
		}
	}

	b, err := os.ReadFile(prefix + ".vtk")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "# vtk DataFile Version"))
	// The 3 µm ramp across the element forces at least one split.
	assert.NotContains(t, string(b), "CELLS 1 ")

	written, err := config.ReadFile(prefix + "_config.toml")
	require.NoError(t, err)
	assert.Equal(t, prefix, written.OutputPrefix)
}

func TestRoughmeshOutputFailure(t *testing.T) {
	// Outputs that cannot be written do not fail the run.
	path, _ := writeConfig(t, func(c *config.Config) {
		c.OutputPrefix = filepath.Join(t.TempDir(), "missing", "box")
	})
	cfg := InitializeConfig()
	cfg.Root.SetArgs([]string{"--config", path})
	assert.NoError(t, cfg.Root.Execute())
}

func TestRoughmeshLoadFailure(t *testing.T) {
	tests := []struct {
		name string
		edit func(*config.Config)
	}{
		{name: "mesh", edit: func(c *config.Config) { c.MeshFile = filepath.Join("testdata", "missing.mesh3d") }},
		{name: "surface", edit: func(c *config.Config) { c.SurfaceFile = filepath.Join("testdata", "box.mesh3d") }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path, prefix := writeConfig(t, test.edit)
			cfg := InitializeConfig()
			cfg.Root.SetArgs([]string{"--config", path})
			err := cfg.Root.Execute()
			assert.ErrorIs(t, err, roughmesh.ErrInvalidInput)
			_, err = os.Stat(prefix + ".vtk")
			assert.True(t, os.IsNotExist(err), "no output after a load failure")
		})
	}
}

func TestOverrides(t *testing.T) {
	path, _ := writeConfig(t, func(c *config.Config) { c.MaxIterations = 7 })

	cfg := InitializeConfig()
	require.NoError(t, cfg.Root.Flags().Set("config", path))
	c, err := cfg.settings()
	require.NoError(t, err)
	assert.Equal(t, 7, c.MaxIterations)
	assert.Equal(t, 1e-11, c.Tolerance)

	t.Setenv("ROUGHMESH_MAX_ITERATIONS", "3")
	cfg = InitializeConfig()
	require.NoError(t, cfg.Root.Flags().Set("config", path))
	require.NoError(t, cfg.Root.Flags().Set("tolerance", "1e-9"))
	c, err = cfg.settings()
	require.NoError(t, err)
	assert.Equal(t, 3, c.MaxIterations)
	assert.Equal(t, 1e-9, c.Tolerance)

	t.Setenv("ROUGHMESH_MAX_ITERATIONS", "lots")
	cfg = InitializeConfig()
	_, err = cfg.settings()
	assert.ErrorIs(t, err, roughmesh.ErrInvalidInput)

	t.Setenv("ROUGHMESH_MAX_ITERATIONS", "0")
	cfg = InitializeConfig()
	_, err = cfg.settings()
	assert.ErrorIs(t, err, roughmesh.ErrInvalidInput)
}
