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
	"context"

	"github.com/golang/geo/r2"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/roughmesh/column"
	"github.com/spatialmodel/roughmesh/config"
	"github.com/spatialmodel/roughmesh/mesh"
	"github.com/spatialmodel/roughmesh/mesh/vtk"
	"github.com/spatialmodel/roughmesh/plot"
	"github.com/spatialmodel/roughmesh/refine"
	"github.com/spatialmodel/roughmesh/surface"
)

// Run loads the mesh and surface named in c, refines the mesh and writes
// the outputs. Load and refinement failures are returned; output
// failures are logged as warnings because the refinement itself has
// already succeeded.
func Run(ctx context.Context, c *config.Config, log logrus.FieldLogger) error {
	log.Infof("Reading mesh from %s", c.MeshFile)
	m, err := mesh.LoadFile(c.MeshFile)
	if err != nil {
		return err
	}
	m.MaxLevel = c.MaxRefineLevel

	log.Infof("Reading surface from %s", c.SurfaceFile)
	s, err := surface.LoadFile(c.SurfaceFile)
	if err != nil {
		return err
	}
	b := s.Bounds()
	zlo, zhi := s.ZRange()
	log.WithFields(logrus.Fields{
		"points": s.Len(),
		"xmin":   b.Min.X,
		"xmax":   b.Max.X,
		"ymin":   b.Min.Y,
		"ymax":   b.Max.Y,
		"zmin":   zlo,
		"zmax":   zhi,
	}).Info("surface loaded")

	sampler, err := c.Sampler(s)
	if err != nil {
		return err
	}
	rc, err := c.Refine()
	if err != nil {
		return err
	}
	ctrl, err := refine.New(m, sampler, rc, log)
	if err != nil {
		return err
	}
	if _, err := ctrl.Run(ctx); err != nil {
		return err
	}

	writeOutputs(c, m, ctrl.Columns(), log)
	return nil
}

func writeOutputs(c *config.Config, m *mesh.HexMesh, cols *column.Index, log logrus.FieldLogger) {
	outputs := []struct {
		path  string
		write func(string) error
	}{
		{c.Output(".vtk"), func(p string) error { return vtk.WriteFile(p, m) }},
		{c.Output("_columns.shp"), func(p string) error { return column.WriteToShp(p, cols) }},
		{c.Output("_plan.png"), func(p string) error {
			return plot.SavePlanView(p, "Active element footprints", footprints(m), plot.Corners(cols))
		}},
		{c.Output("_config.toml"), c.WriteFile},
	}
	for _, o := range outputs {
		if err := o.write(o.path); err != nil {
			log.WithError(err).Warnf("could not write %s", o.path)
			continue
		}
		log.Infof("Wrote %s", o.path)
	}
}

// footprints returns the plan-view rectangles of the active elements.
func footprints(m *mesh.HexMesh) []r2.Rect {
	ids := m.ActiveElements()
	fps := make([]r2.Rect, 0, len(ids))
	for _, id := range ids {
		vs, err := m.Vertices(id)
		if err != nil {
			continue
		}
		fps = append(fps, mesh.Footprint(vs))
	}
	return fps
}
