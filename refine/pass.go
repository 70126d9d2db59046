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

package refine

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/roughmesh"
	"github.com/spatialmodel/roughmesh/column"
	"github.com/spatialmodel/roughmesh/mesh"
)

// Horizontal runs horizontal scans until one requests no split or
// MaxIterations scans have run. Running out of iterations is not an
// error; it leaves the controller in the Exhausted state.
// ctx is checked between scans.
func (c *Controller) Horizontal(ctx context.Context) error {
	c.report.State = Scanning
	for iter := 0; iter < c.cfg.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.log.Infof("Performing refinement level %d", iter)
		if c.cfg.Columns == ResetColumns {
			c.columns.Clear()
		}
		further, err := c.Step()
		if err != nil {
			return err
		}
		if !further {
			c.report.State = Converged
			c.log.WithField("iterations", c.report.Iterations).Info("horizontal refinement converged")
			return nil
		}
	}
	c.report.State = Exhausted
	c.log.WithField("iterations", c.report.Iterations).
		Warn("horizontal refinement stopped at the iteration limit before converging")
	return nil
}

// Step performs one horizontal scan over the elements that are active
// when it starts and returns whether any element exceeded the horizontal
// threshold. Elements created during the scan are left for the next one.
func (c *Controller) Step() (further bool, err error) {
	n := c.mesh.Len()
	for id := 0; id < n; id++ {
		if !c.mesh.Active(id) {
			continue
		}
		vs, err := c.vertices(id)
		if err != nil {
			return false, err
		}
		fp := mesh.Footprint(vs)
		r, err := c.sampler.SampleRange(fp)
		if err != nil {
			return false, fmt.Errorf("refine: sampling element %d: %w", id, err)
		}
		if r.Degenerate {
			c.report.Degenerate++
			c.log.WithFields(logrus.Fields{"element": id, "footprint": fp}).
				Debug(roughmesh.ErrSampleDegenerate)
		}
		key, err := column.KeyOf(c.cfg.Tolerance, fp)
		if err != nil {
			return false, fmt.Errorf("refine: element %d: %w", id, err)
		}
		col := c.columns.Upsert(key, id, r.Min, r.Max)
		col.Footprint = fp

		dz := r.Amplitude()
		if dz <= c.cfg.HorizontalThreshold {
			continue
		}
		further = true
		ok, err := c.split(id, mesh.Horizontal, dz)
		if err != nil {
			return false, err
		}
		if ok {
			c.report.HorizontalSplits++
		}
	}
	c.report.Iterations++
	return further, nil
}

// Vertical splits in z every active element whose vertex heights spread
// more than VerticalThreshold. It scans once; children it creates are
// not examined.
func (c *Controller) Vertical() error {
	n := c.mesh.Len()
	for id := 0; id < n; id++ {
		if !c.mesh.Active(id) {
			continue
		}
		vs, err := c.vertices(id)
		if err != nil {
			return err
		}
		dz := mesh.ZSpread(vs)
		if dz <= c.cfg.VerticalThreshold {
			continue
		}
		ok, err := c.split(id, mesh.Vertical, dz)
		if err != nil {
			return err
		}
		if ok {
			c.report.VerticalSplits++
		}
	}
	return nil
}
