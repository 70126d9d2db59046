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

// Package refine splits mesh elements until the mesh resolves the vertical
// extent of a rough surface.
//
// A run has two passes. The horizontal pass repeatedly samples the surface
// over the footprint of every active element and splits elements in x and y
// while the sampled amplitude exceeds HorizontalThreshold. It stops when a
// scan requests no further splits (Converged) or after MaxIterations scans
// (Exhausted). The vertical pass then runs once, splitting in z every
// element whose own vertex heights spread more than VerticalThreshold.
package refine

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/roughmesh"
	"github.com/spatialmodel/roughmesh/approx"
	"github.com/spatialmodel/roughmesh/column"
	"github.com/spatialmodel/roughmesh/mesh"
	"github.com/spatialmodel/roughmesh/surface"
	"gonum.org/v1/gonum/spatial/r3"
)

// State is the state of the horizontal pass.
type State int

const (
	// Scanning means the horizontal pass has not finished.
	Scanning State = iota
	// Converged means the last scan requested no splits.
	Converged
	// Exhausted means the iteration budget ran out while elements
	// still exceeded the horizontal threshold.
	Exhausted
)

func (s State) String() string {
	switch s {
	case Scanning:
		return "scanning"
	case Converged:
		return "converged"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ColumnPolicy selects whether column state survives between scans.
type ColumnPolicy int

const (
	// PersistColumns keeps one column index for the whole run, so
	// columns accumulate every element that ever occupied them.
	PersistColumns ColumnPolicy = iota
	// ResetColumns clears the column index before each scan.
	ResetColumns
)

// Config holds the refinement parameters.
type Config struct {
	// MaxIterations is the maximum number of horizontal scans.
	MaxIterations int

	// HorizontalThreshold is the sampled surface amplitude above which
	// an element is split in x and y, in meters.
	HorizontalThreshold float64

	// VerticalThreshold is the vertex height spread above which an
	// element is split in z, in meters.
	VerticalThreshold float64

	// Tolerance is used to match column corners.
	Tolerance approx.Tolerance

	Columns ColumnPolicy
}

// DefaultConfig returns the default refinement parameters.
func DefaultConfig() Config {
	return Config{
		MaxIterations:       16,
		HorizontalThreshold: 2e-6,
		VerticalThreshold:   6e-6,
		Tolerance:           approx.DefaultTolerance,
		Columns:             PersistColumns,
	}
}

// Validate checks that the parameters are usable.
func (c Config) Validate() error {
	if c.MaxIterations <= 0 {
		return fmt.Errorf("refine: MaxIterations=%d. It needs to be set to a positive value: %w",
			c.MaxIterations, roughmesh.ErrInvalidInput)
	}
	if !(c.HorizontalThreshold > 0) {
		return fmt.Errorf("refine: HorizontalThreshold=%g. It needs to be set to a positive value: %w",
			c.HorizontalThreshold, roughmesh.ErrInvalidInput)
	}
	if !(c.VerticalThreshold > 0) {
		return fmt.Errorf("refine: VerticalThreshold=%g. It needs to be set to a positive value: %w",
			c.VerticalThreshold, roughmesh.ErrInvalidInput)
	}
	if c.Columns != PersistColumns && c.Columns != ResetColumns {
		return fmt.Errorf("refine: invalid column policy %d: %w", c.Columns, roughmesh.ErrInvalidInput)
	}
	return c.Tolerance.Validate()
}

// RangeSampler returns the surface height range over a footprint.
type RangeSampler interface {
	SampleRange(fp r2.Rect) (surface.Range, error)
}

// Report summarizes a refinement run.
type Report struct {
	State State

	// Iterations is the number of horizontal scans performed.
	Iterations int

	HorizontalSplits int
	VerticalSplits   int

	// Rejected counts split requests the mesh declined.
	Rejected int

	// Degenerate counts footprints sampled at a single point.
	Degenerate int
}

// Controller drives refinement of one mesh. It is not safe for
// concurrent use.
type Controller struct {
	mesh    mesh.AdaptiveMesh
	sampler RangeSampler
	cfg     Config
	log     logrus.FieldLogger

	columns *column.Index
	report  Report
}

// New returns a controller that refines m using heights from s.
// Log messages go to log, or to the standard logrus logger if log is nil.
func New(m mesh.AdaptiveMesh, s RangeSampler, cfg Config, log logrus.FieldLogger) (*Controller, error) {
	if m == nil || s == nil {
		return nil, fmt.Errorf("refine: mesh and sampler are required: %w", roughmesh.ErrInvalidInput)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Controller{
		mesh:    m,
		sampler: s,
		cfg:     cfg,
		log:     log,
		columns: column.NewIndex(cfg.Tolerance),
	}, nil
}

// State returns the state of the horizontal pass.
func (c *Controller) State() State { return c.report.State }

// Report returns a copy of the run summary so far.
func (c *Controller) Report() Report { return c.report }

// Columns returns the column index built by the horizontal pass.
func (c *Controller) Columns() *column.Index { return c.columns }

// Run performs the horizontal pass followed by the vertical pass.
func (c *Controller) Run(ctx context.Context) (Report, error) {
	if err := c.Horizontal(ctx); err != nil {
		return c.report, err
	}
	if err := c.Vertical(); err != nil {
		return c.report, err
	}
	c.log.WithFields(logrus.Fields{
		"state":      c.report.State,
		"iterations": c.report.Iterations,
		"xy_splits":  c.report.HorizontalSplits,
		"z_splits":   c.report.VerticalSplits,
		"rejected":   c.report.Rejected,
		"columns":    c.columns.Len(),
	}).Info("refinement finished")
	return c.report, nil
}

// split asks the mesh to refine element id along a. Declined requests
// are counted and skipped.
func (c *Controller) split(id int, a mesh.Axis, dz float64) (bool, error) {
	log := c.log.WithFields(logrus.Fields{"element": id, "axis": a, "dz": dz})
	if !c.mesh.CanRefine(id, a) {
		c.report.Rejected++
		log.Debug("element cannot be refined")
		return false, nil
	}
	if err := c.mesh.Refine(id, a); err != nil {
		if errors.Is(err, roughmesh.ErrRefinementRejected) {
			c.report.Rejected++
			log.WithError(err).Debug("refinement rejected")
			return false, nil
		}
		return false, fmt.Errorf("refine: splitting element %d along %v: %w", id, a, err)
	}
	log.Debug("refined element")
	return true, nil
}

// vertices reads the vertex coordinates of element id. Failures are
// reported as broken mesh invariants.
func (c *Controller) vertices(id int) ([]r3.Vec, error) {
	vs, err := c.mesh.Vertices(id)
	if err != nil {
		if errors.Is(err, roughmesh.ErrInvariant) {
			return nil, fmt.Errorf("refine: element %d: %w", id, err)
		}
		return nil, fmt.Errorf("refine: element %d: %v: %w", id, err, roughmesh.ErrInvariant)
	}
	return vs, nil
}
