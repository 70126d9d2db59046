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

// Package plot draws plan views of refined meshes.
package plot

import (
	"fmt"
	"image/color"

	"github.com/golang/geo/r2"
	"github.com/spatialmodel/roughmesh"
	"github.com/spatialmodel/roughmesh/column"
	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// XYs implements the gonum.org/v1/plot/plotter.XYer interface.
type XYs []XY

// XY is an x and y value.
type XY struct{ X, Y float64 }

// Len returns the number of X,Y pairs.
func (xys XYs) Len() int {
	return len(xys)
}

// XY return the x and y values at index i, where i < Len()
func (xys XYs) XY(i int) (float64, float64) {
	return xys[i].X, xys[i].Y
}

// Outline returns the closed boundary of r, counter-clockwise from
// its lower-left corner.
func Outline(r r2.Rect) XYs {
	return XYs{
		{r.X.Lo, r.Y.Lo},
		{r.X.Hi, r.Y.Lo},
		{r.X.Hi, r.Y.Hi},
		{r.X.Lo, r.Y.Hi},
		{r.X.Lo, r.Y.Lo},
	}
}

// Corners returns the corner of every column in idx, in index order.
func Corners(idx *column.Index) XYs {
	xys := make(XYs, 0, idx.Len())
	idx.Ascend(func(c *column.Column) bool {
		xys = append(xys, XY{c.Key.X.Float64(), c.Key.Y.Float64()})
		return true
	})
	return xys
}

var (
	footprintColor = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	cornerColor    = color.RGBA{R: 200, G: 40, B: 40, A: 255}
)

// PlanView returns a plot of the element footprints seen from above,
// with the column corners marked. Coordinates are converted from meters
// to micrometers.
func PlanView(title string, footprints []r2.Rect, corners XYs) (*gplot.Plot, error) {
	p := gplot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (µm)"
	p.Y.Label.Text = "y (µm)"

	for _, fp := range footprints {
		l, err := plotter.NewLine(micro(Outline(fp)))
		if err != nil {
			return nil, fmt.Errorf("plot: footprint %v: %w", fp, err)
		}
		l.Color = footprintColor
		l.Width = vg.Points(0.5)
		p.Add(l)
	}
	if len(corners) > 0 {
		s, err := plotter.NewScatter(micro(corners))
		if err != nil {
			return nil, fmt.Errorf("plot: column corners: %w", err)
		}
		s.Color = cornerColor
		s.Radius = vg.Points(1.5)
		p.Add(s)
		p.Legend.Add("columns", s)
		p.Legend.Top = true
	}
	return p, nil
}

// SavePlanView draws a plan view and saves it to path. The image format
// is taken from the file extension.
func SavePlanView(path, title string, footprints []r2.Rect, corners XYs) error {
	p, err := PlanView(title, footprints, corners)
	if err != nil {
		return err
	}
	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("plot: saving %s: %v: %w", path, err, roughmesh.ErrIOFailure)
	}
	return nil
}

func micro(xys XYs) XYs {
	out := make(XYs, len(xys))
	for i, xy := range xys {
		out[i] = XY{xy.X * 1e6, xy.Y * 1e6}
	}
	return out
}
