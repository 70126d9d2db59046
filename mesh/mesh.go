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

/*Package mesh holds the hexahedral mesh that is refined around the rough surface.*/
package mesh

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh describes a mesh whose elements are addressed by integer handles
// that stay valid while the mesh is refined.
type Mesh interface {
	// Len is the number of element handles, including handles
	// of elements that have since been refined.
	Len() int

	// Active returns whether the element with handle id is used and
	// has not been refined.
	Active(id int) bool

	// Vertices returns the coordinates of the vertices of element id.
	Vertices(id int) ([]r3.Vec, error)
}

// AdaptiveMesh specifies a mesh with elements that can be split.
// Refining an element deactivates it and appends its children, so
// handles below a previously observed Len() never see children.
type AdaptiveMesh interface {
	Mesh

	// CanRefine returns whether element id can be split along a.
	CanRefine(id int, a Axis) bool

	// Refine splits element id along a.
	Refine(id int, a Axis) error
}

// Axis specifies the directions in which an element is split.
type Axis int

const (
	// Horizontal splits an element in x and y but not z.
	Horizontal Axis = iota + 1
	// Vertical splits an element in z only.
	Vertical
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "xy"
	case Vertical:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Footprint returns the horizontal bounding box of vs.
func Footprint(vs []r3.Vec) r2.Rect {
	r := r2.EmptyRect()
	for _, v := range vs {
		r = r.AddPoint(r2.Point{X: v.X, Y: v.Y})
	}
	return r
}

// ZSpread returns the difference between the highest and lowest
// vertex in vs.
func ZSpread(vs []r3.Vec) float64 {
	if len(vs) == 0 {
		return 0
	}
	zs := make([]float64, len(vs))
	for i, v := range vs {
		zs[i] = v.Z
	}
	return math.Abs(floats.Max(zs) - floats.Min(zs))
}
