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

// Package surface loads a rough surface from a scattered point cloud and
// samples its height.
package surface

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
	"github.com/spatialmodel/roughmesh"
	"gonum.org/v1/gonum/floats"
)

// DefaultPower is the inverse-distance weighting exponent.
const DefaultPower = 2.

// fallbackRadius is the first search radius when the point cloud has no
// horizontal extent.
const fallbackRadius = 1e-6

// Point is a surface sample.
type Point struct {
	X, Y, Z float64
}

type point struct {
	geom.Point
	Z float64
}

// Surface is a continuous height field interpolated from surface samples
// by inverse distance weighting.
type Surface struct {
	// Power is the exponent applied to distance when weighting samples.
	Power float64

	tree   *rtree.Rtree
	bounds *geom.Bounds
	zs     []float64
	radius float64
}

// New creates a surface from pts.
func New(pts []Point) (*Surface, error) {
	if len(pts) == 0 {
		return nil, fmt.Errorf("surface: no points: %w", roughmesh.ErrInvalidInput)
	}
	s := &Surface{
		Power:  DefaultPower,
		tree:   rtree.NewTree(25, 50),
		bounds: geom.NewBounds(),
		zs:     make([]float64, len(pts)),
	}
	for i, p := range pts {
		if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
			return nil, fmt.Errorf("surface: point %d (%g, %g, %g) is not finite: %w",
				i, p.X, p.Y, p.Z, roughmesh.ErrInvalidInput)
		}
		sp := &point{Point: geom.Point{X: p.X, Y: p.Y}, Z: p.Z}
		s.tree.Insert(sp)
		s.bounds.Extend(sp.Bounds())
		s.zs[i] = p.Z
	}
	w := s.bounds.Max.X - s.bounds.Min.X
	h := s.bounds.Max.Y - s.bounds.Min.Y
	s.radius = 2 * math.Hypot(w, h) / math.Sqrt(float64(len(pts)))
	if s.radius <= 0 {
		s.radius = fallbackRadius
	}
	return s, nil
}

// Load reads whitespace or comma separated "x y z" records from r.
// Blank lines and lines starting with '#' are ignored.
func Load(r io.Reader) (*Surface, error) {
	var pts []Point
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		txt := strings.TrimSpace(sc.Text())
		if txt == "" || strings.HasPrefix(txt, "#") {
			continue
		}
		f := strings.FieldsFunc(txt, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(f) != 3 {
			return nil, fmt.Errorf("surface: line %d: want 3 values, have %d: %w",
				line, len(f), roughmesh.ErrInvalidInput)
		}
		var v [3]float64
		for i, s := range f {
			x, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("surface: line %d: %v: %w", line, err, roughmesh.ErrInvalidInput)
			}
			v[i] = x
		}
		pts = append(pts, Point{X: v[0], Y: v[1], Z: v[2]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("surface: reading: %v: %w", err, roughmesh.ErrInvalidInput)
	}
	return New(pts)
}

// LoadFile loads the surface in the named file.
func LoadFile(path string) (*Surface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("surface: %v: %w", err, roughmesh.ErrInvalidInput)
	}
	defer f.Close()
	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Len returns the number of surface samples.
func (s *Surface) Len() int { return len(s.zs) }

// Bounds returns the horizontal extent of the samples.
func (s *Surface) Bounds() *geom.Bounds {
	b := *s.bounds
	return &b
}

// ZRange returns the lowest and highest sample heights.
func (s *Surface) ZRange() (lo, hi float64) {
	return floats.Min(s.zs), floats.Max(s.zs)
}

// Height returns the interpolated surface height at (x, y). The search
// radius doubles until at least one sample lies within it. A sample at
// exactly (x, y) is returned as is. Weighted offsets from the first
// sample found are averaged, so equal heights interpolate exactly.
// Non-finite positions give NaN.
func (s *Surface) Height(x, y float64) float64 {
	if !finite(x) || !finite(y) {
		return math.NaN()
	}
	for r := s.radius; ; r *= 2 {
		b := &geom.Bounds{
			Min: geom.Point{X: x - r, Y: y - r},
			Max: geom.Point{X: x + r, Y: y + r},
		}
		var z0, num, den float64
		found := false
		for _, sp := range s.tree.SearchIntersect(b) {
			p := sp.(*point)
			dx, dy := p.X-x, p.Y-y
			d2 := dx*dx + dy*dy
			if d2 == 0 {
				return p.Z
			}
			if d2 > r*r {
				continue
			}
			if !found {
				z0 = p.Z
				found = true
			}
			w := math.Pow(d2, -s.Power/2)
			num += w * (p.Z - z0)
			den += w
		}
		if found {
			return z0 + num/den
		}
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
