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

// Package approx provides floating point comparisons that treat values
// within a tolerance of each other as equal.
//
// The relation is not transitive: a chain of values each within the
// tolerance of the next can drift further than the tolerance end to end.
// Ordered containers keyed on these values may therefore merge or keep apart
// near-identical keys depending on insertion order. Keep the tolerance several
// orders of magnitude below the smallest expected spacing between keys so that
// this drift cannot reach a neighbouring key.
package approx

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spatialmodel/roughmesh"
)

// DefaultTolerance is the tolerance used for mesh coordinates, in meters.
const DefaultTolerance Tolerance = 1e-11

// Tolerance is the maximum absolute difference at which two values are
// considered equal.
type Tolerance float64

// Validate returns an error if t is negative or not a number.
func (t Tolerance) Validate() error {
	if math.IsNaN(float64(t)) || t < 0 {
		return fmt.Errorf("approx: tolerance %g: %w", float64(t), roughmesh.ErrInvalidInput)
	}
	return nil
}

// Equal returns whether |a-b| <= t.
func (t Tolerance) Equal(a, b float64) bool {
	return math.Abs(a-b) <= float64(t)
}

// Less returns whether a is less than b and the two are not Equal.
func (t Tolerance) Less(a, b float64) bool {
	if t.Equal(a, b) {
		return false
	}
	return a < b
}

// Compare returns -1 if a is Less than b, +1 if b is Less than a and
// 0 if they are Equal.
func (t Tolerance) Compare(a, b float64) int {
	switch {
	case t.Equal(a, b):
		return 0
	case a < b:
		return -1
	default:
		return 1
	}
}

// Scalar returns x tagged with tolerance t.
// NaN values are rejected because they do not order.
func (t Tolerance) Scalar(x float64) (Scalar, error) {
	if math.IsNaN(x) {
		return Scalar{}, fmt.Errorf("approx: NaN value: %w", roughmesh.ErrInvalidInput)
	}
	return Scalar{x: x, tol: t}, nil
}

// Scalar is a float64 compared with a tolerance.
type Scalar struct {
	x   float64
	tol Tolerance
}

// Float64 returns the underlying value.
func (s Scalar) Float64() float64 { return s.x }

// Tolerance returns the tolerance s was created with.
func (s Scalar) Tolerance() Tolerance { return s.tol }

// Equal compares s and o using the tolerance of s.
func (s Scalar) Equal(o Scalar) bool { return s.tol.Equal(s.x, o.x) }

// Less compares s and o using the tolerance of s.
func (s Scalar) Less(o Scalar) bool { return s.tol.Less(s.x, o.x) }

func (s Scalar) String() string {
	return strconv.FormatFloat(s.x, 'g', -1, 64)
}
