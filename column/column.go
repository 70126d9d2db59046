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

// Package column groups mesh elements into vertical columns identified by
// the lower-left corner of their horizontal footprint.
package column

import (
	"fmt"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/spatialmodel/roughmesh/approx"
)

// Key identifies a column by the minimum x and y of an element footprint.
// Keys are ordered by Y and then by X, both compared approximately.
// The order only serves storage; it has no geometric meaning.
type Key struct {
	X, Y approx.Scalar
}

// NewKey returns the key for corner (x, y).
func NewKey(tol approx.Tolerance, x, y float64) (Key, error) {
	sx, err := tol.Scalar(x)
	if err != nil {
		return Key{}, fmt.Errorf("column: key x: %w", err)
	}
	sy, err := tol.Scalar(y)
	if err != nil {
		return Key{}, fmt.Errorf("column: key y: %w", err)
	}
	return Key{X: sx, Y: sy}, nil
}

// KeyOf returns the key of footprint fp.
func KeyOf(tol approx.Tolerance, fp r2.Rect) (Key, error) {
	return NewKey(tol, fp.X.Lo, fp.Y.Lo)
}

// Less reports whether k sorts before o.
func (k Key) Less(o Key) bool {
	if k.Y.Less(o.Y) {
		return true
	}
	return k.Y.Equal(o.Y) && k.X.Less(o.X)
}

// Equal reports whether both coordinates are within tolerance.
func (k Key) Equal(o Key) bool {
	return k.X.Equal(o.X) && k.Y.Equal(o.Y)
}

func (k Key) String() string {
	return fmt.Sprintf("(%v %v)", k.X, k.Y)
}

// Column holds the elements that currently share a footprint corner,
// together with the surface height range of that footprint.
//
// Lo, Hi and Footprint describe the most recently upserted occupant only;
// they are overwritten, not merged, on every Upsert.
type Column struct {
	Key       Key
	Lo, Hi    float64
	Footprint r2.Rect

	elements map[int]struct{}
}

func newColumn(k Key) *Column {
	return &Column{Key: k, elements: make(map[int]struct{})}
}

// Len returns the number of elements in the column.
func (c *Column) Len() int { return len(c.elements) }

// Has reports whether element id is in the column.
func (c *Column) Has(id int) bool {
	_, ok := c.elements[id]
	return ok
}

// Elements returns the element identifiers in ascending order.
func (c *Column) Elements() []int {
	o := make([]int, 0, len(c.elements))
	for id := range c.elements {
		o = append(o, id)
	}
	sort.Ints(o)
	return o
}

// Amplitude returns Hi-Lo.
func (c *Column) Amplitude() float64 { return c.Hi - c.Lo }
