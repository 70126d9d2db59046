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

package column

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/spatialmodel/roughmesh"
	"github.com/spatialmodel/roughmesh/approx"
)

const tol = approx.DefaultTolerance

func mustKey(t *testing.T, x, y float64) Key {
	t.Helper()
	k, err := NewKey(tol, x, y)
	if err != nil {
		t.Fatal(err)
	}
	return k
}

func TestUpsertMerge(t *testing.T) {
	idx := NewIndex(tol)
	idx.Upsert(mustKey(t, 1e-6, 2e-6), 1, 0, 1e-6)
	c := idx.Upsert(mustKey(t, 1e-6+4e-12, 2e-6-3e-12), 2, 5e-7, 3e-6)

	if idx.Len() != 1 {
		t.Fatalf("columns = %d; want 1", idx.Len())
	}
	if want := []int{1, 2}; !reflect.DeepEqual(c.Elements(), want) {
		t.Errorf("elements = %v; want %v", c.Elements(), want)
	}
	// The height range belongs to the last occupant.
	if c.Lo != 5e-7 || c.Hi != 3e-6 {
		t.Errorf("range = [%g, %g]; want [5e-7, 3e-6]", c.Lo, c.Hi)
	}
}

func TestUpsertDistinct(t *testing.T) {
	tests := []struct {
		name   string
		x2, y2 float64
	}{
		{name: "x", x2: 1e-6 + 5e-11, y2: 2e-6},
		{name: "y", x2: 1e-6, y2: 2e-6 + 5e-11},
		{name: "both", x2: 3e-6, y2: 1e-6},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			idx := NewIndex(tol)
			idx.Upsert(mustKey(t, 1e-6, 2e-6), 1, 0, 0)
			idx.Upsert(mustKey(t, test.x2, test.y2), 2, 0, 0)
			if idx.Len() != 2 {
				t.Fatalf("columns = %d; want 2", idx.Len())
			}
			for _, c := range idx.Columns() {
				if c.Len() != 1 {
					t.Errorf("column %v has %d elements", c.Key, c.Len())
				}
			}
		})
	}
}

func TestUpsertSameElement(t *testing.T) {
	idx := NewIndex(tol)
	k := mustKey(t, 0, 0)
	idx.Upsert(k, 7, 0, 1)
	c := idx.Upsert(k, 7, 2, 3)
	if c.Len() != 1 || !c.Has(7) {
		t.Errorf("elements = %v", c.Elements())
	}
	if c.Amplitude() != 1 {
		t.Errorf("amplitude = %g", c.Amplitude())
	}
}

func TestOrder(t *testing.T) {
	idx := NewIndex(tol)
	idx.Upsert(mustKey(t, 2, 1), 0, 0, 0)
	idx.Upsert(mustKey(t, 1, 2), 1, 0, 0)
	idx.Upsert(mustKey(t, 1, 1), 2, 0, 0)
	idx.Upsert(mustKey(t, 0, 2), 3, 0, 0)

	var got [][2]float64
	for _, c := range idx.Columns() {
		got = append(got, [2]float64{c.Key.X.Float64(), c.Key.Y.Float64()})
	}
	want := [][2]float64{{1, 1}, {2, 1}, {0, 2}, {1, 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v; want %v", got, want)
	}
}

func TestGetAndClear(t *testing.T) {
	idx := NewIndex(tol)
	idx.Upsert(mustKey(t, 1, 1), 0, 0, 0)
	if _, ok := idx.Get(mustKey(t, 1+1e-12, 1)); !ok {
		t.Error("near key not found")
	}
	if _, ok := idx.Get(mustKey(t, 1.5, 1)); ok {
		t.Error("far key found")
	}
	idx.Clear()
	if idx.Len() != 0 {
		t.Errorf("columns after clear = %d", idx.Len())
	}
}

func TestKeyNaN(t *testing.T) {
	_, err := KeyOf(tol, r2.Rect{X: r1.Interval{Lo: math.NaN(), Hi: 1}, Y: r1.Interval{Lo: 0, Hi: 1}})
	if !errors.Is(err, roughmesh.ErrInvalidInput) {
		t.Errorf("err = %v; want ErrInvalidInput", err)
	}
}
