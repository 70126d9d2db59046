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

package approx

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/spatialmodel/roughmesh"
)

func TestEqualLess(t *testing.T) {
	const tol Tolerance = 1e-11
	tests := []struct {
		a, b  float64
		equal bool
	}{
		{a: 0, b: 0, equal: true},
		{a: 1e-6, b: 1e-6 + 5e-12, equal: true},
		{a: 1e-6, b: 1e-6 - 9e-12, equal: true},
		{a: 1e-6, b: 1e-6 + 2e-11, equal: false},
		{a: -3, b: 3, equal: false},
		{a: 5, b: 4, equal: false},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%g_%g", test.a, test.b), func(t *testing.T) {
			if eq := tol.Equal(test.a, test.b); eq != test.equal {
				t.Errorf("Equal(%g, %g) = %v; want %v", test.a, test.b, eq, test.equal)
			}
			ab, ba := tol.Less(test.a, test.b), tol.Less(test.b, test.a)
			if test.equal {
				if ab || ba {
					t.Errorf("equal values ordered: less(a,b)=%v less(b,a)=%v", ab, ba)
				}
				if c := tol.Compare(test.a, test.b); c != 0 {
					t.Errorf("Compare = %d; want 0", c)
				}
				return
			}
			if ab == ba {
				t.Errorf("exactly one of less(a,b)=%v, less(b,a)=%v should hold", ab, ba)
			}
		})
	}
}

func TestNonTransitive(t *testing.T) {
	const tol Tolerance = 1
	a, b, c := 0., 0.8, 1.6
	if !tol.Equal(a, b) || !tol.Equal(b, c) {
		t.Fatal("neighbours should be equal")
	}
	if tol.Equal(a, c) {
		t.Error("ends of the chain should not be equal")
	}
}

func TestScalar(t *testing.T) {
	s1, err := DefaultTolerance.Scalar(2e-6)
	if err != nil {
		t.Fatal(err)
	}
	s2, err := DefaultTolerance.Scalar(2e-6 + 1e-12)
	if err != nil {
		t.Fatal(err)
	}
	if !s1.Equal(s2) || s1.Less(s2) || s2.Less(s1) {
		t.Errorf("%v and %v should be equal", s1, s2)
	}
	if s1.Tolerance() != DefaultTolerance {
		t.Errorf("tolerance = %g", float64(s1.Tolerance()))
	}
	if _, err := DefaultTolerance.Scalar(math.NaN()); !errors.Is(err, roughmesh.ErrInvalidInput) {
		t.Errorf("NaN error = %v; want ErrInvalidInput", err)
	}
}

func TestValidate(t *testing.T) {
	for _, tol := range []Tolerance{-1, Tolerance(math.NaN())} {
		if err := tol.Validate(); !errors.Is(err, roughmesh.ErrInvalidInput) {
			t.Errorf("Validate(%g) = %v", float64(tol), err)
		}
	}
	if err := Tolerance(0).Validate(); err != nil {
		t.Error(err)
	}
}
