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

package surface

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/spatialmodel/roughmesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rect(x0, y0, x1, y1 float64) r2.Rect {
	return r2.RectFromPoints(r2.Point{X: x0, Y: y0}, r2.Point{X: x1, Y: y1})
}

func TestSampleFlat(t *testing.T) {
	flat := HeightFunc(func(x, y float64) float64 { return 3.5e-6 })
	for _, mode := range []Sampling{GridSampling, DiagonalSampling} {
		s, err := NewSampler(flat, DefaultStep, DefaultStep, mode)
		require.NoError(t, err)
		for _, fp := range []r2.Rect{
			rect(0, 0, 1e-6, 1e-6),
			rect(-2e-6, 3e-6, 5e-6, 3.1e-6),
			rect(1e-6, 1e-6, 1e-6, 1e-6),
		} {
			t.Run(fmt.Sprintf("%v_%v", mode, fp), func(t *testing.T) {
				r, err := s.SampleRange(fp)
				require.NoError(t, err)
				assert.Equal(t, 3.5e-6, r.Min)
				assert.Equal(t, 3.5e-6, r.Max)
				assert.Zero(t, r.Amplitude())
			})
		}
	}
}

func TestSampleGridVersusDiagonal(t *testing.T) {
	// A bump in the lower-right corner is missed by diagonal sampling.
	ridge := HeightFunc(func(x, y float64) float64 {
		if x > 3 && y < 1 {
			return 10
		}
		return 0
	})
	fp := rect(0, 0, 4, 4)

	grid, err := NewSampler(ridge, 1, 1, GridSampling)
	require.NoError(t, err)
	r, err := grid.SampleRange(fp)
	require.NoError(t, err)
	assert.Equal(t, 25, r.Samples)
	assert.Equal(t, 10., r.Amplitude())

	diag, err := NewSampler(ridge, 1, 1, DiagonalSampling)
	require.NoError(t, err)
	r, err = diag.SampleRange(fp)
	require.NoError(t, err)
	assert.Equal(t, 5, r.Samples)
	assert.Equal(t, 0., r.Amplitude())
}

func TestSampleDegenerate(t *testing.T) {
	ramp := HeightFunc(func(x, y float64) float64 { return x + 2*y })
	tests := []struct {
		name       string
		mode       Sampling
		fp         r2.Rect
		degenerate bool
		min, max   float64
	}{
		{name: "point", mode: GridSampling, fp: rect(1, 1, 1, 1), degenerate: true, min: 3, max: 3},
		{name: "zero width", mode: GridSampling, fp: rect(1, 1, 1, 4), degenerate: true, min: 3, max: 3},
		{name: "narrow grid", mode: GridSampling, fp: rect(1, 1, 1.5, 3), min: 3, max: 7},
		{name: "narrow diagonal", mode: DiagonalSampling, fp: rect(1, 1, 1.5, 3), degenerate: true, min: 3, max: 3},
		{name: "empty", mode: GridSampling, fp: r2.EmptyRect(), degenerate: true, min: 3, max: 3},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, err := NewSampler(ramp, 1, 1, test.mode)
			require.NoError(t, err)
			r, err := s.SampleRange(test.fp)
			require.NoError(t, err)
			assert.Equal(t, test.degenerate, r.Degenerate)
			assert.Equal(t, test.min, r.Min)
			assert.Equal(t, test.max, r.Max)
		})
	}
}

func TestSamplerInvalid(t *testing.T) {
	flat := HeightFunc(func(x, y float64) float64 { return 0 })
	for _, step := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := NewSampler(flat, step, 1, GridSampling); !errors.Is(err, roughmesh.ErrInvalidInput) {
			t.Errorf("step %g: err = %v", step, err)
		}
	}
	if _, err := NewSampler(nil, 1, 1, GridSampling); !errors.Is(err, roughmesh.ErrInvalidInput) {
		t.Errorf("nil field: err = %v", err)
	}

	nan := HeightFunc(func(x, y float64) float64 { return math.NaN() })
	s, err := NewSampler(nan, 1, 1, GridSampling)
	require.NoError(t, err)
	_, err = s.SampleRange(rect(0, 0, 1, 1))
	assert.ErrorIs(t, err, roughmesh.ErrInvalidInput)

	inf := HeightFunc(func(x, y float64) float64 { return math.Inf(1) })
	s, err = NewSampler(inf, 1, 1, GridSampling)
	require.NoError(t, err)
	_, err = s.SampleRange(rect(0, 0, 1, 1))
	assert.ErrorIs(t, err, roughmesh.ErrInvalidInput)
}

func TestSampleNonFiniteFootprint(t *testing.T) {
	steep := HeightFunc(func(x, y float64) float64 { return 1e3 * y })
	for _, mode := range []Sampling{GridSampling, DiagonalSampling} {
		s, err := NewSampler(steep, DefaultStep, DefaultStep, mode)
		require.NoError(t, err)
		for _, fp := range []r2.Rect{
			rect(0, 0, math.Inf(1), 2e-6),
			rect(math.Inf(-1), 0, 1e-6, 2e-6),
			rect(0, math.NaN(), 1e-6, 2e-6),
		} {
			_, err := s.SampleRange(fp)
			assert.ErrorIs(t, err, roughmesh.ErrInvalidInput, "%v %v", mode, fp)
		}
	}
}

func TestSampleLimit(t *testing.T) {
	flat := HeightFunc(func(x, y float64) float64 { return 0 })
	s, err := NewSampler(flat, 1, 1, GridSampling)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxSamples, s.MaxSamples)

	// An 11 x 11 grid.
	s.MaxSamples = 121
	r, err := s.SampleRange(rect(0, 0, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, 121, r.Samples)

	s.MaxSamples = 120
	_, err = s.SampleRange(rect(0, 0, 10, 10))
	assert.ErrorIs(t, err, roughmesh.ErrInvalidInput)

	// A millimeter footprint at the default step.
	s, err = NewSampler(flat, DefaultStep, DefaultStep, GridSampling)
	require.NoError(t, err)
	_, err = s.SampleRange(rect(0, 0, 1e-3, 1e-3))
	assert.ErrorIs(t, err, roughmesh.ErrInvalidInput)

	d, err := NewSampler(flat, 1, 1, DiagonalSampling)
	require.NoError(t, err)
	d.MaxSamples = 11
	r, err = d.SampleRange(rect(0, 0, 10, 4))
	require.NoError(t, err)
	assert.Equal(t, 11, r.Samples)
}

func TestParseSampling(t *testing.T) {
	for in, want := range map[string]Sampling{"grid": GridSampling, "Diagonal": DiagonalSampling, "": GridSampling} {
		got, err := ParseSampling(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseSampling("spiral")
	assert.ErrorIs(t, err, roughmesh.ErrInvalidInput)
}
