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
	"fmt"
	"math"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/spatialmodel/roughmesh"
)

// DefaultStep is the horizontal sampling step, in meters.
const DefaultStep = 0.05e-6

// DefaultMaxSamples bounds the heights evaluated for one footprint,
// about a 100 µm square at DefaultStep.
const DefaultMaxSamples = 1 << 22

// HeightField returns the surface height at a horizontal position.
type HeightField interface {
	Height(x, y float64) float64
}

// HeightFunc adapts a function to HeightField.
type HeightFunc func(x, y float64) float64

// Height calls f.
func (f HeightFunc) Height(x, y float64) float64 { return f(x, y) }

// Sampling selects the sample layout over a footprint.
type Sampling int

const (
	// GridSampling samples every node of a regular grid covering the
	// footprint, including its far edges.
	GridSampling Sampling = iota

	// DiagonalSampling samples only along the footprint diagonal,
	// stepping both axes with one counter. Variation across the other
	// diagonal is missed. It is kept to reproduce earlier refinements.
	DiagonalSampling
)

func (s Sampling) String() string {
	switch s {
	case GridSampling:
		return "grid"
	case DiagonalSampling:
		return "diagonal"
	default:
		return fmt.Sprintf("Sampling(%d)", int(s))
	}
}

// ParseSampling parses "grid" or "diagonal".
func ParseSampling(s string) (Sampling, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "grid", "":
		return GridSampling, nil
	case "diagonal":
		return DiagonalSampling, nil
	}
	return 0, fmt.Errorf("surface: unknown sampling %q: %w", s, roughmesh.ErrInvalidInput)
}

// Range is the vertical extent of the surface over a footprint.
type Range struct {
	Min, Max float64

	// Samples is the number of heights evaluated.
	Samples int

	// Degenerate is set when the footprint could not be sampled and
	// only its lower-left corner was evaluated.
	Degenerate bool
}

// Amplitude returns |Max-Min|.
func (r Range) Amplitude() float64 { return math.Abs(r.Max - r.Min) }

func (r *Range) add(z float64) {
	if r.Samples == 0 || z < r.Min {
		r.Min = z
	}
	if r.Samples == 0 || z > r.Max {
		r.Max = z
	}
	r.Samples++
}

// Sampler evaluates a height field over element footprints.
type Sampler struct {
	// MaxSamples is the largest number of heights SampleRange evaluates
	// for one footprint. Larger footprints are an error. Zero means no
	// limit.
	MaxSamples int

	field        HeightField
	stepX, stepY float64
	mode         Sampling
}

// NewSampler returns a sampler of f with horizontal steps stepX and stepY.
func NewSampler(f HeightField, stepX, stepY float64, mode Sampling) (*Sampler, error) {
	if f == nil {
		return nil, fmt.Errorf("surface: nil height field: %w", roughmesh.ErrInvalidInput)
	}
	if !(stepX > 0) || !(stepY > 0) || math.IsInf(stepX, 0) || math.IsInf(stepY, 0) {
		return nil, fmt.Errorf("surface: sample step (%g, %g) needs to be positive: %w",
			stepX, stepY, roughmesh.ErrInvalidInput)
	}
	if mode != GridSampling && mode != DiagonalSampling {
		return nil, fmt.Errorf("surface: %v: %w", mode, roughmesh.ErrInvalidInput)
	}
	return &Sampler{
		MaxSamples: DefaultMaxSamples,
		field:      f,
		stepX:      stepX,
		stepY:      stepY,
		mode:       mode,
	}, nil
}

// Mode returns the sample layout.
func (s *Sampler) Mode() Sampling { return s.mode }

// SampleRange returns the minimum and maximum surface height over
// footprint fp.
func (s *Sampler) SampleRange(fp r2.Rect) (Range, error) {
	x0, y0 := fp.X.Lo, fp.Y.Lo
	for _, v := range []float64{x0, y0, fp.X.Hi, fp.Y.Hi} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Range{}, fmt.Errorf("surface: footprint %v is not finite: %w", fp, roughmesh.ErrInvalidInput)
		}
	}
	fx := math.Floor(math.Max(fp.X.Length(), 0) / s.stepX)
	fy := math.Floor(math.Max(fp.Y.Length(), 0) / s.stepY)
	count := (fx + 1) * (fy + 1)
	if s.mode == DiagonalSampling {
		count = math.Max(fx, fy) + 1
	}
	if s.MaxSamples > 0 && count > float64(s.MaxSamples) {
		return Range{}, fmt.Errorf("surface: footprint %v needs %g samples, more than the limit of %d; "+
			"increase the sample step: %w", fp, count, s.MaxSamples, roughmesh.ErrInvalidInput)
	}
	nX, nY := int(fx), int(fy)

	var r Range
	sample := func(x, y float64) error {
		z := s.field.Height(x, y)
		if math.IsNaN(z) || math.IsInf(z, 0) {
			return fmt.Errorf("surface: height %g at (%g, %g): %w", z, x, y, roughmesh.ErrInvalidInput)
		}
		r.add(z)
		return nil
	}

	degenerate := fp.IsEmpty() || fp.X.Length() == 0 || fp.Y.Length() == 0
	if s.mode == DiagonalSampling {
		degenerate = degenerate || nX == 0 || nY == 0
	}
	if degenerate {
		if err := sample(x0, y0); err != nil {
			return Range{}, err
		}
		r.Degenerate = true
		return r, nil
	}

	switch s.mode {
	case DiagonalSampling:
		n := nX
		if nY > n {
			n = nY
		}
		for u := 0; u <= n; u++ {
			if err := sample(x0+float64(u)*s.stepX, y0+float64(u)*s.stepY); err != nil {
				return Range{}, err
			}
		}
	default:
		for i := 0; i <= nX; i++ {
			x := x0 + float64(i)*s.stepX
			for j := 0; j <= nY; j++ {
				if err := sample(x, y0+float64(j)*s.stepY); err != nil {
					return Range{}, err
				}
			}
		}
	}
	if r.Samples == 0 {
		return Range{}, fmt.Errorf("surface: footprint %v produced no samples: %w", fp, roughmesh.ErrInvariant)
	}
	return r, nil
}
