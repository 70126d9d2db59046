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

package roughmesh

import "errors"

var (
	// ErrInvalidInput is returned for malformed mesh or surface data,
	// invalid configuration values and NaN coordinates.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRefinementRejected is returned when the mesh declines a
	// requested split. The refinement loop skips the element.
	ErrRefinementRejected = errors.New("refinement rejected")

	// ErrSampleDegenerate marks a zero-area footprint that was
	// sampled at its corner only.
	ErrSampleDegenerate = errors.New("degenerate sample footprint")

	// ErrIOFailure is returned when an output file cannot be written.
	ErrIOFailure = errors.New("output failure")

	// ErrInvariant is returned when element or vertex data cannot be
	// read from the mesh.
	ErrInvariant = errors.New("mesh invariant violated")
)
