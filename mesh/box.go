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

package mesh

import (
	"fmt"

	"github.com/spatialmodel/roughmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// NewBox returns a structured mesh of nx × ny × nz hexahedra filling
// the axis-aligned box from lo to hi. All elements have marker 0.
func NewBox(lo, hi r3.Vec, nx, ny, nz int) (*HexMesh, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, fmt.Errorf("mesh: box divisions (%d, %d, %d) need to be positive: %w",
			nx, ny, nz, roughmesh.ErrInvalidInput)
	}
	if !(hi.X > lo.X && hi.Y > lo.Y && hi.Z > lo.Z) {
		return nil, fmt.Errorf("mesh: empty box %v to %v: %w", lo, hi, roughmesh.ErrInvalidInput)
	}
	m := NewHexMesh()
	d := r3.Sub(hi, lo)
	vid := func(i, j, k int) int { return (k*(ny+1)+j)*(nx+1) + i }
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				m.AddVertex(r3.Vec{
					X: lo.X + d.X*float64(i)/float64(nx),
					Y: lo.Y + d.Y*float64(j)/float64(ny),
					Z: lo.Z + d.Z*float64(k)/float64(nz),
				})
			}
		}
	}
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				vs := [8]int{
					vid(i, j, k), vid(i+1, j, k), vid(i+1, j+1, k), vid(i, j+1, k),
					vid(i, j, k+1), vid(i+1, j, k+1), vid(i+1, j+1, k+1), vid(i, j+1, k+1),
				}
				if _, err := m.AddHex(vs, 0); err != nil {
					return nil, err
				}
			}
		}
	}
	return m, nil
}
