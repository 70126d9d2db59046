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

// Package vtk writes meshes in the legacy ASCII VTK unstructured grid format.
package vtk

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spatialmodel/roughmesh"
	"github.com/spatialmodel/roughmesh/mesh"
)

// cellHexahedron is the VTK cell type of an 8-node hexahedron.
const cellHexahedron = 12

// Write writes the active elements of m to w, with the element marker as
// the "marker" cell scalar. All vertices are written, including those
// only referenced by refined elements.
func Write(w io.Writer, m *mesh.HexMesh, title string) error {
	bw := bufio.NewWriter(w)
	ids := m.ActiveElements()

	fmt.Fprintf(bw, "# vtk DataFile Version 2.0\n%s\nASCII\nDATASET UNSTRUCTURED_GRID\n", title)
	fmt.Fprintf(bw, "POINTS %d double\n", m.NumVertices())
	for i := 0; i < m.NumVertices(); i++ {
		v := m.Vertex(i)
		fmt.Fprintf(bw, "%s %s %s\n", ftoa(v.X), ftoa(v.Y), ftoa(v.Z))
	}

	fmt.Fprintf(bw, "CELLS %d %d\n", len(ids), 9*len(ids))
	markers := make([]int, len(ids))
	for i, id := range ids {
		e, err := m.Element(id)
		if err != nil {
			return err
		}
		markers[i] = e.Marker
		bw.WriteString("8")
		for _, v := range e.Vertices {
			bw.WriteByte(' ')
			bw.WriteString(strconv.Itoa(v))
		}
		bw.WriteByte('\n')
	}

	fmt.Fprintf(bw, "CELL_TYPES %d\n", len(ids))
	for range ids {
		fmt.Fprintf(bw, "%d\n", cellHexahedron)
	}

	fmt.Fprintf(bw, "CELL_DATA %d\nSCALARS marker int 1\nLOOKUP_TABLE default\n", len(ids))
	for _, mk := range markers {
		fmt.Fprintf(bw, "%d\n", mk)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("vtk: %v: %w", err, roughmesh.ErrIOFailure)
	}
	return nil
}

// WriteFile writes m to the named file.
func WriteFile(path string, m *mesh.HexMesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("vtk: could not open file %q for writing: %v: %w", path, err, roughmesh.ErrIOFailure)
	}
	if err := Write(f, m, "roughmesh"); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("vtk: closing %q: %v: %w", path, err, roughmesh.ErrIOFailure)
	}
	return nil
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
