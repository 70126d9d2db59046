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

package vtk

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spatialmodel/roughmesh"
	"github.com/spatialmodel/roughmesh/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestWrite(t *testing.T) {
	m, err := mesh.NewBox(r3.Vec{}, r3.Vec{X: 2, Y: 2, Z: 1}, 1, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Refine(0, mesh.Vertical); err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err := Write(&b, m, "test"); err != nil {
		t.Fatal(err)
	}
	want := `# vtk DataFile Version 2.0
test
ASCII
DATASET UNSTRUCTURED_GRID
POINTS 12 double
0 0 0
2 0 0
0 2 0
2 2 0
0 0 1
2 0 1
0 2 1
2 2 1
0 0 0.5
2 0 0.5
2 2 0.5
0 2 0.5
CELLS 2 18
8 0 1 3 2 8 9 10 11
8 8 9 10 11 4 5 7 6
CELL_TYPES 2
12
12
CELL_DATA 2
SCALARS marker int 1
LOOKUP_TABLE default
0
0
`
	if got := b.String(); got != want {
		t.Errorf("have\n%s\nwant\n%s", got, want)
	}
}

func TestWriteFile(t *testing.T) {
	m, err := mesh.NewBox(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}, 2, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "mesh.vtk")
	if err := WriteFile(path, m); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "CELLS 8 72\n") {
		t.Errorf("unexpected output:\n%s", b)
	}

	err = WriteFile(filepath.Join(t.TempDir(), "missing", "mesh.vtk"), m)
	if !errors.Is(err, roughmesh.ErrIOFailure) {
		t.Errorf("err = %v; want ErrIOFailure", err)
	}
}
