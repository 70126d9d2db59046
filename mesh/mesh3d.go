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
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spatialmodel/roughmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// section record widths for the mesh3d format. Hexes may carry an
// optional element marker as a ninth value.
var mesh3dSections = map[string]int{
	"vertices": 3,
	"tetras":   4,
	"hexes":    8,
	"prisms":   6,
	"tris":     4,
	"quads":    5,
}

// Load reads a mesh in the mesh3d text format: a sequence of sections,
// each a keyword line, a count line and one record per line.
// Vertex indices are 1-based. Only hexahedral elements and
// quadrilateral boundary faces are supported; other element sections
// must be empty. Text after '#' is ignored.
func Load(r io.Reader) (*HexMesh, error) {
	m := NewHexMesh()
	sc := bufio.NewScanner(r)
	line := 0
	next := func() (string, bool) {
		for sc.Scan() {
			line++
			txt := sc.Text()
			if i := strings.IndexByte(txt, '#'); i >= 0 {
				txt = txt[:i]
			}
			if txt = strings.TrimSpace(txt); txt != "" {
				return txt, true
			}
		}
		return "", false
	}
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("mesh: line %d: %s: %w", line, fmt.Sprintf(format, args...), roughmesh.ErrInvalidInput)
	}

	seen := make(map[string]bool)
	for {
		kw, ok := next()
		if !ok {
			break
		}
		kw = strings.ToLower(kw)
		width, ok := mesh3dSections[kw]
		if !ok {
			return nil, invalid("unknown section %q", kw)
		}
		if seen[kw] {
			return nil, invalid("repeated section %q", kw)
		}
		seen[kw] = true
		if kw != "vertices" && !seen["vertices"] {
			return nil, invalid("section %q before vertices", kw)
		}
		cs, ok := next()
		if !ok {
			return nil, invalid("missing count for %q", kw)
		}
		n, err := strconv.Atoi(cs)
		if err != nil || n < 0 {
			return nil, invalid("bad count %q for %q", cs, kw)
		}
		for i := 0; i < n; i++ {
			rec, ok := next()
			if !ok {
				return nil, invalid("%s: have %d records, want %d", kw, i, n)
			}
			f := strings.Fields(rec)
			if len(f) != width && !(kw == "hexes" && len(f) == width+1) {
				return nil, invalid("%s record has %d values, want %d", kw, len(f), width)
			}
			switch kw {
			case "vertices":
				var v [3]float64
				for j, s := range f {
					if v[j], err = strconv.ParseFloat(s, 64); err != nil {
						return nil, invalid("%v", err)
					}
					if math.IsNaN(v[j]) || math.IsInf(v[j], 0) {
						return nil, invalid("vertex coordinate %q is not finite", s)
					}
				}
				m.AddVertex(r3.Vec{X: v[0], Y: v[1], Z: v[2]})
			case "hexes":
				idx, err := atois(f)
				if err != nil {
					return nil, invalid("%v", err)
				}
				var vs [8]int
				for j := range vs {
					vs[j] = idx[j] - 1
				}
				marker := 0
				if len(idx) == 9 {
					marker = idx[8]
				}
				if _, err := m.AddHex(vs, marker); err != nil {
					return nil, invalid("%v", err)
				}
			case "quads":
				idx, err := atois(f)
				if err != nil {
					return nil, invalid("%v", err)
				}
				vs := [4]int{idx[0] - 1, idx[1] - 1, idx[2] - 1, idx[3] - 1}
				if err := m.AddBoundary(vs, idx[4]); err != nil {
					return nil, invalid("%v", err)
				}
			default:
				return nil, invalid("%s are not supported", kw)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("mesh: reading: %v: %w", err, roughmesh.ErrInvalidInput)
	}
	if m.Len() == 0 {
		return nil, fmt.Errorf("mesh: no hexahedral elements: %w", roughmesh.ErrInvalidInput)
	}
	return m, nil
}

// LoadFile loads the mesh in the named file.
func LoadFile(path string) (*HexMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: %v: %w", err, roughmesh.ErrInvalidInput)
	}
	defer f.Close()
	m, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func atois(f []string) ([]int, error) {
	o := make([]int, len(f))
	for i, s := range f {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		o[i] = v
	}
	return o, nil
}
