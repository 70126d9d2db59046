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
	"math"
	"sort"

	"github.com/spatialmodel/roughmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultMaxLevel is the default number of times an element may be split
// along each axis.
const DefaultMaxLevel = 8

// Make sure HexMesh fulfills the interface.
var _ AdaptiveMesh = &HexMesh{}

// Element is a hexahedron. Vertices 0-3 are the bottom face in
// counterclockwise order and vertices 4-7 are the top face, with vertex
// i+4 above vertex i.
type Element struct {
	Vertices [8]int
	Marker   int

	Used, Active bool

	// Parent is the handle of the element this one was split from,
	// or -1.
	Parent   int
	Children []int

	// LevelXY and LevelZ count the horizontal and vertical splits
	// that produced this element.
	LevelXY, LevelZ int
}

// Boundary is a quadrilateral boundary face with a boundary condition marker.
type Boundary struct {
	Vertices [4]int
	Marker   int
}

// HexMesh is an arena of hexahedral elements. Element handles are indices
// into the arena; refined elements stay in place with Active unset and
// their children are appended.
type HexMesh struct {
	// MaxLevel limits how often an element lineage may be split
	// along each axis.
	MaxLevel int

	vertices   []r3.Vec
	elements   []Element
	boundaries []Boundary

	midpoints map[[2]int]int
	centers   map[[4]int]int
}

// NewHexMesh returns an empty mesh.
func NewHexMesh() *HexMesh {
	return &HexMesh{
		MaxLevel:  DefaultMaxLevel,
		midpoints: make(map[[2]int]int),
		centers:   make(map[[4]int]int),
	}
}

// AddVertex adds a vertex and returns its handle.
func (m *HexMesh) AddVertex(v r3.Vec) int {
	m.vertices = append(m.vertices, v)
	return len(m.vertices) - 1
}

// AddHex adds an active root element and returns its handle. Its
// vertices must exist, be distinct and have finite coordinates.
func (m *HexMesh) AddHex(vs [8]int, marker int) (int, error) {
	seen := make(map[int]bool, len(vs))
	for _, v := range vs {
		if v < 0 || v >= len(m.vertices) {
			return -1, fmt.Errorf("mesh: hex vertex %d out of range [0, %d): %w",
				v, len(m.vertices), roughmesh.ErrInvalidInput)
		}
		if seen[v] {
			return -1, fmt.Errorf("mesh: hex repeats vertex %d: %w", v, roughmesh.ErrInvalidInput)
		}
		seen[v] = true
		if p := m.vertices[v]; !finite(p) {
			return -1, fmt.Errorf("mesh: hex vertex %d at %v is not finite: %w", v, p, roughmesh.ErrInvalidInput)
		}
	}
	return m.addElement(Element{Vertices: vs, Marker: marker, Parent: -1}), nil
}

func finite(v r3.Vec) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func (m *HexMesh) addElement(e Element) int {
	e.Used, e.Active = true, true
	m.elements = append(m.elements, e)
	return len(m.elements) - 1
}

// AddBoundary adds a boundary face.
func (m *HexMesh) AddBoundary(vs [4]int, marker int) error {
	for _, v := range vs {
		if v < 0 || v >= len(m.vertices) {
			return fmt.Errorf("mesh: boundary vertex %d out of range [0, %d): %w",
				v, len(m.vertices), roughmesh.ErrInvalidInput)
		}
	}
	m.boundaries = append(m.boundaries, Boundary{Vertices: vs, Marker: marker})
	return nil
}

// Len returns the number of element handles.
func (m *HexMesh) Len() int { return len(m.elements) }

// NumVertices returns the number of vertices.
func (m *HexMesh) NumVertices() int { return len(m.vertices) }

// Vertex returns vertex i.
func (m *HexMesh) Vertex(i int) r3.Vec { return m.vertices[i] }

// Boundaries returns the boundary faces.
func (m *HexMesh) Boundaries() []Boundary { return m.boundaries }

// Element returns a copy of element id.
func (m *HexMesh) Element(id int) (Element, error) {
	if id < 0 || id >= len(m.elements) {
		return Element{}, fmt.Errorf("mesh: element %d out of range [0, %d): %w",
			id, len(m.elements), roughmesh.ErrInvariant)
	}
	e := m.elements[id]
	e.Children = append([]int(nil), e.Children...)
	return e, nil
}

// Active returns whether element id is used and unrefined.
func (m *HexMesh) Active(id int) bool {
	if id < 0 || id >= len(m.elements) {
		return false
	}
	e := &m.elements[id]
	return e.Used && e.Active
}

// ActiveElements returns the handles of all active elements.
func (m *HexMesh) ActiveElements() []int {
	var o []int
	for id := range m.elements {
		if m.Active(id) {
			o = append(o, id)
		}
	}
	return o
}

// Vertices returns the coordinates of the vertices of element id.
func (m *HexMesh) Vertices(id int) ([]r3.Vec, error) {
	if id < 0 || id >= len(m.elements) {
		return nil, fmt.Errorf("mesh: element %d out of range [0, %d): %w",
			id, len(m.elements), roughmesh.ErrInvariant)
	}
	o := make([]r3.Vec, len(m.elements[id].Vertices))
	for i, v := range m.elements[id].Vertices {
		if v < 0 || v >= len(m.vertices) {
			return nil, fmt.Errorf("mesh: element %d references missing vertex %d: %w",
				id, v, roughmesh.ErrInvariant)
		}
		o[i] = m.vertices[v]
	}
	return o, nil
}

// CanRefine returns whether element id is active and below the maximum
// refinement level along a.
func (m *HexMesh) CanRefine(id int, a Axis) bool {
	if !m.Active(id) {
		return false
	}
	e := &m.elements[id]
	switch a {
	case Horizontal:
		return e.LevelXY < m.MaxLevel
	case Vertical:
		return e.LevelZ < m.MaxLevel
	default:
		return false
	}
}

// Refine splits element id along a into four (Horizontal) or
// two (Vertical) children. Vertices created on shared edges and faces
// are reused by neighbouring elements that are refined later.
func (m *HexMesh) Refine(id int, a Axis) error {
	if id < 0 || id >= len(m.elements) {
		return fmt.Errorf("mesh: element %d out of range [0, %d): %w",
			id, len(m.elements), roughmesh.ErrInvariant)
	}
	if !m.CanRefine(id, a) {
		return fmt.Errorf("mesh: element %d along %v: %w", id, a, roughmesh.ErrRefinementRejected)
	}
	parent := m.elements[id]
	var children [][8]int
	switch a {
	case Horizontal:
		children = m.splitXY(parent.Vertices)
	case Vertical:
		children = m.splitZ(parent.Vertices)
	}
	m.elements[id].Active = false
	for _, vs := range children {
		c := Element{
			Vertices: vs,
			Marker:   parent.Marker,
			Parent:   id,
			LevelXY:  parent.LevelXY,
			LevelZ:   parent.LevelZ,
		}
		if a == Horizontal {
			c.LevelXY++
		} else {
			c.LevelZ++
		}
		cid := m.addElement(c)
		m.elements[id].Children = append(m.elements[id].Children, cid)
	}
	return nil
}

func (m *HexMesh) splitXY(v [8]int) [][8]int {
	b01, b12, b23, b30 := m.midpoint(v[0], v[1]), m.midpoint(v[1], v[2]), m.midpoint(v[2], v[3]), m.midpoint(v[3], v[0])
	t45, t56, t67, t74 := m.midpoint(v[4], v[5]), m.midpoint(v[5], v[6]), m.midpoint(v[6], v[7]), m.midpoint(v[7], v[4])
	bc := m.faceCenter(v[0], v[1], v[2], v[3])
	tc := m.faceCenter(v[4], v[5], v[6], v[7])
	return [][8]int{
		{v[0], b01, bc, b30, v[4], t45, tc, t74},
		{b01, v[1], b12, bc, t45, v[5], t56, tc},
		{bc, b12, v[2], b23, tc, t56, v[6], t67},
		{b30, bc, b23, v[3], t74, tc, t67, v[7]},
	}
}

func (m *HexMesh) splitZ(v [8]int) [][8]int {
	m04, m15, m26, m37 := m.midpoint(v[0], v[4]), m.midpoint(v[1], v[5]), m.midpoint(v[2], v[6]), m.midpoint(v[3], v[7])
	return [][8]int{
		{v[0], v[1], v[2], v[3], m04, m15, m26, m37},
		{m04, m15, m26, m37, v[4], v[5], v[6], v[7]},
	}
}

// midpoint returns the vertex halfway along edge (a, b), creating it
// the first time the edge is split.
func (m *HexMesh) midpoint(a, b int) int {
	k := [2]int{a, b}
	if a > b {
		k = [2]int{b, a}
	}
	if m.midpoints == nil {
		m.midpoints = make(map[[2]int]int)
	}
	if v, ok := m.midpoints[k]; ok {
		return v
	}
	v := m.AddVertex(r3.Scale(0.5, r3.Add(m.vertices[a], m.vertices[b])))
	m.midpoints[k] = v
	return v
}

// faceCenter returns the vertex at the average of face (a, b, c, d).
func (m *HexMesh) faceCenter(a, b, c, d int) int {
	k := [4]int{a, b, c, d}
	sort.Ints(k[:])
	if m.centers == nil {
		m.centers = make(map[[4]int]int)
	}
	if v, ok := m.centers[k]; ok {
		return v
	}
	sum := r3.Add(r3.Add(m.vertices[a], m.vertices[b]), r3.Add(m.vertices[c], m.vertices[d]))
	v := m.AddVertex(r3.Scale(0.25, sum))
	m.centers[k] = v
	return v
}
