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
	"github.com/google/btree"
	"github.com/spatialmodel/roughmesh/approx"
)

// degree of the underlying B-tree.
const degree = 16

// Index is an ordered map from Key to *Column. Lookups and insertions both
// go through Key.Less, so a key within tolerance of an existing key on both
// axes resolves to the existing column.
//
// An Index is not safe for concurrent use.
type Index struct {
	tol  approx.Tolerance
	tree *btree.BTreeG[*Column]
}

// NewIndex returns an empty index whose keys use tolerance tol.
func NewIndex(tol approx.Tolerance) *Index {
	return &Index{
		tol: tol,
		tree: btree.NewG(degree, func(a, b *Column) bool {
			return a.Key.Less(b.Key)
		}),
	}
}

// Tolerance returns the key tolerance of the index.
func (idx *Index) Tolerance() approx.Tolerance { return idx.tol }

// Upsert adds element id to the column at key, creating the column if
// needed, and overwrites the column height range with lo and hi.
func (idx *Index) Upsert(key Key, id int, lo, hi float64) *Column {
	c, ok := idx.tree.Get(&Column{Key: key})
	if !ok {
		c = newColumn(key)
		idx.tree.ReplaceOrInsert(c)
	}
	c.elements[id] = struct{}{}
	c.Lo, c.Hi = lo, hi
	return c
}

// Get returns the column at key.
func (idx *Index) Get(key Key) (*Column, bool) {
	return idx.tree.Get(&Column{Key: key})
}

// Len returns the number of columns.
func (idx *Index) Len() int { return idx.tree.Len() }

// Ascend calls f for each column in key order until f returns false.
func (idx *Index) Ascend(f func(*Column) bool) {
	idx.tree.Ascend(func(c *Column) bool { return f(c) })
}

// Columns returns all columns in key order.
func (idx *Index) Columns() []*Column {
	o := make([]*Column, 0, idx.Len())
	idx.Ascend(func(c *Column) bool {
		o = append(o, c)
		return true
	})
	return o
}

// Clear removes all columns.
func (idx *Index) Clear() {
	idx.tree.Clear(false)
}
