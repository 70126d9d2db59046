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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	goshp "github.com/jonas-p/go-shp"
	"github.com/spatialmodel/roughmesh"
)

// Polygon returns the footprint of c as a closed polygon.
func (c *Column) Polygon() geom.Polygon {
	x0, x1 := c.Footprint.X.Lo, c.Footprint.X.Hi
	y0, y1 := c.Footprint.Y.Lo, c.Footprint.Y.Hi
	return geom.Polygon([]geom.Path{{
		{X: x0, Y: y0}, {X: x1, Y: y0},
		{X: x1, Y: y1}, {X: x0, Y: y1}, {X: x0, Y: y0}}})
}

// WriteToShp writes the column footprints in idx to the shapefile at
// path, with the height range and occupant count of each column as
// attributes. Existing files with the same base name are replaced.
func WriteToShp(path string, idx *Index) error {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	for _, ext := range []string{".shp", ".prj", ".dbf", ".shx"} {
		os.Remove(base + ext)
	}
	fields := []goshp.Field{
		goshp.FloatField("lo", 24, 15),
		goshp.FloatField("hi", 24, 15),
		goshp.NumberField("n", 10),
	}
	e, err := shp.NewEncoderFromFields(base+".shp", goshp.POLYGON, fields...)
	if err != nil {
		return fmt.Errorf("column: creating %s: %v: %w", base+".shp", err, roughmesh.ErrIOFailure)
	}
	defer e.Close()
	var werr error
	idx.Ascend(func(c *Column) bool {
		if err := e.EncodeFields(c.Polygon(), c.Lo, c.Hi, c.Len()); err != nil {
			werr = fmt.Errorf("column: writing %v: %v: %w", c.Key, err, roughmesh.ErrIOFailure)
			return false
		}
		return true
	})
	return werr
}
