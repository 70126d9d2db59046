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

/*
Package roughmesh refines a hexahedral mesh so that its resolution near a rough
surface matches the local vertical extent of that surface.

The work is split across packages: approx holds the tolerance-aware scalar
used for coordinate comparisons, column aggregates elements by footprint,
surface loads the rough-surface point cloud and samples it, mesh holds the
hexahedral element arena, and refine drives the refinement loop.
The roughmesh command in cmd/roughmesh reads its settings through package
config and writes the refined mesh with mesh/vtk, the columns as a shapefile,
and a plan view drawn by package plot.
*/
package roughmesh
