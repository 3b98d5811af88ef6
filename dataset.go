/*
Copyright © 2025 the Bathyplot authors.
This file is part of Bathyplot.

Bathyplot is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Bathyplot is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Bathyplot.  If not, see <http://www.gnu.org/licenses/>.
*/

package bathyplot

import (
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
	"github.com/gonum/floats"
)

// Dataset holds a gridded bathymetry subset in memory. It is a
// read-only view of the remote data for the duration of one run.
type Dataset struct {
	// Lat and Lon hold the coordinate values of the grid rows and
	// columns in the order the server returned them, which may be
	// ascending or descending.
	Lat, Lon []float64

	// Elevation is height relative to sea level in meters, negative
	// below the surface, with shape [len(Lat), len(Lon)].
	Elevation *sparse.DenseArray
}

// Bounds returns the spatial extent of the grid, with longitude on the
// X axis and latitude on the Y axis.
func (d *Dataset) Bounds() *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{X: floats.Min(d.Lon), Y: floats.Min(d.Lat)},
		Max: geom.Point{X: floats.Max(d.Lon), Y: floats.Max(d.Lat)},
	}
}

func (d *Dataset) String() string {
	b := d.Bounds()
	return fmt.Sprintf(
		"Dimensions:   (latitude: %d, longitude: %d)\n"+
			"Coordinates:  latitude %g to %g, longitude %g to %g\n"+
			"Variables:    elevation (m) min %g max %g",
		len(d.Lat), len(d.Lon),
		b.Min.Y, b.Max.Y, b.Min.X, b.Max.X,
		floats.Min(d.Elevation.Elements), floats.Max(d.Elevation.Elements))
}
