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

// Package bathyplot downloads subsets of the EMODnet bathymetry dataset
// for a geographic bounding box and renders them as maps.
package bathyplot

import (
	"github.com/ctessum/geom"
)

// Version gives the version number of this version of Bathyplot.
const Version = "0.3.0"

// DomainGeometry represents the geographical description of a domain:
// its minimum and maximum latitude and longitude in signed degrees.
// The bounds are used exactly as given; they are never reordered, and
// no minimum ≤ maximum relationship is enforced.
type DomainGeometry struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// Bounds returns the domain extent with longitude on the X axis and
// latitude on the Y axis.
func (d DomainGeometry) Bounds() *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{X: d.MinLon, Y: d.MinLat},
		Max: geom.Point{X: d.MaxLon, Y: d.MaxLat},
	}
}
