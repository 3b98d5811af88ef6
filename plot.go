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
	"image/color"
	"math"

	"github.com/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	// MapTitle is the constant title drawn above every map.
	MapTitle = "EMODnet Bathymetry"

	// MapDPI is the resolution images are rendered at.
	MapDPI = 150

	figWidth  = 8 * vg.Inch
	figHeight = 6 * vg.Inch

	paletteColors = 256
)

// seaColors and landColors are the control points of the two halves of
// the fixed map color scale: deep-water blues rising to pale cyan
// below sea level, lowland greens rising to summit white above it.
// Each set is ordered by increasing luminance, as the luminance
// colormap constructor requires.
var (
	seaColors = []color.Color{
		color.NRGBA{R: 0x33, G: 0x33, B: 0x99, A: 0xff},
		color.NRGBA{R: 0x00, G: 0x99, B: 0xff, A: 0xff},
		color.NRGBA{R: 0x99, G: 0xe6, B: 0xff, A: 0xff},
	}
	landColors = []color.Color{
		color.NRGBA{R: 0x33, G: 0x66, B: 0x00, A: 0xff},
		color.NRGBA{R: 0x99, G: 0xcc, B: 0x33, A: 0xff},
		color.NRGBA{R: 0xff, G: 0xff, B: 0x99, A: 0xff},
		color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
)

// splicedPalette is a fixed sampling of the sea and land colormaps.
type splicedPalette struct {
	colors []color.Color
}

func (p splicedPalette) Colors() []color.Color { return p.colors }

// terrainPalette splices luminance colormaps built from seaColors and
// landColors into one n-color palette with nSea colors below sea
// level. A segment needs at least two colors to be sampled; shorter
// segments are given to the other half of the scale.
func terrainPalette(n, nSea int) (palette.Palette, error) {
	if nSea < 2 {
		nSea = 0
	} else if n-nSea < 2 {
		nSea = n
	}
	colors := make([]color.Color, 0, n)
	if nSea > 0 {
		sea, err := moreland.NewLuminance(seaColors)
		if err != nil {
			return nil, fmt.Errorf("bathyplot: building sea colormap: %v", err)
		}
		sea.SetMin(0)
		sea.SetMax(1)
		colors = append(colors, sea.Palette(nSea).Colors()...)
	}
	if n-nSea > 0 {
		land, err := moreland.NewLuminance(landColors)
		if err != nil {
			return nil, fmt.Errorf("bathyplot: building land colormap: %v", err)
		}
		land.SetMin(0)
		land.SetMax(1)
		colors = append(colors, land.Palette(n-nSea).Colors()...)
	}
	return splicedPalette{colors: colors}, nil
}

// seaFraction gives the share of the elevation range [min, max] that
// lies below sea level, locating the splice between the two colormaps.
// Degenerate ranges are treated as fully submarine.
func seaFraction(min, max float64) float64 {
	if math.IsNaN(min) || math.IsNaN(max) || max <= min {
		return 1
	}
	f := -min / (max - min)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// elevationGrid adapts a Dataset to the heat map grid interface, with
// longitude as columns and latitude as rows.
type elevationGrid struct {
	ds *Dataset
}

func (g elevationGrid) Dims() (c, r int)   { return len(g.ds.Lon), len(g.ds.Lat) }
func (g elevationGrid) Z(c, r int) float64 { return g.ds.Elevation.Get(r, c) }
func (g elevationGrid) X(c int) float64    { return g.ds.Lon[c] }
func (g elevationGrid) Y(r int) float64    { return g.ds.Lat[r] }

// RenderMap draws the elevation variable of ds as a heat map with the
// fixed terrain color scale, figure size, and title, and returns the
// canvas ready for encoding. The color scale is spliced at sea level.
func RenderMap(ds *Dataset) (*vgimg.Canvas, error) {
	p, err := plot.New()
	if err != nil {
		return nil, fmt.Errorf("bathyplot: creating plot: %v", err)
	}
	p.Title.Text = MapTitle
	p.X.Label.Text = "longitude"
	p.Y.Label.Text = "latitude"

	min := floats.Min(ds.Elevation.Elements)
	max := floats.Max(ds.Elevation.Elements)
	nSea := int(paletteColors*seaFraction(min, max) + 0.5)
	pal, err := terrainPalette(paletteColors, nSea)
	if err != nil {
		return nil, err
	}
	h := plotter.NewHeatMap(elevationGrid{ds: ds}, pal)
	p.Add(h)

	c := vgimg.NewWith(vgimg.UseWH(figWidth, figHeight), vgimg.UseDPI(MapDPI))
	p.Draw(draw.New(c))
	return c, nil
}
