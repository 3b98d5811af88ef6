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
	"io"
	"net/http"
	"os"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"
)

// EMODnetURL is the griddap endpoint for the EMODnet Digital Terrain
// Model (2020), the fixed data source for this program.
const EMODnetURL = "https://erddap.emodnet.eu/erddap/griddap/dtm_2020_v2_e0bf_e7e4_5b8f"

// DownloadBathymetry fetches the part of the gridded bathymetry dataset
// at url that falls within domain and returns it as an in-memory
// Dataset. The selection is inclusive on both axes and is expressed as
// a griddap constraint, so the server determines how ascending and
// descending coordinate orderings are handled.
//
// Network, server, and decoding failures are returned unmodified; there
// are no retries and the response grid is not validated.
func DownloadBathymetry(domain DomainGeometry, url string) (*Dataset, error) {
	query := fmt.Sprintf("%s.nc?elevation[(%g):(%g)][(%g):(%g)]",
		url, domain.MinLat, domain.MaxLat, domain.MinLon, domain.MaxLon)
	logrus.WithFields(logrus.Fields{"url": query}).Info("downloading bathymetry")

	ff, err := downloadHTTP(query)
	if err != nil {
		return nil, err
	}
	defer os.Remove(ff.Name())
	defer ff.Close()

	f, err := cdf.Open(ff)
	if err != nil {
		return nil, fmt.Errorf("bathyplot: reading bathymetry NetCDF: %v", err)
	}
	lat, err := readCoord(f, "latitude")
	if err != nil {
		return nil, err
	}
	lon, err := readCoord(f, "longitude")
	if err != nil {
		return nil, err
	}
	elev, err := readVar(f, "elevation")
	if err != nil {
		return nil, err
	}
	return &Dataset{Lat: lat, Lon: lon, Elevation: elev}, nil
}

// downloadHTTP downloads url to a temporary file and returns the open
// file. The caller is responsible for closing and removing it.
func downloadHTTP(url string) (*os.File, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bathyplot: downloading %s: %s", url, resp.Status)
	}
	w, err := os.CreateTemp("", "bathyplot")
	if err != nil {
		return nil, fmt.Errorf("bathyplot: creating temporary download file: %v", err)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		w.Close()
		os.Remove(w.Name())
		return nil, fmt.Errorf("bathyplot: downloading %s: %v", url, err)
	}
	return w, nil
}

// readVar reads an entire variable from f into a dense array,
// converting the stored element type to float64.
func readVar(f *cdf.File, name string) (*sparse.DenseArray, error) {
	dims := f.Header.Lengths(name)
	if len(dims) == 0 {
		return nil, fmt.Errorf("bathyplot: variable %s is not in the dataset", name)
	}
	nread := 1
	for _, dim := range dims {
		nread *= dim
	}
	r := f.Reader(name, nil, nil)
	buf := r.Zero(nread)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("bathyplot: reading variable %s: %v", name, err)
	}
	data := sparse.ZerosDense(dims...)
	switch b := buf.(type) {
	case []float64:
		copy(data.Elements, b)
	case []float32:
		for i, v := range b {
			data.Elements[i] = float64(v)
		}
	case []int32:
		for i, v := range b {
			data.Elements[i] = float64(v)
		}
	case []int16:
		for i, v := range b {
			data.Elements[i] = float64(v)
		}
	default:
		return nil, fmt.Errorf("bathyplot: variable %s has unsupported type %T", name, buf)
	}
	return data, nil
}

// readCoord reads a one-dimensional coordinate variable from f.
func readCoord(f *cdf.File, name string) ([]float64, error) {
	v, err := readVar(f, name)
	if err != nil {
		return nil, err
	}
	if len(v.Shape) != 1 {
		return nil, fmt.Errorf("bathyplot: coordinate %s has %d dimensions, want 1", name, len(v.Shape))
	}
	return v.Elements, nil
}
