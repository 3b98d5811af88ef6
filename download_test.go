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
	"math"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/ctessum/cdf"
)

// testElev is a synthetic elevation surface that lets tests check that
// grid values end up at the right coordinates.
func testElev(lat, lon float64) float64 { return lat*100 + lon }

// griddapStub serves griddap-style constraint queries over a synthetic
// grid, applying the inclusive range selection on both axes the way an
// ERDDAP server does. Bounds may arrive in either order relative to the
// coordinate ordering.
func griddapStub(t *testing.T, lat, lon []float64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q, err := url.QueryUnescape(r.URL.RawQuery)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var latA, latB, lonA, lonB float64
		if _, err := fmt.Sscanf(q, "elevation[(%g):(%g)][(%g):(%g)]",
			&latA, &latB, &lonA, &lonB); err != nil {
			http.Error(w, "malformed constraint: "+q, http.StatusBadRequest)
			return
		}
		latSel := within(lat, latA, latB)
		lonSel := within(lon, lonA, lonB)
		if len(latSel) == 0 || len(lonSel) == 0 {
			http.Error(w, "no data in requested range", http.StatusBadRequest)
			return
		}
		writeGriddapResponse(t, w, latSel, lonSel)
	})
}

// within returns the values of coords falling inclusively between the
// two bounds, which may be given in either order, preserving the
// ordering of coords.
func within(coords []float64, a, b float64) []float64 {
	lo, hi := math.Min(a, b), math.Max(a, b)
	var out []float64
	for _, v := range coords {
		if v >= lo && v <= hi {
			out = append(out, v)
		}
	}
	return out
}

// writeGriddapResponse encodes the selected grid as a classic NetCDF
// file and copies it to w.
func writeGriddapResponse(t *testing.T, w io.Writer, lat, lon []float64) {
	h := cdf.NewHeader([]string{"latitude", "longitude"}, []int{len(lat), len(lon)})
	h.AddVariable("latitude", []string{"latitude"}, []float64{0})
	h.AddVariable("longitude", []string{"longitude"}, []float64{0})
	h.AddVariable("elevation", []string{"latitude", "longitude"}, []float32{0})
	h.Define()

	ff, err := os.CreateTemp(t.TempDir(), "griddap")
	if err != nil {
		t.Fatal(err)
	}
	defer ff.Close()
	f, err := cdf.Create(ff, h)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Writer("latitude", []int{0}, []int{len(lat)}).Write(lat); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Writer("longitude", []int{0}, []int{len(lon)}).Write(lon); err != nil {
		t.Fatal(err)
	}
	elev := make([]float32, 0, len(lat)*len(lon))
	for _, la := range lat {
		for _, lo := range lon {
			elev = append(elev, float32(testElev(la, lo)))
		}
	}
	wr := f.Writer("elevation", []int{0, 0}, []int{len(lat), len(lon)})
	if _, err := wr.Write(elev); err != nil {
		t.Fatal(err)
	}
	if _, err := ff.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	if _, err := io.Copy(w, ff); err != nil {
		t.Fatal(err)
	}
}

// coordRange builds an evenly spaced coordinate vector.
func coordRange(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func TestDownloadBathymetry(t *testing.T) {
	lat := coordRange(30, 0.5, 31)  // 30 to 45
	lon := coordRange(-12, 0.5, 33) // -12 to 4
	srv := httptest.NewServer(griddapStub(t, lat, lon))
	defer srv.Close()

	d := DomainGeometry{MinLat: 34, MaxLat: 42, MinLon: -10, MaxLon: 2}
	ds, err := DownloadBathymetry(d, srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if len(ds.Lat) != 17 || len(ds.Lon) != 25 {
		t.Errorf("grid is %d×%d, want 17×25", len(ds.Lat), len(ds.Lon))
	}
	if got, want := ds.Elevation.Shape, []int{len(ds.Lat), len(ds.Lon)}; got[0] != want[0] || got[1] != want[1] {
		t.Errorf("elevation shape %v != %v", got, want)
	}
	for i, la := range ds.Lat {
		for j, lo := range ds.Lon {
			want := testElev(la, lo)
			if got := ds.Elevation.Get(i, j); math.Abs(got-want) > 1e-3 {
				t.Fatalf("elevation at (%g, %g) = %g, want %g", la, lo, got, want)
			}
		}
	}
}

func TestDownloadBathymetry_query(t *testing.T) {
	var gotQuery string
	lat := coordRange(30, 1, 16)
	lon := coordRange(-12, 1, 17)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writeGriddapResponse(t, w, lat, lon)
	}))
	defer srv.Close()

	d := DomainGeometry{MinLat: 43.5, MaxLat: 46, MinLon: 12, MaxLon: 18}
	if _, err := DownloadBathymetry(d, srv.URL); err != nil {
		t.Fatal(err)
	}
	q, err := url.QueryUnescape(gotQuery)
	if err != nil {
		t.Fatal(err)
	}
	want := "elevation[(43.5):(46)][(12):(18)]"
	if q != want {
		t.Errorf("constraint %q, want %q", q, want)
	}
}

// TestDownloadBathymetry_bounds checks that for any box with
// minimum ≤ maximum on both axes, the returned coordinates all fall
// within the requested inclusive bounds.
func TestDownloadBathymetry_bounds(t *testing.T) {
	for _, ordering := range []string{"ascending", "descending"} {
		t.Run(ordering, func(t *testing.T) {
			lat := coordRange(30, 0.25, 61)
			lon := coordRange(-12, 0.25, 65)
			if ordering == "descending" {
				for i, j := 0, len(lat)-1; i < j; i, j = i+1, j-1 {
					lat[i], lat[j] = lat[j], lat[i]
				}
			}
			srv := httptest.NewServer(griddapStub(t, lat, lon))
			defer srv.Close()

			rng := rand.New(rand.NewSource(1))
			for i := 0; i < 25; i++ {
				// Boxes always contain at least one grid point.
				minLat := 30 + rng.Float64()*10
				maxLat := minLat + 0.5 + rng.Float64()*4
				minLon := -12 + rng.Float64()*10
				maxLon := minLon + 0.5 + rng.Float64()*5
				d := DomainGeometry{MinLat: minLat, MaxLat: maxLat, MinLon: minLon, MaxLon: maxLon}
				ds, err := DownloadBathymetry(d, srv.URL)
				if err != nil {
					t.Fatalf("box %+v: %v", d, err)
				}
				for _, la := range ds.Lat {
					if la < minLat || la > maxLat {
						t.Fatalf("box %+v: latitude %g out of bounds", d, la)
					}
				}
				for _, lo := range ds.Lon {
					if lo < minLon || lo > maxLon {
						t.Fatalf("box %+v: longitude %g out of bounds", d, lo)
					}
				}
			}
		})
	}
}

// TestDownloadBathymetry_ordering checks that a descending coordinate
// vector is passed through in the order the server returned it.
func TestDownloadBathymetry_ordering(t *testing.T) {
	lat := []float64{42, 41, 40, 39, 38}
	lon := coordRange(-10, 1, 13)
	srv := httptest.NewServer(griddapStub(t, lat, lon))
	defer srv.Close()

	d := DomainGeometry{MinLat: 38, MaxLat: 42, MinLon: -10, MaxLon: 2}
	ds, err := DownloadBathymetry(d, srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(ds.Lat); i++ {
		if ds.Lat[i] >= ds.Lat[i-1] {
			t.Fatalf("latitude order changed: %v", ds.Lat)
		}
	}
}

func TestDownloadBathymetry_missingVariable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := cdf.NewHeader([]string{"latitude", "longitude"}, []int{2, 2})
		h.AddVariable("latitude", []string{"latitude"}, []float64{0})
		h.AddVariable("longitude", []string{"longitude"}, []float64{0})
		h.Define()
		ff, err := os.CreateTemp(t.TempDir(), "griddap")
		if err != nil {
			t.Fatal(err)
		}
		defer ff.Close()
		f, err := cdf.Create(ff, h)
		if err != nil {
			t.Fatal(err)
		}
		f.Writer("latitude", []int{0}, []int{2}).Write([]float64{1, 2})
		f.Writer("longitude", []int{0}, []int{2}).Write([]float64{1, 2})
		ff.Seek(0, io.SeekStart)
		io.Copy(w, ff)
	}))
	defer srv.Close()

	_, err := DownloadBathymetry(DomainGeometry{MinLat: 1, MaxLat: 2, MinLon: 1, MaxLon: 2}, srv.URL)
	if err == nil {
		t.Fatal("expected an error for a response without an elevation variable")
	}
	if !strings.Contains(err.Error(), "elevation") {
		t.Errorf("error %q does not name the missing variable", err)
	}
}

func TestDownloadBathymetry_serverError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := DownloadBathymetry(DomainGeometry{MinLat: 1, MaxLat: 2, MinLon: 1, MaxLon: 2}, srv.URL)
	if err == nil {
		t.Fatal("expected an error for a failing server")
	}
}

func TestDatasetString(t *testing.T) {
	lat := coordRange(34, 1, 9)
	lon := coordRange(-10, 1, 13)
	srv := httptest.NewServer(griddapStub(t, lat, lon))
	defer srv.Close()

	ds, err := DownloadBathymetry(DomainGeometry{MinLat: 34, MaxLat: 42, MinLon: -10, MaxLon: 2}, srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	s := ds.String()
	for _, want := range []string{"latitude: 9", "longitude: 13", "elevation"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary %q missing %q", s, want)
		}
	}
}
