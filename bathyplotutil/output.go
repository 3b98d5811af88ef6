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

package bathyplotutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/skratchdot/open-golang/open"
	"gonum.org/v1/plot/vg/vgimg"
)

// DefaultFilename is the image name used when the output flag names an
// existing directory.
const DefaultFilename = "bathymetry.png"

// OutputTarget tells where a rendered map goes: to the path it holds,
// or to the system image viewer when the path is empty. It is decided
// once from the parsed arguments and dispatched once.
type OutputTarget struct {
	Path string
}

// Interactive reports whether the target is the system image viewer.
func (t OutputTarget) Interactive() bool { return t.Path == "" }

// ResolveSavePath turns a user-supplied output string into the name of
// the file that will be written: an existing directory receives
// DefaultFilename inside it, and a path without an extension gets
// ".png" appended. Missing parent directories of the result are
// created.
func ResolveSavePath(path string) (string, error) {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, DefaultFilename)
	} else if filepath.Ext(path) == "" {
		path += ".png"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return "", fmt.Errorf("bathyplot: creating output directory: %v", err)
		}
	}
	return path, nil
}

// WriteImage encodes c to fname in the format implied by the file
// extension (png, jpg, jpeg, tif, or tiff).
func WriteImage(c *vgimg.Canvas, fname string) error {
	var img io.WriterTo
	switch ext := strings.ToLower(filepath.Ext(fname)); ext {
	case ".png":
		img = vgimg.PngCanvas{Canvas: c}
	case ".jpg", ".jpeg":
		img = vgimg.JpegCanvas{Canvas: c}
	case ".tif", ".tiff":
		img = vgimg.TiffCanvas{Canvas: c}
	default:
		return fmt.Errorf("bathyplot: unsupported image format %q", ext)
	}
	w, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("bathyplot: creating output file: %v", err)
	}
	if _, err := img.WriteTo(w); err != nil {
		w.Close()
		return fmt.Errorf("bathyplot: writing %s: %v", fname, err)
	}
	return w.Close()
}

// Save resolves path with ResolveSavePath, writes the image there, and
// returns the name of the file that was written.
func Save(c *vgimg.Canvas, path string) (string, error) {
	fname, err := ResolveSavePath(path)
	if err != nil {
		return "", err
	}
	if err := WriteImage(c, fname); err != nil {
		return "", err
	}
	return fname, nil
}

// Dispatch routes the rendered map according to t. A save target gets
// the image written to the resolved path and a confirmation line
// printed; an interactive target gets the image written to a per-run
// temporary file and opened in the system image viewer.
func Dispatch(c *vgimg.Canvas, t OutputTarget) error {
	if t.Interactive() {
		dir, err := os.MkdirTemp("", "bathyplot")
		if err != nil {
			return fmt.Errorf("bathyplot: creating temporary image directory: %v", err)
		}
		fname := filepath.Join(dir, DefaultFilename)
		if err := WriteImage(c, fname); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{"file": fname}).Info("opening image viewer")
		return open.Run(fname)
	}
	fname, err := Save(c, t.Path)
	if err != nil {
		return err
	}
	fmt.Printf("Saved plot to %s\n", fname)
	return nil
}
