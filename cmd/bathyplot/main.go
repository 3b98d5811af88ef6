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

// Command bathyplot is a command-line interface for downloading and
// mapping EMODnet bathymetry.
package main

import (
	"os"

	"github.com/inogs/bathyplot/bathyplotutil"
)

func main() {
	if err := bathyplotutil.Root.Execute(); err != nil {
		os.Exit(1)
	}
}
