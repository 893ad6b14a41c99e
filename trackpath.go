// seehuhn.de/go/trackpath - draw recorded tracks as map paths
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package trackpath turns recorded location tracks into drawable paths.
//
// A track is an ordered list of [Sample] values. Samples which are not valid
// mark recording gaps (for example a GPS dropout) and break the drawn line.
// [UpdatePath] projects the samples into screen coordinates and writes the
// resulting polylines to a [Sink], optionally resuming in the middle of the
// track so that newly recorded samples can be appended to an existing path
// without redrawing everything.
package trackpath

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Coord is a geographic position in degrees.
type Coord struct {
	Lat float64
	Lon float64
}

// IsValid reports whether c lies in the range of geographic coordinates.
func (c Coord) IsValid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Sample is one recorded point of a track.
type Sample struct {
	Pos Coord

	// Valid is false for samples which mark a gap in the recording.
	Valid bool
}

// At returns a valid sample at the given position.
func At(lat, lon float64) Sample {
	return Sample{Pos: Coord{Lat: lat, Lon: lon}, Valid: true}
}

// Gap is the sample used to separate two runs of a track.
var Gap = Sample{}

// Sink receives path construction operations in screen coordinates.
type Sink interface {
	// MoveTo starts a new subpath at (x, y).
	MoveTo(x, y float64)

	// LineTo extends the current subpath to (x, y).
	LineTo(x, y float64)
}

// Projection maps geographic coordinates to screen coordinates.
type Projection interface {
	// Project returns the screen position of c.  The second return value
	// is false if c cannot be represented on the screen.
	Project(c Coord) (vec.Vec2, bool)
}

// ViewportProvider is implemented by map views which know their visible
// screen area.
type ViewportProvider interface {
	Viewport() rect.Rect
}

// CurrentViewport returns the visible screen rectangle of v.
func CurrentViewport(v ViewportProvider) rect.Rect {
	return v.Viewport()
}
