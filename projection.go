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

package trackpath

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

const (
	tileSize = 256
	maxZoom  = 21

	// maxLat is the latitude where the Web Mercator map becomes square.
	maxLat = 85.05112878
)

// MapView is a Web Mercator map view of Width×Height pixels, centred on
// Center.  At zoom level z the whole world is 256·2^z pixels wide.  Screen
// coordinates have the origin at the top-left corner with y pointing down.
//
// MapView implements [Projection] and [ViewportProvider].
type MapView struct {
	Center Coord
	Zoom   float64
	Width  int
	Height int
}

// Matrix returns the transformation from unit Mercator coordinates
// (both in [0, 1], y pointing south) to screen coordinates.
func (v MapView) Matrix() matrix.Matrix {
	scale := tileSize * math.Exp2(v.Zoom)
	c := mercator(v.Center)
	return matrix.Matrix{
		scale, 0,
		0, scale,
		float64(v.Width)/2 - c.X*scale, float64(v.Height)/2 - c.Y*scale,
	}
}

// Project implements the [Projection] interface.
// Coordinates outside the geographic range, including NaN, cannot be
// projected.  Latitudes beyond ±85.05° are clamped to the map edge.
func (v MapView) Project(c Coord) (vec.Vec2, bool) {
	if !c.IsValid() {
		return vec.Vec2{}, false
	}
	return apply(v.Matrix(), mercator(c)), true
}

// Viewport implements the [ViewportProvider] interface.
func (v MapView) Viewport() rect.Rect {
	return rect.Rect{LLx: 0, LLy: 0, URx: float64(v.Width), URy: float64(v.Height)}
}

// FitView returns the view of the given size which shows all valid samples
// with at least padding pixels to spare on each side.  The zoom level is the
// largest integer for which the track fits.
func FitView(points []Sample, width, height int, padding float64) MapView {
	v := MapView{Width: width, Height: height}

	first := true
	var lo, hi vec.Vec2
	for _, pt := range points {
		if !pt.Valid || !pt.Pos.IsValid() {
			continue
		}
		u := mercator(pt.Pos)
		if first {
			lo, hi = u, u
			first = false
			continue
		}
		lo.X, lo.Y = min(lo.X, u.X), min(lo.Y, u.Y)
		hi.X, hi.Y = max(hi.X, u.X), max(hi.Y, u.Y)
	}
	if first {
		return v
	}

	v.Center = inverseMercator(vec.Vec2{X: (lo.X + hi.X) / 2, Y: (lo.Y + hi.Y) / 2})

	availX := max(float64(width)-2*padding, 1)
	availY := max(float64(height)-2*padding, 1)
	fit := math.Inf(1)
	if d := hi.X - lo.X; d > 0 {
		fit = min(fit, availX/(d*tileSize))
	}
	if d := hi.Y - lo.Y; d > 0 {
		fit = min(fit, availY/(d*tileSize))
	}
	v.Zoom = maxZoom
	if !math.IsInf(fit, 1) {
		v.Zoom = max(0, min(maxZoom, math.Floor(math.Log2(fit))))
	}
	return v
}

// mercator maps c to unit Web Mercator coordinates.
func mercator(c Coord) vec.Vec2 {
	lat := max(-maxLat, min(maxLat, c.Lat))
	s := math.Sin(lat * math.Pi / 180)
	return vec.Vec2{
		X: (c.Lon + 180) / 360,
		Y: 0.5 - math.Log((1+s)/(1-s))/(4*math.Pi),
	}
}

func inverseMercator(u vec.Vec2) Coord {
	return Coord{
		Lat: math.Atan(math.Sinh(math.Pi*(1-2*u.Y))) * 180 / math.Pi,
		Lon: u.X*360 - 180,
	}
}

func apply(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}
