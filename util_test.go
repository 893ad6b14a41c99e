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
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Errorf("unexpected result (-want +got):\n%s", d)
	}
}

// plane maps longitude to x and latitude to y without any scaling.
type plane struct{}

func (plane) Project(c Coord) (vec.Vec2, bool) {
	return vec.Vec2{X: c.Lon, Y: c.Lat}, true
}

// holes is like plane, but cannot project points with negative latitude.
type holes struct{}

func (holes) Project(c Coord) (vec.Vec2, bool) {
	if c.Lat < 0 {
		return vec.Vec2{}, false
	}
	return vec.Vec2{X: c.Lon, Y: c.Lat}, true
}

var everything = rect.Rect{LLx: -1e9, LLy: -1e9, URx: 1e9, URy: 1e9}

// makeSamples returns n samples along the x axis, continuing after the
// samples already in track.
func makeSamples(track []Sample, n int, valid bool) []Sample {
	for range n {
		s := At(0, float64(len(track)))
		s.Valid = valid
		track = append(track, s)
	}
	return track
}

// ops builds an expected sequence: one MoveTo if move is set, followed by
// the given number of LineTo operations.
func ops(move bool, lines int) []OpKind {
	var res []OpKind
	if move {
		res = append(res, OpMoveTo)
	}
	for range lines {
		res = append(res, OpLineTo)
	}
	return res
}
