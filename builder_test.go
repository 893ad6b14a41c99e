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
	"fmt"
	"slices"
	"testing"

	"seehuhn.de/go/geom/rect"
)

const numLocations = 100

func TestUpdatePathAllValid(t *testing.T) {
	points := makeSamples(nil, numLocations, true)
	for start := 1; start < numLocations; start++ {
		rec := &Recorder{}
		UpdatePath(plane{}, everything, start, true, points, rec)

		moves, lines := rec.Counts()
		if moves != 0 || lines != numLocations-start {
			t.Errorf("start=%d: got %d MoveTo, %d LineTo, want 0, %d",
				start, moves, lines, numLocations-start)
		}
	}
}

func TestUpdatePathAllInvalid(t *testing.T) {
	points := makeSamples(nil, numLocations, false)
	for _, cont := range []bool{true, false} {
		for start := 0; start < numLocations; start++ {
			rec := &Recorder{}
			visible := UpdatePath(plane{}, everything, start, cont, points, rec)
			if len(rec.Ops) != 0 || visible {
				t.Errorf("start=%d cont=%t: got %d ops, visible=%t",
					start, cont, len(rec.Ops), visible)
			}
		}
	}
}

func TestUpdatePathThreeSegments(t *testing.T) {
	points := makeSamples(nil, numLocations, true)
	points = makeSamples(points, 1, false)
	points = makeSamples(points, numLocations, true)
	points = makeSamples(points, 1, false)
	points = makeSamples(points, numLocations, true)

	for start := 1; start < numLocations; start++ {
		var want []OpKind
		want = append(want, ops(false, numLocations-start)...)
		want = append(want, ops(true, numLocations-1)...)
		want = append(want, ops(true, numLocations-1)...)

		rec := &Recorder{}
		UpdatePath(plane{}, everything, start, true, points, rec)
		if !slices.Equal(rec.Kinds(), want) {
			t.Errorf("start=%d: wrong operation sequence", start)
		}
	}
}

func TestUpdatePathScenarios(t *testing.T) {
	valid := makeSamples(nil, numLocations, true)
	invalid := makeSamples(nil, numLocations, false)
	three := makeSamples(nil, numLocations, true)
	three = makeSamples(three, 1, false)
	three = makeSamples(three, numLocations, true)
	three = makeSamples(three, 1, false)
	three = makeSamples(three, numLocations, true)

	cases := []struct {
		name   string
		points []Sample
		start  int
		cont   bool
		want   []OpKind
	}{
		{"all_valid", valid, 37, true, ops(false, 63)},
		{"all_invalid", invalid, 37, true, nil},
		{"three_segments", three, 37, true,
			slices.Concat(ops(false, 63), ops(true, 99), ops(true, 99))},
		{"no_continuation", valid, 37, false, ops(true, 62)},
		{"from_start", valid, 0, true, ops(true, 99)},
		{"from_start_no_continuation", valid, 0, false, ops(true, 99)},
		{"last_point", valid, numLocations - 1, true, ops(false, 1)},
		{"start_on_gap", three, numLocations, true, slices.Concat(ops(true, 99), ops(true, 99))},
		{"start_after_gap", three, numLocations + 1, false, slices.Concat(ops(true, 99), ops(true, 99))},
		// the continuation flag is trusted, even if the previous sample is a gap
		{"continue_after_gap", three, numLocations + 1, true, slices.Concat(ops(false, 100), ops(true, 99))},
		{"end", valid, numLocations, true, nil},
		{"beyond_end", valid, numLocations + 5, true, nil},
		{"negative", valid, -1, true, nil},
		{"empty", nil, 0, false, nil},
		{"empty_continued", []Sample{}, 1, true, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := &Recorder{}
			UpdatePath(plane{}, everything, c.start, c.cont, c.points, rec)
			var got []OpKind
			if len(rec.Ops) > 0 {
				got = rec.Kinds()
			}
			diff(t, c.want, got)
		})
	}
}

func TestUpdatePathCoordinates(t *testing.T) {
	points := []Sample{
		At(1, 10),
		At(2, 20),
		Gap,
		At(3, 30),
		Gap,
		Gap,
		At(4, 40),
		At(5, 50),
	}
	rec := &Recorder{}
	UpdatePath(plane{}, everything, 1, true, points, rec)

	want := []Op{
		{OpLineTo, 20, 2},
		{OpMoveTo, 30, 3},
		{OpMoveTo, 40, 4},
		{OpLineTo, 50, 5},
	}
	diff(t, want, rec.Ops)
}

func TestUpdatePathUnprojectable(t *testing.T) {
	points := []Sample{
		At(1, 1),
		At(1, 2),
		At(-1, 3), // cannot be projected
		At(1, 4),
		At(1, 5),
	}
	rec := &Recorder{}
	UpdatePath(holes{}, everything, 0, false, points, rec)

	want := []Op{
		{OpMoveTo, 1, 1},
		{OpLineTo, 2, 1},
		{OpMoveTo, 4, 1},
		{OpLineTo, 5, 1},
	}
	diff(t, want, rec.Ops)
}

func TestUpdatePathIdempotent(t *testing.T) {
	points := makeSamples(nil, 20, true)
	points = makeSamples(points, 3, false)
	points = makeSamples(points, 20, true)

	view := MapView{Center: Coord{Lat: 0, Lon: 10}, Zoom: 4, Width: 640, Height: 480}
	for start := range points {
		a, b := &Recorder{}, &Recorder{}
		va := UpdatePath(view, view.Viewport(), start, true, points, a)
		vb := UpdatePath(view, view.Viewport(), start, true, points, b)
		if va != vb {
			t.Errorf("start=%d: visibility differs", start)
		}
		diff(t, a.Ops, b.Ops)
	}
}

func TestUpdatePathVisible(t *testing.T) {
	viewport := rect.Rect{LLx: 0, LLy: 0, URx: 100, URy: 100}

	cases := []struct {
		points []Sample
		start  int
		want   bool
	}{
		{[]Sample{At(50, 50)}, 0, true},
		{[]Sample{At(150, 50)}, 0, false},
		{[]Sample{At(0, 0)}, 0, true},
		{[]Sample{At(100, 100)}, 0, true},
		{[]Sample{At(200, 200), At(300, 300)}, 0, false},
		// a segment crossing the viewport with both end points outside
		{[]Sample{At(50, -10), At(50, 110)}, 0, true},
		// a continuation includes the segment from the previous sample
		{[]Sample{At(50, -10), At(50, 110)}, 1, true},
		{[]Sample{At(50, 50), At(150, 150)}, 1, true},
		{[]Sample{At(150, 150), At(200, 200)}, 1, false},
		// an unprojectable previous sample leaves only the end point
		{[]Sample{At(-1, 50), At(150, 150)}, 1, false},
		// segments are not formed across gaps
		{[]Sample{At(50, -10), Gap, At(50, 110)}, 0, false},
	}
	for i, c := range cases {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			got := UpdatePath(holes{}, viewport, c.start, true, c.points, &Recorder{})
			if got != c.want {
				t.Errorf("got %t, want %t", got, c.want)
			}
		})
	}
}

// TestUpdatePathKeepsOffscreenPoints checks that points outside the
// viewport are still part of the path.
func TestUpdatePathKeepsOffscreenPoints(t *testing.T) {
	viewport := rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 10}
	points := []Sample{At(5, 5), At(500, 500), At(5, 6)}
	rec := &Recorder{}
	UpdatePath(plane{}, viewport, 0, false, points, rec)
	if len(rec.Ops) != 3 {
		t.Errorf("got %d ops, want 3", len(rec.Ops))
	}
}

func TestUpdatePathPreconditions(t *testing.T) {
	points := makeSamples(nil, 3, true)
	cases := []struct {
		name string
		proj Projection
		sink Sink
	}{
		{"nil_projection", nil, &Recorder{}},
		{"nil_sink", plane{}, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			UpdatePath(c.proj, everything, 0, false, points, c.sink)
		})
	}
}

// TestUpdatePathIncremental checks that drawing a track in pieces gives
// the same result as drawing it in one go.
func TestUpdatePathIncremental(t *testing.T) {
	points := makeSamples(nil, 10, true)
	points = makeSamples(points, 2, false)
	points = makeSamples(points, 10, true)

	whole := &Recorder{}
	UpdatePath(plane{}, everything, 0, false, points, whole)

	for step := 1; step <= len(points); step++ {
		pieces := &Recorder{}
		for start := 0; start < len(points); start += step {
			end := min(start+step, len(points))
			cont := start > 0 && points[start-1].Valid
			UpdatePath(plane{}, everything, start, cont, points[:end], pieces)
		}
		diff(t, whole.Ops, pieces.Ops)
	}
}
