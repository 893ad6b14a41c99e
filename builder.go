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
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// UpdatePath appends the track points[start:] to sink.
//
// Each run of consecutive valid samples becomes one subpath: the first
// sample of a run is emitted using MoveTo, all following samples using
// LineTo.  Invalid samples, and samples which proj cannot map to the screen,
// emit nothing and break the line.  If cont is true and start > 0, the
// caller has already drawn points[start-1] into the current subpath of sink,
// and a valid points[start] continues that subpath with LineTo.
//
// Out-of-range values of start mean there is nothing new to draw.
//
// Points outside the viewport are not removed from the path; clipping is
// left to the drawing surface.  The return value reports whether any of the
// emitted geometry touches the viewport, i.e. whether the view needs to be
// redrawn.  When continuing a subpath, this includes the segment joining
// points[start-1] to points[start].
func UpdatePath(proj Projection, viewport rect.Rect, start int, cont bool, points []Sample, sink Sink) bool {
	if proj == nil {
		panic("trackpath: nil projection")
	}
	if sink == nil {
		panic("trackpath: nil sink")
	}
	if start < 0 || start >= len(points) {
		return false
	}

	newSegment := start == 0 || !cont
	visible := false
	var prev vec.Vec2
	havePrev := false // prev is the screen position of the last emitted point
	if !newSegment && points[start-1].Valid {
		// the first LineTo draws the segment from the caller's last point
		prev, havePrev = proj.Project(points[start-1].Pos)
	}
	var moves, lines int

	for _, pt := range points[start:] {
		if !pt.Valid {
			newSegment = true
			continue
		}
		q, ok := proj.Project(pt.Pos)
		if !ok {
			newSegment = true
			continue
		}

		if newSegment {
			sink.MoveTo(q.X, q.Y)
			moves++
			newSegment = false
			visible = visible || contains(viewport, q)
		} else {
			sink.LineTo(q.X, q.Y)
			lines++
			if havePrev {
				visible = visible || segmentTouches(viewport, prev, q)
			} else {
				visible = visible || contains(viewport, q)
			}
		}
		prev = q
		havePrev = true
	}

	Logger().Debug("track path updated",
		"start", start,
		"points", len(points)-start,
		"moveTo", moves,
		"lineTo", lines,
		"visible", visible)

	return visible
}

// contains reports whether p lies in the closed rectangle r.
func contains(r rect.Rect, p vec.Vec2) bool {
	return p.X >= r.LLx && p.X <= r.URx && p.Y >= r.LLy && p.Y <= r.URy
}

// segmentTouches reports whether the bounding box of the segment a-b
// intersects r.  This may report segments which pass near a corner of r,
// which only causes an unnecessary redraw.
func segmentTouches(r rect.Rect, a, b vec.Vec2) bool {
	xMin, xMax := min(a.X, b.X), max(a.X, b.X)
	yMin, yMax := min(a.Y, b.Y), max(a.Y, b.Y)
	return xMax >= r.LLx && xMin <= r.URx && yMax >= r.LLy && yMin <= r.URy
}
