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

// Package stroke draws the outline of a path with a given line width.
//
// The outline of every line segment, join and cap is emitted as a separate,
// positively oriented polygon into a [vector.Rasterizer].  The rasterizer
// saturates accumulated coverage, so overlapping pieces merge into the
// stroked shape.
package stroke

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

const (
	// zeroLengthThreshold is the length below which segments are ignored.
	zeroLengthThreshold = 1e-9

	// straightThreshold is the sine of the turn angle below which two
	// segments are considered to continue in the same direction.
	straightThreshold = 1e-9
)

// Style describes how a path is stroked.
type Style struct {
	// Width is the line width in pixels.  Must be positive.
	Width float64

	// Cap is the style for the ends of open subpaths.
	Cap graphics.LineCapStyle

	// Join is the style for corners.
	Join graphics.LineJoinStyle

	// MiterLimit is the maximal ratio of miter length to line width, for
	// LineJoinMiter.  Longer miters are drawn as bevel joins.
	MiterLimit float64

	// Flatness is the curve approximation tolerance in pixels.
	// Must be positive.
	Flatness float64
}

// DefaultStyle returns a style with round caps and joins, the way map
// tracks are usually drawn.
func DefaultStyle(width float64) Style {
	return Style{
		Width:      width,
		Cap:        graphics.LineCapRound,
		Join:       graphics.LineJoinRound,
		MiterLimit: 10,
		Flatness:   0.25,
	}
}

// Draw strokes p onto dst, using src as the colour source.
// Path coordinates are relative to the top-left corner of dst.
func (s Style) Draw(dst draw.Image, p *path.Data, src image.Image) {
	b := dst.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	s.Stroke(r, p)
	r.Draw(dst, b, src, image.Point{})
}

// Stroke adds the outline of p to r.
func (s Style) Stroke(r *vector.Rasterizer, p *path.Data) {
	st := &stroker{Style: s, r: r}
	st.walk(p)
}

// segment is a line segment of a flattened subpath.
type segment struct {
	A, B vec.Vec2 // end points
	T    vec.Vec2 // unit tangent (A→B direction)
	N    vec.Vec2 // unit normal (90° CCW from T)
}

type stroker struct {
	Style
	r *vector.Rasterizer

	inSubpath bool
	start     vec.Vec2  // first point of the current subpath
	current   vec.Vec2  // current point
	segs      []segment // segments of the current subpath
	poly      []vec.Vec2
}

// walk flattens the path one subpath at a time.
func (st *stroker) walk(p *path.Data) {
	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			st.finish(false)
			st.inSubpath = true
			st.start = p.Coords[coordIdx]
			st.current = st.start
			coordIdx++

		case path.CmdLineTo:
			st.lineTo(p.Coords[coordIdx])
			coordIdx++

		case path.CmdQuadTo:
			st.flattenQuadratic(st.current, p.Coords[coordIdx], p.Coords[coordIdx+1])
			coordIdx += 2

		case path.CmdCubeTo:
			st.flattenCubic(st.current, p.Coords[coordIdx], p.Coords[coordIdx+1], p.Coords[coordIdx+2])
			coordIdx += 3

		case path.CmdClose:
			if st.inSubpath {
				st.lineTo(st.start)
				st.finish(true)
			}
		}
	}
	st.finish(false)
}

// lineTo adds a segment from the current point to b.
func (st *stroker) lineTo(b vec.Vec2) {
	if !st.inSubpath {
		return
	}
	a := st.current
	d := b.Sub(a)
	length := d.Length()
	if length < zeroLengthThreshold {
		return
	}
	t := d.Mul(1 / length)
	n := vec.Vec2{X: -t.Y, Y: t.X}
	st.segs = append(st.segs, segment{A: a, B: b, T: t, N: n})
	st.current = b
}

// finish draws the current subpath and starts an empty one.
func (st *stroker) finish(closed bool) {
	if !st.inSubpath {
		return
	}
	segs := st.segs
	st.segs = st.segs[:0]
	st.inSubpath = false

	if len(segs) == 0 {
		// A subpath without orientation: only round caps produce output.
		if st.Cap == graphics.LineCapRound {
			st.addDisc(st.start)
		}
		return
	}

	for i := range segs {
		st.addBody(&segs[i])
	}
	for i := 1; i < len(segs); i++ {
		st.addJoin(segs[i].A, segs[i-1].T, segs[i].T)
	}

	if closed {
		last := &segs[len(segs)-1]
		st.addJoin(segs[0].A, last.T, segs[0].T)
		return
	}
	st.addCap(segs[0].A, segs[0].T.Mul(-1))
	last := &segs[len(segs)-1]
	st.addCap(last.B, last.T)
}

// addBody draws the rectangle covered by a single segment.
func (st *stroker) addBody(seg *segment) {
	off := seg.N.Mul(st.Width / 2)
	st.polygon(seg.A.Add(off), seg.B.Add(off), seg.B.Sub(off), seg.A.Sub(off))
}

// addCap draws the line cap at P, where T is the unit vector pointing away
// from the line.
func (st *stroker) addCap(P, T vec.Vec2) {
	d := st.Width / 2
	switch st.Cap {
	case graphics.LineCapRound:
		st.addDisc(P)
	case graphics.LineCapSquare:
		n := vec.Vec2{X: -T.Y, Y: T.X}.Mul(d)
		ext := T.Mul(d)
		st.polygon(P.Add(n), P.Add(n).Add(ext), P.Sub(n).Add(ext), P.Sub(n))
	}
}

// addJoin fills the gap on the outer side of the corner at P, where the
// direction changes from T1 to T2.
func (st *stroker) addJoin(P, T1, T2 vec.Vec2) {
	cross := T1.X*T2.Y - T1.Y*T2.X
	dot := T1.X*T2.X + T1.Y*T2.Y
	if math.Abs(cross) < straightThreshold && dot > 0 {
		return
	}

	if st.Join == graphics.LineJoinRound {
		st.addDisc(P)
		return
	}

	d := st.Width / 2
	side := d
	if cross > 0 {
		side = -d
	}
	o1 := vec.Vec2{X: -T1.Y, Y: T1.X}.Mul(side)
	o2 := vec.Vec2{X: -T2.Y, Y: T2.X}.Mul(side)

	if st.Join == graphics.LineJoinMiter {
		// cosHalf is the cosine of half the turn angle; the miter length
		// divided by the line width is 1/cosHalf.
		cosHalf := math.Sqrt(max(0, (1+dot)/2))
		if cosHalf > 0 && 1/cosHalf <= st.MiterLimit {
			bisector := o1.Add(o2)
			tip := P.Add(bisector.Mul(d / cosHalf / bisector.Length()))
			st.polygon(P, P.Add(o1), tip, P.Add(o2))
			return
		}
	}

	st.polygon(P, P.Add(o1), P.Add(o2))
}

// addDisc draws a circle of diameter Width around center.
func (st *stroker) addDisc(center vec.Vec2) {
	radius := st.Width / 2
	n := 8
	if radius > st.Flatness {
		// the chord of an arc with angle step deviates by at most Flatness
		step := 2 * math.Acos(1-st.Flatness/radius)
		n = max(n, min(1024, int(math.Ceil(2*math.Pi/step))))
	}

	st.poly = st.poly[:0]
	for i := range n {
		phi := 2 * math.Pi * float64(i) / float64(n)
		st.poly = append(st.poly, vec.Vec2{
			X: center.X + radius*math.Cos(phi),
			Y: center.Y + radius*math.Sin(phi),
		})
	}
	st.emit(st.poly)
}

// polygon emits the closed polygon through the given points.
func (st *stroker) polygon(pts ...vec.Vec2) {
	st.emit(pts)
}

// emit adds the polygon to the rasterizer, oriented so that its signed
// area is positive.  Degenerate polygons are dropped.
func (st *stroker) emit(pts []vec.Vec2) {
	var area float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		area += p.X*q.Y - q.X*p.Y
	}
	if area == 0 {
		return
	}

	point := func(i int) vec.Vec2 {
		if area < 0 {
			return pts[len(pts)-1-i]
		}
		return pts[i]
	}
	p := point(0)
	st.r.MoveTo(float32(p.X), float32(p.Y))
	for i := 1; i < len(pts); i++ {
		p = point(i)
		st.r.LineTo(float32(p.X), float32(p.Y))
	}
	st.r.ClosePath()
}

// flattenQuadratic approximates a quadratic Bézier curve from p0 via
// control point p1 to p2 by line segments.
func (st *stroker) flattenQuadratic(p0, p1, p2 vec.Vec2) {
	// e = (P0 - 2*P1 + P2) / 4 bounds the distance to the chord
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)

	n := 1
	if errLen := e.Length(); errLen > st.Flatness {
		n = int(math.Ceil(math.Sqrt(errLen / st.Flatness)))
	}
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		st.lineTo(p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t)))
	}
	st.current = p2
}

// flattenCubic approximates a cubic Bézier curve by line segments, using
// Wang's formula for the number of segments.
func (st *stroker) flattenCubic(p0, p1, p2, p3 vec.Vec2) {
	d1 := p0.Sub(p1.Mul(2)).Add(p2)
	d2 := p1.Sub(p2.Mul(2)).Add(p3)

	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		if nFloat := math.Sqrt(3 * m / (4 * st.Flatness)); nFloat > 1 {
			n = int(math.Ceil(nFloat))
		}
	}
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		omt2 := omt * omt
		t2 := t * t
		st.lineTo(p0.Mul(omt2 * omt).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t2 * t)))
	}
	st.current = p3
}
