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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// DataSink appends path operations to a [path.Data].
type DataSink struct {
	Path *path.Data
}

// NewDataSink returns a sink which writes to a new, empty path.
func NewDataSink() *DataSink {
	return &DataSink{Path: &path.Data{}}
}

// MoveTo implements the [Sink] interface.
func (s *DataSink) MoveTo(x, y float64) {
	s.Path = s.Path.MoveTo(vec.Vec2{X: x, Y: y})
}

// LineTo implements the [Sink] interface.
func (s *DataSink) LineTo(x, y float64) {
	s.Path = s.Path.LineTo(vec.Vec2{X: x, Y: y})
}

// OpKind identifies a path operation.
type OpKind int

const (
	OpMoveTo OpKind = iota
	OpLineTo
)

func (k OpKind) String() string {
	switch k {
	case OpMoveTo:
		return "M"
	case OpLineTo:
		return "L"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// Op is one recorded path operation.
type Op struct {
	Kind OpKind
	X, Y float64
}

func (op Op) String() string {
	return fmt.Sprintf("%s %g %g", op.Kind, op.X, op.Y)
}

// Recorder is a [Sink] which remembers all operations in order.
type Recorder struct {
	Ops []Op
}

// MoveTo implements the [Sink] interface.
func (r *Recorder) MoveTo(x, y float64) {
	r.Ops = append(r.Ops, Op{Kind: OpMoveTo, X: x, Y: y})
}

// LineTo implements the [Sink] interface.
func (r *Recorder) LineTo(x, y float64) {
	r.Ops = append(r.Ops, Op{Kind: OpLineTo, X: x, Y: y})
}

// Counts returns the number of recorded MoveTo and LineTo operations.
func (r *Recorder) Counts() (moves, lines int) {
	for _, op := range r.Ops {
		switch op.Kind {
		case OpMoveTo:
			moves++
		case OpLineTo:
			lines++
		}
	}
	return moves, lines
}

// Kinds returns the sequence of operation kinds, without coordinates.
func (r *Recorder) Kinds() []OpKind {
	kinds := make([]OpKind, len(r.Ops))
	for i, op := range r.Ops {
		kinds[i] = op.Kind
	}
	return kinds
}

// Replay sends the recorded operations to s.
func (r *Recorder) Replay(s Sink) {
	for _, op := range r.Ops {
		switch op.Kind {
		case OpMoveTo:
			s.MoveTo(op.X, op.Y)
		case OpLineTo:
			s.LineTo(op.X, op.Y)
		}
	}
}
