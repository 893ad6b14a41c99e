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

import "seehuhn.de/go/geom/path"

// View is a map view which can project coordinates and knows its viewport.
// [MapView] implements this interface.
type View interface {
	Projection
	ViewportProvider
}

// Overlay keeps the samples of a track which is still being recorded,
// together with the path drawn from them so far.
// New samples are appended to the existing path by [Overlay.Update];
// changing the view rebuilds the path from scratch.
//
// An Overlay is not safe for concurrent use.
type Overlay struct {
	view   View
	points []Sample
	sink   *DataSink
	drawn  int // number of samples already in sink
}

// NewOverlay returns an empty overlay for the given view.
func NewOverlay(view View) *Overlay {
	return &Overlay{
		view: view,
		sink: NewDataSink(),
	}
}

// Add appends samples to the track.  They are drawn by the next call to
// [Overlay.Update].
func (o *Overlay) Add(samples ...Sample) {
	o.points = append(o.points, samples...)
}

// Update draws all samples added since the last update.
// The result reports whether the new geometry is visible in the viewport.
func (o *Overlay) Update() bool {
	start := o.drawn
	if start >= len(o.points) {
		return false
	}
	cont := start > 0 && o.isDrawn(o.points[start-1])
	visible := UpdatePath(o.view, o.view.Viewport(), start, cont, o.points, o.sink)
	o.drawn = len(o.points)
	return visible
}

// SetView changes the view and redraws the whole track.
func (o *Overlay) SetView(view View) bool {
	o.view = view
	o.sink = NewDataSink()
	o.drawn = 0
	return o.Update()
}

// isDrawn reports whether UpdatePath emitted an operation for s.
func (o *Overlay) isDrawn(s Sample) bool {
	if !s.Valid {
		return false
	}
	_, ok := o.view.Project(s.Pos)
	return ok
}

// Path returns the path drawn so far.  The path is owned by the overlay
// and is replaced when the view changes.
func (o *Overlay) Path() *path.Data {
	return o.sink.Path
}

// Len returns the number of samples in the track.
func (o *Overlay) Len() int {
	return len(o.points)
}

// Drawn returns the number of samples which have been drawn.
func (o *Overlay) Drawn() int {
	return o.drawn
}

// Clear removes all samples and the drawn path.
func (o *Overlay) Clear() {
	o.points = nil
	o.sink = NewDataSink()
	o.drawn = 0
}
