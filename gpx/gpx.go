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

// Package gpx reads recorded tracks from GPX files.
package gpx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"seehuhn.de/go/trackpath"
)

// ErrNoTrack is returned when a file contains no track points.
var ErrNoTrack = errors.New("gpx: no track points")

type gpxFile struct {
	Tracks []gpxTrack `xml:"trk"`
}

type gpxTrack struct {
	Segments []gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxPoint struct {
	Lat float64 `xml:"lat,attr"`
	Lon float64 `xml:"lon,attr"`
}

// Read decodes the tracks of a GPX document into a list of samples.
//
// All track segments of all tracks are concatenated, in file order.
// Consecutive segments are separated by [trackpath.Gap].  Points with
// coordinates outside the geographic range become invalid samples.
func Read(r io.Reader) ([]trackpath.Sample, error) {
	var doc gpxFile
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("gpx: %w", err)
	}

	var samples []trackpath.Sample
	numPoints := 0
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			if len(seg.Points) == 0 {
				continue
			}
			if len(samples) > 0 {
				samples = append(samples, trackpath.Gap)
			}
			for _, p := range seg.Points {
				pos := trackpath.Coord{Lat: p.Lat, Lon: p.Lon}
				samples = append(samples, trackpath.Sample{Pos: pos, Valid: pos.IsValid()})
			}
			numPoints += len(seg.Points)
		}
	}
	if numPoints == 0 {
		return nil, ErrNoTrack
	}
	return samples, nil
}

// ReadFile reads the tracks of the named GPX file.
func ReadFile(name string) (samples []trackpath.Sample, err error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	samples, err = Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return samples, nil
}
