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

// Package config loads the settings of the trackrender command.
//
// Configuration is read from a YAML file, completed with defaults and
// validated using struct tags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"seehuhn.de/go/pdf/graphics"
)

// ViewConfig describes the map view.
type ViewConfig struct {
	Width   int     `yaml:"width" validate:"gt=0,lte=16384"`
	Height  int     `yaml:"height" validate:"gt=0,lte=16384"`
	Padding float64 `yaml:"padding" validate:"gte=0"`

	// Zoom and Center are optional.  If Zoom is unset, the view is fitted
	// to the track.
	Zoom   *float64 `yaml:"zoom" validate:"omitempty,gte=0,lte=21"`
	Center *LatLon  `yaml:"center"`
}

// LatLon is a geographic position.
type LatLon struct {
	Lat float64 `yaml:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `yaml:"lon" validate:"gte=-180,lte=180"`
}

// StrokeConfig describes how the track is drawn.
type StrokeConfig struct {
	Width      float64 `yaml:"width" validate:"gt=0"`
	Color      string  `yaml:"color" validate:"hexcolor"`
	Cap        string  `yaml:"cap" validate:"oneof=butt round square"`
	Join       string  `yaml:"join" validate:"oneof=miter round bevel"`
	MiterLimit float64 `yaml:"miterLimit" validate:"gte=1"`
}

// OutputConfig selects the output file format.
type OutputConfig struct {
	Format     string `yaml:"format" validate:"oneof=png pdf"`
	Background string `yaml:"background" validate:"omitempty,hexcolor"`
}

// Config is the root configuration structure.
type Config struct {
	View   ViewConfig   `yaml:"view"`
	Stroke StrokeConfig `yaml:"stroke"`
	Output OutputConfig `yaml:"output"`

	// BatchSize is the number of samples added to the map per redraw.
	BatchSize int `yaml:"batchSize" validate:"gte=0"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		View: ViewConfig{
			Width:   800,
			Height:  600,
			Padding: 16,
		},
		Stroke: StrokeConfig{
			Width:      3,
			Color:      "#d01c1c",
			Cap:        "round",
			Join:       "round",
			MiterLimit: 10,
		},
		Output: OutputConfig{
			Format: "png",
		},
		BatchSize: 256,
	}
}

// Load reads the named YAML file.  Settings missing from the file keep
// their default values.
func Load(name string) (*Config, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}

// Parse decodes and validates a YAML configuration.  Unknown keys are an
// error.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks all settings.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// LineCap returns the configured cap style.
func (s *StrokeConfig) LineCap() graphics.LineCapStyle {
	switch s.Cap {
	case "butt":
		return graphics.LineCapButt
	case "square":
		return graphics.LineCapSquare
	default:
		return graphics.LineCapRound
	}
}

// LineJoin returns the configured join style.
func (s *StrokeConfig) LineJoin() graphics.LineJoinStyle {
	switch s.Join {
	case "miter":
		return graphics.LineJoinMiter
	case "bevel":
		return graphics.LineJoinBevel
	default:
		return graphics.LineJoinRound
	}
}

// ParseColor converts a colour of the form "#rgb", "#rgba", "#rrggbb" or
// "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	if len(s) == 0 || s[0] != '#' {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	hex := s[1:]
	if len(hex) == 3 || len(hex) == 4 {
		long := make([]byte, 0, 2*len(hex))
		for i := range len(hex) {
			long = append(long, hex[i], hex[i])
		}
		hex = string(long)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
