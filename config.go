// seehuhn.de/go/coverage - visible surface coverage estimation
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

package coverage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Config holds the parameters of a coverage session.
type Config struct {
	// Granularity is the spacing between face grid sample points, in
	// world units.
	Granularity float64 `toml:"granularity"`

	// ViewDistance is the depth of an empty pixel.  Surfaces further away
	// are never seen.  It is also the slack used by the out-of-scope test.
	ViewDistance float64 `toml:"view_distance"`

	// Width and Height give the pixel buffer resolution.
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// FieldOfView is the vertical camera opening angle in degrees.
	FieldOfView float64 `toml:"field_of_view"`

	// Quad selects quad-tree subdivision instead of brute-force
	// rasterization of the face grids.
	Quad bool `toml:"quad"`

	// LegacyQuaternion reproduces the rotation parsing bug of
	// early harness builds, see replay.ParseQuat.
	LegacyQuaternion bool `toml:"legacy_quaternion"`

	// Region is the region of interest for the out-of-scope pre-pass.
	// A nil region disables the test.
	Region *Region `toml:"region"`

	// Dynamic lists the names of objects which are not static.
	Dynamic []string `toml:"dynamic"`

	// MaxObjectCells limits the number of face grid cells of a single
	// object.  Objects above the limit are rejected when they are first
	// seen in the log.
	MaxObjectCells int `toml:"max_object_cells"`

	// DebugDir, if set, receives depth buffer images of every
	// DebugEvery-th frame.
	DebugDir   string `toml:"debug_dir"`
	DebugEvery int    `toml:"debug_every"`
}

// Region is an axis-aligned box given by centre and half-extent.
type Region struct {
	Center [3]float64 `toml:"center"`
	Extent [3]float64 `toml:"extent"`
}

// Bounds returns the centre and half-extent as vectors.
func (r *Region) Bounds() (center, extent r3.Vec) {
	center = r3.Vec{X: r.Center[0], Y: r.Center[1], Z: r.Center[2]}
	extent = r3.Vec{X: r.Extent[0], Y: r.Extent[1], Z: r.Extent[2]}
	return center, extent
}

// DefaultConfig returns the default session parameters.
func DefaultConfig() *Config {
	return &Config{
		Granularity:    defaultGranularity,
		ViewDistance:   defaultViewDistance,
		Width:          defaultResolution,
		Height:         defaultResolution,
		FieldOfView:    defaultFieldOfView,
		MaxObjectCells: defaultMaxObjectCells,
		DebugEvery:     1,
	}
}

// LoadConfig reads a TOML configuration file.  Keys which are not present
// in the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".toml" {
		return nil, fmt.Errorf("config file must have .toml extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 << 20
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the parameters are usable.
func (c *Config) Validate() error {
	var errs []error
	if !(c.Granularity > 0) {
		errs = append(errs, fmt.Errorf("granularity must be positive, got %g", c.Granularity))
	}
	if !(c.ViewDistance > 0) {
		errs = append(errs, fmt.Errorf("view_distance must be positive, got %g", c.ViewDistance))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid resolution %dx%d", c.Width, c.Height))
	}
	if !(c.FieldOfView > 0 && c.FieldOfView < 180) {
		errs = append(errs, fmt.Errorf("field_of_view must be in (0, 180), got %g", c.FieldOfView))
	}
	if c.MaxObjectCells <= 0 {
		errs = append(errs, fmt.Errorf("max_object_cells must be positive, got %d", c.MaxObjectCells))
	}
	if c.DebugEvery < 1 {
		errs = append(errs, fmt.Errorf("debug_every must be at least 1, got %d", c.DebugEvery))
	}
	return errors.Join(errs...)
}

// Default values for the session parameters.
const (
	defaultGranularity  = 0.1
	defaultViewDistance = 344.0
	defaultResolution   = 1000
	defaultFieldOfView  = 60.0

	defaultMaxObjectCells = 1 << 24
)
