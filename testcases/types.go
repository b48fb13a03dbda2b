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

package testcases

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"seehuhn.de/go/coverage/replay"
)

// TestCase defines a synthetic recorded session.
type TestCase struct {
	Name   string         // lowercase a-z and _ only
	Frames []replay.Frame // the session log
	Width  int            // pixel buffer width
	Height int            // pixel buffer height
	Quad   bool           // use quad subdivision

	// Region, if set, is the region of interest for the out-of-scope
	// pre-pass, given as centre and half-extent.
	Region *[2]r3.Vec

	// Want gives the accepted range of the coverage ratio for some of the
	// objects.
	Want map[string]Range
}

// Range is a closed interval of coverage ratios.
type Range struct {
	Lo, Hi float64
}

// Contains reports whether x lies in the range.
func (r Range) Contains(x float64) bool {
	return x >= r.Lo && x <= r.Hi
}

// Exactly returns the range containing only x.
func Exactly(x float64) Range {
	return Range{Lo: x, Hi: x}
}

// box is a static object of a scene.
type box struct {
	name           string
	center, extent r3.Vec
}

// v is a helper to create an r3.Vec from x, y, z coordinates.
func v(x, y, z float64) r3.Vec {
	return r3.Vec{X: x, Y: y, Z: z}
}

// frame builds one log frame with the camera at from, looking at the
// point at, and all objects at their positions.
func frame(from, at r3.Vec, objects ...box) replay.Frame {
	f := replay.Frame{
		Camera: replay.Pose{Position: from, Rotation: replay.LookAt(from, at)},
	}
	for _, o := range objects {
		f.Objects = append(f.Objects, replay.Record{
			Name:     o.name,
			Position: o.center,
			Extent:   o.extent,
			Legacy:   [2]string{"(0, 0, 0, 1)", "True"},
		})
	}
	return f
}

// orbitFrames builds n frames with the camera moving on a horizontal
// circle of the given radius and height around center, always looking at
// center.
func orbitFrames(center r3.Vec, radius, height float64, n int, objects ...box) []replay.Frame {
	frames := make([]replay.Frame, n)
	for i := range n {
		alpha := 2 * math.Pi * float64(i) / float64(n)
		from := v(center.X+radius*math.Sin(alpha), center.Y+height, center.Z-radius*math.Cos(alpha))
		frames[i] = frame(from, center, objects...)
	}
	return frames
}
