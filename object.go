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
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Side identifies one of the six faces of a box.
type Side int

// The six sides, in the order used by Object.Faces.
const (
	NegX Side = iota
	PosX
	NegY
	PosY
	NegZ
	PosZ
)

func (s Side) String() string {
	return [...]string{"-X", "+X", "-Y", "+Y", "-Z", "+Z"}[s]
}

// Axis returns the axis orthogonal to the side.
func (s Side) Axis() Axis {
	return Axis(s / 2)
}

// Positive reports whether the side faces the positive axis direction.
func (s Side) Positive() bool {
	return s%2 == 1
}

// Object is a tracked scene object, approximated by its axis-aligned
// bounding box.  The extent is fixed when the object is created; later
// sightings only move it.
type Object struct {
	Name string

	// Static objects take part in the out-of-scope and dead area
	// computations.
	Static bool

	Faces [6]*Face

	center r3.Vec
	extent r3.Vec
}

// NewObject creates the six faces of a box with the given centre and
// half-extent.
func NewObject(name string, center, extent r3.Vec, granularity float64) *Object {
	o := &Object{
		Name:   name,
		Static: true,
		center: center,
		extent: r3.Vec{X: math.Abs(extent.X), Y: math.Abs(extent.Y), Z: math.Abs(extent.Z)},
	}
	for s := NegX; s <= PosZ; s++ {
		o.Faces[s] = NewFace(o.faceCenter(s), o.faceExtent(s), granularity)
	}
	return o
}

// CellCount returns the number of face grid cells NewObject allocates for
// a box with the given half-extent.  The count is computed in floating
// point, so that oversized boxes can be rejected before any allocation.
func CellCount(extent r3.Vec, granularity float64) float64 {
	nx := gridCells(extent.X, granularity)
	ny := gridCells(extent.Y, granularity)
	nz := gridCells(extent.Z, granularity)
	if math.IsInf(nx+ny+nz, 1) {
		return math.Inf(1)
	}
	return 2 * (nx*ny + ny*nz + nx*nz)
}

// faceOffset returns the vector from the object centre to the centre of
// side s.
func (o *Object) faceOffset(s Side) r3.Vec {
	d := s.Axis().component(o.extent)
	if !s.Positive() {
		d = -d
	}
	return r3.Scale(d, s.Axis().unit())
}

func (o *Object) faceCenter(s Side) r3.Vec {
	return r3.Add(o.center, o.faceOffset(s))
}

// faceExtent returns the half-extent of side s, which is zero along the
// side's normal axis.
func (o *Object) faceExtent(s Side) r3.Vec {
	e := o.extent
	switch s.Axis() {
	case AxisX:
		e.X = 0
	case AxisY:
		e.Y = 0
	default:
		e.Z = 0
	}
	return e
}

// Center returns the current centre of the object.
func (o *Object) Center() r3.Vec {
	return o.center
}

// Extent returns the half-extent of the bounding box.
func (o *Object) Extent() r3.Vec {
	return o.extent
}

// Box returns the axis-aligned bounding box at the current position.
// Rotations are ignored.
func (o *Object) Box() r3.Box {
	return r3.Box{
		Min: r3.Sub(o.center, o.extent),
		Max: r3.Add(o.center, o.extent),
	}
}

// SetQuad selects quad subdivision for all faces.
func (o *Object) SetQuad(quad bool) {
	for _, f := range o.Faces {
		f.Quad = quad
	}
}

// Reposition moves the object and all of its faces.  Coverage is kept.
func (o *Object) Reposition(center r3.Vec, rotation quat.Number) {
	o.center = center
	for s, f := range o.Faces {
		f.Reposition(o.faceCenter(Side(s)), rotation, center)
	}
}

// ComputeOutOfScope excludes faces which cannot be seen from inside the
// region of interest.  A face is out of scope if it lies beyond the region
// on its own side, since the camera can then never be in front of it, or
// if it lies more than viewDistance beyond the opposite side of the region.
func (o *Object) ComputeOutOfScope(regionCenter, regionExtent r3.Vec, viewDistance float64) {
	for s, f := range o.Faces {
		side := Side(s)
		a := side.Axis()
		pos := a.component(o.faceCenter(side))
		lo := a.component(regionCenter) - a.component(regionExtent)
		hi := a.component(regionCenter) + a.component(regionExtent)

		var out bool
		if side.Positive() {
			out = pos > hi || pos < lo-viewDistance
		} else {
			out = pos < lo || pos > hi+viewDistance
		}
		f.SetOutOfScope(out)
	}
}

// ComputeDeadAreas marks all face cells which lie inside other's bounding
// box.  It returns the number of newly dead cells.
func (o *Object) ComputeDeadAreas(other *Object) int {
	box := other.Box()
	n := 0
	for _, f := range o.Faces {
		n += f.MarkDeadAgainst(box)
	}
	return n
}

// CheckCoverage rasterizes all six faces.
func (o *Object) CheckCoverage(cam *Camera, buf *PixelBuffer) {
	for _, f := range o.Faces {
		f.CheckCoverage(cam, buf)
	}
}

// Points returns the number of covered and the total number of sample
// points over all faces.
func (o *Object) Points() (covered, total int) {
	for _, f := range o.Faces {
		covered += f.CoveredPoints()
		total += f.TotalPoints()
	}
	return covered, total
}
