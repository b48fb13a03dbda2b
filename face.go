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

// Axis names a coordinate axis.
type Axis int

// The coordinate axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	return [...]string{"X", "Y", "Z"}[a]
}

// unit returns the unit vector along a.
func (a Axis) unit() r3.Vec {
	switch a {
	case AxisX:
		return r3.Vec{X: 1}
	case AxisY:
		return r3.Vec{Y: 1}
	default:
		return r3.Vec{Z: 1}
	}
}

// component returns the coordinate of v along a.
func (a Axis) component(v r3.Vec) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

// CellState is the coverage state of one face grid cell.
type CellState int8

// Possible cell states.  A Dead cell never becomes Covered and a Covered
// cell never becomes Uncovered.
const (
	Dead      CellState = -1
	Uncovered CellState = 0
	Covered   CellState = 1
)

// Face is one side of an object's bounding box, sampled on a regular grid.
// The face lies in the plane orthogonal to Normal; the grid runs along the
// two remaining axes, with sample points centred in the face.
type Face struct {
	Normal Axis

	// Quad enables recursive quad subdivision of the grid in CheckCoverage,
	// so that parts of the face outside the view are rejected early.
	Quad bool

	axisA, axisB Axis
	nA, nB       int
	granularity  float64

	center   r3.Vec // face centre before rotation
	pivot    r3.Vec // centre of rotation
	rotation r3.Rotation

	cells []CellState // nA*nB, index i*nB + j

	// cached sample point positions
	world      []r3.Vec
	worldReady bool
	view       []r3.Vec
	viewReady  []bool
	viewOf     *Camera
	viewVer    uint64

	outOfScope bool
}

// NewFace creates a face with the given centre and half-extent.  The axis
// with (near) zero extent becomes the face normal.  The grid has
// floor(2*eA/granularity) × floor(2*eB/granularity) cells, where eA and eB
// are the extents along the two other axes.
func NewFace(center, extent r3.Vec, granularity float64) *Face {
	normal := normalAxis(extent)
	f := &Face{
		Normal:      normal,
		axisA:       (normal + 1) % 3,
		axisB:       (normal + 2) % 3,
		granularity: granularity,
		center:      center,
		pivot:       center,
		rotation:    r3.Rotation(quat.Number{Real: 1}),
	}
	if f.axisA > f.axisB {
		f.axisA, f.axisB = f.axisB, f.axisA
	}
	f.nA = gridSize(f.axisA.component(extent), granularity)
	f.nB = gridSize(f.axisB.component(extent), granularity)

	n := f.nA * f.nB
	f.cells = make([]CellState, n)
	f.world = make([]r3.Vec, n)
	f.view = make([]r3.Vec, n)
	f.viewReady = make([]bool, n)
	return f
}

// normalAxis returns the axis along which the face is flat.
func normalAxis(extent r3.Vec) Axis {
	best := AxisX
	bestVal := math.Inf(1)
	for _, a := range []Axis{AxisX, AxisY, AxisZ} {
		e := math.Abs(a.component(extent))
		if e < flatExtent {
			return a
		}
		if e < bestVal {
			best, bestVal = a, e
		}
	}
	return best
}

func gridSize(halfExtent, granularity float64) int {
	n := gridCells(halfExtent, granularity)
	if n <= 0 || math.IsInf(n, 0) {
		return 0
	}
	return int(n)
}

// gridCells is gridSize before the conversion to int.  The result may be
// +Inf.
func gridCells(halfExtent, granularity float64) float64 {
	if !(granularity > 0) {
		return 0
	}
	n := math.Floor(2 * math.Abs(halfExtent) / granularity)
	if math.IsNaN(n) {
		return 0
	}
	return n
}

// Size returns the grid dimensions.
func (f *Face) Size() (nA, nB int) {
	return f.nA, f.nB
}

// Degenerate reports whether the grid has no cells.
func (f *Face) Degenerate() bool {
	return f.nA == 0 || f.nB == 0
}

// State returns the coverage state of cell (i, j).
func (f *Face) State(i, j int) CellState {
	return f.cells[i*f.nB+j]
}

// Reposition moves the face.  Cached positions are invalidated; coverage
// is kept.
func (f *Face) Reposition(center r3.Vec, rotation quat.Number, pivot r3.Vec) {
	f.center = center
	f.pivot = pivot
	f.rotation = r3.Rotation(normalizeQuat(rotation))
	f.worldReady = false
	f.viewOf = nil
}

// SetOutOfScope excludes the face from coverage accounting (or includes
// it again).
func (f *Face) SetOutOfScope(out bool) {
	f.outOfScope = out
}

// OutOfScope reports whether the face is excluded from accounting.
func (f *Face) OutOfScope() bool {
	return f.outOfScope
}

// MarkDeadAgainst marks all cells as dead whose sample point lies inside
// box, inflated by one granularity step in every direction.
func (f *Face) MarkDeadAgainst(box r3.Box) int {
	g := f.granularity
	lo := r3.Vec{X: box.Min.X - g, Y: box.Min.Y - g, Z: box.Min.Z - g}
	hi := r3.Vec{X: box.Max.X + g, Y: box.Max.Y + g, Z: box.Max.Z + g}

	f.updateWorld()
	n := 0
	for idx, p := range f.world {
		if p.X < lo.X || p.X > hi.X || p.Y < lo.Y || p.Y > hi.Y || p.Z < lo.Z || p.Z > hi.Z {
			continue
		}
		if f.cells[idx] != Dead {
			f.cells[idx] = Dead
			n++
		}
	}
	return n
}

// TotalPoints returns the number of cells which can be seen.
func (f *Face) TotalPoints() int {
	if f.outOfScope {
		return 0
	}
	n := 0
	for _, c := range f.cells {
		if c != Dead {
			n++
		}
	}
	return n
}

// CoveredPoints returns the number of cells which have been seen.
func (f *Face) CoveredPoints() int {
	if f.outOfScope {
		return 0
	}
	n := 0
	for _, c := range f.cells {
		if c == Covered {
			n++
		}
	}
	return n
}

func (f *Face) markCovered(c GridCoord) {
	idx := int(c.I)*f.nB + int(c.J)
	if f.cells[idx] == Uncovered {
		f.cells[idx] = Covered
	}
}

// WorldPos returns the world position of the sample point of cell (i, j).
func (f *Face) WorldPos(i, j int) r3.Vec {
	f.updateWorld()
	return f.world[i*f.nB+j]
}

func (f *Face) updateWorld() {
	if f.worldReady {
		return
	}
	uA := f.axisA.unit()
	uB := f.axisB.unit()
	g := f.granularity
	offset := r3.Sub(f.center, f.pivot)
	for i := range f.nA {
		a := (float64(i) + 0.5 - float64(f.nA)/2) * g
		for j := range f.nB {
			b := (float64(j) + 0.5 - float64(f.nB)/2) * g
			local := r3.Add(offset, r3.Add(r3.Scale(a, uA), r3.Scale(b, uB)))
			f.world[i*f.nB+j] = r3.Add(f.pivot, f.rotation.Rotate(local))
		}
	}
	f.worldReady = true
}

// viewPos returns the viewport position of cell (i, j), using the cache
// when the camera has not moved since it was filled.
func (f *Face) viewPos(cam *Camera, i, j int) r3.Vec {
	if f.viewOf != cam || f.viewVer != cam.version {
		clear(f.viewReady)
		f.viewOf = cam
		f.viewVer = cam.version
	}
	idx := i*f.nB + j
	if !f.viewReady[idx] {
		f.updateWorld()
		f.view[idx] = cam.WorldToViewport(f.world[idx])
		f.viewReady[idx] = true
	}
	return f.view[idx]
}

// CheckCoverage rasterizes the face into buf, as seen from cam.  Grid
// points which win the depth test become owners of their pixel; coverage
// is only recorded when the buffer is resolved at the end of the frame.
func (f *Face) CheckCoverage(cam *Camera, buf *PixelBuffer) {
	if f.outOfScope || f.Degenerate() {
		return
	}
	if f.alwaysOut(cam, 0, 0, f.nA, f.nB) {
		return
	}
	if f.Quad {
		f.checkQuad(cam, buf, 0, 0, f.nA, f.nB)
	} else {
		f.rasterize(cam, buf, 0, 0, f.nA, f.nB)
	}
}

// checkQuad splits the cell range [i0,i1)×[j0,j1) into quadrants and
// recurses into those which are not rejected by alwaysOut.
func (f *Face) checkQuad(cam *Camera, buf *PixelBuffer, i0, j0, i1, j1 int) {
	if (i1-i0)*(j1-j0) <= quadLeafCells {
		f.rasterize(cam, buf, i0, j0, i1, j1)
		return
	}
	im := (i0 + i1) / 2
	jm := (j0 + j1) / 2
	quads := [4][4]int{
		{i0, j0, im, jm},
		{im, j0, i1, jm},
		{i0, jm, im, j1},
		{im, jm, i1, j1},
	}
	for _, q := range quads {
		if q[0] >= q[2] || q[1] >= q[3] {
			continue
		}
		if f.alwaysOut(cam, q[0], q[1], q[2], q[3]) {
			continue
		}
		f.checkQuad(cam, buf, q[0], q[1], q[2], q[3])
	}
}

// alwaysOut reports whether the four corner sample points of the cell
// range [i0,i1)×[j0,j1) all project outside the viewport on the same side,
// or all lie behind the camera.
func (f *Face) alwaysOut(cam *Camera, i0, j0, i1, j1 int) bool {
	corners := [4]r3.Vec{
		f.viewPos(cam, i0, j0),
		f.viewPos(cam, i1-1, j0),
		f.viewPos(cam, i0, j1-1),
		f.viewPos(cam, i1-1, j1-1),
	}
	right, left, below, above, behind := true, true, true, true, true
	for _, c := range corners {
		right = right && c.X > 1
		left = left && c.X < 0
		below = below && c.Y < 0
		above = above && c.Y > 1
		behind = behind && c.Z < 0
	}
	return right || left || below || above || behind
}

// rasterize tests every sample point in [i0,i1)×[j0,j1) against the depth
// buffer.  Each point which claims its pixel also fills the triangles it
// forms with its diagonal neighbours, so that points of surfaces further
// back are hidden between the samples of this face.
func (f *Face) rasterize(cam *Camera, buf *PixelBuffer, i0, j0, i1, j1 int) {
	for i := i0; i < i1; i++ {
		for j := j0; j < j1; j++ {
			if f.cells[i*f.nB+j] == Dead {
				continue
			}
			v := f.viewPos(cam, i, j)
			if !(v.X > 0 && v.X < 1 && v.Y > 0 && v.Y < 1 && v.Z > 0) {
				continue
			}
			p := buf.pixelAt(buf.toDevice(v.X, v.Y))
			if p == nil {
				continue
			}
			coord := GridCoord{I: int32(i), J: int32(j)}
			if !p.TryClaim(coord, v.Z, f) {
				continue
			}

			if i > 0 && j > 0 {
				f.fillTriangle(buf, v, f.viewPos(cam, i-1, j), f.viewPos(cam, i-1, j-1))
			}
			if i+1 < f.nA && j+1 < f.nB {
				f.fillTriangle(buf, v, f.viewPos(cam, i+1, j), f.viewPos(cam, i+1, j+1))
			}
		}
	}
}

func (f *Face) fillTriangle(buf *PixelBuffer, p0, p1, p2 r3.Vec) {
	if p0.Z <= 0 || p1.Z <= 0 || p2.Z <= 0 {
		return
	}
	d0 := buf.toDevice(p0.X, p0.Y)
	d1 := buf.toDevice(p1.X, p1.Y)
	d2 := buf.toDevice(p2.X, p2.Y)
	buf.fillTriangle(
		vertex{d0.X, d0.Y, p0.Z},
		vertex{d1.X, d1.Y, p1.Z},
		vertex{d2.X, d2.Y, p2.Z},
		f.granularity, f)
}

const (
	// flatExtent is the largest half-extent for which a box dimension is
	// considered to be zero.
	flatExtent = 1e-4

	// quadLeafCells is the largest number of cells which checkQuad
	// rasterizes without further subdivision.
	quadLeafCells = 100
)
