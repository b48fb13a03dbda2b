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
)

// vertex is a triangle corner in device coordinates, together with its
// depth in front of the camera.
type vertex struct {
	x, y, z float64
}

// edge represents a line segment in device coordinates, oriented so that
// x0 <= x1.
type edge struct {
	x0, y0, z0 float64 // start point
	x1, y1, z1 float64 // end point
	dydx       float64 // (y1-y0)/(x1-x0), precomputed for y-intercept calculation
	dzdx       float64 // (z1-z0)/(x1-x0)
}

func newEdge(a, b vertex) edge {
	e := edge{
		x0: a.x, y0: a.y, z0: a.z,
		x1: b.x, y1: b.y, z1: b.z,
	}
	if dx := b.x - a.x; dx > verticalEdgeThreshold {
		e.dydx = (b.y - a.y) / dx
		e.dzdx = (b.z - a.z) / dx
	}
	return e
}

// at returns the y coordinate and depth of the edge at column x.
func (e *edge) at(x float64) (y, z float64) {
	return e.y0 + e.dydx*(x-e.x0), e.z0 + e.dzdx*(x-e.x0)
}

// fillTriangle refines the depth buffer with the interior of a triangle
// belonging to face.  Pixel centres inside the triangle whose interpolated
// depth, pushed back by bias, is nearer than the stored depth get the new
// depth via SetDepth; they never become owners.
//
// Vertices are sorted by x.  For every pixel column between the smallest
// and largest x, the long edge (first to last vertex) and one of the two
// short edges bound the covered rows.  Depth is interpolated linearly
// along both edges and then across the column.
func (b *PixelBuffer) fillTriangle(v0, v1, v2 vertex, bias float64, face *Face) {
	if v0.x > v1.x {
		v0, v1 = v1, v0
	}
	if v1.x > v2.x {
		v1, v2 = v2, v1
	}
	if v0.x > v1.x {
		v0, v1 = v1, v0
	}
	if v2.x-v0.x <= verticalEdgeThreshold {
		return // no area
	}

	// Bounding box, clamped to the clip rectangle.
	clipXMin := int(b.Clip.LLx)
	clipXMax := int(b.Clip.URx)
	clipYMin := int(b.Clip.LLy)
	clipYMax := int(b.Clip.URy)

	xMin := max(int(math.Floor(v0.x)), clipXMin)
	xMax := min(int(math.Floor(v2.x))+1, clipXMax)
	yMin := max(int(math.Floor(min(v0.y, v1.y, v2.y))), clipYMin)
	yMax := min(int(math.Floor(max(v0.y, v1.y, v2.y)))+1, clipYMax)
	if xMin >= xMax || yMin >= yMax {
		return
	}

	long := newEdge(v0, v2)
	left := newEdge(v0, v1)
	right := newEdge(v1, v2)

	for px := xMin; px < xMax; px++ {
		x := float64(px) + 0.5
		if x < v0.x || x > v2.x {
			continue
		}

		yl, zl := long.at(x)
		var ys, zs float64
		if x < v1.x {
			ys, zs = left.at(x)
		} else {
			ys, zs = right.at(x)
		}

		yLo, zLo, yHi, zHi := yl, zl, ys, zs
		if yLo > yHi {
			yLo, zLo, yHi, zHi = yHi, zHi, yLo, zLo
		}
		var dzdy float64
		if dy := yHi - yLo; dy > verticalEdgeThreshold {
			dzdy = (zHi - zLo) / dy
		}

		rowMin := max(int(math.Ceil(yLo-0.5)), yMin)
		rowMax := min(int(math.Floor(yHi-0.5)), yMax-1)
		for py := rowMin; py <= rowMax; py++ {
			z := zLo + dzdy*(float64(py)+0.5-yLo) + bias
			p := b.At(px, py)
			if z > 0 && z < p.depth {
				p.SetDepth(z, face)
			}
		}
	}
}

// Numerical tolerances for the rasterizer.
const (
	// verticalEdgeThreshold is the minimum horizontal extent for an edge
	// to be used for interpolation.  Edges with |x1 - x0| below this
	// threshold have zero slope.
	verticalEdgeThreshold = 1e-10
)
