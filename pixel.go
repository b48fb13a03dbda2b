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

// GridCoord addresses a cell of a face grid.
type GridCoord struct {
	I, J int32
}

// Pixel is one cell of the depth buffer.  It remembers the nearest depth
// seen in the current frame and which face grid cell, if any, produced it.
//
// The owner is only meaningful while depth is the minimum over all faces
// tested in the frame.  Fill points from triangle rasterization update the
// depth without becoming the owner.
type Pixel struct {
	depth float64
	face  *Face
	coord GridCoord
}

// Depth returns the nearest depth recorded in the current frame.
func (p *Pixel) Depth() float64 {
	return p.depth
}

// Owner returns the face and grid cell which currently own the pixel.
// The face is nil if the pixel has no owner.
func (p *Pixel) Owner() (*Face, GridCoord) {
	return p.face, p.coord
}

// TryClaim records a grid sample point at depth z.  The claim succeeds,
// and the pixel changes owner, iff 0 < z < p.Depth().
func (p *Pixel) TryClaim(coord GridCoord, z float64, face *Face) bool {
	if z <= 0 || z >= p.depth {
		return false
	}
	p.depth = z
	p.face = face
	p.coord = coord
	return true
}

// SetDepth unconditionally overwrites the depth.  If face is not the
// current owner, the pixel loses its owner.
func (p *Pixel) SetDepth(z float64, face *Face) {
	p.depth = z
	if face != p.face {
		p.face = nil
	}
}

// Commit marks the owning grid cell as covered.
func (p *Pixel) Commit() {
	if p.face != nil {
		p.face.markCovered(p.coord)
	}
}

// Reset prepares the pixel for the next frame.
func (p *Pixel) Reset(maxDepth float64) {
	if p.face == nil && p.depth == maxDepth {
		return
	}
	p.depth = maxDepth
	p.face = nil
}
