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
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"
)

// Layout of the coverage atlas, in PDF points.
const (
	atlasMargin = 18.0
	atlasTile   = 72.0 // side length of the square reserved for one face
	atlasGap    = 8.0
)

// Gray levels used for the cell states in the atlas.
const (
	atlasCovered   = 1.0
	atlasUncovered = 0.6
	atlasDead      = 0.0
)

// WriteAtlasPDF draws the face grids of all objects into a single-page
// PDF file.  Each object occupies one row, with its faces in the order
// -X, +X, -Y, +Y, -Z, +Z.  Covered cells are white, uncovered cells grey
// and dead cells black.  Out-of-scope faces are drawn as an empty outline.
func WriteAtlasPDF(path string, objects []*Object) error {
	if len(objects) == 0 {
		return fmt.Errorf("atlas: no objects")
	}

	width := 2*atlasMargin + 6*atlasTile + 5*atlasGap
	height := 2*atlasMargin + float64(len(objects))*atlasTile + float64(len(objects)-1)*atlasGap
	paper := &pdf.Rectangle{
		URx: width,
		URy: height,
	}

	page, err := document.CreateSinglePage(path, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// PDF origin is bottom-left; rows are laid out from the top.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, height})

	page.SetLineWidth(0.5)
	page.SetLineCap(graphics.LineCapButt)
	page.SetStrokeColor(color.DeviceGray(0))

	for row, o := range objects {
		y := atlasMargin + float64(row)*(atlasTile+atlasGap)
		for s, f := range o.Faces {
			x := atlasMargin + float64(s)*(atlasTile+atlasGap)
			drawFaceTile(page, f, x, y)
		}
	}

	return page.Close()
}

// drawFaceTile draws the grid of f into the tile with top-left corner
// (x, y).  Cells are square; the grid is centred in the tile.
func drawFaceTile(page *document.Page, f *Face, x, y float64) {
	nA, nB := f.Size()

	// outline of the tile
	page.MoveTo(x, y)
	page.LineTo(x+atlasTile, y)
	page.LineTo(x+atlasTile, y+atlasTile)
	page.LineTo(x, y+atlasTile)
	page.LineTo(x, y)
	page.Stroke()

	if f.OutOfScope() || f.Degenerate() {
		return
	}

	cell := atlasTile / float64(max(nA, nB))
	x0 := x + (atlasTile-cell*float64(nA))/2
	y0 := y + (atlasTile-cell*float64(nB))/2

	page.SetFillColor(color.DeviceGray(atlasUncovered))
	page.Rectangle(x0, y0, cell*float64(nA), cell*float64(nB))
	page.Fill()

	for _, state := range []CellState{Covered, Dead} {
		level := atlasCovered
		if state == Dead {
			level = atlasDead
		}
		page.SetFillColor(color.DeviceGray(level))
		found := false
		for i := range nA {
			for j := range nB {
				if f.State(i, j) != state {
					continue
				}
				page.Rectangle(x0+float64(i)*cell, y0+float64(j)*cell, cell, cell)
				found = true
			}
		}
		if found {
			page.Fill()
		}
	}
}
