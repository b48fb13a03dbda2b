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
	"image"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// PixelBuffer is the screen-space depth buffer shared by all faces of a
// session.  It is allocated once and reset after every frame.
//
// A PixelBuffer is not safe for concurrent use.
type PixelBuffer struct {
	Width, Height int

	// Clip bounds all writes, in device (pixel) coordinates.
	Clip rect.Rect

	// ViewportToDevice maps viewport coordinates in [0,1]² to pixel
	// coordinates.
	ViewportToDevice matrix.Matrix

	maxDepth float64
	pix      []Pixel
}

// NewPixelBuffer allocates a buffer of the given size with all depths set
// to maxDepth.
func NewPixelBuffer(width, height int, maxDepth float64) *PixelBuffer {
	b := &PixelBuffer{
		Width:  width,
		Height: height,
		Clip: rect.Rect{
			LLx: 0,
			LLy: 0,
			URx: float64(width),
			URy: float64(height),
		},
		ViewportToDevice: matrix.Matrix{float64(width), 0, 0, float64(height), 0, 0},
		maxDepth:         maxDepth,
		pix:              make([]Pixel, width*height),
	}
	for i := range b.pix {
		b.pix[i].depth = maxDepth
	}
	return b
}

// MaxDepth returns the depth of an empty pixel.
func (b *PixelBuffer) MaxDepth() float64 {
	return b.maxDepth
}

// At returns the pixel in column x and row y.  Row 0 is at the bottom of
// the view.
func (b *PixelBuffer) At(x, y int) *Pixel {
	return &b.pix[y*b.Width+x]
}

// toDevice applies ViewportToDevice to a viewport position.
func (b *PixelBuffer) toDevice(x, y float64) vec.Vec2 {
	m := b.ViewportToDevice
	return vec.Vec2{
		X: m[0]*x + m[2]*y + m[4],
		Y: m[1]*x + m[3]*y + m[5],
	}
}

// pixelAt returns the pixel containing the device position p, or nil if p
// lies outside the clip rectangle.
func (b *PixelBuffer) pixelAt(p vec.Vec2) *Pixel {
	if p.X < b.Clip.LLx || p.X >= b.Clip.URx || p.Y < b.Clip.LLy || p.Y >= b.Clip.URy {
		return nil
	}
	return b.At(int(p.X), int(p.Y))
}

// Resolve ends a frame: every pixel commits its owner's coverage and is
// then reset for the next frame.
func (b *PixelBuffer) Resolve() {
	for i := range b.pix {
		p := &b.pix[i]
		p.Commit()
		p.Reset(b.maxDepth)
	}
}

// Owned returns the number of pixels which currently have an owner.
func (b *PixelBuffer) Owned() int {
	n := 0
	for i := range b.pix {
		if b.pix[i].face != nil {
			n++
		}
	}
	return n
}

// DepthImage returns a grayscale picture of the current depth buffer.
// Near surfaces are bright, empty pixels are black.  The image is
// flipped so that the top row of the view comes first.
func (b *PixelBuffer) DepthImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, b.Width, b.Height))
	for y := range b.Height {
		row := img.Pix[(b.Height-1-y)*img.Stride:]
		for x := range b.Width {
			d := b.pix[y*b.Width+x].depth
			if d >= b.maxDepth || d <= 0 {
				continue
			}
			row[x] = byte(max(1, min(255, int(256*(1-d/b.maxDepth)))))
		}
	}
	return img
}
