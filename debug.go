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
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// debugImageSize is the largest side length of depth buffer snapshots.
const debugImageSize = 512

// writeDepthImage saves a depth buffer snapshot as PNG, scaled down so
// that neither side exceeds maxSize pixels.
func writeDepthImage(name string, img *image.Gray, maxSize int) (err error) {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}

	var out image.Image = img
	b := img.Bounds()
	if w, h := b.Dx(), b.Dy(); w > maxSize || h > maxSize {
		scale := float64(maxSize) / float64(max(w, h))
		dw := max(1, int(float64(w)*scale))
		dh := max(1, int(float64(h)*scale))
		dst := image.NewGray(image.Rect(0, 0, dw, dh))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		out = dst
	}

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, out)
}
