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

// Camera is a perspective camera using the conventions of the recording
// engine: left-handed coordinates, the camera looks along its local +Z
// axis, and +Y is up.
//
// Viewport coordinates run from (0, 0) at the bottom left to (1, 1) at the
// top right of the view.  The z coordinate of a projected point is its
// distance in front of the camera, measured along the view direction.
type Camera struct {
	// FieldOfView is the vertical opening angle in degrees.
	FieldOfView float64

	// Aspect is the ratio of viewport width to viewport height.
	Aspect float64

	position r3.Vec
	rotation quat.Number
	inverse  r3.Rotation
	tanHalf  float64

	// version changes on every pose change, so that faces can tell whether
	// their cached viewport positions are still valid.
	version uint64
}

// NewCamera returns a camera at the origin, looking along +Z.
func NewCamera(fov, aspect float64) *Camera {
	c := &Camera{
		FieldOfView: fov,
		Aspect:      aspect,
	}
	c.SetPose(r3.Vec{}, quat.Number{Real: 1})
	return c
}

// SetPose moves the camera.  The rotation is normalised; a zero quaternion
// is treated as the identity.
func (c *Camera) SetPose(position r3.Vec, rotation quat.Number) {
	rotation = normalizeQuat(rotation)
	c.position = position
	c.rotation = rotation
	c.inverse = r3.Rotation(quat.Conj(rotation))
	c.tanHalf = math.Tan(c.FieldOfView * math.Pi / 360)
	c.version++
}

// Position returns the current camera position.
func (c *Camera) Position() r3.Vec {
	return c.position
}

// Rotation returns the current (normalised) camera rotation.
func (c *Camera) Rotation() quat.Number {
	return c.rotation
}

// Forward returns the unit view direction in world space.
func (c *Camera) Forward() r3.Vec {
	return r3.Rotation(c.rotation).Rotate(r3.Vec{Z: 1})
}

// WorldToViewport projects a world-space point into viewport space.
// Points behind the camera get a negative z coordinate; their x and y
// coordinates are mirrored and must not be used.
func (c *Camera) WorldToViewport(p r3.Vec) r3.Vec {
	local := c.inverse.Rotate(r3.Sub(p, c.position))
	z := local.Z
	if z == 0 {
		// on the camera plane: report a point outside the view
		return r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: 0}
	}
	h := z * c.tanHalf
	return r3.Vec{
		X: 0.5 + 0.5*local.X/(h*c.Aspect),
		Y: 0.5 + 0.5*local.Y/h,
		Z: z,
	}
}

func normalizeQuat(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 || math.IsNaN(n) {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/n, q)
}
