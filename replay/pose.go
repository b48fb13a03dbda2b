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

package replay

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// LookAt returns the rotation which turns a camera at from towards the
// point at, keeping +Y up where possible.
func LookAt(from, at r3.Vec) quat.Number {
	fwd := r3.Sub(at, from)
	if r3.Norm(fwd) == 0 {
		return quat.Number{Real: 1}
	}
	fwd = r3.Unit(fwd)

	yaw := math.Atan2(fwd.X, fwd.Z)
	pitch := -math.Asin(math.Max(-1, math.Min(1, fwd.Y)))
	qYaw := quat.Number(r3.NewRotation(yaw, r3.Vec{Y: 1}))
	qPitch := quat.Number(r3.NewRotation(pitch, r3.Vec{X: 1}))
	return quat.Mul(qYaw, qPitch)
}

// Identity is the rotation which leaves a camera looking along +Z.
var Identity = quat.Number{Real: 1}
