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
	"gonum.org/v1/gonum/spatial/r3"

	"seehuhn.de/go/coverage/replay"
)

var scopeCases = []TestCase{
	// The +Z face of the cube lies beyond the region on its own side and
	// is excluded, leaving five faces to account for.
	{
		Name:   "far_side_excluded",
		Frames: []replay.Frame{frame(v(0, 0, 15), v(0, 0, 20), box{name: "cube", center: v(0, 0, 20), extent: v(1, 1, 1)})},
		Width:  200,
		Height: 200,
		Region: &[2]r3.Vec{v(0, 0, 0), v(10, 10, 10)},
		Want:   map[string]Range{"cube": {Lo: 0.19, Hi: 0.42}},
	},

	// The same scene without a region of interest.
	{
		Name:   "far_side_included",
		Frames: []replay.Frame{frame(v(0, 0, 15), v(0, 0, 20), box{name: "cube", center: v(0, 0, 20), extent: v(1, 1, 1)})},
		Width:  200,
		Height: 200,
		Want:   map[string]Range{"cube": {Lo: 0.15, Hi: 0.35}},
	},
}
