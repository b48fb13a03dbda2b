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

import "seehuhn.de/go/coverage/replay"

// cube is a 2×2×2 box centred at the origin.  Each face has 20×20 sample
// points at the default granularity.
var cube = box{name: "cube", center: v(0, 0, 0), extent: v(1, 1, 1)}

var basicCases = []TestCase{
	// Only the -Z face is in view.  A few points on the edge of the side
	// faces may also be seen.
	{
		Name:   "cube_front",
		Frames: []replay.Frame{frame(v(0, 0, -5), v(0, 0, 0), cube)},
		Width:  200,
		Height: 200,
		Want:   map[string]Range{"cube": {Lo: 0.15, Hi: 0.35}},
	},
	{
		Name:   "cube_front_quad",
		Frames: []replay.Frame{frame(v(0, 0, -5), v(0, 0, 0), cube)},
		Width:  200,
		Height: 200,
		Quad:   true,
		Want:   map[string]Range{"cube": {Lo: 0.15, Hi: 0.35}},
	},

	// The camera looks away from the cube.
	{
		Name:   "cube_behind",
		Frames: []replay.Frame{frame(v(0, 0, -5), v(0, 0, -10), cube)},
		Width:  200,
		Height: 200,
		Want:   map[string]Range{"cube": Exactly(0)},
	},

	// A flat object has two coincident faces.  Only the face which is
	// tested first can claim the pixels.
	{
		Name: "plane_from_above",
		Frames: []replay.Frame{
			frame(v(0, 10, 0), v(0, 0, 0),
				box{name: "plane", center: v(0, 0, 0), extent: v(5, 0, 5)}),
		},
		Width:  300,
		Height: 300,
		Want:   map[string]Range{"plane": {Lo: 0.4, Hi: 0.5}},
	},

	// Seeing the same view twice does not add coverage.
	{
		Name: "cube_front_repeated",
		Frames: []replay.Frame{
			frame(v(0, 0, -5), v(0, 0, 0), cube),
			frame(v(0, 0, -5), v(0, 0, 0), cube),
		},
		Width:  200,
		Height: 200,
		Want:   map[string]Range{"cube": {Lo: 0.15, Hi: 0.35}},
	},
}
